package audio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/vovakirdan/ringpong/internal/config"
	"github.com/vovakirdan/ringpong/internal/games/ringpong"
)

// ErrNotInitialized is returned by Play before Init succeeded or after Close.
var ErrNotInitialized = errors.New("audio: player not initialized")

// Player mixes cue tones into a single speaker stream.
// Play never blocks on playback; the tone is added to the running mixer.
type Player struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	shape       Shape
	mixer       *beep.Mixer
	initialized bool
}

var _ ringpong.CuePlayer = (*Player)(nil)

// NewPlayer creates a player for cfg. Call Init before Play.
func NewPlayer(cfg config.AudioConfig) *Player {
	return &Player{
		rate: beep.SampleRate(cfg.SampleRate),
		shape: Shape{
			Attack:  cfg.Attack.Std(),
			Decay:   cfg.Decay.Std(),
			Sustain: cfg.Sustain,
			Release: cfg.Release.Std(),
			Volume:  cfg.Volume,
		},
		mixer: &beep.Mixer{},
	}
}

// Init opens the speaker and starts streaming the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play adds the tone for cue to the mixer and returns immediately.
func (p *Player) Play(cue ringpong.Cue) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return ErrNotInitialized
	}

	s := p.Stream(cue)
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	return nil
}

// Stream returns the enveloped tone for cue without playing it.
func (p *Player) Stream(cue ringpong.Cue) beep.Streamer {
	return newTone(cue.Pitch, cue.Duration, p.shape, p.rate)
}

// Close silences pending tones and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

// Open returns the cue player for cfg: a running speaker player, or
// ringpong.SilentCues when audio is muted, disabled or unavailable.
// The returned function releases the player.
func Open(cfg config.AudioConfig, mute bool, logger *log.Logger) (ringpong.CuePlayer, func()) {
	if mute || !cfg.Enabled {
		return ringpong.SilentCues{}, func() {}
	}

	p := NewPlayer(cfg)
	if err := p.Init(); err != nil {
		if logger != nil {
			logger.Warn("audio unavailable, continuing without sound", "error", err)
		}
		return ringpong.SilentCues{}, func() {}
	}
	return p, p.Close
}
