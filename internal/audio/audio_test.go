package audio

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/vovakirdan/ringpong/internal/config"
	"github.com/vovakirdan/ringpong/internal/games/ringpong"
)

const testRate = beep.SampleRate(1000)

// drain streams s to the end in small chunks and returns every sample.
func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 7)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

func TestOscillatorLengthAndShape(t *testing.T) {
	osc := newOscillator(250, 100*time.Millisecond, testRate)
	samples := drain(osc)

	if len(samples) != 100 {
		t.Fatalf("oscillator produced %d samples, expected 100", len(samples))
	}
	// 250 Hz at 1 kHz: quarter-cycle steps.
	want := []float64{0, 1, 0, -1}
	for i, w := range want {
		if math.Abs(samples[i][0]-w) > 1e-9 || samples[i][0] != samples[i][1] {
			t.Errorf("sample %d = %v, expected %v on both channels", i, samples[i], w)
		}
	}
	if osc.Err() != nil {
		t.Errorf("Err() = %v, expected nil", osc.Err())
	}
}

type constStreamer struct{}

func (constStreamer) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i] = [2]float64{1, 1}
	}
	return len(samples), true
}

func (constStreamer) Err() error { return nil }

func TestEnvelopeLevels(t *testing.T) {
	sh := Shape{Attack: 10 * time.Millisecond, Decay: 20 * time.Millisecond, Sustain: 0.7, Release: 100 * time.Millisecond}
	samples := drain(newEnvelope(constStreamer{}, 50*time.Millisecond, sh, testRate))

	if len(samples) != 150 {
		t.Fatalf("envelope produced %d samples, expected 150", len(samples))
	}

	tests := []struct {
		pos  int
		want float64
	}{
		{0, 0},      // attack starts silent
		{5, 0.5},    // halfway up the attack
		{10, 1},     // full level, decay starts
		{20, 0.85},  // halfway down the decay
		{30, 0.7},   // sustain
		{49, 0.7},   // still held
		{50, 0.7},   // release starts from sustain
		{100, 0.35}, // halfway down the release
		{149, 0.007},
	}
	for _, tc := range tests {
		if got := samples[tc.pos][0]; math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("level at %d = %v, expected %v", tc.pos, got, tc.want)
		}
	}
}

func TestEnvelopeDecayIsContinuous(t *testing.T) {
	sh := Shape{Attack: 10 * time.Millisecond, Decay: 50 * time.Millisecond, Sustain: 0.7, Release: 100 * time.Millisecond}
	samples := drain(newEnvelope(constStreamer{}, 100*time.Millisecond, sh, testRate))

	// No step between neighbouring samples exceeds the attack slope.
	for i := 1; i < len(samples); i++ {
		if step := math.Abs(samples[i][0] - samples[i-1][0]); step > 0.1+1e-9 {
			t.Fatalf("level jumps by %v between samples %d and %d", step, i-1, i)
		}
	}
}

func TestEnvelopeReleasedEarly(t *testing.T) {
	tests := []struct {
		name string
		held time.Duration
		want float64 // Level of the first release sample
	}{
		{"during attack", 5 * time.Millisecond, 0.5},
		{"during decay", 20 * time.Millisecond, 0.85},
	}
	sh := Shape{Attack: 10 * time.Millisecond, Decay: 20 * time.Millisecond, Sustain: 0.7, Release: 10 * time.Millisecond}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := drain(newEnvelope(constStreamer{}, tt.held, sh, testRate))
			hold := testRate.N(tt.held)

			if len(samples) != hold+10 {
				t.Fatalf("envelope produced %d samples, expected %d", len(samples), hold+10)
			}
			if got := samples[hold][0]; math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("release start level = %v, expected %v", got, tt.want)
			}
			for i := range samples {
				if samples[i][0] > 1 || samples[i][0] < 0 {
					t.Fatalf("level %v at %d outside [0, 1]", samples[i][0], i)
				}
			}
		})
	}
}

func TestPlayerStreamMatchesCue(t *testing.T) {
	cfg := config.DefaultRingPongConfig().Audio
	cfg.SampleRate = int(testRate)
	cfg.Volume = 0
	p := NewPlayer(cfg)

	samples := drain(p.Stream(ringpong.Cue{Kind: ringpong.CueBounce, Pitch: 440, Duration: 50 * time.Millisecond}))

	// 50 ms note plus 100 ms release.
	if len(samples) != 150 {
		t.Fatalf("cue produced %d samples, expected 150", len(samples))
	}
	peak := 0.0
	for _, s := range samples {
		peak = math.Max(peak, math.Abs(s[0]))
	}
	if peak == 0 || peak > 1 {
		t.Errorf("peak amplitude = %v, expected in (0, 1]", peak)
	}
}

func TestPlayerRequiresInit(t *testing.T) {
	p := NewPlayer(config.DefaultRingPongConfig().Audio)
	err := p.Play(ringpong.Cue{Kind: ringpong.CueReset, Pitch: 220, Duration: 50 * time.Millisecond})
	if !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Play() error = %v, expected ErrNotInitialized", err)
	}
	p.Close() // Should not panic
}

func TestOpenMuted(t *testing.T) {
	cues, closeFn := Open(config.DefaultRingPongConfig().Audio, true, nil)
	defer closeFn()

	if _, ok := cues.(ringpong.SilentCues); !ok {
		t.Errorf("Open(mute) = %T, expected ringpong.SilentCues", cues)
	}
	if err := cues.Play(ringpong.Cue{}); err != nil {
		t.Errorf("silent Play() error = %v", err)
	}
}

func TestOpenDisabled(t *testing.T) {
	cfg := config.DefaultRingPongConfig().Audio
	cfg.Enabled = false
	cues, closeFn := Open(cfg, false, nil)
	defer closeFn()

	if _, ok := cues.(ringpong.SilentCues); !ok {
		t.Errorf("Open(disabled) = %T, expected ringpong.SilentCues", cues)
	}
}
