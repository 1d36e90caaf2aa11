package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/ringpong.yaml
var defaultRingPongYAML []byte

// DefaultRingPongConfig returns the default configuration, matching the
// original 240x240 round display.
func DefaultRingPongConfig() RingPongConfig {
	return RingPongConfig{
		Arena: ArenaConfig{
			Width:            240,
			Height:           240,
			BoundaryRadius:   100,
			EngagementRadius: 100,
			MissRadius:       120,
		},
		Ball: BallConfig{
			Radius:         8,
			Speed:          2.5,
			SpinFactor:     1.2,
			Jitter:         0.15,
			BounceCooldown: 10,
			ResetCooldown:  20,
		},
		Paddle: PaddleConfig{
			WidthDeg:  30,
			ArcOffset: 6,
			Segments:  16,
			StepDeg:   3,
			Start1Deg: 0,
			Start2Deg: 180,
		},
		Loop: LoopConfig{
			FrameRate:    30,
			RespawnPause: Duration(500 * time.Millisecond),
		},
		Audio: AudioConfig{
			Enabled:      true,
			SampleRate:   44100,
			BouncePitch:  440,
			ResetPitch:   220,
			NoteDuration: Duration(50 * time.Millisecond),
			Attack:       Duration(10 * time.Millisecond),
			Decay:        Duration(50 * time.Millisecond),
			Sustain:      0.7,
			Release:      Duration(100 * time.Millisecond),
			Volume:       -1,
		},
		Gameplay: GameplayConfig{
			WinScore: 0,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultRingPongYAML
}
