// Package config provides YAML-based game configuration loading and
// difficulty presets for ringpong.
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// RingPongConfig contains all configuration for a ringpong match.
type RingPongConfig struct {
	Arena    ArenaConfig    `yaml:"arena"`
	Ball     BallConfig     `yaml:"ball"`
	Paddle   PaddleConfig   `yaml:"paddle"`
	Loop     LoopConfig     `yaml:"loop"`
	Audio    AudioConfig    `yaml:"audio"`
	Gameplay GameplayConfig `yaml:"gameplay"`
}

// ArenaConfig defines the circular play field, in display pixels.
type ArenaConfig struct {
	Width            int     `yaml:"width"`             // Display width the arena is drawn on
	Height           int     `yaml:"height"`            // Display height the arena is drawn on
	BoundaryRadius   float64 `yaml:"boundary_radius"`   // Nominal rim of the play area
	EngagementRadius float64 `yaml:"engagement_radius"` // Collision tests start at this radius
	MissRadius       float64 `yaml:"miss_radius"`       // Beyond this the ball is lost
}

// BallConfig defines ball physics parameters.
type BallConfig struct {
	Radius         float64 `yaml:"radius"`
	Speed          float64 `yaml:"speed"`           // Pixels per tick after a reset
	SpinFactor     float64 `yaml:"spin_factor"`     // Scales paddle spin into tangential velocity
	Jitter         float64 `yaml:"jitter"`          // Max random deflection per bounce, radians
	BounceCooldown int     `yaml:"bounce_cooldown"` // Ticks before the ball may bounce again
	ResetCooldown  int     `yaml:"reset_cooldown"`  // Ticks before the ball may be declared missed
}

// PaddleConfig defines the arc paddles.
type PaddleConfig struct {
	WidthDeg  float64 `yaml:"width_deg"`  // Angular width of the arc
	ArcOffset float64 `yaml:"arc_offset"` // Arc radius = boundary radius + offset
	Segments  int     `yaml:"segments"`   // Sample points along the arc
	StepDeg   float64 `yaml:"step_deg"`   // Rotation per encoder detent
	Start1Deg float64 `yaml:"start1_deg"`
	Start2Deg float64 `yaml:"start2_deg"`
}

// LoopConfig defines loop timing.
type LoopConfig struct {
	FrameRate    int      `yaml:"frame_rate"`    // Render frames per second
	RespawnPause Duration `yaml:"respawn_pause"` // Wait between a miss and the next ball
}

// AudioConfig defines the sound cues.
type AudioConfig struct {
	Enabled      bool     `yaml:"enabled"`
	SampleRate   int      `yaml:"sample_rate"`
	BouncePitch  float64  `yaml:"bounce_pitch"` // Hz
	ResetPitch   float64  `yaml:"reset_pitch"`  // Hz
	NoteDuration Duration `yaml:"note_duration"`
	Attack       Duration `yaml:"attack"`
	Decay        Duration `yaml:"decay"` // Fall from full level to Sustain
	Sustain      float64  `yaml:"sustain"` // Sustain level, 0..1
	Release      Duration `yaml:"release"`
	Volume       float64  `yaml:"volume"` // Gain in beep's base-2 exponent units
}

// GameplayConfig defines scoring rules.
type GameplayConfig struct {
	WinScore int `yaml:"win_score"` // 0 = endless
}

// Duration is a time.Duration that reads and writes as a Go duration string in YAML.
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// MarshalYAML encodes the duration as a string such as "500ms".
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML decodes a duration string.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}
