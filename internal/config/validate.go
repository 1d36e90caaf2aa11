package config

import (
	"fmt"
	"math"
)

// ValidationError describes one invalid configuration value.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Validate checks that cfg describes a playable arena.
// The first problem found is returned as a ValidationError.
func Validate(cfg RingPongConfig) error {
	a := cfg.Arena
	switch {
	case a.Width <= 0 || a.Height <= 0:
		return invalid("arena", "display size must be positive, got %dx%d", a.Width, a.Height)
	case !positive(a.BoundaryRadius):
		return invalid("arena.boundary_radius", "must be positive, got %g", a.BoundaryRadius)
	case !positive(a.EngagementRadius):
		return invalid("arena.engagement_radius", "must be positive, got %g", a.EngagementRadius)
	case a.MissRadius < a.EngagementRadius:
		return invalid("arena.miss_radius", "must be at least engagement_radius (%g), got %g", a.EngagementRadius, a.MissRadius)
	}

	b := cfg.Ball
	switch {
	case !positive(b.Radius) || b.Radius >= a.BoundaryRadius:
		return invalid("ball.radius", "must be in (0, boundary_radius), got %g", b.Radius)
	case !positive(b.Speed):
		return invalid("ball.speed", "must be positive, got %g", b.Speed)
	case !finite(b.SpinFactor):
		return invalid("ball.spin_factor", "must be finite")
	case !finite(b.Jitter) || b.Jitter < 0:
		return invalid("ball.jitter", "must be non-negative, got %g", b.Jitter)
	case b.BounceCooldown < 0:
		return invalid("ball.bounce_cooldown", "must be non-negative, got %d", b.BounceCooldown)
	case b.ResetCooldown < 0:
		return invalid("ball.reset_cooldown", "must be non-negative, got %d", b.ResetCooldown)
	}

	p := cfg.Paddle
	switch {
	case !positive(p.WidthDeg) || p.WidthDeg >= 360:
		return invalid("paddle.width_deg", "must be in (0, 360), got %g", p.WidthDeg)
	case p.Segments < 1:
		return invalid("paddle.segments", "must be at least 1, got %d", p.Segments)
	case !positive(p.StepDeg):
		return invalid("paddle.step_deg", "must be positive, got %g", p.StepDeg)
	case !finite(p.ArcOffset):
		return invalid("paddle.arc_offset", "must be finite")
	case !finite(p.Start1Deg) || !finite(p.Start2Deg):
		return invalid("paddle", "start angles must be finite")
	}

	l := cfg.Loop
	switch {
	case l.FrameRate < 1 || l.FrameRate > 240:
		return invalid("loop.frame_rate", "must be in [1, 240], got %d", l.FrameRate)
	case l.RespawnPause < 0:
		return invalid("loop.respawn_pause", "must be non-negative, got %s", l.RespawnPause.Std())
	}

	if au := cfg.Audio; au.Enabled {
		switch {
		case au.SampleRate <= 0:
			return invalid("audio.sample_rate", "must be positive, got %d", au.SampleRate)
		case !positive(au.BouncePitch) || !positive(au.ResetPitch):
			return invalid("audio", "pitches must be positive")
		case au.NoteDuration <= 0:
			return invalid("audio.note_duration", "must be positive, got %s", au.NoteDuration.Std())
		case au.Attack < 0 || au.Decay < 0 || au.Release < 0:
			return invalid("audio", "attack, decay and release must be non-negative")
		case !finite(au.Sustain) || au.Sustain < 0 || au.Sustain > 1:
			return invalid("audio.sustain", "must be in [0, 1], got %g", au.Sustain)
		}
	}

	if cfg.Gameplay.WinScore < 0 {
		return invalid("gameplay.win_score", "must be non-negative, got %d", cfg.Gameplay.WinScore)
	}
	return nil
}

func positive(v float64) bool {
	return finite(v) && v > 0
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
