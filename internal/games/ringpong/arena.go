// Package ringpong implements a circular two-player pong.
// A single ball bounces inside a round arena whose rim is guarded by two
// paddles sweeping along arcs. Paddles are driven by rotary inputs; a ball
// that escapes past the rim is charged to the nearest paddle and respawns
// at the center after a short pause.
package ringpong

import (
	"github.com/vovakirdan/ringpong/internal/config"
	"github.com/vovakirdan/ringpong/internal/core"
)

// Arena is the immutable circular play field, in display pixels.
type Arena struct {
	Width            int
	Height           int
	Center           core.Vec2
	BoundaryRadius   float64 // Nominal rim; bounces snap the ball inside it
	EngagementRadius float64 // Collision tests start at this radius
	MissRadius       float64 // Beyond this radius an unguarded ball is lost
}

// NewArena builds an arena centered on the display.
// The center uses integer halves of the display size, as pixel grids do.
func NewArena(cfg config.ArenaConfig) Arena {
	return Arena{
		Width:            cfg.Width,
		Height:           cfg.Height,
		Center:           core.V(float64(cfg.Width/2), float64(cfg.Height/2)),
		BoundaryRadius:   cfg.BoundaryRadius,
		EngagementRadius: cfg.EngagementRadius,
		MissRadius:       cfg.MissRadius,
	}
}

// Polar returns the angle and distance of p from the arena center.
func (a Arena) Polar(p core.Vec2) (angle, radius float64) {
	return core.AngleAndRadius(a.Center, p)
}

// At returns the point at the given radius and angle from the center.
func (a Arena) At(radius, angle float64) core.Vec2 {
	return core.PolarToCartesian(a.Center, radius, angle)
}
