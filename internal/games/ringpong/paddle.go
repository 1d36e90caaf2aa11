package ringpong

import (
	"github.com/vovakirdan/ringpong/internal/config"
	"github.com/vovakirdan/ringpong/internal/core"
)

// Paddle is an arc on the rim of the arena, rotated by encoder detents.
// It is represented by evenly spaced sample points used for collision.
type Paddle struct {
	player core.PlayerID
	color  core.Color
	center core.Vec2

	angle     float64 // Arc center, always in [0, 2pi)
	lastSpin  float64 // Rotation applied by the latest Update, radians
	width     float64
	arcRadius float64
	step      float64
	segments  int

	samples    []core.Vec2
	generation int // incremented on every sample recompute
}

// NewPaddle creates a paddle for player centered at startAngle radians.
func NewPaddle(player core.PlayerID, color core.Color, arena Arena, cfg config.PaddleConfig, startAngle float64) *Paddle {
	p := &Paddle{
		player:    player,
		color:     color,
		center:    arena.Center,
		width:     core.Radians(cfg.WidthDeg),
		arcRadius: arena.BoundaryRadius + cfg.ArcOffset,
		step:      core.Radians(cfg.StepDeg),
		segments:  max(1, cfg.Segments),
	}
	p.samples = make([]core.Vec2, p.segments)
	p.SetAngle(startAngle)
	return p
}

// Update applies rawDelta encoder detents. A zero delta clears the spin and
// leaves the arc where it is.
func (p *Paddle) Update(rawDelta int) {
	if rawDelta == 0 {
		p.lastSpin = 0
		return
	}
	turn := float64(rawDelta) * p.step
	p.angle = core.WrapAngle(p.angle + turn)
	p.lastSpin = turn
	p.recomputeSamples()
}

// SetAngle moves the arc center to angle without imparting spin.
func (p *Paddle) SetAngle(angle float64) {
	p.angle = core.WrapAngle(angle)
	p.lastSpin = 0
	p.recomputeSamples()
}

// recomputeSamples spreads the sample points over [angle-width/2, angle+width/2],
// both ends included. A single sample sits on the arc center.
func (p *Paddle) recomputeSamples() {
	start := p.angle - p.width/2
	for i := range p.samples {
		frac := 0.5
		if p.segments > 1 {
			frac = float64(i) / float64(p.segments-1)
		}
		p.samples[i] = core.PolarToCartesian(p.center, p.arcRadius, start+frac*p.width)
	}
	p.generation++
}

// Collides reports whether any sample point lies inside the ball.
func (p *Paddle) Collides(b *Ball) bool {
	for _, s := range p.samples {
		if b.IsPointInBall(s.X, s.Y) {
			return true
		}
	}
	return false
}

// Angle returns the arc center in [0, 2pi).
func (p *Paddle) Angle() float64 { return p.angle }

// LastSpin returns the rotation applied by the latest Update, in radians.
func (p *Paddle) LastSpin() float64 { return p.lastSpin }

// Player returns the owning player.
func (p *Paddle) Player() core.PlayerID { return p.player }

// Color returns the paddle color.
func (p *Paddle) Color() core.Color { return p.color }

// Samples returns a copy of the sample points.
func (p *Paddle) Samples() []core.Vec2 {
	out := make([]core.Vec2, len(p.samples))
	copy(out, p.samples)
	return out
}
