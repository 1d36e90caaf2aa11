package ringpong

import (
	"math/rand"

	"github.com/vovakirdan/ringpong/internal/config"
	"github.com/vovakirdan/ringpong/internal/core"
)

// Ball is the single moving body. Position and velocity are continuous;
// collision tests use the position truncated to display pixels.
type Ball struct {
	arena Arena
	rng   *rand.Rand

	radius         float64
	speed          float64
	spinFactor     float64
	jitter         float64
	bounceCooldown int // ticks set on each bounce
	resetCooldown  int

	pos    core.Vec2
	vel    core.Vec2
	active bool

	// Remaining ticks. Never negative.
	bounceLeft int
	resetLeft  int
}

// NewBall creates a ball and serves it from the arena center.
func NewBall(arena Arena, cfg config.BallConfig, rng *rand.Rand) *Ball {
	b := &Ball{
		arena:          arena,
		rng:            rng,
		radius:         cfg.Radius,
		speed:          cfg.Speed,
		spinFactor:     cfg.SpinFactor,
		jitter:         cfg.Jitter,
		bounceCooldown: cfg.BounceCooldown,
		resetCooldown:  cfg.ResetCooldown,
	}
	b.Reset()
	return b
}

// Reset serves the ball from the center in a uniformly random direction.
func (b *Ball) Reset() {
	b.pos = b.arena.Center
	b.vel = core.V(b.speed, 0).Rotate(b.rng.Float64() * core.TwoPi)
	b.active = true
	b.bounceLeft = 0
	b.resetLeft = 0
}

// Update advances the ball by one Euler step and counts down the cooldowns.
// An inactive ball does not move.
func (b *Ball) Update() {
	if !b.active {
		return
	}
	b.pos = b.pos.Add(b.vel)
	if b.bounceLeft > 0 {
		b.bounceLeft--
	}
	if b.resetLeft > 0 {
		b.resetLeft--
	}
}

// AngleAndRadius returns the ball's polar position relative to the arena center.
func (b *Ball) AngleAndRadius() (angle, radius float64) {
	return b.arena.Polar(b.pos)
}

// Bounce reflects the ball off the rim, adding spin from p when it is not nil,
// and snaps it just inside the boundary. It reports false and leaves the ball
// untouched when the ball sits exactly on the center, where no normal exists.
func (b *Ball) Bounce(p *Paddle) bool {
	n, ok := b.pos.Sub(b.arena.Center).Normalize()
	if !ok {
		return false
	}

	b.vel = core.Reflect(b.vel, n)

	if p != nil {
		// Tangent points counter-clockwise in screen coordinates, the same
		// sense as a positive paddle rotation.
		b.vel = b.vel.Add(n.Perp().Scale(b.spinFactor * p.LastSpin()))
	}

	if b.jitter > 0 {
		b.vel = b.vel.Rotate((b.rng.Float64()*2 - 1) * b.jitter)
	}

	b.pos = b.arena.Center.Add(n.Scale(b.arena.BoundaryRadius - b.radius))
	b.bounceLeft = b.bounceCooldown
	b.resetLeft = b.resetCooldown
	return true
}

// IsPointInBall reports whether (x, y) lies within the ball's radius of its
// render position.
func (b *Ball) IsPointInBall(x, y float64) bool {
	rp := b.RenderPos()
	dx := x - float64(rp.X)
	dy := y - float64(rp.Y)
	return dx*dx+dy*dy <= b.radius*b.radius
}

// Deactivate takes the ball out of play after a miss.
func (b *Ball) Deactivate() {
	b.active = false
}

// Place moves the ball to pos with velocity vel, keeping cooldowns.
func (b *Ball) Place(pos, vel core.Vec2) {
	b.pos = pos
	b.vel = vel
}

// Active reports whether the ball is in play.
func (b *Ball) Active() bool { return b.active }

// Position returns the continuous position.
func (b *Ball) Position() core.Vec2 { return b.pos }

// Velocity returns the per-tick displacement.
func (b *Ball) Velocity() core.Vec2 { return b.vel }

// RenderPos returns the position truncated to display pixels.
func (b *Ball) RenderPos() core.Point { return b.pos.Trunc() }

// Radius returns the collision radius.
func (b *Ball) Radius() float64 { return b.radius }

// BounceCooldown returns the ticks left before the ball may bounce again.
func (b *Ball) BounceCooldown() int { return b.bounceLeft }

// ResetCooldown returns the ticks left before the ball may be declared missed.
func (b *Ball) ResetCooldown() int { return b.resetLeft }
