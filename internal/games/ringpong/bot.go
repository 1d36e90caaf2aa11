package ringpong

import (
	"math"

	"github.com/vovakirdan/ringpong/internal/core"
)

// Bot steers a paddle by turning its encoder, like a player at the knob.
// It aims at the point where the ball will cross the rim and only moves when
// its paddle is the one closer to that point.
type Bot struct {
	player  core.PlayerID
	enc     *core.Encoder
	maxTurn int // Detents per tick
}

// NewBot creates a bot driving enc for player. maxTurn below 1 means 1.
func NewBot(player core.PlayerID, enc *core.Encoder, maxTurn int) *Bot {
	return &Bot{player: player, enc: enc, maxTurn: max(1, maxTurn)}
}

// Drive turns the encoder for the next tick of g.
func (b *Bot) Drive(g *Game) {
	ball := g.Ball()
	if !ball.Active() || g.State().Paused {
		return
	}

	target := escapeAngle(g.Arena(), ball.Position(), ball.Velocity())
	own := g.Paddle(b.player)
	other := g.Paddle(b.player.Other())
	dOwn := core.AngleDistance(own.Angle(), target)
	dOther := core.AngleDistance(other.Angle(), target)
	if dOwn > dOther || (dOwn == dOther && b.player == core.Player2) {
		return
	}

	step := core.Radians(g.Config().Paddle.StepDeg)
	if step <= 0 {
		return
	}
	diff := core.WrapAngle(target - own.Angle())
	if diff > math.Pi {
		diff -= core.TwoPi
	}
	n := core.Clamp(int(math.Round(diff/step)), -b.maxTurn, b.maxTurn)
	if n != 0 {
		b.enc.Turn(n)
	}
}

// escapeAngle returns the angle at which a ball at pos moving with vel crosses
// the arena boundary. A still ball is aimed at where it is.
func escapeAngle(a Arena, pos, vel core.Vec2) float64 {
	d := pos.Sub(a.Center)
	qa := vel.LenSq()
	if qa == 0 {
		return core.WrapAngle(d.Angle())
	}
	qb := 2 * d.Dot(vel)
	qc := d.LenSq() - a.BoundaryRadius*a.BoundaryRadius
	disc := qb*qb - 4*qa*qc
	if disc < 0 {
		return core.WrapAngle(d.Angle())
	}
	t := (-qb + math.Sqrt(disc)) / (2 * qa)
	return core.WrapAngle(d.Add(vel.Scale(t)).Angle())
}
