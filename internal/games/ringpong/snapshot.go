package ringpong

import (
	"math"

	"github.com/vovakirdan/ringpong/internal/core"
)

// Fixed-point scales for snapshot fields.
const (
	posScale   = 1000      // milli-pixels
	angleScale = 1_000_000 // micro-radians
)

// Snapshot contains the complete state of a game for network transmission.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick           uint64
	BallX          int // milli-pixels
	BallY          int
	BallVX         int // milli-pixels per tick
	BallVY         int
	BallActive     bool
	BounceCooldown int
	ResetCooldown  int
	Paddle1Angle   int // micro-radians
	Paddle2Angle   int
	Score1         int
	Score2         int
	Rally          int
	BestRally      int
	Winner         int // 0=none, 1=Player1, 2=Player2
	GameOver       bool
	Paused         bool
}

func toFixed(v, scale float64) int {
	return int(math.Round(v * scale))
}

func fromFixed(v int, scale float64) float64 {
	return float64(v) / scale
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	pos := g.ball.Position()
	vel := g.ball.Velocity()
	return Snapshot{
		Tick:           g.tick,
		BallX:          toFixed(pos.X, posScale),
		BallY:          toFixed(pos.Y, posScale),
		BallVX:         toFixed(vel.X, posScale),
		BallVY:         toFixed(vel.Y, posScale),
		BallActive:     g.ball.Active(),
		BounceCooldown: g.ball.BounceCooldown(),
		ResetCooldown:  g.ball.ResetCooldown(),
		Paddle1Angle:   toFixed(g.paddle1.Angle(), angleScale),
		Paddle2Angle:   toFixed(g.paddle2.Angle(), angleScale),
		Score1:         g.score1,
		Score2:         g.score2,
		Rally:          g.rally,
		BestRally:      g.bestRally,
		Winner:         int(g.winner),
		GameOver:       g.gameOver,
		Paused:         g.paused,
	}
}

// ApplySnapshot updates the game state from a snapshot.
// Used by clients to mirror the authoritative server state.
func (g *Game) ApplySnapshot(snap Snapshot) {
	g.tick = snap.Tick
	g.ball.Place(
		core.V(fromFixed(snap.BallX, posScale), fromFixed(snap.BallY, posScale)),
		core.V(fromFixed(snap.BallVX, posScale), fromFixed(snap.BallVY, posScale)),
	)
	g.ball.active = snap.BallActive
	g.ball.bounceLeft = max(0, snap.BounceCooldown)
	g.ball.resetLeft = max(0, snap.ResetCooldown)
	g.paddle1.SetAngle(fromFixed(snap.Paddle1Angle, angleScale))
	g.paddle2.SetAngle(fromFixed(snap.Paddle2Angle, angleScale))
	g.score1 = snap.Score1
	g.score2 = snap.Score2
	g.rally = snap.Rally
	g.bestRally = snap.BestRally
	g.winner = core.PlayerID(snap.Winner)
	g.gameOver = snap.GameOver
	g.paused = snap.Paused
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.BallX)          //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BallY)          //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BallVX)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BallVY)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BounceCooldown) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ResetCooldown)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Paddle1Angle)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Paddle2Angle)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score1)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score2)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Rally)          //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BestRally)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Winner)         //#nosec G115 -- hash computation
	h = h*31 + boolBit(snap.BallActive)
	h = h*31 + boolBit(snap.GameOver)
	h = h*31 + boolBit(snap.Paused)
	return h
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
