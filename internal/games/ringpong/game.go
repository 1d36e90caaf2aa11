package ringpong

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/ringpong/internal/config"
	"github.com/vovakirdan/ringpong/internal/core"
)

// Palette
const (
	BallColor    = core.ColorBrightWhite
	Paddle1Color = core.ColorRed
	Paddle2Color = core.ColorGreen
	RimColor     = core.ColorGray
)

// Deps are the collaborators a Game talks to. Nil fields get harmless defaults:
// fixed paddles, silent cues, the system clock and a discarding logger.
type Deps struct {
	Input1 RotaryInput
	Input2 RotaryInput
	Cues   CuePlayer
	Clock  core.Clock
	Logger *log.Logger
}

// Game owns one arena, one ball and two paddles and advances them tick by tick.
// It is not safe for concurrent use; only the inputs may be turned from other
// goroutines.
type Game struct {
	cfg     config.RingPongConfig
	runtime core.RuntimeConfig
	arena   Arena

	ball    *Ball
	paddle1 *Paddle
	paddle2 *Paddle
	in1     *DeltaReader
	in2     *DeltaReader

	cues   CuePlayer
	clock  core.Clock
	logger *log.Logger

	bounceCue    Cue
	resetCue     Cue
	respawnPause time.Duration
	missedAt     time.Time

	tick      uint64
	score1    int
	score2    int
	rally     int
	bestRally int
	winner    core.PlayerID
	gameOver  bool
	paused    bool
}

// New creates a game from cfg. The ball is served immediately.
// cfg is expected to have passed config.Validate.
func New(cfg config.RingPongConfig, runtime core.RuntimeConfig, deps Deps) *Game {
	if deps.Cues == nil {
		deps.Cues = SilentCues{}
	}
	if deps.Clock == nil {
		deps.Clock = core.SystemClock{}
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}

	arena := NewArena(cfg.Arena)
	rng := rand.New(rand.NewSource(runtime.Seed))

	g := &Game{
		cfg:     cfg,
		runtime: runtime,
		arena:   arena,
		ball:    NewBall(arena, cfg.Ball, rng),
		paddle1: NewPaddle(core.Player1, Paddle1Color, arena, cfg.Paddle, core.Radians(cfg.Paddle.Start1Deg)),
		paddle2: NewPaddle(core.Player2, Paddle2Color, arena, cfg.Paddle, core.Radians(cfg.Paddle.Start2Deg)),
		in1:     NewDeltaReader(deps.Input1),
		in2:     NewDeltaReader(deps.Input2),
		cues:    deps.Cues,
		clock:   deps.Clock,
		logger:  deps.Logger,
		bounceCue: Cue{
			Kind:     CueBounce,
			Pitch:    cfg.Audio.BouncePitch,
			Duration: cfg.Audio.NoteDuration.Std(),
		},
		resetCue: Cue{
			Kind:     CueReset,
			Pitch:    cfg.Audio.ResetPitch,
			Duration: cfg.Audio.NoteDuration.Std(),
		},
		respawnPause: cfg.Loop.RespawnPause.Std(),
	}
	return g
}

// Step advances the game by one tick.
func (g *Game) Step() core.StepResult {
	var res core.StepResult

	if g.gameOver {
		res.State = g.State()
		return res
	}

	if g.paused {
		// Swallow turns made while paused so paddles do not jump on resume.
		g.in1.Drain()
		g.in2.Drain()
		res.State = g.State()
		return res
	}

	g.tick++

	g.paddle1.Update(g.in1.Delta())
	g.paddle2.Update(g.in2.Delta())

	if g.ball.Active() {
		g.ball.Update()
		angle, radius := g.ball.AngleAndRadius()
		if radius >= g.arena.EngagementRadius {
			c1 := g.paddle1.Collides(g.ball)
			c2 := g.paddle2.Collides(g.ball)
			switch {
			case c1 && g.ball.BounceCooldown() == 0:
				g.bounce(g.paddle1, &res)
			case c2 && g.ball.BounceCooldown() == 0:
				g.bounce(g.paddle2, &res)
			case !c1 && !c2 && g.ball.ResetCooldown() == 0 && radius > g.arena.MissRadius:
				g.miss(angle, &res)
			}
		}
	} else if g.clock.Now().Sub(g.missedAt) >= g.respawnPause {
		g.play(g.resetCue)
		g.ball.Reset()
		res.Respawn = true
		g.logger.Debug("ball respawned", "tick", g.tick)
	}

	res.State = g.State()
	return res
}

func (g *Game) bounce(p *Paddle, res *core.StepResult) {
	if !g.ball.Bounce(p) {
		return
	}
	g.rally++
	g.bestRally = max(g.bestRally, g.rally)
	res.Bounced = true
	g.play(g.bounceCue)
}

func (g *Game) miss(angle float64, res *core.StepResult) {
	g.ball.Deactivate()
	g.missedAt = g.clock.Now()

	loser := g.nearestPaddle(angle)
	if loser == core.Player1 {
		g.score2++
	} else {
		g.score1++
	}

	res.Missed = true
	res.MissedBy = loser
	res.FinishedRally = g.rally
	g.logger.Debug("ball missed", "tick", g.tick, "by", loser, "rally", g.rally,
		"score1", g.score1, "score2", g.score2)
	g.rally = 0

	if win := g.cfg.Gameplay.WinScore; win > 0 {
		switch {
		case g.score1 >= win:
			g.winner = core.Player1
		case g.score2 >= win:
			g.winner = core.Player2
		}
		if g.winner != 0 {
			g.gameOver = true
			g.logger.Info("match over", "winner", g.winner, "score1", g.score1, "score2", g.score2)
		}
	}
}

// tieEpsilon absorbs rounding when comparing angular distances.
const tieEpsilon = 1e-9

// nearestPaddle returns the player whose arc center is angularly closest to
// angle. Ties go to player 1.
func (g *Game) nearestPaddle(angle float64) core.PlayerID {
	d1 := core.AngleDistance(angle, g.paddle1.Angle())
	d2 := core.AngleDistance(angle, g.paddle2.Angle())
	if d2 < d1-tieEpsilon {
		return core.Player2
	}
	return core.Player1
}

func (g *Game) play(cue Cue) {
	if err := g.cues.Play(cue); err != nil {
		g.logger.Warn("cue playback failed", "cue", cue.Kind, "error", err)
	}
}

// TogglePause pauses or resumes the game.
func (g *Game) TogglePause() {
	if g.gameOver {
		return
	}
	g.paused = !g.paused
}

// Restart clears scores and rallies, returns paddles to their start angles
// and serves a new ball. The RNG is not reseeded.
func (g *Game) Restart() {
	g.tick = 0
	g.score1, g.score2 = 0, 0
	g.rally, g.bestRally = 0, 0
	g.winner = 0
	g.gameOver = false
	g.paused = false
	g.paddle1.SetAngle(core.Radians(g.cfg.Paddle.Start1Deg))
	g.paddle2.SetAngle(core.Radians(g.cfg.Paddle.Start2Deg))
	g.in1.Drain()
	g.in2.Drain()
	g.ball.Reset()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score1:   g.score1,
		Score2:   g.score2,
		Rally:    g.rally,
		Winner:   g.winner,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Frame returns the renderable view of the current tick.
func (g *Game) Frame() Frame {
	return Frame{
		Tick:  g.tick,
		Arena: g.arena,
		Ball: BallView{
			Pos:     g.ball.RenderPos(),
			Radius:  g.ball.Radius(),
			Color:   BallColor,
			Visible: g.ball.Active(),
		},
		Paddles: [2]PaddleView{
			paddleView(g.paddle1),
			paddleView(g.paddle2),
		},
		State:     g.State(),
		BestRally: g.bestRally,
	}
}

func paddleView(p *Paddle) PaddleView {
	return PaddleView{
		Player:  p.Player(),
		Color:   p.Color(),
		Angle:   p.Angle(),
		Samples: p.Samples(),
	}
}

// Ball returns the ball.
func (g *Game) Ball() *Ball { return g.ball }

// Paddle returns the paddle owned by id.
func (g *Game) Paddle(id core.PlayerID) *Paddle {
	if id == core.Player2 {
		return g.paddle2
	}
	return g.paddle1
}

// Arena returns the play field.
func (g *Game) Arena() Arena { return g.arena }

// Tick returns the number of unpaused ticks since the start or last restart.
func (g *Game) Tick() uint64 { return g.tick }

// BestRally returns the longest rally of this game.
func (g *Game) BestRally() int { return g.bestRally }

// Config returns the configuration the game was built with.
func (g *Game) Config() config.RingPongConfig { return g.cfg }

// Runtime returns the runtime settings the game was built with.
func (g *Game) Runtime() core.RuntimeConfig { return g.runtime }
