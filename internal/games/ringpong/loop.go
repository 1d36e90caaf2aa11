package ringpong

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/ringpong/internal/core"
)

// Runner drives a Game at a fixed frame rate: step, render, wait.
type Runner struct {
	game     *Game
	renderer Renderer
	clock    core.Clock
	logger   *log.Logger
	interval time.Duration

	// MaxTicks stops the loop after this many iterations when positive.
	MaxTicks int

	// OnStep, when set, observes every step result after rendering.
	OnStep func(core.StepResult)
}

// NewRunner creates a runner for g. The frame rate comes from the game's
// runtime config, falling back to its loop config.
func NewRunner(g *Game, renderer Renderer, clock core.Clock, logger *log.Logger) *Runner {
	if clock == nil {
		clock = core.SystemClock{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	fps := g.Runtime().FrameRate
	if fps <= 0 {
		fps = g.Config().Loop.FrameRate
	}
	if fps <= 0 {
		fps = 30
	}
	return &Runner{
		game:     g,
		renderer: renderer,
		clock:    clock,
		logger:   logger,
		interval: time.Second / time.Duration(fps),
	}
}

// Interval returns the wait between ticks.
func (r *Runner) Interval() time.Duration {
	return r.interval
}

// Run loops until the game is over, MaxTicks is reached or ctx is cancelled.
// Render failures are logged and the loop continues. Run returns nil when the
// game ends or the tick limit is hit, and ctx.Err() on cancellation.
func (r *Runner) Run(ctx context.Context) error {
	ticks := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		res := r.game.Step()
		ticks++

		if r.renderer != nil {
			if err := r.renderer.Render(r.game.Frame()); err != nil {
				r.logger.Warn("render failed", "tick", r.game.Tick(), "error", err)
			}
		}
		if r.OnStep != nil {
			r.OnStep(res)
		}

		if res.State.GameOver {
			return nil
		}
		if r.MaxTicks > 0 && ticks >= r.MaxTicks {
			return nil
		}

		if err := r.clock.Sleep(ctx, r.interval); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			r.logger.Warn("clock sleep failed", "error", err)
		}
	}
}
