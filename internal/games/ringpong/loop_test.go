package ringpong

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/ringpong/internal/core"
)

func TestRunnerInterval(t *testing.T) {
	r := newRig(t, testConfig(), 1)
	runner := NewRunner(r.game, nil, r.clock, nil)
	if got := runner.Interval(); got != time.Second/30 {
		t.Errorf("Interval() = %v, expected %v", got, time.Second/30)
	}
}

func TestRunnerMaxTicks(t *testing.T) {
	r := newRig(t, testConfig(), 1)
	frames := 0
	runner := NewRunner(r.game, RendererFunc(func(Frame) error {
		frames++
		return nil
	}), r.clock, nil)
	runner.MaxTicks = 90

	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if frames != 90 {
		t.Errorf("rendered %d frames, expected 90", frames)
	}
	if got, want := r.clock.Now().Sub(testEpoch), 89*runner.Interval(); got != want {
		t.Errorf("clock advanced %v, expected %v", got, want)
	}
	if r.game.Tick() != 90 {
		t.Errorf("Tick() = %d, expected 90", r.game.Tick())
	}
}

func TestRunnerRenderErrorsAreLogged(t *testing.T) {
	r := newRig(t, testConfig(), 1)
	var logs strings.Builder
	logger := log.New(&logs)

	runner := NewRunner(r.game, RendererFunc(func(Frame) error {
		return errors.New("display offline")
	}), r.clock, logger)
	runner.MaxTicks = 5

	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if r.game.Tick() != 5 {
		t.Errorf("Tick() = %d, expected the loop to keep running", r.game.Tick())
	}
	if n := strings.Count(logs.String(), "render failed"); n != 5 {
		t.Errorf("logged %d render failures, expected 5", n)
	}
}

func TestRunnerStopsOnGameOver(t *testing.T) {
	cfg := testConfig()
	cfg.Paddle.Start1Deg = 90
	cfg.Paddle.Start2Deg = 270
	cfg.Gameplay.WinScore = 1
	r := newRig(t, cfg, 1)
	r.serve(core.V(2.5, 0))

	var last core.StepResult
	runner := NewRunner(r.game, nil, r.clock, nil)
	runner.MaxTicks = 1000
	runner.OnStep = func(res core.StepResult) { last = res }

	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !last.State.GameOver || r.game.Tick() != 49 {
		t.Errorf("Run() stopped at tick %d with %+v, expected game over at tick 49", r.game.Tick(), last.State)
	}
}

func TestRunnerCancelled(t *testing.T) {
	r := newRig(t, testConfig(), 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(r.game, nil, r.clock, nil)
	if err := runner.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, expected context.Canceled", err)
	}
	if r.game.Tick() != 0 {
		t.Error("a cancelled runner should not step the game")
	}
}

func TestRunnerCancelledMidRun(t *testing.T) {
	r := newRig(t, testConfig(), 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner := NewRunner(r.game, nil, r.clock, nil)
	runner.OnStep = func(core.StepResult) {
		if r.game.Tick() == 10 {
			cancel()
		}
	}
	if err := runner.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, expected context.Canceled", err)
	}
	if r.game.Tick() != 10 {
		t.Errorf("Tick() = %d, expected 10", r.game.Tick())
	}
}
