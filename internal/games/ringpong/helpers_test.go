package ringpong

import (
	"bytes"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/ringpong/internal/config"
	"github.com/vovakirdan/ringpong/internal/core"
)

var testEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// testConfig returns the default config with jitter disabled.
func testConfig() config.RingPongConfig {
	cfg := config.DefaultRingPongConfig()
	cfg.Ball.Jitter = 0
	return cfg
}

type recordingCues struct {
	played []Cue
	err    error
}

func (r *recordingCues) Play(c Cue) error {
	r.played = append(r.played, c)
	return r.err
}

type testRig struct {
	game  *Game
	in1   *core.Encoder
	in2   *core.Encoder
	cues  *recordingCues
	clock *core.ManualClock
	logs  *bytes.Buffer
}

func newRig(t *testing.T, cfg config.RingPongConfig, seed int64) *testRig {
	t.Helper()
	if err := config.Validate(cfg); err != nil {
		t.Fatalf("invalid test config: %v", err)
	}
	r := &testRig{
		in1:   core.NewEncoder(),
		in2:   core.NewEncoder(),
		cues:  &recordingCues{},
		clock: core.NewManualClock(testEpoch),
		logs:  &bytes.Buffer{},
	}
	logger := log.NewWithOptions(r.logs, log.Options{Level: log.DebugLevel})
	runtime := core.DefaultConfig()
	runtime.Seed = seed
	r.game = New(cfg, runtime, Deps{
		Input1: r.in1,
		Input2: r.in2,
		Cues:   r.cues,
		Clock:  r.clock,
		Logger: logger,
	})
	return r
}

// serve places the ball at the arena center with velocity vel.
func (r *testRig) serve(vel core.Vec2) {
	r.game.Ball().Place(r.game.Arena().Center, vel)
}
