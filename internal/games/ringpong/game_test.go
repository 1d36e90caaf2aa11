package ringpong

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/ringpong/internal/core"
)

func TestGameStraightShotMisses(t *testing.T) {
	cfg := testConfig()
	cfg.Paddle.Start1Deg = 90
	cfg.Paddle.Start2Deg = 270
	r := newRig(t, cfg, 1)
	r.serve(core.V(2.5, 0))

	for i := 1; i <= 40; i++ {
		if res := r.game.Step(); res.Missed || res.Bounced {
			t.Fatalf("tick %d: unexpected event %+v", i, res)
		}
	}
	if _, radius := r.game.Ball().AngleAndRadius(); math.Abs(radius-100) > 1e-9 {
		t.Fatalf("radius after 40 ticks = %v, expected 100", radius)
	}

	for i := 41; i <= 48; i++ {
		r.game.Step()
		if !r.game.Ball().Active() {
			t.Fatalf("ball inactive at tick %d, radius not yet past 120", i)
		}
	}

	res := r.game.Step()
	if !res.Missed || r.game.Ball().Active() {
		t.Fatalf("tick 49 (radius 122.5): Missed = %v, active = %v, expected a miss", res.Missed, r.game.Ball().Active())
	}
	// Equidistant paddles: player 1 is charged.
	if res.MissedBy != core.Player1 || res.State.Score2 != 1 || res.State.Score1 != 0 {
		t.Errorf("miss result = %+v, expected player 1 charged and player 2 scoring", res)
	}
}

func TestGameBounceOffPaddle(t *testing.T) {
	r := newRig(t, testConfig(), 1)
	r.game.Ball().Place(r.game.Arena().Center.Add(core.V(97.5, 0)), core.V(2.5, 0))

	res := r.game.Step()

	if !res.Bounced {
		t.Fatal("Step() should bounce off paddle 1 at angle 0")
	}
	if v := r.game.Ball().Velocity(); v.X >= 0 {
		t.Errorf("velocity after bounce = %v, expected negative x", v)
	}
	if res.State.Rally != 1 {
		t.Errorf("Rally = %d, expected 1", res.State.Rally)
	}
	if len(r.cues.played) != 1 || r.cues.played[0].Kind != CueBounce || r.cues.played[0].Pitch != 440 {
		t.Errorf("cues = %+v, expected one 440 Hz bounce cue", r.cues.played)
	}
	if r.cues.played[0].Duration != 50*time.Millisecond {
		t.Errorf("cue duration = %v, expected 50ms", r.cues.played[0].Duration)
	}
}

func TestGameBounceCooldownPreventsDoubleBounce(t *testing.T) {
	r := newRig(t, testConfig(), 1)
	r.game.Ball().Place(r.game.Arena().Center.Add(core.V(97.5, 0)), core.V(2.5, 0))
	r.game.Step()

	// Push the ball straight back into the paddle before the cooldown expires.
	r.game.Ball().Place(r.game.Arena().Center.Add(core.V(99, 0)), core.V(1, 0))
	if res := r.game.Step(); res.Bounced {
		t.Error("ball bounced again while its bounce cooldown was running")
	}
}

func TestGameMissGuards(t *testing.T) {
	tests := []struct {
		name        string
		start1      float64
		start2      float64
		missRadius  float64
		radius      float64 // Ball distance from center along angle 0
		bounceLeft  int
		resetLeft   int
		wantMissed  bool
		wantBounced bool
	}{
		// Paddles at 90/270 leave angle 0 unguarded.
		{"reset cooldown holds the miss", 90, 270, 120, 125, 0, 5, false, false},
		{"unguarded ball past miss radius", 90, 270, 120, 125, 0, 0, true, false},
		// Paddle 1 at 0 degrees still overlaps a ball at radius 110.
		{"overlap during bounce cooldown", 0, 180, 105, 110, 5, 0, false, false},
		{"overlap after bounce cooldown", 0, 180, 105, 110, 0, 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Paddle.Start1Deg = tt.start1
			cfg.Paddle.Start2Deg = tt.start2
			cfg.Arena.MissRadius = tt.missRadius
			r := newRig(t, cfg, 1)

			ball := r.game.Ball()
			ball.Place(r.game.Arena().Center.Add(core.V(tt.radius, 0)), core.V(0.5, 0))
			ball.bounceLeft = tt.bounceLeft
			ball.resetLeft = tt.resetLeft

			res := r.game.Step()
			if res.Missed != tt.wantMissed || res.Bounced != tt.wantBounced {
				t.Errorf("Step() missed = %v, bounced = %v, expected %v, %v",
					res.Missed, res.Bounced, tt.wantMissed, tt.wantBounced)
			}
			if ball.Active() == tt.wantMissed {
				t.Errorf("Active() = %v after missed = %v", ball.Active(), res.Missed)
			}
		})
	}
}

func TestGamePaddleOnePrecedence(t *testing.T) {
	cfg := testConfig()
	cfg.Paddle.Start1Deg = 0
	cfg.Paddle.Start2Deg = 0
	r := newRig(t, cfg, 1)

	// Both arcs still cover angle 0 but spin in opposite directions.
	r.in1.Turn(1)
	r.in2.Turn(-1)
	r.game.Ball().Place(r.game.Arena().Center.Add(core.V(97.5, 0)), core.V(2.5, 0))

	if res := r.game.Step(); !res.Bounced {
		t.Fatal("expected a bounce")
	}
	if vy := r.game.Ball().Velocity().Y; vy <= 0 {
		t.Errorf("vy = %v, expected positive spin from paddle 1", vy)
	}
}

func TestGameMissChargedToNearestPaddle(t *testing.T) {
	r := newRig(t, testConfig(), 1) // paddles at 0 and 180 degrees
	r.serve(core.V(2.5, 0).Rotate(core.Radians(100)))

	var res core.StepResult
	for i := 0; i < 60 && !res.Missed; i++ {
		res = r.game.Step()
	}
	if !res.Missed {
		t.Fatal("ball should have escaped at 100 degrees")
	}
	if res.MissedBy != core.Player2 {
		t.Errorf("MissedBy = %v, expected %v", res.MissedBy, core.Player2)
	}
	if res.State.Score1 != 1 || res.State.Score2 != 0 {
		t.Errorf("score = %d:%d, expected 1:0", res.State.Score1, res.State.Score2)
	}
}

func TestGameRespawnAfterPause(t *testing.T) {
	cfg := testConfig()
	cfg.Paddle.Start1Deg = 90
	cfg.Paddle.Start2Deg = 270
	r := newRig(t, cfg, 1)
	r.serve(core.V(2.5, 0))

	for r.game.Ball().Active() {
		r.game.Step()
	}

	r.clock.Advance(499 * time.Millisecond)
	if res := r.game.Step(); res.Respawn || r.game.Ball().Active() {
		t.Fatal("ball respawned before the pause elapsed")
	}

	r.clock.Advance(time.Millisecond)
	res := r.game.Step()
	if !res.Respawn || !r.game.Ball().Active() {
		t.Fatal("ball should respawn once the pause has elapsed")
	}
	if r.game.Ball().Position() != r.game.Arena().Center {
		t.Errorf("respawn position = %v, expected center", r.game.Ball().Position())
	}
	last := r.cues.played[len(r.cues.played)-1]
	if last.Kind != CueReset || last.Pitch != 220 {
		t.Errorf("last cue = %+v, expected 220 Hz reset cue", last)
	}
}

func TestGameWinScoreEndsMatch(t *testing.T) {
	cfg := testConfig()
	cfg.Paddle.Start1Deg = 90
	cfg.Paddle.Start2Deg = 270
	cfg.Gameplay.WinScore = 1
	r := newRig(t, cfg, 1)
	r.serve(core.V(2.5, 0))

	var res core.StepResult
	for !res.State.GameOver && r.game.Tick() < 100 {
		res = r.game.Step()
	}
	if !res.State.GameOver || res.State.Winner != core.Player2 {
		t.Fatalf("state = %+v, expected player 2 to win", res.State)
	}

	tick := r.game.Tick()
	r.clock.Advance(time.Second)
	r.game.Step()
	if r.game.Tick() != tick || r.game.Ball().Active() {
		t.Error("Step() after game over should do nothing")
	}
	if !strings.Contains(r.logs.String(), "match over") {
		t.Error("game over should be logged")
	}
}

func TestGamePauseDrainsInput(t *testing.T) {
	r := newRig(t, testConfig(), 1)
	angle := r.game.Paddle(core.Player1).Angle()

	r.game.TogglePause()
	r.in1.Turn(5)
	res := r.game.Step()
	if !res.State.Paused || r.game.Tick() != 0 {
		t.Fatal("paused Step() should not advance the game")
	}

	r.game.TogglePause()
	r.game.Step()
	if r.game.Paddle(core.Player1).Angle() != angle {
		t.Error("turns made while paused should be discarded")
	}
	if r.game.Tick() != 1 {
		t.Errorf("Tick() = %d, expected 1", r.game.Tick())
	}

	r.in1.Turn(2)
	r.game.Step()
	if got := r.game.Paddle(core.Player1).Angle(); math.Abs(got-core.Radians(6)) > 1e-9 {
		t.Errorf("Angle() = %v, expected 6 degrees", got)
	}
}

func TestGameRestart(t *testing.T) {
	cfg := testConfig()
	cfg.Paddle.Start1Deg = 90
	cfg.Paddle.Start2Deg = 270
	r := newRig(t, cfg, 1)
	r.serve(core.V(2.5, 0))
	r.in1.Turn(7)
	for r.game.Ball().Active() {
		r.game.Step()
	}

	r.game.Restart()

	st := r.game.State()
	if st.Score1 != 0 || st.Score2 != 0 || st.GameOver || st.Paused || st.Rally != 0 {
		t.Errorf("State() after Restart = %+v, expected fresh state", st)
	}
	if !r.game.Ball().Active() || r.game.Tick() != 0 {
		t.Error("Restart should serve a new ball and reset the tick counter")
	}
	if got := r.game.Paddle(core.Player1).Angle(); math.Abs(got-core.Radians(90)) > 1e-9 {
		t.Errorf("paddle 1 angle = %v, expected start angle", got)
	}
}

func TestGameCueFailureIsLogged(t *testing.T) {
	r := newRig(t, testConfig(), 1)
	r.cues.err = errors.New("speaker unplugged")
	r.game.Ball().Place(r.game.Arena().Center.Add(core.V(97.5, 0)), core.V(2.5, 0))

	if res := r.game.Step(); !res.Bounced {
		t.Fatal("a failing cue player must not prevent the bounce")
	}
	if !strings.Contains(r.logs.String(), "cue playback failed") {
		t.Errorf("log = %q, expected a cue failure warning", r.logs.String())
	}
}

func TestGamePaddleAnglesStayWrapped(t *testing.T) {
	r := newRig(t, testConfig(), 3)
	for i := 0; i < 600; i++ {
		r.in1.Turn((i%7 - 3) * 40)
		r.in2.Turn((i%5 - 2) * 90)
		r.game.Step()
		r.clock.Advance(33 * time.Millisecond)
		for _, id := range []core.PlayerID{core.Player1, core.Player2} {
			if a := r.game.Paddle(id).Angle(); a < 0 || a >= core.TwoPi {
				t.Fatalf("tick %d: %v angle = %v", i, id, a)
			}
		}
	}
}

// runScripted plays a fixed input script and returns the final snapshot.
func runScripted(t *testing.T, seed int64, ticks int) Snapshot {
	t.Helper()
	cfg := testConfig()
	cfg.Ball.Jitter = 0.15
	r := newRig(t, cfg, seed)
	for i := 0; i < ticks; i++ {
		switch {
		case i%9 < 3:
			r.in1.Turn(1)
		case i%9 < 5:
			r.in1.Turn(-2)
		}
		if i%4 == 0 {
			r.in2.Turn(3)
		}
		r.game.Step()
		r.clock.Advance(time.Second / 30)
	}
	return r.game.Snapshot()
}

func TestGameDeterminism(t *testing.T) {
	snap1 := runScripted(t, 12345, 3000)
	snap2 := runScripted(t, 12345, 3000)

	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1 != snap2 {
		t.Errorf("Determinism failed: snapshots differ.\nRun1=%+v\nRun2=%+v", snap1, snap2)
	}
}

func TestGameSeedChangesServe(t *testing.T) {
	a := newRig(t, testConfig(), 1)
	b := newRig(t, testConfig(), 2)
	if a.game.Ball().Velocity() == b.game.Ball().Velocity() {
		t.Error("different seeds should serve in different directions")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	src := newRig(t, testConfig(), 9)
	for i := 0; i < 150; i++ {
		src.in2.Turn(1)
		src.game.Step()
		src.clock.Advance(time.Second / 30)
	}
	snap := src.game.Snapshot()

	dst := newRig(t, testConfig(), 1)
	dst.game.ApplySnapshot(snap)

	if got := dst.game.Snapshot(); got != snap {
		t.Errorf("ApplySnapshot/Snapshot = %+v, expected %+v", got, snap)
	}
	if dst.game.State() != src.game.State() {
		t.Errorf("State() = %+v, expected %+v", dst.game.State(), src.game.State())
	}
}
