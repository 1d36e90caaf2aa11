package ringpong

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/ringpong/internal/config"
	"github.com/vovakirdan/ringpong/internal/core"
)

func newTestPaddle(cfg config.PaddleConfig, start float64) (*Paddle, Arena) {
	arena := NewArena(config.DefaultRingPongConfig().Arena)
	return NewPaddle(core.Player1, Paddle1Color, arena, cfg, start), arena
}

func TestPaddleZeroDeltaKeepsSamples(t *testing.T) {
	p, _ := newTestPaddle(config.DefaultRingPongConfig().Paddle, core.Radians(45))
	p.Update(2)
	gen := p.generation
	before := p.Samples()

	p.Update(0)
	p.Update(0)

	if p.LastSpin() != 0 {
		t.Errorf("LastSpin() = %v, expected 0", p.LastSpin())
	}
	if p.generation != gen {
		t.Errorf("samples recomputed %d times on zero delta, expected 0", p.generation-gen)
	}
	after := p.Samples()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("sample %d moved from %v to %v", i, before[i], after[i])
		}
	}
}

func TestPaddleUpdate(t *testing.T) {
	tests := []struct {
		name      string
		start     float64
		delta     int
		wantAngle float64
		wantSpin  float64
	}{
		{"one detent", 0, 1, core.Radians(3), core.Radians(3)},
		{"backwards through zero", 0, -1, core.Radians(357), core.Radians(-3)},
		{"several detents", core.Radians(90), 10, core.Radians(120), core.Radians(30)},
		{"multiple revolutions", 0, 250, core.Radians(30), core.Radians(750)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, _ := newTestPaddle(config.DefaultRingPongConfig().Paddle, tc.start)
			gen := p.generation

			p.Update(tc.delta)

			if math.Abs(p.Angle()-tc.wantAngle) > 1e-9 {
				t.Errorf("Angle() = %v, expected %v", p.Angle(), tc.wantAngle)
			}
			if math.Abs(p.LastSpin()-tc.wantSpin) > 1e-9 {
				t.Errorf("LastSpin() = %v, expected %v", p.LastSpin(), tc.wantSpin)
			}
			if p.generation != gen+1 {
				t.Errorf("samples recomputed %d times, expected 1", p.generation-gen)
			}
		})
	}
}

func TestPaddleAngleStaysWrapped(t *testing.T) {
	p, _ := newTestPaddle(config.DefaultRingPongConfig().Paddle, 0)
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 5000; i++ {
		p.Update(rng.Intn(2001) - 1000)
		if a := p.Angle(); a < 0 || a >= core.TwoPi {
			t.Fatalf("Angle() = %v after update %d, outside [0, 2pi)", a, i)
		}
	}
}

func TestPaddleSamples(t *testing.T) {
	cfg := config.DefaultRingPongConfig().Paddle
	start := core.Radians(60)
	p, arena := newTestPaddle(cfg, start)

	samples := p.Samples()
	if len(samples) != 16 {
		t.Fatalf("len(Samples()) = %d, expected 16", len(samples))
	}

	half := core.Radians(cfg.WidthDeg) / 2
	for i, s := range samples {
		angle, radius := arena.Polar(s)
		if math.Abs(radius-106) > 1e-9 {
			t.Errorf("sample %d radius = %v, expected 106", i, radius)
		}
		want := start - half + float64(i)*2*half/15
		if core.AngleDistance(angle, want) > 1e-9 {
			t.Errorf("sample %d angle = %v, expected %v", i, angle, want)
		}
	}
}

func TestPaddleSingleSegmentSitsAtCenter(t *testing.T) {
	cfg := config.DefaultRingPongConfig().Paddle
	cfg.Segments = 1
	p, arena := newTestPaddle(cfg, core.Radians(200))

	samples := p.Samples()
	if len(samples) != 1 {
		t.Fatalf("len(Samples()) = %d, expected 1", len(samples))
	}
	angle, _ := arena.Polar(samples[0])
	if core.AngleDistance(angle, core.Radians(200)) > 1e-9 {
		t.Errorf("single sample angle = %v, expected %v", angle, core.Radians(200))
	}
}

func TestPaddleSamplesReturnsCopy(t *testing.T) {
	p, _ := newTestPaddle(config.DefaultRingPongConfig().Paddle, 0)
	s := p.Samples()
	s[0] = core.V(-1, -1)
	if p.Samples()[0] == s[0] {
		t.Error("Samples() should return a copy")
	}
}

func TestPaddleCollides(t *testing.T) {
	cfg := testConfig()
	arena := NewArena(cfg.Arena)
	b := NewBall(arena, cfg.Ball, rand.New(rand.NewSource(1)))
	p := NewPaddle(core.Player1, Paddle1Color, arena, cfg.Paddle, 0)

	tests := []struct {
		name string
		at   core.Vec2
		want bool
	}{
		{"on the arc", arena.At(100, 0), true},
		{"near the arc end", arena.At(100, core.Radians(14)), true},
		{"well past the arc end", arena.At(100, core.Radians(25)), false},
		{"deep inside the arena", arena.At(80, 0), false},
		{"opposite side", arena.At(100, math.Pi), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b.Place(tc.at, core.Vec2{})
			if got := p.Collides(b); got != tc.want {
				t.Errorf("Collides() = %v, expected %v", got, tc.want)
			}
		})
	}
}
