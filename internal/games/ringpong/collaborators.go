package ringpong

import (
	"time"

	"github.com/vovakirdan/ringpong/internal/core"
)

// RotaryInput is a monotonically accumulating detent counter, such as a
// rotary encoder or core.Encoder.
type RotaryInput interface {
	Position() int
}

// DeltaReader turns an accumulating RotaryInput into per-tick deltas.
type DeltaReader struct {
	in   RotaryInput
	last int
}

// NewDeltaReader wraps in, treating its current position as the baseline.
// A nil input always reports zero.
func NewDeltaReader(in RotaryInput) *DeltaReader {
	r := &DeltaReader{in: in}
	r.Drain()
	return r
}

// Delta returns the detents turned since the previous call.
func (r *DeltaReader) Delta() int {
	if r.in == nil {
		return 0
	}
	pos := r.in.Position()
	d := pos - r.last
	r.last = pos
	return d
}

// Drain discards any pending detents.
func (r *DeltaReader) Drain() {
	if r.in != nil {
		r.last = r.in.Position()
	}
}

// Renderer displays a frame. Errors are logged by the loop, never fatal.
type Renderer interface {
	Render(Frame) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(Frame) error

// Render calls f.
func (f RendererFunc) Render(fr Frame) error { return f(fr) }

// CueKind names a sound cue.
type CueKind int

const (
	CueBounce CueKind = iota // Ball bounced off a paddle
	CueReset                 // Ball respawned at the center
)

func (k CueKind) String() string {
	switch k {
	case CueBounce:
		return "bounce"
	case CueReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Cue is a short tone request.
type Cue struct {
	Kind     CueKind
	Pitch    float64 // Hz
	Duration time.Duration
}

// CuePlayer plays sound cues. Play must not block the game loop.
type CuePlayer interface {
	Play(Cue) error
}

// SilentCues discards every cue.
type SilentCues struct{}

// Play does nothing.
func (SilentCues) Play(Cue) error { return nil }

// BallView is the renderable state of the ball.
type BallView struct {
	Pos     core.Point // Render position in display pixels
	Radius  float64
	Color   core.Color
	Visible bool
}

// PaddleView is the renderable state of a paddle.
type PaddleView struct {
	Player  core.PlayerID
	Color   core.Color
	Angle   float64
	Samples []core.Vec2
}

// Frame is everything a Renderer needs to draw one tick.
type Frame struct {
	Tick      uint64
	Arena     Arena
	Ball      BallView
	Paddles   [2]PaddleView
	State     core.GameState
	BestRally int
}
