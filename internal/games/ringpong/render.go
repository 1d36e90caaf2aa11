package ringpong

import (
	"fmt"
	"math"

	"github.com/vovakirdan/ringpong/internal/core"
)

// Visual characters for rendering
const (
	BallChar   = '●'
	PaddleChar = '█'
	RimChar    = '·'
)

// HeaderRows is the number of screen rows reserved above the arena.
const HeaderRows = 1

// Projection maps display pixels onto terminal cells. Cells are about twice
// as tall as they are wide, so a column covers half the pixels of a row.
type Projection struct {
	originX float64 // Screen column of display x = 0
	originY float64 // Screen row of display y = 0
	sx      float64 // Display pixels per column
	sy      float64 // Display pixels per row
}

// NewProjection fits the arena's display into cols x rows cells below top
// reserved rows, keeping the circle round.
func NewProjection(a Arena, cols, rows, top int) Projection {
	avail := max(1, rows-top)
	cols = max(1, cols)
	sy := math.Max(float64(a.Height)/float64(avail), 2*float64(a.Width)/float64(cols))
	if sy <= 0 {
		sy = 1
	}
	sx := sy / 2
	return Projection{
		originX: (float64(cols) - float64(a.Width)/sx) / 2,
		originY: float64(top) + (float64(avail)-float64(a.Height)/sy)/2,
		sx:      sx,
		sy:      sy,
	}
}

// Cell returns the screen cell containing display point v.
func (p Projection) Cell(v core.Vec2) (x, y int) {
	return int(math.Floor(p.originX + v.X/p.sx)), int(math.Floor(p.originY + v.Y/p.sy))
}

// Render draws f onto s: score header, rim, paddles, ball and any overlay.
func Render(s *core.Screen, f Frame) {
	s.Clear()
	proj := NewProjection(f.Arena, s.Width(), s.Height(), HeaderRows)

	drawHeader(s, f)
	drawRim(s, proj, f.Arena)
	for _, pv := range f.Paddles {
		drawPaddle(s, proj, f.Arena, pv)
	}
	if f.Ball.Visible {
		drawBall(s, proj, f.Ball)
	}

	switch {
	case f.State.GameOver:
		drawOverlay(s, fmt.Sprintf("%s WINS", f.State.Winner), "R restart  Q quit")
	case f.State.Paused:
		drawOverlay(s, "PAUSED", "P resume")
	}
}

func drawHeader(s *core.Screen, f Frame) {
	left := fmt.Sprintf(" P1 %d", f.State.Score1)
	s.DrawTextColored(0, 0, left, Paddle1Color)

	right := fmt.Sprintf("P2 %d ", f.State.Score2)
	s.DrawTextColored(s.Width()-len(right), 0, right, Paddle2Color)

	mid := fmt.Sprintf("rally %d  best %d", f.State.Rally, f.BestRally)
	s.DrawTextColored((s.Width()-len(mid))/2, 0, mid, core.ColorYellow)
}

func drawRim(s *core.Screen, proj Projection, a Arena) {
	// One dot per column of circumference is enough to close the circle.
	steps := max(32, int(core.TwoPi*a.BoundaryRadius/proj.sx))
	for i := 0; i < steps; i++ {
		angle := core.TwoPi * float64(i) / float64(steps)
		x, y := proj.Cell(a.At(a.BoundaryRadius, angle))
		s.SetColored(x, y, RimChar, RimColor)
	}
}

func drawPaddle(s *core.Screen, proj Projection, a Arena, pv PaddleView) {
	for i, sp := range pv.Samples {
		x, y := proj.Cell(sp)
		s.SetColored(x, y, PaddleChar, pv.Color)
		// Fill the gap to the next sample along the arc.
		if i+1 < len(pv.Samples) {
			mid := sp.Add(pv.Samples[i+1]).Scale(0.5)
			mx, my := proj.Cell(mid)
			s.SetColored(mx, my, PaddleChar, pv.Color)
		}
	}
}

func drawBall(s *core.Screen, proj Projection, b BallView) {
	center := b.Pos.Vec()
	cx, cy := proj.Cell(center)
	rx := int(b.Radius / proj.sx)
	ry := int(b.Radius / proj.sy)
	for y := cy - ry; y <= cy+ry; y++ {
		for x := cx - rx; x <= cx+rx; x++ {
			// Distance in pixels between cell centers.
			dx := float64(x-cx) * proj.sx
			dy := float64(y-cy) * proj.sy
			if dx*dx+dy*dy <= b.Radius*b.Radius {
				s.SetColored(x, y, BallChar, b.Color)
			}
		}
	}
}

func drawOverlay(s *core.Screen, title, hint string) {
	w := max(len([]rune(title)), len([]rune(hint))) + 4
	h := 4
	box := core.NewRect((s.Width()-w)/2, (s.Height()-h)/2, w, h)
	s.DrawRect(box, ' ')
	s.DrawBox(box)
	s.DrawTextColored(box.X+(w-len([]rune(title)))/2, box.Y+1, title, core.ColorBrightWhite)
	s.DrawTextColored(box.X+(w-len([]rune(hint)))/2, box.Y+2, hint, core.ColorGray)
}
