// Package core provides fundamental types and utilities for ringpong.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// TwoPi is a full revolution in radians.
const TwoPi = 2 * math.Pi

// Vec2 is a real-valued 2D vector used for positions and velocities.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// LenSq returns the squared length of v.
func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Len returns the length of v.
func (v Vec2) Len() float64 {
	return math.Sqrt(v.LenSq())
}

// Normalize returns v scaled to unit length.
// The second return value is false when v has zero length; v is returned unchanged.
func (v Vec2) Normalize() (Vec2, bool) {
	l := v.Len()
	if l == 0 {
		return v, false
	}
	return Vec2{X: v.X / l, Y: v.Y / l}, true
}

// Perp returns v rotated by +90 degrees: (-y, x).
func (v Vec2) Perp() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// Rotate returns v rotated by theta radians.
func (v Vec2) Rotate(theta float64) Vec2 {
	s, c := math.Sincos(theta)
	return Vec2{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}

// Angle returns the direction of v in radians, in (-pi, pi].
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Trunc returns v truncated toward zero to integer pixel coordinates.
func (v Vec2) Trunc() Point {
	return Point{X: int(v.X), Y: int(v.Y)}
}

// Point is an integer position, e.g. a display pixel or a screen cell.
type Point struct {
	X, Y int
}

// Vec returns p as a Vec2.
func (p Point) Vec() Vec2 {
	return Vec2{X: float64(p.X), Y: float64(p.Y)}
}

// PolarToCartesian projects (radius, angle) around center to a Cartesian point.
func PolarToCartesian(center Vec2, radius, angle float64) Vec2 {
	s, c := math.Sincos(angle)
	return Vec2{X: center.X + radius*c, Y: center.Y + radius*s}
}

// AngleAndRadius returns the angle (quadrant-aware, in (-pi, pi]) and the
// Euclidean distance of p as seen from center.
func AngleAndRadius(center, p Vec2) (angle, radius float64) {
	d := p.Sub(center)
	return math.Atan2(d.Y, d.X), d.Len()
}

// Reflect mirrors v about the normal n: v - 2(v.n)n.
// n is normalized first; a zero-magnitude normal leaves v unchanged.
func Reflect(v, n Vec2) Vec2 {
	n, ok := n.Normalize()
	if !ok {
		return v
	}
	return v.Sub(n.Scale(2 * v.Dot(n)))
}

// WrapAngle maps any finite angle into [0, 2pi).
func WrapAngle(a float64) float64 {
	a = math.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	// Mod of a tiny negative value can round up to exactly 2pi.
	if a >= TwoPi {
		a = 0
	}
	return a
}

// AngleDistance returns the absolute angular separation of a and b in [0, pi].
func AngleDistance(a, b float64) float64 {
	d := WrapAngle(a - b)
	if d > math.Pi {
		d = TwoPi - d
	}
	return d
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Rect represents an axis-aligned box on the screen, used for message overlays.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
