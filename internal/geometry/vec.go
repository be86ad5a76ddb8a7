// Package geometry provides the analytic primitives used by the physics and
// damage calculations: 2D vectors, axis-aligned rectangles, circles and
// ellipses. Everything here is a pure value type with closed-form math,
// no state and no approximation loops.
package geometry

import "math"

// Vec2 is a 2D vector of float64 components.
type Vec2 struct {
	X, Y float64
}

// V is a shorthand constructor for Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Mul returns the vector scaled by s.
func (v Vec2) Mul(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// PerpDot returns the 2D cross product (the z component of v × o).
func (v Vec2) PerpDot(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Abs returns the component-wise absolute value.
func (v Vec2) Abs() Vec2 {
	return Vec2{math.Abs(v.X), math.Abs(v.Y)}
}

// MaxElement returns the larger of the two components.
func (v Vec2) MaxElement() float64 {
	return math.Max(v.X, v.Y)
}

// Rotate returns the vector rotated counter-clockwise by angle radians.
func (v Vec2) Rotate(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// Rect is an axis-aligned rectangle given by its edge coordinates.
// Top is the greater Y edge, Bottom the lesser.
type Rect struct {
	Left, Right, Top, Bottom float64
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 {
	return r.Top - r.Bottom
}

// Area returns the (absolute) area of the rectangle.
func (r Rect) Area() float64 {
	return math.Abs(r.Width() * r.Height())
}
