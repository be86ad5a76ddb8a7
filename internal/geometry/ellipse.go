package geometry

import "math"

// Ellipse is an axis-aligned ellipse with semi-axes a (horizontal) and
// b (vertical).
type Ellipse struct {
	Center Vec2
	a, b   float64
	a2, b2 float64
}

// NewEllipse creates an ellipse. Negative semi-axes are programmer errors
// and panic. Zero axes are allowed and degenerate to a segment or a point.
func NewEllipse(center Vec2, a, b float64) Ellipse {
	if a < 0 {
		panic("geometry: 'a' radius of ellipse is negative number")
	}
	if b < 0 {
		panic("geometry: 'b' radius of ellipse is negative number")
	}
	return Ellipse{
		Center: center,
		a:      a,
		b:      b,
		a2:     a * a,
		b2:     b * b,
	}
}

// PointPosition returns a negative value if the point lies inside the
// ellipse, zero if it lies on the boundary and a positive value outside.
// Degenerate ellipses (a == 0 or b == 0) use a clamped rectangular test
// instead of dividing by zero.
func (e Ellipse) PointPosition(point Vec2) float64 {
	p := point.Sub(e.Center)
	if e.a == 0 || e.b == 0 {
		xLen := math.Abs(p.X) - e.a
		yLen := math.Abs(p.Y) - e.b
		return math.Max(math.Max(xLen, yLen), 0)
	}
	return p.X*p.X/e.a2 + p.Y*p.Y/e.b2 - 1
}
