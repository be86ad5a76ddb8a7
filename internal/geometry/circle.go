package geometry

import "math"

// Circle is a circle with a non-negative radius.
type Circle struct {
	Center Vec2
	radius float64
}

// NewCircle creates a circle. A negative radius is a programmer error and
// panics.
func NewCircle(center Vec2, radius float64) Circle {
	if radius < 0 {
		panic("geometry: radius of circle is negative number")
	}
	return Circle{Center: center, radius: radius}
}

// Radius returns the circle radius.
func (c Circle) Radius() float64 {
	return c.radius
}

// LineIntersection returns the intersection points of the circle with the
// infinite line through p1 and p2: two points, one (tangent) or none.
// Point order follows the sign convention of the discriminant branch, not
// the distance along the line.
//
// http://mathworld.wolfram.com/Circle-LineIntersection.html
func (c Circle) LineIntersection(p1, p2 Vec2) []Vec2 {
	// Translate the line into the coordinate system relative to the
	// center of the circle.
	p1 = p1.Sub(c.Center)
	p2 = p2.Sub(c.Center)

	lineVec := p2.Sub(p1)
	dr2 := lineVec.Dot(lineVec)
	d := p1.PerpDot(p2)
	discriminant := c.radius*c.radius*dr2 - d*d

	switch {
	case discriminant > 0:
		// Two intersections
		discrSqrt := math.Sqrt(discriminant)

		dx := -d * lineVec.X
		dy := d * lineVec.Y
		xDiscr := math.Copysign(1, lineVec.Y) * lineVec.X * discrSqrt
		yDiscr := math.Abs(lineVec.Y) * discrSqrt

		return []Vec2{
			{
				X: (dy-xDiscr)/dr2 + c.Center.X,
				Y: (dx-yDiscr)/dr2 + c.Center.Y,
			},
			{
				X: (dy+xDiscr)/dr2 + c.Center.X,
				Y: (dx+yDiscr)/dr2 + c.Center.Y,
			},
		}
	case discriminant == 0:
		// One intersection (tangent)
		return []Vec2{{
			X: d*lineVec.Y/dr2 + c.Center.X,
			Y: -d*lineVec.X/dr2 + c.Center.Y,
		}}
	default:
		return nil
	}
}

// SegmentIntersection returns the subset of LineIntersection points whose
// projection lies within the segment p1..p2 (endpoints inclusive).
func (c Circle) SegmentIntersection(p1, p2 Vec2) []Vec2 {
	points := c.LineIntersection(p1, p2)
	if len(points) == 0 {
		return points
	}

	segVec := p2.Sub(p1)
	segLen2 := segVec.Dot(segVec)
	result := points[:0]
	for _, p := range points {
		dot := segVec.Dot(p.Sub(p1))
		if dot >= 0 && dot <= segLen2 {
			result = append(result, p)
		}
	}
	return result
}

// AreaOfRectIntersection returns the exact area of overlap between the
// circle and an axis-aligned rectangle, by closed-form integration of
// circular segments (no sampling).
func (c Circle) AreaOfRectIntersection(rect Rect) float64 {
	rect.Left -= c.Center.X
	rect.Right -= c.Center.X
	rect.Top -= c.Center.Y
	rect.Bottom -= c.Center.Y

	return c.areaOfNormalizedRectIntersection(rect)
}

// areaOfNormalizedRectIntersection computes the overlap area for a rect
// given in circle-centered coordinates.
func (c Circle) areaOfNormalizedRectIntersection(rect Rect) float64 {
	if rect.Bottom < 0 {
		if rect.Top < 0 {
			// The rect is completely under the center line, flip it above.
			rect.Top, rect.Bottom = -rect.Bottom, -rect.Top
		} else {
			// The rect straddles the center line, split it in two halves
			// and recurse.
			top := rect
			top.Bottom = 0
			bottom := rect
			bottom.Top = -rect.Bottom
			bottom.Bottom = 0
			return c.areaOfNormalizedRectIntersection(top) +
				c.areaOfNormalizedRectIntersection(bottom)
		}
	}

	// Area of the lower box minus area of the higher box.
	x0 := rect.Left
	x1 := rect.Right
	y0 := math.Abs(rect.Bottom)
	y1 := math.Abs(rect.Top)
	return c.areaAboveLine(x0, x1, y0) - c.areaAboveLine(x0, x1, y1)
}

// areaAboveLine is the area of intersection of an infinitely tall rect with
// left edge at x0, right edge at x1 and bottom edge at height h, with the
// circle centered at the origin.
func (c Circle) areaAboveLine(x0, x1, h float64) float64 {
	s := c.section(h)
	// Integrate the circular segment between the clipped bounds.
	return c.g(math.Max(-s, math.Min(s, x1)), h) - c.g(math.Max(-s, math.Min(s, x0)), h)
}

// section returns the positive root of the intersection of the line y = h
// with the circle centered at the origin.
func (c Circle) section(h float64) float64 {
	if h < c.radius {
		return math.Sqrt(c.radius*c.radius - h*h)
	}
	return 0
}

// g is the indefinite integral of the circle segment above y = h.
func (c Circle) g(x, h float64) float64 {
	r2 := c.radius * c.radius
	fracXR := x / c.radius

	return 0.5 * (math.Sqrt(1-fracXR*fracXR)*x*c.radius + r2*math.Asin(fracXR) - 2*h*x)
}
