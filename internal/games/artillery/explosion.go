package artillery

import (
	"math"
	"time"

	"github.com/Cykooz/tank-war/internal/core"
	"github.com/Cykooz/tank-war/internal/geometry"
	"github.com/Cykooz/tank-war/internal/terrain"
)

// Explosion is a growing blast sphere. It reaches its maximum radius,
// carves the landscape once, then fades out; damage is applied when the
// fade completes.
type Explosion struct {
	Position   geometry.Vec2
	CurRadius  float64
	CurOpacity float64

	created          time.Time
	maxRadius        float64
	speed            float64
	landscapeUpdated bool
	now              func() time.Time
}

// NewExplosion starts an explosion at the given position, growing by
// speed pixels per second up to maxRadius.
func NewExplosion(position geometry.Vec2, maxRadius, speed float64, clock func() time.Time) *Explosion {
	return &Explosion{
		Position:   position,
		CurOpacity: 1,
		created:    clock(),
		maxRadius:  maxRadius,
		speed:      speed,
		now:        clock,
	}
}

// MaxRadius returns the blast radius.
func (e *Explosion) MaxRadius() float64 {
	return e.maxRadius
}

// Update grows and fades the explosion, excavating the landscape once
// the blast reaches full size. It returns true when the explosion has
// completely faded and its damage should be applied.
func (e *Explosion) Update(landscape *terrain.Landscape) bool {
	t := e.now().Sub(e.created).Seconds()
	radius := t * e.speed
	if radius <= e.maxRadius {
		e.CurOpacity = 1
	} else {
		e.CurOpacity = math.Max(0, (2*e.maxRadius-radius)/e.maxRadius)
	}
	e.CurRadius = math.Min(radius, e.maxRadius)

	if !e.landscapeUpdated && radius >= e.maxRadius {
		landscape.DestroyCircle(e.Position, int(e.maxRadius))
		e.landscapeUpdated = true
	}

	return e.CurOpacity == 0
}

// IntersectionPercents returns the damage of the blast to a bounding
// box as a share of the box covered by the blast circle, in percent.
func (e *Explosion) IntersectionPercents(bound geometry.Rect) int {
	boundArea := math.Abs((bound.Right - bound.Left) * (bound.Top - bound.Bottom))
	if boundArea <= 0 {
		return 0
	}
	circle := geometry.NewCircle(e.Position, e.maxRadius)
	intersectionArea := circle.AreaOfRectIntersection(bound)
	if intersectionArea <= 0 {
		return 0
	}
	percents := 100 * intersectionArea / boundArea
	return int(core.ClampF(percents, 0, 100))
}
