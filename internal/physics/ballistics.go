// Package physics implements point-mass ballistics with uniform
// acceleration, discrete pixel stepping and border rebounds.
package physics

import (
	"math"
	"time"

	"github.com/Cykooz/tank-war/internal/geometry"
)

// Pixel is an integer cell coordinate produced by the trajectory walk.
type Pixel struct {
	X, Y int
}

// Borders is the rebound box of the flight area. The horizontal range is
// [0, Width) and the vertical range is [0, Height]: crossing the top edge
// keeps the projectile in flight one cell longer than crossing a side.
type Borders struct {
	Width, Height int
}

// Ballistics tracks a point mass moving with constant acceleration.
// Positions are evaluated analytically from the last anchor point, so the
// trajectory does not accumulate integration error between rebounds.
type Ballistics struct {
	created           time.Time
	startPos          geometry.Vec2
	startVelocity     geometry.Vec2
	acceleration      geometry.Vec2
	curPos            geometry.Vec2
	lastUpdated       float64
	timeScale         float64
	reboundEfficiency float64
	now               func() time.Time
}

// New creates a ballistics track anchored at startPos. Time is measured
// from the moment of creation.
func New(startPos, startVelocity, acceleration geometry.Vec2) *Ballistics {
	b := &Ballistics{
		startPos:          startPos,
		startVelocity:     startVelocity,
		acceleration:      acceleration,
		curPos:            startPos,
		lastUpdated:       0,
		timeScale:         1,
		reboundEfficiency: 1,
		now:               time.Now,
	}
	b.created = b.now()
	return b
}

// WithTimeScale sets the simulation speed multiplier and resets the
// update cursor.
func (b *Ballistics) WithTimeScale(value float64) *Ballistics {
	b.timeScale = value
	b.lastUpdated = 0
	return b
}

// WithReboundEfficiency sets the velocity fraction preserved by a rebound.
func (b *Ballistics) WithReboundEfficiency(value float64) *Ballistics {
	b.reboundEfficiency = value
	return b
}

// WithClock replaces the wall clock. The track is re-anchored to the
// new clock's current time.
func (b *Ballistics) WithClock(now func() time.Time) *Ballistics {
	b.now = now
	b.created = now()
	return b
}

func (b *Ballistics) velocity(t float64) geometry.Vec2 {
	return b.startVelocity.Add(b.acceleration.Mul(t * 2))
}

func (b *Ballistics) pos(t float64) geometry.Vec2 {
	return b.startPos.Add(b.startVelocity.Add(b.acceleration.Mul(t)).Mul(t))
}

// CurPos returns the position reached by the last trajectory walk.
func (b *Ballistics) CurPos() geometry.Vec2 {
	return b.curPos
}

// PosAndVelocity returns the current position and velocity.
func (b *Ballistics) PosAndVelocity() (geometry.Vec2, geometry.Vec2) {
	return b.pos(b.lastUpdated), b.velocity(b.lastUpdated)
}

// applyRebound reflects the velocity about the crossed border and
// re-anchors the track at the pre-transition position.
func (b *Ballistics) applyRebound(horizontal, vertical bool) {
	pos, velocity := b.PosAndVelocity()
	if horizontal {
		velocity.X = -velocity.X
	}
	if vertical {
		velocity.Y = -velocity.Y
	}

	b.startPos = pos
	b.startVelocity = velocity.Mul(b.reboundEfficiency)
	b.curPos = pos
	b.created = b.now()
	b.lastUpdated = 0
}

// Positions walks the trajectory from the last visited pixel up to the
// current clock time. Borders may be nil for unbounded flight.
func (b *Ballistics) Positions(borders *Borders) *PositionIter {
	return b.iter(b.now().Sub(b.created).Seconds(), borders)
}

// PositionsUntil walks the trajectory up to the given time, measured in
// unscaled seconds since the track was created.
func (b *Ballistics) PositionsUntil(endTime float64, borders *Borders) *PositionIter {
	return b.iter(endTime, borders)
}

func (b *Ballistics) iter(endTime float64, borders *Borders) *PositionIter {
	startTime := b.lastUpdated
	endTime *= b.timeScale

	startVelocity := b.velocity(startTime)
	endVelocity := b.velocity(endTime)
	maxVelocity := startVelocity.Abs().MaxElement()
	if v := endVelocity.Abs().MaxElement(); v > maxVelocity {
		maxVelocity = v
	}

	timePeriod := endTime - startTime

	// The step is chosen so consecutive samples are at most half a pixel
	// apart at peak speed, which makes the pixel walk gap-free.
	timeStep := timePeriod
	if maxVelocity != 0 {
		timeStep = 1 / (2 * maxVelocity)
	}

	return &PositionIter{
		ballistics: b,
		endTime:    endTime,
		timeStep:   timeStep,
		lastTime:   startTime,
		lastPos:    Pixel{int(math.Floor(b.curPos.X)), int(math.Floor(b.curPos.Y))},
		borders:    borders,
	}
}

// PositionIter yields each pixel the projectile enters, in flight order,
// advancing the owning Ballistics as it goes.
type PositionIter struct {
	ballistics *Ballistics
	endTime    float64
	timeStep   float64
	lastTime   float64
	lastPos    Pixel
	borders    *Borders
}

// Next returns the next entered pixel. The second result is false when the
// time budget is exhausted; the track is then snapped exactly to the
// budget end.
func (it *PositionIter) Next() (Pixel, bool) {
	nextTime := it.lastTime
	reboundOnPrevStep := false

	for nextTime <= it.endTime {
		nextTime += it.timeStep
		clampedTime := math.Min(it.endTime, nextTime)

		pos := it.ballistics.pos(clampedTime)
		posPixel := Pixel{int(math.Floor(pos.X)), int(math.Floor(pos.Y))}
		if it.lastPos == posPixel {
			continue
		}

		if it.borders != nil {
			horizontalRebound := posPixel.X < 0 || posPixel.X >= it.borders.Width
			verticalRebound := posPixel.Y < 0 || posPixel.Y > it.borders.Height
			if horizontalRebound || verticalRebound {
				it.ballistics.applyRebound(horizontalRebound, verticalRebound)
				if reboundOnPrevStep {
					// A second rebound without progress means the
					// projectile is wedged in a corner, a border seam or
					// anchored outside the box. Kill the motion on the
					// offending axis and remember the pixel so a track
					// that can no longer move drains its time budget
					// instead of rebounding forever.
					if horizontalRebound {
						it.ballistics.startVelocity.X = 0
						it.ballistics.acceleration.X = 0
					}
					if verticalRebound {
						it.ballistics.startVelocity.Y = 0
						it.ballistics.acceleration.Y = 0
					}
					it.lastPos = posPixel
				}
				it.endTime -= it.lastTime
				it.lastTime = 0
				nextTime = 0
				reboundOnPrevStep = true
				continue
			}
		}

		it.lastTime = nextTime
		it.lastPos = posPixel
		it.ballistics.lastUpdated = clampedTime
		it.ballistics.curPos = pos
		return posPixel, true
	}

	it.ballistics.curPos = it.ballistics.pos(it.endTime)
	it.ballistics.lastUpdated = it.endTime
	return Pixel{}, false
}
