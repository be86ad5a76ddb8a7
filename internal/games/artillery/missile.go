package artillery

import (
	"math"
	"time"

	"github.com/Cykooz/tank-war/internal/geometry"
	"github.com/Cykooz/tank-war/internal/physics"
)

// Missile is a shell in flight. It only owns a ballistics track; hits
// are detected by walking the track pixel by pixel.
type Missile struct {
	ballistics *physics.Ballistics
}

// NewMissile launches a missile from pos. The angle is in degrees with
// zero pointing straight up, power is the muzzle speed and acceleration
// combines wind and gravity.
func NewMissile(pos geometry.Vec2, angleDeg, power float64, acceleration geometry.Vec2, timeScale float64, clock func() time.Time) *Missile {
	rad := angleDeg * math.Pi / 180
	velocity := geometry.V(math.Sin(rad), math.Cos(rad)).Mul(power)

	return &Missile{
		ballistics: physics.New(pos, velocity, acceleration).
			WithClock(clock).
			WithTimeScale(timeScale),
	}
}

// CurPos returns the current missile position.
func (m *Missile) CurPos() geometry.Vec2 {
	return m.ballistics.CurPos()
}

// Update flies the missile up to the current clock time, bouncing off
// the side borders. It returns the hit point and true when the missile
// touched an obstacle or the ground.
func (m *Missile) Update(borders physics.Borders, hasCollision func(x, y int) bool) (geometry.Vec2, bool) {
	it := m.ballistics.Positions(&borders)
	for {
		p, ok := it.Next()
		if !ok {
			break
		}
		if hasCollision(p.X, p.Y) || p.Y <= 0 {
			return geometry.V(float64(p.X), float64(p.Y)), true
		}
	}
	return geometry.Vec2{}, false
}
