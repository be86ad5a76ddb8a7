package artillery

import (
	"math"
	"time"

	"github.com/Cykooz/tank-war/internal/core"
	"github.com/Cykooz/tank-war/internal/geometry"
	"github.com/Cykooz/tank-war/internal/physics"
	"github.com/Cykooz/tank-war/internal/terrain"
)

const (
	tankSize = 9.0
	gunSize  = 5.0
	// Damage per one pixel of height the tank was dropped from.
	throwingDamagePower = 0.1
	// A tank slides down while more than this fraction of the ground
	// line under it is empty.
	maxEmptyFraction = 0.3
)

// Health is a damageable hit point counter. Tanks are invincible while
// they fall into their initial positions.
type Health struct {
	Value      int
	Invincible bool
}

// Damage applies v points of damage and returns the remaining health.
func (h *Health) Damage(v int) int {
	if !h.Invincible {
		h.Value -= v
		if h.Value < 0 {
			h.Value = 0
		}
	}
	return h.Value
}

// Tank is a player vehicle. Its collision shape is a set of ellipses
// approximating the hull plus two for the rotating gun.
type Tank struct {
	PlayerNumber int
	Power        float64
	Position     geometry.Vec2
	Health       Health
	Dead         bool

	bodyBounds  []geometry.Ellipse
	gunBounds   []geometry.Ellipse
	gunAngleDeg float64

	throwing *Throwing
}

// NewTank creates a tank for the given player with full health and
// default aim.
func NewTank(playerNumber int, position geometry.Vec2, health int) *Tank {
	return &Tank{
		PlayerNumber: playerNumber,
		Power:        40,
		Position:     position,
		Health:       Health{Value: health, Invincible: true},
		bodyBounds: []geometry.Ellipse{
			geometry.NewEllipse(geometry.V(0, -1.2), 2.1, 2.0),    // top bound
			geometry.NewEllipse(geometry.V(-2.1, -2.9), 2.2, 1.4), // left bound
			geometry.NewEllipse(geometry.V(2.1, -2.9), 2.2, 1.4),  // right bound
			geometry.NewEllipse(geometry.V(0, -2.9), 4.3, 1.65),   // center bound
		},
		gunBounds: []geometry.Ellipse{
			geometry.NewEllipse(geometry.V(0, 3.1), 0.55, 1.1),
			geometry.NewEllipse(geometry.V(0, 1.1), 0.45, 1.75),
		},
	}
}

// Size returns the square bounding size of a tank.
func (t *Tank) Size() float64 {
	return tankSize
}

// GunAngleDeg returns the gun angle in degrees; zero points straight up.
func (t *Tank) GunAngleDeg() float64 {
	return t.gunAngleDeg
}

// GunAngleRad returns the gun angle in radians.
func (t *Tank) GunAngleRad() float64 {
	return t.gunAngleDeg * math.Pi / 180
}

// IncGunAngle rotates the gun, clamped to [-90, 90] degrees.
func (t *Tank) IncGunAngle(deltaDegrees float64) {
	t.gunAngleDeg = core.ClampF(t.gunAngleDeg+deltaDegrees, -90, 90)
}

// IncGunPower changes the shot power, clamped to [0, 100].
func (t *Tank) IncGunPower(delta float64) {
	t.Power = core.ClampF(t.Power+delta, 0, 100)
}

// GunBarrelPos returns the world position of the gun muzzle.
func (t *Tank) GunBarrelPos() geometry.Vec2 {
	rad := t.GunAngleRad()
	gunVec := geometry.V(gunSize*math.Sin(rad), gunSize*math.Cos(rad))
	return t.Position.Add(gunVec)
}

// Shoot creates a missile leaving the gun muzzle with the tank's
// current aim and power.
func (t *Tank) Shoot(powerScale float64, acceleration geometry.Vec2, timeScale float64, clock func() time.Time) *Missile {
	return NewMissile(t.GunBarrelPos(), t.gunAngleDeg, t.Power*powerScale, acceleration, timeScale, clock)
}

// BodyRect returns the world space bounding box of the tank hull.
func (t *Tank) BodyRect() geometry.Rect {
	halfSize := tankSize / 2
	return geometry.Rect{
		Left:   t.Position.X - halfSize,
		Right:  t.Position.X + halfSize,
		Top:    t.Position.Y + halfSize,
		Bottom: t.Position.Y - halfSize,
	}
}

// HasCollision reports whether the given world point lies inside the
// tank's hull or gun.
func (t *Tank) HasCollision(point geometry.Vec2) bool {
	localPoint := point.Sub(t.Position)
	if localPoint.Abs().MaxElement() > tankSize/2 {
		return false
	}

	for _, b := range t.bodyBounds {
		if b.PointPosition(localPoint) <= 0 {
			return true
		}
	}

	// Rotate the point into the coordinate system of the gun.
	rotatedPoint := localPoint.Rotate(t.GunAngleRad())
	for _, b := range t.gunBounds {
		if b.PointPosition(rotatedPoint) <= 0 {
			return true
		}
	}
	return false
}

// Throwing is the falling state of a tank being dropped onto the
// landscape.
type Throwing struct {
	startPosition geometry.Vec2
	tankWidth     float64
	ballistics    *physics.Ballistics
}

// ThrowDown starts a vertical fall of the tank from its current
// position. The fall is finished by successive UpdateThrowing calls.
func (t *Tank) ThrowDown(gravity, timeScale float64, clock func() time.Time) {
	halfSize := tankSize / 2
	leftBottom := t.Position.Sub(geometry.V(halfSize, halfSize))
	startHeight := leftBottom.Y + 1
	t.throwing = &Throwing{
		startPosition: t.Position,
		tankWidth:     tankSize,
		ballistics: physics.New(
			geometry.V(leftBottom.X, startHeight),
			geometry.V(0, 0),
			geometry.V(0, -gravity),
		).WithClock(clock).WithTimeScale(timeScale),
	}
}

// IsThrowing reports whether the tank is still falling.
func (t *Tank) IsThrowing() bool {
	return t.throwing != nil
}

// UpdateThrowing advances the fall of the tank, carving through thin
// ground ledges and stopping on solid support. It returns true when the
// tank has landed this call; the first landing keeps the tank
// invincible, later ones apply fall damage.
func (t *Tank) UpdateThrowing(landscape *terrain.Landscape) bool {
	if t.throwing == nil {
		return false
	}
	throwing := t.throwing

	tankWidth := int(throwing.tankWidth)
	maxEmptyCount := int(math.Round(maxEmptyFraction * throwing.tankWidth))
	offset := 0.0
	stopThrowing := false

	it := throwing.ballistics.Positions(nil)
	for {
		p, ok := it.Next()
		if !ok {
			break
		}
		if p.Y <= 0 {
			stopThrowing = true
			break
		}

		pixels := landscape.PixelsLine(p.X, p.Y, tankWidth)
		if pixels == nil {
			continue
		}
		emptyCount := 0
		for _, c := range pixels {
			if c == 0 {
				emptyCount++
			}
		}
		if emptyCount > maxEmptyCount {
			if emptyCount < tankWidth {
				// The ground line under the tank is too thin to hold
				// it - carve through.
				for i := range pixels {
					pixels[i] = 0
				}
				landscape.SetChanged()
			}
			offset++
		} else {
			stopThrowing = true
			break
		}
	}

	if offset > 0 {
		t.Position.Y -= offset
	}

	if stopThrowing {
		t.throwing = nil
		if t.Health.Invincible {
			t.Health.Invincible = false
		} else {
			pathLen := throwing.startPosition.Y - t.Position.Y
			damage := int(math.Round(pathLen * throwingDamagePower))
			if damage > 0 {
				t.Health.Damage(damage)
			}
		}
		return true
	}
	return false
}
