package artillery

import (
	"math"
	"testing"
	"time"

	"github.com/Cykooz/tank-war/internal/core"
	"github.com/Cykooz/tank-war/internal/geometry"
	"github.com/Cykooz/tank-war/internal/terrain"
)

func TestHealthDamage(t *testing.T) {
	h := Health{Value: 100}
	if got := h.Damage(30); got != 70 {
		t.Fatalf("Damage(30) = %d, want 70", got)
	}
	if got := h.Damage(200); got != 0 {
		t.Fatalf("Damage(200) = %d, want 0", got)
	}
}

func TestHealthInvincible(t *testing.T) {
	h := Health{Value: 100, Invincible: true}
	if got := h.Damage(30); got != 100 {
		t.Fatalf("Damage on invincible = %d, want 100", got)
	}
}

func TestGunAngleClamp(t *testing.T) {
	tank := NewTank(1, geometry.V(0, 0), 100)
	tank.IncGunAngle(200)
	if got := tank.GunAngleDeg(); got != 90 {
		t.Fatalf("angle after +200 = %v, want 90", got)
	}
	tank.IncGunAngle(-500)
	if got := tank.GunAngleDeg(); got != -90 {
		t.Fatalf("angle after -500 = %v, want -90", got)
	}
}

func TestGunPowerClamp(t *testing.T) {
	tank := NewTank(1, geometry.V(0, 0), 100)
	tank.IncGunPower(1000)
	if tank.Power != 100 {
		t.Fatalf("power = %v, want 100", tank.Power)
	}
	tank.IncGunPower(-1000)
	if tank.Power != 0 {
		t.Fatalf("power = %v, want 0", tank.Power)
	}
}

func TestGunBarrelPos(t *testing.T) {
	tank := NewTank(1, geometry.V(10, 20), 100)

	p := tank.GunBarrelPos()
	if math.Abs(p.X-10) > 1e-9 || math.Abs(p.Y-(20+gunSize)) > 1e-9 {
		t.Fatalf("muzzle at angle 0 = %v, want (10, %v)", p, 20+gunSize)
	}

	tank.IncGunAngle(90)
	p = tank.GunBarrelPos()
	if math.Abs(p.X-(10+gunSize)) > 1e-9 || math.Abs(p.Y-20) > 1e-9 {
		t.Fatalf("muzzle at angle 90 = %v, want (%v, 20)", p, 10+gunSize)
	}
}

func TestHasCollision(t *testing.T) {
	tank := NewTank(1, geometry.V(50, 50), 100)

	cases := []struct {
		name  string
		point geometry.Vec2
		want  bool
	}{
		{"hull center", geometry.V(50, 50), true},
		{"hull side", geometry.V(47, 47), true},
		{"gun above hull", geometry.V(50, 52), true},
		{"beside the raised gun", geometry.V(52.5, 50), false},
		{"upper corner of the bounding box", geometry.V(54, 54), false},
		{"far away", geometry.V(100, 100), false},
		{"gun muzzle is outside", geometry.V(50, 50+gunSize), false},
	}
	for _, c := range cases {
		if got := tank.HasCollision(c.point); got != c.want {
			t.Errorf("%s: HasCollision(%v) = %v, want %v", c.name, c.point, got, c.want)
		}
	}
}

func TestHasCollisionRotatedGun(t *testing.T) {
	tank := NewTank(1, geometry.V(50, 50), 100)

	// The gun points straight up, nothing to its right.
	if tank.HasCollision(geometry.V(52.5, 50)) {
		t.Fatal("point beside a raised gun should be free")
	}

	// Rotated to the right the gun now covers that point.
	tank.IncGunAngle(90)
	if !tank.HasCollision(geometry.V(52.5, 50)) {
		t.Fatal("point inside a lowered gun should collide")
	}
	if tank.HasCollision(geometry.V(50, 52.5)) {
		t.Fatal("point above the hull should be free after rotating the gun away")
	}
}

// flatLandscape builds a field with a solid floor of the given height
// and empty air above it.
func flatLandscape(t *testing.T, width, height, floor int, clock func() time.Time) *terrain.Landscape {
	t.Helper()
	landscape, err := terrain.New(width, height, 1)
	if err != nil {
		t.Fatal(err)
	}
	landscape = landscape.WithClock(clock)
	for y := 0; y < height; y++ {
		line := landscape.PixelsLine(0, y, width)
		v := byte(0)
		if y < floor {
			v = 1
		}
		for i := range line {
			line[i] = v
		}
	}
	return landscape
}

func TestTankThrowDownLandsOnFloor(t *testing.T) {
	clock := core.NewTickClock(60)
	landscape := flatLandscape(t, 20, 30, 5, clock.Now)

	tank := NewTank(1, geometry.V(10, 20), 100)
	tank.ThrowDown(terrain.Gravity, 3.0, clock.Now)
	if !tank.IsThrowing() {
		t.Fatal("tank should be falling after ThrowDown")
	}

	for i := 0; i < 600 && tank.IsThrowing(); i++ {
		clock.Advance()
		tank.UpdateThrowing(landscape)
	}
	if tank.IsThrowing() {
		t.Fatal("tank never landed")
	}

	// The fall starts probing one pixel above the lower tank edge at
	// y=16 and descends 12 lines before the floor top at y=4 holds.
	wantY := 8.0
	if tank.Position.Y != wantY {
		t.Fatalf("landed at y=%v, want %v", tank.Position.Y, wantY)
	}
	if tank.Position.X != 10 {
		t.Fatalf("x drifted to %v during a vertical fall", tank.Position.X)
	}
	if tank.Health.Invincible {
		t.Fatal("invincibility should end after the first landing")
	}
	if tank.Health.Value != 100 {
		t.Fatalf("first landing damaged the tank: health %d", tank.Health.Value)
	}
}

func TestTankSecondFallTakesDamage(t *testing.T) {
	clock := core.NewTickClock(60)
	landscape := flatLandscape(t, 20, 60, 5, clock.Now)

	tank := NewTank(1, geometry.V(10, 50), 100)
	tank.ThrowDown(terrain.Gravity, 3.0, clock.Now)
	for i := 0; i < 600 && tank.IsThrowing(); i++ {
		clock.Advance()
		tank.UpdateThrowing(landscape)
	}
	landedY := tank.Position.Y

	// Drop again from high up, this time without invincibility.
	tank.Position = geometry.V(10, 50)
	tank.ThrowDown(terrain.Gravity, 3.0, clock.Now)
	for i := 0; i < 600 && tank.IsThrowing(); i++ {
		clock.Advance()
		tank.UpdateThrowing(landscape)
	}

	wantDamage := int(math.Round((50 - landedY) * throwingDamagePower))
	if got := 100 - tank.Health.Value; got != wantDamage {
		t.Fatalf("fall damage = %d, want %d", got, wantDamage)
	}
}

func TestTankFallCarvesThinLedge(t *testing.T) {
	clock := core.NewTickClock(60)
	landscape := flatLandscape(t, 20, 30, 5, clock.Now)

	// A one pixel thick ledge with a hole in it above the floor.
	ledge := landscape.PixelsLine(0, 15, 20)
	for i := range ledge {
		ledge[i] = 1
	}
	for i := 7; i < 14; i++ {
		ledge[i] = 0
	}
	landscape.ClearChanged()

	tank := NewTank(1, geometry.V(10, 25), 100)
	tank.ThrowDown(terrain.Gravity, 3.0, clock.Now)
	for i := 0; i < 600 && tank.IsThrowing(); i++ {
		clock.Advance()
		tank.UpdateThrowing(landscape)
	}

	if tank.IsThrowing() {
		t.Fatal("tank never landed")
	}
	if tank.Position.Y >= 15 {
		t.Fatalf("tank stopped at y=%v on a ledge that should not hold it", tank.Position.Y)
	}
	if !landscape.Changed() {
		t.Fatal("carving through the ledge should mark the landscape changed")
	}
}
