package physics

import (
	"math"
	"testing"

	"github.com/Cykooz/tank-war/internal/geometry"
)

func TestPositionsHorizontal(t *testing.T) {
	b := New(
		geometry.V(0, 0),
		geometry.V(100, 0),
		geometry.V(0, 0),
	).WithTimeScale(1)

	it := b.PositionsUntil(10, nil)
	for x := 1; x <= 1000; x++ {
		p, ok := it.Next()
		if !ok {
			t.Fatalf("iterator exhausted at x=%d", x)
		}
		if p != (Pixel{x, 0}) {
			t.Fatalf("pixel = %v, want (%d, 0)", p, x)
		}
	}
	if _, ok := it.Next(); ok {
		t.Fatal("iterator should be exhausted after 1000 pixels")
	}
	if math.Abs(b.lastUpdated-10) > 1e-9 {
		t.Errorf("lastUpdated = %v, want 10", b.lastUpdated)
	}
	if math.Abs(b.CurPos().X-1000) > 1e-9 {
		t.Errorf("curPos.X = %v, want 1000", b.CurPos().X)
	}

	// A second walk continues from where the first one stopped.
	it = b.PositionsUntil(20, nil)
	for x := 1001; x <= 2000; x++ {
		p, ok := it.Next()
		if !ok {
			t.Fatalf("iterator exhausted at x=%d", x)
		}
		if p != (Pixel{x, 0}) {
			t.Fatalf("pixel = %v, want (%d, 0)", p, x)
		}
	}
	if _, ok := it.Next(); ok {
		t.Fatal("iterator should be exhausted after 2000 pixels")
	}
	if math.Abs(b.lastUpdated-20) > 1e-9 {
		t.Errorf("lastUpdated = %v, want 20", b.lastUpdated)
	}
	if math.Abs(b.CurPos().X-2000) > 1e-9 {
		t.Errorf("curPos.X = %v, want 2000", b.CurPos().X)
	}
}

func TestPositionsVertical(t *testing.T) {
	b := New(
		geometry.V(0, 0),
		geometry.V(0, 100),
		geometry.V(0, 0),
	).WithTimeScale(1)

	it := b.PositionsUntil(10, nil)
	for y := 1; y <= 1000; y++ {
		p, ok := it.Next()
		if !ok {
			t.Fatalf("iterator exhausted at y=%d", y)
		}
		if p != (Pixel{0, y}) {
			t.Fatalf("pixel = %v, want (0, %d)", p, y)
		}
	}
	if _, ok := it.Next(); ok {
		t.Fatal("iterator should be exhausted after 1000 pixels")
	}
	if math.Abs(b.lastUpdated-10) > 1e-9 {
		t.Errorf("lastUpdated = %v, want 10", b.lastUpdated)
	}
	if math.Abs(b.CurPos().Y-1000) > 1e-9 {
		t.Errorf("curPos.Y = %v, want 1000", b.CurPos().Y)
	}
}

func TestPositionsTimeScale(t *testing.T) {
	b := New(
		geometry.V(0, 0),
		geometry.V(100, 0),
		geometry.V(0, 0),
	).WithTimeScale(2)

	// With a double time scale a 5 second budget covers 10 scaled seconds.
	it := b.PositionsUntil(5, nil)
	count := 0
	for {
		if _, ok := it.Next(); !ok {
			break
		}
		count++
	}
	if count != 1000 {
		t.Errorf("visited %d pixels, want 1000", count)
	}
}

func TestPositionsHorizontalRebound(t *testing.T) {
	b := New(
		geometry.V(5, 0),
		geometry.V(10, 0),
		geometry.V(0, 0),
	).WithTimeScale(1)
	borders := &Borders{Width: 10, Height: 100}

	var pixels []Pixel
	it := b.PositionsUntil(1, borders)
	for {
		p, ok := it.Next()
		if !ok {
			break
		}
		pixels = append(pixels, p)
	}

	// 10 px/s for one second, forward to the wall at x=9. The rebound
	// re-anchors at the last yielded pixel and subtracts only that
	// pixel's time, so the slice between the last yield and the wall
	// crossing is replayed and the backward leg travels one pixel
	// further than the mirror of the forward leg, down into x=2.
	want := []Pixel{
		{6, 0}, {7, 0}, {8, 0}, {9, 0},
		{8, 0}, {7, 0}, {6, 0}, {5, 0}, {4, 0}, {3, 0}, {2, 0},
	}
	if len(pixels) != len(want) {
		t.Fatalf("pixels = %v, want %v", pixels, want)
	}
	for i := range want {
		if pixels[i] != want[i] {
			t.Fatalf("pixels = %v, want %v", pixels, want)
		}
	}

	_, velocity := b.PosAndVelocity()
	if velocity.X >= 0 {
		t.Errorf("velocity.X = %v, want negative after rebound", velocity.X)
	}
}

func TestReboundEfficiencyDampsVelocity(t *testing.T) {
	b := New(
		geometry.V(5, 0),
		geometry.V(10, 0),
		geometry.V(0, 0),
	).WithTimeScale(1).WithReboundEfficiency(0.5)
	borders := &Borders{Width: 10, Height: 100}

	it := b.PositionsUntil(1, borders)
	for {
		if _, ok := it.Next(); !ok {
			break
		}
	}

	_, velocity := b.PosAndVelocity()
	if math.Abs(velocity.X+5) > 1e-9 {
		t.Errorf("velocity.X = %v, want -5 after damped rebound", velocity.X)
	}
}

func TestPositionsTopBorderIsOpen(t *testing.T) {
	// The vertical check uses y > height, so the projectile may occupy
	// the row y == height, unlike the right border where x == width
	// already rebounds.
	b := New(
		geometry.V(0, 5),
		geometry.V(0, 10),
		geometry.V(0, 0),
	).WithTimeScale(1)
	borders := &Borders{Width: 100, Height: 10}

	var topmost int
	it := b.PositionsUntil(1, borders)
	for {
		p, ok := it.Next()
		if !ok {
			break
		}
		if p.Y > topmost {
			topmost = p.Y
		}
	}
	if topmost != 10 {
		t.Errorf("topmost row = %d, want 10", topmost)
	}
}

func TestPositionsAnchoredOutsideBordersExhausts(t *testing.T) {
	// A track anchored above the open top border with purely vertical
	// motion rebounds without ever entering the box. The repeated
	// rebound must kill the vertical motion so the walk drains its
	// time budget instead of ping-ponging forever.
	b := New(
		geometry.V(18.5, 25.5),
		geometry.V(0, -14),
		geometry.V(0, -9.80665),
	).WithTimeScale(1)
	borders := &Borders{Width: 60, Height: 23}

	it := b.PositionsUntil(0.05, borders)
	for i := 0; ; i++ {
		if i > 1000 {
			t.Fatal("iterator did not exhaust for an out-of-bounds anchor")
		}
		p, ok := it.Next()
		if !ok {
			break
		}
		if p.Y < 0 || p.Y > borders.Height {
			t.Fatalf("yielded out-of-bounds pixel %v", p)
		}
	}

	_, velocity := b.PosAndVelocity()
	if velocity.Y != 0 {
		t.Errorf("velocity.Y = %v, want 0 after the wedged rebounds", velocity.Y)
	}
}

func TestZeroVelocityIteratorExhausts(t *testing.T) {
	b := New(geometry.V(3, 3), geometry.V(0, 0), geometry.V(0, 0))

	it := b.PositionsUntil(5, nil)
	if p, ok := it.Next(); ok {
		t.Errorf("stationary track yielded %v, want exhaustion", p)
	}
	if math.Abs(b.lastUpdated-5) > 1e-9 {
		t.Errorf("lastUpdated = %v, want 5", b.lastUpdated)
	}
}

func TestGravityArcComesBackDown(t *testing.T) {
	b := New(
		geometry.V(0, 0),
		geometry.V(10, 30),
		geometry.V(0, -9.80665),
	).WithTimeScale(1)

	var peak int
	var last Pixel
	it := b.PositionsUntil(10, nil)
	for {
		p, ok := it.Next()
		if !ok {
			break
		}
		if p.Y > peak {
			peak = p.Y
		}
		last = p
	}
	if peak <= 0 {
		t.Fatal("trajectory never rose")
	}
	if last.Y >= peak {
		t.Errorf("final row %d did not descend from peak %d", last.Y, peak)
	}
}
