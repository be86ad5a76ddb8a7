package terrain

import (
	"testing"
	"time"

	"github.com/Cykooz/tank-war/internal/geometry"
)

// fillSolid turns every pixel of the landscape into ground.
func fillSolid(l *Landscape) {
	for i := range l.buffer {
		l.buffer[i] = 1
	}
}

// clearAll removes all ground.
func clearAll(l *Landscape) {
	for i := range l.buffer {
		l.buffer[i] = 0
	}
}

// setPixel places a single ground pixel at bottom-left based coordinates.
func setPixel(l *Landscape, x, y int) {
	l.buffer[l.index(x, y)] = 1
}

func TestNewValidatesSize(t *testing.T) {
	if _, err := New(0, 10, 1); err == nil {
		t.Error("zero width should be rejected")
	}
	if _, err := New(10, 0, 1); err == nil {
		t.Error("zero height should be rejected")
	}
	if _, err := New(10, 10, 1); err != nil {
		t.Errorf("valid size rejected: %v", err)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, err := New(64, 48, 42)
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(64, 48, 42)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.buffer {
		if a.buffer[i] != b.buffer[i] {
			t.Fatal("same seed produced different landscapes")
		}
	}

	c, err := New(64, 48, 43)
	if err != nil {
		t.Fatal(err)
	}
	same := true
	for i := range a.buffer {
		if a.buffer[i] != c.buffer[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical landscapes")
	}
}

func TestGenerateColumnsAreSolidBelowSurface(t *testing.T) {
	l, err := New(64, 48, 7)
	if err != nil {
		t.Fatal(err)
	}

	solidTotal := 0
	for x := 0; x < 64; x++ {
		// Once a column becomes solid going down, it stays solid.
		seenSolid := false
		for y := 47; y >= 0; y-- {
			solid := l.IsNotEmpty(x, y)
			if seenSolid && !solid {
				t.Fatalf("column %d has a hole below the surface at y=%d", x, y)
			}
			if solid {
				seenSolid = true
				solidTotal++
			}
		}
	}
	if solidTotal == 0 {
		t.Error("generated landscape has no ground at all")
	}
}

func TestPixelsLine(t *testing.T) {
	l, err := New(10, 10, 1)
	if err != nil {
		t.Fatal(err)
	}

	if l.PixelsLine(-1, 0, 3) != nil {
		t.Error("negative x should return nil")
	}
	if l.PixelsLine(0, 10, 3) != nil {
		t.Error("y above the landscape should return nil")
	}
	if l.PixelsLine(0, 0, 0) != nil {
		t.Error("zero length should return nil")
	}
	if got := len(l.PixelsLine(0, 0, 5)); got != 5 {
		t.Errorf("line length = %d, want 5", got)
	}
	if got := len(l.PixelsLine(7, 0, 5)); got != 3 {
		t.Errorf("clipped line length = %d, want 3", got)
	}
}

func TestIsNotEmptyOutside(t *testing.T) {
	l, err := New(10, 10, 1)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {10, 0}, {0, 10}} {
		if l.IsNotEmpty(p[0], p[1]) {
			t.Errorf("IsNotEmpty(%d, %d) = true for a point outside", p[0], p[1])
		}
	}
}

func TestDestroyCircle(t *testing.T) {
	l, err := New(12, 12, 1)
	if err != nil {
		t.Fatal(err)
	}
	fillSolid(l)

	l.ClearChanged()
	l.DestroyCircle(geometry.V(5, 5), 3)

	cleared := [][2]int{
		{3, 5}, {4, 5}, {5, 5}, {6, 5},
		{3, 4}, {4, 4}, {5, 4}, {6, 4},
		{3, 6}, {4, 6}, {5, 6}, {6, 6},
		{4, 3}, {5, 3},
		{4, 7}, {5, 7},
	}
	for _, p := range cleared {
		if l.IsNotEmpty(p[0], p[1]) {
			t.Errorf("pixel (%d, %d) should be destroyed", p[0], p[1])
		}
	}
	intact := [][2]int{
		{2, 5}, {7, 5}, {5, 8}, {5, 2}, {6, 7}, {3, 3},
	}
	for _, p := range intact {
		if !l.IsNotEmpty(p[0], p[1]) {
			t.Errorf("pixel (%d, %d) should survive", p[0], p[1])
		}
	}
	if !l.Changed() {
		t.Error("destroying ground should mark the landscape changed")
	}
}

func TestDestroyCircleOnEmptyGroundDoesNotMarkChanged(t *testing.T) {
	l, err := New(12, 12, 1)
	if err != nil {
		t.Fatal(err)
	}
	clearAll(l)
	l.ClearChanged()

	l.DestroyCircle(geometry.V(5, 5), 3)
	if l.Changed() {
		t.Error("destroying empty space should not mark the landscape changed")
	}
}

func TestSubsidenceDropsFloatingGround(t *testing.T) {
	l, err := New(4, 6, 1)
	if err != nil {
		t.Fatal(err)
	}
	clearAll(l)
	// A ground row at the bottom and one floating pixel above a gap.
	for x := 0; x < 4; x++ {
		setPixel(l, x, 0)
	}
	setPixel(l, 1, 4)

	cur := time.Unix(0, 0)
	l.WithClock(func() time.Time { return cur })

	if l.Update() {
		t.Fatal("Update without subsidence should return false")
	}

	l.Subsidence()
	if !l.IsSubsidence() {
		t.Fatal("subsidence should be active after Subsidence()")
	}

	// One second is enough time for the pixel to land.
	cur = cur.Add(time.Second)
	if !l.Update() {
		t.Fatal("Update should report the finished subsidence")
	}
	if l.IsSubsidence() {
		t.Error("subsidence should be inactive after it finished")
	}

	if !l.IsNotEmpty(1, 1) {
		t.Error("floating pixel should rest on the ground row")
	}
	for _, y := range []int{2, 3, 4} {
		if l.IsNotEmpty(1, y) {
			t.Errorf("pixel at y=%d should be empty after the fall", y)
		}
	}
	if !l.Changed() {
		t.Error("a finished fall should mark the landscape changed")
	}
}

func TestSubsidenceAnimatesOverTime(t *testing.T) {
	l, err := New(4, 8, 1)
	if err != nil {
		t.Fatal(err)
	}
	clearAll(l)
	setPixel(l, 2, 6)

	cur := time.Unix(0, 0)
	l.WithClock(func() time.Time { return cur })
	l.Subsidence()

	// Gravity needs about 0.18 s for the first pixel of fall
	// (round(9.80665 * t^2 * 3) reaches 1), so nothing moves yet.
	cur = cur.Add(50 * time.Millisecond)
	if l.Update() {
		t.Fatal("subsidence should still be in progress")
	}
	if !l.IsNotEmpty(2, 6) {
		t.Error("pixel should not have moved yet")
	}

	cur = cur.Add(150 * time.Millisecond)
	if l.Update() {
		t.Fatal("subsidence should still be in progress")
	}
	if l.IsNotEmpty(2, 6) {
		t.Error("pixel should have started falling")
	}

	// Let it land and settle.
	cur = cur.Add(2 * time.Second)
	if !l.Update() {
		t.Fatal("subsidence should have finished")
	}
	if !l.IsNotEmpty(2, 0) {
		t.Error("pixel should land on the bottom row")
	}
}

func TestSubsidenceConservesGround(t *testing.T) {
	l, err := New(8, 12, 1)
	if err != nil {
		t.Fatal(err)
	}
	clearAll(l)
	// An uneven floor with several floating spans above gaps of
	// different heights.
	for x := 0; x < 8; x += 2 {
		setPixel(l, x, 0)
	}
	for x := 1; x < 5; x++ {
		setPixel(l, x, 4)
		setPixel(l, x, 5)
	}
	setPixel(l, 6, 8)
	setPixel(l, 7, 3)
	setPixel(l, 7, 9)

	countGround := func() int {
		n := 0
		for _, b := range l.buffer {
			if b != 0 {
				n++
			}
		}
		return n
	}
	before := countGround()

	cur := time.Unix(0, 0)
	l.WithClock(func() time.Time { return cur })
	l.Subsidence()

	done := false
	for i := 0; i < 200; i++ {
		cur = cur.Add(100 * time.Millisecond)
		if l.Update() {
			done = true
			break
		}
	}
	if !done {
		t.Fatal("subsidence never finished")
	}

	if after := countGround(); after != before {
		t.Fatalf("solid cells = %d after the collapse, want %d", after, before)
	}
}

func TestFractalRangeAndDeterminism(t *testing.T) {
	n := NewFractal(99, 4, 2.0/64)
	m := NewFractal(99, 4, 2.0/64)
	for i := 0; i < 256; i++ {
		x := float64(i) * 0.37
		v := n.Get(x, 0)
		if v < -1 || v > 1 {
			t.Fatalf("noise value %v out of [-1, 1] at x=%v", v, x)
		}
		if v != m.Get(x, 0) {
			t.Fatalf("noise is not deterministic at x=%v", x)
		}
	}
}
