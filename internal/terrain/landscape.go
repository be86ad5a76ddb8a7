package terrain

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/Cykooz/tank-war/internal/geometry"
)

// Gravity acceleration applied to subsiding ground, in pixels per
// second squared.
const Gravity = 9.80665

// subsidenceTimeScale speeds up the ground fall relative to real time.
const subsidenceTimeScale = 3.0

const noiseOctaves = 4

// Landscape is a destructible height field stored as a byte per pixel.
// The origin (0, 0) is the bottom-left corner; the buffer is kept in
// texture order with row 0 at the top.
type Landscape struct {
	width  int
	height int
	buffer []byte

	noise     *Fractal
	amplitude float64
	offset    float64

	changed bool

	subsidenceStarted bool
	subsidenceAnchor  time.Time
	subsidenceLastPos int
	subsidenceSkip    int
	subsidenceTake    int

	now func() time.Time
}

// New creates a landscape of the given size and generates its initial
// relief. The seed drives both the noise lattice and the horizontal
// offset, so equal seeds produce equal landscapes.
func New(width, height int, seed uint32) (*Landscape, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New("'width' and 'height' must be greater than 0")
	}

	rng := rand.New(rand.NewSource(int64(seed)))
	l := &Landscape{
		width:          width,
		height:         height,
		buffer:         make([]byte, width*height),
		amplitude:      float64(height) / 2,
		offset:         rng.Float64() * float64(width) / 2,
		noise:          newLandscapeNoise(width, seed),
		changed:        true,
		subsidenceTake: width,
		now:            time.Now,
	}
	l.Generate()
	return l, nil
}

func newLandscapeNoise(width int, seed uint32) *Fractal {
	return NewFractal(seed, noiseOctaves, 2/float64(width))
}

// WithClock replaces the wall clock used for subsidence timing.
func (l *Landscape) WithClock(now func() time.Time) *Landscape {
	l.now = now
	return l
}

// SetSeed replaces the noise lattice. Call Generate to apply it.
func (l *Landscape) SetSeed(seed uint32) {
	l.noise = newLandscapeNoise(l.width, seed)
}

// Seed returns the current noise seed.
func (l *Landscape) Seed() uint32 {
	return l.noise.Seed()
}

// Offset returns the horizontal sampling offset of the relief.
func (l *Landscape) Offset() float64 {
	return l.offset
}

// SetOffset moves the horizontal sampling offset. Call Generate to
// apply it.
func (l *Landscape) SetOffset(offset float64) {
	l.offset = offset
}

// Changed reports whether the landscape pixels were modified since the
// last ClearChanged.
func (l *Landscape) Changed() bool {
	return l.changed
}

// SetChanged marks the landscape as modified.
func (l *Landscape) SetChanged() {
	l.changed = true
}

// ClearChanged resets the modification flag, normally after the
// landscape has been redrawn.
func (l *Landscape) ClearChanged() {
	l.changed = false
}

// Size returns the landscape dimensions in pixels.
func (l *Landscape) Size() (int, int) {
	return l.width, l.height
}

// Generate rebuilds the relief from the current seed and offset. Each
// column gets a surface height sampled from the fractal around the
// vertical middle; everything below is solid.
func (l *Landscape) Generate() {
	stride := l.width
	yCenter := float64(l.height) / 2

	for x := 0; x < l.width; x++ {
		sx := float64(x) + l.offset
		value := l.noise.Get(sx, 0) * l.amplitude
		y := int(math.Max(math.Round(yCenter+value), 0))
		if y > l.height {
			y = l.height
		}

		for row := 0; row < y; row++ {
			l.buffer[row*stride+x] = 0
		}
		for row := y; row < l.height; row++ {
			l.buffer[row*stride+x] = 1
		}
	}
}

// index converts bottom-left based coordinates into a buffer offset.
func (l *Landscape) index(x, y int) int {
	return (l.height-y-1)*l.width + x
}

// PixelsLine returns a mutable row of up to length pixels starting at
// the given point, clipped to the right edge. It returns nil when the
// start point is outside the landscape or length is not positive.
func (l *Landscape) PixelsLine(x, y, length int) []byte {
	if x < 0 || y < 0 || x >= l.width || y >= l.height || length <= 0 {
		return nil
	}
	index := l.index(x, y)
	if rest := l.width - x; length > rest {
		length = rest
	}
	return l.buffer[index : index+length]
}

// IsNotEmpty reports whether the pixel at (x, y) is solid ground.
// Points outside the landscape are empty.
func (l *Landscape) IsNotEmpty(x, y int) bool {
	if x < 0 || y < 0 || x >= l.width || y >= l.height {
		return false
	}
	return l.buffer[l.index(x, y)] > 0
}

// Subsidence starts (or restarts) the falling of unsupported ground.
// The fall is animated over subsequent Update calls.
func (l *Landscape) Subsidence() {
	if !l.subsidenceStarted {
		l.subsidenceStarted = true
		l.subsidenceAnchor = l.now()
	}
	l.subsidenceLastPos = 0
	l.subsidenceSkip = 0
	l.subsidenceTake = l.width
}

// IsSubsidence reports whether ground is currently falling.
func (l *Landscape) IsSubsidence() bool {
	return l.subsidenceStarted
}

// Update advances the current subsidence by the time elapsed since it
// started. It returns true once, when the subsidence finishes.
func (l *Landscape) Update() bool {
	if !l.subsidenceStarted {
		return false
	}

	t := l.now().Sub(l.subsidenceAnchor).Seconds()
	curPos := int(math.Round(Gravity * t * t * subsidenceTimeScale))
	delta := curPos - l.subsidenceLastPos
	l.subsidenceLastPos = curPos
	stride := l.width

	for i := 0; i < delta; i++ {
		changed := false
		curRowIndex := stride * l.height
		leftChangedPos := l.subsidenceTake
		rightChangedPos := 0

		// Walk rows bottom-up, dropping solid pixels into the empty
		// cells right below them. The skip/take window shrinks to the
		// columns that still moved on the previous pass.
		for row := 1; row < l.height; row++ {
			curRowIndex -= stride
			topRow := l.buffer[curRowIndex-stride : curRowIndex]
			curRow := l.buffer[curRowIndex : curRowIndex+stride]

			from := l.subsidenceSkip
			if from > stride {
				from = stride
			}
			to := from + l.subsidenceTake
			if to > stride {
				to = stride
			}
			for col := from; col < to; col++ {
				if curRow[col] == 0 && topRow[col] != 0 {
					curRow[col] = topRow[col]
					topRow[col] = 0
					changed = true
					rel := col - from
					if rel < leftChangedPos {
						leftChangedPos = rel
					}
					if rel > rightChangedPos {
						rightChangedPos = rel
					}
				}
			}
		}

		l.subsidenceSkip += leftChangedPos
		l.subsidenceTake = rightChangedPos + 1

		if changed {
			l.changed = true
		} else {
			l.subsidenceStarted = false
			return true
		}
	}

	return false
}

// DestroyCircle clears a filled circle of ground around the given
// position. The excavation outline follows the midpoint circle of
// radius-1, cleared as horizontal spans.
func (l *Landscape) DestroyCircle(position geometry.Vec2, radius int) {
	landscapeChanged := false
	cx, cy := int(position.X), int(position.Y)

	x := -(radius - 1)
	y := 0
	err := 2 - 2*(radius-1)

	for x < 0 {
		// Symmetric outline points on the rows above and below the
		// center give one clearing span per row.
		x1, y1 := cx-x, cy+y
		x2, y2 := cx+x, cy-y

		left := x1
		if x2 < left {
			left = x2
		}
		if left < 0 {
			left = 0
		}
		right := x1
		if x2 > right {
			right = x2
		}
		if right < 0 {
			right = 0
		}
		length := right - left

		if length > 0 {
			for _, row := range [2]int{y1, y2} {
				pixels := l.PixelsLine(left, row, length)
				for i := range pixels {
					if pixels[i] != 0 {
						pixels[i] = 0
						landscapeChanged = true
					}
				}
			}
		}

		e := err
		if e <= y {
			y++
			err += y*2 + 1
		}
		if e > x || err > y {
			x++
			err += x*2 + 1
		}
	}

	if landscapeChanged {
		l.SetChanged()
	}
}
