// Package terrain implements the destructible landscape: fractal
// generation, circular excavation and gravity driven subsidence.
package terrain

import "math"

// Fractal is seeded fractional Brownian motion over a value-noise
// lattice. The output is normalized to roughly [-1, 1].
type Fractal struct {
	seed      uint32
	octaves   int
	frequency float64
}

// NewFractal creates a noise source. Octaves below 1 are clamped to 1.
func NewFractal(seed uint32, octaves int, frequency float64) *Fractal {
	if octaves < 1 {
		octaves = 1
	}
	return &Fractal{
		seed:      seed,
		octaves:   octaves,
		frequency: frequency,
	}
}

// Seed returns the lattice seed.
func (f *Fractal) Seed() uint32 {
	return f.seed
}

// Get samples the fractal at the given point. Each octave doubles the
// frequency and halves the amplitude of the previous one.
func (f *Fractal) Get(x, y float64) float64 {
	sum := 0.0
	norm := 0.0
	amplitude := 1.0
	frequency := f.frequency
	for i := 0; i < f.octaves; i++ {
		sum += amplitude * f.value(x*frequency, y*frequency, uint32(i))
		norm += amplitude
		amplitude *= 0.5
		frequency *= 2
	}
	return sum / norm
}

// value is one octave of smoothly interpolated lattice noise in [-1, 1].
func (f *Fractal) value(x, y float64, octave uint32) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	tx := smoothstep(x - x0)
	ty := smoothstep(y - y0)

	ix, iy := int32(x0), int32(y0)
	v00 := f.lattice(ix, iy, octave)
	v10 := f.lattice(ix+1, iy, octave)
	v01 := f.lattice(ix, iy+1, octave)
	v11 := f.lattice(ix+1, iy+1, octave)

	top := lerp(v00, v10, tx)
	bottom := lerp(v01, v11, tx)
	return lerp(top, bottom, ty)
}

// lattice hashes a grid point into a pseudo-random value in [-1, 1].
func (f *Fractal) lattice(x, y int32, octave uint32) float64 {
	h := f.seed ^ (octave * 0x9e3779b9)
	h ^= uint32(x) * 0x85ebca6b
	h ^= uint32(y) * 0xc2b2ae35
	h ^= h >> 13
	h *= 0x27d4eb2f
	h ^= h >> 15
	return float64(h)/float64(math.MaxUint32)*2 - 1
}

func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
