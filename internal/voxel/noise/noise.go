// Package noise implements seeded, stateless 2D gradient and value noise
// plus fractal Brownian motion built on top of them.
//
// Every function is a pure function of its arguments: the lattice gradients
// are derived from an integer hash of the cell and the seed rather than a
// shuffled permutation table, so no generator state has to be carried around.
package noise

import "math"

// gradients2 are the eight unit-ish lattice gradients.
var gradients2 = [8][2]float64{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{0.70710678, 0.70710678}, {-0.70710678, 0.70710678},
	{0.70710678, -0.70710678}, {-0.70710678, -0.70710678},
}

// hash mixes a 32-bit integer (lowbias32-style avalanche).
func hash(x uint32) uint32 {
	x = ((x >> 16) ^ x) * 0x45d9f3b
	x = ((x >> 16) ^ x) * 0x45d9f3b
	x = (x >> 16) ^ x
	return x
}

func latticeHash(xi, yi int, seed uint32) uint32 {
	return hash(uint32(xi) + hash(uint32(yi)+seed))
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func grad(h uint32, x, y float64) float64 {
	g := gradients2[h&7]
	return g[0]*x + g[1]*y
}

// Perlin2D returns gradient noise in [-1, 1]. It is zero on integer lattice points.
func Perlin2D(x, y float64, seed uint32) float64 {
	fx := math.Floor(x)
	fy := math.Floor(y)
	xi := int(fx)
	yi := int(fy)
	tx := x - fx
	ty := y - fy

	n00 := grad(latticeHash(xi, yi, seed), tx, ty)
	n10 := grad(latticeHash(xi+1, yi, seed), tx-1, ty)
	n01 := grad(latticeHash(xi, yi+1, seed), tx, ty-1)
	n11 := grad(latticeHash(xi+1, yi+1, seed), tx-1, ty-1)

	u := fade(tx)
	v := fade(ty)
	n := lerp(lerp(n00, n10, u), lerp(n01, n11, u), v)

	// The unscaled range of 2D gradient noise is ±sqrt(0.5).
	n *= math.Sqrt2
	return clamp(n, -1, 1)
}

// Value2D returns smoothly interpolated lattice values in [0, 1].
func Value2D(x, y float64, seed uint32) float64 {
	fx := math.Floor(x)
	fy := math.Floor(y)
	xi := int(fx)
	yi := int(fy)
	tx := x - fx
	ty := y - fy

	const maxU32 = float64(math.MaxUint32)
	v00 := float64(latticeHash(xi, yi, seed)) / maxU32
	v10 := float64(latticeHash(xi+1, yi, seed)) / maxU32
	v01 := float64(latticeHash(xi, yi+1, seed)) / maxU32
	v11 := float64(latticeHash(xi+1, yi+1, seed)) / maxU32

	sx := tx * tx * (3 - 2*tx)
	sy := ty * ty * (3 - 2*ty)
	return lerp(lerp(v00, v10, sx), lerp(v01, v11, sx), sy)
}

// Octaves configures a fractal sum.
type Octaves struct {
	Count       int
	Persistence float64 // amplitude multiplier per octave
	Lacunarity  float64 // frequency multiplier per octave
}

// FBm2D sums Count octaves of Perlin noise, each remapped to [0, 1] and
// seeded with seed+i, and normalizes the result back into [0, 1].
func FBm2D(x, y float64, o Octaves, seed uint32) float64 {
	var value, maxValue float64
	amplitude := 1.0
	frequency := 1.0

	for i := 0; i < o.Count; i++ {
		n := Perlin2D(x*frequency, y*frequency, seed+uint32(i))
		value += (n + 1) * 0.5 * amplitude
		maxValue += amplitude

		amplitude *= o.Persistence
		frequency *= o.Lacunarity
	}
	if maxValue == 0 {
		return 0
	}
	return value / maxValue
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
