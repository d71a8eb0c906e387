// Package terrain generates chunk contents from layered fractal noise.
package terrain

import (
	"fmt"
	"math"

	"github.com/Faultbox/voxelworld/internal/voxel/block"
	"github.com/Faultbox/voxelworld/internal/voxel/chunk"
	"github.com/Faultbox/voxelworld/internal/voxel/noise"
)

// Params controls terrain shape. Level and depth values are fractions of the
// chunk height in [0, 1]. The generator uses them as given; Validate is the
// place to reject bad input.
type Params struct {
	Seed          uint32
	SeaLevel      float64
	MountainLevel float64
	GrassLevel    float64
	DirtDepth     float64
	StoneDepth    float64
}

// DefaultParams returns the stock terrain parameters.
func DefaultParams() Params {
	return Params{
		Seed:          11242342,
		SeaLevel:      0.3,
		MountainLevel: 0.7,
		GrassLevel:    0.7,
		DirtDepth:     0.65,
		StoneDepth:    0.60,
	}
}

// Validate reports fractions outside [0, 1] and an inverted sea/mountain range.
func (p Params) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"sea_level", p.SeaLevel},
		{"mountain_level", p.MountainLevel},
		{"grass_level", p.GrassLevel},
		{"dirt_depth", p.DirtDepth},
		{"stone_depth", p.StoneDepth},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || f.v < 0 || f.v > 1 {
			return fmt.Errorf("%s %v out of range [0, 1]", f.name, f.v)
		}
	}
	if p.SeaLevel > p.MountainLevel {
		return fmt.Errorf("sea_level %v above mountain_level %v", p.SeaLevel, p.MountainLevel)
	}
	return nil
}

// Noise bands combined into the height field.
var (
	baseBand     = band{freq: 0.01, octaves: noise.Octaves{Count: 5, Persistence: 0.5, Lacunarity: 2.0}, weight: 0.6}
	mountainBand = band{freq: 0.005, octaves: noise.Octaves{Count: 3, Persistence: 0.5, Lacunarity: 2.0}, seedOffset: 123, weight: 0.3}
	detailBand   = band{freq: 0.02, octaves: noise.Octaves{Count: 4, Persistence: 0.6, Lacunarity: 2.2}, seedOffset: 456, weight: 0.1}
)

type band struct {
	freq       float64
	octaves    noise.Octaves
	seedOffset uint32
	weight     float64
}

func (b band) sample(wx, wz int, seed uint32) float64 {
	return noise.FBm2D(float64(wx)*b.freq, float64(wz)*b.freq, b.octaves, seed+b.seedOffset)
}

// cacheMargin pads the per-chunk noise tile on every side.
const cacheMargin = 2

// Generator fills chunks. Output depends only on the parameters and the
// chunk coordinate. A Generator keeps a scratch noise tile and must not be
// shared between goroutines.
type Generator struct {
	params Params

	tile     []float64
	tileX    int
	tileZ    int
	tileSize int
	tileOK   bool
}

// New creates a generator.
func New(p Params) *Generator {
	size := chunk.Width + 2*cacheMargin
	return &Generator{
		params:   p,
		tile:     make([]float64, size*size),
		tileSize: size,
	}
}

// Params returns the generator parameters.
func (g *Generator) Params() Params { return g.params }

// SetSeed changes the seed and drops the noise tile.
func (g *Generator) SetSeed(seed uint32) {
	g.params.Seed = seed
	g.tileOK = false
}

// heightNoise returns the combined height fraction in [0, 1] at a world column.
func (g *Generator) heightNoise(wx, wz int) float64 {
	seed := g.params.Seed
	h := baseBand.weight*baseBand.sample(wx, wz, seed) +
		mountainBand.weight*mountainBand.sample(wx, wz, seed) +
		detailBand.weight*detailBand.sample(wx, wz, seed)
	return clamp(math.Sqrt(h), 0, 1)
}

func (g *Generator) buildTile(originX, originZ int) {
	g.tileX, g.tileZ = originX, originZ
	for z := 0; z < g.tileSize; z++ {
		for x := 0; x < g.tileSize; x++ {
			g.tile[z*g.tileSize+x] = g.heightNoise(originX+x, originZ+z)
		}
	}
	g.tileOK = true
}

func (g *Generator) cachedNoise(wx, wz int) float64 {
	lx, lz := wx-g.tileX, wz-g.tileZ
	if g.tileOK && lx >= 0 && lx < g.tileSize && lz >= 0 && lz < g.tileSize {
		return g.tile[lz*g.tileSize+lx]
	}
	return g.heightNoise(wx, wz)
}

// groundLevel returns the topmost solid y of a column with height fraction h.
func groundLevel(h float64) int {
	return clampInt(int(h*chunk.Height), 0, chunk.Height-1)
}

// column returns the block at height y of a column whose height fraction is h.
func (g *Generator) column(h float64, y int) block.Block {
	ground := groundLevel(h)
	if y < 0 || y > ground {
		return block.Air
	}
	if y == ground && h > g.params.GrassLevel {
		return block.Grass
	}
	if float64(y) >= g.params.DirtDepth*chunk.Height {
		return block.Dirt
	}
	return block.Stone
}

// FillChunk writes the terrain of chunk c into dst.
func (g *Generator) FillChunk(dst *chunk.Chunk, c chunk.Coord) {
	o := c.Origin()
	g.buildTile(o.X-cacheMargin, o.Z-cacheMargin)

	for z := 0; z < chunk.Depth; z++ {
		for x := 0; x < chunk.Width; x++ {
			h := g.cachedNoise(o.X+x, o.Z+z)
			for y := 0; y < chunk.Height; y++ {
				dst.SetBlock(x, y, z, g.column(h, y))
			}
		}
	}
}

// HeightAt returns the surface height at a world column, mapped between the
// sea and mountain levels. Meshing never reads it.
func (g *Generator) HeightAt(wx, wz int) float64 {
	h := g.cachedNoise(wx, wz)
	lo := g.params.SeaLevel * chunk.Height
	hi := g.params.MountainLevel * chunk.Height
	return lo + h*(hi-lo)
}

// BlockAt returns the block FillChunk places at a world position.
func (g *Generator) BlockAt(wx, wy, wz int) block.Block {
	if wy < 0 || wy >= chunk.Height {
		return block.Air
	}
	return g.column(g.cachedNoise(wx, wz), wy)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
