// Package chunk stores voxel data in fixed-size columns, derives the visible
// block faces of each column and streams columns in and out around an observer.
//
// Nothing in this package is safe for concurrent use. A Manager and the chunks
// it owns must be driven from a single goroutine.
package chunk

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/voxelworld/internal/voxel/block"
	"github.com/Faultbox/voxelworld/pkg/vmath"
)

// Chunk dimensions in blocks.
const (
	Width  = 16
	Height = 64
	Depth  = 16
	Volume = Width * Height * Depth
)

// RenderData maps each face bucket to its instance transforms.
type RenderData map[block.FaceKey][]mgl32.Mat4

// Neighbors resolves chunk coordinates to loaded chunks. Chunks never hold
// pointers to each other; they ask this lookup whenever they need a neighbour.
type Neighbors interface {
	Chunk(c Coord) *Chunk
}

// Generator fills a freshly created chunk with blocks.
type Generator interface {
	FillChunk(dst *Chunk, c Coord)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(dst *Chunk, c Coord)

// FillChunk calls f(dst, c).
func (f GeneratorFunc) FillChunk(dst *Chunk, c Coord) {
	f(dst, c)
}

// Chunk is a Width x Height x Depth column of blocks plus its derived face buckets.
type Chunk struct {
	coord     Coord
	neighbors Neighbors
	bounds    vmath.AABB

	blocks [Volume]block.Block
	faces  RenderData

	// resolved[f] is set once the faces on the boundary towards horizontal
	// face f have been derived against a loaded neighbour.
	resolved [4]bool

	loaded  bool
	visible bool

	cache visibilityCache
}

// New creates an empty (all air) chunk. neighbors may be nil, in which case
// the chunk behaves as if it had no loaded neighbours.
func New(coord Coord, neighbors Neighbors) *Chunk {
	o := coord.Origin()
	minPos := mgl32.Vec3{float32(o.X), 0, float32(o.Z)}
	return &Chunk{
		coord:     coord,
		neighbors: neighbors,
		bounds: vmath.AABB{
			Min: minPos,
			Max: minPos.Add(mgl32.Vec3{Width, Height, Depth}),
		},
		faces: make(RenderData),
	}
}

func index(x, y, z int) int {
	return (y*Depth+z)*Width + x
}

func inRange(x, y, z int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height && z >= 0 && z < Depth
}

// Block returns the block at local coordinates, or Air outside the chunk.
func (c *Chunk) Block(x, y, z int) block.Block {
	if !inRange(x, y, z) {
		return block.Air
	}
	return c.blocks[index(x, y, z)]
}

// SetBlock stores b at local coordinates. Writes outside the chunk are ignored.
// Face buckets are not updated; call Derive to rebuild them.
func (c *Chunk) SetBlock(x, y, z int, b block.Block) {
	if !inRange(x, y, z) {
		return
	}
	c.blocks[index(x, y, z)] = b
}

// Load fills the chunk, resolves the boundaries of its loaded neighbours
// against it and then derives its own faces. Loading a loaded chunk is a no-op.
func (c *Chunk) Load(gen Generator) {
	if c.loaded {
		return
	}
	if gen != nil {
		gen.FillChunk(c, c.coord)
	}

	// Neighbours first, so the new chunk never shows up next to an unresolved seam.
	for _, f := range block.Horizontal {
		if n := c.neighbor(f); n != nil {
			n.ResolveBoundary(f.Opposite(), c)
		}
	}
	c.Derive()
	c.loaded = true
}

// Unload drops derived faces and block data. The block array keeps its size
// and reads back as air.
func (c *Chunk) Unload() {
	if !c.loaded {
		return
	}
	c.clearFaces()
	c.blocks = [Volume]block.Block{}
	c.resolved = [4]bool{}
	c.cache = visibilityCache{}
	c.loaded = false
	c.visible = false
}

// Coord returns the chunk position.
func (c *Chunk) Coord() Coord { return c.coord }

// Loaded reports whether the chunk has been filled and derived.
func (c *Chunk) Loaded() bool { return c.loaded }

// Visible reports whether the streaming window currently includes the chunk.
func (c *Chunk) Visible() bool { return c.visible }

// SetVisible flags the chunk as inside or outside the streaming window.
func (c *Chunk) SetVisible(v bool) { c.visible = v }

// Bounds returns the world-space bounding box.
func (c *Chunk) Bounds() vmath.AABB { return c.bounds }

// Center returns the world-space centre of the chunk.
func (c *Chunk) Center() mgl32.Vec3 { return c.bounds.Center() }

// WorldPos converts local block coordinates to world block coordinates.
func (c *Chunk) WorldPos(x, y, z int) vmath.IVec3 {
	return c.coord.Origin().Add(vmath.IVec3{X: x, Y: y, Z: z})
}

// Faces returns the chunk's face buckets. The map is owned by the chunk and
// is rebuilt by Derive.
func (c *Chunk) Faces() RenderData { return c.faces }

// TotalInstances returns the number of face instances across all buckets.
func (c *Chunk) TotalInstances() int {
	total := 0
	for _, m := range c.faces {
		total += len(m)
	}
	return total
}

// Resolved reports whether the boundary towards horizontal face f has been
// derived against a loaded neighbour.
func (c *Chunk) Resolved(f block.Face) bool {
	if f >= 4 {
		return false
	}
	return c.resolved[f]
}

func (c *Chunk) neighbor(f block.Face) *Chunk {
	if c.neighbors == nil {
		return nil
	}
	n := c.neighbors.Chunk(c.coord.Neighbor(f))
	if n == nil || n == c || !n.loaded {
		return nil
	}
	return n
}
