package chunk

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/voxelworld/internal/voxel/block"
	"github.com/Faultbox/voxelworld/pkg/vmath"
)

// faceRotations turn the unit quad (facing +Z) towards each face.
var faceRotations = [block.FaceCount]mgl32.Mat4{
	block.Right: mgl32.HomogRotate3DY(mgl32.DegToRad(90)),
	block.Left:  mgl32.HomogRotate3DY(mgl32.DegToRad(-90)),
	block.Front: mgl32.Ident4(),
	block.Back:  mgl32.HomogRotate3DY(mgl32.DegToRad(180)),
	block.Up:    mgl32.HomogRotate3DX(mgl32.DegToRad(-90)),
	block.Down:  mgl32.HomogRotate3DX(mgl32.DegToRad(90)),
}

// FaceTransform returns the placement of face f of the block at world
// position p: the quad sits half a block out from the block centre along the
// face normal, rotated to face outwards.
func FaceTransform(p vmath.IVec3, f block.Face) mgl32.Mat4 {
	n := f.Normal()
	t := mgl32.Translate3D(
		float32(p.X)+0.5+0.5*float32(n.X),
		float32(p.Y)+0.5+0.5*float32(n.Y),
		float32(p.Z)+0.5+0.5*float32(n.Z),
	)
	return t.Mul4(faceRotations[f])
}

func (c *Chunk) clearFaces() {
	for k, m := range c.faces {
		c.faces[k] = m[:0]
	}
}

func (c *Chunk) addFace(x, y, z int, f block.Face, b block.Block) {
	key := block.FaceKey{Block: b, Face: f}
	c.faces[key] = append(c.faces[key], FaceTransform(c.WorldPos(x, y, z), f))
}

// Derive rebuilds every face bucket. Transparent blocks emit all six faces;
// opaque blocks emit a face only where the adjacent cell is air. Across a
// chunk edge the adjacent cell is read from the loaded neighbour, and if
// there is none the face is left out until that neighbour arrives.
func (c *Chunk) Derive() {
	c.clearFaces()
	for _, f := range block.Horizontal {
		c.resolved[f] = c.neighbor(f) != nil
	}

	for y := 0; y < Height; y++ {
		for z := 0; z < Depth; z++ {
			for x := 0; x < Width; x++ {
				b := c.blocks[index(x, y, z)]
				if b == block.Air {
					continue
				}
				transparent := b.Transparent()
				for _, f := range block.Faces {
					if transparent || c.faceVisible(x, y, z, f) {
						c.addFace(x, y, z, f, b)
					}
				}
			}
		}
	}
}

// faceVisible reports whether face f of the opaque block at (x, y, z) borders air.
func (c *Chunk) faceVisible(x, y, z int, f block.Face) bool {
	n := f.Normal()
	nx, ny, nz := x+n.X, y+n.Y, z+n.Z

	if ny < 0 || ny >= Height {
		return true
	}
	if nx < 0 || nx >= Width || nz < 0 || nz >= Depth {
		other := c.neighbor(f)
		if other == nil {
			return false
		}
		return other.Block(vmath.Mod(nx, Width), ny, vmath.Mod(nz, Depth)) == block.Air
	}
	return c.blocks[index(nx, ny, nz)] == block.Air
}

// ResolveBoundary derives the faces on the boundary towards horizontal face
// f against neighbor, which is the chunk on that side. It returns false and
// does nothing if that boundary has already been resolved.
func (c *Chunk) ResolveBoundary(f block.Face, neighbor *Chunk) bool {
	if f >= 4 || neighbor == nil || c.resolved[f] {
		return false
	}
	c.resolved[f] = true

	c.forBoundary(f, func(x, y, z, nx, nz int) {
		b := c.blocks[index(x, y, z)]
		// Transparent blocks already carry all six faces.
		if b == block.Air || b.Transparent() {
			return
		}
		if neighbor.Block(nx, y, nz) == block.Air {
			c.addFace(x, y, z, f, b)
		}
	})
	return true
}

// ResetBoundary forgets the boundary towards f and re-derives the chunk, so
// faces emitted against a neighbour that has since gone away are dropped.
func (c *Chunk) ResetBoundary(f block.Face) {
	if f < 4 {
		c.resolved[f] = false
	}
	if c.loaded {
		c.Derive()
	}
}

// forBoundary visits the cells on the edge facing f together with the local
// x/z of the matching cell in the neighbouring chunk.
func (c *Chunk) forBoundary(f block.Face, fn func(x, y, z, nx, nz int)) {
	switch f {
	case block.Right:
		for z := 0; z < Depth; z++ {
			for y := 0; y < Height; y++ {
				fn(Width-1, y, z, 0, z)
			}
		}
	case block.Left:
		for z := 0; z < Depth; z++ {
			for y := 0; y < Height; y++ {
				fn(0, y, z, Width-1, z)
			}
		}
	case block.Front:
		for x := 0; x < Width; x++ {
			for y := 0; y < Height; y++ {
				fn(x, y, Depth-1, x, 0)
			}
		}
	case block.Back:
		for x := 0; x < Width; x++ {
			for y := 0; y < Height; y++ {
				fn(x, y, 0, x, Depth-1)
			}
		}
	}
}
