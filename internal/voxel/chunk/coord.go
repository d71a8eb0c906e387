package chunk

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/voxelworld/internal/voxel/block"
	"github.com/Faultbox/voxelworld/pkg/vmath"
)

// Coord is a chunk position on the horizontal grid. One chunk spans the full
// world height, so there is no vertical component.
type Coord struct {
	X, Z int32
}

// Key packs a Coord into a single integer for map lookups.
type Key int64

// Key returns the packed key: X in the high 32 bits, Z in the low 32 bits.
func (c Coord) Key() Key {
	return Key(int64(c.X)<<32 | int64(uint32(c.Z)))
}

// Coord unpacks the key.
func (k Key) Coord() Coord {
	return Coord{X: int32(k >> 32), Z: int32(uint32(k))}
}

// Add offsets the coordinate.
func (c Coord) Add(dx, dz int32) Coord {
	return Coord{X: c.X + dx, Z: c.Z + dz}
}

// Neighbor returns the coordinate across the given horizontal face.
// Up and Down return c unchanged.
func (c Coord) Neighbor(f block.Face) Coord {
	n := f.Normal()
	return c.Add(int32(n.X), int32(n.Z))
}

// Chebyshev returns max(|dx|, |dz|) between two coordinates.
func (c Coord) Chebyshev(o Coord) int {
	return max(vmath.Abs(int(c.X-o.X)), vmath.Abs(int(c.Z-o.Z)))
}

// CoordOfBlock returns the chunk containing world block column (x, z).
func CoordOfBlock(x, z int) Coord {
	return Coord{X: int32(vmath.FloorDiv(x, Width)), Z: int32(vmath.FloorDiv(z, Depth))}
}

// CoordAtWorld returns the chunk containing a world-space point.
func CoordAtWorld(pos mgl32.Vec3) Coord {
	return CoordOfBlock(vmath.FloorInt(pos.X()), vmath.FloorInt(pos.Z()))
}

// Origin returns the world block position of local (0, 0, 0).
func (c Coord) Origin() vmath.IVec3 {
	return vmath.IVec3{X: int(c.X) * Width, Z: int(c.Z) * Depth}
}
