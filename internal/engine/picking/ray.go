// Package picking provides ray casting against the block grid.
package picking

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/voxelworld/internal/voxel/block"
	"github.com/Faultbox/voxelworld/pkg/vmath"
)

// minDirection is the smallest direction component used for the inverse.
const minDirection = 1e-4

// BlockSource resolves world block positions. ok is false when the position
// lies in a chunk that is not loaded.
type BlockSource interface {
	BlockAt(x, y, z int) (b block.Block, ok bool)
}

// Ray represents a ray in 3D space with origin and direction. Rays must be
// created with NewRay.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3 // Normalized direction
	inv       mgl32.Vec3
}

// HitResult describes the first solid block along a ray.
type HitResult struct {
	Hit bool

	BlockPos    vmath.IVec3
	AdjacentPos vmath.IVec3 // empty cell in front of the hit face
	HitPoint    mgl32.Vec3
	Normal      vmath.IVec3
	Face        block.Face
	Distance    float32
	Block       block.Block
}

// NewRay creates a ray. dir need not be normalized.
func NewRay(origin, dir mgl32.Vec3) Ray {
	if l := dir.Len(); l > 0 {
		dir = dir.Mul(1 / l)
	}
	r := Ray{Origin: origin, Direction: dir}
	for i := 0; i < 3; i++ {
		d := dir[i]
		switch {
		case d >= minDirection || d <= -minDirection:
		case d < 0:
			d = -minDirection
		default:
			d = minDirection
		}
		r.inv[i] = 1 / d
	}
	return r
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Cast walks the grid cells crossed by the ray, starting with the cell after
// the one containing the origin, and returns the first non-air block within
// maxDistance. Cells in unloaded chunks are passed through.
func (r Ray) Cast(src BlockSource, maxDistance float32) HitResult {
	if src == nil || maxDistance <= 0 {
		return HitResult{}
	}

	cell := vmath.Floor(r.Origin)
	cur := [3]int{cell.X, cell.Y, cell.Z}
	var step [3]int
	var tMax, tDelta [3]float32

	for i := 0; i < 3; i++ {
		tDelta[i] = float32(math.Abs(float64(r.inv[i])))
		switch {
		case r.Direction[i] > 0:
			step[i] = 1
			tMax[i] = (float32(cur[i]+1) - r.Origin[i]) * r.inv[i]
		case r.Direction[i] < 0:
			step[i] = -1
			tMax[i] = (float32(cur[i]) - r.Origin[i]) * r.inv[i]
		default:
			step[i] = 1
			tMax[i] = math.MaxFloat32
		}
	}

	maxSteps := int(maxDistance * 3)
	for n := 0; n < maxSteps; n++ {
		axis := 2
		if tMax[0] < tMax[1] && tMax[0] < tMax[2] {
			axis = 0
		} else if tMax[1] < tMax[2] {
			axis = 1
		}

		cur[axis] += step[axis]
		dist := tMax[axis]
		tMax[axis] += tDelta[axis]
		if dist > maxDistance {
			break
		}

		b, ok := src.BlockAt(cur[0], cur[1], cur[2])
		if !ok || b == block.Air {
			continue
		}

		var normal vmath.IVec3
		switch axis {
		case 0:
			normal.X = -step[0]
		case 1:
			normal.Y = -step[1]
		case 2:
			normal.Z = -step[2]
		}
		face, _ := block.FaceFromNormal(normal)
		pos := vmath.IVec3{X: cur[0], Y: cur[1], Z: cur[2]}

		return HitResult{
			Hit:         true,
			BlockPos:    pos,
			AdjacentPos: pos.Add(normal),
			HitPoint:    r.At(dist),
			Normal:      normal,
			Face:        face,
			Distance:    dist,
			Block:       b,
		}
	}
	return HitResult{}
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport dimensions.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj mgl32.Mat4) Ray {
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH // Flip Y

	near := unproject(invViewProj, mgl32.Vec4{ndcX, ndcY, -1, 1})
	far := unproject(invViewProj, mgl32.Vec4{ndcX, ndcY, 1, 1})

	return NewRay(near, far.Sub(near))
}

func unproject(inv mgl32.Mat4, ndc mgl32.Vec4) mgl32.Vec3 {
	p := inv.Mul4x1(ndc)
	if p.W() != 0 {
		return p.Vec3().Mul(1 / p.W())
	}
	return p.Vec3()
}
