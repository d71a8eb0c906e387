package chunk

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/voxelworld/pkg/vmath"
)

// Visibility cache limits. A cached answer is reused while the viewer stays
// within these bounds of the position and field of view it was computed for.
const (
	cacheMoveThreshold = 1.0
	cacheFOVThreshold  = 0.1
	cacheMaxFrames     = 10
)

// Viewer is the camera state used for culling.
type Viewer interface {
	Position() mgl32.Vec3
	// FOV returns the vertical field of view in degrees.
	FOV() float32
	Frustum() vmath.Frustum
}

type visibilityCache struct {
	valid   bool
	pos     mgl32.Vec3
	fov     float32
	frame   uint64
	visible bool
}

func (vc *visibilityCache) fresh(pos mgl32.Vec3, fov float32, frame uint64) bool {
	if !vc.valid {
		return false
	}
	if pos.Sub(vc.pos).Len() > cacheMoveThreshold {
		return false
	}
	if d := fov - vc.fov; d > cacheFOVThreshold || d < -cacheFOVThreshold {
		return false
	}
	return frame-vc.frame <= cacheMaxFrames
}

// Renderable reports whether the chunk should be drawn for v at the given
// frame. Chunks whose centre is farther than maxDistance from the viewer are
// rejected; the rest are tested against the view frustum. A nil viewer
// accepts every loaded chunk. maxDistance <= 0 disables the distance check.
func (c *Chunk) Renderable(v Viewer, frame uint64, maxDistance float32) bool {
	if !c.loaded {
		return false
	}
	if v == nil {
		return true
	}

	pos, fov := v.Position(), v.FOV()
	if c.cache.fresh(pos, fov, frame) {
		return c.cache.visible
	}

	visible := v.Frustum().IntersectsAABB(c.bounds)
	if visible && maxDistance > 0 && c.Center().Sub(pos).Len() > maxDistance {
		visible = false
	}

	c.cache = visibilityCache{
		valid:   true,
		pos:     pos,
		fov:     fov,
		frame:   frame,
		visible: visible,
	}
	return visible
}

// InvalidateVisibility drops the cached culling result.
func (c *Chunk) InvalidateVisibility() {
	c.cache.valid = false
}
