package debug

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/voxelworld/pkg/vmath"
)

// BBoxWireframeVertices creates line vertices for a wireframe bounding box.
// Returns 24 vertices (12 edges × 2 endpoints), format: [x, y, z] per vertex.
func BBoxWireframeVertices(box vmath.AABB) []float32 {
	minX, minY, minZ := box.Min.X(), box.Min.Y(), box.Min.Z()
	maxX, maxY, maxZ := box.Max.X(), box.Max.Y(), box.Max.Z()
	return []float32{
		// Bottom face
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}

// ChunkBorders returns the wireframe vertices of every box, padded outwards
// by padding on all sides.
func ChunkBorders(boxes []vmath.AABB, padding float32) []float32 {
	out := make([]float32, 0, len(boxes)*24*3)
	for _, b := range boxes {
		b.Min = b.Min.Sub(vec3(padding))
		b.Max = b.Max.Add(vec3(padding))
		out = append(out, BBoxWireframeVertices(b)...)
	}
	return out
}

func vec3(v float32) mgl32.Vec3 {
	return mgl32.Vec3{v, v, v}
}
