package vmath

import "github.com/go-gl/mathgl/mgl32"

// Plane is ax+by+cz+d with Normal = (a, b, c).
// Points with a non-negative distance lie on the inside.
type Plane struct {
	Normal mgl32.Vec3
	D      float32
}

// Distance returns the signed distance of p from the plane.
func (p Plane) Distance(pt mgl32.Vec3) float32 {
	return p.Normal.Dot(pt) + p.D
}

// Plane indices within a Frustum.
const (
	PlaneLeft = iota
	PlaneRight
	PlaneBottom
	PlaneTop
	PlaneNear
	PlaneFar
)

// Frustum holds six inward-facing planes.
type Frustum [6]Plane

// FrustumFromMatrix extracts normalized planes from a view-projection matrix
// (Gribb/Hartmann).
func FrustumFromMatrix(viewProj mgl32.Mat4) Frustum {
	r0 := viewProj.Row(0)
	r1 := viewProj.Row(1)
	r2 := viewProj.Row(2)
	r3 := viewProj.Row(3)

	raw := [6]mgl32.Vec4{
		PlaneLeft:   r3.Add(r0),
		PlaneRight:  r3.Sub(r0),
		PlaneBottom: r3.Add(r1),
		PlaneTop:    r3.Sub(r1),
		PlaneNear:   r3.Add(r2),
		PlaneFar:    r3.Sub(r2),
	}

	var f Frustum
	for i, v := range raw {
		n := v.Vec3()
		d := v.W()
		if l := n.Len(); l > 0.0001 {
			n = n.Mul(1 / l)
			d /= l
		}
		f[i] = Plane{Normal: n, D: d}
	}
	return f
}

// ContainsPoint reports whether pt is inside all six planes.
func (f Frustum) ContainsPoint(pt mgl32.Vec3) bool {
	for _, p := range f {
		if p.Distance(pt) < 0 {
			return false
		}
	}
	return true
}

// IntersectsAABB reports whether any part of box may be inside the frustum.
// For every plane the box corner furthest along the plane normal is tested;
// if that corner is behind a plane the whole box is outside.
func (f Frustum) IntersectsAABB(box AABB) bool {
	for _, p := range f {
		v := box.Min
		if p.Normal.X() >= 0 {
			v[0] = box.Max.X()
		}
		if p.Normal.Y() >= 0 {
			v[1] = box.Max.Y()
		}
		if p.Normal.Z() >= 0 {
			v[2] = box.Max.Z()
		}
		if p.Distance(v) < 0 {
			return false
		}
	}
	return true
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Center returns the midpoint of the box.
func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Contains reports whether pt lies within the box, inclusive.
func (b AABB) Contains(pt mgl32.Vec3) bool {
	return pt.X() >= b.Min.X() && pt.X() <= b.Max.X() &&
		pt.Y() >= b.Min.Y() && pt.Y() <= b.Max.Y() &&
		pt.Z() >= b.Min.Z() && pt.Z() <= b.Max.Z()
}
