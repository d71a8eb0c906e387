// Package camera provides a free-flying first person camera.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/voxelworld/internal/engine/picking"
	"github.com/Faultbox/voxelworld/pkg/vmath"
)

// FlyCamera looks along yaw/pitch from its position.
type FlyCamera struct {
	Pos mgl32.Vec3

	// Orientation in degrees. Yaw -90 looks along -Z.
	Yaw   float32
	Pitch float32

	// Projection
	FOVDegrees float32
	Aspect     float32
	Near       float32
	Far        float32

	// Constraints
	MinPitch float32
	MaxPitch float32
	MinFOV   float32
	MaxFOV   float32

	// Sensitivity
	MoveSpeed        float32
	MouseSensitivity float32
	ZoomSensitivity  float32
}

// NewFlyCamera creates a camera at pos with default settings.
func NewFlyCamera(pos mgl32.Vec3) *FlyCamera {
	return &FlyCamera{
		Pos:              pos,
		Yaw:              -90,
		Pitch:            0,
		FOVDegrees:       70,
		Aspect:           16.0 / 9.0,
		Near:             0.1,
		Far:              500,
		MinPitch:         -89,
		MaxPitch:         89,
		MinFOV:           10,
		MaxFOV:           120,
		MoveSpeed:        10,
		MouseSensitivity: 0.1,
		ZoomSensitivity:  2,
	}
}

// Position returns the camera position in world space.
func (c *FlyCamera) Position() mgl32.Vec3 { return c.Pos }

// FOV returns the vertical field of view in degrees.
func (c *FlyCamera) FOV() float32 { return c.FOVDegrees }

// Front returns the unit view direction.
func (c *FlyCamera) Front() mgl32.Vec3 {
	yaw := float64(mgl32.DegToRad(c.Yaw))
	pitch := float64(mgl32.DegToRad(c.Pitch))
	return mgl32.Vec3{
		float32(gomath.Cos(yaw) * gomath.Cos(pitch)),
		float32(gomath.Sin(pitch)),
		float32(gomath.Sin(yaw) * gomath.Cos(pitch)),
	}.Normalize()
}

// Right returns the unit vector to the right of the view direction, in the
// horizontal plane.
func (c *FlyCamera) Right() mgl32.Vec3 {
	return c.Front().Cross(mgl32.Vec3{0, 1, 0}).Normalize()
}

// ViewMatrix returns the view matrix for this camera.
func (c *FlyCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Pos, c.Pos.Add(c.Front()), mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns the perspective projection.
func (c *FlyCamera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOVDegrees), c.Aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *FlyCamera) ViewProjection() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

// Frustum returns the culling planes of the current view.
func (c *FlyCamera) Frustum() vmath.Frustum {
	return vmath.FrustumFromMatrix(c.ViewProjection())
}

// ViewRay returns the ray through the centre of the view.
func (c *FlyCamera) ViewRay() picking.Ray {
	return picking.NewRay(c.Pos, c.Front())
}

// ScreenRay returns the ray through pixel (x, y) of a w x h viewport.
func (c *FlyCamera) ScreenRay(x, y, w, h float32) picking.Ray {
	return picking.ScreenToRay(x, y, w, h, c.ViewProjection().Inv())
}

// HandleMouse turns the camera by a mouse delta in pixels.
func (c *FlyCamera) HandleMouse(deltaX, deltaY float32) {
	c.Yaw += deltaX * c.MouseSensitivity
	c.Pitch -= deltaY * c.MouseSensitivity
	c.Pitch = mgl32.Clamp(c.Pitch, c.MinPitch, c.MaxPitch)
}

// HandleZoom narrows or widens the field of view by a scroll delta.
func (c *FlyCamera) HandleZoom(delta float32) {
	c.FOVDegrees = mgl32.Clamp(c.FOVDegrees-delta*c.ZoomSensitivity, c.MinFOV, c.MaxFOV)
}

// HandleMovement moves the camera for dt seconds. forward and right follow
// the view direction; up is world up.
func (c *FlyCamera) HandleMovement(forward, right, up, dt float32) {
	step := c.MoveSpeed * dt
	move := c.Front().Mul(forward).
		Add(c.Right().Mul(right)).
		Add(mgl32.Vec3{0, up, 0})
	c.Pos = c.Pos.Add(move.Mul(step))
}

// LookAt turns the camera towards target.
func (c *FlyCamera) LookAt(target mgl32.Vec3) {
	d := target.Sub(c.Pos)
	if d.Len() == 0 {
		return
	}
	d = d.Normalize()
	c.Pitch = mgl32.Clamp(mgl32.RadToDeg(float32(gomath.Asin(float64(d.Y())))), c.MinPitch, c.MaxPitch)
	c.Yaw = mgl32.RadToDeg(float32(gomath.Atan2(float64(d.Z()), float64(d.X()))))
}
