// Package vmath provides the integer grid and culling math used by the voxel world.
// Floating point vectors and matrices come from mgl32.
package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// IVec3 is an integer grid position.
type IVec3 struct {
	X, Y, Z int
}

// Add returns v + other.
func (v IVec3) Add(other IVec3) IVec3 {
	return IVec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v IVec3) Sub(other IVec3) IVec3 {
	return IVec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Vec3 converts to a float vector.
func (v IVec3) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}

// Floor returns the grid cell containing p.
func Floor(p mgl32.Vec3) IVec3 {
	return IVec3{FloorInt(p.X()), FloorInt(p.Y()), FloorInt(p.Z())}
}

// FloorInt rounds f towards negative infinity.
func FloorInt(f float32) int {
	return int(math.Floor(float64(f)))
}

// FloorDiv divides rounding towards negative infinity. b must be positive.
func FloorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// Mod returns a modulo b in [0, b). b must be positive.
func Mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// Abs returns |a|.
func Abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
