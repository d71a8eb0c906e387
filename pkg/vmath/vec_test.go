package vmath

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestFloorDiv(t *testing.T) {
	tests := []struct {
		a, b, want int
	}{
		{0, 16, 0},
		{15, 16, 0},
		{16, 16, 1},
		{-1, 16, -1},
		{-16, 16, -1},
		{-17, 16, -2},
	}
	for _, tt := range tests {
		if got := FloorDiv(tt.a, tt.b); got != tt.want {
			t.Errorf("FloorDiv(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestMod(t *testing.T) {
	tests := []struct {
		a, b, want int
	}{
		{5, 16, 5},
		{16, 16, 0},
		{-1, 16, 15},
		{-16, 16, 0},
		{-17, 16, 15},
	}
	for _, tt := range tests {
		if got := Mod(tt.a, tt.b); got != tt.want {
			t.Errorf("Mod(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestFloor(t *testing.T) {
	got := Floor(mgl32.Vec3{0.5, -0.5, -3})
	want := IVec3{0, -1, -3}
	if got != want {
		t.Errorf("Floor() = %v, want %v", got, want)
	}
}

func TestIVec3Add(t *testing.T) {
	got := IVec3{1, 2, 3}.Add(IVec3{0, -1, 4})
	if got != (IVec3{1, 1, 7}) {
		t.Errorf("IVec3.Add() = %v", got)
	}
}
