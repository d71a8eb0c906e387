// Package block defines block kinds, face orientations and block material properties.
package block

import "github.com/go-gl/mathgl/mgl32"

// Block is a block kind stored by value in chunk arrays.
type Block uint8

// Block kinds.
const (
	Air Block = iota
	Stone
	Dirt
	Grass
	Water
	Sand
	Wood
	Leaves

	Count // number of kinds
)

// String returns the display name of the block.
func (b Block) String() string {
	switch b {
	case Air:
		return "Air"
	case Stone:
		return "Stone"
	case Dirt:
		return "Dirt"
	case Grass:
		return "Grass"
	case Water:
		return "Water"
	case Sand:
		return "Sand"
	case Wood:
		return "Wood"
	case Leaves:
		return "Leaves"
	default:
		return "Unknown"
	}
}

// Properties describes how a block kind is meshed and shaded.
type Properties struct {
	Transparent bool
	Solid       bool
	Color       mgl32.Vec3
	Emissive    float32
}

var properties = [Count]Properties{
	Air:    {Transparent: true},
	Stone:  {Solid: true, Color: mgl32.Vec3{0.5, 0.5, 0.5}},
	Dirt:   {Solid: true, Color: mgl32.Vec3{0.4, 0.3, 0.2}},
	Grass:  {Solid: true, Color: mgl32.Vec3{0.2, 0.6, 0.3}},
	Water:  {Transparent: true, Color: mgl32.Vec3{0.0, 0.3, 0.8}, Emissive: 0.1},
	Sand:   {Solid: true, Color: mgl32.Vec3{0.9, 0.8, 0.6}},
	Wood:   {Solid: true, Color: mgl32.Vec3{0.5, 0.35, 0.2}},
	Leaves: {Transparent: true, Solid: true, Color: mgl32.Vec3{0.2, 0.5, 0.2}},
}

// unknown is returned for values outside the enum (magenta marks it on screen).
var unknown = Properties{Solid: true, Color: mgl32.Vec3{1, 0, 1}}

// PropertiesOf returns the material properties of b.
func PropertiesOf(b Block) Properties {
	if b >= Count {
		return unknown
	}
	return properties[b]
}

// Transparent reports whether every face of b is always drawn.
func (b Block) Transparent() bool {
	return PropertiesOf(b).Transparent
}
