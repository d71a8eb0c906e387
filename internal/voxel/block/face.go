package block

import "github.com/Faultbox/voxelworld/pkg/vmath"

// Face is one of the six axis-aligned orientations of a block face.
type Face uint8

// Faces. The first four are the horizontal directions a chunk can have
// neighbours in, so they double as neighbour indices.
const (
	Right Face = iota // +X
	Left              // -X
	Front             // +Z
	Back              // -Z
	Up                // +Y
	Down              // -Y

	FaceCount
)

// Faces lists every face in declaration order.
var Faces = [FaceCount]Face{Right, Left, Front, Back, Up, Down}

// Horizontal lists the faces that cross chunk edges.
var Horizontal = [4]Face{Right, Left, Front, Back}

var faceNames = [FaceCount]string{"Right", "Left", "Front", "Back", "Up", "Down"}

func (f Face) String() string {
	if f >= FaceCount {
		return "Unknown"
	}
	return faceNames[f]
}

var faceNormals = [FaceCount]vmath.IVec3{
	Right: {X: 1},
	Left:  {X: -1},
	Front: {Z: 1},
	Back:  {Z: -1},
	Up:    {Y: 1},
	Down:  {Y: -1},
}

// Normal returns the outward unit normal of the face.
func (f Face) Normal() vmath.IVec3 {
	return faceNormals[f]
}

// Opposite returns the face pointing the other way.
func (f Face) Opposite() Face {
	switch f {
	case Right:
		return Left
	case Left:
		return Right
	case Front:
		return Back
	case Back:
		return Front
	case Up:
		return Down
	default:
		return Up
	}
}

// FaceFromNormal maps an outward axis normal back to its face.
// ok is false if n is not a unit axis vector.
func FaceFromNormal(n vmath.IVec3) (f Face, ok bool) {
	for i, fn := range faceNormals {
		if fn == n {
			return Face(i), true
		}
	}
	return 0, false
}

// FaceKey identifies a face bucket: every visible face of one block kind
// facing one direction. It is comparable and used directly as a map key.
type FaceKey struct {
	Block Block
	Face  Face
}
