package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Pose is the spatial part of a Transform: offset, axis-angle rotation and scale
type Pose struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

// IdentityPose has zero offset, zero rotation and unit scale
func IdentityPose() Pose {
	return Pose{Scale: mgl32.Vec3{1, 1, 1}}
}

// Fold composes a stack of ancestor offsets into one absolute pose
// Position and rotation accumulate additively, scale multiplies component-wise
func Fold(stack []Pose) Pose {
	out := IdentityPose()
	for _, p := range stack {
		out.Position = out.Position.Add(p.Position)
		out.Rotation = out.Rotation.Add(p.Rotation)
		out.Scale = mgl32.Vec3{
			out.Scale[0] * p.Scale[0],
			out.Scale[1] * p.Scale[1],
			out.Scale[2] * p.Scale[2],
		}
	}
	return out
}

// Matrix returns the column-major model matrix T * Rx * Ry * Rz * S
// Rotation angles are reduced modulo a full turn before use
func (p Pose) Matrix() mgl32.Mat4 {
	rx := wrapAngle(p.Rotation[0])
	ry := wrapAngle(p.Rotation[1])
	rz := wrapAngle(p.Rotation[2])

	m := mgl32.Translate3D(p.Position[0], p.Position[1], p.Position[2])
	m = m.Mul4(mgl32.HomogRotate3DX(rx))
	m = m.Mul4(mgl32.HomogRotate3DY(ry))
	m = m.Mul4(mgl32.HomogRotate3DZ(rz))
	return m.Mul4(mgl32.Scale3D(p.Scale[0], p.Scale[1], p.Scale[2]))
}

func wrapAngle(a float32) float32 {
	return float32(math.Mod(float64(a), 2*math.Pi))
}
