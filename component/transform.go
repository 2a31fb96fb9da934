package component

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/kristall/physics"
)

// TransformSink receives the absolute model matrix of a drawable entity once per tick
// Implemented by the renderer, called from the translate system goroutine
type TransformSink interface {
	Publish(model mgl32.Mat4)
}

// TransformSinkFunc adapts a function to TransformSink
type TransformSinkFunc func(model mgl32.Mat4)

func (f TransformSinkFunc) Publish(model mgl32.Mat4) { f(model) }

// Transform is an entity's offset relative to its parent
// Motion derivatives live on RigidBody; frozen bodies are excluded from gravity
type Transform struct {
	Position mgl32.Vec3
	Scale    mgl32.Vec3
	Rotation mgl32.Vec3 // axis angles in radians

	Frozen bool

	// Sink is nil for entities that are not drawn
	Sink TransformSink
}

// NewTransform returns a unit-scale transform at the origin
func NewTransform() Transform {
	return Transform{Scale: mgl32.Vec3{1, 1, 1}}
}

// FrozenTransform returns a NewTransform with Frozen set
func FrozenTransform() Transform {
	t := NewTransform()
	t.Frozen = true
	return t
}

func (t Transform) WithPosition(pos mgl32.Vec3) Transform {
	t.Position = pos
	return t
}

func (t Transform) WithScale(scale mgl32.Vec3) Transform {
	t.Scale = scale
	return t
}

func (t Transform) WithRotation(rot mgl32.Vec3) Transform {
	t.Rotation = rot
	return t
}

func (t Transform) WithSink(sink TransformSink) Transform {
	t.Sink = sink
	return t
}

// Pose extracts the spatial offset used when composing the hierarchy
func (t *Transform) Pose() physics.Pose {
	return physics.Pose{Position: t.Position, Rotation: t.Rotation, Scale: t.Scale}
}

// Matrix returns the local model matrix
func (t *Transform) Matrix() mgl32.Mat4 {
	return t.Pose().Matrix()
}
