package prefab

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/kristall/component"
	"github.com/lixenwraith/kristall/engine"
	"github.com/lixenwraith/kristall/parameter"
)

// CubeName is the entity name of every cube
const CubeName = "cube"

// Cube is a drawable unit cube, with a RigidBody when Mass is positive
type Cube struct {
	Position mgl32.Vec3
	Mass     float32
	Spin     bool
	Sinks    SinkFactory
}

func (c Cube) Apply(b *engine.EntityBuilder) *engine.EntityBuilder {
	tr := component.NewTransform().
		WithPosition(c.Position).
		WithSink(c.Sinks.sink(CubeName))

	b.WithName(CubeName)
	engine.WithComponent(b, tr)
	engine.WithComponent(b, component.NewGraphicsModel(CubeModel))

	if c.Mass > 0 {
		rb := component.NewRigidBody(c.Mass)
		rb.LastAbsolutePosition = c.Position
		if c.Spin {
			a := parameter.DefaultAngularAcceleration
			rb.AngularAcceleration = mgl32.Vec3{a, a, a}
		}
		engine.WithComponent(b, rb)
	}
	return b
}
