package prefab

import (
	"github.com/lixenwraith/kristall/component"
	"github.com/lixenwraith/kristall/engine"
)

// CarName is the entity name of the car
const CarName = "bugatti"

// Car is a single drawable body at the origin
type Car struct {
	Sinks SinkFactory
}

func (c Car) Apply(b *engine.EntityBuilder) *engine.EntityBuilder {
	b.WithName(CarName)
	engine.WithComponent(b, component.NewTransform().WithSink(c.Sinks.sink(CarName)))
	engine.WithComponent(b, component.NewRigidBody(10))
	return engine.WithComponent(b, component.NewGraphicsModel(CarModel))
}
