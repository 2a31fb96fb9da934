// Package prefab builds the initial scene tree handed to the scheduler
package prefab

import (
	"github.com/lixenwraith/kristall/component"
	"github.com/lixenwraith/kristall/engine"
)

// Model paths resolved by the renderer
const (
	CubeModel = "model/cube.obj"
	CarModel  = "model/bugatti.obj"
)

// SinkFactory returns the transform sink for a newly built drawable
// A nil factory or nil result leaves the drawable unpublished
type SinkFactory func(name string) component.TransformSink

func (f SinkFactory) sink(name string) component.TransformSink {
	if f == nil {
		return nil
	}
	return f(name)
}

// Prefab adds a fixed shape of components and children to a builder
type Prefab interface {
	Apply(b *engine.EntityBuilder) *engine.EntityBuilder
}

// Instantiate applies p to a fresh builder
func Instantiate(p Prefab) *engine.EntityBuilder {
	return p.Apply(engine.NewEntityBuilder())
}
