package prefab

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/kristall/component"
	"github.com/lixenwraith/kristall/engine"
	"github.com/lixenwraith/kristall/parameter"
)

// PlayerName is the entity name of the player group
const PlayerName = "player"

// Player is a controllable upper cube stacked on a massless lower cube
type Player struct {
	Force float32
	Sinks SinkFactory
}

func (p Player) Apply(b *engine.EntityBuilder) *engine.EntityBuilder {
	force := p.Force
	if force == 0 {
		force = parameter.ControllerForce
	}

	upper := Instantiate(Cube{Position: mgl32.Vec3{0, 3, 0}, Mass: 5, Sinks: p.Sinks})
	engine.WithComponent(upper, component.NewController(component.NewWASDForce(force)))

	lower := Instantiate(Cube{Sinks: p.Sinks})

	return b.WithName(PlayerName).WithChildren(upper, lower)
}

// PlayerBody returns the Transform of the controlled cube under a built player
func PlayerBody(player *engine.Entity) (engine.Handle[component.Transform], bool) {
	for e := range player.QueryEntities(false).All() {
		if engine.Has[component.Controller](e) {
			return engine.Get[component.Transform](e)
		}
	}
	return engine.Handle[component.Transform]{}, false
}
