package component

import (
	"time"

	"github.com/lixenwraith/kristall/engine"
	"github.com/lixenwraith/kristall/input"
)

// EntityController turns buffered input into physics changes on its entity
// UpdateEntity runs each input tick under a shared Controller lock
// HandleEvent runs out of band under the exclusive Controller lock
type EntityController interface {
	UpdateEntity(e *engine.Entity, dt time.Duration)
	HandleEvent(ev input.Event) bool
}

// Controller attaches an EntityController to an entity
type Controller struct {
	Input EntityController
}

func NewController(c EntityController) Controller {
	return Controller{Input: c}
}

// UpdateEntity forwards to the attached controller, no-op when none is set
func (c *Controller) UpdateEntity(e *engine.Entity, dt time.Duration) {
	if c.Input != nil {
		c.Input.UpdateEntity(e, dt)
	}
}

// HandleEvent reports whether the attached controller consumed ev
func (c *Controller) HandleEvent(ev input.Event) bool {
	return c.Input != nil && c.Input.HandleEvent(ev)
}
