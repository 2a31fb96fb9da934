package system

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/kristall/component"
	"github.com/lixenwraith/kristall/engine"
	"github.com/lixenwraith/kristall/input"
	"github.com/lixenwraith/kristall/status"
)

// InputName is the scheduler task name of InputSystem
const InputName = "input"

type controlled struct {
	controller engine.Handle[component.Controller]
	entity     *engine.Entity
}

type inputEnv struct {
	engine.Frozen
	controllers []*engine.ReadGuard[component.Controller]
	entities    []*engine.Entity
	cameras     []*engine.WriteGuard[component.Camera]
}

// InputSystem runs entity controllers and cameras each tick
// Device events arrive out of band through Dispatch
type InputSystem struct {
	mu         sync.RWMutex
	controlled []controlled
	cameras    []engine.Handle[component.Camera]

	dispatched *atomic.Int64
	consumed   *atomic.Int64
}

// NewInputSystem creates an input system reporting dispatch counts into reg
// A nil registry gets a private one
func NewInputSystem(reg *status.Registry) *InputSystem {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &InputSystem{
		dispatched: reg.Ints.Get("input.dispatched"),
		consumed:   reg.Ints.Get("input.consumed"),
	}
}

// Fetch pairs every Controller with its entity and collects every Camera
func (s *InputSystem) Fetch(src engine.EntityContainer) error {
	var ctl []controlled
	var cams []engine.Handle[component.Camera]
	for e := range src.QueryEntities(true).All() {
		if h, ok := engine.Get[component.Controller](e); ok {
			ctl = append(ctl, controlled{controller: h, entity: e})
		}
		if h, ok := engine.Get[component.Camera](e); ok {
			cams = append(cams, h)
		}
	}
	if len(ctl) == 0 && len(cams) == 0 {
		return engine.ErrNoComponents
	}

	s.mu.Lock()
	s.controlled = ctl
	s.cameras = cams
	s.mu.Unlock()
	return nil
}

// Freeze read-locks every Controller, then write-locks every Camera
func (s *InputSystem) Freeze() (*inputEnv, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	env := &inputEnv{}
	for _, c := range s.controlled {
		g, err := engine.FreezeRead(&env.Frozen, c.controller)
		if err != nil {
			return nil, err
		}
		env.controllers = append(env.controllers, g)
		env.entities = append(env.entities, c.entity)
	}
	for _, h := range s.cameras {
		g, err := engine.FreezeWrite(&env.Frozen, h)
		if err != nil {
			return nil, err
		}
		env.cameras = append(env.cameras, g)
	}
	return env, nil
}

// Run lets each controller push buffered input into its entity, then updates cameras
func (s *InputSystem) Run(env *inputEnv, dt time.Duration) {
	for i, g := range env.controllers {
		g.Get().UpdateEntity(env.entities[i], dt)
	}
	for _, g := range env.cameras {
		g.Get().Update(dt)
	}
}

// Dispatch delivers ev to controllers, then cameras, stopping at the first consumer
// Returns whether any component consumed the event
// Resize and focus events are never consumed, so every receiver observes them
func (s *InputSystem) Dispatch(ev input.Event) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.dispatched.Add(1)

	for _, c := range s.controlled {
		var consumed bool
		c.controller.PeekMut(func(ctl *component.Controller) {
			consumed = ctl.HandleEvent(ev)
		})
		if consumed {
			s.consumed.Add(1)
			return true
		}
	}
	for _, h := range s.cameras {
		var consumed bool
		h.PeekMut(func(cam *component.Camera) {
			consumed = cam.HandleEvent(ev)
		})
		if consumed {
			s.consumed.Add(1)
			return true
		}
	}
	return false
}

// NewInputTask wraps sys for the scheduler
// The caller keeps sys to call Dispatch from its event loop
func NewInputTask(sys *InputSystem) engine.Task {
	return engine.NewTask[*inputEnv](InputName, sys)
}
