package system

import (
	"time"

	"github.com/lixenwraith/kristall/component"
	"github.com/lixenwraith/kristall/engine"
	"github.com/lixenwraith/kristall/physics"
)

// IntegrateName is the scheduler task name of IntegrateSystem
const IntegrateName = "integrate"

type integratePair struct {
	transform engine.Handle[component.Transform]
	body      engine.Handle[component.RigidBody]
}

type integrateEnv struct {
	engine.Frozen
	transforms []*engine.WriteGuard[component.Transform]
	bodies     []*engine.WriteGuard[component.RigidBody]
}

// IntegrateSystem advances position and rotation of every movable body
type IntegrateSystem struct {
	pairs []integratePair
}

func NewIntegrateSystem() *IntegrateSystem {
	return &IntegrateSystem{}
}

// Fetch collects entities exposing both Transform and RigidBody
func (s *IntegrateSystem) Fetch(src engine.EntityContainer) error {
	s.pairs = s.pairs[:0]
	for e := range src.QueryEntities(true).All() {
		tr, ok := engine.Get[component.Transform](e)
		if !ok {
			continue
		}
		rb, ok := engine.Get[component.RigidBody](e)
		if !ok {
			continue
		}
		s.pairs = append(s.pairs, integratePair{transform: tr, body: rb})
	}
	if len(s.pairs) == 0 {
		return engine.ErrNoComponents
	}
	return nil
}

// Freeze write-locks every Transform, then every RigidBody
func (s *IntegrateSystem) Freeze() (*integrateEnv, error) {
	env := &integrateEnv{
		transforms: make([]*engine.WriteGuard[component.Transform], 0, len(s.pairs)),
		bodies:     make([]*engine.WriteGuard[component.RigidBody], 0, len(s.pairs)),
	}
	for _, p := range s.pairs {
		g, err := engine.FreezeWrite(&env.Frozen, p.transform)
		if err != nil {
			return nil, err
		}
		env.transforms = append(env.transforms, g)
	}
	for _, p := range s.pairs {
		g, err := engine.FreezeWrite(&env.Frozen, p.body)
		if err != nil {
			return nil, err
		}
		env.bodies = append(env.bodies, g)
	}
	return env, nil
}

// Run steps every movable body
// Position moves by the current velocity, velocity by the current acceleration,
// then acceleration is recomputed from the net force for the next tick
func (s *IntegrateSystem) Run(env *integrateEnv, dt time.Duration) {
	step := float32(dt.Seconds())

	for i, tg := range env.transforms {
		tr := tg.Get()
		rb := env.bodies[i].Get()
		if !rb.Movable {
			continue
		}

		tr.Position, rb.Velocity = physics.Advance(tr.Position, rb.Velocity, rb.Acceleration, step)
		rb.Acceleration = physics.Acceleration(rb.NetForce(), rb.Mass)

		tr.Rotation, rb.AngularVelocity = physics.Advance(tr.Rotation, rb.AngularVelocity, rb.AngularAcceleration, step)
	}
}

// NewIntegrateTask wraps an IntegrateSystem for the scheduler
func NewIntegrateTask() engine.Task {
	return engine.NewTask[*integrateEnv](IntegrateName, NewIntegrateSystem())
}
