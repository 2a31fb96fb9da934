package system

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/kristall/component"
	"github.com/lixenwraith/kristall/engine"
	"github.com/lixenwraith/kristall/parameter"
	"github.com/lixenwraith/kristall/physics"
)

// GravityName is the scheduler task name of GravitySystem
const GravityName = "gravity"

type gravityBody struct {
	body      engine.Handle[component.RigidBody]
	transform engine.Handle[component.Transform] // invalid when the entity has none
}

type gravityEnv struct {
	engine.Frozen
	frozen []bool
	bodies []*engine.WriteGuard[component.RigidBody]
}

// GravitySystem writes the pairwise attraction of every massive body under the "gravity" force
// Positions come from RigidBody.LastAbsolutePosition, maintained by TranslateSystem
type GravitySystem struct {
	g      float32
	bodies []gravityBody
}

// NewGravitySystem creates a gravity system with constant g
func NewGravitySystem(g float32) *GravitySystem {
	return &GravitySystem{g: g}
}

// Fetch collects every entity exposing a RigidBody
func (s *GravitySystem) Fetch(src engine.EntityContainer) error {
	s.bodies = s.bodies[:0]
	for e := range src.QueryEntities(true).All() {
		rb, ok := engine.Get[component.RigidBody](e)
		if !ok {
			continue
		}
		tr, _ := engine.Get[component.Transform](e)
		s.bodies = append(s.bodies, gravityBody{body: rb, transform: tr})
	}
	if len(s.bodies) == 0 {
		return engine.ErrNoComponents
	}
	return nil
}

// Freeze reads the frozen flag of each Transform, then write-locks every RigidBody
func (s *GravitySystem) Freeze() (*gravityEnv, error) {
	env := &gravityEnv{
		frozen: make([]bool, len(s.bodies)),
		bodies: make([]*engine.WriteGuard[component.RigidBody], 0, len(s.bodies)),
	}

	// Transform ranks below RigidBody, read flags and release before taking bodies
	for i, b := range s.bodies {
		if !b.transform.Valid() {
			continue
		}
		var frozen bool
		if !b.transform.Peek(func(t *component.Transform) { frozen = t.Frozen }) {
			return nil, engine.ErrPoisoned
		}
		env.frozen[i] = frozen
	}

	for _, b := range s.bodies {
		g, err := engine.FreezeWrite(&env.Frozen, b.body)
		if err != nil {
			return nil, err
		}
		env.bodies = append(env.bodies, g)
	}
	return env, nil
}

// Run applies equal and opposite forces to every unordered pair of massive bodies
func (s *GravitySystem) Run(env *gravityEnv, _ time.Duration) {
	n := len(env.bodies)
	// Sum over all pairs, committed once so the previous tick's entry is replaced
	forces := make([]mgl32.Vec3, n)

	for i := 0; i < n; i++ {
		bi := env.bodies[i].Get()
		if bi.Mass <= 0 {
			continue
		}
		for j := i + 1; j < n; j++ {
			bj := env.bodies[j].Get()
			if bj.Mass <= 0 {
				continue
			}
			f, ok := physics.GravityForce(bi.LastAbsolutePosition, bj.LastAbsolutePosition, bi.Mass, bj.Mass, s.g)
			if !ok {
				continue
			}
			forces[i] = forces[i].Add(f)
			forces[j] = forces[j].Sub(f)
		}
	}

	for i, g := range env.bodies {
		rb := g.Get()
		if rb.Mass <= 0 {
			continue
		}
		if env.frozen[i] {
			// Drop the entry left from before the body froze
			rb.ClearForce(parameter.ForceGravity)
			continue
		}
		rb.CommitForce(parameter.ForceGravity, forces[i])
	}
}

// NewGravityTask wraps a GravitySystem for the scheduler
func NewGravityTask(g float32) engine.Task {
	return engine.NewTask[*gravityEnv](GravityName, NewGravitySystem(g))
}
