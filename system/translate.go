package system

import (
	"log"
	"sync"
	"time"

	"github.com/lixenwraith/kristall/component"
	"github.com/lixenwraith/kristall/engine"
	"github.com/lixenwraith/kristall/physics"
)

// TranslateName is the scheduler task name of TranslateSystem
const TranslateName = "translate"

type translateEnv struct {
	engine.Frozen
	root *engine.Entity
}

// TranslateSystem flattens the transform hierarchy into absolute poses
// Drawables receive their model matrix through their Transform sink,
// rigid bodies receive their absolute position
// Components are locked one at a time during the walk, the environment holds no guards
type TranslateSystem struct {
	root *engine.Entity

	warnMu sync.Mutex
	warned map[*engine.Entity]bool
}

func NewTranslateSystem() *TranslateSystem {
	return &TranslateSystem{warned: make(map[*engine.Entity]bool)}
}

// Fetch caches the tree root
func (s *TranslateSystem) Fetch(src engine.EntityContainer) error {
	root, ok := src.QueryEntities(true).Next()
	if !ok {
		return engine.ErrNoComponents
	}
	s.root = root
	return nil
}

func (s *TranslateSystem) Freeze() (*translateEnv, error) {
	return &translateEnv{root: s.root}, nil
}

// Run walks the tree in pre-order with a stack of ancestor offsets
func (s *TranslateSystem) Run(env *translateEnv, _ time.Duration) {
	stack := make([]physics.Pose, 0, 16)
	s.visit(env.root, stack)
}

func (s *TranslateSystem) visit(e *engine.Entity, stack []physics.Pose) {
	if !e.Enabled() {
		return
	}

	var sink component.TransformSink
	ownTransform := false
	if h, ok := engine.Get[component.Transform](e); ok {
		t, err := h.Snapshot()
		if err != nil {
			// Poisoned offset, the subtree would compose from a broken stack
			return
		}
		stack = append(stack, t.Pose())
		sink = t.Sink
		ownTransform = true
	}

	drawable := engine.Has[component.GraphicsModel](e)
	body, hasBody := engine.Get[component.RigidBody](e)

	if drawable || hasBody {
		abs := physics.Fold(stack)

		if drawable {
			if ownTransform && sink != nil {
				sink.Publish(abs.Matrix())
			} else {
				s.warnOnce(e, "drawable without own Transform or sink")
			}
		}
		if hasBody {
			body.PeekMut(func(rb *component.RigidBody) {
				rb.LastAbsolutePosition = abs.Position
			})
		}
	}

	// Each call appends at its own depth, so siblings never see each other's offsets
	for _, child := range e.Children() {
		s.visit(child, stack)
	}
}

func (s *TranslateSystem) warnOnce(e *engine.Entity, msg string) {
	s.warnMu.Lock()
	defer s.warnMu.Unlock()
	if s.warned[e] {
		return
	}
	s.warned[e] = true
	log.Printf("[%s] WARN: entity '%s': %s", TranslateName, e.Name(), msg)
}

// NewTranslateTask wraps a TranslateSystem for the scheduler
func NewTranslateTask() engine.Task {
	return engine.NewTask[*translateEnv](TranslateName, NewTranslateSystem())
}
