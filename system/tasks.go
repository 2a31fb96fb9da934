package system

import (
	"github.com/lixenwraith/kristall/engine"
	"github.com/lixenwraith/kristall/status"
)

// Physics returns the gravity, integrate and translate tasks
func Physics(g float32) []engine.Task {
	return []engine.Task{
		NewGravityTask(g),
		NewIntegrateTask(),
		NewTranslateTask(),
	}
}

// Register adds every engine system to s and returns the input system for event dispatch
func Register(s *engine.Scheduler, g float32) *InputSystem {
	in := NewInputSystem(s.Status())
	s.Add(Physics(g)...)
	s.Add(NewInputTask(in))
	return in
}

// InputMetrics returns the dispatch counters in reg
func InputMetrics(reg *status.Registry) (dispatched, consumed int64) {
	return reg.Ints.Get("input.dispatched").Load(), reg.Ints.Get("input.consumed").Load()
}
