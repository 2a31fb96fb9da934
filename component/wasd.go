package component

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/kristall/engine"
	"github.com/lixenwraith/kristall/input"
	"github.com/lixenwraith/kristall/parameter"
)

// AccelerationMethod selects how a WASD controller drives its body
type AccelerationMethod uint8

const (
	// AccelerateForce commits an "input" force of the configured magnitude
	AccelerateForce AccelerationMethod = iota
	// AccelerateVelocity overwrites the body velocity directly
	AccelerateVelocity
)

// WASDController moves an entity along world axes
// W/S: -z/+z, A/D: -x/+x, Space/LShift: +y/-y
type WASDController struct {
	Forward, Back bool
	Left, Right   bool
	Up, Down      bool

	Method    AccelerationMethod
	Magnitude float32

	warned atomic.Bool
}

// NewWASDForce creates a controller committing a force of magnitude
func NewWASDForce(magnitude float32) *WASDController {
	return &WASDController{Method: AccelerateForce, Magnitude: magnitude}
}

// NewWASDVelocity creates a controller setting velocity of magnitude
func NewWASDVelocity(magnitude float32) *WASDController {
	return &WASDController{Method: AccelerateVelocity, Magnitude: magnitude}
}

// Direction returns the held axis directions, each component in {-1, 0, 1}
func (w *WASDController) Direction() mgl32.Vec3 {
	return mgl32.Vec3{
		axis(w.Left, w.Right),
		axis(w.Down, w.Up),
		axis(w.Forward, w.Back),
	}
}

func axis(neg, pos bool) float32 {
	switch {
	case neg:
		return -1
	case pos:
		return 1
	}
	return 0
}

// UpdateEntity pushes the held direction into the entity's RigidBody
func (w *WASDController) UpdateEntity(e *engine.Entity, _ time.Duration) {
	h, ok := engine.Get[RigidBody](e)
	if !ok {
		if !w.warned.Swap(true) {
			log.Printf("WARN: entity '%s' has a WASD controller but no RigidBody component", e.Name())
		}
		return
	}

	dir := w.Direction().Mul(w.Magnitude)
	h.PeekMut(func(rb *RigidBody) {
		switch w.Method {
		case AccelerateForce:
			rb.CommitForce(parameter.ForceInput, dir)
		case AccelerateVelocity:
			rb.Velocity = dir
		}
	})
}

// HandleEvent latches WASD, Space and LShift
func (w *WASDController) HandleEvent(ev input.Event) bool {
	if !ev.IsKey() {
		return false
	}
	pressed := ev.Kind == input.KeyPress

	switch {
	case ev.IsRune('w'):
		w.Forward = pressed
	case ev.IsRune('s'):
		w.Back = pressed
	case ev.IsRune('a'):
		w.Left = pressed
	case ev.IsRune('d'):
		w.Right = pressed
	case ev.Key == input.KeySpace:
		w.Up = pressed
	case ev.Key == input.KeyLShift:
		w.Down = pressed
	default:
		return false
	}
	return true
}
