package engine

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNoComponents is returned by Fetch when the graph holds nothing the system can work on
	ErrNoComponents = errors.New("no matching components")
	// ErrMissingComponent marks an entity lacking a sibling component a caller expected
	ErrMissingComponent = errors.New("missing expected component")
)

// FetchError wraps a recoverable discovery failure, retried after backoff
type FetchError struct {
	System string
	Err    error
}

func (e *FetchError) Error() string { return fmt.Sprintf("%s: fetch: %v", e.System, e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

// FreezeError wraps a lock acquisition failure, the tick is skipped
type FreezeError struct {
	System string
	Err    error
}

func (e *FreezeError) Error() string { return fmt.Sprintf("%s: freeze: %v", e.System, e.Err) }
func (e *FreezeError) Unwrap() error { return e.Err }

// RunPanicError reports a panic recovered from Run
type RunPanicError struct {
	System string
	Value  any
}

func (e *RunPanicError) Error() string { return fmt.Sprintf("%s: run panicked: %v", e.System, e.Value) }

// Environment is the per-tick set of guards a system runs against
// Release unlocks everything; Poison flags write-held components before Release after a panic
type Environment interface {
	Release()
	Poison()
}

// System follows the fetch → freeze → run lifecycle
// Fetch caches handles once, Freeze locks them per tick, Run computes on the frozen set
type System[E Environment] interface {
	Fetch(src EntityContainer) error
	Freeze() (E, error)
	Run(env E, dt time.Duration)
}

type guard interface {
	Release()
	Poison()
}

// Frozen collects guards acquired during Freeze
// Embed it in a system's environment type to satisfy Environment
type Frozen struct {
	guards []guard
}

// Release unlocks guards in reverse acquisition order
func (f *Frozen) Release() {
	for i := len(f.guards) - 1; i >= 0; i-- {
		f.guards[i].Release()
	}
	f.guards = f.guards[:0]
}

// Poison marks every write-held component as poisoned
func (f *Frozen) Poison() {
	for _, g := range f.guards {
		g.Poison()
	}
}

// Held returns the number of guards currently held
func (f *Frozen) Held() int {
	return len(f.guards)
}

// FreezeRead acquires a shared guard on h and records it in f
// On error every guard already in f is released
func FreezeRead[T any](f *Frozen, h Handle[T]) (*ReadGuard[T], error) {
	g, err := h.Read()
	if err != nil {
		f.Release()
		return nil, err
	}
	f.guards = append(f.guards, g)
	return g, nil
}

// FreezeWrite acquires an exclusive guard on h and records it in f
// On error every guard already in f is released
func FreezeWrite[T any](f *Frozen, h Handle[T]) (*WriteGuard[T], error) {
	g, err := h.Write()
	if err != nil {
		f.Release()
		return nil, err
	}
	f.guards = append(f.guards, g)
	return g, nil
}

// Task is a type-erased system the Scheduler can drive
type Task interface {
	Name() string
	// Fetch runs discovery, converting panics to errors
	Fetch(src EntityContainer) error
	// Tick runs one freeze → run → release cycle
	Tick(dt time.Duration) error
}

type systemTask[E Environment] struct {
	name string
	sys  System[E]
}

// NewTask wraps a typed system for scheduling
// E is passed explicitly since it cannot be inferred from the method set of sys
func NewTask[E Environment](name string, sys System[E]) Task {
	return &systemTask[E]{name: name, sys: sys}
}

func (t *systemTask[E]) Name() string { return t.name }

func (t *systemTask[E]) Fetch(src EntityContainer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &FetchError{System: t.name, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	if ferr := t.sys.Fetch(src); ferr != nil {
		return &FetchError{System: t.name, Err: ferr}
	}
	return nil
}

func (t *systemTask[E]) Tick(dt time.Duration) (err error) {
	env, ferr := t.sys.Freeze()
	if ferr != nil {
		return &FreezeError{System: t.name, Err: ferr}
	}

	defer func() {
		if r := recover(); r != nil {
			env.Poison()
			err = &RunPanicError{System: t.name, Value: r}
		}
		env.Release()
	}()

	t.sys.Run(env, dt)
	return nil
}
