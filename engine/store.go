package engine

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
)

// ErrPoisoned is returned when a component was left mid-write by a panicking system
var ErrPoisoned = errors.New("component lock poisoned")

// cell is the shared, lock-guarded storage for one component instance
// value always holds *T for the type the cell was registered with
type cell struct {
	mu       sync.RWMutex
	typ      reflect.Type
	value    any
	poisoned atomic.Bool
}

func newCell[T any](v T) *cell {
	p := new(T)
	*p = v
	return &cell{typ: reflect.TypeFor[T](), value: p}
}

// Handle is a typed reference to a component instance
// Copying a Handle is cheap; all copies alias the same storage
type Handle[T any] struct {
	c *cell
}

// Valid reports whether the handle points at a component
func (h Handle[T]) Valid() bool {
	return h.c != nil
}

// Same reports whether both handles alias the same component instance
func (h Handle[T]) Same(other Handle[T]) bool {
	return h.c == other.c
}

// Poisoned reports whether a writer panicked while holding this component
func (h Handle[T]) Poisoned() bool {
	return h.c.poisoned.Load()
}

// ClearPoison marks the component usable again after a panicked write
func (h Handle[T]) ClearPoison() {
	h.c.poisoned.Store(false)
}

// ptr downcasts the stored value, a mismatch is an invariant violation
func (h Handle[T]) ptr() *T {
	p, ok := h.c.value.(*T)
	if !ok {
		panic(fmt.Sprintf("component type mismatch: cell holds %v, handle wants %v", h.c.typ, reflect.TypeFor[T]()))
	}
	return p
}

// Read blocks until a shared lock is held and returns the guard
// Returns ErrPoisoned (with the lock released) if a previous writer panicked
func (h Handle[T]) Read() (*ReadGuard[T], error) {
	h.c.mu.RLock()
	if h.c.poisoned.Load() {
		h.c.mu.RUnlock()
		return nil, fmt.Errorf("read %v: %w", h.c.typ, ErrPoisoned)
	}
	return &ReadGuard[T]{c: h.c, v: h.ptr()}, nil
}

// Write blocks until the exclusive lock is held and returns the guard
// Returns ErrPoisoned (with the lock released) if a previous writer panicked
func (h Handle[T]) Write() (*WriteGuard[T], error) {
	h.c.mu.Lock()
	if h.c.poisoned.Load() {
		h.c.mu.Unlock()
		return nil, fmt.Errorf("write %v: %w", h.c.typ, ErrPoisoned)
	}
	return &WriteGuard[T]{c: h.c, v: h.ptr()}, nil
}

// Peek runs fn under a shared lock, returns false if the component is poisoned
func (h Handle[T]) Peek(fn func(*T)) bool {
	g, err := h.Read()
	if err != nil {
		return false
	}
	defer g.Release()
	fn(g.v)
	return true
}

// PeekMut runs fn under the exclusive lock, returns false if the component is poisoned
func (h Handle[T]) PeekMut(fn func(*T)) bool {
	g, err := h.Write()
	if err != nil {
		return false
	}
	defer g.Release()
	fn(g.v)
	return true
}

// Snapshot returns a copy of the current value taken under a shared lock
func (h Handle[T]) Snapshot() (T, error) {
	var zero T
	g, err := h.Read()
	if err != nil {
		return zero, err
	}
	defer g.Release()
	return *g.v, nil
}

// ReadGuard holds a shared lock on one component
// The value must not be mutated through Get
type ReadGuard[T any] struct {
	c        *cell
	v        *T
	released bool
}

// Get returns the guarded value, valid until Release
func (g *ReadGuard[T]) Get() *T {
	return g.v
}

// Release unlocks the component, subsequent calls are no-ops
func (g *ReadGuard[T]) Release() {
	if g.released {
		return
	}
	g.released = true
	g.c.mu.RUnlock()
}

// Poison is a no-op for readers, shared access cannot leave partial state
func (g *ReadGuard[T]) Poison() {}

// WriteGuard holds the exclusive lock on one component
type WriteGuard[T any] struct {
	c        *cell
	v        *T
	released bool
}

// Get returns the guarded value, valid until Release
func (g *WriteGuard[T]) Get() *T {
	return g.v
}

// Release unlocks the component, subsequent calls are no-ops
func (g *WriteGuard[T]) Release() {
	if g.released {
		return
	}
	g.released = true
	g.c.mu.Unlock()
}

// Poison marks the component as left in an unknown state
// Called before Release when the holder panicked mid-write
func (g *WriteGuard[T]) Poison() {
	if !g.released {
		g.c.poisoned.Store(true)
	}
}
