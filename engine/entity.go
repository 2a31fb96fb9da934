package engine

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// DefaultEntityName is assigned to entities built without WithName
const DefaultEntityName = "Unnamed"

// Entity is a node in the scene tree
// The component set is fixed at Build time; name, flags and children are shared mutable state
type Entity struct {
	nameMu sync.Mutex
	name   string

	enabled     atomic.Bool
	invalidated atomic.Bool

	childMu  sync.Mutex
	children []*Entity

	// Immutable after Build
	components map[reflect.Type]*cell
}

func newEntity(name string) *Entity {
	e := &Entity{
		name:       name,
		components: make(map[reflect.Type]*cell),
	}
	e.enabled.Store(true)
	return e
}

// Name returns the current entity name
func (e *Entity) Name() string {
	e.nameMu.Lock()
	defer e.nameMu.Unlock()
	return e.name
}

// SetName renames the entity
func (e *Entity) SetName(name string) {
	e.nameMu.Lock()
	e.name = name
	e.nameMu.Unlock()
}

func (e *Entity) Enabled() bool         { return e.enabled.Load() }
func (e *Entity) SetEnabled(v bool)     { e.enabled.Store(v) }
func (e *Entity) Invalidated() bool     { return e.invalidated.Load() }
func (e *Entity) SetInvalidated(v bool) { e.invalidated.Store(v) }

// Children returns a snapshot of the direct children
func (e *Entity) Children() []*Entity {
	e.childMu.Lock()
	defer e.childMu.Unlock()
	out := make([]*Entity, len(e.children))
	copy(out, e.children)
	return out
}

// ChildCount returns the number of direct children
func (e *Entity) ChildCount() int {
	e.childMu.Lock()
	defer e.childMu.Unlock()
	return len(e.children)
}

// SpawnEntity appends child to the direct children
// Intended for world construction; iterators already past this node do not see it
func (e *Entity) SpawnEntity(child *Entity) {
	e.childMu.Lock()
	e.children = append(e.children, child)
	e.childMu.Unlock()
}

// ComponentTypes lists the registered component types sorted by name
func (e *Entity) ComponentTypes() []reflect.Type {
	out := make([]reflect.Type, 0, len(e.components))
	for t := range e.components {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

func (e *Entity) String() string {
	names := make([]string, 0, len(e.components))
	for _, t := range e.ComponentTypes() {
		names = append(names, t.String())
	}
	return fmt.Sprintf("Entity '%s' (%d children) (components: %s)", e.Name(), e.ChildCount(), strings.Join(names, ", "))
}

// QueryEntities iterates the subtree rooted at e in pre-order
func (e *Entity) QueryEntities(includeParent bool) *EntityIterator {
	return NewEntityIterator(e, IterOptions{IncludeParent: includeParent})
}

// QueryEntityByName iterates the subtree rooted at e yielding only exact name matches
func (e *Entity) QueryEntityByName(name string, includeParent bool) *EntityIterator {
	return NewEntityIterator(e, IterOptions{IncludeParent: includeParent, Name: name, FilterName: true})
}

// EntityContainer is anything that exposes a traversable entity graph
type EntityContainer interface {
	QueryEntities(includeParent bool) *EntityIterator
	QueryEntityByName(name string, includeParent bool) *EntityIterator
	SpawnEntity(child *Entity)
}

// Get returns a handle to component C on e
func Get[C any](e *Entity) (Handle[C], bool) {
	c, ok := e.components[reflect.TypeFor[C]()]
	if !ok {
		return Handle[C]{}, false
	}
	return Handle[C]{c: c}, true
}

// MustGet returns a handle to component C on e, panics if absent
func MustGet[C any](e *Entity) Handle[C] {
	h, ok := Get[C](e)
	if !ok {
		panic(fmt.Sprintf("entity '%s' has no %v component", e.Name(), reflect.TypeFor[C]()))
	}
	return h
}

// Has reports whether e carries component C
func Has[C any](e *Entity) bool {
	_, ok := e.components[reflect.TypeFor[C]()]
	return ok
}
