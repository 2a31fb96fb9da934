package engine

import "reflect"

// EntityBuilder accumulates name, children and components before sealing them into an Entity
// Components cannot be attached once Build has run
//
// Example usage:
//
//	e := WithComponent(
//	    NewEntityBuilder().WithName("cube"),
//	    component.NewTransform(),
//	).Build()
type EntityBuilder struct {
	name       string
	children   []*Entity
	components map[reflect.Type]*cell
	built      bool
}

// NewEntityBuilder creates an empty builder named DefaultEntityName
func NewEntityBuilder() *EntityBuilder {
	return &EntityBuilder{
		name:       DefaultEntityName,
		components: make(map[reflect.Type]*cell),
	}
}

// FromEntity reopens an existing entity into a builder
// Component handles and children are shared with the source entity
func FromEntity(e *Entity) *EntityBuilder {
	b := NewEntityBuilder()
	b.name = e.Name()
	b.children = e.Children()
	for t, c := range e.components {
		b.components[t] = c
	}
	return b
}

func (b *EntityBuilder) mustOpen() {
	if b.built {
		panic("entity already built - cannot modify builder after Build()")
	}
}

// WithName sets the entity name
func (b *EntityBuilder) WithName(name string) *EntityBuilder {
	b.mustOpen()
	b.name = name
	return b
}

// WithChild builds child and appends it
func (b *EntityBuilder) WithChild(child *EntityBuilder) *EntityBuilder {
	b.mustOpen()
	b.children = append(b.children, child.Build())
	return b
}

// WithChildEntity appends an already built entity
func (b *EntityBuilder) WithChildEntity(child *Entity) *EntityBuilder {
	b.mustOpen()
	b.children = append(b.children, child)
	return b
}

// WithChildren builds and appends every child in order
func (b *EntityBuilder) WithChildren(children ...*EntityBuilder) *EntityBuilder {
	b.mustOpen()
	for _, c := range children {
		b.children = append(b.children, c.Build())
	}
	return b
}

// WithComponent stores component under its type, replacing a previous value of the same type
func WithComponent[C any](b *EntityBuilder, component C) *EntityBuilder {
	b.mustOpen()
	b.components[reflect.TypeFor[C]()] = newCell(component)
	return b
}

// Build seals the builder into an Entity
// Calling Build twice panics
func (b *EntityBuilder) Build() *Entity {
	b.mustOpen()
	b.built = true

	e := newEntity(b.name)
	e.children = b.children
	e.components = b.components
	return e
}
