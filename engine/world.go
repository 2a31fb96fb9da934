package engine

// World owns the scene root built by a prefab collaborator
// It is read-mostly and shared by every system goroutine
type World struct {
	root *Entity
}

// NewWorld wraps a built root entity
func NewWorld(root *Entity) *World {
	return &World{root: root}
}

// Root returns the scene root
func (w *World) Root() *Entity {
	return w.root
}

// QueryEntities iterates the whole scene in pre-order
func (w *World) QueryEntities(includeParent bool) *EntityIterator {
	return w.root.QueryEntities(includeParent)
}

// QueryEntityByName iterates entities whose name equals name
func (w *World) QueryEntityByName(name string, includeParent bool) *EntityIterator {
	return w.root.QueryEntityByName(name, includeParent)
}

// SpawnEntity attaches child directly under the root
func (w *World) SpawnEntity(child *Entity) {
	w.root.SpawnEntity(child)
}
