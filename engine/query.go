package engine

import "iter"

// IterOptions configures an EntityIterator
type IterOptions struct {
	// IncludeParent yields the starting node before its subtree
	IncludeParent bool
	// FilterName restricts yields to entities whose name equals Name
	FilterName bool
	Name       string
	// DirectOnly stops descent at depth 1
	DirectOnly bool
}

type iterFrame struct {
	children []*Entity
	next     int
}

// EntityIterator walks an entity subtree depth-first in pre-order
// Each node's child list is snapshotted when traversal reaches it, so mutations above
// the current point are visible and mutations behind it are not
// The iterator is single-use
type EntityIterator struct {
	root    *Entity
	opts    IterOptions
	started bool
	stack   []iterFrame
}

// NewEntityIterator creates a lazy iterator over root's subtree
func NewEntityIterator(root *Entity, opts IterOptions) *EntityIterator {
	return &EntityIterator{
		root: root,
		opts: opts,
	}
}

func (it *EntityIterator) match(e *Entity) bool {
	return !it.opts.FilterName || e.Name() == it.opts.Name
}

// Next returns the next entity, false when exhausted
func (it *EntityIterator) Next() (*Entity, bool) {
	if !it.started {
		it.started = true
		it.stack = append(it.stack, iterFrame{children: it.root.Children()})
		if it.opts.IncludeParent && it.match(it.root) {
			return it.root, true
		}
	}

	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		if top.next >= len(top.children) {
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}
		e := top.children[top.next]
		top.next++

		if !it.opts.DirectOnly {
			it.stack = append(it.stack, iterFrame{children: e.Children()})
		}
		if it.match(e) {
			return e, true
		}
	}
	return nil, false
}

// All adapts the remaining iteration to a range-over-func sequence
func (it *EntityIterator) All() iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for {
			e, ok := it.Next()
			if !ok || !yield(e) {
				return
			}
		}
	}
}

// Collect drains the iterator into a slice
func (it *EntityIterator) Collect() []*Entity {
	var out []*Entity
	for e := range it.All() {
		out = append(out, e)
	}
	return out
}

// Components yields a handle for every entity in the container exposing C
func Components[C any](src EntityContainer, includeParent bool) iter.Seq[Handle[C]] {
	return func(yield func(Handle[C]) bool) {
		for e := range src.QueryEntities(includeParent).All() {
			if h, ok := Get[C](e); ok {
				if !yield(h) {
					return
				}
			}
		}
	}
}

// FilteredComponents yields handles of C whose current value satisfies pred
// pred runs under a shared lock; poisoned components are skipped
func FilteredComponents[C any](src EntityContainer, pred func(*C) bool, includeParent bool) iter.Seq[Handle[C]] {
	return func(yield func(Handle[C]) bool) {
		for h := range Components[C](src, includeParent) {
			var keep bool
			if !h.Peek(func(c *C) { keep = pred(c) }) || !keep {
				continue
			}
			if !yield(h) {
				return
			}
		}
	}
}
