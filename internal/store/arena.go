package store

import "sort"

// Arena is an id-indexed collection with a strictly monotonic allocator.
// Ids are never reused, even after Delete; List returns items in insertion
// order. All invariants around id assignment live here rather than at the
// call sites that create records.
type Arena[T any] struct {
	firstID int64
	next    int64
	items   map[int64]*T
	order   []int64
}

// NewArena returns an empty arena whose first allocated id is firstID.
func NewArena[T any](firstID int64) *Arena[T] {
	return &Arena[T]{
		firstID: firstID,
		next:    firstID,
		items:   make(map[int64]*T),
	}
}

// Add allocates the next id, builds the item with it, and indexes it.
func (a *Arena[T]) Add(build func(id int64) *T) *T {
	id := a.next
	a.next++
	item := build(id)
	a.items[id] = item
	a.order = append(a.order, id)
	return item
}

// Get returns the item for id, if present.
func (a *Arena[T]) Get(id int64) (*T, bool) {
	item, ok := a.items[id]
	return item, ok
}

// Delete removes the item for id. The allocator is untouched, so the id
// is gone for good.
func (a *Arena[T]) Delete(id int64) bool {
	if _, ok := a.items[id]; !ok {
		return false
	}
	delete(a.items, id)
	for i, oid := range a.order {
		if oid == id {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
	return true
}

// List returns the live items in insertion order.
func (a *Arena[T]) List() []*T {
	out := make([]*T, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, a.items[id])
	}
	return out
}

// Len is the number of live items.
func (a *Arena[T]) Len() int {
	return len(a.items)
}

// NextID is the id the next Add will assign.
func (a *Arena[T]) NextID() int64 {
	return a.next
}

// Restore replaces the arena contents with items (keyed by their ids,
// ordered ascending) and resumes allocation past the highest id present.
func (a *Arena[T]) Restore(items map[int64]*T) {
	a.items = make(map[int64]*T, len(items))
	a.order = a.order[:0]
	a.next = a.firstID
	for id, item := range items {
		a.items[id] = item
		a.order = append(a.order, id)
		if id >= a.next {
			a.next = id + 1
		}
	}
	sort.Slice(a.order, func(i, j int) bool { return a.order[i] < a.order[j] })
}
