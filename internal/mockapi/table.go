package mockapi

import (
	"slices"
	"sync"

	"movie-catalog/internal/data/entity"
)

// table is one in-memory collection kept in insertion order.
type table[E entity.Entity] struct {
	mu    sync.RWMutex
	items []E
}

func (t *table[E]) list() []E {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.items)
}

func (t *table[E]) get(id string) (E, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if i := t.index(id); i >= 0 {
		return t.items[i], true
	}
	var zero E
	return zero, false
}

func (t *table[E]) insert(item E) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items = append(t.items, item)
}

func (t *table[E]) replace(item E) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.index(item.EntityID())
	if i < 0 {
		return false
	}
	t.items[i] = item
	return true
}

func (t *table[E]) remove(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	before := len(t.items)
	t.items = slices.DeleteFunc(t.items, func(item E) bool { return item.EntityID() == id })
	return len(t.items) != before
}

func (t *table[E]) removeWhere(fn func(E) bool) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	before := len(t.items)
	t.items = slices.DeleteFunc(t.items, fn)
	return before - len(t.items)
}

func (t *table[E]) index(id string) int {
	return slices.IndexFunc(t.items, func(item E) bool { return item.EntityID() == id })
}
