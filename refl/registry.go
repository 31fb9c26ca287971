// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package refl

// Registry is an insertion-ordered set of named items.
// Adding a name that is already present is a no-op, so populating a registry
// from several overlapping sources is idempotent. The zero value is ready to use.
type Registry[T any] struct {
	index map[string]int
	items []T
}

// Add registers item under name. It returns false if the name was already
// registered, in which case the existing item is kept.
func (r *Registry[T]) Add(name string, item T) bool {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if _, ok := r.index[name]; ok {
		return false
	}
	r.index[name] = len(r.items)
	r.items = append(r.items, item)
	return true
}

// Lookup returns the item registered under name.
func (r *Registry[T]) Lookup(name string) (T, bool) {
	if i, ok := r.index[name]; ok {
		return r.items[i], true
	}
	var zero T
	return zero, false
}

// Len returns the number of registered items.
func (r *Registry[T]) Len() int {
	return len(r.items)
}

// Items returns the registered items in insertion order.
func (r *Registry[T]) Items() []T {
	return r.items
}
