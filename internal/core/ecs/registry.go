package ecs

import "reflect"

// Registry tracks all component stores, one per component type, and
// supports bulk cleanup on entity destroy.
type Registry struct {
	byType map[reflect.Type]Removable
	stores []Removable
}

func NewRegistry() *Registry {
	return &Registry{
		byType: make(map[reflect.Type]Removable, 16),
		stores: make([]Removable, 0, 16),
	}
}

// Register adds a component store to the registry under its component type.
func Register[T any](r *Registry, store *Store[T]) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if _, ok := r.byType[t]; ok {
		panic("ecs: store already registered for " + t.String())
	}
	r.byType[t] = store
	r.stores = append(r.stores, store)
}

// StoreOf returns the store for T, creating and registering it on first use.
func StoreOf[T any](r *Registry) *Store[T] {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if s, ok := r.byType[t]; ok {
		return s.(*Store[T])
	}
	s := NewStore[T]()
	Register(r, s)
	return s
}

// RemoveAll clears the given entity from every registered component store.
func (r *Registry) RemoveAll(id EntityID) {
	for _, s := range r.stores {
		s.Remove(id)
	}
}
