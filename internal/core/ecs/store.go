package ecs

import "fmt"

// Removable is implemented by all component stores so the Registry can
// bulk-remove an entity's data from every store on destroy.
type Removable interface {
	Remove(id EntityID)
	Has(id EntityID) bool
}

// Store is a sparse set holding at most one component of type T per entity.
// Entities and component pointers are packed densely for iteration; sparse
// maps an entity to its dense slot. Component pointers stay valid until the
// component is removed.
type Store[T any] struct {
	sparse   map[EntityID]int
	entities []EntityID
	data     []*T
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		sparse:   make(map[EntityID]int, 64),
		entities: make([]EntityID, 0, 64),
		data:     make([]*T, 0, 64),
	}
}

// Add attaches c to id and returns the stored copy.
// Attaching a second component of the same type is a programming error.
func (s *Store[T]) Add(id EntityID, c T) *T {
	if _, ok := s.sparse[id]; ok {
		var zero T
		panic(fmt.Sprintf("ecs: entity %d already has component %T", id, zero))
	}
	p := new(T)
	*p = c
	s.sparse[id] = len(s.data)
	s.entities = append(s.entities, id)
	s.data = append(s.data, p)
	return p
}

func (s *Store[T]) Get(id EntityID) (*T, bool) {
	i, ok := s.sparse[id]
	if !ok {
		return nil, false
	}
	return s.data[i], true
}

func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.sparse[id]
	return ok
}

// Remove deletes id's component and shifts later slots down, so dense
// order stays insertion order.
func (s *Store[T]) Remove(id EntityID) {
	i, ok := s.sparse[id]
	if !ok {
		return
	}
	copy(s.entities[i:], s.entities[i+1:])
	copy(s.data[i:], s.data[i+1:])
	last := len(s.data) - 1
	s.entities[last] = NullEntity
	s.data[last] = nil
	s.entities = s.entities[:last]
	s.data = s.data[:last]
	delete(s.sparse, id)
	for j := i; j < last; j++ {
		s.sparse[s.entities[j]] = j
	}
}

func (s *Store[T]) Len() int {
	return len(s.data)
}

// Each visits components in dense order. fn must not add or remove
// components of this type; use Entities for a mutation-safe snapshot.
func (s *Store[T]) Each(fn func(EntityID, *T)) {
	for i, id := range s.entities {
		fn(id, s.data[i])
	}
}

// Entities returns a copy of the entity list in dense order.
func (s *Store[T]) Entities() []EntityID {
	out := make([]EntityID, len(s.entities))
	copy(out, s.entities)
	return out
}
