package ecs

import "fmt"

// World is the top-level ECS container. It owns the entity pool, the component
// registry, and a deferred destruction queue drained at the end of each frame.
type World struct {
	pool         *EntityPool
	registry     *Registry
	destroyQueue []EntityID
	queued       map[EntityID]struct{}
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		destroyQueue: make([]EntityID, 0, 64),
		queued:       make(map[EntityID]struct{}, 64),
	}
}

func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Len returns the number of live entities.
func (w *World) Len() int { return w.pool.Len() }

// DestroyEntity removes every component of id and frees the ID immediately.
func (w *World) DestroyEntity(id EntityID) {
	if !w.pool.Alive(id) {
		return
	}
	w.registry.RemoveAll(id)
	w.pool.Destroy(id)
}

// MarkForDestruction queues an entity for end-of-frame cleanup.
// Marking the same entity twice queues it once.
func (w *World) MarkForDestruction(id EntityID) {
	if _, ok := w.queued[id]; ok {
		return
	}
	w.queued[id] = struct{}{}
	w.destroyQueue = append(w.destroyQueue, id)
}

// TakeDestroyQueue returns the queued entities and resets the queue.
func (w *World) TakeDestroyQueue() []EntityID {
	if len(w.destroyQueue) == 0 {
		return nil
	}
	out := make([]EntityID, len(w.destroyQueue))
	copy(out, w.destroyQueue)
	w.destroyQueue = w.destroyQueue[:0]
	clear(w.queued)
	return out
}

// FlushDestroyQueue destroys all queued entities and clears their components.
func (w *World) FlushDestroyQueue() {
	for _, id := range w.TakeDestroyQueue() {
		w.DestroyEntity(id)
	}
}

// Add attaches c to a live entity. It panics if the entity is dead or
// already carries a T.
func Add[T any](w *World, id EntityID, c T) *T {
	if !w.pool.Alive(id) {
		panic(fmt.Sprintf("ecs: add %T to dead entity %d", c, id))
	}
	return StoreOf[T](w.registry).Add(id, c)
}

func Get[T any](w *World, id EntityID) (*T, bool) {
	return StoreOf[T](w.registry).Get(id)
}

// MustGet returns the T attached to id and panics if there is none.
func MustGet[T any](w *World, id EntityID) *T {
	c, ok := StoreOf[T](w.registry).Get(id)
	if !ok {
		var zero T
		panic(fmt.Sprintf("ecs: entity %d has no component %T", id, zero))
	}
	return c
}

func Has[T any](w *World, id EntityID) bool {
	return StoreOf[T](w.registry).Has(id)
}

func Remove[T any](w *World, id EntityID) {
	StoreOf[T](w.registry).Remove(id)
}

// Query returns the store for T.
func Query[T any](w *World) *Store[T] {
	return StoreOf[T](w.registry)
}
