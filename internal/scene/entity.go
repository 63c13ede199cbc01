package scene

import (
	"fmt"

	"github.com/yuicy/engine/internal/component"
	"github.com/yuicy/engine/internal/core/ecs"
)

// Entity is a lightweight handle: an id plus the scene that owns it. The
// zero Entity is null. Entities compare equal when they name the same id
// in the same scene.
type Entity struct {
	id    ecs.EntityID
	scene *Scene
}

func (e Entity) ID() ecs.EntityID { return e.id }
func (e Entity) Scene() *Scene    { return e.scene }

// Valid reports whether e refers to a live entity.
func (e Entity) Valid() bool {
	return e.scene != nil && e.id != ecs.NullEntity && e.scene.world.Alive(e.id)
}

func (e Entity) Tag() *component.Tag {
	return GetComponent[component.Tag](e)
}

func (e Entity) Name() string {
	return e.Tag().Name
}

func (e Entity) Transform() *component.Transform {
	return GetComponent[component.Transform](e)
}

// Destroy queues e for destruction at the end of the current frame.
func (e Entity) Destroy() {
	if e.Valid() {
		e.scene.world.MarkForDestruction(e.id)
	}
}

func (e Entity) String() string {
	if !e.Valid() {
		return "Entity(null)"
	}
	return fmt.Sprintf("Entity(%d %q)", e.id.Index(), e.Name())
}

func (e Entity) mustBeValid() {
	if !e.Valid() {
		panic(fmt.Sprintf("scene: use of invalid entity %d", e.id))
	}
}

// AddComponent attaches c to e and returns the stored copy. It panics if e
// already carries a T. An Animation without a logger gets the scene's.
func AddComponent[T any](e Entity, c T) *T {
	e.mustBeValid()
	p := ecs.Add(e.scene.world, e.id, c)
	if anim, ok := any(p).(*component.Animation); ok {
		anim.AttachLogger(e.scene.log)
	}
	return p
}

// GetComponent returns e's T and panics if there is none.
func GetComponent[T any](e Entity) *T {
	e.mustBeValid()
	return ecs.MustGet[T](e.scene.world, e.id)
}

// TryGetComponent returns e's T, if any.
func TryGetComponent[T any](e Entity) (*T, bool) {
	if !e.Valid() {
		return nil, false
	}
	return ecs.Get[T](e.scene.world, e.id)
}

// HasComponent never panics; it is false for invalid entities.
func HasComponent[T any](e Entity) bool {
	return e.Valid() && ecs.Has[T](e.scene.world, e.id)
}

func RemoveComponent[T any](e Entity) {
	e.mustBeValid()
	ecs.Remove[T](e.scene.world, e.id)
}
