package scene

import (
	"time"

	"github.com/yuicy/engine/internal/component"
	"github.com/yuicy/engine/internal/core/ecs"
	"github.com/yuicy/engine/internal/physics"
)

// Behavior hooks a native script may implement. Every hook is optional.

type Creator interface {
	OnCreate()
}

type Updater interface {
	OnUpdate(dt time.Duration)
}

type Destroyer interface {
	OnDestroy()
}

type CollisionEnterer interface {
	OnCollisionEnter(other Entity)
}

type CollisionExiter interface {
	OnCollisionExit(other Entity)
}

type TriggerEnterer interface {
	OnTriggerEnter(other Entity)
}

type TriggerExiter interface {
	OnTriggerExit(other Entity)
}

type entityBinder interface{ SetEntity(Entity) }

// ScriptableEntity is embedded by native behaviors to receive their entity.
type ScriptableEntity struct {
	entity Entity
}

func (s *ScriptableEntity) SetEntity(e Entity) { s.entity = e }
func (s *ScriptableEntity) Entity() Entity     { return s.entity }

// NativeManager runs the NativeScript lifecycle.
type NativeManager struct {
	scene *Scene
}

func newNativeManager(s *Scene) *NativeManager {
	return &NativeManager{scene: s}
}

func (m *NativeManager) world() *ecs.World { return m.scene.world }

// Initialize instantiates every binding without an instance and calls its
// OnCreate.
func (m *NativeManager) Initialize() {
	for _, id := range ecs.Query[component.NativeScript](m.world()).Entities() {
		ns, ok := ecs.Get[component.NativeScript](m.world(), id)
		if !ok || ns.Instance != nil {
			continue
		}
		if ns.Instantiate == nil {
			m.scene.log.Warn("native script has no factory, skipped")
			continue
		}
		ns.Instance = ns.Instantiate()
		if b, ok := ns.Instance.(entityBinder); ok {
			b.SetEntity(m.scene.Entity(id))
		}
		if c, ok := ns.Instance.(Creator); ok {
			c.OnCreate()
		}
	}
}

func (m *NativeManager) Update(dt time.Duration) {
	for _, id := range ecs.Query[component.NativeScript](m.world()).Entities() {
		ns, ok := ecs.Get[component.NativeScript](m.world(), id)
		if !ok {
			continue
		}
		if u, ok := ns.Instance.(Updater); ok {
			u.OnUpdate(dt)
		}
	}
}

func (m *NativeManager) Destroy() {
	for _, id := range ecs.Query[component.NativeScript](m.world()).Entities() {
		m.DestroyOne(id)
	}
}

// DestroyOne calls OnDestroy and releases the instance of id, if any.
func (m *NativeManager) DestroyOne(id ecs.EntityID) {
	ns, ok := ecs.Get[component.NativeScript](m.world(), id)
	if !ok || ns.Instance == nil {
		return
	}
	if d, ok := ns.Instance.(Destroyer); ok {
		d.OnDestroy()
	}
	if ns.DestroyScript != nil {
		ns.DestroyScript(ns)
	}
	ns.Instance = nil
}

func (m *NativeManager) RouteContact(kind physics.ContactKind, self, other ecs.EntityID) {
	ns, ok := ecs.Get[component.NativeScript](m.world(), self)
	if !ok || ns.Instance == nil {
		return
	}
	o := m.scene.Entity(other)
	switch kind {
	case physics.CollisionEnter:
		if h, ok := ns.Instance.(CollisionEnterer); ok {
			h.OnCollisionEnter(o)
		}
	case physics.CollisionExit:
		if h, ok := ns.Instance.(CollisionExiter); ok {
			h.OnCollisionExit(o)
		}
	case physics.TriggerEnter:
		if h, ok := ns.Instance.(TriggerEnterer); ok {
			h.OnTriggerEnter(o)
		}
	case physics.TriggerExit:
		if h, ok := ns.Instance.(TriggerExiter); ok {
			h.OnTriggerExit(o)
		}
	}
}
