package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/yuicy/engine/internal/component"
	"github.com/yuicy/engine/internal/core/ecs"
)

// Projectiles fly on the Bullet layer and ignore players and each other.
const projectileMask = component.LayerAll &^ (component.LayerBullet | component.LayerPlayer)

// CreateProjectile spawns a sensor body travelling along dir. While
// running the body is created at once; otherwise the ProjectileSystem
// moves it until the simulation starts.
func (s *Scene) CreateProjectile(pos, dir mgl64.Vec2, cfg component.ProjectileConfig) Entity {
	e := s.CreateEntity("Projectile")
	tr := e.Transform()
	tr.Translation = mgl64.Vec3{pos.X(), pos.Y(), 0}
	tr.Scale = mgl64.Vec3{cfg.Size.X(), cfg.Size.Y(), 1}

	AddComponent(e, component.NewSprite(cfg.Color))
	AddComponent(e, component.RigidBody{Type: component.BodyDynamic, FixedRotation: true})
	box := component.NewBoxCollider(mgl64.Vec2{0.5, 0.5})
	box.IsTrigger = true
	box.CategoryBits = component.LayerBullet
	box.MaskBits = projectileMask
	AddComponent(e, box)
	AddComponent(e, component.Projectile{
		Direction:    dir,
		Speed:        cfg.Speed,
		Lifetime:     cfg.Lifetime,
		Damage:       cfg.Damage,
		DestroyOnHit: cfg.DestroyOnHit,
	})

	if s.running {
		s.bridge.CreateBody(s.world, e.id)
		s.launch(e.id)
	}
	return e
}

// launch sets a projectile body's velocity and turns off its gravity.
func (s *Scene) launch(id ecs.EntityID) {
	rb, ok := ecs.Get[component.RigidBody](s.world, id)
	if !ok || rb.RuntimeBody == 0 {
		return
	}
	p := ecs.MustGet[component.Projectile](s.world, id)
	s.bridge.SetGravityScale(rb.RuntimeBody, 0)
	s.bridge.SetLinearVelocity(rb.RuntimeBody, p.Velocity())
}

// luaHost adapts Scene to the id-based scripting bindings.
type luaHost struct {
	*Scene
}

func (h luaHost) FindEntityByName(name string) ecs.EntityID {
	return h.Scene.FindEntityByName(name).id
}

func (h luaHost) SpawnProjectile(pos, dir mgl64.Vec2, cfg component.ProjectileConfig) ecs.EntityID {
	return h.Scene.CreateProjectile(pos, dir, cfg).id
}
