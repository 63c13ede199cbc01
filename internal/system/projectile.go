package system

import (
	"time"

	"github.com/yuicy/engine/internal/component"
	"github.com/yuicy/engine/internal/core/ecs"
	"github.com/yuicy/engine/internal/core/event"
	coresys "github.com/yuicy/engine/internal/core/system"
)

// ProjectileSystem ages projectiles and retires them when their lifetime
// runs out or, for DestroyOnHit, when they touch something.
// Phase 1 (Update).
//
// Projectiles with a physics body are moved by the simulator; without one
// (simulation stopped) the Transform is moved here.
type ProjectileSystem struct {
	world *ecs.World
}

func NewProjectileSystem(world *ecs.World, bus *event.Bus) *ProjectileSystem {
	s := &ProjectileSystem{world: world}
	event.Subscribe(bus, s.onContact)
	return s
}

func (s *ProjectileSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *ProjectileSystem) Update(dt time.Duration) {
	ecs.Query[component.Projectile](s.world).Each(func(id ecs.EntityID, p *component.Projectile) {
		p.Elapsed += dt
		if p.Elapsed >= p.Lifetime {
			s.world.MarkForDestruction(id)
			return
		}
		if rb, ok := ecs.Get[component.RigidBody](s.world, id); ok && rb.RuntimeBody != 0 {
			return
		}
		if tr, ok := ecs.Get[component.Transform](s.world, id); ok {
			v := p.Velocity().Mul(dt.Seconds())
			tr.Translation[0] += v.X()
			tr.Translation[1] += v.Y()
		}
	})
}

func (s *ProjectileSystem) onContact(ev event.ContactBegan) {
	s.hit(ev.A)
	s.hit(ev.B)
}

func (s *ProjectileSystem) hit(id ecs.EntityID) {
	if !s.world.Alive(id) {
		return
	}
	if p, ok := ecs.Get[component.Projectile](s.world, id); ok && p.DestroyOnHit {
		s.world.MarkForDestruction(id)
	}
}
