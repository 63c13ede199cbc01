package system

import (
	"time"

	"github.com/yuicy/engine/internal/core/ecs"
	"github.com/yuicy/engine/internal/core/event"
	coresys "github.com/yuicy/engine/internal/core/system"
	"github.com/yuicy/engine/internal/physics"
)

// PhysicsSystem steps the simulator, copies bodies back into transforms and
// routes the step's contacts. Phase 3 (Physics). Does nothing while the
// bridge is stopped.
type PhysicsSystem struct {
	world   *ecs.World
	bridge  *physics.Bridge
	bus     *event.Bus
	routers []physics.ContactRouter
}

// NewPhysicsSystem routes contacts to routers in the given order, then
// emits them on bus.
func NewPhysicsSystem(world *ecs.World, bridge *physics.Bridge, bus *event.Bus, routers ...physics.ContactRouter) *PhysicsSystem {
	return &PhysicsSystem{world: world, bridge: bridge, bus: bus, routers: routers}
}

func (s *PhysicsSystem) Phase() coresys.Phase { return coresys.PhasePhysics }

func (s *PhysicsSystem) Update(dt time.Duration) {
	if !s.bridge.Running() {
		return
	}
	s.bridge.Step(dt)
	s.bridge.SyncTransforms(s.world)

	contacts := s.bridge.Contacts()
	for _, r := range s.routers {
		// A script may have stopped the simulation from inside a hook.
		if !s.bridge.Running() {
			return
		}
		contacts.Dispatch(s.world.Alive, r)
	}

	for _, c := range contacts.Begins() {
		event.Emit(s.bus, event.ContactBegan{A: c.A, B: c.B, SensorA: c.SensorA, SensorB: c.SensorB})
	}
	for _, c := range contacts.Ends() {
		event.Emit(s.bus, event.ContactEnded{A: c.A, B: c.B, SensorA: c.SensorA, SensorB: c.SensorB})
	}
}
