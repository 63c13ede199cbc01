package system

import (
	"time"

	"github.com/yuicy/engine/internal/core/ecs"
	"github.com/yuicy/engine/internal/core/event"
	coresys "github.com/yuicy/engine/internal/core/system"
)

// CleanupSystem flushes the deferred entity destruction queue at frame end.
// Phase 5 (Cleanup), after EventDispatchSystem.
type CleanupSystem struct {
	world   *ecs.World
	destroy func(ecs.EntityID)
}

// NewCleanupSystem destroys queued entities through destroy so the owner
// can release script instances and physics bodies first.
func NewCleanupSystem(world *ecs.World, destroy func(ecs.EntityID)) *CleanupSystem {
	return &CleanupSystem{world: world, destroy: destroy}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	for _, id := range s.world.TakeDestroyQueue() {
		if s.world.Alive(id) {
			s.destroy(id)
		}
	}
}

// EventDispatchSystem delivers the frame's bus events. Phase 5 (Cleanup),
// registered before CleanupSystem so handlers may still queue destruction.
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *EventDispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
