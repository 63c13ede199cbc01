package scene

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/yuicy/engine/internal/component"
	"github.com/yuicy/engine/internal/core/ecs"
	"github.com/yuicy/engine/internal/core/event"
	coresys "github.com/yuicy/engine/internal/core/system"
	"github.com/yuicy/engine/internal/physics"
	"github.com/yuicy/engine/internal/render"
	"github.com/yuicy/engine/internal/scripting"
	"github.com/yuicy/engine/internal/system"
)

// Scene owns the entity store, the physics bridge and the frame pipeline.
// It starts Stopped; OnRuntimeStart/OnRuntimeStop switch the simulation
// and the script instances on and off. Single-goroutine access only.
type Scene struct {
	world  *ecs.World
	bus    *event.Bus
	runner *coresys.Runner
	bridge *physics.Bridge

	natives *NativeManager
	scripts *scripting.Manager // nil without a Lua engine

	extractor *render.Extractor
	log       *zap.Logger

	running        bool
	viewportWidth  uint32
	viewportHeight uint32
}

// New builds an empty scene. engine may be nil, in which case LuaScript
// components are ignored. renderer may be nil for headless use.
func New(cfg physics.Config, engine *scripting.Engine, renderer render.Renderer, log *zap.Logger) *Scene {
	s := &Scene{
		world:  ecs.NewWorld(),
		bus:    event.NewBus(),
		runner: coresys.NewRunner(),
		log:    log,
	}
	s.bridge = physics.NewBridge(cfg, log)
	s.natives = newNativeManager(s)
	s.extractor = render.NewExtractor(s.world, renderer, log)

	routers := []physics.ContactRouter{s.natives}
	s.runner.Register(system.NewScriptSystem(s.natives))
	if engine != nil {
		s.scripts = scripting.NewManager(engine, luaHost{s}, log)
		s.runner.Register(system.NewScriptSystem(s.scripts))
		routers = append(routers, s.scripts)
	}

	s.runner.Register(system.NewProjectileSystem(s.world, s.bus))
	s.runner.Register(system.NewAnimationSystem(s.world, log))
	s.runner.Register(system.NewPhysicsSystem(s.world, s.bridge, s.bus, routers...))
	s.runner.Register(system.NewRenderSystem(s.extractor))
	s.runner.Register(system.NewEventDispatchSystem(s.bus))
	s.runner.Register(system.NewCleanupSystem(s.world, s.destroyNow))
	return s
}

func (s *Scene) World() *ecs.World            { return s.world }
func (s *Scene) Physics() *physics.Bridge     { return s.bridge }
func (s *Scene) Bus() *event.Bus              { return s.bus }
func (s *Scene) Running() bool                { return s.running }
func (s *Scene) Extractor() *render.Extractor { return s.extractor }

// CreateEntity allocates an entity with a Transform at the origin and a Tag.
// An empty name becomes "Entity".
func (s *Scene) CreateEntity(name string) Entity {
	id := s.world.CreateEntity()
	if name == "" {
		name = "Entity"
	}
	ecs.Add(s.world, id, component.NewTransform(mgl64.Vec3{}))
	ecs.Add(s.world, id, component.Tag{Name: name})
	return Entity{id: id, scene: s}
}

// DestroyEntity frees e and all its components immediately. While running,
// its script instances are torn down and its physics body is released
// first. Destroying an invalid entity does nothing.
func (s *Scene) DestroyEntity(e Entity) {
	if e.scene != s || !s.world.Alive(e.id) {
		return
	}
	s.destroyNow(e.id)
}

func (s *Scene) destroyNow(id ecs.EntityID) {
	if s.running {
		s.natives.DestroyOne(id)
		if s.scripts != nil {
			s.scripts.DestroyOne(id)
		}
		s.bridge.DestroyBody(s.world, id)
	}
	s.world.DestroyEntity(id)
}

// Entity wraps a raw id from this scene's store.
func (s *Scene) Entity(id ecs.EntityID) Entity {
	return Entity{id: id, scene: s}
}

// FindEntityByName returns the first entity whose Tag matches, or the null
// Entity.
func (s *Scene) FindEntityByName(name string) Entity {
	tags := ecs.Query[component.Tag](s.world)
	for _, id := range tags.Entities() {
		if tag, _ := tags.Get(id); tag.Name == name {
			return Entity{id: id, scene: s}
		}
	}
	return Entity{}
}

// OnRuntimeStart creates the physics world and instantiates all scripts,
// native first. Calling it while running does nothing.
func (s *Scene) OnRuntimeStart() {
	if s.running {
		return
	}
	s.running = true
	ecs.Query[component.Animation](s.world).Each(func(_ ecs.EntityID, a *component.Animation) {
		a.AttachLogger(s.log)
	})
	s.bridge.Start(s.world)
	ecs.Query[component.Projectile](s.world).Each(func(id ecs.EntityID, _ *component.Projectile) {
		s.launch(id)
	})

	s.natives.Initialize()
	if s.scripts != nil {
		s.scripts.Initialize()
	}
}

// OnRuntimeStop destroys every script instance, native first, then the
// physics world. Entities and their data survive. Calling it while stopped
// does nothing.
func (s *Scene) OnRuntimeStop() {
	if !s.running {
		return
	}
	s.natives.Destroy()
	if s.scripts != nil {
		s.scripts.Destroy()
	}
	s.bridge.Stop(s.world)
	s.running = false
}

// OnUpdateRuntime runs one frame: scripts, projectiles, animation, physics
// with collision dispatch, render extraction, then end-of-frame cleanup.
func (s *Scene) OnUpdateRuntime(dt time.Duration) {
	s.runner.Tick(dt)
}

// OnRender draws the scene as it is, without running scripts or physics.
// Used while the simulation is paused.
func (s *Scene) OnRender() {
	s.runner.TickPhase(coresys.PhaseRender, 0)
}

// AddSystem appends a game system to the frame pipeline. It runs after the
// built-in systems of its phase.
func (s *Scene) AddSystem(sys coresys.System) {
	s.runner.Register(sys)
}

// OnViewportResize resizes every camera without a fixed aspect ratio.
func (s *Scene) OnViewportResize(width, height uint32) {
	s.viewportWidth, s.viewportHeight = width, height
	ecs.Query[component.Camera](s.world).Each(func(_ ecs.EntityID, c *component.Camera) {
		if !c.FixedAspectRatio {
			c.Camera.SetViewportSize(width, height)
		}
	})
}

// PrimaryCamera returns the entity rendering the scene, or the null Entity.
func (s *Scene) PrimaryCamera() Entity {
	id, _, ok := s.extractor.PrimaryCamera()
	if !ok {
		return Entity{}
	}
	return Entity{id: id, scene: s}
}

// Close stops the simulation if it is running.
func (s *Scene) Close() {
	s.OnRuntimeStop()
}
