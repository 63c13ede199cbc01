package scripting

import (
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/yuicy/engine/internal/component"
	"github.com/yuicy/engine/internal/core/ecs"
	"github.com/yuicy/engine/internal/physics"
)

// Manager runs the LuaScript lifecycle for one scene. Each script file
// returns a class table; every entity gets its own shallow copy with
// `entity` and `scene` fields, and hooks are called as methods on that copy.
type Manager struct {
	engine *Engine
	host   Host
	scene  *lua.LTable
	log    *zap.Logger
}

func NewManager(engine *Engine, host Host, log *zap.Logger) *Manager {
	return &Manager{
		engine: engine,
		host:   host,
		scene:  engine.newSceneTable(host),
		log:    log,
	}
}

func (m *Manager) world() *ecs.World { return m.host.World() }

// Initialize loads every script that is not loaded yet and calls its
// OnCreate. A script that fails to load stays unloaded and is skipped by
// later calls.
func (m *Manager) Initialize() {
	for _, id := range ecs.Query[component.LuaScript](m.world()).Entities() {
		sc, ok := ecs.Get[component.LuaScript](m.world(), id)
		if !ok || sc.Loaded {
			continue
		}
		if err := m.instantiate(id, sc); err != nil {
			m.log.Error("lua script load failed",
				zap.String("script", sc.Path),
				zap.Uint64("entity", uint64(id)),
				zap.Error(err),
			)
			continue
		}
		m.call(id, sc, "OnCreate", sc.OnCreate)
	}
}

func (m *Manager) instantiate(id ecs.EntityID, sc *component.LuaScript) error {
	result, err := m.engine.Run(sc.Path)
	if err != nil {
		return err
	}
	class, ok := result.(*lua.LTable)
	if !ok {
		return &NotTableError{Path: sc.Path, Got: result.Type().String()}
	}

	L := m.engine.State()
	instance := L.NewTable()
	class.ForEach(func(k, v lua.LValue) {
		instance.RawSet(k, v)
	})
	if mt, ok := L.GetMetatable(class).(*lua.LTable); ok {
		L.SetMetatable(instance, mt)
	}
	instance.RawSetString("entity", m.engine.newEntity(m.host, id))
	instance.RawSetString("scene", m.scene)

	sc.Instance = instance
	sc.OnCreate = hook(instance, "OnCreate")
	sc.OnUpdate = hook(instance, "OnUpdate")
	sc.OnDestroy = hook(instance, "OnDestroy")
	sc.OnCollisionEnter = hook(instance, "OnCollisionEnter")
	sc.OnCollisionExit = hook(instance, "OnCollisionExit")
	sc.OnTriggerEnter = hook(instance, "OnTriggerEnter")
	sc.OnTriggerExit = hook(instance, "OnTriggerExit")
	sc.Loaded = true
	return nil
}

func hook(instance *lua.LTable, name string) *lua.LFunction {
	fn, _ := instance.RawGetString(name).(*lua.LFunction)
	return fn
}

// Update calls OnUpdate(dt) on every loaded script, dt in seconds.
func (m *Manager) Update(dt time.Duration) {
	arg := lua.LNumber(dt.Seconds())
	for _, id := range ecs.Query[component.LuaScript](m.world()).Entities() {
		sc, ok := ecs.Get[component.LuaScript](m.world(), id)
		if !ok || !sc.Loaded {
			continue
		}
		m.call(id, sc, "OnUpdate", sc.OnUpdate, arg)
	}
}

// Destroy calls OnDestroy on every loaded script and unloads it. The
// compiled source stays cached in the engine.
func (m *Manager) Destroy() {
	for _, id := range ecs.Query[component.LuaScript](m.world()).Entities() {
		m.DestroyOne(id)
	}
}

// DestroyOne tears down the script of a single entity, if loaded.
func (m *Manager) DestroyOne(id ecs.EntityID) {
	sc, ok := ecs.Get[component.LuaScript](m.world(), id)
	if !ok || !sc.Loaded {
		return
	}
	m.call(id, sc, "OnDestroy", sc.OnDestroy)
	sc.Unload()
}

// RouteContact calls the hook matching kind on self's script, passing
// other as an Entity.
func (m *Manager) RouteContact(kind physics.ContactKind, self, other ecs.EntityID) {
	sc, ok := ecs.Get[component.LuaScript](m.world(), self)
	if !ok || !sc.Loaded {
		return
	}
	var fn *lua.LFunction
	switch kind {
	case physics.CollisionEnter:
		fn = sc.OnCollisionEnter
	case physics.CollisionExit:
		fn = sc.OnCollisionExit
	case physics.TriggerEnter:
		fn = sc.OnTriggerEnter
	case physics.TriggerExit:
		fn = sc.OnTriggerExit
	}
	if fn == nil {
		return
	}
	m.call(self, sc, kind.String(), fn, m.engine.newEntity(m.host, other))
}

// call runs a hook as instance:name(args...). Lua errors are logged and
// swallowed; the hook runs again next time.
func (m *Manager) call(id ecs.EntityID, sc *component.LuaScript, name string, fn *lua.LFunction, args ...lua.LValue) {
	if fn == nil {
		return
	}
	m.engine.State().SetGlobal("Scene", m.scene)
	if err := m.engine.Call(fn, append([]lua.LValue{sc.Instance}, args...)...); err != nil {
		m.log.Error("lua hook failed",
			zap.String("script", sc.Path),
			zap.String("hook", name),
			zap.Uint64("entity", uint64(id)),
			zap.Error(err),
		)
	}
}

// NotTableError reports a script whose top level did not return a table.
type NotTableError struct {
	Path string
	Got  string
}

func (e *NotTableError) Error() string {
	return "script " + e.Path + " returned " + e.Got + ", want table"
}
