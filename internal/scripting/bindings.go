package scripting

import (
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/yuicy/engine/internal/component"
	"github.com/yuicy/engine/internal/core/ecs"
	"github.com/yuicy/engine/internal/physics"
)

const entityTypeName = "Entity"

// Host is the scene side of the bindings.
type Host interface {
	World() *ecs.World
	Physics() *physics.Bridge
	FindEntityByName(name string) ecs.EntityID
	SpawnProjectile(pos, dir mgl64.Vec2, cfg component.ProjectileConfig) ecs.EntityID
}

// entityRef is the Go value behind an Entity userdata.
type entityRef struct {
	id   ecs.EntityID
	host Host
}

func (r *entityRef) alive() bool {
	return r.id != ecs.NullEntity && r.host.World().Alive(r.id)
}

func (e *Engine) registerGlobals() {
	L := e.vm

	L.SetGlobal("Log", L.NewFunction(func(L *lua.LState) int {
		msg := L.CheckString(1)
		switch L.OptInt(2, 1) {
		case 0:
			e.log.Debug(msg, zap.String("source", "lua"))
		case 2:
			e.log.Warn(msg, zap.String("source", "lua"))
		case 3:
			e.log.Error(msg, zap.String("source", "lua"))
		default:
			e.log.Info(msg, zap.String("source", "lua"))
		}
		return 0
	}))

	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		parts := make([]string, 0, L.GetTop())
		for i := 1; i <= L.GetTop(); i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		e.log.Info(strings.Join(parts, "\t"), zap.String("source", "lua"))
		return 0
	}))

	layers := L.NewTable()
	for name, bits := range component.LayerNames() {
		layers.RawSetString(strings.ToUpper(name[:1])+name[1:], lua.LNumber(bits))
	}
	L.SetGlobal("Layer", layers)
}

func (e *Engine) registerEntityType() {
	L := e.vm
	mt := L.NewTypeMetatable(entityTypeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), entityMethods))
	L.SetField(mt, "__eq", L.NewFunction(func(L *lua.LState) int {
		a, aok := L.Get(1).(*lua.LUserData)
		b, bok := L.Get(2).(*lua.LUserData)
		if !aok || !bok {
			L.Push(lua.LFalse)
			return 1
		}
		ra, _ := a.Value.(*entityRef)
		rb, _ := b.Value.(*entityRef)
		L.Push(lua.LBool(ra != nil && rb != nil && ra.id == rb.id))
		return 1
	}))
	L.SetField(mt, "__tostring", L.NewFunction(func(L *lua.LState) int {
		r := checkEntity(L)
		name := "<invalid>"
		if r.alive() {
			if tag, ok := ecs.Get[component.Tag](r.host.World(), r.id); ok {
				name = tag.Name
			}
		}
		L.Push(lua.LString("Entity(" + name + ")"))
		return 1
	}))
}

// newEntity wraps id as an Entity userdata.
func (e *Engine) newEntity(host Host, id ecs.EntityID) *lua.LUserData {
	ud := e.vm.NewUserData()
	ud.Value = &entityRef{id: id, host: host}
	e.vm.SetMetatable(ud, e.vm.GetTypeMetatable(entityTypeName))
	return ud
}

// newSceneTable builds the Scene table for one host. Every instance of
// that host's scripts carries it as `scene`, and the global Scene points at
// it while the host's hooks run.
func (e *Engine) newSceneTable(host Host) *lua.LTable {
	L := e.vm
	scene := L.NewTable()

	L.SetField(scene, "FindEntityByName", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(2)
		L.Push(e.newEntity(host, host.FindEntityByName(name)))
		return 1
	}))

	L.SetField(scene, "CreateProjectile", L.NewFunction(func(L *lua.LState) int {
		pos := mgl64.Vec2{float64(L.CheckNumber(2)), float64(L.CheckNumber(3))}
		dir := mgl64.Vec2{float64(L.CheckNumber(4)), float64(L.CheckNumber(5))}
		cfg := component.DefaultProjectileConfig()
		cfg.Speed = float64(L.OptNumber(6, lua.LNumber(cfg.Speed)))
		cfg.Lifetime = time.Duration(float64(L.OptNumber(7, lua.LNumber(cfg.Lifetime.Seconds()))) * float64(time.Second))
		cfg.Size = mgl64.Vec2{
			float64(L.OptNumber(8, lua.LNumber(cfg.Size.X()))),
			float64(L.OptNumber(9, lua.LNumber(cfg.Size.Y()))),
		}
		cfg.Color = mgl64.Vec4{
			float64(L.OptNumber(10, lua.LNumber(cfg.Color.X()))),
			float64(L.OptNumber(11, lua.LNumber(cfg.Color.Y()))),
			float64(L.OptNumber(12, lua.LNumber(cfg.Color.Z()))),
			cfg.Color.W(),
		}
		L.Push(e.newEntity(host, host.SpawnProjectile(pos, dir, cfg)))
		return 1
	}))

	L.SetField(scene, "Raycast", L.NewFunction(func(L *lua.LState) int {
		start := mgl64.Vec2{float64(L.CheckNumber(2)), float64(L.CheckNumber(3))}
		end := mgl64.Vec2{float64(L.CheckNumber(4)), float64(L.CheckNumber(5))}
		mask := uint16(L.OptInt(6, int(component.LayerAll)))
		res := host.Physics().Raycast(start, end, mask)
		L.Push(lua.LBool(res.Hit))
		L.Push(lua.LNumber(res.Point.X()))
		L.Push(lua.LNumber(res.Point.Y()))
		L.Push(lua.LNumber(res.Normal.X()))
		L.Push(lua.LNumber(res.Normal.Y()))
		L.Push(lua.LNumber(res.Fraction))
		if res.Hit {
			L.Push(e.newEntity(host, res.Entity))
		} else {
			L.Push(lua.LNil)
		}
		return 7
	}))

	L.SetField(scene, "HasLineOfSight", L.NewFunction(func(L *lua.LState) int {
		from := mgl64.Vec2{float64(L.CheckNumber(2)), float64(L.CheckNumber(3))}
		to := mgl64.Vec2{float64(L.CheckNumber(4)), float64(L.CheckNumber(5))}
		mask := uint16(L.OptInt(6, int(physics.DefaultSightMask)))
		L.Push(lua.LBool(host.Physics().HasLineOfSight(from, to, mask)))
		return 1
	}))

	return scene
}

func checkEntity(L *lua.LState) *entityRef {
	ud := L.CheckUserData(1)
	r, ok := ud.Value.(*entityRef)
	if !ok {
		L.ArgError(1, "Entity expected")
	}
	return r
}

// checkLive is checkEntity for methods that touch components. Using a dead
// entity raises a Lua error, which the calling hook reports.
func checkLive(L *lua.LState) *entityRef {
	r := checkEntity(L)
	if !r.alive() {
		L.RaiseError("entity is not valid")
	}
	return r
}

func pushVec3(L *lua.LState, v mgl64.Vec3) int {
	L.Push(lua.LNumber(v.X()))
	L.Push(lua.LNumber(v.Y()))
	L.Push(lua.LNumber(v.Z()))
	return 3
}

func optVec3(L *lua.LState, base mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		float64(L.CheckNumber(2)),
		float64(L.CheckNumber(3)),
		float64(L.OptNumber(4, lua.LNumber(base.Z()))),
	}
}

// syncBody pushes a script-side move into the simulator.
func syncBody(r *entityRef, tr *component.Transform) {
	if rb, ok := ecs.Get[component.RigidBody](r.host.World(), r.id); ok {
		r.host.Physics().SetTransform(rb.RuntimeBody,
			mgl64.Vec2{tr.Translation.X(), tr.Translation.Y()}, tr.Rotation.Z())
	}
}

var entityMethods = map[string]lua.LGFunction{
	"IsValid": func(L *lua.LState) int {
		L.Push(lua.LBool(checkEntity(L).alive()))
		return 1
	},
	"GetTag": func(L *lua.LState) int {
		r := checkLive(L)
		L.Push(lua.LString(ecs.MustGet[component.Tag](r.host.World(), r.id).Name))
		return 1
	},
	"GetPosition": func(L *lua.LState) int {
		r := checkLive(L)
		return pushVec3(L, ecs.MustGet[component.Transform](r.host.World(), r.id).Translation)
	},
	"SetPosition": func(L *lua.LState) int {
		r := checkLive(L)
		tr := ecs.MustGet[component.Transform](r.host.World(), r.id)
		tr.Translation = optVec3(L, tr.Translation)
		syncBody(r, tr)
		return 0
	},
	"GetRotation": func(L *lua.LState) int {
		r := checkLive(L)
		L.Push(lua.LNumber(ecs.MustGet[component.Transform](r.host.World(), r.id).Rotation.Z()))
		return 1
	},
	"SetRotation": func(L *lua.LState) int {
		r := checkLive(L)
		tr := ecs.MustGet[component.Transform](r.host.World(), r.id)
		tr.Rotation[2] = float64(L.CheckNumber(2))
		syncBody(r, tr)
		return 0
	},
	"GetScale": func(L *lua.LState) int {
		r := checkLive(L)
		return pushVec3(L, ecs.MustGet[component.Transform](r.host.World(), r.id).Scale)
	},
	"SetScale": func(L *lua.LState) int {
		r := checkLive(L)
		tr := ecs.MustGet[component.Transform](r.host.World(), r.id)
		tr.Scale = optVec3(L, tr.Scale)
		return 0
	},
	"HasSprite": func(L *lua.LState) int {
		r := checkLive(L)
		L.Push(lua.LBool(ecs.Has[component.Sprite](r.host.World(), r.id)))
		return 1
	},
	"SetColor": func(L *lua.LState) int {
		r := checkLive(L)
		if s, ok := ecs.Get[component.Sprite](r.host.World(), r.id); ok {
			s.Color = mgl64.Vec4{
				float64(L.CheckNumber(2)),
				float64(L.CheckNumber(3)),
				float64(L.CheckNumber(4)),
				float64(L.OptNumber(5, 1)),
			}
		}
		return 0
	},
	"SetFlipX": func(L *lua.LState) int {
		r := checkLive(L)
		if s, ok := ecs.Get[component.Sprite](r.host.World(), r.id); ok {
			s.FlipX = L.CheckBool(2)
		}
		return 0
	},
	"HasAnimation": func(L *lua.LState) int {
		r := checkLive(L)
		L.Push(lua.LBool(ecs.Has[component.Animation](r.host.World(), r.id)))
		return 1
	},
	"PlayAnimation": func(L *lua.LState) int {
		r := checkLive(L)
		started := false
		if a, ok := ecs.Get[component.Animation](r.host.World(), r.id); ok {
			started = a.Play(L.CheckString(2), L.OptBool(3, false))
		}
		L.Push(lua.LBool(started))
		return 1
	},
	"IsAnimationFinished": func(L *lua.LState) int {
		r := checkLive(L)
		a, ok := ecs.Get[component.Animation](r.host.World(), r.id)
		L.Push(lua.LBool(ok && a.IsFinished()))
		return 1
	},
	"GetAnimationClip": func(L *lua.LState) int {
		r := checkLive(L)
		if a, ok := ecs.Get[component.Animation](r.host.World(), r.id); ok {
			L.Push(lua.LString(a.State.CurrentClip))
		} else {
			L.Push(lua.LString(""))
		}
		return 1
	},
	"HasRigidbody": func(L *lua.LState) int {
		r := checkLive(L)
		L.Push(lua.LBool(ecs.Has[component.RigidBody](r.host.World(), r.id)))
		return 1
	},
	"SetLinearVelocity": func(L *lua.LState) int {
		r := checkLive(L)
		if rb, ok := ecs.Get[component.RigidBody](r.host.World(), r.id); ok {
			r.host.Physics().SetLinearVelocity(rb.RuntimeBody,
				mgl64.Vec2{float64(L.CheckNumber(2)), float64(L.CheckNumber(3))})
		}
		return 0
	},
	"GetLinearVelocity": func(L *lua.LState) int {
		r := checkLive(L)
		var v mgl64.Vec2
		if rb, ok := ecs.Get[component.RigidBody](r.host.World(), r.id); ok {
			v = r.host.Physics().LinearVelocity(rb.RuntimeBody)
		}
		L.Push(lua.LNumber(v.X()))
		L.Push(lua.LNumber(v.Y()))
		return 2
	},
	"SetGravityScale": func(L *lua.LState) int {
		r := checkLive(L)
		if rb, ok := ecs.Get[component.RigidBody](r.host.World(), r.id); ok {
			r.host.Physics().SetGravityScale(rb.RuntimeBody, float64(L.CheckNumber(2)))
		}
		return 0
	},
	"HasProjectile": func(L *lua.LState) int {
		r := checkLive(L)
		L.Push(lua.LBool(ecs.Has[component.Projectile](r.host.World(), r.id)))
		return 1
	},
	"Destroy": func(L *lua.LState) int {
		r := checkEntity(L)
		if r.alive() {
			r.host.World().MarkForDestruction(r.id)
		}
		return 0
	},
}
