package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/yuicy/engine/internal/component"
	"github.com/yuicy/engine/internal/config"
	coresys "github.com/yuicy/engine/internal/core/system"
	"github.com/yuicy/engine/internal/data"
	"github.com/yuicy/engine/internal/physics"
	"github.com/yuicy/engine/internal/scene"
)

// buildDemo fills s with a camera, a floor, a bouncing ball and a turret
// that fires at it. It returns the ball.
func buildDemo(s *scene.Scene, cfg *config.Config, presets *data.ProjectileTable, log *zap.Logger) scene.Entity {
	cam := s.CreateEntity("Camera")
	cam.Transform().Translation = mgl64.Vec3{0, 4, 0}
	camera := scene.AddComponent(cam, component.NewCamera())
	camera.Camera.SetOrthographic(16, -1, 1)

	floor := s.CreateEntity("Floor")
	floor.Transform().Scale = mgl64.Vec3{20, 1, 1}
	scene.AddComponent(floor, component.NewSprite(mgl64.Vec4{0.4, 0.4, 0.45, 1}))
	scene.AddComponent(floor, component.RigidBody{Type: component.BodyStatic})
	floorBox := component.NewBoxCollider(mgl64.Vec2{0.5, 0.5})
	floorBox.CategoryBits = component.LayerGround
	scene.AddComponent(floor, floorBox)

	ball := s.CreateEntity("Ball")
	ball.Transform().Translation = mgl64.Vec3{0, 10, 0}
	ballSprite := component.NewSprite(mgl64.Vec4{0.9, 0.3, 0.3, 1})
	ballSprite.SortingOrder = 1
	scene.AddComponent(ball, ballSprite)
	scene.AddComponent(ball, component.RigidBody{Type: component.BodyDynamic})
	ballShape := component.NewCircleCollider(0.5)
	ballShape.Restitution = 0.6
	ballShape.CategoryBits = component.LayerEnemy
	scene.AddComponent(ball, ballShape)

	script := filepath.Join(cfg.Scripting.ScriptsDir, "ball.lua")
	if _, err := os.Stat(script); err == nil {
		scene.AddComponent(ball, component.NewLuaScript(script))
	} else {
		log.Info("no ball script, running without Lua", zap.String("path", script))
	}

	turret := s.CreateEntity("Turret")
	turret.Transform().Translation = mgl64.Vec3{-8, 2, 0}
	scene.AddComponent(turret, component.NewSprite(mgl64.Vec4{0.3, 0.7, 0.9, 1}))
	shot := component.DefaultProjectileConfig()
	if presets != nil {
		if c, ok := presets.Config("bolt"); ok {
			shot = c
		}
	}
	ns := component.NativeScript{}
	component.BindFunc(&ns, func() any {
		return &turretBehavior{target: "Ball", interval: time.Second, lead: 200 * time.Millisecond, shot: shot, log: log}
	})
	scene.AddComponent(turret, ns)

	return ball
}

// turretBehavior fires a projectile at its target on a fixed interval.
type turretBehavior struct {
	scene.ScriptableEntity

	target   string
	interval time.Duration
	lead     time.Duration
	shot     component.ProjectileConfig
	log      *zap.Logger

	cooldown time.Duration
	fired    int
}

func (t *turretBehavior) OnCreate() {
	t.cooldown = t.interval
}

func (t *turretBehavior) OnUpdate(dt time.Duration) {
	t.cooldown -= dt
	if t.cooldown > 0 {
		return
	}
	t.cooldown += t.interval

	self := t.Entity()
	target := self.Scene().FindEntityByName(t.target)
	if !target.Valid() {
		return
	}
	from := self.Transform().Translation.Vec2()
	to := target.Transform().Translation.Vec2()
	if !self.Scene().Physics().HasLineOfSight(from, to, physics.DefaultSightMask) {
		return
	}
	if rb, ok := scene.TryGetComponent[component.RigidBody](target); ok {
		v := self.Scene().Physics().LinearVelocity(rb.RuntimeBody)
		to = to.Add(v.Mul(t.lead.Seconds()))
	}
	self.Scene().CreateProjectile(from.Add(mgl64.Vec2{0.6, 0}), to.Sub(from), t.shot)
	t.fired++
}

func (t *turretBehavior) OnDestroy() {
	t.log.Info("turret retired", zap.Int("fired", t.fired))
}

// ballReporter logs the ball's height once per interval of simulated time.
type ballReporter struct {
	ball     scene.Entity
	interval time.Duration
	log      *zap.Logger

	elapsed time.Duration
	frames  int
}

func (r *ballReporter) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (r *ballReporter) Update(dt time.Duration) {
	r.frames++
	r.elapsed += dt
	if r.elapsed < r.interval {
		return
	}
	r.elapsed -= r.interval
	if !r.ball.Valid() {
		return
	}
	r.log.Info("ball",
		zap.Int("frame", r.frames),
		zap.Float64("y", r.ball.Transform().Translation.Y()),
		zap.Int("entities", r.ball.Scene().World().Len()),
	)
}
