package physics

import (
	"fmt"
	"time"

	"github.com/ByteArena/box2d"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/yuicy/engine/internal/component"
	"github.com/yuicy/engine/internal/core/ecs"
)

// Config tunes the simulator. Steps are fixed-size: frame time accumulates
// and is drained FixedTimestep at a time, at most MaxStepsPerFrame per frame.
type Config struct {
	Gravity            mgl64.Vec2
	FixedTimestep      time.Duration
	MaxStepsPerFrame   int
	VelocityIterations int
	PositionIterations int
}

func DefaultConfig() Config {
	return Config{
		Gravity:            mgl64.Vec2{0, -9.8},
		FixedTimestep:      time.Second / 60,
		MaxStepsPerFrame:   8,
		VelocityIterations: 6,
		PositionIterations: 2,
	}
}

// Bridge owns the simulator world between Start and Stop and keeps the
// component-side handles in step with it. Single-goroutine access only.
type Bridge struct {
	cfg Config
	log *zap.Logger

	world    *box2d.B2World
	contacts *ContactRecorder

	bodies   slotTable[box2d.B2Body]
	fixtures slotTable[box2d.B2Fixture]

	accumulator time.Duration
}

func NewBridge(cfg Config, log *zap.Logger) *Bridge {
	if cfg.FixedTimestep <= 0 {
		cfg.FixedTimestep = DefaultConfig().FixedTimestep
	}
	if cfg.MaxStepsPerFrame <= 0 {
		cfg.MaxStepsPerFrame = DefaultConfig().MaxStepsPerFrame
	}
	if cfg.VelocityIterations <= 0 {
		cfg.VelocityIterations = DefaultConfig().VelocityIterations
	}
	if cfg.PositionIterations <= 0 {
		cfg.PositionIterations = DefaultConfig().PositionIterations
	}
	return &Bridge{cfg: cfg, log: log}
}

func (b *Bridge) Config() Config { return b.cfg }

// Running reports whether a simulator world exists.
func (b *Bridge) Running() bool { return b.world != nil }

// BodyCount returns the number of live engine bodies.
func (b *Bridge) BodyCount() int { return b.bodies.live }

// Contacts returns the current contact log, nil while stopped.
func (b *Bridge) Contacts() *ContactRecorder { return b.contacts }

// Start builds a fresh world and a body for every entity with a RigidBody.
// Calling Start while running does nothing.
func (b *Bridge) Start(w *ecs.World) {
	if b.world != nil {
		return
	}
	world := box2d.MakeB2World(box2d.MakeB2Vec2(b.cfg.Gravity.X(), b.cfg.Gravity.Y()))
	b.world = &world
	b.contacts = NewContactRecorder()
	b.world.SetContactListener(b.contacts)
	b.accumulator = 0

	for _, id := range ecs.Query[component.RigidBody](w).Entities() {
		b.CreateBody(w, id)
	}
	b.log.Info("physics started",
		zap.Int("bodies", b.bodies.live),
		zap.Int("fixtures", b.fixtures.live),
	)
}

// Stop drops the world and empties every runtime handle. Entities and their
// data components are untouched.
func (b *Bridge) Stop(w *ecs.World) {
	if b.world == nil {
		return
	}
	ecs.Query[component.RigidBody](w).Each(func(_ ecs.EntityID, rb *component.RigidBody) {
		rb.RuntimeBody = 0
	})
	ecs.Query[component.BoxCollider](w).Each(func(_ ecs.EntityID, c *component.BoxCollider) {
		c.RuntimeFixture = 0
	})
	ecs.Query[component.CircleCollider](w).Each(func(_ ecs.EntityID, c *component.CircleCollider) {
		c.RuntimeFixture = 0
	})
	b.log.Info("physics stopped", zap.Int("bodies", b.bodies.live))
	b.world = nil
	b.contacts = nil
	b.bodies.reset()
	b.fixtures.reset()
	b.accumulator = 0
}

// CreateBody builds the engine body and fixtures for id from its RigidBody,
// Transform and colliders, and stores the handles back. It panics on an
// invalid body type.
func (b *Bridge) CreateBody(w *ecs.World, id ecs.EntityID) component.BodyHandle {
	if b.world == nil {
		return 0
	}
	rb := ecs.MustGet[component.RigidBody](w, id)
	tr := ecs.MustGet[component.Transform](w, id)
	if !rb.Type.Valid() {
		panic(fmt.Sprintf("physics: entity %d has invalid body type %s", id, rb.Type))
	}

	def := box2d.MakeB2BodyDef()
	def.Type = bodyType(rb.Type)
	def.Position = box2d.MakeB2Vec2(tr.Translation.X(), tr.Translation.Y())
	def.Angle = tr.Rotation.Z()
	def.FixedRotation = rb.FixedRotation
	def.UserData = encodeUserData(id)

	body := b.world.CreateBody(&def)
	rb.RuntimeBody = component.BodyHandle(b.bodies.put(body))

	if box, ok := ecs.Get[component.BoxCollider](w, id); ok {
		shape := box2d.MakeB2PolygonShape()
		shape.SetAsBoxFromCenterAndAngle(
			box.Size.X()*tr.Scale.X(), box.Size.Y()*tr.Scale.Y(),
			box2d.MakeB2Vec2(box.Offset.X(), box.Offset.Y()), 0,
		)
		box.RuntimeFixture = b.addFixture(body, &shape, box.Material, box.Filter, box.IsTrigger)
	}
	if circle, ok := ecs.Get[component.CircleCollider](w, id); ok {
		shape := box2d.MakeB2CircleShape()
		shape.M_p = box2d.MakeB2Vec2(circle.Offset.X(), circle.Offset.Y())
		shape.M_radius = circle.Radius * tr.Scale.X()
		circle.RuntimeFixture = b.addFixture(body, &shape, circle.Material, circle.Filter, circle.IsTrigger)
	}
	return rb.RuntimeBody
}

func (b *Bridge) addFixture(body *box2d.B2Body, shape box2d.B2ShapeInterface, m component.Material, f component.Filter, sensor bool) component.FixtureHandle {
	fd := box2d.MakeB2FixtureDef()
	fd.Shape = shape
	fd.Density = m.Density
	fd.Friction = m.Friction
	fd.Restitution = m.Restitution
	fd.IsSensor = sensor
	fd.Filter.CategoryBits = f.CategoryBits
	fd.Filter.MaskBits = f.MaskBits

	return component.FixtureHandle(b.fixtures.put(body.CreateFixtureFromDef(&fd)))
}

// DestroyBody frees the engine body of id, if any, and clears its handles.
func (b *Bridge) DestroyBody(w *ecs.World, id ecs.EntityID) {
	rb, ok := ecs.Get[component.RigidBody](w, id)
	if !ok || b.world == nil {
		return
	}
	if box, ok := ecs.Get[component.BoxCollider](w, id); ok {
		b.fixtures.release(int(box.RuntimeFixture))
		box.RuntimeFixture = 0
	}
	if circle, ok := ecs.Get[component.CircleCollider](w, id); ok {
		b.fixtures.release(int(circle.RuntimeFixture))
		circle.RuntimeFixture = 0
	}
	if body := b.Body(rb.RuntimeBody); body != nil {
		b.world.DestroyBody(body)
		b.bodies.release(int(rb.RuntimeBody))
	}
	rb.RuntimeBody = 0
}

// Body resolves a handle; nil for empty or stale handles.
func (b *Bridge) Body(h component.BodyHandle) *box2d.B2Body {
	return b.bodies.get(int(h))
}

// Fixture resolves a handle; nil for empty or stale handles.
func (b *Bridge) Fixture(h component.FixtureHandle) *box2d.B2Fixture {
	return b.fixtures.get(int(h))
}

// Step clears the contact log and advances the world by whole fixed steps
// drawn from the accumulated frame time. Time beyond MaxStepsPerFrame steps
// is dropped, keeping only the sub-step remainder. It returns the number of
// steps taken.
func (b *Bridge) Step(dt time.Duration) int {
	if b.world == nil {
		return 0
	}
	b.contacts.Clear()
	b.accumulator += dt

	step := b.cfg.FixedTimestep
	steps := 0
	for b.accumulator >= step {
		if steps == b.cfg.MaxStepsPerFrame {
			b.accumulator %= step
			break
		}
		b.world.Step(step.Seconds(), b.cfg.VelocityIterations, b.cfg.PositionIterations)
		b.accumulator -= step
		steps++
	}
	return steps
}

// SyncTransforms copies body position and angle into each Transform.
func (b *Bridge) SyncTransforms(w *ecs.World) {
	ecs.Each2(ecs.Query[component.RigidBody](w), ecs.Query[component.Transform](w),
		func(_ ecs.EntityID, rb *component.RigidBody, tr *component.Transform) {
			body := b.Body(rb.RuntimeBody)
			if body == nil {
				return
			}
			pos := body.GetPosition()
			tr.Translation[0] = pos.X
			tr.Translation[1] = pos.Y
			tr.Rotation[2] = body.GetAngle()
		})
}

func (b *Bridge) SetLinearVelocity(h component.BodyHandle, v mgl64.Vec2) {
	if body := b.Body(h); body != nil {
		body.SetLinearVelocity(box2d.MakeB2Vec2(v.X(), v.Y()))
	}
}

func (b *Bridge) LinearVelocity(h component.BodyHandle) mgl64.Vec2 {
	body := b.Body(h)
	if body == nil {
		return mgl64.Vec2{}
	}
	v := body.GetLinearVelocity()
	return mgl64.Vec2{v.X, v.Y}
}

func (b *Bridge) SetGravityScale(h component.BodyHandle, scale float64) {
	if body := b.Body(h); body != nil {
		body.SetGravityScale(scale)
	}
}

// SetTransform teleports a body; used when scripts move an entity directly.
func (b *Bridge) SetTransform(h component.BodyHandle, pos mgl64.Vec2, angle float64) {
	if body := b.Body(h); body != nil {
		body.SetTransform(box2d.MakeB2Vec2(pos.X(), pos.Y()), angle)
	}
}

func bodyType(t component.BodyType) uint8 {
	switch t {
	case component.BodyDynamic:
		return box2d.B2BodyType.B2_dynamicBody
	case component.BodyKinematic:
		return box2d.B2BodyType.B2_kinematicBody
	}
	return box2d.B2BodyType.B2_staticBody
}
