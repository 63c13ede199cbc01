package physics

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/yuicy/engine/internal/component"
	"github.com/yuicy/engine/internal/core/ecs"
)

func newTestBridge(gravity mgl64.Vec2) *Bridge {
	cfg := DefaultConfig()
	cfg.Gravity = gravity
	return NewBridge(cfg, zap.NewNop())
}

func addFloor(w *ecs.World) ecs.EntityID {
	id := w.CreateEntity()
	tr := component.NewTransform(mgl64.Vec3{})
	tr.Scale = mgl64.Vec3{20, 1, 1}
	ecs.Add(w, id, tr)
	ecs.Add(w, id, component.RigidBody{Type: component.BodyStatic})
	ecs.Add(w, id, component.NewBoxCollider(mgl64.Vec2{10, 0.5}))
	return id
}

func addBall(w *ecs.World, y float64) ecs.EntityID {
	id := w.CreateEntity()
	ecs.Add(w, id, component.NewTransform(mgl64.Vec3{0, y, 0}))
	ecs.Add(w, id, component.RigidBody{Type: component.BodyDynamic})
	ecs.Add(w, id, component.NewCircleCollider(0.5))
	return id
}

func TestBallSettlesOnFloor(t *testing.T) {
	w := ecs.NewWorld()
	addFloor(w)
	ball := addBall(w, 10)

	b := newTestBridge(mgl64.Vec2{0, -9.8})
	b.Start(w)
	defer b.Stop(w)

	tr := ecs.MustGet[component.Transform](w, ball)
	for i := 0; i < 300; i++ {
		b.Step(time.Second / 60)
		b.SyncTransforms(w)
		if y := tr.Translation.Y(); y < 0.95 {
			t.Fatalf("frame %d: ball sank to y=%.3f", i, y)
		}
	}
	if y := tr.Translation.Y(); math.Abs(y-1.0) > 0.05 {
		t.Fatalf("ball rest height = %.3f, want ~1.0", y)
	}
}

func TestZeroGravityLeavesTransform(t *testing.T) {
	w := ecs.NewWorld()
	ball := addBall(w, 3)

	b := newTestBridge(mgl64.Vec2{})
	b.Start(w)
	for i := 0; i < 60; i++ {
		b.Step(time.Second / 60)
		b.SyncTransforms(w)
	}
	got := ecs.MustGet[component.Transform](w, ball).Translation
	if math.Abs(got.X()) > 1e-9 || math.Abs(got.Y()-3) > 1e-9 {
		t.Fatalf("translation = %v, want (0,3)", got)
	}
}

func TestStepAccumulator(t *testing.T) {
	w := ecs.NewWorld()
	b := newTestBridge(mgl64.Vec2{})
	if n := b.Step(time.Second); n != 0 {
		t.Fatalf("steps before Start = %d, want 0", n)
	}
	b.Start(w)

	if n := b.Step(time.Second / 120); n != 0 {
		t.Fatalf("half step ran %d steps", n)
	}
	if n := b.Step(time.Second / 120); n != 1 {
		t.Fatalf("two half steps ran %d steps, want 1", n)
	}
	if n := b.Step(time.Second); n != b.Config().MaxStepsPerFrame {
		t.Fatalf("long frame ran %d steps, want cap %d", n, b.Config().MaxStepsPerFrame)
	}
	if b.accumulator >= b.Config().FixedTimestep {
		t.Fatalf("accumulator %v not trimmed below one step", b.accumulator)
	}
}

func TestSensorOverlapRecordsTrigger(t *testing.T) {
	w := ecs.NewWorld()
	zone := w.CreateEntity()
	ecs.Add(w, zone, component.NewTransform(mgl64.Vec3{}))
	ecs.Add(w, zone, component.RigidBody{Type: component.BodyStatic})
	box := component.NewBoxCollider(mgl64.Vec2{1, 1})
	box.IsTrigger = true
	ecs.Add(w, zone, box)
	ball := addBall(w, 0)

	b := newTestBridge(mgl64.Vec2{})
	b.Start(w)
	b.Step(time.Second / 60)

	begins := b.Contacts().Begins()
	if len(begins) != 1 {
		t.Fatalf("begins = %d, want 1", len(begins))
	}
	c := begins[0]
	if !c.Sensor() {
		t.Fatal("contact not flagged as sensor")
	}
	if !(c.A == zone && c.B == ball) && !(c.A == ball && c.B == zone) {
		t.Fatalf("contact entities = %v/%v", c.A, c.B)
	}
}

func TestStopClearsHandles(t *testing.T) {
	w := ecs.NewWorld()
	floor := addFloor(w)
	ball := addBall(w, 2)

	b := newTestBridge(mgl64.Vec2{0, -9.8})
	b.Start(w)
	if ecs.MustGet[component.RigidBody](w, ball).RuntimeBody == 0 {
		t.Fatal("ball has no body after Start")
	}
	b.Stop(w)
	b.Stop(w)

	if b.Running() {
		t.Fatal("bridge still running after Stop")
	}
	if h := ecs.MustGet[component.RigidBody](w, ball).RuntimeBody; h != 0 {
		t.Fatalf("ball body handle = %d after Stop", h)
	}
	if h := ecs.MustGet[component.BoxCollider](w, floor).RuntimeFixture; h != 0 {
		t.Fatalf("floor fixture handle = %d after Stop", h)
	}
	if h := ecs.MustGet[component.CircleCollider](w, ball).RuntimeFixture; h != 0 {
		t.Fatalf("ball fixture handle = %d after Stop", h)
	}
	if !w.Alive(ball) || !w.Alive(floor) {
		t.Fatal("Stop destroyed entities")
	}
}

func TestInvalidBodyTypePanics(t *testing.T) {
	w := ecs.NewWorld()
	id := w.CreateEntity()
	ecs.Add(w, id, component.NewTransform(mgl64.Vec3{}))
	ecs.Add(w, id, component.RigidBody{Type: component.BodyType(9)})

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for invalid body type")
		}
	}()
	newTestBridge(mgl64.Vec2{}).Start(w)
}

func TestDestroyBody(t *testing.T) {
	w := ecs.NewWorld()
	ball := addBall(w, 2)
	b := newTestBridge(mgl64.Vec2{})
	b.Start(w)

	h := ecs.MustGet[component.RigidBody](w, ball).RuntimeBody
	b.DestroyBody(w, ball)
	if b.Body(h) != nil {
		t.Fatal("body still resolvable after DestroyBody")
	}
	if ecs.MustGet[component.RigidBody](w, ball).RuntimeBody != 0 {
		t.Fatal("handle not cleared")
	}
}

func TestDestroyedSlotsAreReused(t *testing.T) {
	w := ecs.NewWorld()
	b := newTestBridge(mgl64.Vec2{})
	b.Start(w)

	for i := 0; i < 20; i++ {
		id := addBall(w, float64(i))
		b.CreateBody(w, id)
		b.DestroyBody(w, id)
		w.DestroyEntity(id)
	}
	if n := len(b.bodies.items); n != 1 {
		t.Fatalf("body table grew to %d slots, want 1", n)
	}
	if n := len(b.fixtures.items); n != 1 {
		t.Fatalf("fixture table grew to %d slots, want 1", n)
	}
	if b.BodyCount() != 0 {
		t.Fatalf("live bodies = %d, want 0", b.BodyCount())
	}

	keep := addBall(w, 3)
	h := b.CreateBody(w, keep)
	if b.BodyCount() != 1 || b.Body(h) == nil {
		t.Fatalf("live bodies = %d after reuse", b.BodyCount())
	}
}

func TestRaycastHitsFloor(t *testing.T) {
	w := ecs.NewWorld()
	floor := addFloor(w)
	b := newTestBridge(mgl64.Vec2{})
	b.Start(w)

	res := b.Raycast(mgl64.Vec2{0, 5}, mgl64.Vec2{0, -5}, component.LayerAll)
	if !res.Hit {
		t.Fatal("ray missed the floor")
	}
	if res.Entity != floor {
		t.Fatalf("hit entity = %v, want %v", res.Entity, floor)
	}
	if math.Abs(res.Point.Y()-0.5) > 1e-6 {
		t.Fatalf("hit point = %v, want y=0.5", res.Point)
	}
	if res.Normal.Y() < 0.99 {
		t.Fatalf("normal = %v, want up", res.Normal)
	}

	if b.Raycast(mgl64.Vec2{0, 5}, mgl64.Vec2{0, -5}, component.LayerPlayer).Hit {
		t.Fatal("ray hit a fixture outside the mask")
	}
	if !b.HasLineOfSight(mgl64.Vec2{-1, 5}, mgl64.Vec2{1, 5}, component.LayerAll) {
		t.Fatal("clear sight line reported blocked")
	}
	if b.Raycast(mgl64.Vec2{1, 1}, mgl64.Vec2{1, 1}, component.LayerAll).Hit {
		t.Fatal("zero-length ray reported a hit")
	}
}

func TestVelocityControls(t *testing.T) {
	w := ecs.NewWorld()
	ball := addBall(w, 0)
	b := newTestBridge(mgl64.Vec2{0, -9.8})
	b.Start(w)

	h := ecs.MustGet[component.RigidBody](w, ball).RuntimeBody
	b.SetGravityScale(h, 0)
	b.SetLinearVelocity(h, mgl64.Vec2{6, 0})
	for i := 0; i < 30; i++ {
		b.Step(time.Second / 60)
	}
	b.SyncTransforms(w)

	if v := b.LinearVelocity(h); math.Abs(v.X()-6) > 1e-6 || math.Abs(v.Y()) > 1e-6 {
		t.Fatalf("velocity = %v, want (6,0)", v)
	}
	if x := ecs.MustGet[component.Transform](w, ball).Translation.X(); math.Abs(x-3) > 0.01 {
		t.Fatalf("x after 0.5s = %.3f, want ~3", x)
	}
}

type routed struct {
	kind        ContactKind
	self, other ecs.EntityID
}

type fakeRouter struct{ calls []routed }

func (f *fakeRouter) RouteContact(kind ContactKind, self, other ecs.EntityID) {
	f.calls = append(f.calls, routed{kind, self, other})
}

func TestDispatchRoutesBothSides(t *testing.T) {
	a, b, c := ecs.NewEntityID(1, 1), ecs.NewEntityID(2, 1), ecs.NewEntityID(3, 1)
	r := NewContactRecorder()
	r.begins = append(r.begins, Contact{A: a, B: b}, Contact{A: a, B: c, SensorB: true})
	r.ends = append(r.ends, Contact{A: b, B: a})

	f := &fakeRouter{}
	r.Dispatch(func(ecs.EntityID) bool { return true }, f)

	want := []routed{
		{CollisionEnter, a, b}, {CollisionEnter, b, a},
		{TriggerEnter, a, c}, {TriggerEnter, c, a},
		{CollisionExit, b, a}, {CollisionExit, a, b},
	}
	if len(f.calls) != len(want) {
		t.Fatalf("calls = %v", f.calls)
	}
	for i := range want {
		if f.calls[i] != want[i] {
			t.Fatalf("call %d = %+v, want %+v", i, f.calls[i], want[i])
		}
	}
}

func TestDispatchSkipsDeadEntities(t *testing.T) {
	a, b := ecs.NewEntityID(1, 1), ecs.NewEntityID(2, 1)
	r := NewContactRecorder()
	r.begins = append(r.begins, Contact{A: a, B: b})

	f := &fakeRouter{}
	r.Dispatch(func(id ecs.EntityID) bool { return id != b }, f)
	if len(f.calls) != 0 {
		t.Fatalf("dead pair routed: %v", f.calls)
	}
}

func TestContactKindNames(t *testing.T) {
	if CollisionEnter.String() != "OnCollisionEnter" || TriggerExit.String() != "OnTriggerExit" {
		t.Fatal("unexpected hook names")
	}
}
