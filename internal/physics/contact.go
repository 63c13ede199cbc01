package physics

import (
	"github.com/ByteArena/box2d"
	"github.com/yuicy/engine/internal/core/ecs"
)

// Contact is one begin or end notification between two bodies.
type Contact struct {
	A, B             ecs.EntityID
	SensorA, SensorB bool
}

// Sensor reports whether either side is a trigger fixture.
func (c Contact) Sensor() bool { return c.SensorA || c.SensorB }

// ContactRecorder is the per-step contact log. The simulator calls it
// synchronously from inside Step.
type ContactRecorder struct {
	begins []Contact
	ends   []Contact
}

func NewContactRecorder() *ContactRecorder {
	return &ContactRecorder{
		begins: make([]Contact, 0, 32),
		ends:   make([]Contact, 0, 32),
	}
}

func (r *ContactRecorder) BeginContact(contact box2d.B2ContactInterface) {
	r.begins = append(r.begins, contactFrom(contact))
}

func (r *ContactRecorder) EndContact(contact box2d.B2ContactInterface) {
	r.ends = append(r.ends, contactFrom(contact))
}

func (r *ContactRecorder) PreSolve(contact box2d.B2ContactInterface, oldManifold box2d.B2Manifold) {}

func (r *ContactRecorder) PostSolve(contact box2d.B2ContactInterface, impulse *box2d.B2ContactImpulse) {}

func (r *ContactRecorder) Begins() []Contact { return r.begins }
func (r *ContactRecorder) Ends() []Contact   { return r.ends }

// Clear empties both streams, keeping capacity.
func (r *ContactRecorder) Clear() {
	r.begins = r.begins[:0]
	r.ends = r.ends[:0]
}

func contactFrom(contact box2d.B2ContactInterface) Contact {
	fa, fb := contact.GetFixtureA(), contact.GetFixtureB()
	return Contact{
		A:       decodeUserData(fa.GetBody().GetUserData()),
		B:       decodeUserData(fb.GetBody().GetUserData()),
		SensorA: fa.IsSensor(),
		SensorB: fb.IsSensor(),
	}
}
