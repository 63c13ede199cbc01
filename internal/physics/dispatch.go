package physics

import "github.com/yuicy/engine/internal/core/ecs"

// ContactKind classifies a routed contact.
type ContactKind int

const (
	CollisionEnter ContactKind = iota
	CollisionExit
	TriggerEnter
	TriggerExit
)

func (k ContactKind) String() string {
	switch k {
	case CollisionEnter:
		return "OnCollisionEnter"
	case CollisionExit:
		return "OnCollisionExit"
	case TriggerEnter:
		return "OnTriggerEnter"
	case TriggerExit:
		return "OnTriggerExit"
	}
	return "unknown"
}

// ContactRouter receives one call per side of every recorded contact.
// self is the entity being told, other is the entity it touched.
type ContactRouter interface {
	RouteContact(kind ContactKind, self, other ecs.EntityID)
}

// Dispatch routes every recorded contact to router, both sides, A first.
// Pairs where either entity is no longer alive are skipped. Contacts
// recorded while dispatching (for example by a body being destroyed) are
// left for the next Clear.
func (r *ContactRecorder) Dispatch(alive func(ecs.EntityID) bool, router ContactRouter) {
	n := len(r.begins)
	for i := 0; i < n; i++ {
		c := r.begins[i]
		kind := CollisionEnter
		if c.Sensor() {
			kind = TriggerEnter
		}
		routePair(alive, router, kind, c)
	}
	n = len(r.ends)
	for i := 0; i < n; i++ {
		c := r.ends[i]
		kind := CollisionExit
		if c.Sensor() {
			kind = TriggerExit
		}
		routePair(alive, router, kind, c)
	}
}

func routePair(alive func(ecs.EntityID) bool, router ContactRouter, kind ContactKind, c Contact) {
	if !alive(c.A) || !alive(c.B) {
		return
	}
	router.RouteContact(kind, c.A, c.B)
	if !alive(c.A) || !alive(c.B) {
		return
	}
	router.RouteContact(kind, c.B, c.A)
}
