package event

import "github.com/yuicy/engine/internal/core/ecs"

// ContactBegan is emitted once per begin-contact pair after collision dispatch.
type ContactBegan struct {
	A, B             ecs.EntityID
	SensorA, SensorB bool
}

// ContactEnded is emitted once per end-contact pair after collision dispatch.
type ContactEnded struct {
	A, B             ecs.EntityID
	SensorA, SensorB bool
}
