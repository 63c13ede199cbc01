package physics

import "github.com/yuicy/engine/internal/core/ecs"

// Bodies carry their owning entity in the engine's user-data slot as a
// plain integer. These two functions are the only place that encoding lives.

func encodeUserData(id ecs.EntityID) interface{} {
	return uint64(id)
}

func decodeUserData(data interface{}) ecs.EntityID {
	if v, ok := data.(uint64); ok {
		return ecs.EntityID(v)
	}
	return ecs.NullEntity
}
