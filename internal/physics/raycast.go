package physics

import (
	"github.com/ByteArena/box2d"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/yuicy/engine/internal/component"
	"github.com/yuicy/engine/internal/core/ecs"
)

// RaycastResult is the closest non-sensor hit along a ray.
type RaycastResult struct {
	Hit      bool
	Point    mgl64.Vec2
	Normal   mgl64.Vec2
	Fraction float64
	Entity   ecs.EntityID
}

// Raycast finds the closest fixture between start and end whose category
// overlaps mask. Sensors are ignored.
func (b *Bridge) Raycast(start, end mgl64.Vec2, mask uint16) RaycastResult {
	res := RaycastResult{Fraction: 1}
	if b.world == nil || start == end {
		return res
	}

	b.world.RayCast(func(fixture *box2d.B2Fixture, point, normal box2d.B2Vec2, fraction float64) float64 {
		if fixture.IsSensor() {
			return -1
		}
		if fixture.GetFilterData().CategoryBits&mask == 0 {
			return -1
		}
		if fraction < res.Fraction || !res.Hit {
			res.Hit = true
			res.Point = mgl64.Vec2{point.X, point.Y}
			res.Normal = mgl64.Vec2{normal.X, normal.Y}
			res.Fraction = fraction
			res.Entity = decodeUserData(fixture.GetBody().GetUserData())
		}
		return fraction
	}, box2d.MakeB2Vec2(start.X(), start.Y()), box2d.MakeB2Vec2(end.X(), end.Y()))

	return res
}

// HasLineOfSight reports whether nothing on mask blocks from→to.
func (b *Bridge) HasLineOfSight(from, to mgl64.Vec2, mask uint16) bool {
	return !b.Raycast(from, to, mask).Hit
}

// DefaultSightMask is what blocks line of sight when callers do not say.
const DefaultSightMask = component.LayerGround
