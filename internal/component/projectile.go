package component

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Projectile moves along Direction until Lifetime runs out or, with
// DestroyOnHit, until it touches something.
type Projectile struct {
	Direction    mgl64.Vec2
	Speed        float64
	Lifetime     time.Duration
	Damage       float64
	DestroyOnHit bool
	Elapsed      time.Duration
}

// Velocity returns Direction scaled to Speed.
func (p *Projectile) Velocity() mgl64.Vec2 {
	if p.Direction.Len() == 0 {
		return mgl64.Vec2{}
	}
	return p.Direction.Normalize().Mul(p.Speed)
}

// ProjectileConfig describes how to spawn a projectile.
type ProjectileConfig struct {
	Speed        float64
	Lifetime     time.Duration
	Size         mgl64.Vec2
	Color        mgl64.Vec4
	Damage       float64
	DestroyOnHit bool
}

func DefaultProjectileConfig() ProjectileConfig {
	return ProjectileConfig{
		Speed:        15,
		Lifetime:     3 * time.Second,
		Size:         mgl64.Vec2{0.2, 0.2},
		Color:        mgl64.Vec4{1, 0.9, 0.3, 1},
		Damage:       10,
		DestroyOnHit: true,
	}
}
