package data

import (
	"fmt"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/yuicy/engine/internal/component"
)

// ProjectileEntry is one projectile preset. Omitted fields keep the
// engine defaults.
type ProjectileEntry struct {
	Name         string    `yaml:"name"`
	Speed        *float64  `yaml:"speed"`
	Lifetime     *float64  `yaml:"lifetime"` // seconds
	Size         []float64 `yaml:"size"`     // [x, y]
	Color        []float64 `yaml:"color"`    // [r, g, b] or [r, g, b, a]
	Damage       *float64  `yaml:"damage"`
	DestroyOnHit *bool     `yaml:"destroy_on_hit"`
}

type projectileFile struct {
	Projectiles []ProjectileEntry `yaml:"projectiles"`
}

// ProjectileTable holds the named projectile presets.
type ProjectileTable struct {
	configs map[string]component.ProjectileConfig
}

// LoadProjectileTable loads projectiles.yaml.
func LoadProjectileTable(path string) (*ProjectileTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read projectile presets: %w", err)
	}
	var f projectileFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse projectile presets: %w", err)
	}
	t := &ProjectileTable{
		configs: make(map[string]component.ProjectileConfig, len(f.Projectiles)),
	}
	for i := range f.Projectiles {
		e := &f.Projectiles[i]
		if e.Name == "" {
			return nil, fmt.Errorf("projectile preset %d: missing name", i)
		}
		cfg, err := e.config()
		if err != nil {
			return nil, fmt.Errorf("projectile preset %q: %w", e.Name, err)
		}
		t.configs[e.Name] = cfg
	}
	return t, nil
}

func (e *ProjectileEntry) config() (component.ProjectileConfig, error) {
	cfg := component.DefaultProjectileConfig()
	if e.Speed != nil {
		cfg.Speed = *e.Speed
	}
	if e.Lifetime != nil {
		if *e.Lifetime <= 0 {
			return cfg, fmt.Errorf("lifetime must be positive, got %v", *e.Lifetime)
		}
		cfg.Lifetime = time.Duration(*e.Lifetime * float64(time.Second))
	}
	switch len(e.Size) {
	case 0:
	case 2:
		cfg.Size = mgl64.Vec2{e.Size[0], e.Size[1]}
	default:
		return cfg, fmt.Errorf("size wants 2 values, got %d", len(e.Size))
	}
	switch len(e.Color) {
	case 0:
	case 3:
		cfg.Color = mgl64.Vec4{e.Color[0], e.Color[1], e.Color[2], 1}
	case 4:
		cfg.Color = mgl64.Vec4{e.Color[0], e.Color[1], e.Color[2], e.Color[3]}
	default:
		return cfg, fmt.Errorf("color wants 3 or 4 values, got %d", len(e.Color))
	}
	if e.Damage != nil {
		cfg.Damage = *e.Damage
	}
	if e.DestroyOnHit != nil {
		cfg.DestroyOnHit = *e.DestroyOnHit
	}
	return cfg, nil
}

// Config returns the named preset, or the defaults and false.
func (t *ProjectileTable) Config(name string) (component.ProjectileConfig, bool) {
	cfg, ok := t.configs[name]
	if !ok {
		return component.DefaultProjectileConfig(), false
	}
	return cfg, true
}

// Count returns the number of presets loaded.
func (t *ProjectileTable) Count() int {
	return len(t.configs)
}
