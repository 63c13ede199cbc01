package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/yuicy/engine/internal/physics"
)

type Config struct {
	Physics   PhysicsConfig   `toml:"physics"`
	Scripting ScriptingConfig `toml:"scripting"`
	Render    RenderConfig    `toml:"render"`
	Data      DataConfig      `toml:"data"`
	Logging   LoggingConfig   `toml:"logging"`
	Profile   ProfileConfig   `toml:"profile"`
}

type PhysicsConfig struct {
	GravityX           float64       `toml:"gravity_x"`
	GravityY           float64       `toml:"gravity_y"`
	FixedTimestep      time.Duration `toml:"fixed_timestep"`
	MaxStepsPerFrame   int           `toml:"max_steps_per_frame"`
	VelocityIterations int           `toml:"velocity_iterations"`
	PositionIterations int           `toml:"position_iterations"`
}

// Bridge converts the section into the physics bridge settings.
func (p PhysicsConfig) Bridge() physics.Config {
	return physics.Config{
		Gravity:            mgl64.Vec2{p.GravityX, p.GravityY},
		FixedTimestep:      p.FixedTimestep,
		MaxStepsPerFrame:   p.MaxStepsPerFrame,
		VelocityIterations: p.VelocityIterations,
		PositionIterations: p.PositionIterations,
	}
}

type ScriptingConfig struct {
	ScriptsDir string `toml:"scripts_dir"`
}

type RenderConfig struct {
	ViewportWidth  uint32 `toml:"viewport_width"`
	ViewportHeight uint32 `toml:"viewport_height"`
}

type DataConfig struct {
	Projectiles string `toml:"projectiles"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type ProfileConfig struct {
	Mode string `toml:"mode"` // "", "cpu" or "mem"
	Path string `toml:"path"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in configuration used when no file is given.
func Default() *Config { return defaults() }

func (c *Config) validate() error {
	if c.Physics.FixedTimestep <= 0 {
		return fmt.Errorf("physics.fixed_timestep must be positive, got %s", c.Physics.FixedTimestep)
	}
	if c.Physics.MaxStepsPerFrame <= 0 {
		return fmt.Errorf("physics.max_steps_per_frame must be positive, got %d", c.Physics.MaxStepsPerFrame)
	}
	switch c.Profile.Mode {
	case "", "cpu", "mem":
	default:
		return fmt.Errorf("profile.mode %q: want cpu, mem or empty", c.Profile.Mode)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Physics: PhysicsConfig{
			GravityY:           -9.8,
			FixedTimestep:      time.Second / 60,
			MaxStepsPerFrame:   8,
			VelocityIterations: 6,
			PositionIterations: 2,
		},
		Scripting: ScriptingConfig{
			ScriptsDir: "scripts",
		},
		Render: RenderConfig{
			ViewportWidth:  80,
			ViewportHeight: 40,
		},
		Data: DataConfig{
			Projectiles: "data/projectiles.yaml",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Profile: ProfileConfig{
			Path: ".",
		},
	}
}
