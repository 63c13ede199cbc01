package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/profile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yuicy/engine/internal/config"
	"github.com/yuicy/engine/internal/data"
	"github.com/yuicy/engine/internal/render"
	"github.com/yuicy/engine/internal/scene"
	"github.com/yuicy/engine/internal/scripting"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgFlag := flag.String("config", "", "path to engine.toml (default $YUICY_CONFIG or config/engine.toml)")
	frames := flag.Int("frames", 600, "frames to simulate; 0 runs until interrupted")
	headless := flag.Bool("headless", false, "simulate without drawing to the terminal")
	flag.Parse()

	// 1. Load config
	cfgPath := "config/engine.toml"
	if p := os.Getenv("YUICY_CONFIG"); p != "" {
		cfgPath = p
	}
	if *cfgFlag != "" {
		cfgPath = *cfgFlag
	}
	cfg, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) && *cfgFlag == "" {
		cfg, err = config.Default(), nil
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger. The terminal owns stdout while drawing.
	log, err := newLogger(cfg.Logging, *headless)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	switch cfg.Profile.Mode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(cfg.Profile.Path), profile.NoShutdownHook, profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(cfg.Profile.Path), profile.NoShutdownHook, profile.Quiet).Stop()
	}

	// 3. Load projectile presets
	presets, err := data.LoadProjectileTable(cfg.Data.Projectiles)
	if err != nil {
		log.Warn("projectile presets unavailable, using defaults", zap.Error(err))
	} else {
		log.Info("projectile presets loaded", zap.Int("count", presets.Count()))
	}

	// 4. Scripting engine, shared by every scene
	engine := scripting.NewEngine(log)
	defer engine.Close()

	// 5. Renderer
	var (
		renderer render.Renderer = render.Nop{}
		screen   tcell.Screen
	)
	if !*headless {
		screen, err = tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		defer screen.Fini()
		renderer = render.NewTerminalRenderer(screen)
	}

	// 6. Scene
	s := scene.New(cfg.Physics.Bridge(), engine, renderer, log)
	defer s.Close()
	ball := buildDemo(s, cfg, presets, log)
	s.AddSystem(&ballReporter{ball: ball, interval: time.Second, log: log})

	width, height := cfg.Render.ViewportWidth, cfg.Render.ViewportHeight
	if screen != nil {
		w, h := screen.Size()
		width, height = uint32(w), uint32(h)
	}
	// Terminal cells are about twice as tall as wide.
	s.OnViewportResize(width, height*2)
	s.OnRuntimeStart()

	// 7. Frame loop
	step := cfg.Physics.FixedTimestep
	quit := make(chan struct{})
	pause := make(chan struct{}, 1)
	resize := make(chan [2]int, 1)
	if screen != nil {
		go pollTerminal(screen, quit, pause, resize)
	}
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(step)
	defer ticker.Stop()

	paused := false
	for frame := 0; *frames == 0 || frame < *frames; {
		if screen != nil {
			select {
			case <-ticker.C:
			case size := <-resize:
				s.OnViewportResize(uint32(size[0]), uint32(size[1]*2))
				continue
			case <-pause:
				paused = !paused
				log.Info("simulation paused", zap.Bool("paused", paused))
				continue
			case <-quit:
				return nil
			case sig := <-shutdownCh:
				log.Info("shutdown signal", zap.String("signal", sig.String()))
				return nil
			}
		} else {
			select {
			case sig := <-shutdownCh:
				log.Info("shutdown signal", zap.String("signal", sig.String()))
				return nil
			default:
			}
		}

		if paused {
			s.OnRender()
			continue
		}
		s.OnUpdateRuntime(step)
		frame++
	}
	return nil
}

// pollTerminal forwards key and resize events until Esc or q is pressed.
// p toggles pause.
func pollTerminal(screen tcell.Screen, quit, pause chan<- struct{}, resize chan<- [2]int) {
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				close(quit)
				return
			}
			if ev.Rune() == 'p' {
				select {
				case pause <- struct{}{}:
				default:
				}
			}
		case *tcell.EventResize:
			w, h := ev.Size()
			select {
			case resize <- [2]int{w, h}:
			default:
			}
		}
	}
}

func newLogger(cfg config.LoggingConfig, headless bool) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if !headless {
		zapCfg.OutputPaths = []string{"yuicy.log"}
		zapCfg.ErrorOutputPaths = []string{"yuicy.log"}
	}

	return zapCfg.Build()
}
