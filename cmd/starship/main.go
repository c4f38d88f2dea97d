package main

import (
	"flag"
	"log"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-starship/pkg/config"
	"github.com/leterax/go-starship/pkg/logger"
	"github.com/leterax/go-starship/pkg/render"
)

func init() {
	// This is needed to ensure that OpenGL functions are called from the same thread
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "Path to YAML config (empty for defaults)")
	width := flag.Int("width", 0, "Window width (overrides config)")
	height := flag.Int("height", 0, "Window height (overrides config)")
	logLevel := flag.String("loglevel", "", "Log level: debug, info, warn, error (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *width > 0 {
		cfg.Window.Width = *width
	}
	if *height > 0 {
		cfg.Window.Height = *height
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	lg := logger.Init(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	lg.Info("Starting Go-Starship",
		"config", *configPath,
		"width", cfg.Window.Width,
		"height", cfg.Window.Height,
		"snap_roll", cfg.Flight.SnapRollToZero,
	)

	renderer, err := render.NewRenderer(cfg, lg)
	if err != nil {
		log.Fatalf("Failed to initialize renderer: %v", err)
	}

	// Start off the origin so the first view already shows depth in the field
	renderer.SetShipPosition(mgl32.Vec3{0, 25, 35})
	renderer.SetShipLookAt(mgl32.Vec3{0, 0, 0})

	renderer.Run()
}
