package render

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-starship/internal/openglhelper"
	"github.com/leterax/go-starship/pkg/config"
	"github.com/leterax/go-starship/pkg/flight"
	"github.com/leterax/go-starship/pkg/transform"
)

// Renderer owns the window and scene and drives the flight controller once per frame
type Renderer struct {
	window     *openglhelper.Window
	camera     *Camera
	ship       *transform.Transform
	starfield  *Starfield
	menu       *Menu
	controller *flight.Controller
	logger     *slog.Logger

	unsubscribe func()

	// Timing
	frames     int
	lastFPSLog float64
	isClosed   bool
}

// NewRenderer creates the window, the scene and the flight controller from cfg
func NewRenderer(cfg *config.Config, logger *slog.Logger) (*Renderer, error) {
	window, err := openglhelper.NewWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, cfg.Window.VSync)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	width, height := window.GLFWWindow().GetFramebufferSize()
	window.OnResize(width, height)

	ship := transform.NewTransform(mgl32.Vec3{0, 0, 0})
	stars := transform.NewAnchor(ship.Position())

	starfield, err := NewStarfield(stars, cfg.Starfield.Count, cfg.Starfield.Radius, cfg.Starfield.Seed, cfg.Starfield.PointSize)
	if err != nil {
		window.Close()
		return nil, fmt.Errorf("failed to create starfield: %w", err)
	}

	menu := NewMenu(window, logger)
	controller, err := flight.NewController(ship, stars,
		flight.WithTuning(cfg.Flight),
		flight.WithKeySource(window),
		flight.WithMenuToggle(menu.Toggle),
		flight.WithLogger(logger.With("component", "flight")),
	)
	if err != nil {
		starfield.Delete()
		window.Close()
		return nil, err
	}

	r := &Renderer{
		window:     window,
		camera:     NewCamera(ship, width, height),
		ship:       ship,
		starfield:  starfield,
		menu:       menu,
		controller: controller,
		logger:     logger,
	}

	r.unsubscribe = window.Subscribe(r.handleKey)
	window.GLFWWindow().SetFramebufferSizeCallback(r.framebufferSizeCallback)
	window.SetMouseCaptured(true)

	logger.Info("Renderer ready", "width", width, "height", height, "stars", cfg.Starfield.Count)
	return r, nil
}

// SetShipPosition places the ship and its starfield
func (r *Renderer) SetShipPosition(pos mgl32.Vec3) {
	r.ship.SetPosition(pos)
	r.starfield.anchor.SetPosition(pos)
}

// SetShipLookAt points the ship at target
func (r *Renderer) SetShipLookAt(target mgl32.Vec3) {
	r.ship.LookAt(target, WorldUp)
}

// Run starts the main loop and returns when the window is closed
func (r *Renderer) Run() {
	r.lastFPSLog = glfw.GetTime()

	for !r.window.ShouldClose() {
		r.window.PollEvents()

		r.controller.Tick()

		r.window.Clear(ClearColor)
		r.starfield.Draw(r.camera, r.menu.Dim())
		r.window.SwapBuffers()

		r.logFrameStats()
	}

	r.Cleanup()
}

func (r *Renderer) logFrameStats() {
	now := glfw.GetTime()
	r.frames++

	if elapsed := now - r.lastFPSLog; elapsed >= FPSLogInterval {
		r.logger.Debug("Frame stats",
			"fps", float64(r.frames)/elapsed,
			"speed", r.controller.Velocity().Len(),
			"position", r.ship.Position(),
		)
		r.frames = 0
		r.lastFPSLog = now
	}
}

// Cleanup frees all resources
func (r *Renderer) Cleanup() {
	if r.isClosed {
		return
	}
	r.isClosed = true

	r.controller.Close()
	r.unsubscribe()
	r.starfield.Delete()
	r.window.Close()
}

// handleKey handles keys the flight controller does not own
func (r *Renderer) handleKey(key flight.Key, action flight.KeyAction) {
	if action != flight.KeyPress {
		return
	}
	if r.menu.Visible() && key == flight.Key(glfw.KeyEnter) {
		r.logger.Info("Quit requested")
		r.window.SetShouldClose(true)
	}
}

func (r *Renderer) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	r.window.OnResize(width, height)
	r.camera.UpdateProjectionMatrix(width, height)
}
