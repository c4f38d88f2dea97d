package openglhelper

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-starship/pkg/flight"
)

// Window handles GLFW window creation and management
type Window struct {
	glfwWindow *glfw.Window
	title      string

	// Key subscribers, in subscription order
	keyHandlers []keySubscription
	nextKeyID   int
}

type keySubscription struct {
	id      int
	handler flight.KeyHandler
}

// Compile-time check that the window can feed the flight controller
var _ flight.KeySource = (*Window)(nil)

// NewWindow creates a new GLFW window with OpenGL context
func NewWindow(width, height int, title string, vsync bool) (*Window, error) {
	// Initialize GLFW
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// Configure GLFW
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	glfwWindow, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}

	glfwWindow.MakeContextCurrent()
	if vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	slog.Info("OpenGL initialized", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	// Configure global OpenGL state
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.PROGRAM_POINT_SIZE)

	w := &Window{
		glfwWindow: glfwWindow,
		title:      title,
	}
	glfwWindow.SetKeyCallback(w.keyCallback)

	return w, nil
}

// keyCallback fans GLFW key events out to every subscriber.
// GLFW invokes it from PollEvents on the main thread.
func (w *Window) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	k, a := flight.Key(key), flight.KeyAction(action)
	for _, sub := range w.keyHandlers {
		sub.handler(k, a)
	}
}

// Subscribe registers a key handler and returns a function that removes it
func (w *Window) Subscribe(handler flight.KeyHandler) func() {
	id := w.nextKeyID
	w.nextKeyID++
	w.keyHandlers = append(w.keyHandlers, keySubscription{id: id, handler: handler})

	// Rebuild rather than splice so a dispatch in progress keeps its slice intact
	return func() {
		kept := make([]keySubscription, 0, len(w.keyHandlers))
		for _, sub := range w.keyHandlers {
			if sub.id != id {
				kept = append(kept, sub)
			}
		}
		w.keyHandlers = kept
	}
}

// Clear clears the color and depth buffers
func (w *Window) Clear(color mgl32.Vec4) {
	gl.ClearColor(color.X(), color.Y(), color.Z(), color.W())
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// SwapBuffers swaps the front and back buffers
func (w *Window) SwapBuffers() {
	w.glfwWindow.SwapBuffers()
}

// PollEvents processes pending events
func (w *Window) PollEvents() {
	glfw.PollEvents()
}

// ShouldClose returns whether the window should close
func (w *Window) ShouldClose() bool {
	return w.glfwWindow.ShouldClose()
}

// SetShouldClose asks the main loop to stop
func (w *Window) SetShouldClose(value bool) {
	w.glfwWindow.SetShouldClose(value)
}

// Close releases all resources
func (w *Window) Close() {
	w.keyHandlers = nil
	glfw.Terminate()
}

// Title returns the current window title
func (w *Window) Title() string {
	return w.title
}

// SetTitle sets the window title
func (w *Window) SetTitle(title string) {
	w.title = title
	w.glfwWindow.SetTitle(title)
}

// OnResize is called when the framebuffer is resized
func (w *Window) OnResize(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// GLFWWindow returns the underlying GLFW window
func (w *Window) GLFWWindow() *glfw.Window {
	return w.glfwWindow
}

// SetMouseCaptured captures or releases the mouse cursor
func (w *Window) SetMouseCaptured(captured bool) {
	if captured {
		w.glfwWindow.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		w.glfwWindow.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}
