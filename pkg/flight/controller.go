// Package flight implements the keyboard-driven flight controller of the ship.
// The controller accumulates turn rates and a velocity from held inputs and
// applies them to a viewpoint, and to a companion that moves in lock-step, once per frame.
package flight

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
)

// Positioner is anything with a world-space position
type Positioner interface {
	Position() mgl32.Vec3
	SetPosition(pos mgl32.Vec3)
}

// Viewpoint is the transform flown by the controller
type Viewpoint interface {
	Positioner

	// RotateOnAxis rotates about an axis given in the viewpoint's local frame
	RotateOnAxis(axis mgl32.Vec3, angle float32)

	// Basis returns the local forward, right and up axes in world space
	Basis() (forward, right, up mgl32.Vec3)
}

// Companion is translated by the same displacement as the viewpoint every tick
type Companion interface {
	Positioner
}

// KeyHandler receives raw key events
type KeyHandler func(key Key, action KeyAction)

// KeySource delivers key events to subscribers
type KeySource interface {
	Subscribe(handler KeyHandler) (unsubscribe func())
}

// MenuToggler flips the visibility of the menu panel
type MenuToggler func()

// Controller is the flight state machine. It is not safe for concurrent use:
// Tick and the key handlers must run on the same thread, as GLFW callbacks do.
type Controller struct {
	view      Viewpoint
	companion Companion

	tuning Tuning
	pitch  AxisRate
	yaw    AxisRate
	roll   AxisRate

	velocity mgl32.Vec3
	inputs   InputState

	keys        KeySource
	unsubscribe func()
	toggleMenu  MenuToggler
	logger      *slog.Logger
}

// Option configures a Controller
type Option func(*Controller)

// WithTuning replaces the default tuning
func WithTuning(t Tuning) Option {
	return func(c *Controller) {
		c.tuning = t
	}
}

// WithKeySource subscribes the controller's key handlers to src
func WithKeySource(src KeySource) Option {
	return func(c *Controller) {
		c.keys = src
	}
}

// WithMenuToggle sets the callback run when the menu key is pressed
func WithMenuToggle(toggle MenuToggler) Option {
	return func(c *Controller) {
		c.toggleMenu = toggle
	}
}

// WithLogger sets the logger used for input edges
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// NewController creates a controller at rest with every input released
func NewController(view Viewpoint, companion Companion, opts ...Option) (*Controller, error) {
	if view == nil {
		return nil, ErrNilViewpoint
	}
	if companion == nil {
		return nil, ErrNilCompanion
	}

	c := &Controller{
		view:      view,
		companion: companion,
		tuning:    DefaultTuning(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.tuning.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create flight controller: %w", err)
	}

	c.pitch = newAxisRate(PitchAxis, c.tuning.RotationStep, c.tuning.RotationLimit)
	c.yaw = newAxisRate(YawAxis, c.tuning.RotationStep, c.tuning.RotationLimit)
	c.roll = newAxisRate(RollAxis, c.tuning.RotationStep, c.tuning.RotationLimit)

	if c.keys != nil {
		c.unsubscribe = c.keys.Subscribe(c.handleKey)
	}

	return c, nil
}

// Close detaches the controller from its key source
func (c *Controller) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

// handleKey dispatches a raw key event to KeyDown or KeyUp
func (c *Controller) handleKey(key Key, action KeyAction) {
	switch action {
	case KeyPress:
		c.KeyDown(key)
	case KeyRepeat:
		// Auto-repeat keeps held flags set but must not re-toggle the menu
		if in, ok := InputForKey(key); ok {
			c.Press(in)
		}
	case KeyRelease:
		c.KeyUp(key)
	}
}

// KeyDown marks the bound input as held. The menu key runs the menu toggle.
// Unbound keys are ignored.
func (c *Controller) KeyDown(key Key) {
	if IsMenuKey(key) && c.toggleMenu != nil {
		c.logger.Debug("Menu toggled")
		c.toggleMenu()
	}
	if in, ok := InputForKey(key); ok {
		c.Press(in)
	}
}

// KeyUp releases the bound input. Unbound keys are ignored.
func (c *Controller) KeyUp(key Key) {
	if in, ok := InputForKey(key); ok {
		c.Release(in)
	}
}

// Press marks an input as held
func (c *Controller) Press(in Input) {
	if c.inputs.set(in, true) {
		c.logger.Debug("Input held", "input", in)
	}
}

// Release marks an input as released
func (c *Controller) Release(in Input) {
	if c.inputs.set(in, false) {
		c.logger.Debug("Input released", "input", in)
	}
}

// Tick advances the controller by one frame
func (c *Controller) Tick() {
	held := c.inputs.Held

	// Rotate by the accumulated rate, not the delta, so turns coast after release
	c.pitch.accumulate(held(PitchUp), held(PitchDown))
	c.view.RotateOnAxis(c.pitch.Axis, c.pitch.Value)
	c.yaw.accumulate(held(YawLeft), held(YawRight))
	c.view.RotateOnAxis(c.yaw.Axis, c.yaw.Value)
	c.roll.accumulate(held(RollLeft), held(RollRight))
	c.view.RotateOnAxis(c.roll.Axis, c.roll.Value)

	// Thrust follows the orientation after this tick's rotation
	forward, right, up := c.view.Basis()
	c.thrust(forward, held(ThrustForward), held(ThrustBackward))
	c.thrust(right, held(StrafeRight), held(StrafeLeft))
	c.thrust(up, held(StrafeUp), held(StrafeDown))

	if held(Brake) {
		c.brake()
	}

	c.view.SetPosition(c.view.Position().Add(c.velocity))
	c.companion.SetPosition(c.companion.Position().Add(c.velocity))
}

func (c *Controller) thrust(axis mgl32.Vec3, positive, negative bool) {
	if positive {
		c.velocity = c.velocity.Add(axis.Mul(c.tuning.ThrustStep))
	}
	if negative {
		c.velocity = c.velocity.Add(axis.Mul(-c.tuning.ThrustStep))
	}
}

func (c *Controller) brake() {
	t := c.tuning

	c.velocity = c.velocity.Mul(t.MovementDecay)
	c.pitch.damp(t.RotationDecay, t.RotationSnap, true)
	c.yaw.damp(t.RotationDecay, t.RotationSnap, true)
	c.roll.damp(t.RotationDecay, t.RotationSnap, t.SnapRollToZero)

	if c.velocity.Len() < t.VelocitySnap {
		c.velocity = mgl32.Vec3{}
	}
}

// Pitch returns the pitch rate
func (c *Controller) Pitch() AxisRate { return c.pitch }

// Yaw returns the yaw rate
func (c *Controller) Yaw() AxisRate { return c.yaw }

// Roll returns the roll rate
func (c *Controller) Roll() AxisRate { return c.roll }

// Velocity returns the per-tick translation
func (c *Controller) Velocity() mgl32.Vec3 { return c.velocity }

// Inputs returns a copy of the held flags
func (c *Controller) Inputs() InputState { return c.inputs }

// Held reports whether an input is currently held
func (c *Controller) Held(in Input) bool { return c.inputs.Held(in) }

// Tuning returns the tuning in use
func (c *Controller) Tuning() Tuning { return c.tuning }
