package flight

import (
	"errors"
	"fmt"
)

// Default tuning values
const (
	DefaultRotationStep  = 0.00005
	DefaultRotationLimit = 0.003
	DefaultThrustStep    = 0.0001
	DefaultMovementDecay = 0.99
	DefaultRotationDecay = 0.98
	DefaultVelocitySnap  = 0.005
	DefaultRotationSnap  = 0.0001
)

var (
	ErrInvalidTuning = errors.New("invalid flight tuning")
	ErrNilViewpoint  = errors.New("viewpoint is nil")
	ErrNilCompanion  = errors.New("companion is nil")
)

// Tuning holds the numeric constants of the controller.
// All rates are per tick.
type Tuning struct {
	RotationStep  float32 `yaml:"rotation_step"`
	RotationLimit float32 `yaml:"rotation_limit"`
	ThrustStep    float32 `yaml:"thrust_step"`

	// Applied while braking
	MovementDecay float32 `yaml:"movement_decay"`
	RotationDecay float32 `yaml:"rotation_decay"`
	VelocitySnap  float32 `yaml:"velocity_snap"`
	RotationSnap  float32 `yaml:"rotation_snap"`

	// SnapRollToZero applies RotationSnap to roll as well as pitch and yaw.
	// Off by default: historically only pitch and yaw were snapped.
	SnapRollToZero bool `yaml:"snap_roll_to_zero"`
}

// DefaultTuning returns the historical tuning
func DefaultTuning() Tuning {
	return Tuning{
		RotationStep:  DefaultRotationStep,
		RotationLimit: DefaultRotationLimit,
		ThrustStep:    DefaultThrustStep,
		MovementDecay: DefaultMovementDecay,
		RotationDecay: DefaultRotationDecay,
		VelocitySnap:  DefaultVelocitySnap,
		RotationSnap:  DefaultRotationSnap,
	}
}

// Validate checks that the tuning keeps the controller bounded
func (t Tuning) Validate() error {
	switch {
	case t.RotationStep <= 0:
		return fmt.Errorf("%w: rotation step %v must be positive", ErrInvalidTuning, t.RotationStep)
	case t.RotationLimit <= 0:
		return fmt.Errorf("%w: rotation limit %v must be positive", ErrInvalidTuning, t.RotationLimit)
	case t.RotationStep > t.RotationLimit:
		return fmt.Errorf("%w: rotation step %v exceeds limit %v", ErrInvalidTuning, t.RotationStep, t.RotationLimit)
	case t.ThrustStep <= 0:
		return fmt.Errorf("%w: thrust step %v must be positive", ErrInvalidTuning, t.ThrustStep)
	case t.MovementDecay <= 0 || t.MovementDecay > 1:
		return fmt.Errorf("%w: movement decay %v must be in (0, 1]", ErrInvalidTuning, t.MovementDecay)
	case t.RotationDecay <= 0 || t.RotationDecay > 1:
		return fmt.Errorf("%w: rotation decay %v must be in (0, 1]", ErrInvalidTuning, t.RotationDecay)
	case t.VelocitySnap < 0:
		return fmt.Errorf("%w: velocity snap %v must not be negative", ErrInvalidTuning, t.VelocitySnap)
	case t.RotationSnap < 0:
		return fmt.Errorf("%w: rotation snap %v must not be negative", ErrInvalidTuning, t.RotationSnap)
	}
	return nil
}
