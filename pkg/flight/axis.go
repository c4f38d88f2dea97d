package flight

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Local rotation axes of the viewpoint
var (
	PitchAxis = mgl32.Vec3{1, 0, 0}
	YawAxis   = mgl32.Vec3{0, 1, 0}
	RollAxis  = mgl32.Vec3{0, 0, 1}
)

// AxisRate is the accumulated turn rate about one local axis, in radians per tick.
// |Value| never exceeds Limit.
type AxisRate struct {
	Value float32
	Axis  mgl32.Vec3
	Step  float32
	Limit float32
}

func newAxisRate(axis mgl32.Vec3, step, limit float32) AxisRate {
	return AxisRate{Axis: axis, Step: step, Limit: limit}
}

// accumulate ramps the rate while its inputs are held. The two directions are
// clamped independently and may both apply in one tick.
func (a *AxisRate) accumulate(increase, decrease bool) {
	if increase && a.Value < a.Limit {
		a.Value = min(a.Value+a.Step, a.Limit)
	}
	if decrease && a.Value > -a.Limit {
		a.Value = max(a.Value-a.Step, -a.Limit)
	}
}

// damp scales the rate by factor and, if snap is set, zeroes it below threshold
func (a *AxisRate) damp(factor, threshold float32, snap bool) {
	a.Value *= factor
	if snap && mgl32.Abs(a.Value) < threshold {
		a.Value = 0
	}
}
