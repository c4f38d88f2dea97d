package flight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultTuningIsValid(t *testing.T) {
	assert.NoError(t, DefaultTuning().Validate())
	assert.False(t, DefaultTuning().SnapRollToZero)
}

func TestTuningValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Tuning)
	}{
		{"zero rotation step", func(t *Tuning) { t.RotationStep = 0 }},
		{"negative limit", func(t *Tuning) { t.RotationLimit = -1 }},
		{"step above limit", func(t *Tuning) { t.RotationStep = 0.01 }},
		{"zero thrust", func(t *Tuning) { t.ThrustStep = 0 }},
		{"movement decay above one", func(t *Tuning) { t.MovementDecay = 1.01 }},
		{"zero movement decay", func(t *Tuning) { t.MovementDecay = 0 }},
		{"negative rotation decay", func(t *Tuning) { t.RotationDecay = -0.5 }},
		{"negative velocity snap", func(t *Tuning) { t.VelocitySnap = -1 }},
		{"negative rotation snap", func(t *Tuning) { t.RotationSnap = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tuning := DefaultTuning()
			tt.modify(&tuning)
			assert.ErrorIs(t, tuning.Validate(), ErrInvalidTuning)
		})
	}
}

func TestTuningValidate_NoDecayIsAllowed(t *testing.T) {
	tuning := DefaultTuning()
	tuning.MovementDecay = 1
	tuning.RotationDecay = 1
	tuning.VelocitySnap = 0
	assert.NoError(t, tuning.Validate())
}
