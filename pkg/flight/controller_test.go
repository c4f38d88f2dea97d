package flight

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rotation struct {
	axis  mgl32.Vec3
	angle float32
}

// fakeView keeps a fixed basis and records every rotation it is asked for
type fakeView struct {
	position  mgl32.Vec3
	rotations []rotation
}

func (v *fakeView) Position() mgl32.Vec3       { return v.position }
func (v *fakeView) SetPosition(pos mgl32.Vec3) { v.position = pos }

func (v *fakeView) RotateOnAxis(axis mgl32.Vec3, angle float32) {
	v.rotations = append(v.rotations, rotation{axis, angle})
}

func (v *fakeView) Basis() (forward, right, up mgl32.Vec3) {
	return mgl32.Vec3{0, 0, -1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}
}

func (v *fakeView) lastRotation(axis mgl32.Vec3) (rotation, bool) {
	for i := len(v.rotations) - 1; i >= 0; i-- {
		if v.rotations[i].axis == axis {
			return v.rotations[i], true
		}
	}
	return rotation{}, false
}

type fakeCompanion struct {
	position mgl32.Vec3
}

func (c *fakeCompanion) Position() mgl32.Vec3       { return c.position }
func (c *fakeCompanion) SetPosition(pos mgl32.Vec3) { c.position = pos }

type fakeKeySource struct {
	handler      KeyHandler
	unsubscribed int
}

func (s *fakeKeySource) Subscribe(h KeyHandler) func() {
	s.handler = h
	return func() {
		s.handler = nil
		s.unsubscribed++
	}
}

func assertVec(t *testing.T, want, got mgl32.Vec3, delta float64) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], delta, "component %d: got %v, want %v", i, got, want)
	}
}

func newTestController(t *testing.T, opts ...Option) (*Controller, *fakeView, *fakeCompanion) {
	t.Helper()
	view := &fakeView{}
	companion := &fakeCompanion{}
	c, err := NewController(view, companion, opts...)
	require.NoError(t, err)
	return c, view, companion
}

func tickN(c *Controller, n int) {
	for i := 0; i < n; i++ {
		c.Tick()
	}
}

func TestNewController_StartsAtRest(t *testing.T) {
	c, _, _ := newTestController(t)

	for _, rate := range []AxisRate{c.Pitch(), c.Yaw(), c.Roll()} {
		assert.Zero(t, rate.Value)
		assert.Equal(t, float32(DefaultRotationStep), rate.Step)
		assert.Equal(t, float32(DefaultRotationLimit), rate.Limit)
	}
	assert.Equal(t, PitchAxis, c.Pitch().Axis)
	assert.Equal(t, YawAxis, c.Yaw().Axis)
	assert.Equal(t, RollAxis, c.Roll().Axis)
	assert.Equal(t, mgl32.Vec3{}, c.Velocity())
	assert.Equal(t, InputState{}, c.Inputs())
}

func TestNewController_Errors(t *testing.T) {
	_, err := NewController(nil, &fakeCompanion{})
	assert.ErrorIs(t, err, ErrNilViewpoint)

	_, err = NewController(&fakeView{}, nil)
	assert.ErrorIs(t, err, ErrNilCompanion)

	bad := DefaultTuning()
	bad.MovementDecay = 1.5
	_, err = NewController(&fakeView{}, &fakeCompanion{}, WithTuning(bad))
	assert.ErrorIs(t, err, ErrInvalidTuning)
}

func TestTick_PitchRampsLinearlyThenClamps(t *testing.T) {
	c, view, _ := newTestController(t)
	c.Press(PitchUp)

	for n := 1; n <= 59; n++ {
		c.Tick()
		require.InDelta(t, float64(n)*DefaultRotationStep, c.Pitch().Value, 1e-7, "tick %d", n)
	}

	tickN(c, 100)
	assert.Equal(t, float32(DefaultRotationLimit), c.Pitch().Value)

	last, ok := view.lastRotation(PitchAxis)
	require.True(t, ok)
	assert.Equal(t, float32(DefaultRotationLimit), last.angle)
}

func TestTick_RatesNeverExceedLimit(t *testing.T) {
	c, _, _ := newTestController(t)
	rng := rand.New(rand.NewSource(7))
	rotating := []Input{PitchUp, PitchDown, YawLeft, YawRight, RollLeft, RollRight}

	for i := 0; i < 5000; i++ {
		for _, in := range rotating {
			if rng.Intn(2) == 0 {
				c.Press(in)
			} else {
				c.Release(in)
			}
		}
		// Long runs in one direction push against the clamp
		if i%500 < 200 {
			c.Press(PitchUp)
			c.Release(PitchDown)
		}
		c.Tick()

		for _, rate := range []AxisRate{c.Pitch(), c.Yaw(), c.Roll()} {
			require.LessOrEqual(t, mgl32.Abs(rate.Value), rate.Limit, "tick %d", i)
		}
	}
}

func TestTick_OpposingInputsBothApply(t *testing.T) {
	c, _, _ := newTestController(t)
	c.Press(YawLeft)
	tickN(c, 10)
	before := c.Yaw().Value

	c.Press(YawRight)
	c.Tick()
	assert.InDelta(t, before, c.Yaw().Value, 1e-9)

	c.Release(YawLeft)
	c.Tick()
	assert.InDelta(t, before-DefaultRotationStep, c.Yaw().Value, 1e-9)
}

func TestTick_RotationCoastsAfterRelease(t *testing.T) {
	c, view, _ := newTestController(t)
	c.Press(PitchUp)
	tickN(c, 20)
	c.Release(PitchUp)
	rate := c.Pitch().Value
	require.InDelta(t, 0.001, rate, 1e-7)

	c.Tick()
	assert.Equal(t, rate, c.Pitch().Value)
	last, ok := view.lastRotation(PitchAxis)
	require.True(t, ok)
	assert.Equal(t, rate, last.angle)
}

func TestTick_RotatesEveryAxisEveryTick(t *testing.T) {
	c, view, _ := newTestController(t)
	c.Tick()

	require.Len(t, view.rotations, 3)
	assert.Equal(t, []rotation{{PitchAxis, 0}, {YawAxis, 0}, {RollAxis, 0}}, view.rotations)
}

func TestTick_ForwardThrustIntegratesPosition(t *testing.T) {
	c, view, companion := newTestController(t)
	c.Press(ThrustForward)
	tickN(c, 10)

	assert.InDelta(t, -10*DefaultThrustStep, c.Velocity().Z(), 1e-7)
	// Euler integration: sum of k*step for k = 1..10
	want := mgl32.Vec3{0, 0, -55 * DefaultThrustStep}
	assertVec(t, want, view.Position(), 1e-6)
	assert.Equal(t, view.Position(), companion.Position())
}

func TestTick_ThrustAxes(t *testing.T) {
	tests := []struct {
		input Input
		want  mgl32.Vec3
	}{
		{ThrustForward, mgl32.Vec3{0, 0, -1}},
		{ThrustBackward, mgl32.Vec3{0, 0, 1}},
		{StrafeRight, mgl32.Vec3{1, 0, 0}},
		{StrafeLeft, mgl32.Vec3{-1, 0, 0}},
		{StrafeUp, mgl32.Vec3{0, 1, 0}},
		{StrafeDown, mgl32.Vec3{0, -1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.input.String(), func(t *testing.T) {
			c, _, _ := newTestController(t)
			c.Press(tt.input)
			c.Tick()
			want := tt.want.Mul(DefaultThrustStep)
			assertVec(t, want, c.Velocity(), 1e-9)
		})
	}
}

func TestTick_BrakeDecaysVelocityThenSnaps(t *testing.T) {
	c, _, _ := newTestController(t)
	c.Press(ThrustForward)
	tickN(c, 100)
	c.Release(ThrustForward)

	v0 := float64(c.Velocity().Len())
	require.InDelta(t, 0.01, v0, 1e-6)

	c.Press(Brake)
	for step := 1; ; step++ {
		require.Less(t, step, 1000, "velocity never snapped")
		c.Tick()

		expected := v0 * math.Pow(DefaultMovementDecay, float64(step))
		if expected < DefaultVelocitySnap {
			assert.Equal(t, mgl32.Vec3{}, c.Velocity(), "tick %d", step)
			break
		}
		require.InDelta(t, expected, c.Velocity().Len(), 1e-6, "tick %d", step)
	}

	c.Tick()
	assert.Equal(t, mgl32.Vec3{}, c.Velocity())
}

func TestTick_BrakeSnapsPitchAndYawButNotRoll(t *testing.T) {
	c, _, _ := newTestController(t)
	c.Press(PitchUp)
	c.Press(YawRight)
	c.Press(RollLeft)
	tickN(c, 20)
	c.Release(PitchUp)
	c.Release(YawRight)
	c.Release(RollLeft)

	c.Press(Brake)
	for step := 0; step < 300; step++ {
		prevPitch, prevRoll := c.Pitch().Value, c.Roll().Value
		c.Tick()

		if prevPitch != 0 {
			decayed := prevPitch * DefaultRotationDecay
			if c.Pitch().Value == 0 {
				assert.Less(t, mgl32.Abs(decayed), float32(DefaultRotationSnap)*1.001, "tick %d", step)
			} else {
				assert.InDelta(t, decayed, c.Pitch().Value, 1e-9, "tick %d", step)
			}
		}
		assert.InDelta(t, prevRoll*DefaultRotationDecay, c.Roll().Value, 1e-12, "tick %d", step)
	}

	assert.Zero(t, c.Pitch().Value)
	assert.Zero(t, c.Yaw().Value)
	// Roll is decayed but never hard-snapped
	assert.NotZero(t, c.Roll().Value)
	assert.InEpsilon(t, 0.001*math.Pow(DefaultRotationDecay, 300), c.Roll().Value, 1e-3)
}

func TestTick_SnapRollToZero(t *testing.T) {
	tuning := DefaultTuning()
	tuning.SnapRollToZero = true
	c, _, _ := newTestController(t, WithTuning(tuning))

	c.Press(RollRight)
	tickN(c, 20)
	c.Release(RollRight)
	c.Press(Brake)
	tickN(c, 300)

	assert.Zero(t, c.Roll().Value)
}

func TestTick_BrakeAppliesAfterAccumulation(t *testing.T) {
	c, _, _ := newTestController(t)
	c.Press(ThrustForward)
	c.Press(Brake)
	c.Tick()

	// Thrust of one step is below the snap threshold once decayed
	assert.Equal(t, mgl32.Vec3{}, c.Velocity())

	c.Press(PitchUp)
	c.Press(RollLeft)
	c.Tick()
	// One decayed step sits under the snap threshold; only roll keeps it
	assert.Zero(t, c.Pitch().Value)
	assert.InDelta(t, DefaultRotationStep*DefaultRotationDecay, c.Roll().Value, 1e-9)
}

func TestTick_CompanionFollowsViewpoint(t *testing.T) {
	c, view, companion := newTestController(t)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 2000; i++ {
		in := AllInputs()[rng.Intn(len(AllInputs()))]
		if rng.Intn(2) == 0 {
			c.Press(in)
		} else {
			c.Release(in)
		}

		before := view.Position()
		c.Tick()
		require.Equal(t, before.Add(c.Velocity()), view.Position(), "tick %d", i)
		require.Equal(t, view.Position(), companion.Position(), "tick %d", i)
	}
}

func TestKeyDown_UnknownKeyLeavesStateUnchanged(t *testing.T) {
	c, _, _ := newTestController(t)
	c.Press(ThrustForward)
	c.Press(PitchUp)
	tickN(c, 5)

	snapshot := *c
	c.KeyDown(KeyZ)
	c.KeyUp(KeyZ)
	c.KeyDown(Key(-1))

	assert.Equal(t, snapshot.inputs, c.inputs)
	assert.Equal(t, snapshot.pitch, c.pitch)
	assert.Equal(t, snapshot.yaw, c.yaw)
	assert.Equal(t, snapshot.roll, c.roll)
	assert.Equal(t, snapshot.velocity, c.velocity)
}

func TestKeyDownKeyUp_SetFlags(t *testing.T) {
	c, _, _ := newTestController(t)

	c.KeyDown(KeyW)
	c.KeyDown(KeyW)
	assert.True(t, c.Held(ThrustForward))

	c.KeyUp(KeyW)
	assert.False(t, c.Held(ThrustForward))

	c.KeyUp(KeyW)
	assert.False(t, c.Held(ThrustForward))
}

func TestKeyDown_MenuKey(t *testing.T) {
	toggles := 0
	src := &fakeKeySource{}
	c, _, _ := newTestController(t, WithKeySource(src), WithMenuToggle(func() { toggles++ }))
	require.NotNil(t, src.handler)

	src.handler(KeyEscape, KeyPress)
	src.handler(KeyEscape, KeyRepeat)
	src.handler(KeyEscape, KeyRepeat)
	src.handler(KeyEscape, KeyRelease)
	assert.Equal(t, 1, toggles)
	assert.Equal(t, InputState{}, c.Inputs())

	c.KeyDown(KeyEscape)
	assert.Equal(t, 2, toggles)
}

func TestKeySource_DispatchAndClose(t *testing.T) {
	src := &fakeKeySource{}
	c, _, _ := newTestController(t, WithKeySource(src))

	src.handler(KeyX, KeyPress)
	assert.True(t, c.Held(Brake))
	src.handler(KeyQ, KeyRepeat)
	assert.True(t, c.Held(RollLeft))
	src.handler(KeyX, KeyRelease)
	assert.False(t, c.Held(Brake))

	c.Close()
	c.Close()
	assert.Nil(t, src.handler)
	assert.Equal(t, 1, src.unsubscribed)
}
