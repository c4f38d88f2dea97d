package flight

// Input identifies one logical control of the ship
type Input uint8

const (
	PitchUp Input = iota
	PitchDown
	YawLeft
	YawRight
	RollLeft
	RollRight
	ThrustForward
	ThrustBackward
	StrafeLeft
	StrafeRight
	StrafeUp
	StrafeDown
	Brake

	numInputs
)

var inputNames = [numInputs]string{
	PitchUp:        "pitch-up",
	PitchDown:      "pitch-down",
	YawLeft:        "yaw-left",
	YawRight:       "yaw-right",
	RollLeft:       "roll-left",
	RollRight:      "roll-right",
	ThrustForward:  "thrust-forward",
	ThrustBackward: "thrust-backward",
	StrafeLeft:     "strafe-left",
	StrafeRight:    "strafe-right",
	StrafeUp:       "strafe-up",
	StrafeDown:     "strafe-down",
	Brake:          "brake",
}

// String returns the stable name of the input
func (i Input) String() string {
	if !i.Valid() {
		return "unknown"
	}
	return inputNames[i]
}

// Valid reports whether i is one of the declared inputs
func (i Input) Valid() bool {
	return i < numInputs
}

// AllInputs returns every declared input in declaration order
func AllInputs() []Input {
	all := make([]Input, 0, numInputs)
	for i := Input(0); i < numInputs; i++ {
		all = append(all, i)
	}
	return all
}

// InputState holds the "currently held" flag of every input.
// The zero value has everything released.
type InputState [numInputs]bool

// Held reports whether the input is currently held
func (s *InputState) Held(i Input) bool {
	if !i.Valid() {
		return false
	}
	return s[i]
}

// set updates the flag and reports whether it changed
func (s *InputState) set(i Input, held bool) bool {
	if !i.Valid() || s[i] == held {
		return false
	}
	s[i] = held
	return true
}
