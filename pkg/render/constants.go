package render

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Projection constants
const (
	DefaultFOV = 60.0
	NearPlane  = 0.1
	FarPlane   = 5000.0
)

// Scene constants
var (
	ClearColor = mgl32.Vec4{0.0, 0.0, 0.02, 1.0} // Near-black space
	WorldUp    = mgl32.Vec3{0, 1, 0}
)

// Menu overlay
const (
	// MenuDim scales star brightness while the menu is open
	MenuDim = 0.25

	menuHelp = "W/S thrust  A/D strafe  R/F rise/sink  arrows pitch/yaw  Q/E roll  X brake  Enter quit  Esc close menu"
)

// FPSLogInterval is how often frame statistics are logged, in seconds
const FPSLogInterval = 5.0
