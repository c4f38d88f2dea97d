package flight

// Key is a platform key code. The values match GLFW key codes, which use
// ASCII for printable keys, so a host can pass int(glfw.Key) straight through.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
type Key int

const (
	KeyA Key = 65 // A key (ASCII)
	KeyD Key = 68 // D key (ASCII)
	KeyE Key = 69 // E key (ASCII)
	KeyF Key = 70 // F key (ASCII)
	KeyQ Key = 81 // Q key (ASCII)
	KeyR Key = 82 // R key (ASCII)
	KeyS Key = 83 // S key (ASCII)
	KeyW Key = 87 // W key (ASCII)
	KeyX Key = 88 // X key (ASCII)
	KeyZ Key = 90 // Z key (ASCII)

	KeyEscape Key = 256 // Escape key (GLFW)
	KeyRight  Key = 262 // Right arrow (GLFW)
	KeyLeft   Key = 263 // Left arrow (GLFW)
	KeyDown   Key = 264 // Down arrow (GLFW)
	KeyUp     Key = 265 // Up arrow (GLFW)
)

// MenuKey toggles the external menu panel. It is not bound to any Input.
const MenuKey = KeyEscape

// KeyAction mirrors glfw.Action
type KeyAction int

const (
	KeyRelease KeyAction = 0
	KeyPress   KeyAction = 1
	KeyRepeat  KeyAction = 2
)

var keyBindings = map[Key]Input{
	KeyUp:    PitchUp,
	KeyDown:  PitchDown,
	KeyLeft:  YawLeft,
	KeyRight: YawRight,
	KeyQ:     RollLeft,
	KeyE:     RollRight,
	KeyW:     ThrustForward,
	KeyS:     ThrustBackward,
	KeyA:     StrafeLeft,
	KeyD:     StrafeRight,
	KeyR:     StrafeUp,
	KeyF:     StrafeDown,
	KeyX:     Brake,
}

// InputForKey translates a key code to the input it is bound to.
// Unbound keys report false.
func InputForKey(k Key) (Input, bool) {
	in, ok := keyBindings[k]
	return in, ok
}

// IsMenuKey reports whether k is the menu toggle key
func IsMenuKey(k Key) bool {
	return k == MenuKey
}
