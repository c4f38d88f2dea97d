package render

import (
	"log/slog"

	"github.com/leterax/go-starship/internal/openglhelper"
)

// Menu is the overlay panel toggled by the flight controller's menu key.
// While it is open the scene is dimmed, the cursor is free and the window
// title shows the key map.
type Menu struct {
	window    *openglhelper.Window
	baseTitle string
	visible   bool
	logger    *slog.Logger
}

// NewMenu creates a hidden menu for window
func NewMenu(window *openglhelper.Window, logger *slog.Logger) *Menu {
	return &Menu{
		window:    window,
		baseTitle: window.Title(),
		logger:    logger,
	}
}

// Toggle flips the menu's visibility
func (m *Menu) Toggle() {
	m.SetVisible(!m.visible)
}

// SetVisible shows or hides the menu
func (m *Menu) SetVisible(visible bool) {
	if m.visible == visible {
		return
	}
	m.visible = visible

	if visible {
		m.window.SetTitle(m.baseTitle + " | " + menuHelp)
	} else {
		m.window.SetTitle(m.baseTitle)
	}
	m.window.SetMouseCaptured(!visible)
	m.logger.Debug("Menu visibility changed", "visible", visible)
}

// Visible reports whether the menu is open
func (m *Menu) Visible() bool {
	return m.visible
}

// Dim returns the brightness factor for the scene behind the menu
func (m *Menu) Dim() float32 {
	if m.visible {
		return MenuDim
	}
	return 1
}
