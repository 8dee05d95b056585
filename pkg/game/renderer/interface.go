package renderer

import (
	"mapgen/pkg/engine/input"
	"mapgen/pkg/game/state"
)

// TextStyle represents different text styling options
type TextStyle int

const (
	StyleNormal TextStyle = iota
	StyleWall
	StyleFloor
	StyleCorridor
	StyleDoor
	StyleSecret
	StyleUpStairs
	StyleDownStairs
	StyleVoid
	StyleAction
	StyleActionShort
	StyleDenied
	StyleSubtle
	StyleHeader
)

// Renderer defines the interface for map viewing backends.
// Implementations include the plain TUI, tcell and Ebiten.
type Renderer interface {
	// Init prepares the backend (colours, screen, window)
	Init() error

	// Clear clears the display
	Clear()

	// RenderFrame draws the floor around the session camera plus the
	// status line and message log
	RenderFrame(s *state.Session)

	// GetInput waits for the next key and maps it to an intent
	GetInput() input.Intent

	// StyleText applies a style to text and returns the styled string.
	// For the TUI this applies ANSI colours, other backends may ignore it.
	StyleText(text string, style TextStyle) string

	// ShowMessage displays a message to the user
	ShowMessage(msg string)

	// GetViewportSize returns the current viewport dimensions (rows, cols)
	GetViewportSize() (rows, cols int)

	// Close releases the backend
	Close()
}

// Current holds the active renderer instance
var Current Renderer

// SetRenderer sets the active renderer
func SetRenderer(r Renderer) {
	Current = r
}

// Init initializes the current renderer
func Init() error {
	if Current != nil {
		return Current.Init()
	}
	return nil
}

// Clear clears the display using the current renderer
func Clear() {
	if Current != nil {
		Current.Clear()
	}
}

// RenderFrame renders a complete frame
func RenderFrame(s *state.Session) {
	if Current != nil {
		Current.RenderFrame(s)
	}
}

// GetInput gets user input from the current renderer
func GetInput() input.Intent {
	if Current != nil {
		return Current.GetInput()
	}
	return input.Intent{Action: input.ActionQuit}
}

// StyleText applies a style to text
func StyleText(text string, style TextStyle) string {
	if Current != nil {
		return Current.StyleText(text, style)
	}
	return text
}

// ShowMessage displays a message with the current renderer
func ShowMessage(msg string) {
	if Current != nil {
		Current.ShowMessage(msg)
	}
}

// GetViewportSize returns viewport dimensions
func GetViewportSize() (rows, cols int) {
	if Current != nil {
		return Current.GetViewportSize()
	}
	return 24, 64 // sensible defaults
}

// Close releases the current renderer
func Close() {
	if Current != nil {
		Current.Close()
	}
}
