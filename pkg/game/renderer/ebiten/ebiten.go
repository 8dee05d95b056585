// Package ebiten provides a windowed floor viewer built on Ebiten.
package ebiten

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/leonelquinteros/gotext"

	engineinput "mapgen/pkg/engine/input"
	"mapgen/pkg/game/renderer"
	"mapgen/pkg/game/state"
)

// EbitenRenderer draws the session floor in a window. Ebiten owns the main
// loop, so Run applies intents from Update instead of using renderer.Run.
type EbitenRenderer struct {
	windowWidth  int
	windowHeight int
	tileSize     int

	session   *state.Session
	inputChan chan engineinput.Intent

	keyRepeatState map[string]keyRepeatInfo

	windowOpenedLogged bool
}

var _ renderer.Renderer = (*EbitenRenderer)(nil)

// New creates a new Ebiten renderer
func New() *EbitenRenderer {
	return &EbitenRenderer{
		windowWidth:    800,
		windowHeight:   600,
		tileSize:       defaultTileSize,
		inputChan:      make(chan engineinput.Intent, 16),
		keyRepeatState: make(map[string]keyRepeatInfo),
	}
}

// Init sets up the window
func (e *EbitenRenderer) Init() error {
	ebiten.SetWindowSize(e.windowWidth, e.windowHeight)
	ebiten.SetWindowTitle(gotext.Get("WINDOW_TITLE"))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return nil
}

// Run opens the window and drives s until the user quits or closes it.
// Must be called from the main goroutine.
func (e *EbitenRenderer) Run(s *state.Session) error {
	e.session = s
	if err := e.Init(); err != nil {
		return err
	}
	if s.Floor() != nil {
		e.fitTileSize(s)
	}
	return ebiten.RunGame(e)
}

// Close is a no-op; the window closes when Update returns ebiten.Termination
func (e *EbitenRenderer) Close() {}

// Clear is a no-op; Draw repaints the whole window every frame
func (e *EbitenRenderer) Clear() {}

// RenderFrame records the session to draw; Draw does the work
func (e *EbitenRenderer) RenderFrame(s *state.Session) {
	e.session = s
}

// GetInput blocks until Update sees a key press
func (e *EbitenRenderer) GetInput() engineinput.Intent {
	return <-e.inputChan
}

// StyleText is a pass-through; colours are chosen per tile in Draw
func (e *EbitenRenderer) StyleText(text string, _ renderer.TextStyle) string {
	return text
}

// ShowMessage adds msg to the session log shown under the map
func (e *EbitenRenderer) ShowMessage(msg string) {
	if e.session != nil {
		e.session.AddMessage(msg)
	}
}

// GetViewportSize returns the map area in tiles
func (e *EbitenRenderer) GetViewportSize() (rows, cols int) {
	size := e.tileSize
	if e.session != nil {
		size *= max(e.session.Zoom, 1)
	}
	rows = (e.windowHeight - hudHeight - messageHeight) / size
	cols = e.windowWidth / size
	return max(rows, 1), max(cols, 1)
}

// Update handles input (Ebiten interface)
func (e *EbitenRenderer) Update() error {
	// Log window opening on first update (confirms window is actually running)
	if !e.windowOpenedLogged {
		e.windowOpenedLogged = true
		w, h := ebiten.WindowSize()
		log.Printf("Viewer window opened (%dx%d)", w, h)
	}

	e.handleTileSize()

	intent := e.checkInput()
	if intent.Action == engineinput.ActionNone {
		return nil
	}

	if e.session == nil {
		// Non-blocking send to input channel
		select {
		case e.inputChan <- intent:
		default:
			// Channel full, drop input
		}
		return nil
	}

	renderer.HandleIntent(e.session, intent)
	if e.session.Quit {
		return ebiten.Termination
	}
	return nil
}

// Layout returns the game's logical screen size (Ebiten interface)
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.windowWidth = outsideWidth
	e.windowHeight = outsideHeight
	return outsideWidth, outsideHeight
}

// fitTileSize picks the largest tile size that shows the whole floor
func (e *EbitenRenderer) fitTileSize(s *state.Session) {
	f := s.Floor()
	byW := e.windowWidth / f.Width()
	byH := (e.windowHeight - hudHeight - messageHeight) / f.Height()
	e.tileSize = max(min(byW, byH, maxTileSize), minTileSize)
}
