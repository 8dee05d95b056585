// Package tcellview is a full-screen interactive floor viewer built on tcell.
package tcellview

import (
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/leonelquinteros/gotext"

	"mapgen/pkg/engine/input"
	"mapgen/pkg/game/generator"
	"mapgen/pkg/game/renderer"
	"mapgen/pkg/game/state"
)

// Lines reserved outside the map area
const (
	headerRows  = 1
	messageRows = 3
	footerRows  = 1
	minMapRows  = 3
)

// Viewer implements renderer.Renderer on a tcell screen
type Viewer struct {
	screen tcell.Screen
	chime  *Chime

	// Logger receives non-fatal backend problems
	Logger *log.Logger
}

var _ renderer.Renderer = (*Viewer)(nil)

// New creates a viewer on the real terminal. Init must be called before use.
func New() *Viewer {
	return &Viewer{Logger: log.Default()}
}

// NewWithScreen creates a viewer on an existing, initialised screen
// (a simulation screen in tests). No speaker is opened.
func NewWithScreen(screen tcell.Screen) *Viewer {
	return &Viewer{screen: screen, chime: &Chime{}, Logger: log.Default()}
}

// Init opens the screen and the speaker. Audio failure is non-fatal.
func (v *Viewer) Init() error {
	if v.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		if err := screen.Init(); err != nil {
			return err
		}
		v.screen = screen
	}

	if v.chime == nil {
		chime, err := NewChime()
		if err != nil {
			// Non-fatal, the viewer can run without sound
			v.Logger.Printf("Audio initialization failed: %v", err)
		}
		v.chime = chime
	}
	return nil
}

// Attach makes the viewer chime whenever the session regenerates
func (v *Viewer) Attach(s *state.Session) {
	s.OnRegenerate = func(*generator.Floor) {
		v.chime.Play()
	}
}

// Close restores the terminal and releases the speaker
func (v *Viewer) Close() {
	v.chime.Close()
	if v.screen != nil {
		v.screen.Fini()
	}
}

// Clear clears the screen buffer
func (v *Viewer) Clear() {
	v.screen.Clear()
}

// GetInput blocks until a key press. Resizes yield ActionNone so the caller
// redraws.
func (v *Viewer) GetInput() input.Intent {
	for {
		switch ev := v.screen.PollEvent().(type) {
		case nil:
			// Screen finalised
			return input.Intent{Action: input.ActionQuit}
		case *tcell.EventResize:
			v.screen.Sync()
			return input.Intent{Action: input.ActionNone}
		case *tcell.EventKey:
			code := keyCode(ev)
			if code == "" {
				continue
			}
			return input.MapToIntent(input.NewDebouncedInput(input.RawInput{
				Device:    input.DeviceKeyboard,
				Code:      code,
				Timestamp: ev.When(),
			}))
		}
	}
}

// keyCode translates a tcell key event to a binding code
func keyCode(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyUp:
		return "arrow_up"
	case tcell.KeyDown:
		return "arrow_down"
	case tcell.KeyLeft:
		return "arrow_left"
	case tcell.KeyRight:
		return "arrow_right"
	case tcell.KeyHome:
		return "home"
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyTab:
		return "tab"
	case tcell.KeyEscape:
		return "escape"
	case tcell.KeyCtrlC:
		return "ctrl_c"
	case tcell.KeyF12:
		return "f12"
	case tcell.KeyRune:
		r := ev.Rune()
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		return string(r)
	}
	return ""
}

// StyleText is a pass-through; tcell styles cells, not strings
func (v *Viewer) StyleText(text string, _ renderer.TextStyle) string {
	return text
}

// ShowMessage draws msg on the footer line immediately
func (v *Viewer) ShowMessage(msg string) {
	_, h := v.screen.Size()
	v.drawString(0, h-1, msg, styleFor(renderer.StyleSubtle))
	v.screen.Show()
}

// GetViewportSize returns the map area in screen cells
func (v *Viewer) GetViewportSize() (rows, cols int) {
	w, h := v.screen.Size()
	rows = h - headerRows - messageRows - footerRows
	if rows < minMapRows {
		rows = minMapRows
	}
	return rows, w
}

// RenderFrame draws the status line, the map around the camera and the
// message log
func (v *Viewer) RenderFrame(s *state.Session) {
	v.screen.Clear()
	_, h := v.screen.Size()

	v.drawString(0, 0, renderer.StatusLine(s), styleFor(renderer.StyleHeader))

	rows, cols := v.GetViewportSize()
	if s.ShowHelp {
		v.drawHelp(rows)
	} else if f := s.Floor(); f != nil {
		zoom := max(s.Zoom, 1)
		mapCols, mapRows := cols/zoom, rows
		x0, y0 := s.Viewport(mapCols, mapRows)
		for my := 0; my < mapRows; my++ {
			for mx := 0; mx < mapCols; mx++ {
				x, y := x0+mx, y0+my
				glyph, ts := renderer.Classify(f, x, y, s.RevealSecrets)
				style := styleFor(ts)
				if x == s.Camera.X && y == s.Camera.Y {
					style = style.Reverse(true)
				}
				for z := 0; z < zoom; z++ {
					v.screen.SetContent(mx*zoom+z, headerRows+my, glyph, nil, style)
				}
			}
		}
	}

	top := headerRows + rows
	msgs := s.Messages
	if len(msgs) > messageRows {
		msgs = msgs[len(msgs)-messageRows:]
	}
	for i, m := range msgs {
		v.drawString(0, top+i, m, styleFor(renderer.StyleNormal))
	}

	v.drawString(0, h-1, renderer.PlainString("%s", gotext.Get("HELP_HINT")), styleFor(renderer.StyleSubtle))

	v.screen.Show()
}

func (v *Viewer) drawHelp(rows int) {
	v.drawString(1, headerRows, gotext.Get("HELP_TITLE"), styleFor(renderer.StyleHeader))
	for i, line := range renderer.HelpLines() {
		if i+1 >= rows {
			break
		}
		v.drawString(2, headerRows+1+i, line, styleFor(renderer.StyleAction))
	}
}

// drawString writes s at (x, y), clipped to the screen width
func (v *Viewer) drawString(x, y int, s string, style tcell.Style) {
	w, _ := v.screen.Size()
	for _, r := range s {
		if x >= w {
			return
		}
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// styleFor maps a text style to a tcell style
func styleFor(ts renderer.TextStyle) tcell.Style {
	base := tcell.StyleDefault
	switch ts {
	case renderer.StyleWall:
		return base.Foreground(tcell.ColorGray)
	case renderer.StyleFloor:
		return base.Foreground(tcell.ColorWhite)
	case renderer.StyleCorridor:
		return base.Foreground(tcell.ColorSteelBlue)
	case renderer.StyleDoor:
		return base.Foreground(tcell.ColorGreen).Bold(true)
	case renderer.StyleSecret:
		return base.Foreground(tcell.ColorYellow).Bold(true)
	case renderer.StyleUpStairs:
		return base.Foreground(tcell.ColorAqua).Bold(true)
	case renderer.StyleDownStairs:
		return base.Foreground(tcell.ColorRed).Bold(true)
	case renderer.StyleHeader:
		return base.Foreground(tcell.ColorFuchsia).Bold(true)
	case renderer.StyleAction:
		return base.Foreground(tcell.ColorPurple)
	case renderer.StyleSubtle:
		return base.Foreground(tcell.ColorGray).Dim(true)
	default:
		return base
	}
}
