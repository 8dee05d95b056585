// Package tui prints floors to a plain terminal with gookit colours.
package tui

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/leonelquinteros/gotext"

	"mapgen/pkg/engine/input"
	"mapgen/pkg/engine/terminal"
	"mapgen/pkg/game/generator"
	"mapgen/pkg/game/renderer"
	"mapgen/pkg/game/state"
)

// Viewport margins and minimum sizes
const (
	ViewportMinRows    = 7
	ViewportMinCols    = 15
	ViewportSideMargin = 2
	// Lines needed outside viewport:
	// - Status line + blank (2)
	// - Legend (1)
	// - Help hint (1)
	// - Messages pane (blank + header + 5 messages + footer = 8)
	ViewportTopMargin = 13
)

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	// Out receives all output, stdout unless replaced
	Out io.Writer

	// ReadKey returns the next key code, input.ReadKey unless replaced
	ReadKey func() (string, error)
}

var _ renderer.Renderer = (*TUIRenderer)(nil)

// New creates a new TUI renderer
func New() *TUIRenderer {
	return &TUIRenderer{
		Out:     os.Stdout,
		ReadKey: input.ReadKey,
	}
}

// Init initializes the TUI renderer (colors, etc.)
func (t *TUIRenderer) Init() error {
	renderer.InitColors()
	return nil
}

// Close is a no-op for the plain terminal
func (t *TUIRenderer) Close() {}

// Clear clears the terminal screen
func (t *TUIRenderer) Clear() {
	if t.Out != os.Stdout {
		return
	}
	c := exec.Command("clear")
	c.Stdout = os.Stdout
	c.Run()
}

// GetInput reads one raw key and returns a high-level Intent. A read error
// (closed stdin, no terminal) quits.
func (t *TUIRenderer) GetInput() input.Intent {
	code, err := t.ReadKey()
	if err != nil {
		return input.Intent{Action: input.ActionQuit}
	}
	raw := input.RawInput{
		Device: input.DeviceTerminal,
		Code:   code,
		// Timestamp left zero; terminal input is inherently low frequency.
	}
	debounced := input.NewDebouncedInput(raw)
	return input.MapToIntent(debounced)
}

// StyleText applies a style to text
func (t *TUIRenderer) StyleText(text string, style renderer.TextStyle) string {
	return renderer.ColorFor(style).Sprint(text)
}

// ShowMessage displays a message to the user
func (t *TUIRenderer) ShowMessage(msg string) {
	fmt.Fprintln(t.Out, msg)
}

// GetViewportSize returns the viewport dimensions based on terminal size
func (t *TUIRenderer) GetViewportSize() (rows, cols int) {
	termWidth, termHeight := terminal.GetSize()

	cols = termWidth - (ViewportSideMargin * 2)
	rows = termHeight - ViewportTopMargin

	if cols < ViewportMinCols {
		cols = ViewportMinCols
	}
	if rows < ViewportMinRows {
		rows = ViewportMinRows
	}

	// Keep rows odd for centering
	if rows%2 == 0 {
		rows--
	}
	// Keep cols odd for centering
	if cols%2 == 0 {
		cols--
	}

	return rows, cols
}

// RenderFrame renders the viewport around the camera, status and messages
func (t *TUIRenderer) RenderFrame(s *state.Session) {
	t.Clear()

	fmt.Fprintln(t.Out, renderer.ColorHeader.Sprint(renderer.StatusLine(s)))
	fmt.Fprintln(t.Out)

	rows, cols := t.GetViewportSize()
	if s.ShowHelp {
		t.printHelp(rows)
	} else if f := s.Floor(); f != nil {
		x0, y0 := s.Viewport(cols, rows)
		t.printRegion(f, x0, y0, cols, rows, s.RevealSecrets)
	}

	t.printLegend()
	fmt.Fprintln(t.Out, renderer.FormatString("%s", gotext.Get("HELP_HINT")))

	width, _ := terminal.GetSize()
	renderer.PrintMessagesPane(t.Out, width, s.Messages)
}

// PrintFloor writes the whole floor once, for non-interactive output
func (t *TUIRenderer) PrintFloor(f *generator.Floor, revealSecrets bool) {
	t.printRegion(f, 0, 0, f.Width(), f.Height(), revealSecrets)
	t.printLegend()
}

// printRegion renders cols x rows cells starting at (x0, y0)
func (t *TUIRenderer) printRegion(f *generator.Floor, x0, y0, cols, rows int, revealSecrets bool) {
	indent := strings.Repeat(" ", ViewportSideMargin)
	var line strings.Builder
	for y := y0; y < y0+rows && y < f.Height(); y++ {
		line.Reset()
		line.WriteString(indent)
		for x := x0; x < x0+cols && x < f.Width(); x++ {
			glyph, style := renderer.Classify(f, x, y, revealSecrets)
			line.WriteString(t.StyleText(string(glyph), style))
		}
		fmt.Fprintln(t.Out, line.String())
	}
	fmt.Fprintln(t.Out)
}

// printLegend prints every glyph with its label on one line
func (t *TUIRenderer) printLegend() {
	parts := make([]string, 0, 8)
	for _, e := range renderer.Legend() {
		parts = append(parts, t.StyleText(string(e.Glyph), e.Style)+" "+renderer.ColorSubtle.Sprint(e.Label))
	}
	fmt.Fprintln(t.Out, strings.Join(parts, "  "))
}

func (t *TUIRenderer) printHelp(rows int) {
	fmt.Fprintln(t.Out, renderer.ColorHeader.Sprint(renderer.FormatString("GT{HELP_TITLE}")))
	for i, line := range renderer.HelpLines() {
		if i >= rows-1 {
			break
		}
		fmt.Fprintln(t.Out, "  "+renderer.ColorAction.Sprint(line))
	}
	fmt.Fprintln(t.Out)
}

