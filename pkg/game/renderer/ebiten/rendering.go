package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/leonelquinteros/gotext"

	"mapgen/pkg/game/renderer"
)

// Draw renders the floor, the HUD and the message log (Ebiten interface)
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	s := e.session
	if s == nil {
		return
	}

	ebitenutil.DebugPrintAt(screen, renderer.StatusLine(s), 4, 2)

	mapHeight := e.windowHeight - hudHeight - messageHeight
	vector.DrawFilledRect(screen, 0, hudHeight, float32(e.windowWidth), float32(mapHeight), colorMapBackground, false)

	if s.ShowHelp {
		e.drawHelp(screen)
	} else if f := s.Floor(); f != nil {
		rows, cols := e.GetViewportSize()
		size := float32(e.tileSize * max(s.Zoom, 1))
		x0, y0 := s.Viewport(cols, rows)
		for my := 0; my < rows; my++ {
			for mx := 0; mx < cols; mx++ {
				x, y := x0+mx, y0+my
				_, style := renderer.Classify(f, x, y, s.RevealSecrets)
				c := tileColor(style)
				if c == nil {
					continue
				}
				px := float32(mx) * size
				py := hudHeight + float32(my)*size
				vector.DrawFilledRect(screen, px, py, size, size, c, false)
				if x == s.Camera.X && y == s.Camera.Y {
					vector.StrokeRect(screen, px, py, size, size, 1, colorCamera, false)
				}
			}
		}
	}

	e.drawMessages(screen, hudHeight+mapHeight)
}

func (e *EbitenRenderer) drawHelp(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, gotext.Get("HELP_TITLE"), 8, hudHeight+4)
	for i, line := range renderer.HelpLines() {
		ebitenutil.DebugPrintAt(screen, line, 16, hudHeight+20+i*16)
	}
}

func (e *EbitenRenderer) drawMessages(screen *ebiten.Image, top int) {
	vector.DrawFilledRect(screen, 0, float32(top), float32(e.windowWidth), messageHeight, colorPanel, false)

	msgs := e.session.Messages
	if len(msgs) > 3 {
		msgs = msgs[len(msgs)-3:]
	}
	if len(msgs) == 0 {
		ebitenutil.DebugPrintAt(screen, renderer.PlainString("%s", gotext.Get("HELP_HINT")), 4, top)
		return
	}
	for i, m := range msgs {
		ebitenutil.DebugPrintAt(screen, m, 4, top+i*16)
	}
}
