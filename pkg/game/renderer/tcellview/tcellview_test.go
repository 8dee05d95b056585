package tcellview

import (
	"io"
	"log"
	"testing"

	"github.com/gdamore/tcell/v2"

	"mapgen/pkg/engine/input"
	"mapgen/pkg/game/generator"
	"mapgen/pkg/game/state"
)

func newTestViewer(t *testing.T, w, h int) (*Viewer, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(w, h)
	v := NewWithScreen(screen)
	v.Logger = log.New(io.Discard, "", 0)
	t.Cleanup(v.Close)
	return v, screen
}

func testSession(t *testing.T) *state.Session {
	t.Helper()
	g := generator.New()
	g.Init(99)
	if err := g.GenerateWithParams(0, 0, 0, 0); err != nil {
		t.Fatal(err)
	}
	return state.NewSession(g)
}

func TestRenderFrame_DrawsFloor(t *testing.T) {
	v, screen := newTestViewer(t, 60, 50)
	s := testSession(t)
	f := s.Floor()

	v.RenderFrame(s)

	rows, cols := v.GetViewportSize()
	x0, y0 := s.Viewport(cols, rows)
	for my := 0; my < rows && y0+my < f.Height(); my++ {
		for mx := 0; mx < cols && x0+mx < f.Width(); mx++ {
			got, _, _, _ := screen.GetContent(mx, headerRows+my)
			want := f.Tile(x0+mx, y0+my).Glyph()
			if got != want {
				t.Fatalf("screen (%d,%d) = %q, want %q", mx, headerRows+my, got, want)
			}
		}
	}
}

func TestRenderFrame_ZoomRepeatsCells(t *testing.T) {
	v, screen := newTestViewer(t, 60, 30)
	s := testSession(t)
	s.Zoom = 2
	v.RenderFrame(s)

	for x := 0; x < 58; x += 2 {
		a, _, _, _ := screen.GetContent(x, headerRows+3)
		b, _, _, _ := screen.GetContent(x+1, headerRows+3)
		if a != b {
			t.Fatalf("zoomed cell at column %d drawn as %q and %q", x, a, b)
		}
	}
}

func TestGetInput_Keys(t *testing.T) {
	v, screen := newTestViewer(t, 40, 20)

	tests := []struct {
		key  tcell.Key
		r    rune
		want input.Action
	}{
		{tcell.KeyUp, 0, input.ActionPanNorth},
		{tcell.KeyRight, 0, input.ActionPanEast},
		{tcell.KeyRune, 'R', input.ActionRegenerate},
		{tcell.KeyRune, 'x', input.ActionToggleSecrets},
		{tcell.KeyEscape, 0, input.ActionQuit},
	}
	for _, tt := range tests {
		screen.InjectKey(tt.key, tt.r, tcell.ModNone)
		if got := v.GetInput().Action; got != tt.want {
			t.Errorf("key %v/%q = %s, want %s", tt.key, tt.r, input.ActionName(got), input.ActionName(tt.want))
		}
	}
}

func TestViewportSize(t *testing.T) {
	v, _ := newTestViewer(t, 80, 24)
	rows, cols := v.GetViewportSize()
	if cols != 80 || rows != 24-headerRows-messageRows-footerRows {
		t.Errorf("GetViewportSize() = (%d,%d)", rows, cols)
	}

	v2, _ := newTestViewer(t, 10, 4)
	if rows, _ := v2.GetViewportSize(); rows != minMapRows {
		t.Errorf("tiny screen rows = %d, want %d", rows, minMapRows)
	}
}

func TestAttach_SilentChime(t *testing.T) {
	v, _ := newTestViewer(t, 40, 20)
	s := testSession(t)
	v.Attach(s)
	if s.OnRegenerate == nil {
		t.Fatal("OnRegenerate not set")
	}
	// A disabled chime must not touch the speaker.
	if err := s.Regenerate(true); err != nil {
		t.Fatal(err)
	}
}

func TestChimeStreamer_Length(t *testing.T) {
	st, err := chimeStreamer(sampleRate)
	if err != nil {
		t.Fatal(err)
	}
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := st.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	if want := sampleRate.N(toneLength) * len(chimeNotes); total != want {
		t.Errorf("chime has %d samples, want %d", total, want)
	}
}
