package devtools

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mapgen/pkg/engine/world"
	"mapgen/pkg/game/generator"
)

func testFloor(t *testing.T) *generator.Floor {
	t.Helper()
	g := generator.New()
	g.Init(42)
	if err := g.GenerateWithParams(0, 2, 1, 1); err != nil {
		t.Fatal(err)
	}
	return g.Floor()
}

func TestDumpFloor_Sections(t *testing.T) {
	f := testFloor(t)
	var buf bytes.Buffer
	if err := DumpFloor(&buf, f); err != nil {
		t.Fatalf("DumpFloor() = %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"--- Metadata ---",
		"seed: 42\n",
		"map_width: 40\n",
		"--- Map (secrets revealed) ---",
		"Rooms:",
		"Corridors:",
		"Secret doors:",
		"=== END MAP DUMP ===",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump is missing %q", want)
		}
	}
	if got := strings.Count(out, "kind: mst"); got != f.CorridorCount(generator.CorridorMST) {
		t.Errorf("dump lists %d mst corridors, want %d", got, f.CorridorCount(generator.CorridorMST))
	}
}

func TestCellSymbol_SecretDoors(t *testing.T) {
	f := testFloor(t)
	for _, p := range f.SecretDoors() {
		if got := cellSymbol(f, p.X, p.Y, false); got != '#' {
			t.Errorf("cellSymbol(%v, hidden) = %q, want '#'", p, got)
		}
		if got := cellSymbol(f, p.X, p.Y, true); got != 'S' {
			t.Errorf("cellSymbol(%v, revealed) = %q, want 'S'", p, got)
		}
	}
}

func TestDumpFloorToFile(t *testing.T) {
	f := testFloor(t)
	path := filepath.Join(t.TempDir(), "dump.txt")
	abs, err := DumpFloorToFile(f, path)
	if err != nil {
		t.Fatalf("DumpFloorToFile() = %v", err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "=== MAP DUMP DEBUG") {
		t.Errorf("dump starts with %q", string(data[:20]))
	}
	if _, err := DumpFloorToFile(nil, path); err == nil {
		t.Error("DumpFloorToFile(nil) succeeded")
	}
}

func TestSaveScreenshotHTML(t *testing.T) {
	f := testFloor(t)
	path := filepath.Join(t.TempDir(), "shot.html")
	got, err := SaveScreenshotHTML(f, path, true, []string{"\x1b[31mhello\x1b[0m <b>"})
	if err != nil {
		t.Fatalf("SaveScreenshotHTML() = %v", err)
	}
	data, err := os.ReadFile(got)
	if err != nil {
		t.Fatal(err)
	}
	page := string(data)
	if strings.Count(page, `<div class="map-row">`) != f.Height() {
		t.Errorf("page has %d map rows, want %d", strings.Count(page, `<div class="map-row">`), f.Height())
	}
	if !strings.Contains(page, "hello &lt;b&gt;") {
		t.Error("message was not stripped and escaped")
	}
	if !strings.Contains(page, `class="up"`) || !strings.Contains(page, `class="down"`) {
		t.Error("stairs missing from the page")
	}
}

func TestDevGrid_HasEveryTile(t *testing.T) {
	g := DevGrid()
	for _, tile := range world.AllTiles() {
		if g.Count(tile) == 0 {
			t.Errorf("DevGrid() has no %v", tile)
		}
	}
	if msg := g.Validate(); msg != "" {
		t.Error(msg)
	}
}
