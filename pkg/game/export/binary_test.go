package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mapgen/pkg/engine/world"
	"mapgen/pkg/game/generator"
)

func TestWriteBinary_LayoutMatchesGrid(t *testing.T) {
	g := world.NewGrid(5, 3)
	g.Set(0, 0, world.Door)
	g.Set(2, 0, world.UpStairs)

	var buf bytes.Buffer
	if err := WriteBinary(&buf, g); err != nil {
		t.Fatalf("WriteBinary() = %v", err)
	}
	out := buf.Bytes()
	if len(out) != world.PackedSize(5, 3) {
		t.Fatalf("wrote %d bytes, want %d", len(out), world.PackedSize(5, 3))
	}
	if out[0]&0b111 != byte(world.Door) {
		t.Errorf("low bits of byte 0 = %03b, want door", out[0]&0b111)
	}
	// tile 2 occupies bits 6..8 and straddles bytes 0 and 1
	if got := world.Tile(out[0]>>6 | (out[1]&1)<<2); got != world.UpStairs {
		t.Errorf("tile 2 = %v, want UpStairs", got)
	}
}

func TestSaveAndLoadBinary(t *testing.T) {
	gen := generator.New()
	gen.Init(42)
	if err := gen.GenerateWithParams(0, 0, 0, 0); err != nil {
		t.Fatal(err)
	}
	floor := gen.Floor()

	path := filepath.Join(t.TempDir(), "map.bin")
	if err := SaveBinary(path, floor); err != nil {
		t.Fatalf("SaveBinary() = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := int64(world.PackedSize(floor.Width(), floor.Height())); info.Size() != want {
		t.Errorf("file size = %d, want %d", info.Size(), want)
	}

	grid, err := LoadBinary(path, floor.Width(), floor.Height())
	if err != nil {
		t.Fatalf("LoadBinary() = %v", err)
	}
	for y := 0; y < floor.Height(); y++ {
		for x := 0; x < floor.Width(); x++ {
			if grid.Get(x, y) != floor.Tile(x, y) {
				t.Fatalf("tile (%d,%d) = %v, want %v", x, y, grid.Get(x, y), floor.Tile(x, y))
			}
		}
	}
}

func TestSaveBinary_BadPath(t *testing.T) {
	err := SaveBinary(filepath.Join(t.TempDir(), "missing", "map.bin"), world.NewGrid(4, 4))
	if !errors.Is(err, ErrExportIO) {
		t.Errorf("SaveBinary() into a missing directory = %v, want ErrExportIO", err)
	}
}

func TestReadBinary_Short(t *testing.T) {
	_, err := ReadBinary(bytes.NewReader([]byte{1, 2}), 8, 8)
	if !errors.Is(err, ErrExportIO) {
		t.Errorf("ReadBinary() of a short dump = %v, want ErrExportIO", err)
	}
}
