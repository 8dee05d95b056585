package world

import "testing"

func TestPackedSize(t *testing.T) {
	cases := []struct {
		w, h, want int
	}{
		{64, 64, 1536},
		{8, 8, 24},
		{3, 1, 2},
		{1, 1, 1},
		{40, 40, 600},
	}
	for _, c := range cases {
		if got := PackedSize(c.w, c.h); got != c.want {
			t.Errorf("PackedSize(%d, %d) = %d, want %d", c.w, c.h, got, c.want)
		}
	}
}

func TestGrid_RoundTripEveryTileEveryCell(t *testing.T) {
	// Odd width so tiles straddle byte boundaries at varying shifts.
	g := NewGrid(13, 7)
	for _, tile := range AllTiles() {
		for y := 0; y < g.Height(); y++ {
			for x := 0; x < g.Width(); x++ {
				g.Set(x, y, tile)
				if got := g.Get(x, y); got != tile {
					t.Fatalf("Set(%d,%d,%v); Get = %v", x, y, tile, got)
				}
			}
		}
	}
}

func TestGrid_SetPreservesNeighbours(t *testing.T) {
	g := NewGrid(11, 5)
	// Fill with a position-dependent pattern, then overwrite every cell
	// one at a time and check nothing else moved.
	pattern := func(x, y int) Tile { return Tile((x + 2*y) % 6) }
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			g.Set(x, y, pattern(x, y))
		}
	}
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			g.Set(x, y, DownStairs)
			for yy := 0; yy < g.Height(); yy++ {
				for xx := 0; xx < g.Width(); xx++ {
					if xx == x && yy == y {
						continue
					}
					if got := g.Get(xx, yy); got != pattern(xx, yy) {
						t.Fatalf("after Set(%d,%d), Get(%d,%d) = %v, want %v", x, y, xx, yy, got, pattern(xx, yy))
					}
				}
			}
			g.Set(x, y, pattern(x, y))
		}
	}
}

func TestGrid_BitLayout(t *testing.T) {
	g := NewGrid(4, 2)

	g.Set(0, 0, Door) // k=0, bits 0..2
	if got := g.Packed()[0]; got != 0b011 {
		t.Errorf("byte 0 after Set(0,0,Door) = %08b, want 00000011", got)
	}

	g.Clear()
	g.Set(2, 0, UpStairs) // k=2, bits 6..8 straddle bytes 0 and 1
	buf := g.Packed()
	if buf[0] != 0 {
		t.Errorf("byte 0 = %08b, want 00000000 (UpStairs low bits are zero)", buf[0])
	}
	if buf[1] != 0b1 {
		t.Errorf("byte 1 = %08b, want 00000001 (UpStairs high bit spills)", buf[1])
	}

	g.Clear()
	g.Set(1, 0, DownStairs) // k=1, bits 3..5
	if got := g.Packed()[0]; got != 0b101000 {
		t.Errorf("byte 0 after Set(1,0,DownStairs) = %08b, want 00101000", got)
	}
}

func TestGrid_OutOfBounds(t *testing.T) {
	g := NewGrid(4, 4)
	g.Set(-1, 0, Wall)
	g.Set(4, 0, Wall)
	g.Set(0, 4, Wall)
	if n := g.Count(Empty); n != 16 {
		t.Errorf("out of bounds Set changed the grid: %d empty cells, want 16", n)
	}
	if got := g.Get(-1, -1); got != Empty {
		t.Errorf("Get(-1,-1) = %v, want Empty", got)
	}
	if got := g.Get(100, 2); got != Empty {
		t.Errorf("Get(100,2) = %v, want Empty", got)
	}
}

func TestGrid_Clear(t *testing.T) {
	g := NewGrid(9, 9)
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			g.Set(x, y, Wall)
		}
	}
	g.Clear()
	if n := g.Count(Empty); n != 81 {
		t.Errorf("Count(Empty) after Clear = %d, want 81", n)
	}
	if msg := g.Validate(); msg != "" {
		t.Errorf("Validate() = %q, want empty", msg)
	}
}

func TestGrid_BuildReusesBuffer(t *testing.T) {
	g := NewGrid(16, 16)
	g.Set(3, 3, Floor)
	g.Build(8, 8)
	if g.Width() != 8 || g.Height() != 8 {
		t.Fatalf("Build(8,8) dims = %dx%d", g.Width(), g.Height())
	}
	if got := len(g.Packed()); got != PackedSize(8, 8) {
		t.Errorf("len(Packed()) = %d, want %d", got, PackedSize(8, 8))
	}
	if n := g.Count(Empty); n != 64 {
		t.Errorf("rebuilt grid has %d empty cells, want 64", n)
	}
}

func TestGrid_LoadPacked(t *testing.T) {
	src := NewGrid(5, 3)
	src.Set(4, 2, Door)
	src.Set(0, 1, UpStairs)

	dst := NewGrid(5, 3)
	if err := dst.LoadPacked(src.Packed()); err != nil {
		t.Fatalf("LoadPacked: %v", err)
	}
	if dst.Get(4, 2) != Door || dst.Get(0, 1) != UpStairs {
		t.Error("LoadPacked did not reproduce source tiles")
	}
	if err := dst.LoadPacked([]byte{1, 2}); err == nil {
		t.Error("LoadPacked with wrong size = nil error, want error")
	}
}

func TestGrid_ValidateReservedCode(t *testing.T) {
	g := NewGrid(2, 1)
	// 0b111 in the first tile is a reserved code.
	if err := g.LoadPacked([]byte{0b111}); err != nil {
		t.Fatalf("LoadPacked: %v", err)
	}
	if msg := g.Validate(); msg == "" {
		t.Error("Validate() = \"\", want reserved code error")
	}
}
