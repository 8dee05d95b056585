package world

import "fmt"

// Grid is a fixed-size tile map stored bit-packed at 3 bits per cell.
// Tile k = y*width + x lives in bits [3k, 3k+3) counted from the low bit
// of byte 0, so a tile may straddle two bytes.
type Grid struct {
	width  int
	height int
	packed []byte
}

// PackedSize returns the number of bytes needed to pack width*height tiles
func PackedSize(width, height int) int {
	return (width*height*TileBits + 7) / 8
}

// NewGrid creates an empty grid with the given dimensions
func NewGrid(width, height int) *Grid {
	g := &Grid{}
	g.Build(width, height)
	return g
}

// Build (re)initializes the grid with the given dimensions, reusing the
// buffer when it is large enough
func (g *Grid) Build(width, height int) {
	if width <= 0 || height <= 0 {
		panic("Grid dimensions must be positive")
	}

	g.width = width
	g.height = height

	size := PackedSize(width, height)
	if cap(g.packed) >= size {
		g.packed = g.packed[:size]
		g.Clear()
		return
	}
	g.packed = make([]byte, size)
}

// Width returns the number of columns in the grid
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows in the grid
func (g *Grid) Height() int {
	return g.height
}

// IsValidPosition checks if an x/y position is within grid bounds
func (g *Grid) IsValidPosition(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// IsPlayablePosition checks if a position keeps at least margin cells
// between it and every map edge
func (g *Grid) IsPlayablePosition(x, y, margin int) bool {
	return x >= margin && x < g.width-margin && y >= margin && y < g.height-margin
}

// Get returns the tile at x/y, or Empty if out of bounds
func (g *Grid) Get(x, y int) Tile {
	if !g.IsValidPosition(x, y) {
		return Empty
	}
	bit := (y*g.width + x) * TileBits
	i, shift := bit/8, uint(bit%8)

	window := uint16(g.packed[i])
	if i+1 < len(g.packed) {
		window |= uint16(g.packed[i+1]) << 8
	}
	return Tile((window >> shift) & tileMask)
}

// Set writes the tile at x/y. Out of bounds writes are dropped.
func (g *Grid) Set(x, y int, t Tile) {
	if !g.IsValidPosition(x, y) {
		return
	}
	bit := (y*g.width + x) * TileBits
	i, shift := bit/8, uint(bit%8)

	mask := uint16(tileMask) << shift
	value := (uint16(t) & tileMask) << shift

	g.packed[i] = g.packed[i]&^byte(mask) | byte(value)
	if hi := byte(mask >> 8); hi != 0 {
		g.packed[i+1] = g.packed[i+1]&^hi | byte(value>>8)
	}
}

// Clear resets every cell to Empty
func (g *Grid) Clear() {
	for i := range g.packed {
		g.packed[i] = 0
	}
}

// Count returns how many cells hold the given tile
func (g *Grid) Count(t Tile) int {
	n := 0
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.Get(x, y) == t {
				n++
			}
		}
	}
	return n
}

// Find returns the positions of every cell holding the given tile, row-major
func (g *Grid) Find(t Tile) []Point {
	var found []Point
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.Get(x, y) == t {
				found = append(found, Point{X: x, Y: y})
			}
		}
	}
	return found
}

// Packed returns a copy of the packed tile buffer
func (g *Grid) Packed() []byte {
	out := make([]byte, len(g.packed))
	copy(out, g.packed)
	return out
}

// LoadPacked replaces the grid contents with a packed buffer of the
// exact size for the grid's dimensions
func (g *Grid) LoadPacked(buf []byte) error {
	if len(buf) != len(g.packed) {
		return fmt.Errorf("packed buffer is %d bytes, want %d for %dx%d", len(buf), len(g.packed), g.width, g.height)
	}
	copy(g.packed, buf)
	return nil
}

// Validate checks the grid for reserved tile codes and returns an error
// description or empty string if valid
func (g *Grid) Validate() string {
	if g.width <= 0 || g.height <= 0 {
		return "Grid has invalid dimensions"
	}
	if len(g.packed) != PackedSize(g.width, g.height) {
		return "Grid buffer does not match its dimensions"
	}
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if t := g.Get(x, y); !t.IsValid() {
				return fmt.Sprintf("Cell %d,%d holds reserved tile code %d", x, y, t)
			}
		}
	}
	return ""
}
