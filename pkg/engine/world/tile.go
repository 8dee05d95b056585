// Package world provides generic 2D grid-based world primitives.
// These are engine-level constructs usable by any tile-based game.
package world

// Tile is a 3-bit map cell code.
type Tile uint8

// Tile codes. Values 6 and 7 are reserved.
const (
	Empty Tile = iota
	Wall
	Floor
	Door
	UpStairs
	DownStairs
)

// TileBits is the number of bits each tile occupies in a packed grid
const TileBits = 3

// tileMask selects one tile's bits
const tileMask = 1<<TileBits - 1

// AllTiles returns every defined tile code in ascending order
func AllTiles() []Tile {
	return []Tile{Empty, Wall, Floor, Door, UpStairs, DownStairs}
}

// String returns the name of the tile
func (t Tile) String() string {
	switch t {
	case Empty:
		return "Empty"
	case Wall:
		return "Wall"
	case Floor:
		return "Floor"
	case Door:
		return "Door"
	case UpStairs:
		return "UpStairs"
	case DownStairs:
		return "DownStairs"
	default:
		return "Reserved"
	}
}

// IsValid returns true for the six defined tile codes
func (t Tile) IsValid() bool {
	return t <= DownStairs
}

// IsWalkable returns true if an actor can stand on the tile
func (t Tile) IsWalkable() bool {
	switch t {
	case Floor, Door, UpStairs, DownStairs:
		return true
	default:
		return false
	}
}

// Glyph returns the single-character symbol used by text dumps
func (t Tile) Glyph() rune {
	switch t {
	case Wall:
		return '#'
	case Floor:
		return '.'
	case Door:
		return '+'
	case UpStairs:
		return '<'
	case DownStairs:
		return '>'
	default:
		return ' '
	}
}
