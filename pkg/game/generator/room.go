package generator

import "mapgen/pkg/engine/world"

// Room priorities. Higher priority rooms receive stairs first.
const (
	PriorityStart   = 10
	PriorityEnd     = 8
	PriorityDefault = 5
)

// Room is a placed rectangular room. X, Y, W, H describe the floor interior;
// the wall ring sits one cell outside it.
type Room struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`

	Priority    int  `json:"priority"`
	Connected   bool `json:"connected"`
	Connections int  `json:"connections"`
	Hidden      bool `json:"hidden"`
}

// Rect returns the room interior as a rectangle
func (r Room) Rect() world.Rect {
	return world.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

// Center returns the interior cell (x + w/2, y + h/2)
func (r Room) Center() world.Point {
	return r.Rect().Center()
}

// Contains reports whether (x, y) is an interior cell
func (r Room) Contains(x, y int) bool {
	return r.Rect().Contains(x, y)
}

// OnRing reports whether (x, y) lies on the one-cell ring around the interior
func (r Room) OnRing(x, y int) bool {
	return r.Rect().Grow(1).Contains(x, y) && !r.Contains(x, y)
}

// IsRingCorner reports whether (x, y) is one of the four ring corners
func (r Room) IsRingCorner(x, y int) bool {
	return (x == r.X-1 || x == r.X+r.W) && (y == r.Y-1 || y == r.Y+r.H)
}

// IsInteriorCorner reports whether (x, y) is one of the four interior corners
func (r Room) IsInteriorCorner(x, y int) bool {
	return (x == r.X || x == r.X+r.W-1) && (y == r.Y || y == r.Y+r.H-1)
}

// RingCells returns the ring cells in clockwise order from the top-left corner
func (r Room) RingCells() []world.Point {
	g := r.Rect().Grow(1)
	cells := make([]world.Point, 0, 2*(g.W+g.H)-4)
	for x := g.X; x < g.X+g.W; x++ {
		cells = append(cells, world.Point{X: x, Y: g.Y})
	}
	for y := g.Y + 1; y < g.Y+g.H; y++ {
		cells = append(cells, world.Point{X: g.X + g.W - 1, Y: y})
	}
	for x := g.X + g.W - 2; x >= g.X; x-- {
		cells = append(cells, world.Point{X: x, Y: g.Y + g.H - 1})
	}
	for y := g.Y + g.H - 2; y > g.Y; y-- {
		cells = append(cells, world.Point{X: g.X, Y: y})
	}
	return cells
}
