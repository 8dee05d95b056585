package world

// Point is a grid coordinate
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the component-wise sum of two points
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Neighbors4 returns the four cardinal neighbours in North, East, South, West order
func (p Point) Neighbors4() [4]Point {
	return [4]Point{
		{p.X, p.Y - 1},
		{p.X + 1, p.Y},
		{p.X, p.Y + 1},
		{p.X - 1, p.Y},
	}
}

// Neighbors8 returns the eight surrounding cells, cardinals first
func (p Point) Neighbors8() [8]Point {
	return [8]Point{
		{p.X, p.Y - 1},
		{p.X + 1, p.Y},
		{p.X, p.Y + 1},
		{p.X - 1, p.Y},
		{p.X - 1, p.Y - 1},
		{p.X + 1, p.Y - 1},
		{p.X + 1, p.Y + 1},
		{p.X - 1, p.Y + 1},
	}
}

// Abs returns the absolute value of an integer
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// AbsDiff returns |a - b|
func AbsDiff(a, b int) int {
	return Abs(a - b)
}

// ManhattanDistance returns the taxicab distance between two points
func ManhattanDistance(a, b Point) int {
	return AbsDiff(a.X, b.X) + AbsDiff(a.Y, b.Y)
}

// Rect is an axis-aligned rectangle covering [X, X+W) x [Y, Y+H)
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Contains reports whether the point lies inside the rectangle
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Grow returns the rectangle expanded by n cells on every side
func (r Rect) Grow(n int) Rect {
	return Rect{X: r.X - n, Y: r.Y - n, W: r.W + 2*n, H: r.H + 2*n}
}

// Center returns (X + W/2, Y + H/2)
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// GapX returns the number of columns strictly between two rectangles,
// negative when they overlap horizontally
func (r Rect) GapX(o Rect) int {
	if o.X >= r.X+r.W {
		return o.X - (r.X + r.W)
	}
	if r.X >= o.X+o.W {
		return r.X - (o.X + o.W)
	}
	return -1
}

// GapY returns the number of rows strictly between two rectangles,
// negative when they overlap vertically
func (r Rect) GapY(o Rect) int {
	if o.Y >= r.Y+r.H {
		return o.Y - (r.Y + r.H)
	}
	if r.Y >= o.Y+o.H {
		return r.Y - (o.Y + o.H)
	}
	return -1
}

// Overlaps reports whether two rectangles share at least one cell
func (r Rect) Overlaps(o Rect) bool {
	return r.GapX(o) < 0 && r.GapY(o) < 0
}
