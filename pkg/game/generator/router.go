package generator

import "mapgen/pkg/engine/world"

// findRoomExit returns the ring midpoint on the side of room facing target.
// The dominant axis of the center-to-target offset picks the side.
func findRoomExit(r Room, target world.Point) (world.Point, world.Direction) {
	c := r.Center()
	dx, dy := target.X-c.X, target.Y-c.Y
	if world.Abs(dx) > world.Abs(dy) {
		if dx > 0 {
			return world.Point{X: r.X + r.W, Y: c.Y}, world.East
		}
		return world.Point{X: r.X - 1, Y: c.Y}, world.West
	}
	if dy > 0 {
		return world.Point{X: c.X, Y: r.Y + r.H}, world.South
	}
	return world.Point{X: c.X, Y: r.Y - 1}, world.North
}

// appendLPath appends the L-shaped path from -> to, endpoints included.
// horizontalFirst walks along from's row before turning.
func appendLPath(dst []world.Point, from, to world.Point, horizontalFirst bool) []world.Point {
	dst = append(dst, from)
	cur := from
	stepX := func() {
		for cur.X != to.X {
			cur.X += sign(to.X - cur.X)
			dst = append(dst, cur)
		}
	}
	stepY := func() {
		for cur.Y != to.Y {
			cur.Y += sign(to.Y - cur.Y)
			dst = append(dst, cur)
		}
	}
	if horizontalFirst {
		stepX()
		stepY()
	} else {
		stepY()
		stepX()
	}
	return dst
}

// crossesRoom reports whether any cell of path falls inside the
// ring-inclusive box of a room
func (g *Generator) crossesRoom(path []world.Point) bool {
	for _, p := range path {
		if g.build.nearAnyRoom(p) {
			return true
		}
	}
	return false
}

// routeL picks between the two L orderings from -> to. An ordering that
// stays clear of every room wins; when both do, the one leaving along the
// exit axis wins; when neither does, horizontal-first is used. The result is
// a fresh slice. ok is false when the path exceeds MaxPathLength.
func (g *Generator) routeL(from, to world.Point, exit world.Direction) (path []world.Point, ok bool) {
	g.hBuf = appendLPath(g.hBuf[:0], from, to, true)
	g.vBuf = appendLPath(g.vBuf[:0], from, to, false)

	if len(g.hBuf) > g.params.MaxPathLength {
		return nil, false
	}

	hCross := g.crossesRoom(g.hBuf)
	vCross := g.crossesRoom(g.vBuf)

	chosen := g.hBuf
	switch {
	case !hCross && !vCross:
		if !exit.IsHorizontal() {
			chosen = g.vBuf
		}
	case hCross && !vCross:
		chosen = g.vBuf
	}

	path = make([]world.Point, len(chosen))
	copy(path, chosen)
	return path, true
}

// routeExits joins two wall midpoints. The corridor leaves each exit one
// cell straight out before bending, so no leg runs along a room wall.
func (g *Generator) routeExits(from world.Point, fromSide world.Direction, to world.Point, toSide world.Direction) ([]world.Point, bool) {
	inner, ok := g.routeL(fromSide.Step(from), toSide.Step(to), fromSide)
	if !ok || len(inner)+2 > g.params.MaxPathLength {
		return nil, false
	}
	path := make([]world.Point, 0, len(inner)+2)
	path = append(path, from)
	path = append(path, inner...)
	return append(path, to), true
}

// drawCorridor turns every Empty cell of path into Floor
func (g *Generator) drawCorridor(path []world.Point) {
	for _, p := range path {
		if g.get(p) == world.Empty {
			g.set(p, world.Floor)
		}
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
