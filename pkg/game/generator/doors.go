package generator

import "mapgen/pkg/engine/world"

// placeDoors scans a corridor from both ends and puts a door where it
// first meets a room wall
func (g *Generator) placeDoors(path []world.Point) {
	g.placeDoorFrom(path, false)
	g.placeDoorFrom(path, true)
}

// placeDoorFrom walks path (reversed when backward is set), skipping room
// interiors, and stops at the first cell bordering a room interior. A cell
// that only touches an interior diagonally is a ring corner; the scan moves
// one cell further before trying.
func (g *Generator) placeDoorFrom(path []world.Point, backward bool) {
	at := func(i int) world.Point {
		if backward {
			return path[len(path)-1-i]
		}
		return path[i]
	}

	f := g.build
	for i := 0; i < len(path); i++ {
		p := at(i)
		if f.insideAnyRoom(p) {
			continue
		}
		touches, cardinal := g.touchesInterior(p)
		if !touches {
			continue
		}
		if !cardinal {
			i++
			if i >= len(path) {
				return
			}
			p = at(i)
		}
		if g.isValidRoomWallForDoor(p) && g.get(p) == world.Floor {
			g.set(p, world.Door)
		}
		return
	}
}

// touchesInterior reports whether p is 8-adjacent to a room interior, and
// whether one of those neighbours is cardinal
func (g *Generator) touchesInterior(p world.Point) (touches, cardinal bool) {
	f := g.build
	for i, n := range p.Neighbors8() {
		if !f.insideAnyRoom(n) {
			continue
		}
		touches = true
		if i < 4 {
			return true, true
		}
	}
	return touches, false
}

// isValidRoomWallForDoor reports whether p sits on some room's ring away
// from its corners and is not a corner cell of any room
func (g *Generator) isValidRoomWallForDoor(p world.Point) bool {
	f := g.build
	onRing := false
	for _, r := range f.rooms {
		if r.IsRingCorner(p.X, p.Y) || r.IsInteriorCorner(p.X, p.Y) {
			return false
		}
		if r.OnRing(p.X, p.Y) {
			onRing = true
		}
	}
	return onRing
}

// doorWallGaps turns corridor floor left on a room's wall into doors. It
// catches corridors forced through a room when both L orderings were blocked,
// and emergency corridors, which run center to center.
func (g *Generator) doorWallGaps() {
	for _, r := range g.build.rooms {
		for _, p := range r.RingCells() {
			if r.IsRingCorner(p.X, p.Y) {
				continue
			}
			if g.get(p) == world.Floor && g.isValidRoomWallForDoor(p) {
				g.set(p, world.Door)
			}
		}
	}
}
