package generator

import (
	"fmt"

	"mapgen/pkg/engine/world"
)

// Placement constants
const (
	placementRetries  = 20
	edgeMargin        = 3
	anchorJitter      = 4
	rectangularChance = 60
)

// placeRooms visits the grid slots in a shuffled order and tries to place
// one room per slot until MaxRooms is reached
func (g *Generator) placeRooms() error {
	p := g.params
	slots := make([]int, p.GridSize*p.GridSize)
	for i := range slots {
		slots[i] = i
	}
	swap := func(i, j int) { slots[i], slots[j] = slots[j], slots[i] }
	g.rnd.Shuffle(len(slots), swap)
	for pass := 0; pass < 2; pass++ {
		for i := 0; i+1 < len(slots); i++ {
			if g.rnd.Intn(2) == 0 {
				swap(i, i+1)
			}
		}
	}

	for _, slot := range slots {
		if len(g.build.rooms) >= p.MaxRooms {
			break
		}
		g.placeInSlot(slot)
	}

	g.assignRoomPriorities()
	g.cache.rebuild(g.build.rooms)

	if n := len(g.build.rooms); n < 2 {
		return fmt.Errorf("%w: placed %d on a %dx%d map", ErrPlacementShortfall, n, p.Width, p.Height)
	}
	return nil
}

// placeInSlot tries the slot anchor, jittered, up to placementRetries extra
// times. A slot whose room cannot fit inside the edge margin is skipped.
func (g *Generator) placeInSlot(slot int) bool {
	p := g.params
	w, h := g.rollRoomSize()
	ax, ay := g.slotAnchor(slot, w, h)

	maxX := p.Width - edgeMargin - 1 - w
	maxY := p.Height - edgeMargin - 1 - h
	if maxX < edgeMargin || maxY < edgeMargin {
		return false
	}

	for attempt := 0; attempt <= placementRetries; attempt++ {
		x, y := ax, ay
		if attempt > 0 || g.rnd.Intn(2) == 0 {
			x += g.rnd.Range(-anchorJitter, anchorJitter)
			y += g.rnd.Range(-anchorJitter, anchorJitter)
		}
		x = clamp(x, edgeMargin, maxX)
		y = clamp(y, edgeMargin, maxY)
		if g.canPlaceRoom(x, y, w, h) {
			g.placeRoom(x, y, w, h)
			return true
		}
	}
	return false
}

// rollRoomSize picks a room size. Most rooms are rectangular: one side is
// drawn from the upper part of the range and the other from the lower part.
func (g *Generator) rollRoomSize() (int, int) {
	lo, hi := g.params.MinRoomSize, g.params.MaxRoomSize
	if lo < hi && g.rnd.Chance(rectangularChance) {
		long := g.rnd.Range(lo+1, hi)
		short := g.rnd.Range(lo, hi-1)
		if g.rnd.Intn(2) == 0 {
			return long, short
		}
		return short, long
	}
	return g.rnd.Range(lo, hi), g.rnd.Range(lo, hi)
}

// slotAnchor centers a w x h room inside grid cell slot
func (g *Generator) slotAnchor(slot, w, h int) (int, int) {
	p := g.params
	gx, gy := slot%p.GridSize, slot/p.GridSize
	cellW, cellH := p.Width/p.GridSize, p.Height/p.GridSize
	return gx*cellW + (cellW-w)/2, gy*cellH + (cellH-h)/2
}

// canPlaceRoom checks the edge margin, that the dilated footprint is still
// empty and the minimum gap to every placed room
func (g *Generator) canPlaceRoom(x, y, w, h int) bool {
	p := g.params
	if x < edgeMargin || y < edgeMargin || x+w+edgeMargin >= p.Width || y+h+edgeMargin >= p.Height {
		return false
	}

	d := p.MinRoomDistance
	grid := g.build.grid
	for cy := y - d; cy <= y+h+d; cy++ {
		for cx := x - d; cx <= x+w+d; cx++ {
			if grid.IsValidPosition(cx, cy) && grid.Get(cx, cy) != world.Empty {
				return false
			}
		}
	}

	candidate := world.Rect{X: x, Y: y, W: w, H: h}
	for _, r := range g.build.rooms {
		if candidate.GapX(r.Rect()) < d+1 && candidate.GapY(r.Rect()) < d+1 {
			return false
		}
	}
	return true
}

// placeRoom carves the interior and appends the room
func (g *Generator) placeRoom(x, y, w, h int) {
	for cy := y; cy < y+h; cy++ {
		for cx := x; cx < x+w; cx++ {
			g.set(world.Point{X: cx, Y: cy}, world.Floor)
		}
	}
	g.build.rooms = append(g.build.rooms, Room{X: x, Y: y, W: w, H: h, Priority: PriorityDefault})
}

// assignRoomPriorities marks the first room as start and the last as end.
// The rest draw 5..7.
func (g *Generator) assignRoomPriorities() {
	rooms := g.build.rooms
	last := len(rooms) - 1
	for i := range rooms {
		switch {
		case i == 0:
			rooms[i].Priority = PriorityStart
		case i == last:
			rooms[i].Priority = PriorityEnd
		default:
			rooms[i].Priority = PriorityDefault + g.rnd.Intn(3)
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
