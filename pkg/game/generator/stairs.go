package generator

import (
	"fmt"
	"sort"

	"mapgen/pkg/engine/world"
)

// placeStairs puts UpStairs in the highest priority room and DownStairs in
// the next one. Equal priorities go to the lower room id.
func (g *Generator) placeStairs() error {
	f := g.build
	if len(f.rooms) < 2 {
		return fmt.Errorf("%w: stairs need two rooms, have %d", ErrPlacementShortfall, len(f.rooms))
	}

	order := make([]int, len(f.rooms))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return f.rooms[order[a]].Priority > f.rooms[order[b]].Priority
	})

	f.up = g.stairCell(order[0])
	g.set(f.up, world.UpStairs)
	f.down = g.stairCell(order[1])
	g.set(f.down, world.DownStairs)
	return nil
}

// stairCell returns the room center, or the first interior floor cell next
// to it when the center is taken
func (g *Generator) stairCell(id int) world.Point {
	r := g.build.rooms[id]
	c := r.Center()
	if g.get(c) == world.Floor {
		return c
	}
	for _, n := range c.Neighbors8() {
		if r.Contains(n.X, n.Y) && g.get(n) == world.Floor {
			return n
		}
	}
	return c
}
