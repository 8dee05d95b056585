package generator

import (
	"github.com/zyedidia/generic/mapset"

	"mapgen/pkg/engine/world"
)

// passable reports whether a flood fill may enter p. Secret doors count as
// passable: they are walls only to the eye.
func (f *Floor) passable(p world.Point) bool {
	return f.grid.Get(p.X, p.Y).IsWalkable() || f.secretSet.Has(p)
}

// reachableFrom flood-fills 4-connected passable cells from start
func (f *Floor) reachableFrom(start world.Point) mapset.Set[world.Point] {
	visited := mapset.New[world.Point]()
	if !f.passable(start) {
		return visited
	}
	queue := []world.Point{start}
	visited.Put(start)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, n := range current.Neighbors4() {
			if !visited.Has(n) && f.passable(n) {
				visited.Put(n)
				queue = append(queue, n)
			}
		}
	}
	return visited
}

// skeletonIntact reports whether every room center and every spanning tree
// or emergency corridor cell is reachable from the start room
func (f *Floor) skeletonIntact() bool {
	if len(f.rooms) == 0 {
		return true
	}
	reach := f.reachableFrom(f.rooms[0].Center())
	for _, r := range f.rooms {
		if !reach.Has(r.Center()) {
			return false
		}
	}
	for _, c := range f.corridors {
		if c.Kind != CorridorMST && c.Kind != CorridorEmergency {
			continue
		}
		for _, p := range c.Path {
			if !reach.Has(p) {
				return false
			}
		}
	}
	return true
}
