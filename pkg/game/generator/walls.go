package generator

import "mapgen/pkg/engine/world"

// buildWalls turns every Empty cell that touches a walkable cell, including
// diagonally, into Wall. Running it again only adds walls next to new floor.
func (g *Generator) buildWalls() {
	grid := g.build.grid
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			if !grid.Get(x, y).IsWalkable() {
				continue
			}
			for _, n := range (world.Point{X: x, Y: y}).Neighbors8() {
				if grid.IsValidPosition(n.X, n.Y) && grid.Get(n.X, n.Y) == world.Empty {
					g.set(n, world.Wall)
				}
			}
		}
	}
}
