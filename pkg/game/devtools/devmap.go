package devtools

import (
	"mapgen/pkg/engine/world"
)

// DevGrid returns a hard-coded developer testing grid: one walled 4x4 room
// per tile type, placed in a row with a 3-cell margin between rooms. Each
// room holds its tile in the center and a door on the east wall. Renderers
// use it to check glyphs and colours without running the generator.
func DevGrid() *world.Grid {
	const (
		margin = 3
		size   = 4
	)
	tiles := world.AllTiles()
	width := margin + len(tiles)*(size+2+margin)
	height := 2*margin + size + 2
	grid := world.NewGrid(width, height)

	for i, t := range tiles {
		x0 := margin + i*(size+2+margin)
		y0 := margin
		for y := y0; y < y0+size+2; y++ {
			for x := x0; x < x0+size+2; x++ {
				edge := x == x0 || y == y0 || x == x0+size+1 || y == y0+size+1
				if edge {
					grid.Set(x, y, world.Wall)
				} else {
					grid.Set(x, y, world.Floor)
				}
			}
		}
		grid.Set(x0+size+1, y0+size/2, world.Door)
		grid.Set(x0+size/2, y0+size/2, t)
	}
	return grid
}
