package generator

import "mapgen/pkg/engine/world"

// Obfuscation constants
const (
	obfuscationRetries = 8
	deceptionMinReach  = 3
	deceptionReachRoll = 6
	deceptionJitter    = 4
	nicheMaxDepth      = 2
	playableMargin     = 2
)

// obfuscate conceals rooms, carves niches and plants dead-end corridors,
// in that order. Every edit is kept only if the spanning tree stays
// reachable from the start room.
func (g *Generator) obfuscate() error {
	g.hideRooms()
	g.carveNiches()
	g.plantDeceptionCorridors()
	return nil
}

// tryEdit runs edit up to obfuscationRetries times until one attempt applies
// and leaves the skeleton intact. Rejected attempts are rolled back.
func (g *Generator) tryEdit(what string, edit func() bool) bool {
	for attempt := 0; attempt < obfuscationRetries; attempt++ {
		g.beginEdit()
		if edit() && g.build.skeletonIntact() {
			g.commitEdit()
			return true
		}
		g.revertEdit()
	}
	g.Logger.Printf("skipping %s after %d attempts", what, obfuscationRetries)
	return false
}

// hideRooms walls over every door of a random selection of rooms. The
// start and end rooms are never hidden.
func (g *Generator) hideRooms() {
	f := g.build
	want := g.params.HiddenRoomCount(len(f.rooms))
	if want == 0 {
		return
	}

	pool := make([]int, 0, len(f.rooms))
	for id := 1; id < len(f.rooms)-1; id++ {
		pool = append(pool, id)
	}
	g.rnd.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	for hidden := 0; hidden < want && len(pool) > 0; {
		var id int
		ok := g.tryEdit("hidden room", func() bool {
			if len(pool) == 0 {
				return false
			}
			id, pool = pool[0], pool[1:]
			return g.sealRoom(id) > 0
		})
		if !ok {
			continue
		}
		f.rooms[id].Hidden = true
		hidden++
	}
}

// sealRoom turns the doors on a room's ring into secret doors and returns
// how many it sealed
func (g *Generator) sealRoom(id int) int {
	sealed := 0
	for _, p := range g.build.rooms[id].RingCells() {
		if g.get(p) == world.Door {
			g.hideDoor(p)
			sealed++
		}
	}
	return sealed
}

// carveNiches cuts small 1x1 to 2x2 alcoves into corridor walls
func (g *Generator) carveNiches() {
	f := g.build
	var corridors []int
	for i, c := range f.corridors {
		if c.Kind == CorridorMST || c.Kind == CorridorEmergency {
			corridors = append(corridors, i)
		}
	}
	want := g.params.NicheCount(len(corridors))

	for made := 0; made < want; made++ {
		var cells []world.Point
		ok := g.tryEdit("niche", func() bool {
			c := f.corridors[corridors[g.rnd.Intn(len(corridors))]]
			cells = g.rollNiche(c.Path)
			if cells == nil {
				return false
			}
			for _, p := range cells {
				g.set(p, world.Floor)
			}
			g.buildWalls()
			return true
		})
		if ok {
			f.corridors = append(f.corridors, Corridor{Kind: CorridorNiche, From: -1, To: -1, Path: cells})
		}
	}
}

// rollNiche picks a corridor cell and a wall beside it and returns the niche
// cells behind that wall, or nil when the spot is unsuitable
func (g *Generator) rollNiche(path []world.Point) []world.Point {
	f := g.build
	if len(path) == 0 {
		return nil
	}
	origin := path[g.rnd.Intn(len(path))]
	dir := world.AllDirections()[g.rnd.Intn(4)]
	depth := 1 + g.rnd.Intn(nicheMaxDepth)
	breadth := 1 + g.rnd.Intn(nicheMaxDepth)

	if g.get(origin) != world.Floor || f.insideAnyRoom(origin) {
		return nil
	}

	// the breadth extends along the clockwise neighbour of dir
	side := world.Direction((int(dir) + 1) % 4)
	sx, sy := side.Delta()
	cells := make([]world.Point, 0, depth*breadth)
	p := origin
	for d := 0; d < depth; d++ {
		p = dir.Step(p)
		for b := 0; b < breadth; b++ {
			cells = append(cells, world.Point{X: p.X + sx*b, Y: p.Y + sy*b})
		}
	}

	if g.get(cells[0]) != world.Wall {
		return nil
	}
	for _, c := range cells {
		if !f.grid.IsPlayablePosition(c.X, c.Y, playableMargin) {
			return nil
		}
		if t := g.get(c); t != world.Wall && t != world.Empty {
			return nil
		}
		if f.nearAnyRoom(c) || f.secretSet.Has(c) {
			return nil
		}
	}
	return cells
}

// plantDeceptionCorridors adds dead-end corridors leaving visible rooms
// through a fresh door
func (g *Generator) plantDeceptionCorridors() {
	f := g.build
	var sources []int
	for i, r := range f.rooms {
		if !r.Hidden {
			sources = append(sources, i)
		}
	}
	if len(sources) == 0 {
		return
	}
	want := g.params.DeceptionCount(len(f.rooms))

	for made := 0; made < want; made++ {
		var src int
		var path []world.Point
		ok := g.tryEdit("deception corridor", func() bool {
			src = sources[g.rnd.Intn(len(sources))]
			path = g.rollDeception(src)
			if path == nil {
				return false
			}
			g.set(path[0], world.Door)
			for _, p := range path[1:] {
				g.set(p, world.Floor)
			}
			g.capCorridor(path)
			g.buildWalls()
			return true
		})
		if ok {
			f.corridors = append(f.corridors, Corridor{Kind: CorridorDeception, From: src, To: -1, Path: path})
		}
	}
}

// rollDeception aims an L-shaped corridor from room src toward a point a few
// cells past one of its sides. It returns nil unless the exit is a plain wall
// midpoint and every later cell is empty and playable.
func (g *Generator) rollDeception(src int) []world.Point {
	f := g.build
	r := f.rooms[src]
	c := r.Center()
	dir := world.AllDirections()[g.rnd.Intn(4)]
	reach := deceptionMinReach + g.rnd.Intn(deceptionReachRoll)
	jitter := g.rnd.Range(-deceptionJitter, deceptionJitter)

	dx, dy := dir.Delta()
	target := c
	if dir.IsHorizontal() {
		target.X += dx * (r.W/2 + reach)
		target.Y += jitter
	} else {
		target.Y += dy * (r.H/2 + reach)
		target.X += jitter
	}

	exit, side := findRoomExit(r, target)
	if g.get(exit) != world.Wall || !g.isValidRoomWallForDoor(exit) {
		return nil
	}
	inner, ok := g.routeL(side.Step(exit), target, side)
	if !ok {
		return nil
	}
	path := append([]world.Point{exit}, inner...)
	for _, p := range path[1:] {
		if !f.grid.IsPlayablePosition(p.X, p.Y, playableMargin) || g.get(p) != world.Empty {
			return nil
		}
	}
	return path
}

// capCorridor walls off the cell beyond the end of a dead-end corridor
func (g *Generator) capCorridor(path []world.Point) {
	n := len(path)
	end := path[n-1]
	prev := path[n-2]
	beyond := world.Point{X: 2*end.X - prev.X, Y: 2*end.Y - prev.Y}
	if g.get(beyond) == world.Empty {
		g.set(beyond, world.Wall)
	}
}
