package generator

import (
	"fmt"

	"mapgen/pkg/engine/world"
)

// edge is a spanning tree edge from an already connected room to a new one
type edge struct {
	from, to int
}

// spanningTree runs Prim's algorithm from room 0 over center distances.
// Ties go to the lower new room id, then the lower connected room id.
func (g *Generator) spanningTree() []edge {
	n := len(g.build.rooms)
	if n == 0 {
		return nil
	}
	inTree := make([]bool, n)
	inTree[0] = true
	edges := make([]edge, 0, n-1)

	for len(edges) < n-1 {
		best, bestFrom, bestDist := -1, -1, 0
		for j := 0; j < n; j++ {
			if inTree[j] {
				continue
			}
			for i := 0; i < n; i++ {
				if !inTree[i] {
					continue
				}
				if d := g.cache.distance(i, j); best < 0 || d < bestDist {
					best, bestFrom, bestDist = j, i, d
				}
			}
		}
		inTree[best] = true
		edges = append(edges, edge{from: bestFrom, to: best})
	}
	return edges
}

// connectRooms carves the spanning tree corridors, repairs any room left
// unreachable, then builds walls and doors
func (g *Generator) connectRooms() error {
	f := g.build
	f.rooms[0].Connected = true

	for _, e := range g.spanningTree() {
		path, ok := g.routeEdge(e)
		if !ok {
			g.Logger.Printf("corridor %d -> %d exceeds %d cells, deferring to fallback", e.from, e.to, g.params.MaxPathLength)
			continue
		}
		g.drawCorridor(path)
		f.corridors = append(f.corridors, Corridor{Kind: CorridorMST, From: e.from, To: e.to, Path: path})
		f.rooms[e.from].Connections++
		f.rooms[e.to].Connections++
	}

	if err := g.ensureConnected(); err != nil {
		return err
	}

	g.buildWalls()
	for _, c := range f.corridors {
		g.placeDoors(c.Path)
	}
	g.doorWallGaps()
	return nil
}

// routeEdge computes the corridor between the exits the two rooms present
// to each other
func (g *Generator) routeEdge(e edge) ([]world.Point, bool) {
	a, b := g.build.rooms[e.from], g.build.rooms[e.to]
	from, fromSide := findRoomExit(a, g.cache.center(e.to))
	to, toSide := findRoomExit(b, g.cache.center(e.from))
	return g.routeExits(from, fromSide, to, toSide)
}

// ensureConnected marks reachable rooms as connected and joins every other
// room to its nearest connected room with a straight emergency corridor
func (g *Generator) ensureConnected() error {
	f := g.build
	g.refreshConnected()

	for u := range f.rooms {
		if f.rooms[u].Connected {
			continue
		}
		v := g.nearestConnected(u)
		if v < 0 {
			break
		}
		path := appendLPath(nil, g.cache.center(u), g.cache.center(v), true)
		g.Logger.Printf("room %d unreachable, carving emergency corridor to room %d (%d cells)", u, v, len(path))
		g.drawCorridor(path)
		f.corridors = append(f.corridors, Corridor{Kind: CorridorEmergency, From: u, To: v, Path: path})
		f.rooms[u].Connections++
		f.rooms[v].Connections++
		g.refreshConnected()
	}

	for i, r := range f.rooms {
		if !r.Connected {
			return fmt.Errorf("%w: room %d", ErrConnectionFailure, i)
		}
	}
	return nil
}

// refreshConnected sets each room's Connected flag from a flood fill
// starting at room 0
func (g *Generator) refreshConnected() {
	f := g.build
	reach := f.reachableFrom(g.cache.center(0))
	for i := range f.rooms {
		f.rooms[i].Connected = reach.Has(g.cache.center(i))
	}
}

// nearestConnected returns the connected room closest to u, lowest id on ties
func (g *Generator) nearestConnected(u int) int {
	best, bestDist := -1, 0
	for v, r := range g.build.rooms {
		if v == u || !r.Connected {
			continue
		}
		if d := g.cache.distance(u, v); best < 0 || d < bestDist {
			best, bestDist = v, d
		}
	}
	return best
}
