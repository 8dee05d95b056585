package generator

import "mapgen/pkg/engine/world"

// roomCache holds room centers and a lazily filled Manhattan distance matrix.
// It is rebuilt after placement and read by the connector and obfuscation.
type roomCache struct {
	centers []world.Point
	dist    []int
	n       int
}

func (c *roomCache) rebuild(rooms []Room) {
	c.n = len(rooms)
	c.centers = c.centers[:0]
	for _, r := range rooms {
		c.centers = append(c.centers, r.Center())
	}
	if cap(c.dist) < c.n*c.n {
		c.dist = make([]int, c.n*c.n)
	}
	c.dist = c.dist[:c.n*c.n]
	for i := range c.dist {
		c.dist[i] = -1
	}
}

func (c *roomCache) reset() {
	c.n = 0
	c.centers = c.centers[:0]
	c.dist = c.dist[:0]
}

func (c *roomCache) center(i int) world.Point {
	return c.centers[i]
}

// distance returns the Manhattan distance between two room centers
func (c *roomCache) distance(i, j int) int {
	k := i*c.n + j
	if d := c.dist[k]; d >= 0 {
		return d
	}
	d := world.ManhattanDistance(c.centers[i], c.centers[j])
	c.dist[k] = d
	c.dist[j*c.n+i] = d
	return d
}
