package generator

import (
	"errors"
	"fmt"

	"mapgen/pkg/engine/world"
)

// Validate checks the structural guarantees of a generated floor and returns
// every violation found, joined, or nil
func (f *Floor) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if msg := f.grid.Validate(); msg != "" {
		add("grid: %s", msg)
	}
	W, H := f.Width(), f.Height()
	d := f.params.MinRoomDistance

	for i, r := range f.rooms {
		if r.X < edgeMargin || r.Y < edgeMargin || r.X+r.W+edgeMargin > W || r.Y+r.H+edgeMargin > H {
			add("room %d at (%d,%d) %dx%d violates the edge margin", i, r.X, r.Y, r.W, r.H)
		}
		for j := i + 1; j < len(f.rooms); j++ {
			o := f.rooms[j]
			if r.Rect().GapX(o.Rect()) < d+1 && r.Rect().GapY(o.Rect()) < d+1 {
				add("rooms %d and %d are closer than %d", i, j, d+1)
			}
		}
		for y := r.Y; y < r.Y+r.H; y++ {
			for x := r.X; x < r.X+r.W; x++ {
				switch f.Tile(x, y) {
				case world.Floor, world.UpStairs, world.DownStairs:
				default:
					add("room %d interior (%d,%d) is %v", i, x, y, f.Tile(x, y))
				}
			}
		}
		if err := f.checkRoomWall(i); err != nil {
			errs = append(errs, err)
		}
	}

	for _, p := range f.secretDoors {
		if t := f.Tile(p.X, p.Y); t != world.Wall {
			add("secret door (%d,%d) is %v", p.X, p.Y, t)
		}
	}

	corridorCells := make(map[world.Point]bool)
	for _, c := range f.corridors {
		for _, p := range c.Path {
			corridorCells[p] = true
		}
	}

	walkable := 0
	var first world.Point
	for y := 0; y < H; y++ {
		for x := 0; x < W; x++ {
			t := f.Tile(x, y)
			p := world.Point{X: x, Y: y}
			if t.IsWalkable() {
				if walkable == 0 {
					first = p
				}
				walkable++
			}
			if t == world.Floor && !f.insideAnyRoom(p) && !corridorCells[p] {
				add("floor (%d,%d) belongs to no room or corridor", x, y)
			}
		}
	}

	for _, p := range f.grid.Find(world.Door) {
		if err := f.checkDoor(p); err != nil {
			errs = append(errs, err)
		}
	}

	if walkable > 0 {
		reach := f.reachableFrom(first)
		reached := 0
		for y := 0; y < H; y++ {
			for x := 0; x < W; x++ {
				if f.Tile(x, y).IsWalkable() && reach.Has(world.Point{X: x, Y: y}) {
					reached++
				}
			}
		}
		if reached != walkable {
			add("walkable area is split: %d of %d cells reachable", reached, walkable)
		}
	}

	if len(f.rooms) >= 2 {
		if n := f.Count(world.UpStairs); n != 1 {
			add("found %d up stairs, want 1", n)
		}
		if n := f.Count(world.DownStairs); n != 1 {
			add("found %d down stairs, want 1", n)
		}
	}

	return errors.Join(errs...)
}

// checkDoor verifies a door sits on exactly one room ring away from corners
func (f *Floor) checkDoor(p world.Point) error {
	rings := 0
	for i, r := range f.rooms {
		if r.IsRingCorner(p.X, p.Y) || r.IsInteriorCorner(p.X, p.Y) {
			return fmt.Errorf("door (%d,%d) is on a corner of room %d", p.X, p.Y, i)
		}
		if r.OnRing(p.X, p.Y) {
			rings++
		}
	}
	if rings != 1 {
		return fmt.Errorf("door (%d,%d) borders %d rooms, want 1", p.X, p.Y, rings)
	}
	return nil
}

// checkRoomWall verifies that every non-corner ring cell of room id is a wall
// or a door. Hidden rooms may not show a door.
func (f *Floor) checkRoomWall(id int) error {
	r := f.rooms[id]
	var errs []error
	for _, p := range r.RingCells() {
		if r.IsRingCorner(p.X, p.Y) {
			continue
		}
		switch t := f.Tile(p.X, p.Y); {
		case t == world.Wall:
		case t == world.Door && !r.Hidden:
		default:
			errs = append(errs, fmt.Errorf("room %d wall (%d,%d) is %v", id, p.X, p.Y, t))
		}
	}
	return errors.Join(errs...)
}
