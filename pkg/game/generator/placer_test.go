package generator

import (
	"testing"

	"mapgen/pkg/engine/world"
)

func TestCanPlaceRoom_EdgeMargin(t *testing.T) {
	g := newTestGenerator(t, 40, 40)
	cases := []struct {
		x, y, w, h int
		want       bool
	}{
		{3, 3, 4, 4, true},
		{2, 3, 4, 4, false},
		{3, 2, 4, 4, false},
		{32, 3, 4, 4, true},  // 32+4+3 = 39 < 40
		{33, 3, 4, 4, false}, // 33+4+3 = 40
		{3, 33, 4, 4, false},
	}
	for _, c := range cases {
		if got := g.canPlaceRoom(c.x, c.y, c.w, c.h); got != c.want {
			t.Errorf("canPlaceRoom(%d,%d,%d,%d) = %v, want %v", c.x, c.y, c.w, c.h, got, c.want)
		}
	}
}

func TestCanPlaceRoom_Spacing(t *testing.T) {
	g := newTestGenerator(t, 64, 64, world.Rect{X: 10, Y: 10, W: 5, H: 5})
	// default distance 3 needs a gap of 4 free cells on one axis
	if g.canPlaceRoom(18, 10, 4, 4) {
		t.Error("accepted a room 3 columns away")
	}
	if !g.canPlaceRoom(19, 10, 4, 4) {
		t.Error("rejected a room 4 columns away")
	}
	if !g.canPlaceRoom(10, 19, 4, 4) {
		t.Error("rejected a room 4 rows away")
	}
	if g.canPlaceRoom(12, 12, 4, 4) {
		t.Error("accepted an overlapping room")
	}
}

func TestCanPlaceRoom_RejectsCarvedFootprint(t *testing.T) {
	g := newTestGenerator(t, 64, 64)
	g.set(world.Point{X: 30, Y: 30}, world.Floor)
	if g.canPlaceRoom(27, 27, 4, 4) {
		t.Error("accepted a room over a carved cell")
	}
	if g.canPlaceRoom(20, 20, 7, 7) {
		t.Error("accepted a room whose margin touches a carved cell")
	}
	if !g.canPlaceRoom(10, 10, 4, 4) {
		t.Error("rejected a room on empty ground")
	}
}

func TestPlaceRooms_RespectsLimitsAndSizes(t *testing.T) {
	for seed := uint16(1); seed < 30; seed++ {
		g := New()
		g.Init(seed)
		g.build = newFloor(g.params, seed)
		if err := g.placeRooms(); err != nil {
			t.Fatalf("seed %d: placeRooms() = %v", seed, err)
		}
		p := g.params
		rooms := g.build.rooms
		if len(rooms) > p.MaxRooms {
			t.Errorf("seed %d: placed %d rooms, max %d", seed, len(rooms), p.MaxRooms)
		}
		for i, r := range rooms {
			if r.W < p.MinRoomSize || r.W > p.MaxRoomSize || r.H < p.MinRoomSize || r.H > p.MaxRoomSize {
				t.Errorf("seed %d: room %d is %dx%d", seed, i, r.W, r.H)
			}
			for y := r.Y; y < r.Y+r.H; y++ {
				for x := r.X; x < r.X+r.W; x++ {
					if g.build.Tile(x, y) != world.Floor {
						t.Fatalf("seed %d: room %d interior (%d,%d) not floor", seed, i, x, y)
					}
				}
			}
		}
		for i, a := range rooms {
			for j := i + 1; j < len(rooms); j++ {
				b := rooms[j]
				if a.Rect().GapX(b.Rect()) < p.MinRoomDistance+1 && a.Rect().GapY(b.Rect()) < p.MinRoomDistance+1 {
					t.Errorf("seed %d: rooms %d and %d too close", seed, i, j)
				}
			}
		}
	}
}

func TestRollRoomSize_Bounds(t *testing.T) {
	g := newTestGenerator(t, 64, 64)
	g.params.MinRoomSize, g.params.MaxRoomSize = 4, 8
	for i := 0; i < 500; i++ {
		w, h := g.rollRoomSize()
		if w < 4 || w > 8 || h < 4 || h > 8 {
			t.Fatalf("rollRoomSize() = %dx%d, want sides in 4..8", w, h)
		}
	}

	g.params.MinRoomSize, g.params.MaxRoomSize = 5, 5
	if w, h := g.rollRoomSize(); w != 5 || h != 5 {
		t.Errorf("rollRoomSize() with fixed size = %dx%d, want 5x5", w, h)
	}
}

func TestSlotAnchor(t *testing.T) {
	g := newTestGenerator(t, 64, 64)
	g.params.GridSize = 4
	if x, y := g.slotAnchor(0, 4, 4); x != 6 || y != 6 {
		t.Errorf("slotAnchor(0) = (%d,%d), want (6,6)", x, y)
	}
	if x, y := g.slotAnchor(5, 8, 6); x != 20 || y != 21 {
		t.Errorf("slotAnchor(5) = (%d,%d), want (20,21)", x, y)
	}
}

func TestAssignRoomPriorities(t *testing.T) {
	g := newTestGenerator(t, 64, 64,
		world.Rect{X: 3, Y: 3, W: 4, H: 4},
		world.Rect{X: 20, Y: 3, W: 4, H: 4},
		world.Rect{X: 40, Y: 3, W: 4, H: 4},
	)
	g.assignRoomPriorities()
	rooms := g.build.rooms
	if rooms[0].Priority != PriorityStart || rooms[2].Priority != PriorityEnd {
		t.Errorf("priorities = %d, %d, %d", rooms[0].Priority, rooms[1].Priority, rooms[2].Priority)
	}
	if p := rooms[1].Priority; p < 5 || p > 7 {
		t.Errorf("middle priority = %d, want 5..7", p)
	}
}

func TestPlaceStairs_NeedsTwoRooms(t *testing.T) {
	g := newTestGenerator(t, 64, 64, world.Rect{X: 10, Y: 10, W: 4, H: 4})
	if err := g.placeStairs(); err == nil {
		t.Error("placeStairs() with one room succeeded")
	}
}

func TestPlaceStairs_TieGoesToLowerID(t *testing.T) {
	g := newTestGenerator(t, 64, 64,
		world.Rect{X: 5, Y: 5, W: 4, H: 4},
		world.Rect{X: 20, Y: 5, W: 4, H: 4},
		world.Rect{X: 35, Y: 5, W: 4, H: 4},
	)
	for i := range g.build.rooms {
		g.build.rooms[i].Priority = 6
	}
	g.build.rooms[2].Priority = 9
	if err := g.placeStairs(); err != nil {
		t.Fatal(err)
	}
	up, down := g.build.Stairs()
	if !g.build.PointInRoom(up.X, up.Y, 2) {
		t.Errorf("up stairs %v, want room 2", up)
	}
	if !g.build.PointInRoom(down.X, down.Y, 0) {
		t.Errorf("down stairs %v, want room 0", down)
	}
}
