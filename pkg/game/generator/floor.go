package generator

import (
	"github.com/zyedidia/generic/mapset"

	"mapgen/pkg/engine/world"
)

// CorridorKind tells how a corridor came to exist
type CorridorKind int

// Corridor kinds
const (
	CorridorMST CorridorKind = iota
	CorridorEmergency
	CorridorDeception
	CorridorNiche
)

// String returns the corridor kind name
func (k CorridorKind) String() string {
	switch k {
	case CorridorMST:
		return "mst"
	case CorridorEmergency:
		return "emergency"
	case CorridorDeception:
		return "deception"
	case CorridorNiche:
		return "niche"
	default:
		return "unknown"
	}
}

// Corridor is a recorded carved path. From and To are room ids, -1 when the
// end is not a room.
type Corridor struct {
	Kind CorridorKind  `json:"kind"`
	From int           `json:"from"`
	To   int           `json:"to"`
	Path []world.Point `json:"path"`
}

// Floor is one generated map: the packed tile grid plus the room table,
// corridor records and secret door positions.
type Floor struct {
	grid        *world.Grid
	rooms       []Room
	corridors   []Corridor
	secretDoors []world.Point
	secretSet   mapset.Set[world.Point]
	up, down    world.Point
	params      MapParameters
	seed        uint16
}

func newFloor(p MapParameters, seed uint16) *Floor {
	return &Floor{
		grid:      world.NewGrid(p.Width, p.Height),
		secretSet: mapset.New[world.Point](),
		up:        world.Point{X: -1, Y: -1},
		down:      world.Point{X: -1, Y: -1},
		params:    p,
		seed:      seed,
	}
}

// Width returns the map width in tiles
func (f *Floor) Width() int { return f.grid.Width() }

// Height returns the map height in tiles
func (f *Floor) Height() int { return f.grid.Height() }

// Seed returns the seed the floor was generated with
func (f *Floor) Seed() uint16 { return f.seed }

// Parameters returns the parameters the floor was generated with
func (f *Floor) Parameters() MapParameters { return f.params }

// Tile returns the tile at (x, y), Empty when out of bounds
func (f *Floor) Tile(x, y int) world.Tile {
	return f.grid.Get(x, y)
}

// InBounds reports whether (x, y) is on the map
func (f *Floor) InBounds(x, y int) bool {
	return f.grid.IsValidPosition(x, y)
}

// Walkable reports whether (x, y) holds a walkable tile
func (f *Floor) Walkable(x, y int) bool {
	return f.grid.Get(x, y).IsWalkable()
}

// PointInRoom reports whether (x, y) is an interior cell of room id
func (f *Floor) PointInRoom(x, y, id int) bool {
	if id < 0 || id >= len(f.rooms) {
		return false
	}
	return f.rooms[id].Contains(x, y)
}

// RoomAt returns the id of the room whose interior holds (x, y), or -1
func (f *Floor) RoomAt(x, y int) int {
	for i, r := range f.rooms {
		if r.Contains(x, y) {
			return i
		}
	}
	return -1
}

// RoomCount returns the number of placed rooms
func (f *Floor) RoomCount() int { return len(f.rooms) }

// Room returns room id
func (f *Floor) Room(id int) Room { return f.rooms[id] }

// Rooms returns a copy of the room table
func (f *Floor) Rooms() []Room {
	out := make([]Room, len(f.rooms))
	copy(out, f.rooms)
	return out
}

// Corridors returns the recorded corridors in carve order
func (f *Floor) Corridors() []Corridor {
	out := make([]Corridor, len(f.corridors))
	copy(out, f.corridors)
	return out
}

// CorridorCount returns how many corridors of the given kind were recorded
func (f *Floor) CorridorCount(kind CorridorKind) int {
	n := 0
	for _, c := range f.corridors {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// SecretDoors returns the door positions walled over by hidden rooms
func (f *Floor) SecretDoors() []world.Point {
	out := make([]world.Point, len(f.secretDoors))
	copy(out, f.secretDoors)
	return out
}

// IsSecretDoor reports whether (x, y) is a concealed door
func (f *Floor) IsSecretDoor(x, y int) bool {
	return f.secretSet.Has(world.Point{X: x, Y: y})
}

// HiddenRooms returns the ids of concealed rooms in ascending order
func (f *Floor) HiddenRooms() []int {
	var ids []int
	for i, r := range f.rooms {
		if r.Hidden {
			ids = append(ids, i)
		}
	}
	return ids
}

// Stairs returns the up and down stair positions, (-1, -1) when unplaced
func (f *Floor) Stairs() (up, down world.Point) {
	return f.up, f.down
}

// Packed returns a copy of the packed 3-bit tile buffer
func (f *Floor) Packed() []byte {
	return f.grid.Packed()
}

// Count returns the number of cells holding tile t
func (f *Floor) Count(t world.Tile) int {
	return f.grid.Count(t)
}

func (f *Floor) addSecretDoor(p world.Point) {
	f.secretDoors = append(f.secretDoors, p)
	f.secretSet.Put(p)
}

func (f *Floor) removeSecretDoor(p world.Point) {
	f.secretSet.Remove(p)
	for i, q := range f.secretDoors {
		if q == p {
			f.secretDoors = append(f.secretDoors[:i], f.secretDoors[i+1:]...)
			return
		}
	}
}

// insideAnyRoom reports whether p is an interior cell of some room
func (f *Floor) insideAnyRoom(p world.Point) bool {
	return f.RoomAt(p.X, p.Y) >= 0
}

// nearAnyRoom reports whether p lies within the ring-inclusive box of some room
func (f *Floor) nearAnyRoom(p world.Point) bool {
	for _, r := range f.rooms {
		if r.Rect().Grow(1).Contains(p.X, p.Y) {
			return true
		}
	}
	return false
}
