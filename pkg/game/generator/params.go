package generator

import (
	"fmt"
	"strconv"
	"strings"
)

// MapSize is the map size preset
type MapSize int

// Map size presets
const (
	Small MapSize = iota
	Medium
	Large
)

// String returns the lower-case preset name
func (s MapSize) String() string {
	switch s {
	case Small:
		return "small"
	case Medium:
		return "medium"
	case Large:
		return "large"
	default:
		return "unknown"
	}
}

// IsValid returns true for the three defined presets
func (s MapSize) IsValid() bool {
	return s >= Small && s <= Large
}

// Level is an obfuscation intensity preset
type Level int

// Obfuscation levels
const (
	Low Level = iota
	Med
	High
)

// String returns the lower-case level name
func (l Level) String() string {
	switch l {
	case Low:
		return "low"
	case Med:
		return "med"
	case High:
		return "high"
	default:
		return "unknown"
	}
}

// IsValid returns true for the three defined levels
func (l Level) IsValid() bool {
	return l >= Low && l <= High
}

// Percent returns the share of rooms or corridors the level affects
func (l Level) Percent() int {
	switch l {
	case Low:
		return 10
	case Med:
		return 25
	case High:
		return 50
	default:
		return 0
	}
}

// ParseMapSize accepts a preset name or its number (0..2)
func ParseMapSize(s string) (MapSize, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "small", "s":
		return Small, nil
	case "medium", "m":
		return Medium, nil
	case "large", "l":
		return Large, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || !MapSize(n).IsValid() {
		return 0, fmt.Errorf("%w: map size %q", ErrInvalidParameter, s)
	}
	return MapSize(n), nil
}

// ParseLevel accepts a level name or its number (0..2)
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return Low, nil
	case "med", "medium":
		return Med, nil
	case "high":
		return High, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || !Level(n).IsValid() {
		return 0, fmt.Errorf("%w: obfuscation level %q", ErrInvalidParameter, s)
	}
	return Level(n), nil
}

// Config selects a map size preset and the three obfuscation levels
type Config struct {
	MapSize     MapSize `json:"map_size"`
	HiddenRooms Level   `json:"hidden_rooms"`
	Niches      Level   `json:"niches"`
	Deception   Level   `json:"deception"`
}

// DefaultConfig returns a medium map with every obfuscation level low
func DefaultConfig() Config {
	return Config{MapSize: Medium, HiddenRooms: Low, Niches: Low, Deception: Low}
}

// Validate rejects out-of-range presets
func (c Config) Validate() error {
	if !c.MapSize.IsValid() {
		return fmt.Errorf("%w: map size %d", ErrInvalidParameter, c.MapSize)
	}
	for name, l := range map[string]Level{"hidden rooms": c.HiddenRooms, "niches": c.Niches, "deception": c.Deception} {
		if !l.IsValid() {
			return fmt.Errorf("%w: %s level %d", ErrInvalidParameter, name, l)
		}
	}
	return nil
}

// Parameters derives the concrete generation numbers for the preset
func (c Config) Parameters() MapParameters {
	p := MapParameters{
		MinRoomDistance:   defaultMinRoomDistance,
		MaxPathLength:     defaultMaxPathLength,
		HiddenRoomPercent: c.HiddenRooms.Percent(),
		NichePercent:      c.Niches.Percent(),
		DeceptionPercent:  c.Deception.Percent(),
	}
	switch c.MapSize {
	case Small:
		p.Width, p.Height = 40, 40
		p.GridSize = 3
		p.MaxRooms = 9
		p.MinRoomSize, p.MaxRoomSize = 4, 6
	case Large:
		p.Width, p.Height = 96, 96
		p.GridSize = 6
		p.MaxRooms = 36
		p.MinRoomSize, p.MaxRoomSize = 4, 10
	default:
		p.Width, p.Height = 64, 64
		p.GridSize = 4
		p.MaxRooms = 20
		p.MinRoomSize, p.MaxRoomSize = 4, 8
	}
	return p
}

// Defaults shared by every preset
const (
	defaultMinRoomDistance = 3
	defaultMaxPathLength   = 256
)

// MapParameters holds the concrete numbers one generation runs with
type MapParameters struct {
	Width           int `json:"map_width"`
	Height          int `json:"map_height"`
	GridSize        int `json:"grid_size"`
	MaxRooms        int `json:"max_rooms"`
	MinRoomSize     int `json:"min_room_size"`
	MaxRoomSize     int `json:"max_room_size"`
	MinRoomDistance int `json:"min_room_distance"`
	MaxPathLength   int `json:"max_path_length"`

	HiddenRoomPercent int `json:"hidden_room_percent"`
	NichePercent      int `json:"niche_percent"`
	DeceptionPercent  int `json:"deception_percent"`
}

// Validate checks that the parameters describe a runnable generation.
// Maps too small to hold any room are valid; they fail at placement.
func (p MapParameters) Validate() error {
	switch {
	case p.Width <= 0 || p.Height <= 0:
		return fmt.Errorf("%w: map %dx%d", ErrInvalidParameter, p.Width, p.Height)
	case p.GridSize <= 0:
		return fmt.Errorf("%w: grid size %d", ErrInvalidParameter, p.GridSize)
	case p.MaxRooms < 0:
		return fmt.Errorf("%w: max rooms %d", ErrInvalidParameter, p.MaxRooms)
	case p.MinRoomSize < 1 || p.MaxRoomSize < p.MinRoomSize:
		return fmt.Errorf("%w: room size %d..%d", ErrInvalidParameter, p.MinRoomSize, p.MaxRoomSize)
	case p.MinRoomDistance < 0:
		return fmt.Errorf("%w: min room distance %d", ErrInvalidParameter, p.MinRoomDistance)
	case p.MaxPathLength < 2:
		return fmt.Errorf("%w: max path length %d", ErrInvalidParameter, p.MaxPathLength)
	}
	for _, pct := range []int{p.HiddenRoomPercent, p.NichePercent, p.DeceptionPercent} {
		if pct < 0 || pct > 100 {
			return fmt.Errorf("%w: percentage %d", ErrInvalidParameter, pct)
		}
	}
	return nil
}

// ceilPercent returns ⌈pct·n/100⌉
func ceilPercent(pct, n int) int {
	if pct <= 0 || n <= 0 {
		return 0
	}
	return (pct*n + 99) / 100
}

// HiddenRoomCount returns how many of n rooms to conceal. Start and end
// rooms are never hidden.
func (p MapParameters) HiddenRoomCount(rooms int) int {
	return min(ceilPercent(p.HiddenRoomPercent, rooms), max(rooms-2, 0))
}

// NicheCount returns how many niches to carve along the given corridors
func (p MapParameters) NicheCount(corridors int) int {
	return ceilPercent(p.NichePercent, corridors)
}

// DeceptionCount returns how many dead-end corridors to plant for n rooms
func (p MapParameters) DeceptionCount(rooms int) int {
	return ceilPercent(p.DeceptionPercent, rooms)
}
