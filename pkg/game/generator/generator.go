// Package generator builds seeded dungeon floors: rooms on a jittered grid,
// a minimum spanning tree of L-shaped corridors, walls and doors, optional
// obfuscation (hidden rooms, niches, dead-end corridors) and stairs.
//
// A Generator is not safe for concurrent use. Run one per goroutine.
package generator

import (
	"fmt"
	"io"
	"log"

	"mapgen/pkg/engine/rng"
	"mapgen/pkg/engine/world"
)

// FloorGenerator is implemented by anything that produces floors
type FloorGenerator interface {
	GenerateDungeon() error
	Floor() *Floor
	Seed() uint16
}

// Generator owns the random source, the parameters and the last floor
type Generator struct {
	// Logger receives warnings about fallbacks and skipped edits
	Logger *log.Logger
	// Progress, when set, is called after every pipeline phase
	Progress ProgressFunc

	config Config
	params MapParameters
	seed   uint16
	reseed bool
	rnd    *rng.Source

	floor *Floor // last completed floor
	build *Floor // floor under construction
	cache roomCache

	journal  []tileEdit
	secrets  []world.Point // secret doors added by the tracked edit
	tracking bool

	hBuf, vBuf []world.Point
}

var _ FloorGenerator = (*Generator)(nil)

type tileEdit struct {
	p   world.Point
	old world.Tile
}

// New returns a generator with the default configuration that seeds itself
// from the clock until Init is called
func New() *Generator {
	cfg := DefaultConfig()
	return &Generator{
		Logger: log.New(io.Discard, "", 0),
		config: cfg,
		params: cfg.Parameters(),
		reseed: true,
		rnd:    rng.New(0),
	}
}

// Init fixes the seed used by subsequent generations
func (g *Generator) Init(seed uint16) {
	g.seed = seed
	g.reseed = false
	g.rnd.Seed(seed)
}

// ResetSeedFlag makes the next generation draw a fresh seed from the clock
func (g *Generator) ResetSeedFlag() {
	g.reseed = true
}

// Seed returns the seed of the last (or next, when fixed) generation
func (g *Generator) Seed() uint16 {
	return g.seed
}

// Config returns the active preset configuration
func (g *Generator) Config() Config {
	return g.config
}

// Parameters returns the active concrete parameters
func (g *Generator) Parameters() MapParameters {
	return g.params
}

// SetParameters selects presets for subsequent generations
func (g *Generator) SetParameters(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	g.config = cfg
	g.params = cfg.Parameters()
	return nil
}

// SetMapParameters overrides the concrete parameters directly
func (g *Generator) SetMapParameters(p MapParameters) error {
	if err := p.Validate(); err != nil {
		return err
	}
	g.params = p
	return nil
}

// MapSize returns the width and height of generated maps
func (g *Generator) MapSize() (int, int) {
	return g.params.Width, g.params.Height
}

// Floor returns the floor of the last generation, nil before the first one.
// After a failed generation it is empty.
func (g *Generator) Floor() *Floor {
	return g.floor
}

// GenerateWithParams validates the four preset numbers (each 0..2), applies
// them and generates
func (g *Generator) GenerateWithParams(size, hidden, niches, deception int) error {
	cfg := Config{
		MapSize:     MapSize(size),
		HiddenRooms: Level(hidden),
		Niches:      Level(niches),
		Deception:   Level(deception),
	}
	if err := g.SetParameters(cfg); err != nil {
		return err
	}
	return g.GenerateDungeon()
}

type phase struct {
	id  Phase
	run func(*Generator) error
}

var pipeline = []phase{
	{PhaseRooms, (*Generator).placeRooms},
	{PhaseCorridors, (*Generator).connectRooms},
	{PhaseObfuscation, (*Generator).obfuscate},
	{PhaseStairs, (*Generator).placeStairs},
}

// GenerateDungeon runs the full pipeline and replaces the previous floor.
// On failure the partial floor is discarded and Floor returns an empty floor
// with no rooms.
func (g *Generator) GenerateDungeon() error {
	if g.reseed {
		g.seed = rng.ClockSeed()
	}
	g.rnd.Seed(g.seed)
	g.build = newFloor(g.params, g.seed)
	g.floor = newFloor(g.params, g.seed)
	g.cache.reset()
	g.journal = g.journal[:0]
	g.secrets = g.secrets[:0]
	g.tracking = false
	g.report(PhaseReset)

	for _, ph := range pipeline {
		if err := ph.run(g); err != nil {
			g.Logger.Printf("generation failed (seed %d) during %s: %v", g.seed, ph.id.Key(), err)
			g.build = nil
			return fmt.Errorf("seed %d: %w", g.seed, err)
		}
		g.report(ph.id)
	}

	g.floor = g.build
	g.build = nil
	g.report(PhaseDone)
	return nil
}

func (g *Generator) report(p Phase) {
	if g.Progress != nil {
		g.Progress(Progress{Phase: p, Step: int(p) + 1, Total: PhaseCount})
	}
}

// set writes a tile on the floor under construction, journalling the old
// value while an edit is being tracked
func (g *Generator) set(p world.Point, t world.Tile) {
	grid := g.build.grid
	if !grid.IsValidPosition(p.X, p.Y) {
		return
	}
	if g.tracking {
		g.journal = append(g.journal, tileEdit{p: p, old: grid.Get(p.X, p.Y)})
	}
	grid.Set(p.X, p.Y, t)
}

func (g *Generator) get(p world.Point) world.Tile {
	return g.build.grid.Get(p.X, p.Y)
}

// hideDoor walls over a door and records it as a secret door. Secret doors
// stay passable for reachability checks.
func (g *Generator) hideDoor(p world.Point) {
	g.set(p, world.Wall)
	g.build.addSecretDoor(p)
	if g.tracking {
		g.secrets = append(g.secrets, p)
	}
}

// beginEdit starts journalling tile writes
func (g *Generator) beginEdit() {
	g.journal = g.journal[:0]
	g.secrets = g.secrets[:0]
	g.tracking = true
}

// commitEdit keeps the journalled writes
func (g *Generator) commitEdit() {
	g.journal = g.journal[:0]
	g.secrets = g.secrets[:0]
	g.tracking = false
}

// revertEdit undoes the journalled writes and secret doors in reverse order
func (g *Generator) revertEdit() {
	grid := g.build.grid
	for i := len(g.journal) - 1; i >= 0; i-- {
		e := g.journal[i]
		grid.Set(e.p.X, e.p.Y, e.old)
	}
	for i := len(g.secrets) - 1; i >= 0; i-- {
		g.build.removeSecretDoor(g.secrets[i])
	}
	g.journal = g.journal[:0]
	g.secrets = g.secrets[:0]
	g.tracking = false
}
