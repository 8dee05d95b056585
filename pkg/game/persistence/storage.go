// Package persistence archives generated floors so they can be listed,
// reloaded and regenerated later.
package persistence

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"mapgen/pkg/engine/world"
	"mapgen/pkg/game/generator"
)

var (
	// ErrNotFound is returned when no floor has the requested name
	ErrNotFound = errors.New("floor not found")
	// ErrMismatch is returned when regenerating a record does not reproduce
	// its stored tiles
	ErrMismatch = errors.New("regenerated floor differs from record")
)

// Storage defines the interface for floor persistence
type Storage interface {
	SaveFloor(rec *FloorRecord) error
	LoadFloor(name string) (*FloorRecord, error)
	ListFloors() ([]string, error)
	DeleteFloor(name string) error
	Close() error
}

// FloorRecord is the archived form of a floor
type FloorRecord struct {
	Name        string                  `json:"name"`
	Seed        uint16                  `json:"seed"`
	Params      generator.MapParameters `json:"params"`
	Packed      []byte                  `json:"packed"`
	Rooms       []generator.Room        `json:"rooms"`
	Up          world.Point             `json:"up"`
	Down        world.Point             `json:"down"`
	SecretDoors []world.Point           `json:"secret_doors"`
	CreatedAt   time.Time               `json:"created_at"`
}

// NewFloorRecord captures f under name
func NewFloorRecord(name string, f *generator.Floor) *FloorRecord {
	up, down := f.Stairs()
	return &FloorRecord{
		Name:        name,
		Seed:        f.Seed(),
		Params:      f.Parameters(),
		Packed:      f.Packed(),
		Rooms:       f.Rooms(),
		Up:          up,
		Down:        down,
		SecretDoors: f.SecretDoors(),
		CreatedAt:   time.Now().UTC(),
	}
}

// Grid decodes the stored tiles
func (r *FloorRecord) Grid() (*world.Grid, error) {
	if r.Params.Width <= 0 || r.Params.Height <= 0 {
		return nil, fmt.Errorf("record %q: bad size %dx%d", r.Name, r.Params.Width, r.Params.Height)
	}
	g := world.NewGrid(r.Params.Width, r.Params.Height)
	if err := g.LoadPacked(r.Packed); err != nil {
		return nil, fmt.Errorf("record %q: %w", r.Name, err)
	}
	return g, nil
}

// Configure sets g up so its next generation reproduces the record
func (r *FloorRecord) Configure(g *generator.Generator) error {
	if err := g.SetMapParameters(r.Params); err != nil {
		return err
	}
	g.Init(r.Seed)
	return nil
}

// Check returns ErrMismatch unless f carries the record's tiles
func (r *FloorRecord) Check(f *generator.Floor) error {
	if f == nil || !bytes.Equal(f.Packed(), r.Packed) {
		return fmt.Errorf("record %q: %w", r.Name, ErrMismatch)
	}
	return nil
}

// Regenerate rebuilds the floor from the record's seed and parameters and
// checks that the result matches the stored tiles
func (r *FloorRecord) Regenerate() (*generator.Floor, error) {
	g := generator.New()
	if err := r.Configure(g); err != nil {
		return nil, err
	}
	if err := g.GenerateDungeon(); err != nil {
		return nil, err
	}
	f := g.Floor()
	if err := r.Check(f); err != nil {
		return nil, err
	}
	return f, nil
}

// Open returns the store selected by kind ("json" or "postgres"). target is
// the file path or connection string.
func Open(kind, target string) (Storage, error) {
	switch kind {
	case "", "json":
		return NewJSONStore(target)
	case "postgres":
		return NewPostgresStore(target)
	default:
		return nil, fmt.Errorf("unknown store %q", kind)
	}
}
