// Package state holds the viewer session shared by the renderers.
package state

import (
	"fmt"

	"github.com/leonelquinteros/gotext"

	"mapgen/pkg/engine/input"
	"mapgen/pkg/engine/world"
	"mapgen/pkg/game/generator"
)

const (
	maxMessages = 5
	minZoom     = 1
	maxZoom     = 4
)

// Session represents what a viewer shows: the generator, its current floor,
// the camera and a short message log
type Session struct {
	Generator *generator.Generator

	// Camera is the map cell shown at the centre of the viewport
	Camera world.Point

	Messages []string

	RevealSecrets bool

	// ShowHelp asks the viewer to draw the key bindings
	ShowHelp bool

	// Zoom is the number of screen cells (or pixel multiplier) per map cell
	Zoom int

	// Quit is set when the viewer should close
	Quit bool

	// OnRegenerate, when set, is called after every successful regeneration
	OnRegenerate func(*generator.Floor)
}

// NewSession creates a session around g. The generator does not need to have
// produced a floor yet.
func NewSession(g *generator.Generator) *Session {
	s := &Session{
		Generator: g,
		Messages:  make([]string, 0),
		Zoom:      minZoom,
	}
	if g.Floor() != nil {
		s.CenterOnRoom(0)
	}
	return s
}

// Floor returns the floor being viewed, or nil
func (s *Session) Floor() *generator.Floor {
	return s.Generator.Floor()
}

// AddMessage adds a message to the session's message log
func (s *Session) AddMessage(msg string) {
	s.Messages = append(s.Messages, msg)

	// Keep only the last maxMessages
	if len(s.Messages) > maxMessages {
		s.Messages = s.Messages[len(s.Messages)-maxMessages:]
	}
}

// ClearMessages clears all messages
func (s *Session) ClearMessages() {
	s.Messages = make([]string, 0)
}

// Regenerate runs the generator again. With nextSeed the seed advances by
// one; otherwise the same seed is replayed. On failure the session shows the
// generator's empty floor.
func (s *Session) Regenerate(nextSeed bool) error {
	seed := s.Generator.Seed()
	if nextSeed {
		seed++
	}
	s.Generator.Init(seed)
	return s.generate()
}

// NewSeed regenerates from a clock seed
func (s *Session) NewSeed() error {
	s.Generator.ResetSeedFlag()
	return s.generate()
}

// CycleSize switches to the next map size preset and regenerates
func (s *Session) CycleSize() error {
	cfg := s.Generator.Config()
	cfg.MapSize = (cfg.MapSize + 1) % (generator.Large + 1)
	if err := s.Generator.SetParameters(cfg); err != nil {
		return err
	}
	s.Generator.Init(s.Generator.Seed())
	return s.generate()
}

func (s *Session) generate() error {
	if err := s.Generator.GenerateDungeon(); err != nil {
		s.AddMessage(fmt.Sprintf(gotext.Get("MSG_GENERATION_FAILED"), err))
		return err
	}
	f := s.Floor()
	s.CenterOnRoom(0)
	s.AddMessage(fmt.Sprintf(gotext.Get("MSG_GENERATED"), f.Seed(), f.RoomCount()))
	if s.OnRegenerate != nil {
		s.OnRegenerate(f)
	}
	return nil
}

// Pan moves the camera, clamped to the floor bounds
func (s *Session) Pan(dx, dy int) {
	s.CenterOn(s.Camera.X+dx, s.Camera.Y+dy)
}

// CenterOn moves the camera to (x, y), clamped to the floor bounds
func (s *Session) CenterOn(x, y int) {
	f := s.Floor()
	if f == nil {
		s.Camera = world.Point{X: x, Y: y}
		return
	}
	s.Camera = world.Point{X: clamp(x, 0, f.Width()-1), Y: clamp(y, 0, f.Height()-1)}
}

// CenterOnRoom moves the camera to the centre of room id
func (s *Session) CenterOnRoom(id int) {
	f := s.Floor()
	if f == nil || id < 0 || id >= f.RoomCount() {
		return
	}
	c := f.Room(id).Center()
	s.CenterOn(c.X, c.Y)
}

// ToggleSecrets flips secret-door highlighting
func (s *Session) ToggleSecrets() {
	s.RevealSecrets = !s.RevealSecrets
	if s.RevealSecrets {
		s.AddMessage(gotext.Get("MSG_SECRETS_SHOWN"))
	} else {
		s.AddMessage(gotext.Get("MSG_SECRETS_HIDDEN"))
	}
}

// ZoomBy changes the zoom level within its limits
func (s *Session) ZoomBy(delta int) {
	s.Zoom = clamp(s.Zoom+delta, minZoom, maxZoom)
}

// Viewport returns the top-left map cell of a cols x rows window centred on
// the camera, clamped so the window stays on the floor where possible
func (s *Session) Viewport(cols, rows int) (x0, y0 int) {
	f := s.Floor()
	if f == nil {
		return 0, 0
	}
	x0 = clamp(s.Camera.X-cols/2, 0, max(f.Width()-cols, 0))
	y0 = clamp(s.Camera.Y-rows/2, 0, max(f.Height()-rows, 0))
	return x0, y0
}

// Apply performs the session-level part of an intent. It returns true when
// the intent was handled here; dump, screenshot and export are left to the
// caller because they write files.
func (s *Session) Apply(intent input.Intent) bool {
	switch intent.Action {
	case input.ActionPanNorth:
		s.Pan(0, -1)
	case input.ActionPanSouth:
		s.Pan(0, 1)
	case input.ActionPanWest:
		s.Pan(-1, 0)
	case input.ActionPanEast:
		s.Pan(1, 0)
	case input.ActionCenter:
		s.CenterOnRoom(0)
	case input.ActionRegenerate:
		_ = s.Regenerate(false)
	case input.ActionNextSeed:
		_ = s.Regenerate(true)
	case input.ActionNewSeed:
		_ = s.NewSeed()
	case input.ActionCycleSize:
		_ = s.CycleSize()
	case input.ActionToggleSecrets:
		s.ToggleSecrets()
	case input.ActionZoomIn:
		s.ZoomBy(1)
	case input.ActionZoomOut:
		s.ZoomBy(-1)
	case input.ActionQuit:
		s.Quit = true
	default:
		return false
	}
	return true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
