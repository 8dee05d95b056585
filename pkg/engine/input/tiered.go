package input

import (
	"sort"
	"time"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceTerminal
	DeviceNetwork
)

// Action represents a high-level viewer command.
type Action int

const (
	ActionNone Action = iota

	// Camera
	ActionPanNorth
	ActionPanSouth
	ActionPanWest
	ActionPanEast
	ActionCenter

	// Generation
	ActionRegenerate // same seed, fresh pipeline run
	ActionNewSeed    // clock seed
	ActionNextSeed   // seed + 1
	ActionCycleSize
	ActionToggleSecrets

	// Meta / UI
	ActionDump
	ActionScreenshot
	ActionExport
	ActionHelp
	ActionQuit
	ActionZoomIn
	ActionZoomOut
)

// Intent is the 4th-layer, high-level description of what the user wants.
type Intent struct {
	Action Action
}

// RawInput is the 1st-layer event emitted directly from an input device.
// Code is a device-specific identifier (e.g. "KeyW", "arrow_up").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is the 2nd-layer representation after debouncing.
// Terminal raw mode, tcell and ebiten already deliver one event per press,
// so this is a thin copy that keeps the layering explicit.
type DebouncedInput struct {
	Device Device
	Code   string
}

// NewDebouncedInput converts a raw event to a debounced event.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   raw.Code,
	}
}

// defaultBindings maps raw codes to actions (3rd-layer bindings).
// Multiple codes may point to the same Action.
func defaultBindings() map[string]Action {
	return map[string]Action{
		// Camera (arrows, WASD, Vim)
		"arrow_up":    ActionPanNorth,
		"w":           ActionPanNorth,
		"k":           ActionPanNorth,
		"arrow_down":  ActionPanSouth,
		"s":           ActionPanSouth,
		"j":           ActionPanSouth,
		"arrow_left":  ActionPanWest,
		"a":           ActionPanWest,
		"h":           ActionPanWest,
		"arrow_right": ActionPanEast,
		"d":           ActionPanEast,
		"l":           ActionPanEast,
		"c":           ActionCenter,
		"home":        ActionCenter,

		// Generation
		"r":     ActionRegenerate,
		"enter": ActionRegenerate,
		"n":     ActionNewSeed,
		".":     ActionNextSeed,
		"z":     ActionCycleSize,
		"x":     ActionToggleSecrets,
		"tab":   ActionToggleSecrets,

		// Meta
		"m":      ActionDump,
		"p":      ActionScreenshot,
		"f12":    ActionScreenshot,
		"b":      ActionExport,
		"?":      ActionHelp,
		"q":      ActionQuit,
		"escape": ActionQuit,
		"ctrl_c": ActionQuit,

		// Zoom (fixed bindings, not rebindable)
		"=":               ActionZoomIn,
		"+":               ActionZoomIn,
		"numpad_add":      ActionZoomIn,
		"-":               ActionZoomOut,
		"numpad_subtract": ActionZoomOut,
	}
}

var bindings = defaultBindings()

// reserved codes cannot be rebound or unbound
var reserved = map[string]bool{
	"arrow_up": true, "arrow_down": true, "arrow_left": true, "arrow_right": true,
	"escape": true, "ctrl_c": true,
}

// MapToIntent is the 3rd+4th layer: it applies the current bindings to a
// debounced input and returns a high-level Intent.
func MapToIntent(ev DebouncedInput) Intent {
	if act, ok := bindings[ev.Code]; ok {
		return Intent{Action: act}
	}
	return Intent{Action: ActionNone}
}

// IntentFor runs a raw code through every layer
func IntentFor(device Device, code string) Intent {
	return MapToIntent(NewDebouncedInput(RawInput{Device: device, Code: code, Timestamp: time.Now()}))
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionPanNorth:
		return "Pan North"
	case ActionPanSouth:
		return "Pan South"
	case ActionPanWest:
		return "Pan West"
	case ActionPanEast:
		return "Pan East"
	case ActionCenter:
		return "Center"
	case ActionRegenerate:
		return "Regenerate"
	case ActionNewSeed:
		return "New Seed"
	case ActionNextSeed:
		return "Next Seed"
	case ActionCycleSize:
		return "Cycle Size"
	case ActionToggleSecrets:
		return "Toggle Secrets"
	case ActionDump:
		return "Dump Map"
	case ActionScreenshot:
		return "Screenshot"
	case ActionExport:
		return "Export Binary"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	case ActionZoomIn:
		return "Zoom In"
	case ActionZoomOut:
		return "Zoom Out"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	// Stable ordering of codes within each action so help text doesn't flicker.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

// SetSingleBinding replaces all non-reserved bindings for the given action
// with a single code.
func SetSingleBinding(action Action, code string) {
	for c, a := range bindings {
		if reserved[c] {
			continue
		}
		if a == action {
			delete(bindings, c)
		}
	}
	if code != "" && !reserved[code] {
		bindings[code] = action
	}
}

// ResetBindings restores the default bindings
func ResetBindings() {
	bindings = defaultBindings()
}
