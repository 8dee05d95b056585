package generator

import "github.com/leonelquinteros/gotext"

// Phase is a step of the generation pipeline
type Phase int

// Pipeline phases in execution order
const (
	PhaseReset Phase = iota
	PhaseRooms
	PhaseCorridors
	PhaseObfuscation
	PhaseStairs
	PhaseDone
)

// PhaseCount is the number of reported phases
const PhaseCount = int(PhaseDone) + 1

// Key returns the translation key of the phase label
func (p Phase) Key() string {
	switch p {
	case PhaseReset:
		return "PHASE_RESET"
	case PhaseRooms:
		return "PHASE_ROOMS"
	case PhaseCorridors:
		return "PHASE_CORRIDORS"
	case PhaseObfuscation:
		return "PHASE_OBFUSCATION"
	case PhaseStairs:
		return "PHASE_STAIRS"
	case PhaseDone:
		return "PHASE_DONE"
	default:
		return "PHASE_UNKNOWN"
	}
}

// dynamicGet is used for runtime translation key lookups.
var dynamicGet = gotext.Get

// Label returns the localised phase label
func (p Phase) Label() string {
	return dynamicGet(p.Key())
}

// Progress is reported after every phase
type Progress struct {
	Phase Phase
	Step  int
	Total int
}

// Percent returns completion as 0..100
func (p Progress) Percent() int {
	if p.Total <= 0 {
		return 0
	}
	return p.Step * 100 / p.Total
}

// ProgressFunc receives progress notifications. It runs on the generating
// goroutine and must not call back into the generator.
type ProgressFunc func(Progress)
