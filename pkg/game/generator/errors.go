package generator

import "errors"

var (
	// ErrInvalidParameter is returned for out-of-range presets or map parameters
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrPlacementShortfall is returned when fewer than two rooms could be placed
	ErrPlacementShortfall = errors.New("fewer than two rooms placed")

	// ErrConnectionFailure is returned when a room stays unreachable after the
	// emergency corridor fallback
	ErrConnectionFailure = errors.New("rooms could not be connected")
)
