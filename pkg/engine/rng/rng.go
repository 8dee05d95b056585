// Package rng provides the seeded 16-bit generator used by map generation.
//
// The generator is Metcalf's 16-bit xorshift (shifts 7, 9, 8), which visits
// every non-zero 16-bit state once per period of 65535. A zero seed is
// remapped to ZeroSeedState. Intn draws state-1 in [0, 65534] and rejects
// values at or above 65535 - 65535%max so the result is unbiased.
// Identical seeds and identical Intn call sequences always produce
// identical outputs.
package rng

import "time"

// ZeroSeedState replaces a zero seed, which would lock xorshift at zero
const ZeroSeedState uint16 = 0xACE1

// period is the number of distinct non-zero states
const period = 65535

// Source is a deterministic 16-bit random source
type Source struct {
	seed  uint16
	state uint16
}

// New creates a source seeded with seed
func New(seed uint16) *Source {
	s := &Source{}
	s.Seed(seed)
	return s
}

// ClockSeed derives a 16-bit seed from the wall clock
func ClockSeed() uint16 {
	return uint16(time.Now().UnixNano())
}

// Seed resets the source to the given seed
func (s *Source) Seed(seed uint16) {
	s.seed = seed
	s.state = seed
	if s.state == 0 {
		s.state = ZeroSeedState
	}
}

// SeedFromClock reseeds from the wall clock and returns the chosen seed
func (s *Source) SeedFromClock() uint16 {
	seed := ClockSeed()
	s.Seed(seed)
	return seed
}

// InitialSeed returns the seed the source was last reset with
func (s *Source) InitialSeed() uint16 {
	return s.seed
}

// Next advances the state and returns it (never zero)
func (s *Source) Next() uint16 {
	x := s.state
	x ^= x << 7
	x ^= x >> 9
	x ^= x << 8
	s.state = x
	return x
}

// Intn returns an unbiased integer in [0, max). It returns 0 when max <= 1.
func (s *Source) Intn(max int) int {
	if max <= 1 {
		return 0
	}
	if max > period {
		panic("rng: Intn bound exceeds 16-bit period")
	}
	limit := period - period%max
	for {
		v := int(s.Next()) - 1
		if v < limit {
			return v % max
		}
	}
}

// Range returns an integer in the inclusive range [lo, hi]
func (s *Source) Range(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.Intn(hi-lo+1)
}

// Chance returns true with the given percent probability
func (s *Source) Chance(percent int) bool {
	return s.Intn(100) < percent
}

// Shuffle performs a Fisher-Yates shuffle of n elements using swap
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := s.Intn(i + 1)
		swap(i, j)
	}
}
