// Package dice provides the randomness abstraction used by the game engine
// and the automated-player policy. Every random decision flows through a
// Source so games can be replayed from a seed.
package dice

// Source is the randomness provider for game decisions.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// chanceResolution is the number of buckets Chance divides [0, 1) into.
const chanceResolution = 1_000_000

// Chance reports true with probability p, clamped to [0, 1].
//
// Postcondition: p <= 0 always returns false without drawing; p >= 1 always
// returns true without drawing.
func Chance(src Source, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return src.Intn(chanceResolution) < int(p*chanceResolution)
}

// NewSource returns a seeded Source when seed is non-zero and a crypto-backed
// Source otherwise.
func NewSource(seed int64) Source {
	if seed == 0 {
		return NewCryptoSource()
	}
	return NewSeededSource(seed)
}
