package generator

import "math/rand"

// Balanced fills grids so every digit 1..9 appears as evenly as the cell
// count allows. It is not safe for concurrent use.
type Balanced struct {
	rng *rand.Rand
}

// NewBalanced wires a generator whose layouts are reproducible from seed.
func NewBalanced(seed int64) *Balanced {
	return &Balanced{rng: rand.New(rand.NewSource(seed))}
}

// NewBalancedFrom uses a caller-provided source.
func NewBalancedFrom(rng *rand.Rand) *Balanced {
	return &Balanced{rng: rng}
}
