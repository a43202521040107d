package game

import "lukechampine.com/frand"

// RNG is a single-word xorshift generator. It is fully determined by its seed
// so games can be replayed. Seed 0 is a fixed point and yields 0 forever.
type RNG struct {
	state uint32
}

// NewRNG seeds the generator with the low 32 bits of seed.
func NewRNG(seed int64) *RNG {
	return &RNG{state: uint32(seed)}
}

// NewRandomRNG seeds the generator once from a non-deterministic source.
func NewRandomRNG() *RNG {
	return NewRNG(RandomSeed())
}

// RandomSeed draws a seed in [0, 2^31).
func RandomSeed() int64 {
	return int64(frand.Uint64n(1 << 31))
}

// Next advances the state and returns a value in [0, 1).
func (r *RNG) Next() float64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return float64(x) / (1 << 32)
}

// State exposes the current word, mainly for checkpoints in tests
func (r *RNG) State() uint32 {
	return r.state
}
