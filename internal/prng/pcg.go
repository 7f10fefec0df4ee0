// Package prng provides the deterministic random number generator used for
// all procedural content, and the ranged sampler that maps its output onto
// dice-sized intervals without modulo bias.
package prng

import (
	"math/bits"
	"time"
)

const (
	pcgMultiplier uint64 = 6364136223846793005
	pcgIncrement  uint64 = 1442695040888963407
)

// Source is anything that produces a stream of 32-bit random values.
type Source interface {
	NextUint32() uint32
}

// PCG32 is a 64-bit state, 32-bit output permuted congruential generator.
//
// PCG32 has value semantics: copying a generator produces an independent
// stream that starts from the same point. A single generator must not be
// shared between goroutines.
type PCG32 struct {
	state uint64
}

// New creates a generator whose state is exactly the given seed.
func New(seed uint64) PCG32 {
	return PCG32{state: seed}
}

// State returns the current internal state. Passing it to New recreates
// a generator that continues the same stream.
func (g *PCG32) State() uint64 {
	return g.state
}

// NextUint32 advances the generator and returns the next output.
func (g *PCG32) NextUint32() uint32 {
	g.state = g.state*pcgMultiplier + pcgIncrement
	x := g.state
	rotation := int(x >> 59)
	x ^= x >> 18
	return bits.RotateLeft32(uint32(x>>27), -rotation)
}

// SeedFromTime derives a seed from the current time.
func SeedFromTime() uint64 {
	return seedFromTime(time.Now())
}

// seedFromTime multiplies whole seconds by the sub-second nanoseconds so two
// processes started within the same second still diverge.
func seedFromTime(t time.Time) uint64 {
	secs := uint64(t.Unix())
	nanos := uint64(t.Nanosecond())
	if nanos != 0 {
		return secs * nanos
	}
	return secs
}
