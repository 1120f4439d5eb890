package chip8

import (
	"math/rand"
	"time"
)

// RandomSource produces the random bytes consumed by the CXNN
// instruction.  It is an interface so tests can supply a
// deterministic fake.
type RandomSource interface {

	// NextByte returns one uniformly distributed random byte.
	NextByte() uint8
}

// prng is the RandomSource used outside of tests.
type prng struct {
	r *rand.Rand
}

// NewRandomSource returns the default, time-seeded, random source.
func NewRandomSource() RandomSource {
	return &prng{
		r: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NextByte returns one random byte.
func (p *prng) NextByte() uint8 {
	return uint8(p.r.Intn(256))
}
