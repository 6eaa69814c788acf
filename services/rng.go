package services

import "math/rand"

// Rand is the random source the match simulator draws from. Production uses
// the shared math/rand source; tests inject a seeded xorshift so outcomes are
// reproducible.
type Rand interface {
	// Float64 returns a uniform draw in [0, 1).
	Float64() float64
	// Intn returns a uniform draw in [0, n).
	Intn(n int) int
}

type systemRand struct{}

func (systemRand) Float64() float64 { return rand.Float64() }
func (systemRand) Intn(n int) int   { return rand.Intn(n) }

// NewRand returns the default non-deterministic source.
func NewRand() Rand {
	return systemRand{}
}

// XorShift32 is a tiny seedable PRNG, good enough for simulation rolls and
// exact-replay tests.
type XorShift32 struct {
	state uint32
}

func NewXorShift32(seed uint32) *XorShift32 {
	if seed == 0 {
		seed = 0x12345678
	}
	return &XorShift32{state: seed}
}

func (x *XorShift32) Next() uint32 {
	s := x.state
	s ^= s << 13
	s ^= s >> 17
	s ^= s << 5
	x.state = s
	return s
}

// Float64 divides by 2^32 so even the maximum draw stays below 1.
func (x *XorShift32) Float64() float64 {
	return float64(x.Next()) / (1 << 32)
}

func (x *XorShift32) Intn(n int) int {
	return int(x.Next() % uint32(n))
}
