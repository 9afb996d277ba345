package plant

import "math/rand/v2"

// BitSource supplies the direction of the daily temperature drift.
type BitSource interface {
	Bit() bool
}

type randBits struct {
	rng *rand.Rand
}

// NewRandBits returns an unseeded source backed by the runtime entropy pool.
func NewRandBits() BitSource {
	// #nosec G404
	return randBits{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeededBits is reproducible for a given seed.
func NewSeededBits(seed uint64) BitSource {
	// #nosec G404
	return randBits{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (b randBits) Bit() bool {
	return b.rng.IntN(2) == 1
}

// SequenceBits replays a fixed pattern, cycling when exhausted.
type SequenceBits struct {
	Bits []bool
	next int
}

func (s *SequenceBits) Bit() bool {
	if len(s.Bits) == 0 {
		return false
	}
	b := s.Bits[s.next%len(s.Bits)]
	s.next++
	return b
}

// AlternatingBits keeps the temperature oscillating around its start value.
func AlternatingBits() *SequenceBits {
	return &SequenceBits{Bits: []bool{true, false}}
}
