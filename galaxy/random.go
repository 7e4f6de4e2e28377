package galaxy

import (
	"github.com/MichaelTJones/pcg"
)

// Source is the random stream consumed by Generate.
// Float32 returns values in [0, 1); Intn returns values in [0, n).
type Source interface {
	Float32() float32
	Intn(n int) int
}

const pcgSequence = 0xda3e39cb94b95bdb

// PCGSource is a seedable PCG32 stream. Equal seeds yield equal sequences.
type PCGSource struct {
	r *pcg.PCG32
}

func NewSource(seed uint64) *PCGSource {
	s := &PCGSource{r: pcg.NewPCG32()}
	s.Seed(seed)
	return s
}

func (s *PCGSource) Seed(seed uint64) {
	s.r.Seed(seed, pcgSequence)
}

// Float32 keeps the top 24 bits so the result is exact and never reaches 1.
func (s *PCGSource) Float32() float32 {
	return float32(s.r.Random()>>8) / (1 << 24)
}

func (s *PCGSource) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(s.r.Bounded(uint32(n)))
}

// Range returns a value in [lo, hi).
func Range(src Source, lo, hi float32) float32 {
	return lo + src.Float32()*(hi-lo)
}
