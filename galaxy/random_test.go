package galaxy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPCGSource_Reproducible(t *testing.T) {
	a := NewSource(1234)
	b := NewSource(1234)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Float32(), b.Float32())
		require.Equal(t, a.Intn(12), b.Intn(12))
	}
}

func TestPCGSource_PinnedStream(t *testing.T) {
	s := NewSource(42)
	assert.Equal(t, []float32{0.442144752, 0.236237347, 0.953676283, 0.14759165},
		[]float32{s.Float32(), s.Float32(), s.Float32(), s.Float32()})

	s.Seed(42)
	var picks []int
	for i := 0; i < 6; i++ {
		picks = append(picks, s.Intn(12))
	}
	assert.Equal(t, []int{2, 2, 2, 1, 2, 0}, picks)
}

func TestPCGSource_Reseed(t *testing.T) {
	s := NewSource(9)
	first := []float32{s.Float32(), s.Float32(), s.Float32()}

	s.Seed(9)
	again := []float32{s.Float32(), s.Float32(), s.Float32()}
	assert.Equal(t, first, again)
}

func TestPCGSource_Ranges(t *testing.T) {
	s := NewSource(77)
	for i := 0; i < 10000; i++ {
		f := s.Float32()
		require.GreaterOrEqual(t, f, float32(0))
		require.Less(t, f, float32(1))

		n := s.Intn(4)
		require.GreaterOrEqual(t, n, 0)
		require.Less(t, n, 4)
	}
	assert.Equal(t, 0, s.Intn(0))
	assert.Equal(t, 0, s.Intn(-5))
}

func TestRange(t *testing.T) {
	s := NewSource(5)
	for i := 0; i < 1000; i++ {
		v := Range(s, 10, 30)
		require.GreaterOrEqual(t, v, float32(10))
		require.Less(t, v, float32(30))
	}
}
