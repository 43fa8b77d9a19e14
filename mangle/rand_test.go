package mangle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptSource feeds a predetermined sequence of 64-bit values into the
// oracle, cycling when exhausted. Used to pin exact operator decisions.
type scriptSource struct {
	vals []uint64
	i    int
}

func (s *scriptSource) Uint64() uint64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func (s *scriptSource) Int63() int64 {
	return int64(s.Uint64() >> 1)
}

func (s *scriptSource) Seed(int64) {}

func scriptedRand(vals ...uint64) *Rand {
	return NewRandFromSource(&scriptSource{vals: vals})
}

// TestIntnBounds checks that every draw stays within the inclusive range
func TestIntnBounds(t *testing.T) {
	rnd := NewRand(1)
	for i := 0; i < 10000; i++ {
		v := rnd.Intn(3, 17)
		require.GreaterOrEqual(t, v, 3)
		require.LessOrEqual(t, v, 17)
	}
	// Degenerate range
	assert.Equal(t, 5, rnd.Intn(5, 5))
}

// TestIntnInvalidRange checks the fatal path for inverted bounds
func TestIntnInvalidRange(t *testing.T) {
	rnd := NewRand(1)
	assert.Panics(t, func() { rnd.Intn(10, 9) })
	assert.Panics(t, func() { rnd.Uint64Range(2, 1) })
}

// TestSkewedBounds checks range and the degenerate cases
func TestSkewedBounds(t *testing.T) {
	rnd := NewRand(2)

	assert.Equal(t, 1, rnd.Skewed(1))
	assert.Panics(t, func() { rnd.Skewed(0) })
	assert.Panics(t, func() { rnd.Skewed(InputMaxSize + 1) })

	for _, max := range []int{2, 3, 16, 512, 4096, InputMaxSize} {
		for i := 0; i < 5000; i++ {
			v := rnd.Skewed(max)
			require.GreaterOrEqual(t, v, 1, "max=%d", max)
			require.LessOrEqual(t, v, max, "max=%d", max)
		}
	}
}

// TestSkewedMean verifies the quadratic bias: the mean stays well below the
// uniform midpoint
func TestSkewedMean(t *testing.T) {
	rnd := NewRand(3)
	for _, max := range []int{16, 128, 512, 4096} {
		const draws = 200000
		sum := 0
		for i := 0; i < draws; i++ {
			sum += rnd.Skewed(max)
		}
		mean := float64(sum) / draws
		assert.LessOrEqual(t, mean, 0.35*float64(max), "max=%d mean=%f", max, mean)
	}
}

// TestOffsetLocality verifies that offsets pile up at the front of the
// buffer: at least about half of them land in the first quarter
func TestOffsetLocality(t *testing.T) {
	rnd := NewRand(4)
	const size = 1024
	const draws = 1000000

	low := 0
	for i := 0; i < draws; i++ {
		off := rnd.Offset(size)
		require.GreaterOrEqual(t, off, 0)
		require.Less(t, off, size)
		if off < size/4 {
			low++
		}
	}
	ratio := float64(low) / draws
	assert.Greater(t, ratio, 0.49, "lower-quarter ratio %f", ratio)
}

// TestPrintableDraws checks the printable generators stay in 32..126
func TestPrintableDraws(t *testing.T) {
	rnd := NewRand(5)
	for i := 0; i < 10000; i++ {
		b := rnd.PrintableByte()
		require.GreaterOrEqual(t, b, byte(32))
		require.LessOrEqual(t, b, byte(126))
	}

	buf := make([]byte, 4096)
	rnd.FillPrintable(buf)
	for i, b := range buf {
		require.GreaterOrEqual(t, b, byte(32), "index %d", i)
		require.LessOrEqual(t, b, byte(126), "index %d", i)
	}
}

// TestTurnToPrintable checks the canonicalization rule
func TestTurnToPrintable(t *testing.T) {
	buf := make([]byte, 256)
	for i := range buf {
		buf[i] = byte(i)
	}
	turnToPrintable(buf)
	for i, b := range buf {
		assert.Equal(t, byte(i)%95+32, b)
		require.GreaterOrEqual(t, b, byte(32))
		require.LessOrEqual(t, b, byte(126))
	}
}

// TestReproducibility: identical seeds produce identical streams
func TestReproducibility(t *testing.T) {
	a, b := NewRand(42), NewRand(42)
	for i := 0; i < 1000; i++ {
		require.Equal(t, a.Uint64(), b.Uint64())
	}
}
