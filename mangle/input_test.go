package mangle

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMangler(maxInputSize int, vals ...uint64) *Mangler {
	cfg := Config{MaxInputSize: maxInputSize, MutationsPerRun: 6}
	if len(vals) == 0 {
		return NewMangler(cfg, NewRand(1))
	}
	return NewMangler(cfg, scriptedRand(vals...))
}

// TestInputSetSize checks clamping at both ends
func TestInputSetSize(t *testing.T) {
	in := NewInput(16)
	assert.Equal(t, 0, in.Size())
	assert.Equal(t, 16, in.MaxSize())

	in.SetSize(8)
	assert.Equal(t, 8, in.Size())
	assert.Len(t, in.Data(), 8)

	in.SetSize(100)
	assert.Equal(t, 16, in.Size())

	in.SetSize(-3)
	assert.Equal(t, 0, in.Size())
}

// TestInputReset checks seeding and truncation
func TestInputReset(t *testing.T) {
	in := NewInput(4)
	in.Reset([]byte{1, 2, 3, 4, 5, 6})
	assert.Equal(t, 4, in.Size())
	assert.Equal(t, []byte{1, 2, 3, 4}, in.Data())

	in.Reset(nil)
	assert.Equal(t, 0, in.Size())
}

// TestInputCapClamp checks the constructor bounds
func TestInputCapClamp(t *testing.T) {
	assert.Equal(t, 1, NewInput(0).MaxSize())
	assert.Equal(t, InputMaxSize, NewInput(InputMaxSize+5).MaxSize())
}

// TestMoveClamping: out-of-range offsets no-op, length clamps to both ends
func TestMoveClamping(t *testing.T) {
	m := newTestMangler(16)
	in := NewInput(16)
	in.Reset([]byte{0, 1, 2, 3, 4, 5, 6, 7})
	orig := append([]byte(nil), in.Data()...)

	// Offsets past the live region do nothing
	m.moveBytes(in, 8, 0, 4)
	m.moveBytes(in, 0, 8, 4)
	m.moveBytes(in, 100, 0, 4)
	assert.Equal(t, orig, in.Data())

	// Length clamps to the shorter end
	m.moveBytes(in, 6, 0, 100)
	assert.Equal(t, []byte{6, 7, 2, 3, 4, 5, 6, 7}, in.Data())

	// Overlapping copy is memmove-safe
	in.Reset([]byte{0, 1, 2, 3, 4, 5, 6, 7})
	m.moveBytes(in, 0, 2, 6)
	assert.Equal(t, []byte{0, 1, 0, 1, 2, 3, 4, 5}, in.Data())
}

// TestOverwriteClamping: writes stop at the end of the live region
func TestOverwriteClamping(t *testing.T) {
	m := newTestMangler(16)
	in := NewInput(16)
	in.Reset(make([]byte, 8))

	m.overwrite(in, 6, []byte{0xAA, 0xBB, 0xCC, 0xDD}, false)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0xAA, 0xBB}, in.Data())

	// Empty source is a no-op
	m.overwrite(in, 0, nil, false)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0xAA, 0xBB}, in.Data())
}

// TestOverwritePrintable: the written span is canonicalized
func TestOverwritePrintable(t *testing.T) {
	m := newTestMangler(16)
	in := NewInput(16)
	in.Reset(bytes.Repeat([]byte{' '}, 8))

	m.overwrite(in, 2, []byte{0x00, 0xFF, 0x41}, true)
	for _, b := range in.Data() {
		require.GreaterOrEqual(t, b, byte(32))
		require.LessOrEqual(t, b, byte(126))
	}
	assert.Equal(t, byte(0x00%95+32), in.Data()[2])
	assert.Equal(t, byte(0xFF%95+32), in.Data()[3])
	assert.Equal(t, byte(0x41%95+32), in.Data()[4])
}

// TestInflate: growth shifts the tail right and clamps at the maximum
func TestInflate(t *testing.T) {
	m := newTestMangler(8)
	in := NewInput(8)
	in.Reset([]byte{1, 2, 3, 4})

	n := m.inflate(in, 1, 2, false)
	assert.Equal(t, 2, n)
	assert.Equal(t, 6, in.Size())
	// The tail moved right; the gap content is unspecified here
	assert.Equal(t, []byte{2, 3, 4}, in.Data()[3:6])
	assert.Equal(t, byte(1), in.Data()[0])

	// Clamped growth
	n = m.inflate(in, 0, 100, false)
	assert.Equal(t, 2, n)
	assert.Equal(t, 8, in.Size())

	// At the maximum: no growth at all
	n = m.inflate(in, 0, 1, false)
	assert.Equal(t, 0, n)
	assert.Equal(t, 8, in.Size())
}

// TestInflatePrintable: the gap is space-filled
func TestInflatePrintable(t *testing.T) {
	m := newTestMangler(16)
	in := NewInput(16)
	in.Reset([]byte("abcd"))

	n := m.inflate(in, 2, 3, true)
	assert.Equal(t, 3, n)
	assert.Equal(t, []byte("ab   cd"), in.Data())
}

// TestInsert combines inflate and overwrite
func TestInsert(t *testing.T) {
	m := newTestMangler(16)
	in := NewInput(16)
	in.Reset([]byte("abcd"))

	m.insert(in, 2, []byte("XY"), false)
	assert.Equal(t, []byte("abXYcd"), in.Data())

	// Insert on a full buffer writes nothing
	m2 := newTestMangler(4)
	in2 := NewInput(4)
	in2.Reset([]byte("abcd"))
	m2.insert(in2, 1, []byte("ZZ"), false)
	assert.Equal(t, []byte("abcd"), in2.Data())
}
