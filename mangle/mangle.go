// Copyright 2025 The ByteFuzz Authors
// This file is part of the ByteFuzz library.
//
// The ByteFuzz library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The ByteFuzz library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the ByteFuzz library. If not, see <http://www.gnu.org/licenses/>.

// Package mangle implements the input mutation engine of the fuzzing
// harness: a stateless dispatcher over a fixed menu of byte-level mutation
// operators, applied in place to a length-bounded working buffer.
package mangle

import (
	"encoding/binary"
	"fmt"
	"math/bits"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common/mclock"

	"ByteFuzz/feedback"
)

// maxBlockLen bounds the block length of most mutation operators to keep
// changes local.
const maxBlockLen = 512

// CorpusSource supplies other corpus inputs for splicing. The returned slice
// is borrowed and only read for the duration of a single operator call; an
// empty corpus returns nil.
type CorpusSource interface {
	PickRandomInput(rnd *Rand) []byte
}

// Config are the immutable knobs of a mutation run.
type Config struct {
	// MaxInputSize bounds any growth operator.
	MaxInputSize int
	// MutationsPerRun is the baseline number of operator applications.
	MutationsPerRun int
	// OnlyPrintable restricts every written byte to ASCII 32..126.
	OnlyPrintable bool
}

// Mangler applies a pseudo-random sequence of mutation operators to a
// working buffer. One worker owns its Input exclusively for the duration of
// Mangle; the dictionaries and the corpus are only read.
type Mangler struct {
	rnd *Rand
	cfg Config

	dict        [][]byte
	cmpMap      *feedback.CmpMap
	cmpFeedback bool
	corpus      CorpusSource

	clock         mclock.Clock
	lastCovUpdate *atomic.Int64

	generation atomic.Uint64
}

// NewMangler returns an engine drawing its decisions from rnd.
func NewMangler(cfg Config, rnd *Rand) *Mangler {
	if cfg.MaxInputSize < 1 || cfg.MaxInputSize > InputMaxSize {
		cfg.MaxInputSize = InputMaxSize
	}
	if cfg.MutationsPerRun < 0 {
		cfg.MutationsPerRun = 0
	}
	return &Mangler{
		rnd:   rnd,
		cfg:   cfg,
		clock: mclock.System{},
	}
}

// SetDictionary installs the user-supplied dictionary. Entries are borrowed,
// never written.
func (m *Mangler) SetDictionary(dict [][]byte) {
	m.dict = dict
}

// SetCmpFeedback installs the comparison-feedback dictionary shared with the
// instrumentation side.
func (m *Mangler) SetCmpFeedback(cm *feedback.CmpMap, enabled bool) {
	m.cmpMap = cm
	m.cmpFeedback = enabled
}

// SetCorpus installs the splice source.
func (m *Mangler) SetCorpus(c CorpusSource) {
	m.corpus = c
}

// SetClock installs the clock and the shared last-coverage-update timestamp
// (milliseconds on the same clock). When lastCovUpdate is nil, the
// coverage-stagnation splice is disabled.
func (m *Mangler) SetClock(clock mclock.Clock, lastCovUpdate *atomic.Int64) {
	m.clock = clock
	m.lastCovUpdate = lastCovUpdate
}

// Generation returns the publication counter incremented at the end of every
// run. The atomic store acts as the write barrier publishing the buffer to
// downstream readers.
func (m *Mangler) Generation() uint64 {
	return m.generation.Load()
}

func (m *Mangler) nowMillis() int64 {
	return int64(m.clock.Now()) / int64(time.Millisecond)
}

// Buffer primitives. All of them silently clamp instead of failing.

// moveBytes copies n bytes from offFrom to offTo within the live region,
// overlap-safe. Out-of-range offsets are a no-op; n is clamped to what both
// ends can hold.
func (m *Mangler) moveBytes(in *Input, offFrom, offTo, n int) {
	if offFrom >= in.size || offTo >= in.size {
		return
	}
	if left := in.size - offFrom; n > left {
		n = left
	}
	if left := in.size - offTo; n > left {
		n = left
	}
	copy(in.buf[offTo:offTo+n], in.buf[offFrom:offFrom+n])
}

// overwrite copies min(len(src), size-off) bytes of src to off and, in
// printable mode, canonicalizes the written span.
func (m *Mangler) overwrite(in *Input, off int, src []byte, printable bool) {
	n := len(src)
	if n == 0 {
		return
	}
	if left := in.size - off; n > left {
		n = left
	}
	if n <= 0 {
		return
	}
	copy(in.buf[off:off+n], src[:n])
	if printable {
		turnToPrintable(in.buf[off : off+n])
	}
}

// inflate grows the buffer by up to n bytes at off, shifting the tail right.
// The gap is filled with spaces in printable mode and left as-is otherwise
// (callers typically overwrite it). Returns the actual growth, 0 when the
// buffer is already at the maximum.
func (m *Mangler) inflate(in *Input, off, n int, printable bool) int {
	if in.size >= m.cfg.MaxInputSize {
		return 0
	}
	if left := m.cfg.MaxInputSize - in.size; n > left {
		n = left
	}
	in.SetSize(in.size + n)
	m.moveBytes(in, off, off+n, in.size)
	if printable {
		for i := off; i < off+n; i++ {
			in.buf[i] = ' '
		}
	}
	return n
}

// insert inflates at off and overwrites the created gap with src.
func (m *Mangler) insert(in *Input, off int, src []byte, printable bool) {
	n := m.inflate(in, off, len(src), printable)
	m.overwrite(in, off, src[:n], printable)
}

// Mutation operators. Each one mutates in place and chooses its own offsets
// and lengths from the random stream.

func (m *Mangler) opBit(in *Input, printable bool) {
	off := m.rnd.Offset(in.size)
	in.buf[off] ^= byte(1) << m.rnd.Intn(0, 7)
	if printable {
		turnToPrintable(in.buf[off : off+1])
	}
}

func (m *Mangler) opIncByte(in *Input, printable bool) {
	off := m.rnd.Offset(in.size)
	if printable {
		in.buf[off] = (in.buf[off]-32+1)%95 + 32
	} else {
		in.buf[off]++
	}
}

func (m *Mangler) opDecByte(in *Input, printable bool) {
	off := m.rnd.Offset(in.size)
	if printable {
		in.buf[off] = (in.buf[off]-32+94)%95 + 32
	} else {
		in.buf[off]--
	}
}

func (m *Mangler) opNegByte(in *Input, printable bool) {
	off := m.rnd.Offset(in.size)
	if printable {
		in.buf[off] = 94 - (in.buf[off] - 32) + 32
	} else {
		in.buf[off] = ^in.buf[off]
	}
}

// addSubWithRange nudges the width-byte integer at off by a delta uniform in
// [-rng, +rng]. Half of the time the add happens after byte-swapping the
// value, simulating a foreign endianness.
func (m *Mangler) addSubWithRange(in *Input, off, width int, rng uint64, printable bool) {
	delta := int64(m.rnd.Uint64Range(0, rng*2)) - int64(rng)

	switch width {
	case 1:
		tmp := [1]byte{in.buf[off] + byte(delta)}
		m.overwrite(in, off, tmp[:], printable)
	case 2:
		val := binary.NativeEndian.Uint16(in.buf[off:])
		if m.rnd.Uint64()&0x1 == 1 {
			val += uint16(delta)
		} else {
			val = bits.ReverseBytes16(val)
			val += uint16(delta)
			val = bits.ReverseBytes16(val)
		}
		var tmp [2]byte
		binary.NativeEndian.PutUint16(tmp[:], val)
		m.overwrite(in, off, tmp[:], printable)
	case 4:
		val := binary.NativeEndian.Uint32(in.buf[off:])
		if m.rnd.Uint64()&0x1 == 1 {
			val += uint32(delta)
		} else {
			val = bits.ReverseBytes32(val)
			val += uint32(delta)
			val = bits.ReverseBytes32(val)
		}
		var tmp [4]byte
		binary.NativeEndian.PutUint32(tmp[:], val)
		m.overwrite(in, off, tmp[:], printable)
	case 8:
		val := binary.NativeEndian.Uint64(in.buf[off:])
		if m.rnd.Uint64()&0x1 == 1 {
			val += uint64(delta)
		} else {
			val = bits.ReverseBytes64(val)
			val += uint64(delta)
			val = bits.ReverseBytes64(val)
		}
		var tmp [8]byte
		binary.NativeEndian.PutUint64(tmp[:], val)
		m.overwrite(in, off, tmp[:], printable)
	default:
		panic(fmt.Sprintf("mangle: invalid operand width %d", width))
	}
}

func (m *Mangler) opAddSub(in *Input, printable bool) {
	off := m.rnd.Offset(in.size)

	// 1, 2, 4 or 8
	width := 1 << m.rnd.Intn(0, 3)
	if in.size-off < width {
		width = 1
	}

	var rng uint64
	switch width {
	case 1:
		rng = 16
	case 2:
		rng = 4096
	case 4:
		rng = 1048576
	case 8:
		rng = 268435456
	}

	m.addSubWithRange(in, off, width, rng, printable)
}

func (m *Mangler) opMemSet(in *Input, printable bool) {
	off := m.rnd.Offset(in.size)
	n := m.rnd.Skewed(minInt(maxBlockLen, in.size-off))
	var val byte
	if printable {
		val = m.rnd.PrintableByte()
	} else {
		val = byte(m.rnd.Intn(0, 255))
	}
	for i := off; i < off+n; i++ {
		in.buf[i] = val
	}
}

func (m *Mangler) opMemCopyOverwrite(in *Input, printable bool) {
	offFrom := m.rnd.Offset(in.size)
	offTo := m.rnd.Offset(in.size)
	n := m.rnd.Skewed(minInt(maxBlockLen, in.size-offFrom))

	m.overwrite(in, offTo, in.buf[offFrom:offFrom+n], printable)
}

func (m *Mangler) opMemCopyInsert(in *Input, printable bool) {
	offTo := m.rnd.Offset(in.size)
	offFrom := m.rnd.Offset(in.size)
	n := m.rnd.Skewed(minInt(maxBlockLen, in.size-offFrom))

	// The source aliases the working buffer; insert reads it after the tail
	// shift, exactly like the in-place memmove chain it mirrors.
	m.insert(in, offTo, in.buf[offFrom:offFrom+n], printable)
}

func (m *Mangler) opBytesOverwrite(in *Input, printable bool) {
	off := m.rnd.Offset(in.size)

	var buf [2]byte
	if printable {
		m.rnd.FillPrintable(buf[:])
	} else {
		binary.NativeEndian.PutUint16(buf[:], uint16(m.rnd.Uint64()))
	}

	toCopy := m.rnd.Intn(1, 2)
	m.overwrite(in, off, buf[:toCopy], printable)
}

func (m *Mangler) opBytesInsert(in *Input, printable bool) {
	var buf [2]byte
	if printable {
		m.rnd.FillPrintable(buf[:])
	} else {
		binary.NativeEndian.PutUint16(buf[:], uint16(m.rnd.Uint64()))
	}

	off := m.rnd.Offset(in.size)
	toCopy := m.rnd.Intn(1, 2)
	m.insert(in, off, buf[:toCopy], printable)
}

func (m *Mangler) opASCIINumOverwrite(in *Input, printable bool) {
	off := m.rnd.Offset(in.size)
	n := m.rnd.Intn(2, 8)

	var buf [20]byte
	num := fmt.Appendf(buf[:0], "%-19d", int64(m.rnd.Uint64()))

	m.overwrite(in, off, num[:n], printable)
}

func (m *Mangler) opASCIINumInsert(in *Input, printable bool) {
	off := m.rnd.Offset(in.size)
	n := m.rnd.Intn(2, 8)

	var buf [20]byte
	num := fmt.Appendf(buf[:0], "%-19d", int64(m.rnd.Uint64()))

	m.insert(in, off, num[:n], printable)
}

func (m *Mangler) opByteRepeatOverwrite(in *Input, printable bool) {
	off := m.rnd.Offset(in.size)
	destOff := off + 1
	maxSz := in.size - destOff

	// No space to repeat
	if maxSz == 0 {
		m.opBytesOverwrite(in, printable)
		return
	}

	n := m.rnd.Skewed(minInt(maxBlockLen, maxSz))
	val := in.buf[off]
	for i := destOff; i < destOff+n; i++ {
		in.buf[i] = val
	}
}

func (m *Mangler) opByteRepeatInsert(in *Input, printable bool) {
	off := m.rnd.Offset(in.size)
	destOff := off + 1
	maxSz := in.size - destOff

	// No space to repeat
	if maxSz == 0 {
		m.opBytesInsert(in, printable)
		return
	}

	n := m.rnd.Skewed(minInt(maxBlockLen, maxSz))
	n = m.inflate(in, destOff, n, printable)
	val := in.buf[off]
	for i := destOff; i < destOff+n; i++ {
		in.buf[i] = val
	}
}

func (m *Mangler) opMagicOverwrite(in *Input, printable bool) {
	off := m.rnd.Offset(in.size)
	choice := m.rnd.Intn(0, len(magicValues)-1)
	mv := &magicValues[choice]
	m.overwrite(in, off, mv.val[:mv.size], printable)
}

func (m *Mangler) opMagicInsert(in *Input, printable bool) {
	choice := m.rnd.Intn(0, len(magicValues)-1)
	off := m.rnd.Offset(in.size)
	mv := &magicValues[choice]
	m.insert(in, off, mv.val[:mv.size], printable)
}

func (m *Mangler) opDictionaryOverwrite(in *Input, printable bool) {
	if len(m.dict) == 0 {
		m.opBytesOverwrite(in, printable)
		return
	}
	off := m.rnd.Offset(in.size)
	choice := m.rnd.Intn(0, len(m.dict)-1)
	m.overwrite(in, off, m.dict[choice], printable)
}

func (m *Mangler) opDictionaryInsert(in *Input, printable bool) {
	if len(m.dict) == 0 {
		m.opBytesInsert(in, printable)
		return
	}
	choice := m.rnd.Intn(0, len(m.dict)-1)
	off := m.rnd.Offset(in.size)
	m.insert(in, off, m.dict[choice], printable)
}

// feedbackVal picks one constant from the comparison-feedback dictionary.
// Returns nil when the map is absent, disabled, empty, or the picked entry is
// still being written (zero length).
func (m *Mangler) feedbackVal() []byte {
	if !m.cmpFeedback || m.cmpMap == nil {
		return nil
	}
	cnt := m.cmpMap.Count()
	if cnt == 0 {
		return nil
	}
	if cnt > feedback.MapSize {
		cnt = feedback.MapSize
	}
	choice := m.rnd.Intn(0, int(cnt)-1)
	return m.cmpMap.Val(choice)
}

func (m *Mangler) opConstFeedbackOverwrite(in *Input, printable bool) {
	val := m.feedbackVal()
	if val == nil {
		m.opBytesOverwrite(in, printable)
		return
	}
	off := m.rnd.Offset(in.size)
	m.overwrite(in, off, val, printable)
}

func (m *Mangler) opConstFeedbackInsert(in *Input, printable bool) {
	val := m.feedbackVal()
	if val == nil {
		m.opBytesInsert(in, printable)
		return
	}
	off := m.rnd.Offset(in.size)
	m.insert(in, off, val, printable)
}

func (m *Mangler) opRandomOverwrite(in *Input, printable bool) {
	off := m.rnd.Offset(in.size)
	n := m.rnd.Skewed(minInt(maxBlockLen, in.size-off))
	if printable {
		m.rnd.FillPrintable(in.buf[off : off+n])
	} else {
		m.rnd.FillBytes(in.buf[off : off+n])
	}
}

func (m *Mangler) opRandomInsert(in *Input, printable bool) {
	off := m.rnd.Offset(in.size)
	n := m.rnd.Skewed(minInt(maxBlockLen, in.size-off))

	n = m.inflate(in, off, n, printable)

	if printable {
		m.rnd.FillPrintable(in.buf[off : off+n])
	} else {
		m.rnd.FillBytes(in.buf[off : off+n])
	}
}

func (m *Mangler) pickSpliceInput() []byte {
	if m.corpus == nil {
		return nil
	}
	return m.corpus.PickRandomInput(m.rnd)
}

func (m *Mangler) opSpliceOverwrite(in *Input, printable bool) {
	buf := m.pickSpliceInput()
	if len(buf) == 0 {
		m.opBytesOverwrite(in, printable)
		return
	}

	remoteOff := m.rnd.Skewed(len(buf)) - 1
	localOff := m.rnd.Offset(in.size)
	n := m.rnd.Skewed(minInt(len(buf)-remoteOff, in.size-localOff))
	m.overwrite(in, localOff, buf[remoteOff:remoteOff+n], printable)
}

func (m *Mangler) opSpliceInsert(in *Input, printable bool) {
	buf := m.pickSpliceInput()
	if len(buf) == 0 {
		m.opBytesInsert(in, printable)
		return
	}

	remoteOff := m.rnd.Skewed(len(buf)) - 1
	localOff := m.rnd.Offset(in.size)
	n := m.rnd.Skewed(minInt(len(buf)-remoteOff, in.size-localOff))
	m.insert(in, localOff, buf[remoteOff:remoteOff+n], printable)
}

func (m *Mangler) opExpand(in *Input, printable bool) {
	off := m.rnd.Offset(in.size)
	var n int
	if m.rnd.Uint64()%16 != 0 {
		n = m.rnd.Skewed(minInt(16, m.cfg.MaxInputSize-off))
	} else {
		n = m.rnd.Skewed(m.cfg.MaxInputSize - off)
	}

	m.inflate(in, off, n, printable)
}

func (m *Mangler) opShrink(in *Input, printable bool) {
	if in.size <= 2 {
		return
	}

	offStart := m.rnd.Offset(in.size)
	n := in.size - offStart - 1
	if n == 0 {
		return
	}
	if m.rnd.Uint64()%16 != 0 {
		n = m.rnd.Skewed(minInt(16, n))
	} else {
		n = m.rnd.Skewed(n)
	}
	// n never exceeds size-offStart-1, so offEnd stays inside the live
	// region; the tail copy relies on moveBytes' own clamping, with no
	// up-front validation here.
	offEnd := offStart + n
	m.moveBytes(in, offEnd, offStart, in.size-offEnd)
	in.SetSize(in.size - n)
}

func (m *Mangler) opResize(in *Input, printable bool) {
	oldSz := in.size
	newSz := 0

	choice := m.rnd.Intn(0, 32)
	switch {
	case choice == 0: // Set new size arbitrarily
		newSz = m.rnd.Intn(1, m.cfg.MaxInputSize)
	case choice <= 4: // Increase size by a small value
		newSz = oldSz + m.rnd.Intn(0, 8)
	case choice == 5: // Increase size by a larger value
		newSz = oldSz + m.rnd.Intn(9, 128)
	case choice <= 9: // Decrease size by a small value
		newSz = oldSz - m.rnd.Intn(0, 8)
	case choice == 10: // Decrease size by a larger value
		newSz = oldSz - m.rnd.Intn(9, 128)
	default: // Do nothing
		newSz = oldSz
	}
	if newSz < 1 {
		newSz = 1
	}
	if newSz > m.cfg.MaxInputSize {
		newSz = m.cfg.MaxInputSize
	}

	in.SetSize(newSz)
	if newSz > oldSz && printable {
		for i := oldSz; i < newSz; i++ {
			in.buf[i] = ' '
		}
	}
}

// mangleOps is the operator catalog. Every *Insert and Expand grows the
// buffer, so Shrink appears four times to keep size drift bounded.
var mangleOps = []func(*Mangler, *Input, bool){
	(*Mangler).opShrink,
	(*Mangler).opShrink,
	(*Mangler).opShrink,
	(*Mangler).opShrink,
	(*Mangler).opExpand,
	(*Mangler).opBit,
	(*Mangler).opIncByte,
	(*Mangler).opDecByte,
	(*Mangler).opNegByte,
	(*Mangler).opAddSub,
	(*Mangler).opMemSet,
	(*Mangler).opMemCopyOverwrite,
	(*Mangler).opMemCopyInsert,
	(*Mangler).opBytesOverwrite,
	(*Mangler).opBytesInsert,
	(*Mangler).opASCIINumOverwrite,
	(*Mangler).opASCIINumInsert,
	(*Mangler).opByteRepeatOverwrite,
	(*Mangler).opByteRepeatInsert,
	(*Mangler).opMagicOverwrite,
	(*Mangler).opMagicInsert,
	(*Mangler).opDictionaryOverwrite,
	(*Mangler).opDictionaryInsert,
	(*Mangler).opConstFeedbackOverwrite,
	(*Mangler).opConstFeedbackInsert,
	(*Mangler).opRandomOverwrite,
	(*Mangler).opRandomInsert,
	(*Mangler).opSpliceOverwrite,
	(*Mangler).opSpliceInsert,
}

// Mangle mutates in in place. slowFactor summarizes how slow the target was
// on this input; a slow input gets a more thorough shake-up.
func (m *Mangler) Mangle(in *Input, slowFactor uint8) {
	if m.cfg.MutationsPerRun == 0 {
		return
	}
	if in.size == 0 {
		m.opResize(in, m.cfg.OnlyPrintable)
	}

	var changes int
	switch {
	case slowFactor <= 2:
		changes = m.rnd.Intn(1, m.cfg.MutationsPerRun)
	case slowFactor <= 4:
		changes = maxInt(m.cfg.MutationsPerRun, 5)
	case slowFactor <= 9:
		changes = maxInt(m.cfg.MutationsPerRun, 7)
	default:
		changes = maxInt(m.cfg.MutationsPerRun, 10)
	}

	// Coverage has stagnated for over a second: cross-pollinate with an
	// extra splice before the regular run.
	if m.lastCovUpdate != nil && m.nowMillis()-m.lastCovUpdate.Load() > 1000 {
		switch m.rnd.Uint64() % 3 {
		case 0:
			m.opSpliceOverwrite(in, m.cfg.OnlyPrintable)
		case 1:
			m.opSpliceInsert(in, m.cfg.OnlyPrintable)
		}
	}

	for i := 0; i < changes; i++ {
		choice := m.rnd.Intn(0, len(mangleOps)-1)
		mangleOps[choice](m, in, m.cfg.OnlyPrintable)
	}

	// Publishes the buffer to downstream readers.
	m.generation.Add(1)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
