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

// Package feedback holds the comparison-feedback dictionary: constants
// harvested from comparison instrumentation, shared lock-free between the
// instrumentation writers and the mutation engine readers.
package feedback

import (
	"bytes"
	"sync/atomic"
)

const (
	// MapSize is the capacity of the constant array.
	MapSize = 8192
	// MaxEntryLen is the longest constant an entry can hold.
	MaxEntryLen = 32
)

// Entry is one harvested constant. Len is published last, so a reader that
// observes a non-zero length also observes the value bytes.
type Entry struct {
	len atomic.Uint32
	val [MaxEntryLen]byte
}

// CmpMap is a bounded single-producer-group, multi-consumer constant store.
// Writers reserve a slot by bumping cnt and publish it by storing the entry
// length; readers treat zero-length entries as missing.
type CmpMap struct {
	cnt     atomic.Uint32
	entries [MapSize]Entry
}

// Count returns the number of reserved slots. It may briefly exceed the
// number of published entries, or MapSize itself; readers clamp and skip.
func (m *CmpMap) Count() uint32 {
	return m.cnt.Load()
}

// Val returns the constant at slot i, or nil when the slot is out of range,
// unpublished, or holds a torn length.
func (m *CmpMap) Val(i int) []byte {
	if i < 0 || i >= MapSize {
		return nil
	}
	n := m.entries[i].len.Load()
	if n == 0 || n > MaxEntryLen {
		return nil
	}
	return m.entries[i].val[:n]
}

// AddConst records a constant observed by the instrumentation. Duplicates of
// already-published entries and out-of-range lengths are dropped. Returns
// whether the constant was stored.
func (m *CmpMap) AddConst(val []byte) bool {
	if len(val) == 0 || len(val) > MaxEntryLen {
		return false
	}

	published := m.cnt.Load()
	if published > MapSize {
		published = MapSize
	}
	for i := uint32(0); i < published; i++ {
		e := &m.entries[i]
		if e.len.Load() == uint32(len(val)) && bytes.Equal(e.val[:len(val)], val) {
			return false
		}
	}

	idx := m.cnt.Add(1)
	if idx > MapSize {
		return false
	}
	e := &m.entries[idx-1]
	copy(e.val[:], val)
	e.len.Store(uint32(len(val)))
	return true
}
