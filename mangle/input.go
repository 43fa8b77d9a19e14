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

package mangle

// Input is the working buffer a mutation run operates on. The backing array
// is allocated once at the maximum size; resizing only moves the logical
// length, so a mutation run never allocates.
type Input struct {
	buf  []byte
	size int
}

// NewInput allocates a working buffer able to hold up to maxSize bytes. The
// logical size starts at zero.
func NewInput(maxSize int) *Input {
	if maxSize < 1 {
		maxSize = 1
	}
	if maxSize > InputMaxSize {
		maxSize = InputMaxSize
	}
	return &Input{buf: make([]byte, maxSize)}
}

// Data returns the live region of the buffer. The slice aliases the backing
// array and is invalidated by the next mutation run.
func (in *Input) Data() []byte {
	return in.buf[:in.size]
}

// Size returns the current logical length.
func (in *Input) Size() int {
	return in.size
}

// MaxSize returns the hard capacity of the backing array.
func (in *Input) MaxSize() int {
	return len(in.buf)
}

// SetSize moves the logical length, clamped to [0, MaxSize]. All resizing
// routes through here.
func (in *Input) SetSize(n int) {
	if n < 0 {
		n = 0
	}
	if n > len(in.buf) {
		n = len(in.buf)
	}
	in.size = n
}

// Reset copies seed data into the buffer, truncating it to the capacity.
func (in *Input) Reset(data []byte) {
	n := copy(in.buf, data)
	in.size = n
}
