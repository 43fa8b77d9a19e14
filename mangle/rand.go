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

import (
	"fmt"
	"math/rand"
)

// InputMaxSize is the hard upper bound on the size of any working buffer.
// Skewed draws above this limit indicate a programmer error.
const InputMaxSize = 1 << 20

// Rand is the uniform random oracle driving all mutation decisions. It wraps
// a seeded math/rand source so that a run is reproducible given the same seed
// and the same external dictionaries.
type Rand struct {
	r *rand.Rand
}

// NewRand returns an oracle seeded with the given value.
func NewRand(seed int64) *Rand {
	return &Rand{r: rand.New(rand.NewSource(seed))}
}

// NewRandFromSource returns an oracle drawing from src. Used by tests to
// script exact decision sequences.
func NewRandFromSource(src rand.Source) *Rand {
	return &Rand{r: rand.New(src)}
}

// Uint64 returns a uniform 64-bit value.
func (r *Rand) Uint64() uint64 {
	return r.r.Uint64()
}

// Uint64Range returns a uniform value in [min, max].
func (r *Rand) Uint64Range(min, max uint64) uint64 {
	if min > max {
		panic(fmt.Sprintf("mangle: rand range min %d > max %d", min, max))
	}
	return min + r.r.Uint64()%(max-min+1)
}

// Intn returns a uniform value in [min, max]. Both bounds must be
// non-negative.
func (r *Rand) Intn(min, max int) int {
	return int(r.Uint64Range(uint64(min), uint64(max)))
}

// Skewed returns a value in [1, max] with a quadratic bias toward 1: draw r
// uniformly from [1, max^2-1] and map it through r^2/max^3. Roughly 70% of
// the results land in the lower half and about half in the lower quarter,
// which keeps block mutations local.
func (r *Rand) Skewed(max int) int {
	if max == 0 {
		panic("mangle: skewed draw with max == 0")
	}
	if max > InputMaxSize {
		panic(fmt.Sprintf("mangle: skewed draw max %d > %d", max, InputMaxSize))
	}
	if max == 1 {
		return 1
	}

	m := uint64(max)
	max2 := m * m
	max3 := m * m * m

	rnd := r.Uint64Range(1, max2-1)
	// The square wraps for max close to InputMaxSize; the clamp below keeps
	// the result in range either way.
	ret := rnd*rnd/max3 + 1
	if ret < 1 {
		ret = 1
	}
	if ret > m {
		ret = m
	}
	return int(ret)
}

// Offset returns a position in [0, size), biased toward the beginning of the
// buffer.
func (r *Rand) Offset(size int) int {
	return r.Skewed(size) - 1
}

// Byte returns one uniform byte.
func (r *Rand) Byte() byte {
	return byte(r.r.Uint64())
}

// PrintableByte returns one uniform byte in the printable ASCII range.
func (r *Rand) PrintableByte() byte {
	return byte(r.Uint64Range(32, 126))
}

// FillBytes fills b with uniform random bytes.
func (r *Rand) FillBytes(b []byte) {
	r.r.Read(b)
}

// FillPrintable fills b with uniform printable ASCII bytes.
func (r *Rand) FillPrintable(b []byte) {
	for i := range b {
		b[i] = r.PrintableByte()
	}
}

// turnToPrintable canonicalizes every byte of b into the 32..126 range.
func turnToPrintable(b []byte) {
	for i := range b {
		b[i] = b[i]%95 + 32
	}
}
