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

// magicValue is one entry of the magic constants table: size bytes of val are
// written into the buffer by the Magic operators.
type magicValue struct {
	val  [8]byte
	size int
}

// magicValues enumerates small numbers, extrema, sign boundaries and common
// off-by-one values in 1/2/4/8-byte widths, each framed native, big-endian
// and little-endian. The exact composition is part of the external contract:
// dropping entries measurably reduces fuzzing effectiveness.
var magicValues = []magicValue{
	// 1B - No endianness
	{[8]byte{0x00}, 1},
	{[8]byte{0x01}, 1},
	{[8]byte{0x02}, 1},
	{[8]byte{0x03}, 1},
	{[8]byte{0x04}, 1},
	{[8]byte{0x05}, 1},
	{[8]byte{0x06}, 1},
	{[8]byte{0x07}, 1},
	{[8]byte{0x08}, 1},
	{[8]byte{0x09}, 1},
	{[8]byte{0x0A}, 1},
	{[8]byte{0x0B}, 1},
	{[8]byte{0x0C}, 1},
	{[8]byte{0x0D}, 1},
	{[8]byte{0x0E}, 1},
	{[8]byte{0x0F}, 1},
	{[8]byte{0x10}, 1},
	{[8]byte{0x20}, 1},
	{[8]byte{0x40}, 1},
	{[8]byte{0x7E}, 1},
	{[8]byte{0x7F}, 1},
	{[8]byte{0x80}, 1},
	{[8]byte{0x81}, 1},
	{[8]byte{0xC0}, 1},
	{[8]byte{0xFE}, 1},
	{[8]byte{0xFF}, 1},
	// 2B - NE
	{[8]byte{0x00, 0x00}, 2},
	{[8]byte{0x01, 0x01}, 2},
	{[8]byte{0x80, 0x80}, 2},
	{[8]byte{0xFF, 0xFF}, 2},
	// 2B - BE
	{[8]byte{0x00, 0x01}, 2},
	{[8]byte{0x00, 0x02}, 2},
	{[8]byte{0x00, 0x03}, 2},
	{[8]byte{0x00, 0x04}, 2},
	{[8]byte{0x00, 0x05}, 2},
	{[8]byte{0x00, 0x06}, 2},
	{[8]byte{0x00, 0x07}, 2},
	{[8]byte{0x00, 0x08}, 2},
	{[8]byte{0x00, 0x09}, 2},
	{[8]byte{0x00, 0x0A}, 2},
	{[8]byte{0x00, 0x0B}, 2},
	{[8]byte{0x00, 0x0C}, 2},
	{[8]byte{0x00, 0x0D}, 2},
	{[8]byte{0x00, 0x0E}, 2},
	{[8]byte{0x00, 0x0F}, 2},
	{[8]byte{0x00, 0x10}, 2},
	{[8]byte{0x00, 0x20}, 2},
	{[8]byte{0x00, 0x40}, 2},
	{[8]byte{0x00, 0x7E}, 2},
	{[8]byte{0x00, 0x7F}, 2},
	{[8]byte{0x00, 0x80}, 2},
	{[8]byte{0x00, 0x81}, 2},
	{[8]byte{0x00, 0xC0}, 2},
	{[8]byte{0x00, 0xFE}, 2},
	{[8]byte{0x00, 0xFF}, 2},
	{[8]byte{0x7E, 0xFF}, 2},
	{[8]byte{0x7F, 0xFF}, 2},
	{[8]byte{0x80, 0x00}, 2},
	{[8]byte{0x80, 0x01}, 2},
	{[8]byte{0xFF, 0xFE}, 2},
	// 2B - LE
	{[8]byte{0x00, 0x00}, 2},
	{[8]byte{0x01, 0x00}, 2},
	{[8]byte{0x02, 0x00}, 2},
	{[8]byte{0x03, 0x00}, 2},
	{[8]byte{0x04, 0x00}, 2},
	{[8]byte{0x05, 0x00}, 2},
	{[8]byte{0x06, 0x00}, 2},
	{[8]byte{0x07, 0x00}, 2},
	{[8]byte{0x08, 0x00}, 2},
	{[8]byte{0x09, 0x00}, 2},
	{[8]byte{0x0A, 0x00}, 2},
	{[8]byte{0x0B, 0x00}, 2},
	{[8]byte{0x0C, 0x00}, 2},
	{[8]byte{0x0D, 0x00}, 2},
	{[8]byte{0x0E, 0x00}, 2},
	{[8]byte{0x0F, 0x00}, 2},
	{[8]byte{0x10, 0x00}, 2},
	{[8]byte{0x20, 0x00}, 2},
	{[8]byte{0x40, 0x00}, 2},
	{[8]byte{0x7E, 0x00}, 2},
	{[8]byte{0x7F, 0x00}, 2},
	{[8]byte{0x80, 0x00}, 2},
	{[8]byte{0x81, 0x00}, 2},
	{[8]byte{0xC0, 0x00}, 2},
	{[8]byte{0xFE, 0x00}, 2},
	{[8]byte{0xFF, 0x00}, 2},
	{[8]byte{0xFF, 0x7E}, 2},
	{[8]byte{0xFF, 0x7F}, 2},
	{[8]byte{0x00, 0x80}, 2},
	{[8]byte{0x01, 0x80}, 2},
	{[8]byte{0xFE, 0xFF}, 2},
	// 4B - NE
	{[8]byte{0x00, 0x00, 0x00, 0x00}, 4},
	{[8]byte{0x01, 0x01, 0x01, 0x01}, 4},
	{[8]byte{0x80, 0x80, 0x80, 0x80}, 4},
	{[8]byte{0xFF, 0xFF, 0xFF, 0xFF}, 4},
	// 4B - BE
	{[8]byte{0x00, 0x00, 0x00, 0x01}, 4},
	{[8]byte{0x00, 0x00, 0x00, 0x02}, 4},
	{[8]byte{0x00, 0x00, 0x00, 0x03}, 4},
	{[8]byte{0x00, 0x00, 0x00, 0x04}, 4},
	{[8]byte{0x00, 0x00, 0x00, 0x05}, 4},
	{[8]byte{0x00, 0x00, 0x00, 0x06}, 4},
	{[8]byte{0x00, 0x00, 0x00, 0x07}, 4},
	{[8]byte{0x00, 0x00, 0x00, 0x08}, 4},
	{[8]byte{0x00, 0x00, 0x00, 0x09}, 4},
	{[8]byte{0x00, 0x00, 0x00, 0x0A}, 4},
	{[8]byte{0x00, 0x00, 0x00, 0x0B}, 4},
	{[8]byte{0x00, 0x00, 0x00, 0x0C}, 4},
	{[8]byte{0x00, 0x00, 0x00, 0x0D}, 4},
	{[8]byte{0x00, 0x00, 0x00, 0x0E}, 4},
	{[8]byte{0x00, 0x00, 0x00, 0x0F}, 4},
	{[8]byte{0x00, 0x00, 0x00, 0x10}, 4},
	{[8]byte{0x00, 0x00, 0x00, 0x20}, 4},
	{[8]byte{0x00, 0x00, 0x00, 0x40}, 4},
	{[8]byte{0x00, 0x00, 0x00, 0x7E}, 4},
	{[8]byte{0x00, 0x00, 0x00, 0x7F}, 4},
	{[8]byte{0x00, 0x00, 0x00, 0x80}, 4},
	{[8]byte{0x00, 0x00, 0x00, 0x81}, 4},
	{[8]byte{0x00, 0x00, 0x00, 0xC0}, 4},
	{[8]byte{0x00, 0x00, 0x00, 0xFE}, 4},
	{[8]byte{0x00, 0x00, 0x00, 0xFF}, 4},
	{[8]byte{0x7E, 0xFF, 0xFF, 0xFF}, 4},
	{[8]byte{0x7F, 0xFF, 0xFF, 0xFF}, 4},
	{[8]byte{0x80, 0x00, 0x00, 0x00}, 4},
	{[8]byte{0x80, 0x00, 0x00, 0x01}, 4},
	{[8]byte{0xFF, 0xFF, 0xFF, 0xFE}, 4},
	// 4B - LE
	{[8]byte{0x00, 0x00, 0x00, 0x00}, 4},
	{[8]byte{0x01, 0x00, 0x00, 0x00}, 4},
	{[8]byte{0x02, 0x00, 0x00, 0x00}, 4},
	{[8]byte{0x03, 0x00, 0x00, 0x00}, 4},
	{[8]byte{0x04, 0x00, 0x00, 0x00}, 4},
	{[8]byte{0x05, 0x00, 0x00, 0x00}, 4},
	{[8]byte{0x06, 0x00, 0x00, 0x00}, 4},
	{[8]byte{0x07, 0x00, 0x00, 0x00}, 4},
	{[8]byte{0x08, 0x00, 0x00, 0x00}, 4},
	{[8]byte{0x09, 0x00, 0x00, 0x00}, 4},
	{[8]byte{0x0A, 0x00, 0x00, 0x00}, 4},
	{[8]byte{0x0B, 0x00, 0x00, 0x00}, 4},
	{[8]byte{0x0C, 0x00, 0x00, 0x00}, 4},
	{[8]byte{0x0D, 0x00, 0x00, 0x00}, 4},
	{[8]byte{0x0E, 0x00, 0x00, 0x00}, 4},
	{[8]byte{0x0F, 0x00, 0x00, 0x00}, 4},
	{[8]byte{0x10, 0x00, 0x00, 0x00}, 4},
	{[8]byte{0x20, 0x00, 0x00, 0x00}, 4},
	{[8]byte{0x40, 0x00, 0x00, 0x00}, 4},
	{[8]byte{0x7E, 0x00, 0x00, 0x00}, 4},
	{[8]byte{0x7F, 0x00, 0x00, 0x00}, 4},
	{[8]byte{0x80, 0x00, 0x00, 0x00}, 4},
	{[8]byte{0x81, 0x00, 0x00, 0x00}, 4},
	{[8]byte{0xC0, 0x00, 0x00, 0x00}, 4},
	{[8]byte{0xFE, 0x00, 0x00, 0x00}, 4},
	{[8]byte{0xFF, 0x00, 0x00, 0x00}, 4},
	{[8]byte{0xFF, 0xFF, 0xFF, 0x7E}, 4},
	{[8]byte{0xFF, 0xFF, 0xFF, 0x7F}, 4},
	{[8]byte{0x00, 0x00, 0x00, 0x80}, 4},
	{[8]byte{0x01, 0x00, 0x00, 0x80}, 4},
	{[8]byte{0xFE, 0xFF, 0xFF, 0xFF}, 4},
	// 8B - NE
	{[8]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 8},
	{[8]byte{0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01}, 8},
	{[8]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80}, 8},
	{[8]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, 8},
	// 8B - BE
	{[8]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01}, 8},
	{[8]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x02}, 8},
	{[8]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x03}, 8},
	{[8]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x04}, 8},
	{[8]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x05}, 8},
	{[8]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x06}, 8},
	{[8]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x07}, 8},
	{[8]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x08}, 8},
	{[8]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x09}, 8},
	{[8]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x0A}, 8},
	{[8]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x0B}, 8},
	{[8]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x0C}, 8},
	{[8]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x0D}, 8},
	{[8]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x0E}, 8},
	{[8]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x0F}, 8},
	{[8]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10}, 8},
	{[8]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x20}, 8},
	{[8]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x40}, 8},
	{[8]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x7E}, 8},
	{[8]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x7F}, 8},
	{[8]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x80}, 8},
	{[8]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x81}, 8},
	{[8]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xC0}, 8},
	{[8]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xFE}, 8},
	{[8]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xFF}, 8},
	{[8]byte{0x7E, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, 8},
	{[8]byte{0x7F, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, 8},
	{[8]byte{0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 8},
	{[8]byte{0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01}, 8},
	{[8]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFE}, 8},
	// 8B - LE
	{[8]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 8},
	{[8]byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 8},
	{[8]byte{0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 8},
	{[8]byte{0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 8},
	{[8]byte{0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 8},
	{[8]byte{0x05, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 8},
	{[8]byte{0x06, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 8},
	{[8]byte{0x07, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 8},
	{[8]byte{0x08, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 8},
	{[8]byte{0x09, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 8},
	{[8]byte{0x0A, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 8},
	{[8]byte{0x0B, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 8},
	{[8]byte{0x0C, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 8},
	{[8]byte{0x0D, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 8},
	{[8]byte{0x0E, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 8},
	{[8]byte{0x0F, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 8},
	{[8]byte{0x10, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 8},
	{[8]byte{0x20, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 8},
	{[8]byte{0x40, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 8},
	{[8]byte{0x7E, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 8},
	{[8]byte{0x7F, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 8},
	{[8]byte{0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 8},
	{[8]byte{0x81, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 8},
	{[8]byte{0xC0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 8},
	{[8]byte{0xFE, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 8},
	{[8]byte{0xFF, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 8},
	{[8]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x7E}, 8},
	{[8]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x7F}, 8},
	{[8]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x80}, 8},
	{[8]byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x80}, 8},
	{[8]byte{0xFE, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, 8},
}
