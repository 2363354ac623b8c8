// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package crc32

// gf2Dim is the dimension of the GF(2) vectors, the length of the CRC.
const gf2Dim = 32

// gf2Matrix is a linear operator over GF(2)^32. Row n is the image of the
// vector with only bit n set.
type gf2Matrix [gf2Dim]uint32

func (m *gf2Matrix) times(vec uint32) uint32 {
	var sum uint32
	for i := 0; vec != 0; i++ {
		if vec&1 != 0 {
			sum ^= m[i]
		}
		vec >>= 1
	}
	return sum
}

// square sets m to src*src.
func (m *gf2Matrix) square(src *gf2Matrix) {
	for n := 0; n < gf2Dim; n++ {
		m[n] = src.times(src[n])
	}
}

// Combine returns the IEEE CRC-32 of A followed by B, given crc1 = CRC(A),
// crc2 = CRC(B) and len2 = len(B), without access to the data itself.
func Combine(crc1, crc2 uint32, len2 int64) uint32 {
	return combine(IEEETable.Pattern(), crc1, crc2, len2)
}

// Combine is the package-level Combine for the table's polynomial.
func (t *Table) Combine(crc1, crc2 uint32, len2 int64) uint32 {
	return combine(t.Pattern(), crc1, crc2, len2)
}

func combine(poly uint32, crc1, crc2 uint32, len2 int64) uint32 {
	// degenerate case, also disallows negative lengths
	if len2 <= 0 {
		return crc1
	}

	var even gf2Matrix // even-power-of-two zeros operator
	var odd gf2Matrix  // odd-power-of-two zeros operator

	// operator for one zero bit in odd
	odd[0] = poly
	row := uint32(1)
	for n := 1; n < gf2Dim; n++ {
		odd[n] = row
		row <<= 1
	}

	// operator for two zero bits in even, then four zero bits in odd
	even.square(&odd)
	odd.square(&even)

	// Apply len2 zero bytes to crc1. The first square puts the operator for
	// one zero byte (eight zero bits) in even.
	for {
		even.square(&odd)
		if len2&1 != 0 {
			crc1 = even.times(crc1)
		}
		len2 >>= 1
		if len2 == 0 {
			break
		}

		// same again with odd and even swapped
		odd.square(&even)
		if len2&1 != 0 {
			crc1 = odd.times(crc1)
		}
		len2 >>= 1
		if len2 == 0 {
			break
		}
	}

	return crc1 ^ crc2
}
