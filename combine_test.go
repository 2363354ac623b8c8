// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package crc32

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombine(t *testing.T) {
	data := randomBytes(20, 777)
	want := Checksum(data)

	for _, split := range []int{0, 1, 3, 4, 100, 512, 776, 777} {
		a, b := data[:split], data[split:]
		got := Combine(Checksum(a), Checksum(b), int64(len(b)))
		if got != want {
			t.Errorf("Combine at split %d = 0x%08X, want 0x%08X", split, got, want)
		}
	}
}

func TestCombineKnownVector(t *testing.T) {
	// "12345" + "6789"
	assert.Equal(t, uint32(0xcbf43926), Combine(0xcbf53a1c, 0x9dbabf87, 4))
}

func TestCombineDegenerateLength(t *testing.T) {
	assert.Equal(t, uint32(0x12345678), Combine(0x12345678, 0x9abcdef0, 0))
	assert.Equal(t, uint32(0x12345678), Combine(0x12345678, 0x9abcdef0, -5))
}

func TestCombineLongSecondPart(t *testing.T) {
	a := []byte("header")
	b := make([]byte, 1<<20+13)
	for i := range b {
		b[i] = byte(i * 7)
	}

	whole := Update(Checksum(a), b)
	assert.Equal(t, whole, Combine(Checksum(a), Checksum(b), int64(len(b))))
}

func TestTableCombineCustomPolynomial(t *testing.T) {
	tab, err := TableFor(castagnoli)
	require.NoError(t, err)

	a, b := []byte("resumable "), []byte("upload chunk")
	whole := ChecksumWith(tab, append(append([]byte{}, a...), b...))

	got := tab.Combine(ChecksumWith(tab, a), ChecksumWith(tab, b), int64(len(b)))
	assert.Equal(t, whole, got)
}
