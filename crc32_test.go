// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package crc32

import (
	stdcrc32 "hash/crc32"
	"math/rand/v2"
	"testing"
	"unsafe"

	kcrc32 "github.com/klauspost/crc32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// update is one way of computing a running checksum over a table.
type update struct {
	name string
	fn   func(crc uint32, tab *Table, p []byte) uint32
}

var updates = []update{
	{"bytes", UpdateBytes},
	{"little", func(crc uint32, tab *Table, p []byte) uint32 {
		return UpdateWords(crc, tab, p, LittleEndian)
	}},
	{"big", func(crc uint32, tab *Table, p []byte) uint32 {
		return UpdateWords(crc, tab, p, BigEndian)
	}},
}

func randomBytes(seed uint64, n int) []byte {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(rng.Uint32())
	}
	return b
}

func TestChecksumEmpty(t *testing.T) {
	assert.Equal(t, uint32(0), Checksum(nil))
	assert.Equal(t, uint32(0), Checksum([]byte{}))

	for _, u := range updates {
		t.Run(u.name, func(t *testing.T) {
			assert.Equal(t, uint32(0), u.fn(0, IEEETable, nil))
			// An empty chunk leaves any running checksum unchanged.
			assert.Equal(t, uint32(0xdeadbeef), u.fn(0xdeadbeef, IEEETable, []byte{}))
		})
	}
}

func TestKnownVectors(t *testing.T) {
	tests := []struct {
		input    string
		expected uint32
	}{
		{"", 0x00000000},
		{"a", 0xe8b7be43},
		{"abc", 0x352441c2},
		{"hello", 0x3610a686},
		{"message digest", 0x20159d7f},
		{"123456789", 0xcbf43926},
		{"The quick brown fox jumps over the lazy dog", 0x414fa339},
	}

	for _, test := range tests {
		if got := Checksum([]byte(test.input)); got != test.expected {
			t.Errorf("Checksum(%q) = 0x%08X, want 0x%08X", test.input, got, test.expected)
		}
		for _, u := range updates {
			if got := u.fn(0, IEEETable, []byte(test.input)); got != test.expected {
				t.Errorf("%s(%q) = 0x%08X, want 0x%08X", u.name, test.input, got, test.expected)
			}
		}
	}
}

func TestUpdateChaining(t *testing.T) {
	inputs := [][]byte{
		[]byte("The quick brown fox jumps over the lazy dog"),
		randomBytes(1, 300),
	}

	for _, data := range inputs {
		want := Checksum(data)
		for split := 0; split <= len(data); split++ {
			got := Update(Update(0, data[:split]), data[split:])
			if got != want {
				t.Fatalf("split at %d of %d: got 0x%08X, want 0x%08X", split, len(data), got, want)
			}
		}
	}
}

func TestUpdateChainingManyChunks(t *testing.T) {
	data := randomBytes(2, 4096)
	want := Checksum(data)

	for _, chunk := range []int{1, 3, 4, 7, 32, 33, 1000} {
		var crc uint32
		for p := data; len(p) > 0; {
			n := min(chunk, len(p))
			crc = Update(crc, p[:n])
			p = p[n:]
		}
		assert.Equalf(t, want, crc, "chunk size %d", chunk)
	}
}

// TestWordPathMatchesBytePath checks every length up to 1000 at every start
// alignment, so the unaligned prefix, the 32-byte blocks, the 4-byte words
// and the trailing bytes all take every possible size.
func TestWordPathMatchesBytePath(t *testing.T) {
	buf := randomBytes(3, 1000+3)
	seeds := []uint32{0, 0xffffffff, 0xdeadbeef, 0x12345678}

	for _, seed := range seeds {
		for off := 0; off < 4; off++ {
			for n := 0; n <= 1000; n++ {
				p := buf[off : off+n]
				want := UpdateBytes(seed, IEEETable, p)
				if got := UpdateWords(seed, IEEETable, p, LittleEndian); got != want {
					t.Fatalf("little: seed 0x%08X off %d len %d: got 0x%08X, want 0x%08X", seed, off, n, got, want)
				}
				if got := UpdateWords(seed, IEEETable, p, BigEndian); got != want {
					t.Fatalf("big: seed 0x%08X off %d len %d: got 0x%08X, want 0x%08X", seed, off, n, got, want)
				}
			}
		}
	}
}

func TestWordPathEdgeLengths(t *testing.T) {
	buf := randomBytes(4, 64+3)

	for _, n := range []int{1, 2, 3, 4, 5, 31, 32, 33} {
		for off := 0; off < 4; off++ {
			p := buf[off : off+n]
			want := stdcrc32.ChecksumIEEE(p)
			for _, u := range updates {
				assert.Equalf(t, want, u.fn(0, IEEETable, p), "%s: off %d len %d", u.name, off, n)
			}
		}
	}
}

func TestWordPathRandomSeeds(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	buf := randomBytes(7, 256)

	for i := 0; i < 2000; i++ {
		seed := rng.Uint32()
		start := rng.IntN(len(buf))
		end := start + rng.IntN(len(buf)-start+1)
		p := buf[start:end]

		want := UpdateBytes(seed, IEEETable, p)
		require.Equal(t, want, UpdateWords(seed, IEEETable, p, LittleEndian))
		require.Equal(t, want, UpdateWords(seed, IEEETable, p, BigEndian))
	}
}

func TestMatchesReferenceImplementations(t *testing.T) {
	for i, n := range []int{0, 1, 17, 255, 4096, 100 * 1024} {
		data := randomBytes(uint64(10+i), n)
		want := stdcrc32.ChecksumIEEE(data)

		assert.Equalf(t, want, Checksum(data), "len %d", n)
		assert.Equalf(t, want, kcrc32.ChecksumIEEE(data), "klauspost len %d", n)
		assert.Equalf(t, stdcrc32.Update(0xcafef00d, stdcrc32.IEEETable, data),
			Update(0xcafef00d, data), "seeded len %d", n)
	}
}

func TestUnaligned(t *testing.T) {
	buf := make([]byte, 16)

	for off := 0; off < 8; off++ {
		for n := 0; n <= 8; n++ {
			p := buf[off : off+n]
			prefix := unaligned(p)

			assert.LessOrEqual(t, prefix, 3)
			assert.LessOrEqual(t, prefix, n)
			if prefix < n {
				addr := uintptr(unsafe.Pointer(&p[prefix]))
				assert.Zerof(t, addr&3, "off %d len %d: word path starts unaligned", off, n)
			}
		}
	}
}

func TestNativeEndian(t *testing.T) {
	var x uint16 = 0x0102
	first := *(*byte)(unsafe.Pointer(&x))

	if first == 0x02 {
		assert.Equal(t, LittleEndian, NativeEndian())
	} else {
		assert.Equal(t, BigEndian, NativeEndian())
	}
	assert.Equal(t, "little", LittleEndian.String())
	assert.Equal(t, "big", BigEndian.String())
}

func BenchmarkUpdate(b *testing.B) {
	data := randomBytes(8, 64*1024)

	for _, u := range updates {
		b.Run(u.name, func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				u.fn(0, IEEETable, data)
			}
		})
	}
}
