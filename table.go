// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package crc32

import (
	"errors"
	"fmt"
	"math/bits"
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

//go:generate go run ./cmd/crc32 gen --output table_ieee.go

// ErrInvalidTable is returned when a loaded table does not satisfy the
// relations between its eight sub-tables.
var ErrInvalidTable = errors.New("invalid crc table")

// Number of sub-tables and entries per sub-table.
const (
	tableCount = 8
	tableSize  = 256
)

// Table holds the lookup tables for one polynomial.
//
// Table 0 is the CRC of every byte value. Tables 1-3 extend table 0 by one,
// two and three trailing zero bytes, which lets a little-endian word be
// folded in a single step. Tables 4-7 are the byte-swapped copies of tables
// 0-3 for the big-endian word path.
//
// A Table is never modified after it is built, so it may be shared freely
// between goroutines.
type Table [tableCount][tableSize]uint32

// Swap32 reverses the byte order of n.
func Swap32(n uint32) uint32 {
	return bits.ReverseBytes32(n)
}

// MakeTable derives the lookup tables for p.
func MakeTable(p Polynomial) (*Table, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return makeTable(p.Pattern()), nil
}

func makeTable(poly uint32) *Table {
	t := new(Table)

	// CRC of every 8-bit value
	for n := 0; n < tableSize; n++ {
		c := uint32(n)
		for i := 0; i < 8; i++ {
			if c&1 != 0 {
				c = poly ^ (c >> 1)
			} else {
				c >>= 1
			}
		}
		t[0][n] = c
	}

	// CRC of every value followed by one, two and three zero bytes, and the
	// byte reversal of those as well as the first table
	for n := 0; n < tableSize; n++ {
		c := t[0][n]
		t[4][n] = Swap32(c)
		for k := 1; k < 4; k++ {
			c = t[0][c&0xff] ^ (c >> 8)
			t[k][n] = c
			t[k+4][n] = Swap32(c)
		}
	}

	return t
}

// Pattern returns the reduction pattern the table was generated from. The
// byte 0x80 reaches the low bit only on its last shift, so its entry is the
// pattern itself.
func (t *Table) Pattern() uint32 {
	return t[0][0x80]
}

// Verify checks the relations between the sub-tables and that table 0 is the
// byte table of the polynomial recovered from it. It is meant to be called
// once, when a table is loaded from outside the process.
func (t *Table) Verify() error {
	poly := t.Pattern()
	if poly == 0 {
		return fmt.Errorf("%w: zero reduction pattern", ErrInvalidTable)
	}

	want := makeTable(poly)
	for k := 0; k < tableCount; k++ {
		for n := 0; n < tableSize; n++ {
			if t[k][n] != want[k][n] {
				return fmt.Errorf("%w: table %d entry %d is 0x%08x, want 0x%08x",
					ErrInvalidTable, k, n, t[k][n], want[k][n])
			}
		}
	}
	return nil
}

const defaultTableCacheSize = 16

// tableCache holds generated tables for polynomials other than IEEE, keyed by
// reduction pattern.
var tableCache = struct {
	sync.Mutex
	*lru.Cache
}{Cache: mustNewCache(defaultTableCacheSize)}

func mustNewCache(size int) *lru.Cache {
	c, err := lru.New(size)
	if err != nil {
		panic(err)
	}
	return c
}

// TableFor returns the lookup tables for p. IEEE is served from IEEETable;
// other polynomials are generated on first use and cached.
func TableFor(p Polynomial) (*Table, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	poly := p.Pattern()
	if poly == IEEETable.Pattern() {
		return IEEETable, nil
	}

	tableCache.Lock()
	defer tableCache.Unlock()

	if t, ok := tableCache.Get(poly); ok {
		return t.(*Table), nil
	}
	t := makeTable(poly)
	tableCache.Add(poly, t)
	return t, nil
}
