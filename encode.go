// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package crc32

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// BinarySize is the length of a table in its binary form: every entry as a
// little-endian uint32, table 0 first.
const BinarySize = tableCount * tableSize * 4

// Text layout: entries per line in MarshalText output.
const entriesPerLine = 5

// MarshalBinary implements encoding.BinaryMarshaler.
func (t *Table) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(BinarySize)
	if _, err := t.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. The decoded table is
// verified before t is touched.
func (t *Table) UnmarshalBinary(data []byte) error {
	if len(data) != BinarySize {
		return fmt.Errorf("%w: binary table is %d bytes, want %d", ErrInvalidTable, len(data), BinarySize)
	}
	loaded, err := ReadTable(bytes.NewReader(data))
	if err != nil {
		return err
	}
	*t = *loaded
	return nil
}

// WriteTo writes the binary form of t to w.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	if err := binary.Write(w, binary.LittleEndian, t); err != nil {
		return 0, fmt.Errorf("write table: %w", err)
	}
	return BinarySize, nil
}

// ReadTable reads a table in binary form from r and verifies it.
func ReadTable(r io.Reader) (*Table, error) {
	t := new(Table)
	if err := binary.Read(r, binary.LittleEndian, t); err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	if err := t.Verify(); err != nil {
		return nil, fmt.Errorf("load table: %w", err)
	}
	return t, nil
}

// MarshalText implements encoding.TextMarshaler. Each sub-table is written as
// a block of 0x%08x entries, five per line, with a blank line between blocks.
func (t *Table) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	for k := range t {
		if k > 0 {
			buf.WriteByte('\n')
		}
		for n, v := range t[k] {
			fmt.Fprintf(&buf, "0x%08x", v)
			if n%entriesPerLine == entriesPerLine-1 || n == tableSize-1 {
				buf.WriteByte('\n')
			} else {
				buf.WriteString(", ")
			}
		}
	}
	return buf.Bytes(), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts any mix of
// commas and whitespace between entries; every entry must carry the 0x
// prefix and there must be exactly 8*256 of them.
func (t *Table) UnmarshalText(text []byte) error {
	fields := strings.FieldsFunc(string(text), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) != tableCount*tableSize {
		return fmt.Errorf("%w: text table has %d entries, want %d", ErrInvalidTable, len(fields), tableCount*tableSize)
	}

	loaded := new(Table)
	for i, f := range fields {
		hex, ok := strings.CutPrefix(strings.ToLower(f), "0x")
		if !ok {
			return fmt.Errorf("%w: entry %d %q lacks 0x prefix", ErrInvalidTable, i, f)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return fmt.Errorf("%w: entry %d: %v", ErrInvalidTable, i, err)
		}
		loaded[i/tableSize][i%tableSize] = uint32(v)
	}

	if err := loaded.Verify(); err != nil {
		return fmt.Errorf("load table: %w", err)
	}
	*t = *loaded
	return nil
}
