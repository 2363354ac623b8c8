// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package crc32

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinaryEncoding(t *testing.T) {
	data, err := IEEETable.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, data, BinarySize)

	// table 0 first, little-endian entries
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(data[0:4]))
	assert.Equal(t, uint32(0xedb88320), binary.LittleEndian.Uint32(data[128*4:128*4+4]))
	assert.Equal(t, IEEETable[7][255], binary.LittleEndian.Uint32(data[BinarySize-4:]))

	var loaded Table
	require.NoError(t, loaded.UnmarshalBinary(data))
	assert.Equal(t, *IEEETable, loaded)
}

func TestReadTable(t *testing.T) {
	tab, err := MakeTable(koopman)
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := tab.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(BinarySize), n)

	loaded, err := ReadTable(&buf)
	require.NoError(t, err)
	assert.Equal(t, *tab, *loaded)
}

func TestBinaryLoadRejectsBadInput(t *testing.T) {
	good, err := IEEETable.MarshalBinary()
	require.NoError(t, err)

	corrupt := bytes.Clone(good)
	corrupt[3*1024+9] ^= 0x40

	t.Run("corrupt entry", func(t *testing.T) {
		loaded := *IEEETable
		err := loaded.UnmarshalBinary(corrupt)
		assert.ErrorIs(t, err, ErrInvalidTable)
		assert.Equal(t, *IEEETable, loaded, "failed load must leave the table untouched")

		_, err = ReadTable(bytes.NewReader(corrupt))
		assert.ErrorIs(t, err, ErrInvalidTable)
	})

	t.Run("truncated", func(t *testing.T) {
		var loaded Table
		assert.ErrorIs(t, loaded.UnmarshalBinary(good[:BinarySize-1]), ErrInvalidTable)

		_, err := ReadTable(bytes.NewReader(good[:100]))
		assert.Error(t, err)
	})
}

func TestTextEncoding(t *testing.T) {
	text, err := IEEETable.MarshalText()
	require.NoError(t, err)

	lines := strings.Split(string(text), "\n")
	assert.Equal(t, "0x00000000, 0x77073096, 0xee0e612c, 0x990951ba, 0x076dc419", lines[0])
	assert.Equal(t, "0x2d02ef8d", lines[51])
	assert.Equal(t, "", lines[52], "blank line between sub-tables")

	var loaded Table
	require.NoError(t, loaded.UnmarshalText(text))
	assert.Equal(t, *IEEETable, loaded)
}

func TestTextLoadRejectsBadInput(t *testing.T) {
	text, err := IEEETable.MarshalText()
	require.NoError(t, err)

	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"missing entry", strings.Replace(string(text), "0x77073096,", "", 1)},
		{"extra entry", string(text) + "0x00000000\n"},
		{"no prefix", strings.Replace(string(text), "0x77073096", "77073096", 1)},
		{"not hex", strings.Replace(string(text), "0x77073096", "0x7707309g", 1)},
		{"wrong value", strings.Replace(string(text), "0x77073096", "0x77073097", 1)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var loaded Table
			assert.ErrorIs(t, loaded.UnmarshalText([]byte(test.text)), ErrInvalidTable)
		})
	}
}
