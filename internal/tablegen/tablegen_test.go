// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package tablegen_test

import (
	"bytes"
	"go/parser"
	"go/token"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suprsokr/go-crc32"
	"github.com/suprsokr/go-crc32/internal/tablegen"
)

func TestSourceMatchesCheckedInTable(t *testing.T) {
	tab, err := crc32.MakeTable(crc32.IEEE)
	require.NoError(t, err)

	src, err := tablegen.Source(tab, tablegen.DefaultOptions)
	require.NoError(t, err)

	checkedIn, err := os.ReadFile("../../table_ieee.go")
	require.NoError(t, err)
	assert.Equal(t, string(checkedIn), string(src), "table_ieee.go is stale; run go generate")
}

func TestSourceLayout(t *testing.T) {
	src, err := tablegen.Source(crc32.IEEETable, tablegen.DefaultOptions)
	require.NoError(t, err)

	lines := strings.Split(string(src), "\n")
	assert.Equal(t, tablegen.Header, lines[0])
	assert.Equal(t, "package crc32", lines[2])
	assert.Equal(t, "var IEEETable = &Table{", lines[6])
	assert.Equal(t, "\t{", lines[7])
	assert.Equal(t, "\t\t0x00000000, 0x77073096, 0xee0e612c, 0x990951ba, 0x076dc419,", lines[8])

	// every entry is followed by ", " or ",\n"; the 8 closing "}," lines add 8 more
	assert.Equal(t, 8*256, strings.Count(string(src), ",\n")+strings.Count(string(src), ", ")-8)
}

func TestSourceCustomOptions(t *testing.T) {
	tab, err := crc32.MakeTable(crc32.Polynomial{0, 6, 8, 9, 10, 11, 13, 14, 18, 19, 20, 22, 23, 25, 26, 27, 28})
	require.NoError(t, err)

	var buf bytes.Buffer
	err = tablegen.Write(&buf, tab, tablegen.Options{
		Package: "tables",
		Var:     "Castagnoli",
		Type:    "[8][256]uint32",
		Name:    "Castagnoli",
	})
	require.NoError(t, err)

	src := buf.String()
	assert.Contains(t, src, "package tables\n")
	assert.Contains(t, src, "// Castagnoli holds the lookup tables for the Castagnoli polynomial\n")
	assert.Contains(t, src, "// (reduction pattern 0x82f63b78).\n")
	assert.Contains(t, src, "var Castagnoli = &[8][256]uint32{\n")

	_, err = parser.ParseFile(token.NewFileSet(), "castagnoli.go", src, parser.AllErrors)
	assert.NoError(t, err)
}

func TestSourceDefaultsEmptyOptions(t *testing.T) {
	src, err := tablegen.Source(crc32.IEEETable, tablegen.Options{})
	require.NoError(t, err)

	assert.Contains(t, string(src), "package crc32\n")
	assert.Contains(t, string(src), "var IEEETable = &Table{\n")
	assert.Contains(t, string(src), "for the custom polynomial")
}
