// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package sumfile

import (
	"bytes"
	"context"
	"encoding/json"
	stdcrc32 "hash/crc32"
	"os"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/suprsokr/go-crc32"
)

func newTestFs(t *testing.T, files map[string][]byte) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for path, data := range files {
		require.NoError(t, afero.WriteFile(fs, path, data, 0o644))
	}
	return fs
}

func largeFile() []byte {
	data := make([]byte, 100*1024+7)
	for i := range data {
		data[i] = byte(i*31 + i>>8)
	}
	return data
}

func TestParseSum(t *testing.T) {
	for _, in := range []string{"cbf43926", "CBF43926", "0xcbf43926", "0XCBF43926"} {
		s, err := ParseSum(in)
		require.NoError(t, err, in)
		assert.Equal(t, Sum(0xcbf43926), s)
	}
	assert.Equal(t, "00000001", Sum(1).String())

	for _, bad := range []string{"", "xyz", "1ffffffff"} {
		_, err := ParseSum(bad)
		assert.Error(t, err, bad)
	}
}

func TestFiles(t *testing.T) {
	big := largeFile()
	fs := newTestFs(t, map[string][]byte{
		"check.txt":   []byte("123456789"),
		"empty":       {},
		"dir/big.bin": big,
		"hello.txt":   []byte("hello"),
	})

	paths := []string{"hello.txt", "dir/big.bin", "empty", "check.txt"}
	entries, err := New(fs, nil, 3).Files(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, entries, len(paths))

	assert.Equal(t, Entry{Path: "hello.txt", CRC: 0x3610a686, Size: 5}, entries[0])
	assert.Equal(t, Entry{Path: "dir/big.bin", CRC: Sum(stdcrc32.ChecksumIEEE(big)), Size: int64(len(big))}, entries[1])
	assert.Equal(t, Entry{Path: "empty", CRC: 0, Size: 0}, entries[2])
	assert.Equal(t, Entry{Path: "check.txt", CRC: 0xcbf43926, Size: 9}, entries[3])
}

func TestFilesCustomTable(t *testing.T) {
	tab, err := crc32.MakeTable(crc32.Polynomial{0, 6, 8, 9, 10, 11, 13, 14, 18, 19, 20, 22, 23, 25, 26, 27, 28})
	require.NoError(t, err)

	fs := newTestFs(t, map[string][]byte{"check.txt": []byte("123456789")})
	entries, err := New(fs, tab, 1).Files(context.Background(), []string{"check.txt"})
	require.NoError(t, err)
	assert.Equal(t, Sum(0xe3069283), entries[0].CRC)
}

func TestFilesMissing(t *testing.T) {
	fs := newTestFs(t, map[string][]byte{"a": []byte("a")})

	_, err := New(fs, nil, 2).Files(context.Background(), []string{"a", "nope"})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReader(t *testing.T) {
	big := largeFile()

	crc, size, err := New(nil, nil, 0).Reader(bytes.NewReader(big))
	require.NoError(t, err)
	assert.Equal(t, Sum(stdcrc32.ChecksumIEEE(big)), crc)
	assert.Equal(t, int64(len(big)), size)
}

func TestVerify(t *testing.T) {
	fs := newTestFs(t, map[string][]byte{
		"same.txt":    []byte("123456789"),
		"changed.txt": []byte("version 2\n"),
	})
	listing := []Entry{
		{Path: "same.txt", CRC: 0xcbf43926},
		{Path: "changed.txt", CRC: 0xaf083b2d},
		{Path: "gone.txt", CRC: 0x3610a686},
	}

	results, err := New(fs, nil, 4).Verify(context.Background(), listing)
	require.NoError(t, err)

	assert.Equal(t, []Result{
		{Path: "same.txt", Want: 0xcbf43926, Got: 0xcbf43926, Status: StatusOK},
		{Path: "changed.txt", Want: 0xaf083b2d, Got: 0xe754c0a8, Status: StatusChanged},
		{Path: "gone.txt", Want: 0x3610a686, Status: StatusMissing},
	}, results)
}

func TestVerifyCancelled(t *testing.T) {
	fs := newTestFs(t, map[string][]byte{"a": []byte("a")})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(fs, nil, 1).Verify(ctx, []Entry{{Path: "a", CRC: 0xe8b7be43}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteTextAndParse(t *testing.T) {
	entries := []Entry{
		{Path: "check.txt", CRC: 0xcbf43926},
		{Path: "dir/with space.bin", CRC: 0x0000beef},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, entries))
	assert.Equal(t, "cbf43926  check.txt\n0000beef  dir/with space.bin\n", buf.String())

	parsed, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, entries, parsed)
}

func TestParseText(t *testing.T) {
	in := "# written by crc32 sum\n\ncbf43926  check.txt\r\n3610a686  hello.txt\n"

	entries, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Path: "check.txt", CRC: 0xcbf43926},
		{Path: "hello.txt", CRC: 0x3610a686},
	}, entries)

	for _, bad := range []string{"cbf43926 check.txt\n", "zzzzzzzz  check.txt\n", "cbf43926  \n"} {
		_, err := Parse(strings.NewReader(bad))
		assert.Error(t, err, bad)
	}

	entries, err = Parse(strings.NewReader("  \n"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParseStructured(t *testing.T) {
	entries := []Entry{
		{Path: "check.txt", CRC: 0xcbf43926, Size: 9},
		{Path: "digits", CRC: 0x12345678, Size: 3},
	}

	t.Run("json", func(t *testing.T) {
		data, err := json.MarshalIndent(entries, "", "  ")
		require.NoError(t, err)
		assert.Contains(t, string(data), `"crc": "cbf43926"`)

		parsed, err := Parse(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, entries, parsed)
	})

	t.Run("yaml", func(t *testing.T) {
		data, err := yaml.Marshal(entries)
		require.NoError(t, err)

		parsed, err := Parse(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, entries, parsed)
	})
}
