// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

// Package sumfile computes CRC-32 listings for sets of files and checks files
// against a previously written listing.
//
// A text listing has one line per file, the checksum as eight lowercase hex
// digits, two spaces and the path:
//
//	cbf43926  data/check.txt
package sumfile

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/suprsokr/go-crc32"
)

// chunkSize is how much of a file is read per Update call.
const chunkSize = 32 * 1024

// Sum is a checksum that marshals as eight lowercase hex digits.
type Sum uint32

func (s Sum) String() string {
	return fmt.Sprintf("%08x", uint32(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Sum) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Sum) UnmarshalText(text []byte) error {
	v, err := ParseSum(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseSum parses a checksum written as hex digits, with or without 0x.
func ParseSum(s string) (Sum, error) {
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("parse checksum %q: %w", s, err)
	}
	return Sum(v), nil
}

// Entry is the checksum of one file.
type Entry struct {
	Path string `json:"path" yaml:"path"`
	CRC  Sum    `json:"crc" yaml:"crc"`
	Size int64  `json:"size" yaml:"size"`
}

// Status is the outcome of checking one listed file.
type Status string

const (
	StatusOK      Status = "ok"
	StatusChanged Status = "changed"
	StatusMissing Status = "missing"
)

// Result reports whether a listed file still has its recorded checksum.
type Result struct {
	Path   string `json:"path" yaml:"path"`
	Want   Sum    `json:"want" yaml:"want"`
	Got    Sum    `json:"got,omitempty" yaml:"got,omitempty"`
	Status Status `json:"status" yaml:"status"`
}

// Checksummer computes file checksums over a filesystem.
type Checksummer struct {
	fs      afero.Fs
	table   *crc32.Table
	workers int
}

// New returns a Checksummer reading from fs with tab. workers bounds the
// number of files read at once; values below 1 mean one.
func New(fs afero.Fs, tab *crc32.Table, workers int) *Checksummer {
	if tab == nil {
		tab = crc32.IEEETable
	}
	if workers < 1 {
		workers = 1
	}
	return &Checksummer{fs: fs, table: tab, workers: workers}
}

// File returns the checksum of the file at path, read in chunks.
func (c *Checksummer) File(path string) (Entry, error) {
	f, err := c.fs.Open(path)
	if err != nil {
		return Entry{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	crc, size, err := c.Reader(f)
	if err != nil {
		return Entry{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Entry{Path: path, CRC: crc, Size: size}, nil
}

// Reader returns the checksum and length of everything read from r.
func (c *Checksummer) Reader(r io.Reader) (Sum, int64, error) {
	order := crc32.NativeEndian()
	buf := make([]byte, chunkSize)

	var crc uint32
	var size int64
	for {
		n, err := r.Read(buf)
		crc = crc32.UpdateWords(crc, c.table, buf[:n], order)
		size += int64(n)
		if errors.Is(err, io.EOF) {
			return Sum(crc), size, nil
		}
		if err != nil {
			return 0, 0, err
		}
	}
}

// Files checksums every path. Results keep the order of paths; the first
// error cancels the remaining work.
func (c *Checksummer) Files(ctx context.Context, paths []string) ([]Entry, error) {
	entries := make([]Entry, len(paths))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(c.workers)

	for i, path := range paths {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			entry, err := c.File(path)
			if err != nil {
				return err
			}
			entries[i] = entry
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Verify recomputes the checksum of every listed file. Missing files are
// reported as StatusMissing rather than failing the whole check.
func (c *Checksummer) Verify(ctx context.Context, listing []Entry) ([]Result, error) {
	results := make([]Result, len(listing))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(c.workers)

	for i, want := range listing {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			result := Result{Path: want.Path, Want: want.CRC}
			got, err := c.File(want.Path)
			switch {
			case errors.Is(err, os.ErrNotExist):
				result.Status = StatusMissing
			case err != nil:
				return err
			case got.CRC != want.CRC:
				result.Got = got.CRC
				result.Status = StatusChanged
			default:
				result.Got = got.CRC
				result.Status = StatusOK
			}
			results[i] = result
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// WriteText writes entries as a text listing.
func WriteText(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := fmt.Fprintf(bw, "%s  %s\n", e.CRC, e.Path); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Parse reads a listing in text form, or in the YAML or JSON form written by
// the --format flag.
func Parse(r io.Reader) ([]Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read listing: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' || trimmed[0] == '-' {
		var entries []Entry
		if err := yaml.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("parse listing: %w", err)
		}
		return entries, nil
	}
	return parseText(trimmed)
}

func parseText(data []byte) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimRight(scanner.Text(), "\r")
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		sum, path, ok := strings.Cut(text, "  ")
		if !ok || path == "" {
			return nil, fmt.Errorf("parse listing line %d: want \"<crc>  <path>\"", line)
		}
		crc, err := ParseSum(sum)
		if err != nil {
			return nil, fmt.Errorf("parse listing line %d: %w", line, err)
		}
		entries = append(entries, Entry{Path: path, CRC: crc})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("parse listing: %w", err)
	}
	return entries, nil
}
