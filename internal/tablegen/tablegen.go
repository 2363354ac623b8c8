// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

// Package tablegen renders lookup tables as Go source so they can be compiled
// into a binary as constant data.
package tablegen

import (
	"bytes"
	"fmt"
	"go/format"
	"io"

	"github.com/suprsokr/go-crc32"
)

// Header is the first line of every generated file.
const Header = "// Code generated by crc32 gen; DO NOT EDIT."

const entriesPerLine = 5

// Options control the declaration that is emitted.
type Options struct {
	// Package is the package clause of the generated file.
	Package string
	// Var is the name of the declared variable.
	Var string
	// Type is the element type of the composite literal. The variable is
	// declared as &Type{...}, so "Table" inside package crc32 and
	// "[8][256]uint32" anywhere else both work.
	Type string
	// Name describes the polynomial in the doc comment, e.g. "IEEE".
	Name string
}

// DefaultOptions produce the declaration of crc32.IEEETable.
var DefaultOptions = Options{
	Package: "crc32",
	Var:     "IEEETable",
	Type:    "Table",
	Name:    "IEEE",
}

func (o Options) withDefaults() Options {
	if o.Package == "" {
		o.Package = DefaultOptions.Package
	}
	if o.Var == "" {
		o.Var = DefaultOptions.Var
	}
	if o.Type == "" {
		o.Type = DefaultOptions.Type
	}
	if o.Name == "" {
		o.Name = "custom"
	}
	return o
}

// Source returns the gofmt-formatted Go source declaring tab.
func Source(tab *crc32.Table, opts Options) ([]byte, error) {
	opts = opts.withDefaults()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s\n\npackage %s\n\n", Header, opts.Package)
	fmt.Fprintf(&buf, "// %s holds the lookup tables for the %s polynomial\n", opts.Var, opts.Name)
	fmt.Fprintf(&buf, "// (reduction pattern 0x%08x).\n", tab.Pattern())
	fmt.Fprintf(&buf, "var %s = &%s{\n", opts.Var, opts.Type)

	for k := range tab {
		buf.WriteString("\t{\n")
		for n, v := range tab[k] {
			if n%entriesPerLine == 0 {
				buf.WriteString("\t\t")
			}
			fmt.Fprintf(&buf, "0x%08x,", v)
			if n%entriesPerLine == entriesPerLine-1 || n == len(tab[k])-1 {
				buf.WriteByte('\n')
			} else {
				buf.WriteByte(' ')
			}
		}
		buf.WriteString("\t},\n")
	}
	buf.WriteString("}\n")

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}
	return src, nil
}

// Write renders tab as Go source to w.
func Write(w io.Writer, tab *crc32.Table, opts Options) error {
	src, err := Source(tab, opts)
	if err != nil {
		return err
	}
	if _, err := w.Write(src); err != nil {
		return fmt.Errorf("write generated source: %w", err)
	}
	return nil
}
