// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package crc32

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPolynomial is returned when a polynomial term set cannot define
// a 32-bit CRC.
var ErrInvalidPolynomial = errors.New("invalid polynomial")

// Polynomial is the set of exponents of a CRC-32 generator polynomial over
// GF(2), excluding the implicit x^32 term.
type Polynomial []uint8

// IEEE is the polynomial used by zlib, gzip and PNG:
// x^32+x^26+x^23+x^22+x^16+x^12+x^11+x^10+x^8+x^7+x^5+x^4+x^2+x+1.
var IEEE = Polynomial{0, 1, 2, 4, 5, 7, 8, 10, 11, 12, 16, 22, 23, 26}

// Pattern returns the reduction pattern of p. Coefficients are stored with
// the lowest power in the most significant bit, so exponent e sets bit 31-e.
func (p Polynomial) Pattern() uint32 {
	var poly uint32
	for _, e := range p {
		poly |= 1 << (31 - uint32(e&31))
	}
	return poly
}

// Validate checks that every exponent lies in [0,31] and appears once.
func (p Polynomial) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("%w: no terms", ErrInvalidPolynomial)
	}

	var seen uint32
	for _, e := range p {
		if e > 31 {
			return fmt.Errorf("%w: exponent %d out of range", ErrInvalidPolynomial, e)
		}
		if seen&(1<<e) != 0 {
			return fmt.Errorf("%w: duplicate exponent %d", ErrInvalidPolynomial, e)
		}
		seen |= 1 << e
	}
	return nil
}

// String renders p as a comma separated exponent list, the form accepted by
// ParsePolynomial.
func (p Polynomial) String() string {
	terms := make([]string, len(p))
	for i, e := range p {
		terms[i] = strconv.Itoa(int(e))
	}
	return strings.Join(terms, ",")
}

// ParsePolynomial parses a list of exponents separated by commas or
// whitespace, e.g. "0,1,2,4,5,7,8,10,11,12,16,22,23,26".
func ParsePolynomial(s string) (Polynomial, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})

	p := make(Polynomial, 0, len(fields))
	for _, f := range fields {
		e, err := strconv.ParseUint(f, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: parse term %q: %v", ErrInvalidPolynomial, f, err)
		}
		p = append(p, uint8(e))
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
