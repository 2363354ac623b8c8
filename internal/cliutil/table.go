// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package cliutil

import (
	"github.com/spf13/viper"

	"github.com/suprsokr/go-crc32"
)

// Polynomial returns the polynomial selected by the "poly" config key, or
// IEEE when it is unset.
func Polynomial() (crc32.Polynomial, error) {
	s := viper.GetString("poly")
	if s == "" {
		return crc32.IEEE, nil
	}
	return crc32.ParsePolynomial(s)
}

// Table returns the lookup tables for the configured polynomial.
func Table() (*crc32.Table, error) {
	p, err := Polynomial()
	if err != nil {
		return nil, err
	}
	return crc32.TableFor(p)
}
