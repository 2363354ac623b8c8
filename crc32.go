// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package crc32

import (
	"encoding/binary"
	"unsafe"
)

// Size of a CRC-32 checksum in bytes.
const Size = 4

// Endian selects which table set the word-at-a-time path folds with.
type Endian uint8

const (
	// LittleEndian folds words with tables 0-3.
	LittleEndian Endian = iota
	// BigEndian folds words with tables 4-7 on a byte-swapped register.
	BigEndian
)

func (e Endian) String() string {
	switch e {
	case LittleEndian:
		return "little"
	case BigEndian:
		return "big"
	default:
		return "unknown"
	}
}

// nativeEndian is probed once at startup.
var nativeEndian = func() Endian {
	if binary.NativeEndian.Uint16([]byte{1, 0}) == 1 {
		return LittleEndian
	}
	return BigEndian
}()

// NativeEndian returns the byte order of the running platform.
func NativeEndian() Endian {
	return nativeEndian
}

// Checksum returns the IEEE CRC-32 of p.
func Checksum(p []byte) uint32 {
	return Update(0, p)
}

// ChecksumWith returns the CRC-32 of p using the given tables.
func ChecksumWith(tab *Table, p []byte) uint32 {
	return UpdateWords(0, tab, p, nativeEndian)
}

// Update returns the IEEE CRC-32 of p appended to the data that produced
// crc. Pass 0 to start a new checksum; feeding successive chunks of a stream
// with the previous result yields the checksum of the whole stream.
func Update(crc uint32, p []byte) uint32 {
	return UpdateWords(crc, IEEETable, p, nativeEndian)
}

// UpdateBytes is the byte-at-a-time form of Update over any table. It is the
// reference the word path is checked against.
func UpdateBytes(crc uint32, tab *Table, p []byte) uint32 {
	crc = ^crc
	for _, b := range p {
		crc = tab[0][byte(crc)^b] ^ (crc >> 8)
	}
	return ^crc
}

// UpdateWords is Update over any table, consuming four bytes per step once p
// reaches a 4-byte boundary. Words are assembled from bytes in the given
// order, so the result is identical to UpdateBytes for either order; native
// order is simply the faster one.
func UpdateWords(crc uint32, tab *Table, p []byte, order Endian) uint32 {
	if order == BigEndian {
		return updateBig(crc, tab, p)
	}
	return updateLittle(crc, tab, p)
}

// unaligned returns how many leading bytes of p precede the first 4-byte
// boundary, capped at len(p).
func unaligned(p []byte) int {
	if len(p) == 0 {
		return 0
	}
	n := int(-uintptr(unsafe.Pointer(unsafe.SliceData(p))) & 3)
	return min(n, len(p))
}

func updateLittle(crc uint32, tab *Table, p []byte) uint32 {
	c := ^crc

	n := unaligned(p)
	for _, b := range p[:n] {
		c = tab[0][byte(c)^b] ^ (c >> 8)
	}
	p = p[n:]

	for len(p) >= 32 {
		c = doLittle32(tab, c, p[:32])
		p = p[32:]
	}
	for len(p) >= 4 {
		c = doLittle4(tab, c, p[:4])
		p = p[4:]
	}

	// trailing bytes
	for _, b := range p {
		c = tab[0][byte(c)^b] ^ (c >> 8)
	}
	return ^c
}

func doLittle4(tab *Table, c uint32, w []byte) uint32 {
	c ^= binary.LittleEndian.Uint32(w)
	return tab[3][c&0xff] ^
		tab[2][(c>>8)&0xff] ^
		tab[1][(c>>16)&0xff] ^
		tab[0][c>>24]
}

func doLittle32(tab *Table, c uint32, w []byte) uint32 {
	c = doLittle4(tab, c, w[0:4])
	c = doLittle4(tab, c, w[4:8])
	c = doLittle4(tab, c, w[8:12])
	c = doLittle4(tab, c, w[12:16])
	c = doLittle4(tab, c, w[16:20])
	c = doLittle4(tab, c, w[20:24])
	c = doLittle4(tab, c, w[24:28])
	return doLittle4(tab, c, w[28:32])
}

func updateBig(crc uint32, tab *Table, p []byte) uint32 {
	// The register is kept byte-swapped so that big-endian words line up
	// with it; tables 4-7 are swapped to match.
	c := ^Swap32(crc)

	n := unaligned(p)
	for _, b := range p[:n] {
		c = tab[4][byte(c>>24)^b] ^ (c << 8)
	}
	p = p[n:]

	for len(p) >= 32 {
		c = doBig32(tab, c, p[:32])
		p = p[32:]
	}
	for len(p) >= 4 {
		c = doBig4(tab, c, p[:4])
		p = p[4:]
	}

	for _, b := range p {
		c = tab[4][byte(c>>24)^b] ^ (c << 8)
	}
	return Swap32(^c)
}

func doBig4(tab *Table, c uint32, w []byte) uint32 {
	c ^= binary.BigEndian.Uint32(w)
	return tab[4][c&0xff] ^
		tab[5][(c>>8)&0xff] ^
		tab[6][(c>>16)&0xff] ^
		tab[7][c>>24]
}

func doBig32(tab *Table, c uint32, w []byte) uint32 {
	c = doBig4(tab, c, w[0:4])
	c = doBig4(tab, c, w[4:8])
	c = doBig4(tab, c, w[8:12])
	c = doBig4(tab, c, w[12:16])
	c = doBig4(tab, c, w[16:20])
	c = doBig4(tab, c, w[20:24])
	c = doBig4(tab, c, w[24:28])
	return doBig4(tab, c, w[28:32])
}
