// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

/*
Package crc32 implements the CRC-32 checksum used by zlib, gzip and PNG with
precomputed lookup tables.

The tables for a polynomial are eight 256-entry sub-tables: the CRC of every
byte value, the same extended by one to three zero bytes, and byte-swapped
copies of those four. Together they let the checksum consume a 32-bit word per
step in either byte order instead of one byte at a time.

# Features

  - Pure Go, no unsafe type punning: words are assembled from their bytes
  - Byte-at-a-time reference path and word-at-a-time path with identical results
  - Little- and big-endian word paths, native order selected once at startup
  - Incremental checksums by seeding each call with the previous result
  - Combining two checksums without the original data
  - Tables for custom polynomials, with binary and text serialization

# Basic Usage

One-shot checksum:

	sum := crc32.Checksum([]byte("123456789")) // 0xcbf43926

Running checksum across chunks of one stream:

	var sum uint32
	for _, chunk := range chunks {
		sum = crc32.Update(sum, chunk)
	}

Combining checksums of two independently processed parts:

	whole := crc32.Combine(crc32.Checksum(a), crc32.Checksum(b), int64(len(b)))

# Tables

[IEEETable] is generated at build time by the crc32 command (see
cmd/crc32) and is read-only for the life of the process. Tables for other
polynomials come from [MakeTable] or the caching [TableFor]. Tables loaded
from outside the process through [ReadTable], [Table.UnmarshalBinary] or
[Table.UnmarshalText] are verified before use, so a malformed table is
rejected at load time rather than producing wrong checksums.

# Limitations

  - Only 32-bit reflected CRCs (the zlib convention) are supported
  - No hash.Hash32 wrapper; use Update with the previous result instead
*/
package crc32
