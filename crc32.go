// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzipgo
// Source: github.com/lzipgo/lzip

package lzip

// IEEE 802.3 CRC-32 polynomial, reflected form, as used by the lzip
// trailer's data_crc field. The table is built once at package init and
// is, like the price tables in price.go, process-wide immutable state.

const crc32Poly = 0xEDB88320

var crc32Table [256]uint32

func init() {
	for i := range crc32Table {
		c := uint32(i)
		for range 8 {
			if c&1 != 0 {
				c = crc32Poly ^ (c >> 1)
			} else {
				c >>= 1
			}
		}
		crc32Table[i] = c
	}
}

// crc32Update folds buf into the running CRC state crc (the caller
// passes 0 for a fresh checksum, or the value a previous call returned
// to continue one; the pre- and post-complement are applied here).
func crc32Update(crc uint32, buf []byte) uint32 {
	crc = ^crc
	for _, b := range buf {
		crc = crc32Table[byte(crc)^b] ^ (crc >> 8)
	}
	return ^crc
}
