// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzipgo
// Source: github.com/lzipgo/lzip

package lzip

import "io"

// Stats summarizes one decoded member, the information a `--list` or
// `--test` front-end reports per member (spec.md §1 names listing and
// testing members as driver-level capabilities the core must expose
// the data for, even though §1 scopes the driver itself out).
type Stats struct {
	CompressedSize   uint64
	UncompressedSize uint64
	CRC32            uint32
	DictionarySize   uint32
}

// Ratio returns UncompressedSize/CompressedSize, or 0 for an empty member.
func (s Stats) Ratio() float64 {
	if s.CompressedSize == 0 {
		return 0
	}
	return float64(s.UncompressedSize) / float64(s.CompressedSize)
}

// NextMember discards any decoded bytes of the current member not yet
// consumed via Read, decodes the next member, and returns that member's
// Stats; its plaintext is then available through Read. It returns
// io.EOF once the stream is exhausted, respecting opts.Trailing.
func (z *Reader) NextMember() (Stats, error) {
	z.pending = nil
	if z.done {
		return Stats{}, io.EOF
	}
	if err := z.nextMember(); err != nil {
		return Stats{}, err
	}
	if z.done && len(z.pending) == 0 {
		return Stats{}, io.EOF
	}
	return z.lastStat, nil
}

// Scan reports per-member Stats for every member in r without the
// caller needing to consume the decompressed bytes themselves (the
// `--list` use case). It still fully decodes each member's payload —
// the format has no random-access index to read sizes from without
// decoding (spec.md §9 Non-goals: "No random-access into compressed
// data") — so Scan costs the same as a full decompress, just discards
// the plaintext.
func Scan(r io.Reader, policy TrailingPolicy) ([]Stats, error) {
	zr, err := NewReader(r, &DecompressOptions{Trailing: policy})
	if err != nil {
		return nil, err
	}
	var stats []Stats
	for {
		s, err := zr.NextMember()
		if err == io.EOF {
			return stats, nil
		}
		if err != nil {
			return stats, err
		}
		stats = append(stats, s)
	}
}

// Test decompresses and discards every member in r, verifying each
// member's CRC and size (lzip's `--test`). It returns the same Stats
// Scan does; the verification itself happens as a side effect of
// nextMember's trailer check, which fails with DataError on mismatch.
func Test(r io.Reader, policy TrailingPolicy) ([]Stats, error) {
	return Scan(r, policy)
}
