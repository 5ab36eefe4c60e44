// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzipgo
// Source: github.com/lzipgo/lzip

package lzip

// matchCandidate is one (length, distance) pair reported by a match
// finder; dist is zero-based (the wire-format distance is dist+1).
type matchCandidate struct {
	length uint32
	dist   uint32
}

// matchFinder is the encoder-side sliding-window matcher contract
// (spec.md §4.5): for the current position it enumerates candidate
// matches with strictly increasing lengths up to matchLenLimit, over a
// window bounded by dictSize. Two implementations satisfy it: a
// hash-chain matcher (matchfinder_hc.go, levels 1-4 and the fast path)
// and a binary-tree matcher (matchfinder_bt.go, levels 5-9).
type matchFinder interface {
	// matches returns candidates at pos with strictly increasing
	// lengths (>=2) each <= matchLenLimit, ordered shortest to longest,
	// and also inserts pos into the index as a side effect (matching
	// the teacher's combined search+insert step in findBestMatch).
	matches(pos int) []matchCandidate

	// skip advances the index over the n positions following afterPos
	// (i.e. afterPos+1 .. afterPos+n) without reporting matches, used
	// when the parser has already committed to a token whose length
	// covers them. afterPos is the position matches was last called at.
	skip(afterPos, n int)
}

// baseWindow holds the fields common to both match-finder variants: the
// full input for the current member as one contiguous slice rather than
// a genuine ring buffer (the member-size ceiling already bounds memory,
// and encodeOptimalStep's lookahead prices literal/rep continuations
// directly against this slice without re-querying the matcher), the
// configured dictionary size, and the length ceiling.
type baseWindow struct {
	data         []byte
	dictSize     uint32
	matchLenLim  uint32
	niceLen      uint32
	candidates   []matchCandidate // reused scratch, avoids per-call allocation
}

func (w *baseWindow) reset(data []byte, dictSize, matchLenLimit, niceLen uint32) {
	w.data = data
	w.dictSize = dictSize
	w.matchLenLim = matchLenLimit
	w.niceLen = niceLen
	w.candidates = w.candidates[:0]
}

// matchLenAt returns how many bytes starting at a and b agree, capped
// at limit (the remaining bytes available at the current position).
func matchLenAt(data []byte, a, b int, limit uint32) uint32 {
	n := uint32(0)
	for n < limit && data[a+int(n)] == data[b+int(n)] {
		n++
	}
	return n
}
