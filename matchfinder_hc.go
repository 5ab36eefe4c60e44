// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzipgo
// Source: github.com/lzipgo/lzip

package lzip

// hashChainFinder is the hash-chain matchFinder (spec.md §4.5, levels
// 1-4 and the "fast" encoder): a 2-byte hash picks up short matches
// cheaply, a 3-byte hash chain (adapted from the teacher's head3/prev
// singly-linked chains in sliding_window.go) finds longer ones, walked
// up to maxChainLen links deep per position.
type hashChainFinder struct {
	baseWindow

	hash2 []int32 // 2-byte hash -> most recent position, or -1
	hash3 []int32 // 3-byte hash -> most recent position, or -1
	chain []int32 // pos -> previous position with the same 3-byte hash, or -1

	maxChainLen int
}

const (
	hash2Bits  = 10
	hash2Size  = 1 << hash2Bits
	hash3Bits  = 16
	hash3Size  = 1 << hash3Bits
)

func newHashChainFinder(maxChainLen int) *hashChainFinder {
	return &hashChainFinder{maxChainLen: maxChainLen}
}

func (f *hashChainFinder) reset(data []byte, dictSize, matchLenLimit, niceLen uint32) {
	f.baseWindow.reset(data, dictSize, matchLenLimit, niceLen)
	if cap(f.hash2) < hash2Size {
		f.hash2 = make([]int32, hash2Size)
	}
	if cap(f.hash3) < hash3Size {
		f.hash3 = make([]int32, hash3Size)
	}
	if cap(f.chain) < len(data) {
		f.chain = make([]int32, len(data))
	}
	f.hash2 = f.hash2[:hash2Size]
	f.hash3 = f.hash3[:hash3Size]
	f.chain = f.chain[:len(data)]
	for i := range f.hash2 {
		f.hash2[i] = -1
	}
	for i := range f.hash3 {
		f.hash3[i] = -1
	}
}

func hash2At(data []byte, pos int) uint32 {
	return (uint32(data[pos]) | uint32(data[pos+1])<<8) & (hash2Size - 1)
}

func hash3At(data []byte, pos int) uint32 {
	h := uint32(data[pos]) | uint32(data[pos+1])<<8 | uint32(data[pos+2])<<16
	h *= 506832829
	return h >> (32 - hash3Bits)
}

// insert records pos in the hash tables and chain without searching.
func (f *hashChainFinder) insert(pos int) {
	data := f.data
	if pos+1 < len(data) {
		h2 := hash2At(data, pos)
		f.hash2[h2] = int32(pos)
	}
	if pos+2 < len(data) {
		h3 := hash3At(data, pos)
		f.chain[pos] = f.hash3[h3]
		f.hash3[h3] = int32(pos)
	} else {
		f.chain[pos] = -1
	}
}

// skip inserts the n positions following afterPos (the position the
// parser last called matches at) into the hash chains without
// searching, so a later matches call can still find matches starting
// inside the token the parser just committed to.
func (f *hashChainFinder) skip(afterPos, n int) {
	for i := 1; i <= n; i++ {
		f.insert(afterPos + i)
	}
}

// matches searches for candidate matches at pos, then inserts pos.
func (f *hashChainFinder) matches(pos int) []matchCandidate {
	data := f.data
	limit := f.matchLenLim
	if remain := uint32(len(data) - pos); remain < limit {
		limit = remain
	}
	out := f.candidates[:0]
	bestLen := uint32(1)

	if pos+1 < len(data) && limit >= 2 {
		h2 := hash2At(data, pos)
		if cand := f.hash2[h2]; cand >= 0 {
			dist := uint32(pos) - uint32(cand)
			if dist-1 < f.dictSize {
				n := matchLenAt(data, pos, int(cand), limit)
				if n >= 2 && n > bestLen {
					bestLen = n
					out = append(out, matchCandidate{length: n, dist: dist - 1})
				}
			}
		}
	}

	if pos+2 < len(data) && limit >= 3 {
		h3 := hash3At(data, pos)
		cand := f.hash3[h3]
		for depth := 0; cand >= 0 && depth < f.maxChainLen; depth++ {
			dist := uint32(pos) - uint32(cand)
			if dist-1 >= f.dictSize {
				break
			}
			n := matchLenAt(data, pos, int(cand), limit)
			if n > bestLen {
				bestLen = n
				out = append(out, matchCandidate{length: n, dist: dist - 1})
				if n >= f.niceLen {
					break
				}
			}
			cand = f.chain[cand]
		}
	}

	f.insert(pos)
	f.candidates = out
	return out
}
