// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzipgo
// Source: github.com/lzipgo/lzip

package lzip

// binaryTreeFinder is the binary-tree matchFinder (spec.md §4.5, levels
// 5-9): rather than a flat hash chain, each 3-byte-hash bucket's
// candidates are organized as a binary search tree keyed by the
// lexicographic order of the suffix starting at that position. This is
// the structure the reference optimal-parsing encoders use (the shape
// ulikunitz's encoder.go and newlzma-encoder.go both assume underneath
// their match-finder interface) because it turns "find every match
// length, longest first" into a single insertion pass instead of a
// linear chain walk, at the cost of a tree per hash bucket instead of a
// list.
//
// Positions are absolute indices into the member's full in-memory
// buffer rather than a cyclic window (see matchfinder.go), which lets
// the tree use plain slice indices for child pointers instead of the
// LZMA SDK's modulo-windowed cyclic buffer.
type binaryTreeFinder struct {
	baseWindow

	hash3 []int32 // 3-byte hash -> most recent position, or -1
	left  []int32 // pos -> left child (smaller suffixes)
	right []int32 // pos -> right child (larger suffixes)

	maxDepth int
}

func newBinaryTreeFinder(maxDepth int) *binaryTreeFinder {
	return &binaryTreeFinder{maxDepth: maxDepth}
}

func (f *binaryTreeFinder) reset(data []byte, dictSize, matchLenLimit, niceLen uint32) {
	f.baseWindow.reset(data, dictSize, matchLenLimit, niceLen)
	if cap(f.hash3) < hash3Size {
		f.hash3 = make([]int32, hash3Size)
	}
	if cap(f.left) < len(data) {
		f.left = make([]int32, len(data))
		f.right = make([]int32, len(data))
	}
	f.hash3 = f.hash3[:hash3Size]
	f.left = f.left[:len(data)]
	f.right = f.right[:len(data)]
	for i := range f.hash3 {
		f.hash3[i] = -1
	}
}

// skip inserts the n positions following afterPos (the position the
// parser last called matches at) into their trees without reporting
// matches, used when the parser already committed to a token covering
// them.
func (f *binaryTreeFinder) skip(afterPos, n int) {
	for i := 1; i <= n; i++ {
		f.insertOnly(afterPos + i)
	}
}

// insertOnly runs the tree-insertion walk but discards match candidates;
// shares the walk with matches so skip and matches stay in lockstep.
func (f *binaryTreeFinder) insertOnly(pos int) {
	f.walk(pos, nil)
}

// matches finds candidate matches at pos (strictly increasing lengths,
// shortest to longest) and inserts pos into its tree as a side effect.
func (f *binaryTreeFinder) matches(pos int) []matchCandidate {
	out := f.candidates[:0]
	f.walk(pos, &out)
	f.candidates = out
	return out
}

// walk performs the classic binary-tree match-finder insertion: starting
// from the 3-byte hash bucket's root, it repeatedly compares the current
// position's suffix against the candidate's suffix, descends left or
// right depending on which suffix is lexicographically greater, and
// relinks the candidate as the new leaf in the path it leaves — so the
// tree is rebuilt incrementally as positions advance. If out is non-nil,
// every strictly-longer match seen along the way is appended to it.
func (f *binaryTreeFinder) walk(pos int, out *[]matchCandidate) {
	data := f.data
	limit := f.matchLenLim
	if remain := uint32(len(data) - pos); remain < limit {
		limit = remain
	}

	if pos+2 >= len(data) || limit < 3 {
		f.left[pos] = -1
		f.right[pos] = -1
		return
	}

	h3 := hash3At(data, pos)
	cur := f.hash3[h3]
	f.hash3[h3] = int32(pos)

	ptr0, ptr1 := &f.left[pos], &f.right[pos]
	len0, len1 := uint32(0), uint32(0)
	bestLen := uint32(2)

	for depth := 0; depth < f.maxDepth; depth++ {
		if cur < 0 {
			break
		}
		dist := uint32(pos) - uint32(cur)
		if dist-1 >= f.dictSize {
			cur = -1
			break
		}

		n := len0
		if len1 < n {
			n = len1
		}
		n = n + matchLenAt(data, pos+int(n), int(cur)+int(n), limit-n)

		if n > bestLen {
			if out != nil {
				*out = append(*out, matchCandidate{length: n, dist: dist - 1})
			}
			bestLen = n
			if n >= f.niceLen || n >= limit {
				*ptr0 = f.left[cur]
				*ptr1 = f.right[cur]
				return
			}
		}

		if data[pos+int(n)] > data[int(cur)+int(n)] {
			// pos's suffix is greater: cur and its left subtree belong
			// before pos, so link cur as the predecessor seen so far
			// and continue down cur's right subtree for closer ones.
			*ptr0 = int32(cur)
			ptr0 = &f.right[cur]
			cur = f.right[cur]
			len0 = n
		} else {
			*ptr1 = int32(cur)
			ptr1 = &f.left[cur]
			cur = f.left[cur]
			len1 = n
		}
	}
	*ptr0 = -1
	*ptr1 = -1
}
