// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzipgo
// Source: github.com/lzipgo/lzip

package lzip

// levelParams holds the internal per-level tuning knobs (spec.md §5,
// "compression level L in [0,9]"): dictionary size, match-length
// ceiling, the match finder's search depth, and which encoder/matcher
// pairing the level selects. Shaped directly on the teacher's
// fixedLevels table (level_params.go): a fixed array indexed by level,
// each entry a small unexported struct of search-effort knobs.
type levelParams struct {
	dictSize      uint32
	matchLenLimit uint32
	niceLen       uint32
	searchDepth   int  // hash-chain links or binary-tree depth to walk
	useBinaryTree bool // levels 5-9 use the binary-tree matcher
	useFastEncoder bool // level 0 only: greedy single-pass encoder
}

// fixedLevels mirrors lzip's own -0..-9 preset ladder: dictionary size
// grows from 1 MiB to 64 MiB, match_len_limit from 16 up to the format
// maximum of 273, and search effort (chain/tree depth) increases in
// step. Level 0 is the sole fast-encoder level (spec.md §1 item 7).
var fixedLevels = [10]levelParams{
	{dictSize: 1 << 20, matchLenLimit: 16, niceLen: 16, searchDepth: 4, useFastEncoder: true},
	{dictSize: 1 << 20, matchLenLimit: 16, niceLen: 16, searchDepth: 8},
	{dictSize: 3 << 19, matchLenLimit: 24, niceLen: 24, searchDepth: 16},
	{dictSize: 1 << 21, matchLenLimit: 36, niceLen: 32, searchDepth: 32},
	{dictSize: 3 << 20, matchLenLimit: 36, niceLen: 48, searchDepth: 48},
	{dictSize: 1 << 22, matchLenLimit: 64, niceLen: 64, searchDepth: 64, useBinaryTree: true},
	{dictSize: 1 << 23, matchLenLimit: 96, niceLen: 96, searchDepth: 96, useBinaryTree: true},
	{dictSize: 1 << 24, matchLenLimit: 132, niceLen: 128, searchDepth: 128, useBinaryTree: true},
	{dictSize: 1 << 25, matchLenLimit: 200, niceLen: 192, searchDepth: 192, useBinaryTree: true},
	{dictSize: 1 << 26, matchLenLimit: maxMatchLen, niceLen: 273, searchDepth: 256, useBinaryTree: true},
}

func paramsForLevel(level int) levelParams {
	if level < 0 {
		level = 0
	}
	if level > 9 {
		level = 9
	}
	return fixedLevels[level]
}
