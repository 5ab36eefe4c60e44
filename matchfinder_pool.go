// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzipgo
// Source: github.com/lzipgo/lzip

package lzip

import "sync"

// Match finders own several multi-megabyte slices (hash tables, chain
// or tree links sized to the member buffer). Pooling them across
// members/encoders avoids re-zeroing and re-allocating those slices on
// every call, the same role the teacher's sliding_window_pool.go plays
// for slidingWindowDict.
var hashChainPool = sync.Pool{
	New: func() any { return newHashChainFinder(0) },
}

var binaryTreePool = sync.Pool{
	New: func() any { return newBinaryTreeFinder(0) },
}

func getHashChainFinder(maxChainLen int) *hashChainFinder {
	f := hashChainPool.Get().(*hashChainFinder)
	f.maxChainLen = maxChainLen
	return f
}

func putHashChainFinder(f *hashChainFinder) {
	f.data = nil
	hashChainPool.Put(f)
}

func getBinaryTreeFinder(maxDepth int) *binaryTreeFinder {
	f := binaryTreePool.Get().(*binaryTreeFinder)
	f.maxDepth = maxDepth
	return f
}

func putBinaryTreeFinder(f *binaryTreeFinder) {
	f.data = nil
	binaryTreePool.Put(f)
}
