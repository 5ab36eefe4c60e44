// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzipgo
// Source: github.com/lzipgo/lzip

/*
Package lzip implements the lzip container format: a simplified LZMA
stream (fixed lc=3, lp=0, pb=2) wrapped in a 6-byte header and a 20-byte
trailer carrying a CRC32, the decompressed size, and the member size. A
stream may hold several such members concatenated end to end; this
package produces and consumes both single members and multi-member
streams, and is wire-compatible with the lzip/clzip/plzip family.

# Decompress

From a byte slice:

	out, err := lzip.Decompress(compressed, lzip.DefaultDecompressOptions())

From a stream, handling multiple members and trailing-data policy:

	r, err := lzip.NewReader(src, lzip.DefaultDecompressOptions())
	io.Copy(dst, r)

# Compress

Options may be nil (default level 6, lzip's own default):

	out, err := lzip.Compress(data, nil)
	out, err := lzip.Compress(data, &lzip.CompressOptions{Level: 9})

Streaming, splitting into multiple members once MemberSize is reached:

	w := lzip.NewWriter(dst, lzip.DefaultCompressOptions())
	io.Copy(w, src)
	w.Close()
*/
package lzip
