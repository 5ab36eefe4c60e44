// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzipgo
// Source: github.com/lzipgo/lzip

package lzip

import "bytes"

// Compress returns data encoded as an lzip stream, split into multiple
// members if larger than opts.MemberSize. opts may be nil for
// DefaultCompressOptions.
func Compress(data []byte, opts *CompressOptions) ([]byte, error) {
	var buf bytes.Buffer
	w := NewWriter(&buf, opts)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
