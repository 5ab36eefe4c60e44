// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzipgo
// Source: github.com/lzipgo/lzip

package lzip

import (
	"bytes"
	"io"
)

// Decompress decodes data as an lzip stream, concatenating every member
// it holds (spec.md §8 "decoder concatenates"). opts may be nil for
// DefaultDecompressOptions.
func Decompress(data []byte, opts *DecompressOptions) ([]byte, error) {
	r, err := NewReader(bytes.NewReader(data), opts)
	if err != nil {
		return nil, err
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return out, nil
}
