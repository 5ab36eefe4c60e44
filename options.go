// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzipgo
// Source: github.com/lzipgo/lzip

package lzip

// TrailingPolicy controls how a decoder reacts to bytes following the
// last valid member (spec.md §7 "Trailing-data policy").
type TrailingPolicy int

const (
	// TrailingStrict reports ErrTrailingGarbage for any trailing bytes.
	TrailingStrict TrailingPolicy = iota
	// TrailingIgnore silently stops at the first non-member byte.
	TrailingIgnore
	// TrailingLoose accepts trailing bytes that merely look like the
	// start of another member (a magic-like prefix) without error.
	TrailingLoose
)

// CompressOptions configures a compression run (spec.md §5).
type CompressOptions struct {
	// Level selects the dictionary size / search-effort preset in
	// [0,9]; 0 uses the fast greedy encoder, 1-9 the optimal parser.
	Level int

	// MemberSize caps the uncompressed bytes per member; input larger
	// than this is split into multiple self-contained concatenated
	// members (spec.md §8 "Input larger than member_size"). Zero means
	// DefaultMemberSize.
	MemberSize uint64
}

// DefaultMemberSize bounds a single member's uncompressed size. Real
// lzip defaults to 2 GiB; this module buffers a member's plaintext in
// memory while parsing it (see matchfinder.go), so the default is kept
// far smaller to bound working-set size for typical library callers.
// Callers compressing huge inputs under tight memory can lower it
// further; CompressOptions.MemberSize has no enforced upper bound.
const DefaultMemberSize = 64 << 20 // 64 MiB

// DefaultCompressOptions returns options for lzip's default level, 6.
func DefaultCompressOptions() *CompressOptions {
	return &CompressOptions{Level: 6, MemberSize: DefaultMemberSize}
}

// DecompressOptions configures a decompression run (spec.md §7).
type DecompressOptions struct {
	// Trailing controls handling of bytes after the last valid member.
	Trailing TrailingPolicy

	// MaxDictSize caps the dictionary size a header is allowed to
	// request, guarding against OutOfMemory on hostile input. Zero
	// means no cap beyond the format's own 2^29 ceiling.
	MaxDictSize uint32
}

// DefaultDecompressOptions returns strict trailing-data handling and no
// additional dictionary-size cap.
func DefaultDecompressOptions() *DecompressOptions {
	return &DecompressOptions{Trailing: TrailingStrict}
}
