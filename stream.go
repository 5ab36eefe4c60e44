// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzipgo
// Source: github.com/lzipgo/lzip

package lzip

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

// Writer streams plaintext into one or more concatenated lzip members
// (spec.md §8 "Input larger than member_size: encoder emits multiple
// concatenated members"), splitting at opts.MemberSize. Member framing
// shape (struct holding destination + options + an accumulation buffer)
// follows the teacher's options.go/errors.go pairing generalized to a
// stateful streaming type.
type Writer struct {
	w      io.Writer
	lp     levelParams
	member uint64

	buf     []byte
	emitted bool
	closed  bool
}

// NewWriter returns a Writer that writes lzip members to w. opts may be
// nil for DefaultCompressOptions.
func NewWriter(w io.Writer, opts *CompressOptions) *Writer {
	if opts == nil {
		opts = DefaultCompressOptions()
	}
	member := opts.MemberSize
	if member == 0 {
		member = DefaultMemberSize
	}
	return &Writer{w: w, lp: paramsForLevel(opts.Level), member: member}
}

func (z *Writer) Write(p []byte) (int, error) {
	if z.closed {
		return 0, errors.New("lzip: write to closed Writer")
	}
	total := len(p)
	for len(p) > 0 {
		room := int(z.member) - len(z.buf)
		if room <= 0 {
			if err := z.flushMember(); err != nil {
				return total - len(p), err
			}
			room = int(z.member)
		}
		n := room
		if n > len(p) {
			n = len(p)
		}
		z.buf = append(z.buf, p[:n]...)
		p = p[n:]
	}
	return total, nil
}

func (z *Writer) flushMember() error {
	if err := compressMember(z.w, z.buf, z.lp); err != nil {
		return err
	}
	z.buf = z.buf[:0]
	z.emitted = true
	return nil
}

// Close flushes any buffered plaintext as a final member. An empty
// stream (Write never called, or called only with zero bytes) still
// produces exactly one empty member, per spec.md §8's boundary case.
func (z *Writer) Close() error {
	if z.closed {
		return nil
	}
	z.closed = true
	if len(z.buf) > 0 || !z.emitted {
		return z.flushMember()
	}
	return nil
}

// compressMember writes one complete lzip member for data: header,
// LZMA payload, trailer. The payload is built in memory first so its
// exact length is known before the trailer's member_size field is
// written (spec.md §4.9, §6).
func compressMember(dst io.Writer, data []byte, lp levelParams) error {
	hdr := encodeHeader(lp.dictSize)

	var payload bytes.Buffer
	rc := newRangeEncoder(&payload)
	var err error
	if lp.useFastEncoder {
		err = encodeFast(rc, data, lp)
	} else {
		err = encodeOptimal(rc, data, lp)
	}
	if err != nil {
		return err
	}
	if err := rc.flush(); err != nil {
		return wrapErr(KindIo, "flush range coder", err)
	}

	crc := crc32Update(0, data)
	memberSize := uint64(headerLen) + uint64(payload.Len()) + uint64(trailerLen)
	trailer := encodeTrailer(memberTrailer{dataCRC: crc, dataSize: uint64(len(data)), memberSize: memberSize})

	if _, err := dst.Write(hdr[:]); err != nil {
		return wrapErr(KindIo, "write member header", err)
	}
	if _, err := dst.Write(payload.Bytes()); err != nil {
		return wrapErr(KindIo, "write member payload", err)
	}
	if _, err := dst.Write(trailer[:]); err != nil {
		return wrapErr(KindIo, "write member trailer", err)
	}
	return nil
}

// Reader decodes a stream of concatenated lzip members (spec.md §8
// "decoder concatenates"). Grounded in shape on the teacher's
// decompress_reader.go naming, though the control flow is new: LZO has
// no multi-member container.
type Reader struct {
	r    *bufio.Reader
	opts *DecompressOptions

	pending  []byte
	done     bool
	lastStat Stats
}

// NewReader returns a Reader over r. opts may be nil for
// DefaultDecompressOptions.
func NewReader(r io.Reader, opts *DecompressOptions) (*Reader, error) {
	if opts == nil {
		opts = DefaultDecompressOptions()
	}
	return &Reader{r: bufio.NewReader(r), opts: opts}, nil
}

func (z *Reader) Read(p []byte) (int, error) {
	for len(z.pending) == 0 {
		if z.done {
			return 0, io.EOF
		}
		if err := z.nextMember(); err != nil {
			return 0, err
		}
	}
	n := copy(p, z.pending)
	z.pending = z.pending[n:]
	return n, nil
}

func (z *Reader) nextMember() error {
	hdrBuf := make([]byte, headerLen)
	n, err := io.ReadFull(z.r, hdrBuf)
	if err == io.EOF && n == 0 {
		z.done = true
		return nil
	}
	if err == io.ErrUnexpectedEOF {
		return z.handleTrailing(hdrBuf[:n], true)
	}
	if err != nil {
		return wrapErr(KindIo, "read member header", err)
	}

	hdr, herr := decodeHeader(hdrBuf)
	if herr != nil {
		if k, ok := errKind(herr); ok && k == KindBadMagic {
			return z.handleTrailing(hdrBuf, false)
		}
		return herr
	}
	if z.opts.MaxDictSize != 0 && hdr.dictSize > z.opts.MaxDictSize {
		return newErr(KindOutOfMemory, "member dictionary size exceeds configured maximum")
	}

	dict := newDecoderDict(hdr.dictSize)
	payload := &countingByteReader{r: z.r}
	rd, err := newRangeDecoder(payload)
	if err != nil {
		return wrapErr(KindDataError, "range decoder init", err)
	}

	var out bytes.Buffer
	dataSize, crc, err := decodeMemberBody(rd, dict, &out)
	if err != nil {
		return err
	}

	trailerBuf := make([]byte, trailerLen)
	if _, err := io.ReadFull(z.r, trailerBuf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return wrapErr(KindDataError, "truncated member trailer", ErrShortTrailer)
		}
		return wrapErr(KindIo, "read member trailer", err)
	}
	trailer, terr := decodeTrailer(trailerBuf)
	if terr != nil {
		return terr
	}
	wantMemberSize := uint64(headerLen) + uint64(payload.n) + uint64(trailerLen)
	if trailer.dataCRC != crc || trailer.dataSize != dataSize || trailer.memberSize != wantMemberSize {
		return newErr(KindDataError, "member trailer CRC/size mismatch")
	}

	z.lastStat = Stats{
		CompressedSize:   trailer.memberSize,
		UncompressedSize: trailer.dataSize,
		CRC32:            trailer.dataCRC,
		DictionarySize:   hdr.dictSize,
	}
	z.pending = out.Bytes()
	return nil
}

// handleTrailing applies the Trailing policy (spec.md §7) to bytes that
// do not begin a valid member. partial indicates fewer than headerLen
// bytes were available (as opposed to a full header with a bad magic).
func (z *Reader) handleTrailing(leftover []byte, partial bool) error {
	z.done = true
	switch z.opts.Trailing {
	case TrailingIgnore:
		return nil
	case TrailingLoose:
		if partial && looksLikeHeaderPrefix(leftover) {
			return nil
		}
		return newErr(KindTrailingGarbage, "trailing garbage after last member")
	default:
		if len(leftover) == 0 {
			return nil
		}
		return newErr(KindTrailingGarbage, "trailing garbage after last member")
	}
}

func looksLikeHeaderPrefix(b []byte) bool {
	if len(b) == 0 || len(b) > len(lzipMagic) {
		return false
	}
	for i, c := range b {
		if c != lzipMagic[i] {
			return false
		}
	}
	return true
}

// countingByteReader wraps an io.ByteReader and counts the bytes it
// yields, so nextMember can validate the trailer's member_size field
// (header + payload + trailer) against what was actually read, per
// spec.md §7's "validate... member_size" check.
type countingByteReader struct {
	r io.ByteReader
	n int
}

func (c *countingByteReader) ReadByte() (byte, error) {
	b, err := c.r.ReadByte()
	if err == nil {
		c.n++
	}
	return b, err
}

func errKind(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
