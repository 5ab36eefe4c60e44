// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzipgo
// Source: github.com/lzipgo/lzip

package lzip

import (
	"encoding/binary"
	"math/bits"
)

// Member framing (spec.md §4.9, §6): a 6-byte header, the LZMA packet
// stream, and a 20-byte trailer. Shaped like the teacher's options.go/
// errors.go pairing of a small struct plus sentinel errors, rather than
// a heavyweight parser type.
var lzipMagic = [4]byte{'L', 'Z', 'I', 'P'}

const (
	lzipVersion    = 1
	headerLen      = 6
	trailerLen     = 20
	minCodedDict   = 12
	maxCodedDict   = 29
)

type memberHeader struct {
	dictSize uint32
}

func encodeHeader(dictSize uint32) [headerLen]byte {
	var h [headerLen]byte
	copy(h[0:4], lzipMagic[:])
	h[4] = lzipVersion
	h[5] = encodeDictSizeByte(dictSize)
	return h
}

// decodeHeader validates the magic/version and decodes the dictionary
// size byte; a bad magic is reported distinctly from other failures so
// callers can distinguish "not a member here" from "corrupt member".
func decodeHeader(buf []byte) (memberHeader, error) {
	if len(buf) < headerLen {
		return memberHeader{}, wrapErr(KindIo, "short member header", ErrShortHeader)
	}
	if buf[0] != lzipMagic[0] || buf[1] != lzipMagic[1] || buf[2] != lzipMagic[2] || buf[3] != lzipMagic[3] {
		return memberHeader{}, newErr(KindBadMagic, "bad member magic")
	}
	if buf[4] != lzipVersion {
		return memberHeader{}, newErr(KindUnsupportedVersion, "unsupported member version")
	}
	dictSize, ok := decodeDictSizeByte(buf[5])
	if !ok {
		return memberHeader{}, newErr(KindBadDictionarySize, "dictionary-size byte out of range")
	}
	return memberHeader{dictSize: dictSize}, nil
}

// encodeDictSizeByte picks the smallest base/frac pair whose decoded
// dictionary size is >= size (spec.md §6): base = ceil(log2(size)),
// frac chosen to shave off up to base/16 increments if size is not
// itself a clean power of two, clamped to the format's [2^12, 2^29]
// range.
func encodeDictSizeByte(size uint32) byte {
	if size < 1<<minCodedDict {
		size = 1 << minCodedDict
	}
	if size > 1<<maxCodedDict {
		size = 1 << maxCodedDict
	}
	base := uint32(bits.Len32(size - 1))
	if base < minCodedDict {
		base = minCodedDict
	}
	full := uint32(1) << base
	step := full / 16
	frac := uint32(0)
	if step > 0 {
		frac = (full - size) / step
		if frac > 7 {
			frac = 7
		}
	}
	return byte(base) | byte(frac<<5)
}

// decodeDictSizeByte is the inverse of encodeDictSizeByte.
func decodeDictSizeByte(b byte) (uint32, bool) {
	base := uint32(b & 0x1F)
	frac := uint32(b>>5) & 0x07
	if base < minCodedDict || base > maxCodedDict {
		return 0, false
	}
	if frac != 0 && base < 1 {
		return 0, false
	}
	full := uint32(1) << base
	return full - (full/16)*frac, true
}

type memberTrailer struct {
	dataCRC    uint32
	dataSize   uint64
	memberSize uint64
}

func encodeTrailer(t memberTrailer) [trailerLen]byte {
	var buf [trailerLen]byte
	binary.LittleEndian.PutUint32(buf[0:4], t.dataCRC)
	binary.LittleEndian.PutUint64(buf[4:12], t.dataSize)
	binary.LittleEndian.PutUint64(buf[12:20], t.memberSize)
	return buf
}

func decodeTrailer(buf []byte) (memberTrailer, error) {
	if len(buf) < trailerLen {
		return memberTrailer{}, wrapErr(KindIo, "short member trailer", ErrShortTrailer)
	}
	return memberTrailer{
		dataCRC:    binary.LittleEndian.Uint32(buf[0:4]),
		dataSize:   binary.LittleEndian.Uint64(buf[4:12]),
		memberSize: binary.LittleEndian.Uint64(buf[12:20]),
	}, nil
}
