package lzip

import "testing"

func TestDictSizeByte_RoundTripPowersOfTwo(t *testing.T) {
	for base := uint32(minCodedDict); base <= maxCodedDict; base++ {
		size := uint32(1) << base
		b := encodeDictSizeByte(size)
		got, ok := decodeDictSizeByte(b)
		if !ok {
			t.Fatalf("decodeDictSizeByte(%#02x) rejected a byte encoded for size %d", b, size)
		}
		if got != size {
			t.Fatalf("dict size %d round-tripped to %d (byte %#02x)", size, got, b)
		}
	}
}

func TestDictSizeByte_ClampsToFormatRange(t *testing.T) {
	tooSmall := encodeDictSizeByte(1 << 8)
	size, ok := decodeDictSizeByte(tooSmall)
	if !ok || size != 1<<minCodedDict {
		t.Fatalf("small size did not clamp to %d: got %d, ok=%v", 1<<minCodedDict, size, ok)
	}

	tooLarge := encodeDictSizeByte(1 << 30)
	size, ok = decodeDictSizeByte(tooLarge)
	if !ok || size != 1<<maxCodedDict {
		t.Fatalf("large size did not clamp to %d: got %d, ok=%v", 1<<maxCodedDict, size, ok)
	}
}

func TestDictSizeByte_InvalidBaseRejected(t *testing.T) {
	// base (low 5 bits) = 30 is above maxCodedDict (29).
	_, ok := decodeDictSizeByte(30)
	if ok {
		t.Fatal("expected decodeDictSizeByte to reject base=30")
	}
	// base = 0 with a nonzero frac is invalid per spec.md §6.
	_, ok = decodeDictSizeByte(byte(0) | byte(1<<5))
	if ok {
		t.Fatal("expected decodeDictSizeByte to reject base=0 with nonzero frac")
	}
}

func TestHeader_RoundTrip(t *testing.T) {
	hdr := encodeHeader(1 << 20)
	got, err := decodeHeader(hdr[:])
	if err != nil {
		t.Fatalf("decodeHeader: %v", err)
	}
	if got.dictSize != 1<<20 {
		t.Fatalf("dictSize = %d, want %d", got.dictSize, 1<<20)
	}
}

func TestHeader_BadMagic(t *testing.T) {
	hdr := encodeHeader(1 << 20)
	hdr[0] = 'X'
	_, err := decodeHeader(hdr[:])
	k, ok := errKind(err)
	if !ok || k != KindBadMagic {
		t.Fatalf("expected KindBadMagic, got %v (kind ok=%v, %v)", err, ok, k)
	}
}

func TestHeader_UnsupportedVersion(t *testing.T) {
	hdr := encodeHeader(1 << 20)
	hdr[4] = 2
	_, err := decodeHeader(hdr[:])
	k, ok := errKind(err)
	if !ok || k != KindUnsupportedVersion {
		t.Fatalf("expected KindUnsupportedVersion, got %v", err)
	}
}

func TestHeader_ShortBuffer(t *testing.T) {
	_, err := decodeHeader([]byte{'L', 'Z', 'I'})
	if err == nil {
		t.Fatal("expected error for short header buffer")
	}
}

func TestHeader_BadDictionarySize(t *testing.T) {
	hdr := encodeHeader(1 << 20)
	hdr[5] = 30 // base=30 out of [12,29]
	_, err := decodeHeader(hdr[:])
	k, ok := errKind(err)
	if !ok || k != KindBadDictionarySize {
		t.Fatalf("expected KindBadDictionarySize, got %v", err)
	}
}

func TestTrailer_RoundTrip(t *testing.T) {
	want := memberTrailer{dataCRC: 0xDEADBEEF, dataSize: 123456, memberSize: 123500}
	buf := encodeTrailer(want)
	got, err := decodeTrailer(buf[:])
	if err != nil {
		t.Fatalf("decodeTrailer: %v", err)
	}
	if got != want {
		t.Fatalf("trailer round trip: got %+v, want %+v", got, want)
	}
}

func TestTrailer_ShortBuffer(t *testing.T) {
	_, err := decodeTrailer(make([]byte, trailerLen-1))
	if err == nil {
		t.Fatal("expected error for short trailer buffer")
	}
}

func TestHeaderLayout_MagicAndVersionBytes(t *testing.T) {
	hdr := encodeHeader(1 << 20)
	if hdr[0] != 'L' || hdr[1] != 'Z' || hdr[2] != 'I' || hdr[3] != 'P' {
		t.Fatalf("header magic = %q, want LZIP", hdr[0:4])
	}
	if hdr[4] != 1 {
		t.Fatalf("header version = %d, want 1", hdr[4])
	}
}
