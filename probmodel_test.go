package lzip

import (
	"bytes"
	"testing"
)

func TestLiteralCoder_RoundTripPlainLiterals(t *testing.T) {
	lc := newLiteralCoder()
	bs := []byte("the quick brown fox")

	var buf bytes.Buffer
	enc := newRangeEncoder(&buf)
	for i, b := range bs {
		var prev byte
		if i > 0 {
			prev = bs[i-1]
		}
		ls := litState(prev, uint64(i))
		if err := lc.encode(enc, b, 0, 0, ls); err != nil {
			t.Fatalf("encode[%d]: %v", i, err)
		}
	}
	if err := enc.flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	lc2 := newLiteralCoder()
	dec, err := newRangeDecoder(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("newRangeDecoder: %v", err)
	}
	for i, want := range bs {
		var prev byte
		if i > 0 {
			prev = bs[i-1]
		}
		ls := litState(prev, uint64(i))
		got, err := lc2.decode(dec, 0, 0, ls)
		if err != nil {
			t.Fatalf("decode[%d]: %v", i, err)
		}
		if got != want {
			t.Fatalf("byte %d: got %q, want %q", i, got, want)
		}
	}
}

func TestLiteralCoder_RoundTripMatchedForm(t *testing.T) {
	lc := newLiteralCoder()
	matchByte := byte('X')
	bs := []byte{'X', 'X', 'Y', 0x00, 0xFF}

	var buf bytes.Buffer
	enc := newRangeEncoder(&buf)
	for _, b := range bs {
		if err := lc.encode(enc, b, matchByte, 7, 0); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	if err := enc.flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	lc2 := newLiteralCoder()
	dec, err := newRangeDecoder(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("newRangeDecoder: %v", err)
	}
	for i, want := range bs {
		got, err := lc2.decode(dec, matchByte, 7, 0)
		if err != nil {
			t.Fatalf("decode[%d]: %v", i, err)
		}
		if got != want {
			t.Fatalf("byte %d: got %#x, want %#x", i, got, want)
		}
	}
}

func TestLengthCoder_RoundTripAllRanges(t *testing.T) {
	c := newLengthCoder()
	values := []uint32{0, 1, 7, 8, 9, 15, 16, 17, 18, 100, 200, 271}

	var buf bytes.Buffer
	enc := newRangeEncoder(&buf)
	for _, v := range values {
		if err := c.encode(enc, v, 0); err != nil {
			t.Fatalf("encode(%d): %v", v, err)
		}
	}
	if err := enc.flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	c2 := newLengthCoder()
	dec, err := newRangeDecoder(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("newRangeDecoder: %v", err)
	}
	for i, want := range values {
		got, err := c2.decode(dec, 0)
		if err != nil {
			t.Fatalf("decode[%d]: %v", i, err)
		}
		if got != want {
			t.Fatalf("value %d: got %d, want %d", i, got, want)
		}
	}
}

func TestLengthCoder_MaxMatchLenConstant(t *testing.T) {
	if maxMatchLen != 273 {
		t.Fatalf("maxMatchLen = %d, want 273 per spec.md §3", maxMatchLen)
	}
	if minMatchLen != 2 {
		t.Fatalf("minMatchLen = %d, want 2 per spec.md §3", minMatchLen)
	}
}

func TestLengthCoder_Reset(t *testing.T) {
	c := newLengthCoder()
	c.choice1.update(1)
	c.choice1.update(1)
	c.low[0][1].update(0)
	c.reset()
	if c.choice1 != probInit {
		t.Fatalf("choice1 not reset: %d", c.choice1)
	}
	if c.low[0][1] != probInit {
		t.Fatalf("low[0][1] not reset: %d", c.low[0][1])
	}
}
