package lzip

import (
	"bytes"
	"testing"
)

func TestStateTransitions_StayInRange(t *testing.T) {
	for s := uint32(0); s < numStates; s++ {
		for _, fn := range []func(uint32) uint32{
			stateUpdateLiteral, stateUpdateMatch, stateUpdateRep, stateUpdateShortRep,
		} {
			next := fn(s)
			if next >= numStates {
				t.Fatalf("state %d transitioned out of range: %d", s, next)
			}
		}
	}
}

func TestStateUpdateLiteral_ReturnsZeroFromLowStates(t *testing.T) {
	for s := uint32(0); s < 4; s++ {
		if got := stateUpdateLiteral(s); got != 0 {
			t.Fatalf("stateUpdateLiteral(%d) = %d, want 0", s, got)
		}
	}
}

func TestPosState_MasksLowBits(t *testing.T) {
	cases := []struct {
		pos  uint64
		want uint32
	}{
		{0, 0}, {1, 1}, {3, 3}, {4, 0}, {5, 1}, {255, 3}, {256, 0},
	}
	for _, c := range cases {
		if got := posState(c.pos); got != c.want {
			t.Fatalf("posState(%d) = %d, want %d", c.pos, got, c.want)
		}
	}
}

func TestPosSlot_ExactForSmallDistances(t *testing.T) {
	for d := uint32(0); d < 4; d++ {
		if got := posSlot(d); got != d {
			t.Fatalf("posSlot(%d) = %d, want %d", d, got, d)
		}
	}
}

func TestPosSlot_DistSlotBase_RoundTrip(t *testing.T) {
	// For every slot, distSlotBase(slot) should itself map back to that
	// slot (it is the smallest distance belonging to it), and the next
	// slot's base should be strictly greater, covering the full range
	// without overlap or gaps.
	var prevBase uint32
	for slot := uint32(0); slot < 64; slot++ {
		base := distSlotBase(slot)
		if slot > 0 && base <= prevBase {
			t.Fatalf("slot %d base %d did not increase past slot %d base %d", slot, base, slot-1, prevBase)
		}
		if got := posSlot(base); got != slot {
			t.Fatalf("posSlot(distSlotBase(%d)=%d) = %d, want %d", slot, base, got, slot)
		}
		prevBase = base
	}
}

func TestLenToPosState_SaturatesAtThree(t *testing.T) {
	cases := map[uint32]uint32{0: 0, 1: 1, 2: 2, 3: 3, 4: 3, 100: 3}
	for in, want := range cases {
		if got := lenToPosState(in); got != want {
			t.Fatalf("lenToPosState(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestDistCoder_RoundTrip(t *testing.T) {
	c := newDistCoder()
	dists := []uint32{0, 1, 2, 3, 4, 5, 100, 1000, 1 << 16, 1<<20 - 1, 1 << 27}

	var buf bytes.Buffer
	enc := newRangeEncoder(&buf)
	for _, d := range dists {
		if err := c.encode(enc, d, 0); err != nil {
			t.Fatalf("encode(%d): %v", d, err)
		}
	}
	if err := enc.flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	c2 := newDistCoder()
	dec, err := newRangeDecoder(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("newRangeDecoder: %v", err)
	}
	for i, want := range dists {
		got, err := c2.decode(dec, 0)
		if err != nil {
			t.Fatalf("decode[%d]: %v", i, err)
		}
		if got != want {
			t.Fatalf("distance %d: got %d, want %d", i, got, want)
		}
	}
}
