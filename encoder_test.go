package lzip

import "testing"

// TestWriteRep_RotatesRepHistoryBySlot pins down the MRU update for each
// rep slot: coding via rep index k must move that distance to rep0 while
// preserving the relative order of the others, not swap it in place.
func TestWriteRep_RotatesRepHistoryBySlot(t *testing.T) {
	data := make([]byte, 16)
	cases := []struct {
		repIdx int
		want   [4]uint32
	}{
		{0, [4]uint32{10, 20, 30, 40}},
		{1, [4]uint32{20, 10, 30, 40}},
		{2, [4]uint32{30, 10, 20, 40}},
		{3, [4]uint32{40, 10, 20, 30}},
	}
	for _, c := range cases {
		e := newEmitter(newRangeEncoder(discardByteWriter{}), data)
		e.rs = repState{rep0: 10, rep1: 20, rep2: 30, rep3: 40, state: 0}
		if err := e.writeRep(10, c.repIdx, minMatchLen); err != nil {
			t.Fatalf("repIdx %d: writeRep: %v", c.repIdx, err)
		}
		got := [4]uint32{e.rs.rep0, e.rs.rep1, e.rs.rep2, e.rs.rep3}
		if got != c.want {
			t.Fatalf("repIdx %d: rep history = %v, want %v", c.repIdx, got, c.want)
		}
	}
}

// TestRotateReps_MatchesWriteRep keeps the optimal-parser lookahead's own
// rep-shuffle in lockstep with writeRep's, since the two independently
// predict the same post-packet rep history for the same repIdx.
func TestRotateReps_MatchesWriteRep(t *testing.T) {
	data := make([]byte, 16)
	start := [4]uint32{10, 20, 30, 40}
	for repIdx := 0; repIdx < 4; repIdx++ {
		e := newEmitter(newRangeEncoder(discardByteWriter{}), data)
		e.rs = repState{rep0: start[0], rep1: start[1], rep2: start[2], rep3: start[3], state: 0}
		if err := e.writeRep(10, repIdx, minMatchLen); err != nil {
			t.Fatalf("repIdx %d: writeRep: %v", repIdx, err)
		}
		want := [4]uint32{e.rs.rep0, e.rs.rep1, e.rs.rep2, e.rs.rep3}
		got := rotateReps(start, repIdx)
		if got != want {
			t.Fatalf("repIdx %d: rotateReps = %v, want %v (writeRep)", repIdx, got, want)
		}
	}
}

type discardByteWriter struct{}

func (discardByteWriter) WriteByte(byte) error { return nil }
