package lzip

import "testing"

func TestMatchLenAt_CountsAgreeingBytes(t *testing.T) {
	data := []byte("abcdabcXabcd")
	n := matchLenAt(data, 0, 4, 10)
	if n != 3 { // "abc" agrees, then 'd' vs 'X' diverges
		t.Fatalf("matchLenAt = %d, want 3", n)
	}
}

func TestMatchLenAt_CapsAtLimit(t *testing.T) {
	data := []byte("aaaaaaaaaa")
	n := matchLenAt(data, 0, 1, 3)
	if n != 3 {
		t.Fatalf("matchLenAt = %d, want 3 (capped by limit)", n)
	}
}

func TestHashChainFinder_FindsExactRepeat(t *testing.T) {
	data := []byte("XYZXYZXYZXYZ")
	f := newHashChainFinder(32)
	f.reset(data, 1<<20, 273, 32)

	for i := 0; i < 3; i++ {
		f.matches(i) // prime the index with the first occurrence
	}
	cands := f.matches(3) // "XYZXYZXYZ" should now find a match back to pos 0
	if len(cands) == 0 {
		t.Fatal("expected at least one match candidate at pos 3")
	}
	best := cands[len(cands)-1]
	if best.length < 3 {
		t.Fatalf("best match length = %d, want >= 3", best.length)
	}
	if best.dist != 2 { // zero-based distance to pos 0 from pos 3 is 3-0-1=2
		t.Fatalf("best match distance = %d, want 2", best.dist)
	}
}

func TestHashChainFinder_NoMatchOnFirstBytes(t *testing.T) {
	data := []byte("unique data with no repeats yet")
	f := newHashChainFinder(32)
	f.reset(data, 1<<20, 273, 32)
	cands := f.matches(0)
	if len(cands) != 0 {
		t.Fatalf("expected no candidates at pos 0, got %v", cands)
	}
}

func TestHashChainFinder_RespectsDictSize(t *testing.T) {
	data := append(repeatByte('a', 100), []byte("needle")...)
	data = append(data, []byte("needle")...)
	f := newHashChainFinder(64)
	f.reset(data, 4, 273, 32) // dictionary too small to reach back to the first "needle"

	pos := 106 // start of the second "needle"
	for i := 0; i < pos; i++ {
		f.matches(i)
	}
	cands := f.matches(pos)
	for _, c := range cands {
		if c.dist >= 4 {
			t.Fatalf("candidate distance %d exceeds configured dictSize 4", c.dist)
		}
	}
}

func TestBinaryTreeFinder_FindsExactRepeat(t *testing.T) {
	data := []byte("ABCDEFABCDEFABCDEF")
	f := newBinaryTreeFinder(64)
	f.reset(data, 1<<20, 273, 64)

	for i := 0; i < 6; i++ {
		f.matches(i)
	}
	cands := f.matches(6)
	if len(cands) == 0 {
		t.Fatal("expected match candidates at pos 6")
	}
	best := cands[len(cands)-1]
	if best.length < 6 {
		t.Fatalf("best match length = %d, want >= 6", best.length)
	}
}

func TestBinaryTreeFinder_SkipAdvancesWithoutPanicking(t *testing.T) {
	data := repeatByte('z', 50)
	f := newBinaryTreeFinder(16)
	f.reset(data, 1<<16, 273, 32)
	f.matches(0)
	f.skip(0, 10)
	f.matches(11)
}

func TestHashChainFinder_SkipIndexesSkippedPositions(t *testing.T) {
	// "AB" repeats every 2 bytes for the first 20 bytes, then a long
	// match candidate "AB...AB" reappears at pos 23. If skip inserted
	// the wrong positions, the chain built during the first match's
	// skipped interior bytes would be missing, and a later match
	// starting mid-pattern would fail to find its source.
	pattern := []byte("ABABABABABABABABABAB") // 20 bytes, pos 0..19
	data := append(append([]byte{}, pattern...), []byte("XYZ")...)
	data = append(data, pattern...) // repeat starting at pos 23

	f := newHashChainFinder(64)
	f.reset(data, 1<<20, 273, 64)

	// Emulate the encoder loop: matches(0) inserts pos 0 (the first
	// occurrence has no prior candidates to find), then skip indexes
	// the rest of the pattern's interior positions, as writeMatch +
	// mf.skip(pos, length-1) would for a match spanning the pattern.
	f.matches(0)
	f.skip(0, len(pattern)-1)

	pos := len(pattern) + 3 // start of the repeated pattern after "XYZ"
	found := f.matches(pos)
	if len(found) == 0 {
		t.Fatal("expected matches() to find the repeated pattern using positions indexed by skip")
	}
	best := found[len(found)-1]
	if best.length < 4 {
		t.Fatalf("best match length = %d, want a substantial match from the skipped interior positions", best.length)
	}
}

func TestMatchFinderPool_RoundTrip(t *testing.T) {
	hc := getHashChainFinder(8)
	if hc == nil {
		t.Fatal("getHashChainFinder returned nil")
	}
	putHashChainFinder(hc)

	bt := getBinaryTreeFinder(8)
	if bt == nil {
		t.Fatal("getBinaryTreeFinder returned nil")
	}
	putBinaryTreeFinder(bt)
}

func repeatByte(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}
