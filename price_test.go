package lzip

import (
	"bytes"
	"testing"
)

func TestPrice_CheaperForMoreLikelyBit(t *testing.T) {
	// A probability near probTotal means bit 0 is very likely: coding a
	// 0 should be cheap, coding a 1 should be expensive.
	high := bitModel(probTotal - 32)
	if price0(high) >= price1(high) {
		t.Fatalf("price0(%d)=%d should be cheaper than price1=%d for a high probability", high, price0(high), price1(high))
	}

	low := bitModel(32)
	if price1(low) >= price0(low) {
		t.Fatalf("price1(%d)=%d should be cheaper than price0=%d for a low probability", low, price1(low), price0(low))
	}
}

func TestPrice_SymmetricAtMidpoint(t *testing.T) {
	mid := bitModel(probInit)
	p0, p1 := price0(mid), price1(mid)
	diff := int64(p0) - int64(p1)
	if diff < -64 || diff > 64 {
		t.Fatalf("price0(mid)=%d and price1(mid)=%d should be close at the midpoint", p0, p1)
	}
}

func TestPrice_StaysBelowInfinityPrice(t *testing.T) {
	for p := bitModel(1); p < probTotal; p += 17 {
		if price0(p) > infinityPrice || price1(p) > infinityPrice {
			t.Fatalf("price out of expected bound at p=%d: price0=%d price1=%d", p, price0(p), price1(p))
		}
	}
}

func TestDistPriceCache_MatchesUncachedPrice(t *testing.T) {
	dc := newDistCoder()
	pc := newDistPriceCache()

	dists := []uint32{0, 5, 100, 1 << 16}
	for _, d := range dists {
		want := dc.price(d, 0)
		got := pc.price(dc, d, 0)
		if got != want {
			t.Fatalf("cached price for dist=%d: got %d, want %d", d, got, want)
		}
		// Second lookup should hit the cache and still match.
		got2 := pc.price(dc, d, 0)
		if got2 != want {
			t.Fatalf("second cached lookup for dist=%d: got %d, want %d", d, got2, want)
		}
	}
}

func TestDistPriceCache_InvalidateSlotForcesRecompute(t *testing.T) {
	dc := newDistCoder()
	pc := newDistPriceCache()

	pc.price(dc, 50, 0) // populate the cache

	// Mutate the underlying probability model so the true price changes.
	for range 50 {
		dc.slot[0][1].update(1)
	}
	freshPrice := dc.price(50, 0)

	pc.invalidateSlot(0)
	got := pc.price(dc, 50, 0)
	if got != freshPrice {
		t.Fatalf("price after invalidation = %d, want freshly computed %d", got, freshPrice)
	}
}

func TestPriceLiteral_TracksAdaptingProbability(t *testing.T) {
	data := bytes.Repeat([]byte{0x41}, 65)
	e := newEmitter(newRangeEncoder(&bytes.Buffer{}), data)

	ls := litState(data[0], 1)
	probs := e.probs.literal.probs[ls*literalProbsPerState : ls*literalProbsPerState+literalProbsPerState]
	flat := priceBitTree(probs, 8, uint32(data[1]))
	before := e.priceLiteral(1)
	if before != flat {
		t.Fatalf("fresh probability model should price byte 0x41 the same as walking the tree directly: got %d want %d", before, flat)
	}

	for pos := 1; pos < len(data); pos++ {
		if err := e.writeLiteral(pos); err != nil {
			t.Fatalf("writeLiteral: %v", err)
		}
	}
	after := e.priceLiteral(1)
	if after >= before {
		t.Fatalf("price after repeatedly coding the same byte = %d, want cheaper than the fresh estimate %d", after, before)
	}
}

func TestPriceLiteral_MatchedFormUsesMatchByte(t *testing.T) {
	// Under a fresh model every literal costs 8 equal-probability bits
	// whatever its match byte, so both models are first adapted the same
	// way on a literal that agrees with its match byte.
	train := func(m *emitter) {
		ls := litState(0x41, 3)
		for range 8 {
			if err := m.probs.literal.encode(m.e, 0x41, 0x41, 7, ls); err != nil {
				t.Fatalf("train: %v", err)
			}
		}
	}

	agreeing := []byte{0x41, 0x42, 0x41, 0x41}
	e := newEmitter(newRangeEncoder(&bytes.Buffer{}), agreeing)
	train(e)
	e.rs.state = 7 // matched-literal form
	e.rs.rep0 = 2  // matchByte = data[pos-rep0-1] = data[0]
	same := e.priceLiteral(3)

	differing := []byte{0x41, 0x42, 0x41, 0xFF}
	e2 := newEmitter(newRangeEncoder(&bytes.Buffer{}), differing)
	train(e2)
	e2.rs.state = 7
	e2.rs.rep0 = 2
	diff := e2.priceLiteral(3)

	if same >= diff {
		t.Fatalf("a literal agreeing with matchByte should price cheaper once the matched-form probabilities have adapted: agreeing=%d differing=%d", same, diff)
	}
}
