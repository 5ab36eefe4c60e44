// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzipgo
// Source: github.com/lzipgo/lzip

package lzip

// priceUpdateInterval bounds how many symbols may pass before a length
// bucket's cached distance prices are forced stale, matching spec.md
// §4.6's "distance-slot prices are cached and only recomputed when a
// new slot is first used after its prior cache invalidation."
const priceUpdateInterval = 1 << 11

// Action kinds recorded on an optTrial's incoming edge.
const (
	actLit byte = iota
	actShortRep
	actRep
	actMatch
)

// optTrial is one node of the forward dynamic-programming array
// (spec.md §4.6 "trials[0..len]"): the cheapest known price to reach
// pos+index from pos, plus enough of the packet-history (state, rep0-3)
// at that point to price the next step, and a backpointer to replay the
// winning path once the horizon is resolved.
type optTrial struct {
	price  uint32
	state  uint32
	reps   [4]uint32
	prev   int
	kind   byte
	repIdx int
	dist   uint32
	length uint32
}

func rotateReps(reps [4]uint32, repIdx int) [4]uint32 {
	switch repIdx {
	case 0:
		return reps
	case 1:
		return [4]uint32{reps[1], reps[0], reps[2], reps[3]}
	case 2:
		return [4]uint32{reps[2], reps[0], reps[1], reps[3]}
	default:
		return [4]uint32{reps[3], reps[0], reps[1], reps[2]}
	}
}

// encodeOptimal runs the price-guided parser used at levels 1-9
// (spec.md §4.6). At each position it builds a forward trials[0..horizon]
// array, horizon bounded by the longest candidate the match finder and
// the rep-distance history can reach from here, then emits every packet
// of the cheapest path once the horizon is resolved and starts a fresh
// horizon at the position that path ends at. See encodeOptimalStep for
// the step itself.
func encodeOptimal(e *rangeEncoder, data []byte, lp levelParams) error {
	var mf matchFinder
	if lp.useBinaryTree {
		bt := getBinaryTreeFinder(lp.searchDepth)
		bt.reset(data, lp.dictSize, lp.matchLenLimit, lp.niceLen)
		mf = bt
		defer putBinaryTreeFinder(bt)
	} else {
		hc := getHashChainFinder(lp.searchDepth)
		hc.reset(data, lp.dictSize, lp.matchLenLimit, lp.niceLen)
		mf = hc
		defer putHashChainFinder(hc)
	}

	m := newEmitter(e, data)
	pc := newDistPriceCache()
	sinceRefresh := 0

	pos := 0
	for pos < len(data) {
		advanced, tokens, err := encodeOptimalStep(m, mf, pc, data, lp, pos)
		if err != nil {
			return err
		}
		pos += advanced
		sinceRefresh += tokens
		if sinceRefresh >= priceUpdateInterval {
			sinceRefresh = 0
			for ls := uint32(0); ls < numLenToPosStates; ls++ {
				pc.invalidateSlot(ls)
			}
		}
	}
	return m.writeEOS(pos)
}

// encodeOptimalStep decides and emits the packet sequence beginning at
// pos that is cheapest over a lookahead horizon bounded by the longest
// match or rep run reachable from pos (spec.md §4.6: "a dynamic-
// programming cost over a look-ahead horizon"). Step 0 of the trials
// array enumerates every immediate option: a literal, a short rep, each
// rep distance at every length it can reach, and the match finder's
// Pareto-optimal (length, distance) candidates at every length they
// cover. Each later step extends the cheapest trial reached so far with
// a further literal, short rep, or rep run — so a deliberately worse
// choice now (a shorter match, a literal instead of a rep) can win when
// it leads to a cheaper continuation, the defining property of optimal
// over greedy/lazy parsing. The match finder is queried only once, at
// pos itself: lookahead steps beyond it price literal/rep continuations
// directly against the already-known plaintext, which needs no further
// index query. Once the horizon is resolved, the price-per-byte
// cheapest endpoint is backtracked to its packet sequence; that
// sequence is emitted in full and the match finder's index is caught up
// over the bytes consumed via skip. Returns the number of input bytes
// consumed and the number of packets emitted.
//
// Grounded on the teacher's compress9x.go
// (codeMatch/storeRun/lenOfCodedMatch/minLazyMatchGain's "is this match
// worth taking over the run it preempts" reasoning), generalized from
// LZO's single-step lazy-match comparison to the multi-position,
// price-table-driven trials array spec.md §4.6 specifies.
func encodeOptimalStep(m *emitter, mf matchFinder, pc *distPriceCache, data []byte, lp levelParams, pos int) (int, int, error) {
	limit := lp.matchLenLimit
	if remain := uint32(len(data) - pos); remain < limit {
		limit = remain
	}

	cands := mf.matches(pos)
	var bestNewLen uint32
	if n := len(cands); n > 0 {
		bestNewLen = cands[n-1].length
		if bestNewLen > limit {
			bestNewLen = limit
		}
	}

	startReps := [4]uint32{m.rs.rep0, m.rs.rep1, m.rs.rep2, m.rs.rep3}
	bestRepLen := uint32(0)
	for _, r := range startReps {
		if int(r)+1 > pos {
			continue
		}
		if n := matchLenAt(data, pos, pos-int(r)-1, limit); n > bestRepLen {
			bestRepLen = n
		}
	}

	horizon := bestNewLen
	if bestRepLen > horizon {
		horizon = bestRepLen
	}
	if horizon < 2 {
		// Nothing but a literal or a length-1 short rep reaches past
		// pos+1: no horizon to build a trials array over.
		if int(startReps[0])+1 <= pos && matchLenAt(data, pos, pos-int(startReps[0])-1, 1) == 1 &&
			m.priceShortRep(pos) < m.priceLiteral(pos) {
			if err := m.writeShortRep(pos); err != nil {
				return 0, 0, err
			}
			return 1, 1, nil
		}
		if err := m.writeLiteral(pos); err != nil {
			return 0, 0, err
		}
		return 1, 1, nil
	}

	trials := make([]optTrial, horizon+1)
	for i := range trials {
		trials[i].price = infinityPrice
	}
	trials[0] = optTrial{state: m.rs.state, reps: startReps}

	relax := func(idx int, price uint32, state uint32, reps [4]uint32, kind byte, repIdx int, dist, length uint32, prev int) {
		if idx < 0 || idx >= len(trials) {
			return
		}
		if price < trials[idx].price {
			trials[idx] = optTrial{price: price, state: state, reps: reps, prev: prev, kind: kind, repIdx: repIdx, dist: dist, length: length}
		}
	}

	for i := 0; i < int(horizon); i++ {
		base := trials[i]
		if base.price >= infinityPrice {
			continue
		}
		p := pos + i
		maxLenAt := lp.matchLenLimit
		if remain := uint32(len(data) - p); remain < maxLenAt {
			maxLenAt = remain
		}
		if remain := horizon - uint32(i); remain < maxLenAt {
			maxLenAt = remain
		}
		tmp := *m
		tmp.rs = repState{base.reps[0], base.reps[1], base.reps[2], base.reps[3], base.state}
		em := &tmp

		litPrice := em.priceLiteral(p)
		relax(i+1, base.price+litPrice, stateUpdateLiteral(base.state), base.reps, actLit, 0, 0, 1, i)

		if int(base.reps[0])+1 <= p && maxLenAt >= 1 && matchLenAt(data, p, p-int(base.reps[0])-1, 1) == 1 {
			srPrice := em.priceShortRep(p)
			relax(i+1, base.price+srPrice, stateUpdateShortRep(base.state), base.reps, actShortRep, 0, 0, 1, i)
		}

		for ri, r := range base.reps {
			if int(r)+1 > p {
				continue
			}
			maxRep := matchLenAt(data, p, p-int(r)-1, maxLenAt)
			for L := uint32(2); L <= maxRep; L++ {
				price := em.priceRep(p, ri, L)
				relax(i+int(L), base.price+price, stateUpdateRep(base.state), rotateReps(base.reps, ri), actRep, ri, 0, L, i)
			}
		}

		// New-distance matches are only priced at the matcher's own
		// query position (i == 0); see the function doc comment.
		if i == 0 {
			prevLen := uint32(1)
			for _, c := range cands {
				hi := c.length
				if hi > maxLenAt {
					hi = maxLenAt
				}
				for L := prevLen + 1; L <= hi; L++ {
					price := em.priceMatch(p, c.dist, L, pc)
					newReps := [4]uint32{c.dist, base.reps[0], base.reps[1], base.reps[2]}
					relax(i+int(L), base.price+price, stateUpdateMatch(base.state), newReps, actMatch, 0, c.dist, L, i)
				}
				if c.length > prevLen {
					prevLen = c.length
				}
			}
		}
	}

	end := int(horizon)
	bestCost := (trials[end].price << priceShiftBits) / horizon
	for k := 1; k < int(horizon); k++ {
		if trials[k].price >= infinityPrice {
			continue
		}
		if cost := (trials[k].price << priceShiftBits) / uint32(k); cost < bestCost {
			bestCost = cost
			end = k
		}
	}

	type step struct {
		kind   byte
		repIdx int
		dist   uint32
		length uint32
	}
	var path []step
	for idx := end; idx > 0; idx = trials[idx].prev {
		t := trials[idx]
		path = append(path, step{kind: t.kind, repIdx: t.repIdx, dist: t.dist, length: t.length})
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}

	cur := pos
	for _, s := range path {
		var err error
		switch s.kind {
		case actLit:
			err = m.writeLiteral(cur)
		case actShortRep:
			err = m.writeShortRep(cur)
		case actRep:
			err = m.writeRep(cur, s.repIdx, s.length)
		default:
			err = m.writeMatch(cur, s.dist, s.length)
		}
		if err != nil {
			return 0, 0, err
		}
		cur += int(s.length)
	}
	if end > 1 {
		mf.skip(pos, end-1)
	}
	return end, len(path), nil
}
