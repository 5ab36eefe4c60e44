// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzipgo
// Source: github.com/lzipgo/lzip

package lzip

// encodeFast runs the greedy single-match encoder used at level 0
// (spec.md §1 item 7, §4.7): "at each position take the longest match
// >= 2 bytes; else emit a literal." Grounded on the teacher's
// compress_1x_fast.go (compress1xFastCore's "take the match or extend
// literal run" loop) almost one-for-one in control flow, re-targeted at
// LZMA packet emission instead of LZO opcode emission.
func encodeFast(e *rangeEncoder, data []byte, lp levelParams) error {
	mf := getHashChainFinder(lp.searchDepth)
	defer putHashChainFinder(mf)
	mf.reset(data, lp.dictSize, lp.matchLenLimit, lp.niceLen)

	m := newEmitter(e, data)
	pos := 0
	for pos < len(data) {
		cands := mf.matches(pos)
		best := matchCandidate{}
		for _, c := range cands {
			if c.length > best.length {
				best = c
			}
		}

		if best.length >= 2 {
			limit := lp.matchLenLimit
			if remain := uint32(len(data) - pos); remain < limit {
				limit = remain
			}
			if best.length > limit {
				best.length = limit
			}
			// A match at the most recent distance is coded as a rep0
			// packet, which is cheaper than repeating the distance.
			var err error
			if pos > 0 && best.dist == m.rs.rep0 {
				err = m.writeRep(pos, 0, best.length)
			} else {
				err = m.writeMatch(pos, best.dist, best.length)
			}
			if err != nil {
				return err
			}
			mf.skip(pos, int(best.length)-1)
			pos += int(best.length)
			continue
		}

		if err := m.writeLiteral(pos); err != nil {
			return err
		}
		pos++
	}
	return m.writeEOS(pos)
}
