// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzipgo
// Source: github.com/lzipgo/lzip

package lzip

import "math/bits"

// The 12-state packet-history machine (spec.md §4.3). States group into
// three bands: 0-6 follow a literal, 7-9 follow some kind of match,
// 10-11 follow a match made while already in a match-like state. The
// transition rules below are the canonical LZMA tables, expressed as
// range tests rather than lookup arrays (the shape TrueFurby's decoder
// and ulikunitz's encoder both use).
const numStates = 12

// stateUpdateLiteral returns the next state after coding a literal.
func stateUpdateLiteral(s uint32) uint32 {
	switch {
	case s < 4:
		return 0
	case s < 10:
		return s - 3
	default:
		return s - 6
	}
}

// stateUpdateMatch returns the next state after coding a new (non-rep) match.
func stateUpdateMatch(s uint32) uint32 {
	if s < 7 {
		return 7
	}
	return 10
}

// stateUpdateRep returns the next state after coding a rep match.
func stateUpdateRep(s uint32) uint32 {
	if s < 7 {
		return 8
	}
	return 11
}

// stateUpdateShortRep returns the next state after coding a short rep (length 1, rep0).
func stateUpdateShortRep(s uint32) uint32 {
	if s < 7 {
		return 9
	}
	return 11
}

// posState extracts the low pb bits of the data position, the extra
// context used to select is_match/is_rep0_long/length probabilities.
func posState(pos uint64) uint32 {
	return uint32(pos) & posStateMask
}

// Distance-slot geometry (spec.md §4.2, §6). A match distance is split
// into a coarse logarithmic "slot" plus footer bits: slots 0-3 are exact
// distances 0-3; slot s>=4 has footerBits = (s>>1)-1 and covers a range
// of 2^footerBits consecutive distances starting at base(s).
const (
	numLenToPosStates = 4  // bm_dis_slot[4][...]
	distSlotBits      = 6  // bm_dis_slot[...][64]
	numFullDistances  = 1 << 7 // 128: distances with a modeled (non-direct) footer
	endPosModelIndex  = 14
	alignBits         = 4
	numAlignSymbols   = 1 << alignBits // bm_align[16]
	numDirectBitsPool = numFullDistances - endPosModelIndex // bm_dis[114]
)

// lenToPosState maps a match length (already offset by minMatchLen, so
// 0 means length 2) to one of 4 buckets used to pick the distance-slot
// tree: lengths 2,3,4 get their own bucket, 5+ share the last one.
func lenToPosState(lenMinusMin uint32) uint32 {
	if lenMinusMin >= numLenToPosStates {
		return numLenToPosStates - 1
	}
	return lenMinusMin
}

// posSlot returns the distance slot for a zero-based distance dist
// (i.e. the wire value; the actual back-reference distance is dist+1).
// For dist < 4 the slot is the distance itself. Otherwise it is derived
// from the position of the highest set bit and the bit just below it —
// algebraically identical to table-driven implementations (e.g. the
// reference encoder's g_FastPos table) without needing a multi-megabyte
// lookup table.
func posSlot(dist uint32) uint32 {
	if dist < 4 {
		return dist
	}
	n := uint32(bits.Len32(dist)) - 1
	return (n << 1) | ((dist >> (n - 1)) & 1)
}

// distSlotBase and distSlotFooterBits return the base distance and
// footer-bit count for a distance slot, the inverse of posSlot.
func distSlotFooterBits(slot uint32) uint32 {
	if slot < 4 {
		return 0
	}
	return (slot >> 1) - 1
}

func distSlotBase(slot uint32) uint32 {
	if slot < 4 {
		return slot
	}
	footer := distSlotFooterBits(slot)
	return (2 | (slot & 1)) << footer
}

// distCoder codes match distances via slot + footer bits, per spec.md
// §6: slot (tree, keyed by length bucket), then either modeled "direct
// bits pool" probabilities (slots 4..13) or raw direct bits followed by
// a 4-bit alignment tree (slots >= 14).
type distCoder struct {
	slot  [numLenToPosStates][1 << distSlotBits]bitModel
	spec  [numDirectBitsPool]bitModel
	align [numAlignSymbols]bitModel
}

func newDistCoder() *distCoder {
	c := &distCoder{}
	c.reset()
	return c
}

func (c *distCoder) reset() {
	for i := range c.slot {
		resetProbs(c.slot[i][:])
	}
	resetProbs(c.spec[:])
	resetProbs(c.align[:])
}

// encode codes the zero-based distance dist for a match whose length
// bucket (from lenToPosState) is lenState.
func (c *distCoder) encode(e *rangeEncoder, dist uint32, lenState uint32) error {
	slot := posSlot(dist)
	if err := e.encodeBitTree(c.slot[lenState][:], distSlotBits, slot); err != nil {
		return err
	}
	if slot < 4 {
		return nil
	}
	footer := distSlotFooterBits(slot)
	base := distSlotBase(slot)
	rest := dist - base
	if slot < endPosModelIndex {
		return e.encodeBitTreeReverseAt(c.spec[:], int(base)-int(slot)-1, int(footer), rest)
	}
	if err := e.encodeDirectBits(rest>>alignBits, int(footer)-alignBits); err != nil {
		return err
	}
	return e.encodeBitTreeReverse(c.align[:], alignBits, rest&(numAlignSymbols-1))
}

func (c *distCoder) decode(d *rangeDecoder, lenState uint32) (uint32, error) {
	slot, err := d.decodeBitTree(c.slot[lenState][:], distSlotBits)
	if err != nil {
		return 0, err
	}
	if slot < 4 {
		return slot, nil
	}
	footer := distSlotFooterBits(slot)
	base := distSlotBase(slot)
	if slot < endPosModelIndex {
		rest, err := d.decodeBitTreeReverseAt(c.spec[:], int(base)-int(slot)-1, int(footer))
		if err != nil {
			return 0, err
		}
		return base + rest, nil
	}
	hi, err := d.decodeDirectBits(int(footer) - alignBits)
	if err != nil {
		return 0, err
	}
	lo, err := d.decodeBitTreeReverse(c.align[:], alignBits)
	if err != nil {
		return 0, err
	}
	return base + (hi << alignBits) + lo, nil
}
