// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzipgo
// Source: github.com/lzipgo/lzip

package lzip

// packetProbs groups the packet-selection probabilities shared by the
// encoder and decoder (spec.md §4.2): which branch a packet takes
// (literal vs. match), which match variant (new distance vs. one of the
// four rep distances), and whether a rep is the 1-byte "short rep"
// form. Combined with literalCoder, lengthCoder and distCoder
// (probmodel.go, state.go) this is the complete LZMA probability model.
type packetProbs struct {
	isMatch     [numStates][numPosStates]bitModel
	isRep       [numStates]bitModel
	isRepG0     [numStates]bitModel
	isRepG1     [numStates]bitModel
	isRepG2     [numStates]bitModel
	isRep0Long  [numStates][numPosStates]bitModel

	literal  *literalCoder
	matchLen *lengthCoder
	repLen   *lengthCoder
	dist     *distCoder
}

func newPacketProbs() *packetProbs {
	p := &packetProbs{
		literal:  newLiteralCoder(),
		matchLen: newLengthCoder(),
		repLen:   newLengthCoder(),
		dist:     newDistCoder(),
	}
	p.reset()
	return p
}

func (p *packetProbs) reset() {
	for s := range p.isMatch {
		resetProbs(p.isMatch[s][:])
		resetProbs(p.isRep0Long[s][:])
	}
	resetProbs(p.isRep[:])
	resetProbs(p.isRepG0[:])
	resetProbs(p.isRepG1[:])
	resetProbs(p.isRepG2[:])
	p.literal.reset()
	p.matchLen.reset()
	p.repLen.reset()
	p.dist.reset()
}

// repState bundles the rep-distance history (rep0 most recent) and the
// 12-state packet-history value, the mutable parse state threaded
// through both the encoder and decoder packet loops.
type repState struct {
	rep0, rep1, rep2, rep3 uint32
	state                  uint32
}

func newRepState() repState {
	return repState{}
}
