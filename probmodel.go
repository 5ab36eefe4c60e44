// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzipgo
// Source: github.com/lzipgo/lzip

package lzip

// Literal context / position bits are fixed by the lzip wire format
// (spec.md §3): lc=3, lp=0, pb=2. They are not negotiated per member.
const (
	lc = 3
	lp = 0
	pb = 2

	numPosStates  = 1 << pb // 4
	posStateMask  = numPosStates - 1
	numLitStates  = 1 << (lc + lp) // 8
	literalProbsPerState = 0x300
)

// literalCoder holds one 768-entry probability tree per literal context,
// matching spec.md §4.2's bm_literal group. States 7 and above use the
// "matched literal" form, conditioning each bit on the corresponding
// bit of the byte at the last match distance's referent.
type literalCoder struct {
	probs []bitModel // numLitStates * 0x300
}

func newLiteralCoder() *literalCoder {
	c := &literalCoder{probs: make([]bitModel, numLitStates*literalProbsPerState)}
	resetProbs(c.probs)
	return c
}

func (c *literalCoder) reset() { resetProbs(c.probs) }

// litState computes the literal context index from the previous
// plaintext byte and the current position (pb/lp folded in per the
// fixed lc=3,lp=0 parameterization, where lp contributes nothing).
func litState(prevByte byte, pos uint64) uint32 {
	return uint32(prevByte) >> (8 - lc)
}

// encode codes byte s. When state >= 7 (the encoder/decoder has just
// come from a match), each bit is conditioned on the corresponding bit
// of matchByte (the byte preceding the current position at the last
// used distance) until the coded bits diverge from it.
func (c *literalCoder) encode(e *rangeEncoder, s, matchByte byte, state uint32, ls uint32) error {
	probs := c.probs[ls*literalProbsPerState : ls*literalProbsPerState+literalProbsPerState]
	symbol := uint32(1)
	r := uint32(s)
	if state >= 7 {
		m := uint32(matchByte)
		for symbol < 0x100 {
			matchBit := (m >> 7) & 1
			m <<= 1
			bit := (r >> 7) & 1
			r <<= 1
			i := ((1 + matchBit) << 8) | symbol
			if err := e.encodeBit(&probs[i], bit); err != nil {
				return err
			}
			symbol = (symbol << 1) | bit
			if matchBit != bit {
				break
			}
		}
	}
	for symbol < 0x100 {
		bit := (r >> 7) & 1
		r <<= 1
		if err := e.encodeBit(&probs[symbol], bit); err != nil {
			return err
		}
		symbol = (symbol << 1) | bit
	}
	return nil
}

func (c *literalCoder) decode(d *rangeDecoder, matchByte byte, state uint32, ls uint32) (byte, error) {
	probs := c.probs[ls*literalProbsPerState : ls*literalProbsPerState+literalProbsPerState]
	symbol := uint32(1)
	if state >= 7 {
		m := uint32(matchByte)
		for symbol < 0x100 {
			matchBit := (m >> 7) & 1
			m <<= 1
			i := ((1 + matchBit) << 8) | symbol
			bit, err := d.decodeBit(&probs[i])
			if err != nil {
				return 0, err
			}
			symbol = (symbol << 1) | bit
			if matchBit != bit {
				break
			}
		}
	}
	for symbol < 0x100 {
		bit, err := d.decodeBit(&probs[symbol])
		if err != nil {
			return 0, err
		}
		symbol = (symbol << 1) | bit
	}
	return byte(symbol), nil
}

// lengthCoder implements the shared match-length sub-model (spec.md
// §4.2): a choice bit picks the low range (2..9), a second choice bit
// picks mid (10..17) vs high (18..273). low/mid are pos_state-conditioned
// 3-bit trees; high is an unconditioned 8-bit tree.
type lengthCoder struct {
	choice1 bitModel
	choice2 bitModel
	low     [numPosStates][8]bitModel
	mid     [numPosStates][8]bitModel
	high    [256]bitModel
}

const (
	lenLowSymbols  = 8
	lenMidSymbols  = 8
	lenHighSymbols = 256
	minMatchLen    = 2
	maxMatchLen    = minMatchLen + lenLowSymbols + lenMidSymbols + lenHighSymbols - 1 // 273
)

func newLengthCoder() *lengthCoder {
	c := &lengthCoder{}
	c.reset()
	return c
}

func (c *lengthCoder) reset() {
	c.choice1 = probInit
	c.choice2 = probInit
	for i := range c.low {
		resetProbs(c.low[i][:])
		resetProbs(c.mid[i][:])
	}
	resetProbs(c.high[:])
}

// encode codes n, the match length minus minMatchLen, in [0, 271].
func (c *lengthCoder) encode(e *rangeEncoder, n uint32, posState uint32) error {
	if n < lenLowSymbols {
		if err := e.encodeBit(&c.choice1, 0); err != nil {
			return err
		}
		return e.encodeBitTree(c.low[posState][:], 3, n)
	}
	if err := e.encodeBit(&c.choice1, 1); err != nil {
		return err
	}
	n -= lenLowSymbols
	if n < lenMidSymbols {
		if err := e.encodeBit(&c.choice2, 0); err != nil {
			return err
		}
		return e.encodeBitTree(c.mid[posState][:], 3, n)
	}
	if err := e.encodeBit(&c.choice2, 1); err != nil {
		return err
	}
	return e.encodeBitTree(c.high[:], 8, n-lenMidSymbols)
}

func (c *lengthCoder) decode(d *rangeDecoder, posState uint32) (uint32, error) {
	bit, err := d.decodeBit(&c.choice1)
	if err != nil {
		return 0, err
	}
	if bit == 0 {
		return d.decodeBitTree(c.low[posState][:], 3)
	}
	bit, err = d.decodeBit(&c.choice2)
	if err != nil {
		return 0, err
	}
	if bit == 0 {
		n, err := d.decodeBitTree(c.mid[posState][:], 3)
		if err != nil {
			return 0, err
		}
		return n + lenLowSymbols, nil
	}
	n, err := d.decodeBitTree(c.high[:], 8)
	if err != nil {
		return 0, err
	}
	return n + lenLowSymbols + lenMidSymbols, nil
}
