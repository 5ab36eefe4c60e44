// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzipgo
// Source: github.com/lzipgo/lzip

package lzip

// Packet emission shared by encoder_fast.go and encoder_optimal.go: both
// parsers reduce to a sequence of these five calls over the member's
// plaintext buffer and rep-distance/state history. Factoring them out
// keeps the two parse strategies (greedy vs. price-guided optimal) free of
// range-coder and probability-table detail, mirroring how the teacher
// separates "decide what to code" (compress9x/compress_1x_fast) from
// "how to code it" (opcode_byte.go).
type emitter struct {
	e     *rangeEncoder
	probs *packetProbs
	rs    repState
	data  []byte
}

func newEmitter(e *rangeEncoder, data []byte) *emitter {
	return &emitter{e: e, probs: newPacketProbs(), data: data}
}

func (m *emitter) writeLiteral(pos int) error {
	ps := posState(uint64(pos))
	if err := m.e.encodeBit(&m.probs.isMatch[m.rs.state][ps], 0); err != nil {
		return err
	}
	var prevByte byte
	if pos > 0 {
		prevByte = m.data[pos-1]
	}
	var matchByte byte
	if m.rs.state >= 7 {
		matchByte = m.data[pos-int(m.rs.rep0)-1]
	}
	ls := litState(prevByte, uint64(pos))
	if err := m.probs.literal.encode(m.e, m.data[pos], matchByte, m.rs.state, ls); err != nil {
		return err
	}
	m.rs.state = stateUpdateLiteral(m.rs.state)
	return nil
}

func (m *emitter) writeMatch(pos int, dist uint32, length uint32) error {
	ps := posState(uint64(pos))
	if err := m.e.encodeBit(&m.probs.isMatch[m.rs.state][ps], 1); err != nil {
		return err
	}
	if err := m.e.encodeBit(&m.probs.isRep[m.rs.state], 0); err != nil {
		return err
	}
	lenMinus2 := length - minMatchLen
	if err := m.probs.matchLen.encode(m.e, lenMinus2, ps); err != nil {
		return err
	}
	lenState := lenToPosState(lenMinus2)
	if err := m.probs.dist.encode(m.e, dist, lenState); err != nil {
		return err
	}
	m.rs.rep3, m.rs.rep2, m.rs.rep1 = m.rs.rep2, m.rs.rep1, m.rs.rep0
	m.rs.rep0 = dist
	m.rs.state = stateUpdateMatch(m.rs.state)
	return nil
}

// writeRep codes a repeat match using rep history slot repIdx (0-3),
// shuffling rep0..rep3 so repIdx's distance becomes the new rep0.
func (m *emitter) writeRep(pos int, repIdx int, length uint32) error {
	ps := posState(uint64(pos))
	if err := m.e.encodeBit(&m.probs.isMatch[m.rs.state][ps], 1); err != nil {
		return err
	}
	if err := m.e.encodeBit(&m.probs.isRep[m.rs.state], 1); err != nil {
		return err
	}
	switch repIdx {
	case 0:
		if err := m.e.encodeBit(&m.probs.isRepG0[m.rs.state], 0); err != nil {
			return err
		}
		if err := m.e.encodeBit(&m.probs.isRep0Long[m.rs.state][ps], 1); err != nil {
			return err
		}
	case 1:
		if err := m.e.encodeBit(&m.probs.isRepG0[m.rs.state], 1); err != nil {
			return err
		}
		if err := m.e.encodeBit(&m.probs.isRepG1[m.rs.state], 0); err != nil {
			return err
		}
		m.rs.rep0, m.rs.rep1 = m.rs.rep1, m.rs.rep0
	case 2:
		if err := m.e.encodeBit(&m.probs.isRepG0[m.rs.state], 1); err != nil {
			return err
		}
		if err := m.e.encodeBit(&m.probs.isRepG1[m.rs.state], 1); err != nil {
			return err
		}
		if err := m.e.encodeBit(&m.probs.isRepG2[m.rs.state], 0); err != nil {
			return err
		}
		m.rs.rep0, m.rs.rep1, m.rs.rep2 = m.rs.rep2, m.rs.rep0, m.rs.rep1
	default:
		if err := m.e.encodeBit(&m.probs.isRepG0[m.rs.state], 1); err != nil {
			return err
		}
		if err := m.e.encodeBit(&m.probs.isRepG1[m.rs.state], 1); err != nil {
			return err
		}
		if err := m.e.encodeBit(&m.probs.isRepG2[m.rs.state], 1); err != nil {
			return err
		}
		m.rs.rep0, m.rs.rep1, m.rs.rep2, m.rs.rep3 = m.rs.rep3, m.rs.rep0, m.rs.rep1, m.rs.rep2
	}
	m.rs.state = stateUpdateRep(m.rs.state)
	lenMinus2 := length - minMatchLen
	return m.probs.repLen.encode(m.e, lenMinus2, ps)
}

func (m *emitter) writeShortRep(pos int) error {
	ps := posState(uint64(pos))
	if err := m.e.encodeBit(&m.probs.isMatch[m.rs.state][ps], 1); err != nil {
		return err
	}
	if err := m.e.encodeBit(&m.probs.isRep[m.rs.state], 1); err != nil {
		return err
	}
	if err := m.e.encodeBit(&m.probs.isRepG0[m.rs.state], 0); err != nil {
		return err
	}
	if err := m.e.encodeBit(&m.probs.isRep0Long[m.rs.state][ps], 0); err != nil {
		return err
	}
	m.rs.state = stateUpdateShortRep(m.rs.state)
	return nil
}

// writeEOS codes the end-of-stream marker: a new-match packet whose
// distance decodes to eosDistance (spec.md §4.8).
func (m *emitter) writeEOS(pos int) error {
	ps := posState(uint64(pos))
	if err := m.e.encodeBit(&m.probs.isMatch[m.rs.state][ps], 1); err != nil {
		return err
	}
	if err := m.e.encodeBit(&m.probs.isRep[m.rs.state], 0); err != nil {
		return err
	}
	const lenMinus2 = 0
	if err := m.probs.matchLen.encode(m.e, lenMinus2, ps); err != nil {
		return err
	}
	return m.probs.dist.encode(m.e, eosDistance, lenToPosState(lenMinus2))
}

// priceLiteral computes the exact bit cost of coding data[pos] as a
// literal by walking the same probs.literal tree literalCoder.encode
// would touch, mirroring priceRep/priceMatch's use of the real,
// currently-adapting probabilities rather than a flat estimate.
func (m *emitter) priceLiteral(pos int) uint32 {
	var prevByte byte
	if pos > 0 {
		prevByte = m.data[pos-1]
	}
	ls := litState(prevByte, uint64(pos))
	probs := m.probs.literal.probs[ls*literalProbsPerState : ls*literalProbsPerState+literalProbsPerState]
	s := uint32(m.data[pos])
	price := uint32(0)
	symbol := uint32(1)
	if m.rs.state >= 7 {
		matchByte := m.data[pos-int(m.rs.rep0)-1]
		mb := uint32(matchByte)
		for symbol < 0x100 {
			matchBit := (mb >> 7) & 1
			mb <<= 1
			bit := (s >> 7) & 1
			s <<= 1
			i := ((1 + matchBit) << 8) | symbol
			price += priceBit(probs[i], bit)
			symbol = (symbol << 1) | bit
			if matchBit != bit {
				break
			}
		}
	}
	for symbol < 0x100 {
		bit := (s >> 7) & 1
		s <<= 1
		price += priceBit(probs[symbol], bit)
		symbol = (symbol << 1) | bit
	}
	return price
}

func (m *emitter) priceShortRep(pos int) uint32 {
	ps := posState(uint64(pos))
	return price1(m.probs.isMatch[m.rs.state][ps]) +
		price1(m.probs.isRep[m.rs.state]) +
		price0(m.probs.isRepG0[m.rs.state]) +
		price0(m.probs.isRep0Long[m.rs.state][ps])
}

func (m *emitter) priceRep(pos int, repIdx int, length uint32) uint32 {
	ps := posState(uint64(pos))
	price := price1(m.probs.isMatch[m.rs.state][ps]) + price1(m.probs.isRep[m.rs.state])
	switch repIdx {
	case 0:
		price += price0(m.probs.isRepG0[m.rs.state]) + price1(m.probs.isRep0Long[m.rs.state][ps])
	case 1:
		price += price1(m.probs.isRepG0[m.rs.state]) + price0(m.probs.isRepG1[m.rs.state])
	case 2:
		price += price1(m.probs.isRepG0[m.rs.state]) + price1(m.probs.isRepG1[m.rs.state]) + price0(m.probs.isRepG2[m.rs.state])
	default:
		price += price1(m.probs.isRepG0[m.rs.state]) + price1(m.probs.isRepG1[m.rs.state]) + price1(m.probs.isRepG2[m.rs.state])
	}
	return price + m.probs.repLen.price(length-minMatchLen, ps)
}

func (m *emitter) priceMatch(pos int, dist uint32, length uint32, pc *distPriceCache) uint32 {
	ps := posState(uint64(pos))
	lenMinus2 := length - minMatchLen
	lenState := lenToPosState(lenMinus2)
	price := price1(m.probs.isMatch[m.rs.state][ps]) + price0(m.probs.isRep[m.rs.state])
	price += m.probs.matchLen.price(lenMinus2, ps)
	price += pc.price(m.probs.dist, dist, lenState)
	return price
}
