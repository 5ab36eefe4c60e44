// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzipgo
// Source: github.com/lzipgo/lzip

package lzip

import "io"

// eosDistance is the reserved zero-based distance value signaling the
// end-of-stream marker (spec.md §4.8): a new-match packet whose decoded
// distance equals this value carries no payload and terminates the
// member's LZMA stream instead of a real back-reference.
const eosDistance = 0xFFFFFFFF

// decodeMemberBody runs the packet decode loop (spec.md §4.8) until the
// end-of-stream marker, writing decompressed bytes to w as they become
// available. Grounded on TrueFurby-xz's decodeOp/decodeLiteral control
// flow (other_examples/89aeb82f_...): branch on is_match, then is_rep,
// then the rep_g0/g1/g2 chain, updating the 12-state machine and rep
// history exactly as stateUpdate*/repState describe.
func decodeMemberBody(rd *rangeDecoder, dict *decoderDict, w io.Writer) (uint64, uint32, error) {
	probs := newPacketProbs()
	rs := newRepState()
	var pos uint64
	var crc uint32

	flush := func() error {
		out := dict.takeOutput()
		if len(out) == 0 {
			return nil
		}
		crc = crc32Update(crc, out)
		_, err := w.Write(out)
		return err
	}

	for {
		ps := posState(pos)
		bit, err := rd.decodeBit(&probs.isMatch[rs.state][ps])
		if err != nil {
			return pos, crc, err
		}

		if bit == 0 {
			var matchByte byte
			if rs.state >= 7 {
				matchByte = dict.byteAt(rs.rep0)
			}
			var prevByte byte
			if pos > 0 {
				prevByte = dict.byteAt(0)
			}
			ls := litState(prevByte, pos)
			b, err := probs.literal.decode(rd, matchByte, rs.state, ls)
			if err != nil {
				return pos, crc, err
			}
			dict.putByte(b)
			rs.state = stateUpdateLiteral(rs.state)
			pos++
			if err := flush(); err != nil {
				return pos, crc, err
			}
			continue
		}

		isRep, err := rd.decodeBit(&probs.isRep[rs.state])
		if err != nil {
			return pos, crc, err
		}

		var length uint32
		if isRep == 0 {
			rs.rep3, rs.rep2, rs.rep1 = rs.rep2, rs.rep1, rs.rep0
			rs.state = stateUpdateMatch(rs.state)

			lenMinus2, err := probs.matchLen.decode(rd, ps)
			if err != nil {
				return pos, crc, err
			}
			lenState := lenToPosState(lenMinus2)
			dist, err := probs.dist.decode(rd, lenState)
			if err != nil {
				return pos, crc, err
			}
			if dist == eosDistance {
				if err := flush(); err != nil {
					return pos, crc, err
				}
				return pos, crc, nil
			}
			rs.rep0 = dist
			length = lenMinus2 + minMatchLen
		} else {
			g0, err := rd.decodeBit(&probs.isRepG0[rs.state])
			if err != nil {
				return pos, crc, err
			}
			if g0 == 0 {
				long, err := rd.decodeBit(&probs.isRep0Long[rs.state][ps])
				if err != nil {
					return pos, crc, err
				}
				if long == 0 {
					rs.state = stateUpdateShortRep(rs.state)
					dict.putByte(dict.byteAt(rs.rep0))
					pos++
					if err := flush(); err != nil {
						return pos, crc, err
					}
					continue
				}
			} else {
				g1, err := rd.decodeBit(&probs.isRepG1[rs.state])
				if err != nil {
					return pos, crc, err
				}
				if g1 == 0 {
					rs.rep0, rs.rep1 = rs.rep1, rs.rep0
				} else {
					g2, err := rd.decodeBit(&probs.isRepG2[rs.state])
					if err != nil {
						return pos, crc, err
					}
					if g2 == 0 {
						rs.rep0, rs.rep1, rs.rep2 = rs.rep2, rs.rep0, rs.rep1
					} else {
						rs.rep0, rs.rep1, rs.rep2, rs.rep3 = rs.rep3, rs.rep0, rs.rep1, rs.rep2
					}
				}
			}
			rs.state = stateUpdateRep(rs.state)
			lenMinus2, err := probs.repLen.decode(rd, ps)
			if err != nil {
				return pos, crc, err
			}
			length = lenMinus2 + minMatchLen
		}

		if err := dict.copyBlock(rs.rep0, length); err != nil {
			return pos, crc, err
		}
		pos += uint64(length)
		if err := flush(); err != nil {
			return pos, crc, err
		}
	}
}
