// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzipgo
// Source: github.com/lzipgo/lzip

package lzip

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Price model: each probability maps to a fixed-point price approximating
// -log2(p/probTotal), scaled by 1<<priceShiftBits (spec.md §4.6): prices
// carry 4 fractional bits, i.e. they are in 1/16-bit units, not a finer
// 12-bit fraction. probPrices is a package-wide,
// lazily-computed, immutable-after-init table (spec.md §9 "static
// mutable state... implement as constants, possibly lazy-initialized").
const (
	moveReducingBits = 2
	priceShiftBits   = 4
	infinityPrice    = 1 << 30
)

var probPrices [probTotal >> moveReducingBits]uint32

func init() {
	for i := (1 << moveReducingBits) / 2; i < probTotal; i += 1 << moveReducingBits {
		w := uint32(i)
		bitCount := uint32(0)
		for range priceShiftBits {
			w = w * w
			bitCount <<= 1
			for w >= 1<<16 {
				w >>= 1
				bitCount++
			}
		}
		probPrices[i>>moveReducingBits] = (probBits << priceShiftBits) - 15 - bitCount
	}
}

// price0 and price1 return the price in 1/16-bit units of coding a 0 or
// 1 bit respectively under probability p.
func price0(p bitModel) uint32 { return probPrices[uint32(p)>>moveReducingBits] }
func price1(p bitModel) uint32 { return probPrices[(probTotal-uint32(p))>>moveReducingBits] }

func priceBit(p bitModel, bit uint32) uint32 {
	if bit == 0 {
		return price0(p)
	}
	return price1(p)
}

// priceBitTree returns the price of coding v through a numBits-deep tree.
func priceBitTree(probs []bitModel, numBits int, v uint32) uint32 {
	price := uint32(0)
	m := uint32(1)
	for i := numBits - 1; i >= 0; i-- {
		bit := (v >> uint(i)) & 1
		price += priceBit(probs[m], bit)
		m = (m << 1) | bit
	}
	return price
}

func priceBitTreeReverse(probs []bitModel, numBits int, v uint32) uint32 {
	price := uint32(0)
	m := uint32(1)
	for i := 0; i < numBits; i++ {
		bit := v & 1
		v >>= 1
		price += priceBit(probs[m], bit)
		m = (m << 1) | bit
	}
	return price
}

// priceBitTreeReverseAt mirrors rangeEncoder.encodeBitTreeReverseAt: the
// node index is offset by base (which may be -1 for distance slot 4)
// rather than sliced out of probs beforehand.
func priceBitTreeReverseAt(probs []bitModel, base int, numBits int, v uint32) uint32 {
	price := uint32(0)
	m := 1
	for i := 0; i < numBits; i++ {
		bit := v & 1
		v >>= 1
		price += priceBit(probs[base+m], bit)
		m = (m << 1) | int(bit)
	}
	return price
}

func (c *lengthCoder) price(n uint32, posState uint32) uint32 {
	if n < lenLowSymbols {
		return price0(c.choice1) + priceBitTree(c.low[posState][:], 3, n)
	}
	n -= lenLowSymbols
	if n < lenMidSymbols {
		return price1(c.choice1) + price0(c.choice2) + priceBitTree(c.mid[posState][:], 3, n)
	}
	return price1(c.choice1) + price1(c.choice2) + priceBitTree(c.high[:], 8, n-lenMidSymbols)
}

// distPriceCache memoizes distCoder.price results keyed by (lenState,
// dist): the spec calls for "distance-slot prices... cached and only
// recomputed when a new slot is first used after its prior cache
// invalidation" (spec.md §4.6). An LRU of bounded size tracks which
// (lenState, dist) entries are "hot"; entries evicted from the LRU are
// treated as invalidated and recomputed from the probability model on
// next use, so the cache never serves a stale price for a probability
// that has since been updated many times over.
type distPriceCache struct {
	lru *lru.Cache[distCacheKey, uint32]
}

type distCacheKey struct {
	lenState uint32
	dist     uint32
}

const distPriceCacheSize = 1 << 12

func newDistPriceCache() *distPriceCache {
	c, err := lru.New[distCacheKey, uint32](distPriceCacheSize)
	if err != nil {
		// Only returns an error for a non-positive size, which distPriceCacheSize never is.
		panic(err)
	}
	return &distPriceCache{lru: c}
}

// price returns the price of coding distance dist (zero-based) in
// length bucket lenState, consulting and refreshing the recency cache.
func (pc *distPriceCache) price(dc *distCoder, dist uint32, lenState uint32) uint32 {
	key := distCacheKey{lenState: lenState, dist: dist}
	if v, ok := pc.lru.Get(key); ok {
		return v
	}
	v := dc.price(dist, lenState)
	pc.lru.Add(key, v)
	return v
}

// invalidateSlot evicts every cached price for the given length bucket,
// called whenever that bucket's slot tree has been updated enough times
// that cached prices are likely stale (the encoder calls this every
// priceUpdateInterval symbols, matching the interval-based refresh the
// reference optimal parser uses for its whole price table).
func (pc *distPriceCache) invalidateSlot(lenState uint32) {
	for _, key := range pc.lru.Keys() {
		if key.lenState == lenState {
			pc.lru.Remove(key)
		}
	}
}

// price computes (not caches) the price of coding a zero-based distance
// in length bucket lenState: the slot tree price plus footer-bit price.
func (c *distCoder) price(dist uint32, lenState uint32) uint32 {
	slot := posSlot(dist)
	price := priceBitTree(c.slot[lenState][:], distSlotBits, slot)
	if slot < 4 {
		return price
	}
	footer := distSlotFooterBits(slot)
	base := distSlotBase(slot)
	rest := dist - base
	if slot < endPosModelIndex {
		return price + priceBitTreeReverseAt(c.spec[:], int(base)-int(slot)-1, int(footer), rest)
	}
	directBits := int(footer) - alignBits
	price += uint32(directBits) << priceShiftBits
	return price + priceBitTreeReverse(c.align[:], alignBits, rest&(numAlignSymbols-1))
}
