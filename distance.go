// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/zmij/lzma1

package lzma1

// fastPosBits is the table size exponent for the distance-to-pos-slot
// lookup table: distances below 1<<fastPosBits resolve via direct lookup,
// larger distances shift into that range first.
const fastPosBits = 11

var fastPos = buildFastPos()

// buildFastPos fills fastPos[0:1<<fastPosBits] such that fastPos[d] is the
// pos-slot for small distance d, per the reference encoder's
// LzmaEnc_FastPosInit/init_fast_pos: slot 0 and 1 map to distances 0 and 1;
// thereafter each slot s covers 1<<((s>>1)-1) consecutive distances.
func buildFastPos() [1 << fastPosBits]byte {
	var table [1 << fastPosBits]byte
	table[0] = 0
	table[1] = 1
	c := 2
	for slot := 2; c < len(table); slot++ {
		k := 1 << uint((slot>>1)-1)
		for j := 0; j < k && c < len(table); j++ {
			table[c] = byte(slot)
			c++
		}
	}
	return table
}

// getPosSlot returns the pos-slot for a match distance (0-based, i.e.
// distance-1 as stored on the wire): the symbol coded in the pos-slot tree
// that lenToPosState selects, carrying the distance's high bits.
func getPosSlot(dist uint32) uint32 {
	switch {
	case dist < 1<<11:
		return uint32(fastPos[dist])
	case dist < 1<<21:
		return uint32(fastPos[dist>>10]) + 20
	case dist < 1<<31:
		return uint32(fastPos[dist>>20]) + 40
	default:
		return uint32(fastPos[dist>>30]) + 60
	}
}

// distPrices and alignPrices cache per-length-state/per-align costs for the
// optimal parser; they're recomputed every distPriceUpdatePeriod/
// alignPriceUpdatePeriod emissions rather than on every call, matching
// spec §4.C.1's price recompute cadence.
const (
	distPriceUpdatePeriod  = 128
	alignPriceUpdatePeriod = 16
)

type distancePrices struct {
	posSlotPrices [numLenToPosStates][1 << numPosSlotBits0]uint32
	distPrices    [numLenToPosStates][numFullDistances]uint32
	alignPrices   [alignTableSize]uint32

	matchPriceCount int
	alignPriceCount int
}

// fillDistancesPrices recomputes posSlotPrices and distPrices from the
// current probability model, covering every length-to-pos-state bucket.
func (dp *distancePrices) fillDistancesPrices(p *probModel) {
	for lps := 0; lps < numLenToPosStates; lps++ {
		st := &p.posSlotEncoder[lps]
		for slot := uint32(0); slot < 1<<numPosSlotBits0; slot++ {
			dp.posSlotPrices[lps][slot] = getBitTreePrice(st[:], numPosSlotBits0, slot)
		}
	}

	for lps := 0; lps < numLenToPosStates; lps++ {
		var i uint32
		for i = 0; i < startPosModelIndex; i++ {
			dp.distPrices[lps][i] = dp.posSlotPrices[lps][i]
		}
		for ; i < numFullDistances; i++ {
			slot := getPosSlot(i)
			footerBits := int(slot>>1) - 1
			base := (2 | (slot & 1)) << uint(footerBits)
			price := dp.posSlotPrices[lps][slot]
			price += getReverseBitTreePriceAt(p.posEncoders[:], int(base)-int(slot)-1, footerBits, i-uint32(base))
			dp.distPrices[lps][i] = price
		}
	}
}

func (dp *distancePrices) fillAlignPrices(p *probModel) {
	for i := uint32(0); i < alignTableSize; i++ {
		dp.alignPrices[i] = getReverseBitTreePrice(p.alignEncoder[:], numAlignBits, i)
	}
}

// getDistPrice returns the cached price of encoding dist (0-based) for a
// match whose length maps to lenToPosState lps.
func (dp *distancePrices) getDistPrice(lps uint32, dist uint32) uint32 {
	if dist < numFullDistances {
		return dp.distPrices[lps][dist]
	}
	slot := getPosSlot(dist)
	footerBits := int(slot>>1) - 1
	price := dp.posSlotPrices[lps][slot] + uint32(footerBits-numAlignBits)<<numBitPriceShiftBits
	price += dp.alignPrices[dist&(alignTableSize-1)]
	return price
}

// encodeDistance writes a match distance (0-based) to the range coder: a
// pos-slot tree selected by lenToPosState, then either nothing (slot<4), a
// direct reverse-tree footer (slot<endPosModelIndex), or direct bits plus a
// 4-bit align reverse-tree (slot>=endPosModelIndex).
func encodeDistance(rc *rangeEncoder, p *probModel, length uint32, dist uint32) {
	lps := getLenToPosState(length)
	slot := getPosSlot(dist)
	rc.encodeBitTree(p.posSlotEncoder[lps][:], numPosSlotBits0, slot)

	if slot < startPosModelIndex {
		return
	}

	footerBits := int(slot>>1) - 1
	base := (2 | (slot & 1)) << uint(footerBits)
	reduced := dist - uint32(base)

	if slot < endPosModelIndex {
		rc.encodeBitTreeReverseAt(p.posEncoders[:], int(base)-int(slot)-1, footerBits, reduced)
		return
	}

	rc.encodeDirectBits(reduced>>numAlignBits, footerBits-numAlignBits)
	rc.encodeBitTreeReverse(p.alignEncoder[:], numAlignBits, reduced&(alignTableSize-1))
}
