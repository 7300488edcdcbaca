// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/zmij/lzma1

package lzma1

// litProbsOffset returns the offset into probModel.litProbs for the 0x300
// entries belonging to the literal state at this position/previous byte
// (spec's get_lit_probs).
func litProbsOffset(pos uint32, prevByte byte, lc, lp uint) uint32 {
	lpMask := uint32(1<<lp) - 1
	return 0x300 * litState(pos, prevByte, lc, uint(lpMask))
}

// encodeLiteral writes a plain literal byte through the 8-level bit tree
// rooted at probs[1].
func encodeLiteral(rc *rangeEncoder, probs []uint16, symbol byte) {
	sym := uint32(symbol) | 0x100
	for sym < 0x10000 {
		rc.encodeBit(&probs[sym>>8], (sym>>7)&1)
		sym <<= 1
	}
}

// encodeLiteralMatched writes a literal byte that follows a match, mixing
// in the byte found at the current rep0 distance (matchByte) so the model
// can learn to favor symbols that agree with the dictionary.
func encodeLiteralMatched(rc *rangeEncoder, probs []uint16, symbol, matchByte byte) {
	offs := uint32(0x100)
	sym := uint32(symbol) | 0x100
	mb := uint32(matchByte)
	for sym < 0x10000 {
		mb <<= 1
		bit := (sym >> 7) & 1
		rc.encodeBit(&probs[offs+(mb&offs)+(sym>>8)], bit)
		sym <<= 1
		offs &= ^(mb ^ sym)
	}
}

// literalPrice is the price-table analogue of encodeLiteral.
func literalPrice(probs []uint16, symbol byte) uint32 {
	price := uint32(0)
	sym := uint32(symbol) | 0x100
	for sym < 0x10000 {
		price += getPrice(probs[sym>>8], (sym>>7)&1)
		sym <<= 1
	}
	return price
}

// literalMatchedPrice is the price-table analogue of encodeLiteralMatched.
func literalMatchedPrice(probs []uint16, symbol, matchByte byte) uint32 {
	price := uint32(0)
	offs := uint32(0x100)
	sym := uint32(symbol) | 0x100
	mb := uint32(matchByte)
	for sym < 0x10000 {
		mb <<= 1
		bit := (sym >> 7) & 1
		price += getPrice(probs[offs+(mb&offs)+(sym>>8)], bit)
		sym <<= 1
		offs &= ^(mb ^ sym)
	}
	return price
}
