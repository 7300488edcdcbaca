// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/zmij/lzma1

package lzma1

const numLenSymbolsTotal = lenLowSymbols + lenMidSymbols + lenHighSymbols

// lenPriceCoder encodes a match/rep length (already reduced by matchMinLen)
// through a three-way choice/choice2 split into low/mid/high bit trees, and
// caches per-posState prices for the optimal parser. Grounded on the
// reference encoder's CLenEncoder/CLenPriceTableEncoder.
type lenPriceCoder struct {
	choice  uint16
	choice2 uint16
	low     [1 << numPosBitsMax][lenLowSymbols]uint16
	mid     [1 << numPosBitsMax][lenMidSymbols]uint16
	high    [lenHighSymbols]uint16

	prices    [1 << numPosBitsMax][numLenSymbolsTotal]uint32
	tableSize uint32
	counters  [1 << numPosBitsMax]uint32
}

func (c *lenPriceCoder) reset() {
	c.choice = probInitValue
	c.choice2 = probInitValue
	for i := range c.low {
		resetProbSlice(c.low[i][:])
	}
	for i := range c.mid {
		resetProbSlice(c.mid[i][:])
	}
	resetProbSlice(c.high[:])
}

// encode writes symbol (0-based length, i.e. actual length minus
// matchMinLen) for the given posState.
func (c *lenPriceCoder) encode(rc *rangeEncoder, symbol uint32, posState uint32) {
	if symbol < lenLowSymbols {
		rc.encodeBit(&c.choice, 0)
		rc.encodeBitTree(c.low[posState][:], lenLowBits, symbol)
		return
	}
	rc.encodeBit(&c.choice, 1)
	symbol -= lenLowSymbols
	if symbol < lenMidSymbols {
		rc.encodeBit(&c.choice2, 0)
		rc.encodeBitTree(c.mid[posState][:], lenMidBits, symbol)
		return
	}
	rc.encodeBit(&c.choice2, 1)
	symbol -= lenMidSymbols
	rc.encodeBitTree(c.high[:], lenHighBits, symbol)
}

// setPrices recomputes prices[posState][0:numSymbols] from the current
// probabilities, matching CLenPriceTableEncoder::SetPrices.
func (c *lenPriceCoder) setPrices(posState uint32, numSymbols uint32) {
	a0 := getPrice0(c.choice)
	a1 := getPrice1(c.choice)
	b0 := a1 + getPrice0(c.choice2)
	b1 := a1 + getPrice1(c.choice2)

	prices := &c.prices[posState]
	i := uint32(0)
	for ; i < lenLowSymbols && i < numSymbols; i++ {
		prices[i] = a0 + getBitTreePrice(c.low[posState][:], lenLowBits, i)
	}
	for ; i < lenLowSymbols+lenMidSymbols && i < numSymbols; i++ {
		prices[i] = b0 + getBitTreePrice(c.mid[posState][:], lenMidBits, i-lenLowSymbols)
	}
	for ; i < numSymbols; i++ {
		prices[i] = b1 + getBitTreePrice(c.high[:], lenHighBits, i-lenLowSymbols-lenMidSymbols)
	}
}

func (c *lenPriceCoder) setTableSize(tableSize uint32) {
	c.tableSize = tableSize
}

func (c *lenPriceCoder) updateTable(posState uint32) {
	c.setPrices(posState, numLenSymbolsTotal)
	c.counters[posState] = c.tableSize
}

func (c *lenPriceCoder) updateTables(numPosStates uint32) {
	for ps := uint32(0); ps < numPosStates; ps++ {
		c.updateTable(ps)
	}
}

// encodeWithPriceRefresh encodes symbol and refreshes the price table for
// posState once its emission counter reaches zero, matching
// CLenPriceTableEncoder::Encode.
func (c *lenPriceCoder) encodeWithPriceRefresh(rc *rangeEncoder, symbol uint32, posState uint32) {
	c.encode(rc, symbol, posState)
	c.counters[posState]--
	if c.counters[posState] == 0 {
		c.updateTable(posState)
	}
}

func (c *lenPriceCoder) getPrice(symbol uint32, posState uint32) uint32 {
	return c.prices[posState][symbol]
}
