// SPDX-License-Identifier: MIT
// Source: github.com/zmij/lzma1

package lzma1

// Core LZMA1 constants, ported from the reference encoder's
// lzma_constants.hpp. Values are fixed by the LZMA1 bitstream format and
// must not be changed.
const (
	numStates         = 12
	numPosBitsMax     = 4
	numLenToPosStates = 4
	matchMinLen       = 2
	matchMaxLen       = matchMinLen + numLenSymbolsTotal - 1

	numReps         = 4
	numRepDistances = numReps

	numPosSlotBits0    = 6
	startPosModelIndex = 4
	endPosModelIndex   = 14
	numAlignBits       = 4
	alignTableSize     = 1 << numAlignBits
	numFullDistances   = 1 << (endPosModelIndex / 2)

	lenLowBits    = 3
	lenLowSymbols = 1 << lenLowBits
	lenMidBits    = 3
	lenMidSymbols = 1 << lenMidBits
	lenHighBits   = 8
	lenHighSymbols = 1 << lenHighBits

	bitModelTotalBits = 11
	bitModelTotal     = 1 << bitModelTotalBits
	numMoveBits       = 5
	probInitValue     = bitModelTotal / 2

	numMoveReducingBits = 4
	numBitPriceShiftBits = 4
	infinityPrice        = 1 << 30

	topValue = 1 << 24

	numOpts = 4096

	hash2Size  = 1 << 10
	hash3Size  = 1 << 16
	hash2Mask  = hash2Size - 1
	hash3Mask  = hash3Size - 1

	crcPoly = 0xedb88320

	emptyHashValue = 0

	defaultDictSize = 1 << 24
)

// litPosBitsMax bounds lp (literal position bits), and litContextBitsMax
// bounds lc (literal context bits); together they size the literal
// probability table (0x300 << (lc+lp) entries).
const (
	litPosBitsMax     = 4
	litContextBitsMax = 8
)
