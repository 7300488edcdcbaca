// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/zmij/lzma1

package lzma1

// State transition tables: the 12-valued encoder state after emitting a
// symbol of each kind. Grounded on the reference encoder's
// LITERAL_NEXT_STATES/MATCH_NEXT_STATES/REP_NEXT_STATES/
// SHORT_REP_NEXT_STATES tables.
var (
	literalNextStates  = [numStates]uint8{0, 0, 0, 0, 1, 2, 3, 4, 5, 6, 4, 5}
	matchNextStates    = [numStates]uint8{7, 7, 7, 7, 7, 7, 7, 10, 10, 10, 10, 10}
	repNextStates      = [numStates]uint8{8, 8, 8, 8, 8, 8, 8, 11, 11, 11, 11, 11}
	shortRepNextStates = [numStates]uint8{9, 9, 9, 9, 9, 9, 9, 11, 11, 11, 11, 11}
)

// isCharState reports whether state was last reached by a literal (as
// opposed to a match/rep), used to pick plain vs matched literal coding.
func isCharState(state uint8) bool {
	return state < 7
}

// getLenToPosState maps a match length to one of numLenToPosStates buckets
// used to select a distance slot probability tree.
func getLenToPosState(length uint32) uint32 {
	length -= matchMinLen
	if length < numLenToPosStates {
		return length
	}
	return numLenToPosStates - 1
}

// probModel holds every adaptive probability used by the LZMA entropy
// stage. All tables are allocated once per Encoder and reset to
// probInitValue at construction/reset, never reallocated, matching spec §3's
// "tables allocated once" lifecycle.
type probModel struct {
	isMatch    [numStates << numPosBitsMax]uint16
	isRep      [numStates]uint16
	isRepG0    [numStates]uint16
	isRepG1    [numStates]uint16
	isRepG2    [numStates]uint16
	isRep0Long [numStates << numPosBitsMax]uint16

	posSlotEncoder [numLenToPosStates][1 << numPosSlotBits0]uint16
	posEncoders    [numFullDistances - endPosModelIndex]uint16
	alignEncoder   [alignTableSize]uint16

	litProbs []uint16 // size 0x300 << (lc+lp)

	lenCoder    lenPriceCoder
	repLenCoder lenPriceCoder
}

func newProbModel(lc, lp int, alloc Allocator) (*probModel, error) {
	litProbs, err := allocUint16(alloc, 0x300<<uint(lc+lp))
	if err != nil {
		return nil, err
	}
	p := &probModel{litProbs: litProbs}
	p.reset()
	return p, nil
}

func resetProbSlice(s []uint16) {
	for i := range s {
		s[i] = probInitValue
	}
}

func (p *probModel) reset() {
	resetProbSlice(p.isMatch[:])
	resetProbSlice(p.isRep[:])
	resetProbSlice(p.isRepG0[:])
	resetProbSlice(p.isRepG1[:])
	resetProbSlice(p.isRepG2[:])
	resetProbSlice(p.isRep0Long[:])
	for i := range p.posSlotEncoder {
		resetProbSlice(p.posSlotEncoder[i][:])
	}
	resetProbSlice(p.posEncoders[:])
	resetProbSlice(p.alignEncoder[:])
	resetProbSlice(p.litProbs)
	p.lenCoder.reset()
	p.repLenCoder.reset()
}

// litState returns the index into litProbs for the given position and
// previous byte, per get_lit_probs: ((pos & litPosMask) << lc) + (prevByte >> (8-lc)).
func litState(pos uint32, prevByte byte, lc, lpMask uint) uint32 {
	return (uint32(pos&uint32(lpMask)) << lc) + uint32(prevByte>>(8-lc))
}
