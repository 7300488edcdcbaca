// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/zmij/lzma1

package lzma1

// changePair is the reference encoder's change_pair: is bigDist so much
// larger than smallDist (more than 128x) that the extra length it buys
// isn't worth the far more expensive distance encoding? Grounded on
// original_source/.../lzma_encoder.cpp:1563-1567.
func changePair(smallDist, bigDist uint32) bool {
	return (bigDist >> 7) > smallDist
}

// getOptimumFast is the greedy parser (Options.Algo == AlgoFast): one
// lookahead step, no price comparison, grounded on the reference encoder's
// impl::get_optimum_fast. It checks the MRU rep distances directly, prunes
// the match finder's candidate list down to a single "main" (length,
// distance) pair using changePair to discard a longer match whose distance
// is disproportionately larger than a slightly shorter alternative, and
// then picks between rep and main match using change_pair's graduated
// distance thresholds (a big main distance needs a proportionally longer
// rep-length shortfall to still lose to the rep) rather than a flat length
// comparison.
func (e *Encoder) getOptimumFast() parseEdge {
	w := e.win
	e.emitPos = w.pos
	avail := w.lenLimit()
	if avail == 0 {
		return parseEdge{kind: edgeLiteral, length: 0}
	}

	// The match finder's getMatches always runs first and advances w.pos by
	// one byte as a side effect, exactly as read_match_distances does ahead
	// of the rep search in the reference encoder, so the rep search below
	// reads bytes relative to e.emitPos rather than w.pos; consumeRest only
	// ever needs to skip the remaining length-1 bytes of a chosen edge.
	matches := e.matcher.getMatches(e.matchBuf[:0])
	e.matchBuf = matches

	var mainLen, mainDist uint32
	if len(matches) > 0 {
		mainLen, mainDist = matches[len(matches)-1].length, matches[len(matches)-1].dist
	}

	bestRepLen := uint32(0)
	bestRepIdx := 0
	for r := 0; r < numReps; r++ {
		dist := e.reps[r]
		if uint32(e.emitPos) <= dist {
			continue
		}
		length := uint32(0)
		for length < avail && w.at(e.emitPos+int(length)) == w.at(e.emitPos+int(length)-int(dist)-1) {
			length++
		}
		if length == 1 && r != 0 {
			// a length-1 "rep" is only encodable via SHORTREP, which is
			// tied to rep0; length-1 matches on other MRU slots can't be
			// expressed as a symbol at all.
			continue
		}
		if length > bestRepLen {
			bestRepLen = length
			bestRepIdx = r
		}
	}
	if bestRepLen >= uint32(e.fb) {
		e.consumeRest(bestRepLen)
		return parseEdge{kind: edgeRep, length: bestRepLen, param: uint32(bestRepIdx)}
	}

	if mainLen >= uint32(e.fb) {
		e.consumeRest(mainLen)
		return parseEdge{kind: edgeMatch, length: mainLen, param: mainDist}
	}

	if mainLen > 0 {
		// Pareto-prune: the match finder returns pairs of strictly
		// increasing length and distance, so the second-to-last pair is
		// the longest alternative shorter than main by exactly one byte.
		// If main's distance is disproportionately larger, prefer the
		// cheaper, one-byte-shorter alternative instead.
		for len(matches) > 1 {
			prev := matches[len(matches)-2]
			if mainLen != prev.length+1 || !changePair(prev.dist, mainDist) {
				break
			}
			matches = matches[:len(matches)-1]
			mainLen, mainDist = prev.length, prev.dist
		}
		if mainLen == 2 && mainDist >= 0x80 {
			mainLen = 1
		}
	}

	switch {
	case bestRepLen >= 2 && (bestRepLen+1 >= mainLen ||
		(bestRepLen+2 >= mainLen && mainDist >= 1<<9) ||
		(bestRepLen+3 >= mainLen && mainDist >= 1<<25)):
		e.consumeRest(bestRepLen)
		return parseEdge{kind: edgeRep, length: bestRepLen, param: uint32(bestRepIdx)}
	case mainLen >= matchMinLen:
		e.consumeRest(mainLen)
		return parseEdge{kind: edgeMatch, length: mainLen, param: mainDist}
	case bestRepLen == 1 && bestRepIdx == 0:
		// No viable match or multi-byte rep: a length-1 rep0 is still
		// cheaper than a literal when the byte happens to repeat, and
		// unlike a non-zero rep index it has a real bitstream encoding
		// (SHORTREP) with no length field at all.
		e.consumeRest(1)
		return parseEdge{kind: edgeShortRep, length: 1}
	default:
		return parseEdge{kind: edgeLiteral, length: 1}
	}
}

// consumeRest advances the match finder past the remainder of an edge of
// the given total length; getOptimumFast's single getMatches call already
// accounted for the first byte.
func (e *Encoder) consumeRest(length uint32) {
	if length > 1 {
		e.matcher.skip(length - 1)
	}
}
