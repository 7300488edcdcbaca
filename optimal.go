// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/zmij/lzma1

package lzma1

// edgeKind identifies how an optNode was reached in the optimal parser's
// shortest-path graph.
type edgeKind uint8

const (
	edgeLiteral edgeKind = iota
	edgeMatch
	edgeRep
	edgeShortRep
)

// optNode is one node of the optimal parser's lookahead graph: the
// cheapest known way to reach this many bytes past the batch's start
// position, and the encoder state/reps that result from taking it.
// Grounded on the reference encoder's Optimal struct, simplified to store
// the resulting state/reps directly per node (so price formulas that
// depend on them don't need a separate forward replay pass) rather than
// reconstructing them from Backs[] during a backward walk.
type optNode struct {
	price   uint32
	state   uint8
	reps    [numReps]uint32
	posPrev uint32
	kind    edgeKind
	param   uint32 // match: 0-based distance; rep: rep index 0-3
}

// parseEdge is one symbol decision replayed forward by the encoder after a
// getOptimumBatch call: emit a symbol of this kind/length/param starting at
// the position the batch began at, then advance by length.
type parseEdge struct {
	kind   edgeKind
	length uint32
	param  uint32
}

// getOptimumBatch runs a bounded forward dynamic-programming sweep starting
// at the window's current position, relaxing literal/match/rep edges
// price-first, and returns the resulting symbol sequence in emission
// order. It advances the match finder exactly as many positions as the
// returned edges consume in total.
func (e *Encoder) getOptimumBatch() []parseEdge {
	w := e.win
	e.emitPos = w.pos
	opt := e.opt[:]
	opt[0] = optNode{price: 0, state: e.state, reps: e.reps}
	for j := 1; j < len(opt); j++ {
		opt[j].price = infinityPrice
	}

	lenEnd := uint32(0)
	i := uint32(0)
	for {
		if opt[i].price == infinityPrice {
			if i >= lenEnd {
				break
			}
			e.matcher.skip(1)
			i++
			continue
		}

		node := &opt[i]
		posState := uint32(w.pos) & e.posMask
		avail := w.lenLimit()

		if avail == 0 {
			break
		}

		curByte := w.byteAt(0)

		// Literal edge.
		{
			price := node.price + getPrice0(e.probs.isMatch[uint32(node.state)<<numPosBitsMax|posState])
			offset := litProbsOffset(uint32(w.pos), e.prevByteAt(w.pos), uint(e.lc), uint(e.lp))
			probs := e.probs.litProbs[offset : offset+0x300]
			if isCharState(node.state) {
				price += literalPrice(probs, curByte)
			} else {
				matchByte := w.byteAt(-int(node.reps[0]) - 1)
				price += literalMatchedPrice(probs, curByte, matchByte)
			}
			e.relax(i+1, price, literalNextStates[node.state], node.reps, i, edgeLiteral, 0)
		}

		// Rep edges: try every MRU distance, extending as far as bytes
		// actually match.
		for r := 0; r < numReps; r++ {
			dist := node.reps[r]
			if uint32(w.pos) <= dist {
				continue
			}
			var length uint32
			for length < avail && w.byteAt(int(length)) == w.byteAt(int(length)-int(dist)-1) {
				length++
			}
			if length == 0 {
				continue
			}
			if length == 1 {
				if r != 0 {
					continue
				}
				price := node.price +
					getPrice1(e.probs.isMatch[uint32(node.state)<<numPosBitsMax|posState]) +
					getPrice1(e.probs.isRep[node.state]) +
					getPrice0(e.probs.isRepG0[node.state]) +
					getPrice0(e.probs.isRep0Long[uint32(node.state)<<numPosBitsMax|posState])
				e.relax(i+1, price, shortRepNextStates[node.state], node.reps, i, edgeShortRep, 0)
				continue
			}
			price := e.repPrice(node.state, posState, length, uint32(r))
			newReps := rotateRepToFront(node.reps, r)
			e.relax(i+length, price, repNextStates[node.state], newReps, i, edgeRep, uint32(r))
		}

		// Match edges from the binary-tree/hash-chain finder.
		matches := e.matcher.getMatches(e.matchBuf[:0])
		e.matchBuf = matches
		for _, mp := range matches {
			price := e.matchPrice(node.state, posState, mp.length, mp.dist)
			newReps := [numReps]uint32{mp.dist, node.reps[0], node.reps[1], node.reps[2]}
			e.relax(i+mp.length, price, matchNextStates[node.state], newReps, i, edgeMatch, mp.dist)
		}
		if len(matches) > 0 {
			top := matches[len(matches)-1].length
			if i+top > lenEnd {
				lenEnd = i + top
			}
		}
		if i+1 > lenEnd {
			lenEnd = i + 1
		}
		if lenEnd > uint32(len(opt)-1) {
			lenEnd = uint32(len(opt) - 1)
		}

		i++
		if i > lenEnd || i == uint32(len(opt)-1) {
			break
		}
	}

	// Backward walk from lenEnd to 0, then reverse into emission order.
	var edges []parseEdge
	for j := lenEnd; j > 0; {
		n := &opt[j]
		edges = append(edges, parseEdge{kind: n.kind, length: j - n.posPrev, param: n.param})
		j = n.posPrev
	}
	for l, r := 0, len(edges)-1; l < r; l, r = l+1, r-1 {
		edges[l], edges[r] = edges[r], edges[l]
	}
	return edges
}

// relax updates opt[j] in place if price is cheaper than what's already
// recorded there. Matching the reference encoder's tie policy (spec's
// "existing entry wins on equal price"), it does not overwrite on ties.
func (e *Encoder) relax(j uint32, price uint32, state uint8, reps [numReps]uint32, prev uint32, kind edgeKind, param uint32) {
	if j >= uint32(len(e.opt)) {
		return
	}
	if price < e.opt[j].price {
		e.opt[j] = optNode{price: price, state: state, reps: reps, posPrev: prev, kind: kind, param: param}
	}
}

// rotateRepToFront returns reps with index r moved to the front (the MRU
// update applied whenever a rep distance is reused).
func rotateRepToFront(reps [numReps]uint32, r int) [numReps]uint32 {
	if r == 0 {
		return reps
	}
	out := reps
	v := reps[r]
	for k := r; k > 0; k-- {
		out[k] = reps[k-1]
	}
	out[0] = v
	return out
}

// matchPrice is the cost of a new (non-rep) match of the given length and
// 0-based distance in state/posState.
func (e *Encoder) matchPrice(state uint8, posState uint32, length uint32, dist uint32) uint32 {
	price := getPrice1(e.probs.isMatch[uint32(state)<<numPosBitsMax|posState])
	price += getPrice0(e.probs.isRep[state])
	price += e.probs.lenCoder.getPrice(length-matchMinLen, posState)
	price += e.distPrices.getDistPrice(getLenToPosState(length), dist)
	return price
}

// repPrice is the cost of a (length>=2) rep match using MRU slot r.
func (e *Encoder) repPrice(state uint8, posState uint32, length uint32, r uint32) uint32 {
	price := getPrice1(e.probs.isMatch[uint32(state)<<numPosBitsMax|posState])
	price += getPrice1(e.probs.isRep[state])
	if r == 0 {
		price += getPrice0(e.probs.isRepG0[state])
		price += getPrice1(e.probs.isRep0Long[uint32(state)<<numPosBitsMax|posState])
	} else {
		price += getPrice1(e.probs.isRepG0[state])
		if r == 1 {
			price += getPrice0(e.probs.isRepG1[state])
		} else {
			price += getPrice1(e.probs.isRepG1[state])
			if r == 2 {
				price += getPrice0(e.probs.isRepG2[state])
			} else {
				price += getPrice1(e.probs.isRepG2[state])
			}
		}
	}
	price += e.probs.repLenCoder.getPrice(length-matchMinLen, posState)
	return price
}
