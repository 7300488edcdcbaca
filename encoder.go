// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/zmij/lzma1

package lzma1

import "fmt"

// matcher is the interface shared by bt4Matcher and hc4Matcher: find
// candidate matches at the window's current position (advancing it by one
// byte as a side effect), or skip ahead without reporting matches.
type matcher interface {
	getMatches(buf []matchPair) []matchPair
	skip(num uint32)
}

// Encoder turns a byte stream into an LZMA1 container. Construct with
// NewEncoder, feed data through repeated Encode calls, and pass atEnd=true
// on the last one. Grounded on the reference encoder's top-level
// lzma_encoder/impl type: a window, a match finder, the adaptive
// probability model, a range coder, and the optimal/fast parser driving
// all four.
type Encoder struct {
	opts Options
	lc, lp, pb int
	posMask uint32
	fb      int
	algo    Algo

	win     *window
	matcher matcher
	probs   *probModel
	distPrices distancePrices
	rc      *rangeEncoder
	out     *outputQueue

	opt      [numOpts]optNode
	matchBuf []matchPair
	pending  []parseEdge
	emitPos  int

	state uint8
	reps  [numReps]uint32

	started  bool
	finished bool
}

// NewEncoder validates opts (nil selects DefaultOptions) and allocates every
// table the encoder needs up front; none are resized afterward.
func NewEncoder(opts *Options) (*Encoder, error) {
	var o Options
	if opts == nil {
		o = *DefaultOptions()
	} else {
		o = *opts
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}

	dictSize := normalizeDictSize(o.DictSize)
	w := newWindow(dictSize, uint32(matchMaxLen))

	var m matcher
	var err error
	if o.Mode == ModeHC {
		m, err = newHC4Matcher(w, o.MFCycles, o.Allocator)
	} else {
		nb := o.NumHashBytes
		if nb < 2 {
			nb = 2
		}
		m, err = newBT4Matcher(w, nb, o.MFCycles, o.Allocator)
	}
	if err != nil {
		return nil, err
	}

	probs, err := newProbModel(o.LC, o.LP, o.Allocator)
	if err != nil {
		return nil, err
	}

	out := newOutputQueue()
	size := o.UncompressedSize
	if o.WriteEndMark {
		size = unknownSizeMarker
	}
	hdr := writeHeader(nil, o.LC, o.LP, o.PB, dictSize, size)
	for _, b := range hdr {
		out.writeByte(b)
	}

	e := &Encoder{
		opts:    o,
		lc:      o.LC,
		lp:      o.LP,
		pb:      o.PB,
		posMask: uint32(1<<uint(o.PB)) - 1,
		fb:      o.FB,
		algo:    o.Algo,
		win:     w,
		matcher: m,
		probs:   probs,
		rc:      newRangeEncoder(out),
		out:     out,
	}

	numSyms := uint32(o.FB) - matchMinLen + 1
	e.probs.lenCoder.setTableSize(numSyms)
	e.probs.repLenCoder.setTableSize(numSyms)
	numPosStates := uint32(1) << uint(o.PB)
	e.probs.lenCoder.updateTables(numPosStates)
	e.probs.repLenCoder.updateTables(numPosStates)

	e.distPrices.fillDistancesPrices(e.probs)
	e.distPrices.fillAlignPrices(e.probs)
	e.distPrices.matchPriceCount = distPriceUpdatePeriod
	e.distPrices.alignPriceCount = alignPriceUpdatePeriod

	return e, nil
}

// Encode feeds src into the encoder and writes as much compressed output as
// fits into dst, returning the number of bytes written. Call it repeatedly
// with fresh src slices; pass atEnd=true on the final call (src may be nil)
// once no more input will arrive, so the encoder can flush its last match
// window, optionally write the end-of-stream marker, and drain the range
// coder. dst may be reused between calls; output not yet delivered stays
// queued internally. The very first call must supply a dst of at least 13
// bytes (the container header); a smaller buffer returns
// ErrOutputBufferTooSmall with zero progress and no side effects. A panic
// inside the encoder is returned as an error wrapping ErrInternal.
func (e *Encoder) Encode(dst, src []byte, atEnd bool) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			n, err = 0, fmt.Errorf("lzma1: %w: %v", ErrInternal, r)
		}
	}()
	if !e.started && len(dst) < headerSize {
		return 0, ErrOutputBufferTooSmall
	}
	e.started = true

	e.win.feed(src, atEnd)
	e.runParser(atEnd)
	if atEnd && !e.finished {
		e.finish()
		e.finished = true
	}
	return e.out.drain(dst), nil
}

// runParser drives the optimal or fast parser until the window's lookahead
// margin runs out (or, when atEnd, until every buffered byte is consumed),
// emitting each resulting symbol through the range coder as it is decided.
func (e *Encoder) runParser(atEnd bool) {
	for {
		if len(e.pending) == 0 {
			if e.win.lenLimit() == 0 {
				return
			}
			if !atEnd && e.win.availableBytes() < uint32(matchMaxLen) {
				return
			}
			if e.algo == AlgoFast {
				edge := e.getOptimumFast()
				if edge.length == 0 {
					return
				}
				e.pending = append(e.pending[:0], edge)
			} else {
				e.pending = e.getOptimumBatch()
				if len(e.pending) == 0 {
					return
				}
			}
		}
		edge := e.pending[0]
		e.pending = e.pending[1:]
		e.emit(edge)
	}
}

// prevByte returns the byte immediately before e.emitPos, or 0 at the very
// start of the stream (per get_lit_probs's convention); prevByteAt does the
// same for any absolute position.
func (e *Encoder) prevByte() byte {
	return e.prevByteAt(e.emitPos)
}

func (e *Encoder) prevByteAt(pos int) byte {
	if pos == 0 {
		return 0
	}
	return e.win.at(pos - 1)
}

// emit writes one parser-chosen symbol through the range coder, using
// e.emitPos (which trails the match finder by however far the parser looked
// ahead) as the position being coded, and advances the encoder's state,
// rep-distance cache and emitPos accordingly.
func (e *Encoder) emit(edge parseEdge) {
	posState := uint32(e.emitPos) & e.posMask
	isMatchIdx := uint32(e.state)<<numPosBitsMax | posState

	switch edge.kind {
	case edgeLiteral:
		e.rc.encodeBit(&e.probs.isMatch[isMatchIdx], 0)
		curByte := e.win.at(e.emitPos)
		offset := litProbsOffset(uint32(e.emitPos), e.prevByteAt(e.emitPos), uint(e.lc), uint(e.lp))
		probs := e.probs.litProbs[offset : offset+0x300]
		if isCharState(e.state) {
			encodeLiteral(e.rc, probs, curByte)
		} else {
			matchByte := e.win.at(e.emitPos - int(e.reps[0]) - 1)
			encodeLiteralMatched(e.rc, probs, curByte, matchByte)
		}
		e.state = literalNextStates[e.state]

	case edgeShortRep:
		e.rc.encodeBit(&e.probs.isMatch[isMatchIdx], 1)
		e.rc.encodeBit(&e.probs.isRep[e.state], 1)
		e.rc.encodeBit(&e.probs.isRepG0[e.state], 0)
		e.rc.encodeBit(&e.probs.isRep0Long[isMatchIdx], 0)
		e.state = shortRepNextStates[e.state]

	case edgeRep:
		r := int(edge.param)
		e.rc.encodeBit(&e.probs.isMatch[isMatchIdx], 1)
		e.rc.encodeBit(&e.probs.isRep[e.state], 1)
		if r == 0 {
			e.rc.encodeBit(&e.probs.isRepG0[e.state], 0)
			e.rc.encodeBit(&e.probs.isRep0Long[isMatchIdx], 1)
		} else {
			e.rc.encodeBit(&e.probs.isRepG0[e.state], 1)
			if r == 1 {
				e.rc.encodeBit(&e.probs.isRepG1[e.state], 0)
			} else {
				e.rc.encodeBit(&e.probs.isRepG1[e.state], 1)
				if r == 2 {
					e.rc.encodeBit(&e.probs.isRepG2[e.state], 0)
				} else {
					e.rc.encodeBit(&e.probs.isRepG2[e.state], 1)
				}
			}
		}
		e.probs.repLenCoder.encodeWithPriceRefresh(e.rc, edge.length-matchMinLen, posState)
		e.reps = rotateRepToFront(e.reps, r)
		e.state = repNextStates[e.state]

	case edgeMatch:
		e.rc.encodeBit(&e.probs.isMatch[isMatchIdx], 1)
		e.rc.encodeBit(&e.probs.isRep[e.state], 0)
		e.probs.lenCoder.encodeWithPriceRefresh(e.rc, edge.length-matchMinLen, posState)
		encodeDistance(e.rc, e.probs, edge.length, edge.param)
		e.reps = [numReps]uint32{edge.param, e.reps[0], e.reps[1], e.reps[2]}
		e.state = matchNextStates[e.state]

		e.distPrices.matchPriceCount--
		if e.distPrices.matchPriceCount <= 0 {
			e.distPrices.fillDistancesPrices(e.probs)
			e.distPrices.matchPriceCount = distPriceUpdatePeriod
		}
		e.distPrices.alignPriceCount--
		if e.distPrices.alignPriceCount <= 0 {
			e.distPrices.fillAlignPrices(e.probs)
			e.distPrices.alignPriceCount = alignPriceUpdatePeriod
		}
	}

	e.emitPos += int(edge.length)
}

// finish writes the optional end-of-stream marker and flushes the range
// coder's remaining bytes, matching impl::flush's tail sequence.
func (e *Encoder) finish() {
	if e.opts.WriteEndMark {
		e.emitEndMarker()
	}
	e.rc.flush()
}

// emitEndMarker encodes the reference container's end marker: a match
// symbol of length matchMinLen whose distance field is all-ones, which can
// never occur for a real match.
func (e *Encoder) emitEndMarker() {
	posState := uint32(e.emitPos) & e.posMask
	isMatchIdx := uint32(e.state)<<numPosBitsMax | posState
	e.rc.encodeBit(&e.probs.isMatch[isMatchIdx], 1)
	e.rc.encodeBit(&e.probs.isRep[e.state], 0)
	e.probs.lenCoder.encode(e.rc, 0, posState)
	encodeDistance(e.rc, e.probs, matchMinLen, endMarkerDist)
}
