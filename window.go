// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/zmij/lzma1

package lzma1

// window is the match finder's sliding dictionary. Unlike the reference
// encoder's fixed-size ring buffer (which exists to bound memory when the
// source is an opaque stream and positions are tracked as 32-bit values
// that must periodically be normalized to avoid wraparound), this window
// accumulates every byte handed to feed across Encode calls in a growing
// slice and tracks position as a native (64-bit on every realistic target)
// int. Encode's contract already takes src as a byte slice rather than an
// io.Reader, so there is no separate "read block from upstream into a ring
// buffer" step, and with a 64-bit position counter there is no equivalent
// of the reference encoder's periodic renormalize-near-2^32 pass: distances
// (pos - matchPos) stay correct indefinitely, since dictSize and therefore
// every stored delta are bounded well within 32 bits regardless of how far
// pos itself has advanced. See DESIGN.md's Open Question entry.
type window struct {
	buf []byte

	pos           int // current absolute parse position (index into buf)
	streamPos     int // number of bytes currently available in buf
	atStreamEnd   bool
	needMoreInput bool

	dictSize         uint32
	cyclicBufferSize uint32 // dictSize + 1
	cyclicBufferPos  uint32 // pos % cyclicBufferSize

	matchMaxLen uint32
}

func newWindow(dictSize uint32, matchMaxLen uint32) *window {
	return &window{
		dictSize:         dictSize,
		cyclicBufferSize: dictSize + 1,
		matchMaxLen:      matchMaxLen,
		needMoreInput:    true,
	}
}

// feed appends src to the window's history and marks atStreamEnd once the
// caller signals no more input will follow.
func (w *window) feed(src []byte, atEnd bool) {
	if len(src) > 0 {
		w.buf = append(w.buf, src...)
		w.streamPos = len(w.buf)
	}
	if atEnd {
		w.atStreamEnd = true
	}
	w.needMoreInput = !w.atStreamEnd && w.availableBytes() < w.matchMaxLen
}

// availableBytes returns how many unparsed bytes are currently buffered.
func (w *window) availableBytes() uint32 {
	return uint32(w.streamPos - w.pos)
}

// lenLimit returns how long a match can be at the current position: bounded
// by matchMaxLen and by how much lookahead is actually available.
func (w *window) lenLimit() uint32 {
	avail := w.availableBytes()
	if avail < w.matchMaxLen {
		return avail
	}
	return w.matchMaxLen
}

// byteAt returns the byte at pos+index, where index may be negative to look
// backwards into already-parsed history.
func (w *window) byteAt(index int) byte {
	return w.buf[w.pos+index]
}

// current returns the slice starting at the current parse position.
func (w *window) current() []byte {
	return w.buf[w.pos:]
}

// at returns the byte at an absolute buffer position, regardless of the
// match finder's current lookahead position. Used by the encoder's symbol
// emission pass, which trails behind the match finder by however far the
// parser looked ahead to choose the current batch of edges.
func (w *window) at(pos int) byte {
	return w.buf[pos]
}

// movePos advances the parse position by one byte, matching the reference
// encoder's move_pos: advance pos and the cyclic cursor, wrapping the
// latter at cyclicBufferSize.
func (w *window) movePos() {
	w.pos++
	w.cyclicBufferPos++
	if w.cyclicBufferPos == w.cyclicBufferSize {
		w.cyclicBufferPos = 0
	}
}

// checkLimits reports whether at least minLen bytes of lookahead remain at
// the current position (the matcher's get_matches_header gate).
func (w *window) checkLimits(minLen uint32) bool {
	return w.lenLimit() >= minLen
}

// distanceTo returns the 0-based backward distance from the current
// position to matchPos (matchPos < pos).
func (w *window) distanceTo(matchPos int) uint32 {
	return uint32(w.pos-matchPos) - 1
}
