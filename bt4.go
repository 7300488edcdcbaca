// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/zmij/lzma1

package lzma1

// bt4Matcher is the binary-tree match finder (BT2/BT3/BT4 depending on
// numHashBytes). It keeps one binary search tree per cyclic-buffer slot,
// keyed by a 2/3/4-byte CRC-derived hash, and returns matches sorted by
// increasing length. Grounded on the reference encoder's bt4_matcher,
// impl::get_matches_spec and impl::skip_matches_spec.
//
// Stored positions use the teacher's hash-chain convention (position+1,
// with 0 reserved for "empty") rather than the reference encoder's raw
// EMPTY_HASH_VALUE=0 sentinel, which only works there because position 0
// is never itself inserted into a tree. The +1 offset sidesteps that
// special case while keeping the same "0 means empty" contract.
type bt4Matcher struct {
	w            *window
	numHashBytes int
	cutValue     uint32

	hash2 []int32 // size hash2Size, only used when numHashBytes >= 2
	hash3 []int32 // size hash3Size, only used when numHashBytes >= 3
	hash4 []int32 // size hashMask+1, only used when numHashBytes == 4
	son   []int32 // size 2 * cyclicBufferSize
}

func newBT4Matcher(w *window, numHashBytes int, cutValue uint32, alloc Allocator) (*bt4Matcher, error) {
	m := &bt4Matcher{w: w, numHashBytes: numHashBytes, cutValue: cutValue}
	son, err := allocInt32(alloc, 2*int(w.cyclicBufferSize))
	if err != nil {
		return nil, err
	}
	m.son = son
	if numHashBytes >= 2 {
		if m.hash2, err = allocInt32(alloc, hash2Size); err != nil {
			return nil, err
		}
	}
	if numHashBytes >= 3 {
		if m.hash3, err = allocInt32(alloc, hash3Size); err != nil {
			return nil, err
		}
	}
	if numHashBytes >= 4 {
		hashMask := computeHash4Mask(w.dictSize)
		if m.hash4, err = allocInt32(alloc, int(hashMask)+1); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// computeHash4Mask derives the 4-byte hash table size from the dictionary
// size: round up to a power of two, floor at 64K entries, cap at 16M
// entries so memory stays bounded for very large dictionaries.
func computeHash4Mask(dictSize uint32) uint32 {
	hs := dictSize - 1
	hs |= hs >> 1
	hs |= hs >> 2
	hs |= hs >> 4
	hs |= hs >> 8
	hs |= hs >> 16
	hs |= 0xFFFF
	if hs > 1<<24-1 {
		hs = 1<<24 - 1
	}
	return hs
}

func (m *bt4Matcher) hashCalc(cur []byte) (h2, h3, h4 uint32) {
	temp := crcTable[cur[0]] ^ uint32(cur[1])
	h2 = temp & hash2Mask
	if m.numHashBytes < 3 {
		return h2, 0, 0
	}
	h3 = (temp ^ uint32(cur[2])<<8) & hash3Mask
	if m.numHashBytes < 4 {
		return h2, h3, 0
	}
	h4 = (temp ^ uint32(cur[2])<<8 ^ crcTable[cur[3]]<<5) & computeHash4Mask(m.w.dictSize)
	return h2, h3, h4
}

// getMatches finds every match at the current position, appends
// (length, distance) pairs (distance is 0-based) to distances in
// increasing-length order, advances the window by one byte, and returns the
// updated slice.
func (m *bt4Matcher) getMatches(distances []matchPair) []matchPair {
	w := m.w
	lenLimit := w.lenLimit()
	if lenLimit < uint32(m.numHashBytes) {
		w.movePos()
		return distances
	}

	cur := w.current()
	h2, h3, h4 := m.hashCalc(cur)

	var curMatch int32 = 0
	pos := w.pos

	switch m.numHashBytes {
	case 2:
		curMatch = m.hash2[h2]
		m.hash2[h2] = int32(pos) + 1
	case 3:
		curMatch = m.hash3[h3]
		m.hash3[h3] = int32(pos) + 1
		m.hash2[h2] = int32(pos) + 1
	default:
		oldHash2 := m.hash2[h2]
		oldHash3 := m.hash3[h3]
		curMatch = m.hash4[h4]
		m.hash2[h2] = int32(pos) + 1
		m.hash3[h3] = int32(pos) + 1
		m.hash4[h4] = int32(pos) + 1

		maxLen := uint32(1)
		var deltaBest int32
		haveShort := false

		var delta2, delta3 int32
		if oldHash2 != 0 {
			delta2 = int32(pos) + 1 - oldHash2
		}
		if oldHash3 != 0 {
			delta3 = int32(pos) + 1 - oldHash3
		}

		if delta2 > 0 && uint32(delta2) <= w.dictSize && cur[0] == w.byteAt(-int(delta2)) &&
			cur[1] == w.byteAt(1-int(delta2)) {
			maxLen = 2
			distances = append(distances, matchPair{length: 2, dist: uint32(delta2) - 1})
			deltaBest = delta2
			haveShort = true
		}
		if delta3 > 0 && uint32(delta3) <= w.dictSize && delta3 != delta2 && cur[0] == w.byteAt(-int(delta3)) &&
			cur[1] == w.byteAt(1-int(delta3)) && cur[2] == w.byteAt(2-int(delta3)) {
			maxLen = 3
			distances = append(distances, matchPair{length: 3, dist: uint32(delta3) - 1})
			deltaBest = delta3
			haveShort = true
		}

		if haveShort {
			for ; maxLen != lenLimit; maxLen++ {
				if w.byteAt(int(maxLen)-int(deltaBest)) != cur[maxLen] {
					break
				}
			}
			// extend the best short-hash candidate's recorded length to
			// however far the direct byte-compare loop above actually got
			distances[len(distances)-1].length = maxLen
			if maxLen == lenLimit {
				m.skipTreeDescent(lenLimit, curMatch)
				w.movePos()
				return distances
			}
		}
		if maxLen < 3 {
			maxLen = 3
		}
		distances = m.treeDescent(lenLimit, curMatch, distances, maxLen)
		w.movePos()
		return distances
	}

	distances = m.treeDescent(lenLimit, curMatch, distances, 1)
	w.movePos()
	return distances
}

// skip advances the window by num positions, updating the hash/tree
// structures without returning any matches (used when the parser has
// already decided to emit a match/rep and just needs the finder caught up).
func (m *bt4Matcher) skip(num uint32) {
	w := m.w
	for ; num > 0; num-- {
		lenLimit := w.lenLimit()
		if lenLimit < uint32(m.numHashBytes) {
			w.movePos()
			continue
		}
		cur := w.current()
		h2, h3, h4 := m.hashCalc(cur)
		pos := w.pos

		var curMatch int32
		switch m.numHashBytes {
		case 2:
			curMatch = m.hash2[h2]
			m.hash2[h2] = int32(pos) + 1
		case 3:
			curMatch = m.hash3[h3]
			m.hash3[h3] = int32(pos) + 1
			m.hash2[h2] = int32(pos) + 1
		default:
			curMatch = m.hash4[h4]
			m.hash2[h2] = int32(pos) + 1
			m.hash3[h3] = int32(pos) + 1
			m.hash4[h4] = int32(pos) + 1
		}
		m.skipTreeDescent(lenLimit, curMatch)
		w.movePos()
	}
}

// treeDescent walks the binary search tree rooted at curMatch, comparing
// candidate positions against the current one and relinking nodes on each
// side of the split, appending a new (length,distance) pair whenever a
// longer match is found. Grounded on impl::get_matches_spec.
func (m *bt4Matcher) treeDescent(lenLimit uint32, curMatch int32, distances []matchPair, maxLen uint32) []matchPair {
	w := m.w
	cyclicPos := int32(w.cyclicBufferPos)
	ptr0 := cyclicPos<<1 + 1
	ptr1 := cyclicPos << 1
	var len0, len1 uint32
	cutVal := m.cutValue
	cur := w.current()
	pos := int32(w.pos)

	for {
		if curMatch == 0 {
			m.son[ptr0] = 0
			m.son[ptr1] = 0
			return distances
		}
		delta := pos + 1 - curMatch
		if cutVal == 0 || uint32(delta) > w.dictSize {
			m.son[ptr0] = 0
			m.son[ptr1] = 0
			return distances
		}
		cutVal--

		cyclicIdx := cyclicPos - delta
		if cyclicIdx < 0 {
			cyclicIdx += int32(w.cyclicBufferSize)
		}
		pairBase := cyclicIdx << 1

		pb := w.buf[w.pos-int(delta):]
		length := len0
		if len1 < length {
			length = len1
		}
		if pb[length] == cur[length] {
			for length++; length != lenLimit; length++ {
				if pb[length] != cur[length] {
					break
				}
			}
			if maxLen < length {
				maxLen = length
				distances = append(distances, matchPair{length: length, dist: uint32(delta) - 1})
				if length == lenLimit {
					m.son[ptr1] = m.son[pairBase]
					m.son[ptr0] = m.son[pairBase+1]
					return distances
				}
			}
		}
		if pb[length] < cur[length] {
			m.son[ptr1] = curMatch
			ptr1 = pairBase + 1
			curMatch = m.son[ptr1]
			len1 = length
		} else {
			m.son[ptr0] = curMatch
			ptr0 = pairBase
			curMatch = m.son[ptr0]
			len0 = length
		}
	}
}

// skipTreeDescent is treeDescent without match reporting, used by skip().
func (m *bt4Matcher) skipTreeDescent(lenLimit uint32, curMatch int32) {
	w := m.w
	cyclicPos := int32(w.cyclicBufferPos)
	ptr0 := cyclicPos<<1 + 1
	ptr1 := cyclicPos << 1
	var len0, len1 uint32
	cutVal := m.cutValue
	cur := w.current()
	pos := int32(w.pos)

	for {
		if curMatch == 0 {
			m.son[ptr0] = 0
			m.son[ptr1] = 0
			return
		}
		delta := pos + 1 - curMatch
		if cutVal == 0 || uint32(delta) > w.dictSize {
			m.son[ptr0] = 0
			m.son[ptr1] = 0
			return
		}
		cutVal--

		cyclicIdx := cyclicPos - delta
		if cyclicIdx < 0 {
			cyclicIdx += int32(w.cyclicBufferSize)
		}
		pairBase := cyclicIdx << 1

		pb := w.buf[w.pos-int(delta):]
		length := len0
		if len1 < length {
			length = len1
		}
		if pb[length] == cur[length] {
			for length++; length != lenLimit; length++ {
				if pb[length] != cur[length] {
					break
				}
			}
			if length == lenLimit {
				m.son[ptr1] = m.son[pairBase]
				m.son[ptr0] = m.son[pairBase+1]
				return
			}
		}
		if pb[length] < cur[length] {
			m.son[ptr1] = curMatch
			ptr1 = pairBase + 1
			curMatch = m.son[ptr1]
			len1 = length
		} else {
			m.son[ptr0] = curMatch
			ptr0 = pairBase
			curMatch = m.son[ptr0]
			len0 = length
		}
	}
}

// matchPair is one (length, 0-based distance) candidate returned by a
// matcher.
type matchPair struct {
	length uint32
	dist   uint32
}
