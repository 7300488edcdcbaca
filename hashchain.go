// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/zmij/lzma1

package lzma1

// hc4Matcher is the hash-chain match finder (HC4): a single hash table over
// 4-byte prefixes plus one "previous occurrence" pointer per cyclic-buffer
// slot, walked in recency order up to cutValue steps. Faster and lower
// ratio than bt4Matcher since it never restructures a tree, only appends.
//
// The reference encoder's own hc4_matcher body is a stub (always returns no
// matches); this is a real implementation in the idiom of the teacher's
// hash-chain dictionary (sliding_window.go's chainNext/searchBestMatch),
// generalized from 2/3-byte LZO hashing to the 4-byte CRC hash used
// elsewhere in this package, per SPEC_FULL.md's hash-chain supplement.
type hc4Matcher struct {
	w        *window
	hashMask uint32
	cutValue uint32

	hash  []int32 // size hashMask+1, stores pos+1 (0 = empty)
	chain []int32 // size cyclicBufferSize, stores pos+1 of prior same-hash position (0 = chain end)
}

func newHC4Matcher(w *window, cutValue uint32, alloc Allocator) (*hc4Matcher, error) {
	hashMask := computeHash4Mask(w.dictSize)
	hash, err := allocInt32(alloc, int(hashMask)+1)
	if err != nil {
		return nil, err
	}
	chain, err := allocInt32(alloc, int(w.cyclicBufferSize))
	if err != nil {
		return nil, err
	}
	return &hc4Matcher{
		w:        w,
		hashMask: hashMask,
		cutValue: cutValue,
		hash:     hash,
		chain:    chain,
	}, nil
}

func (m *hc4Matcher) hash4(cur []byte) uint32 {
	temp := crcTable[cur[0]] ^ uint32(cur[1])
	return (temp ^ uint32(cur[2])<<8 ^ crcTable[cur[3]]<<5) & m.hashMask
}

// insert records the current position in the hash table and chain, and
// returns the previous chain head (0 = none) for match searching.
func (m *hc4Matcher) insert() int32 {
	w := m.w
	cur := w.current()
	h := m.hash4(cur)
	prevHead := m.hash[h]
	m.chain[w.cyclicBufferPos] = prevHead
	m.hash[h] = int32(w.pos) + 1
	return prevHead
}

func (m *hc4Matcher) getMatches(distances []matchPair) []matchPair {
	w := m.w
	lenLimit := w.lenLimit()
	if lenLimit < 4 {
		w.movePos()
		return distances
	}

	chainHead := m.insert()
	cur := w.current()
	pos := int32(w.pos)
	bestLen := uint32(0)
	cutVal := m.cutValue

	cand := chainHead
	for cand != 0 && cutVal > 0 {
		cutVal--
		delta := pos + 1 - cand
		if uint32(delta) > w.dictSize {
			break
		}
		if bestLen == 0 || w.byteAt(int(bestLen)-int(delta)) == cur[bestLen] {
			length := uint32(0)
			for length < lenLimit && w.byteAt(int(length)-int(delta)) == cur[length] {
				length++
			}
			if length > bestLen {
				bestLen = length
				distances = append(distances, matchPair{length: length, dist: uint32(delta) - 1})
				if length == lenLimit {
					break
				}
			}
		}

		chainIdx := int32(w.cyclicBufferPos) - delta
		if chainIdx < 0 {
			chainIdx += int32(w.cyclicBufferSize)
		}
		cand = m.chain[chainIdx]
	}

	w.movePos()
	return distances
}

func (m *hc4Matcher) skip(num uint32) {
	w := m.w
	for ; num > 0; num-- {
		if w.lenLimit() < 4 {
			w.movePos()
			continue
		}
		m.insert()
		w.movePos()
	}
}
