// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/zmij/lzma1

package lzma1

import "encoding/binary"

// headerSize is the classic LZMA1 container header: one properties byte
// encoding (pb,lp,lc), a 4-byte little-endian dictionary size, and an
// 8-byte little-endian uncompressed size (or the all-ones sentinel when the
// size is not known up front and an end-of-stream marker is used instead).
const headerSize = 1 + 4 + 8

// unknownSizeMarker is the header's uncompressed-size sentinel meaning "use
// the end-of-stream marker, not this field".
const unknownSizeMarker = 0xFFFFFFFFFFFFFFFF

// endMarkerDist is the 0-based distance that marks the bitstream's logical
// end: a match whose distance field is all-ones (i.e. actual distance
// 2^32), which can never occur in a real match.
const endMarkerDist = 0xFFFFFFFF

// encodePropsByte packs lc/lp/pb into the single properties byte, per the
// reference container format: (pb*5 + lp)*9 + lc.
func encodePropsByte(lc, lp, pb int) byte {
	return byte((pb*5+lp)*9 + lc)
}

// normalizeDictSize rounds d up to the nearest value of the form 2^k or
// 3*2^k, the header field's required encoding (spec's wire-format table:
// "encoded value normalized up to 2^k or 3*2^k"). Grounded on the reference
// encoder's dictionary-size normalization ahead of writing the container
// header.
func normalizeDictSize(d uint32) uint32 {
	for k := uint(0); k < 31; k++ {
		if two := uint32(2) << k; d <= two {
			return two
		}
		if three := uint32(3) << k; d <= three {
			return three
		}
	}
	return d
}

// writeHeader appends the 13-byte container header to out.
func writeHeader(out []byte, lc, lp, pb int, dictSize uint32, size uint64) []byte {
	var hdr [headerSize]byte
	hdr[0] = encodePropsByte(lc, lp, pb)
	binary.LittleEndian.PutUint32(hdr[1:5], dictSize)
	binary.LittleEndian.PutUint64(hdr[5:13], size)
	return append(out, hdr[:]...)
}
