// SPDX-License-Identifier: MIT
// Source: github.com/zmij/lzma1

package lzma1

// crcTable is the reflected CRC-32 table (polynomial 0xEDB88320) used by the
// BT4/HC4 match finders to derive 2/3/4-byte hash keys. It is not a stream
// checksum; it only feeds the hash functions in bt4.go/hashchain.go.
var crcTable = buildCRCTable()

func buildCRCTable() [256]uint32 {
	var table [256]uint32
	for i := range table {
		c := uint32(i)
		for range 8 {
			if c&1 != 0 {
				c = crcPoly ^ (c >> 1)
			} else {
				c >>= 1
			}
		}
		table[i] = c
	}
	return table
}
