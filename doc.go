// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/zmij/lzma1

/*
Package lzma1 implements an LZMA1 encoder: a sliding-window match finder
(binary-tree or hash-chain) feeding a range-coded entropy stage, producing
the classic LZMA1 container (5-byte properties header, 8-byte little-endian
uncompressed size, range-coded payload) readable by any conformant LZMA1
decoder. There is no decoder in this package; round-trip correctness is
verified in tests against an external decoder.

# Encode

Options may be nil (default level 5):

	enc, err := lzma1.NewEncoder(nil)
	n, err := enc.Encode(dst, src, true)

Each Encode call takes all of its src into the encoder and writes as much
output as fits in dst; the last call that carries input passes atEnd=true,
and Encode is then called again (with nil src) until it returns 0, draining
the output still queued. See Encoder.Encode for the exact contract.

# Options

	opts := lzma1.NewOptions(9) // preset level 0-9
	opts.FB = 273               // then tune individual fields
	enc, err := lzma1.NewEncoder(opts)
*/
package lzma1
