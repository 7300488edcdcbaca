// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/zmij/lzma1

package lzma1_test

import (
	"bytes"
	"io"
	"math/rand"
	"testing"

	"github.com/ulikunitz/xz/lzma"

	lzma1 "github.com/zmij/lzma1"
)

// encodeAll runs src through a fresh Encoder configured by opts (nil for
// default): the first atEnd=true call hands over all of src, and further
// calls drain output through a reused 4096-byte dst until Encode returns 0.
// It returns the full compressed output.
func encodeAll(t *testing.T, opts *lzma1.Options, src []byte) []byte {
	t.Helper()
	enc, err := lzma1.NewEncoder(opts)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	var out bytes.Buffer
	buf := make([]byte, 4096)
	for {
		n, err := enc.Encode(buf, src, true)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		out.Write(buf[:n])
		src = nil
		if n == 0 {
			break
		}
	}
	return out.Bytes()
}

// decodeAll decodes a classic-format LZMA1 stream with an independent
// decoder, verifying this package's output is bitstream-conformant rather
// than merely self-consistent.
func decodeAll(t *testing.T, compressed []byte) []byte {
	t.Helper()
	r, err := lzma.NewReader(bytes.NewReader(compressed))
	if err != nil {
		t.Fatalf("lzma.NewReader: %v", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("lzma reader: %v", err)
	}
	return got
}

func roundTrip(t *testing.T, opts *lzma1.Options, src []byte) {
	t.Helper()
	o := *lzma1.DefaultOptions()
	if opts != nil {
		o = *opts
	}
	o.UncompressedSize = uint64(len(src))
	opts = &o
	compressed := encodeAll(t, opts, src)
	got := decodeAll(t, compressed)
	if !bytes.Equal(got, src) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d bytes", len(got), len(src))
	}
}

func TestRoundTripEmpty(t *testing.T) {
	roundTrip(t, nil, nil)
}

func TestRoundTripOneByte(t *testing.T) {
	roundTrip(t, nil, []byte{0x42})
}

func TestRoundTripAllZeros64KiB(t *testing.T) {
	roundTrip(t, nil, make([]byte, 64*1024))
}

func TestRoundTripPeriodic(t *testing.T) {
	var src []byte
	for i := 0; i < 10000; i++ {
		src = append(src, 'A', 'B', 'C')
	}
	roundTrip(t, nil, src)
}

func TestRoundTripRandomIncompressible(t *testing.T) {
	src := make([]byte, 1<<20)
	rand.New(rand.NewSource(1)).Read(src)
	roundTrip(t, nil, src)
}

func TestRoundTripNormalizationStress(t *testing.T) {
	// Exercises positions well past the dictionary size without relying on
	// the reference encoder's 32-bit position renormalization (see
	// window.go's doc comment and DESIGN.md's Open Question entry).
	opts := lzma1.NewOptions(1)
	opts.DictSize = 1 << 16
	src := make([]byte, 3*int(opts.DictSize)+777)
	for i := range src {
		src[i] = byte(i * 2659)
	}
	roundTrip(t, opts, src)
}

func TestRoundTripEveryLevel(t *testing.T) {
	src := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog, "), 500)
	for level := 0; level <= 9; level++ {
		level := level
		t.Run("", func(t *testing.T) {
			roundTrip(t, lzma1.NewOptions(level), src)
		})
	}
}

func TestRoundTripHashChainMode(t *testing.T) {
	opts := lzma1.NewOptions(5)
	opts.Mode = lzma1.ModeHC
	src := bytes.Repeat([]byte("hash chain exercising payload "), 2000)
	roundTrip(t, opts, src)
}

func TestRoundTripFastParser(t *testing.T) {
	opts := lzma1.NewOptions(5)
	opts.Algo = lzma1.AlgoFast
	src := bytes.Repeat([]byte("fast greedy parser payload "), 2000)
	roundTrip(t, opts, src)
}

func TestRoundTripEndMarker(t *testing.T) {
	opts := lzma1.NewOptions(5)
	opts.WriteEndMark = true
	src := []byte("end marker instead of a size header")
	compressed := encodeAll(t, opts, src)
	got := decodeAll(t, compressed)
	if !bytes.Equal(got, src) {
		t.Fatalf("round trip mismatch with end marker")
	}
}

// TestChunkedInputInvariance verifies that feeding the same data through
// many small Encode calls produces a stream that decodes to the same input
// as one fed in a single call. The compressed bytes themselves are not
// compared: an optimal-parser batch runs to the end of the input buffered so
// far, so the chosen symbols can differ with the chunk boundaries.
func TestChunkedInputInvariance(t *testing.T) {
	src := bytes.Repeat([]byte("chunk invariance payload data "), 3000)

	opts := lzma1.NewOptions(5)
	opts.UncompressedSize = uint64(len(src))
	enc, err := lzma1.NewEncoder(opts)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}

	var out bytes.Buffer
	buf := make([]byte, 777) // deliberately awkward size
	for off := 0; off < len(src); {
		end := off + 97
		if end > len(src) {
			end = len(src)
		}
		atEnd := end == len(src)
		chunk := src[off:end]
		for {
			n, err := enc.Encode(buf, chunk, atEnd)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			out.Write(buf[:n])
			chunk = nil
			if n == 0 {
				break
			}
			if !atEnd {
				break
			}
		}
		off = end
	}

	got := decodeAll(t, out.Bytes())
	if !bytes.Equal(got, src) {
		t.Fatalf("chunked round trip mismatch: got %d bytes, want %d", len(got), len(src))
	}
}

// TestDeterminism checks that encoding the same input twice with the same
// options produces byte-identical output.
func TestDeterminism(t *testing.T) {
	src := bytes.Repeat([]byte("determinism payload "), 1000)
	opts := lzma1.NewOptions(5)
	opts.UncompressedSize = uint64(len(src))
	a := encodeAll(t, opts, src)
	b := encodeAll(t, opts, src)
	if !bytes.Equal(a, b) {
		t.Fatalf("two encodes of identical input diverged")
	}
}

func TestEncodeRejectsSmallFirstBuffer(t *testing.T) {
	enc, err := lzma1.NewEncoder(nil)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	buf := make([]byte, 4)
	_, err = enc.Encode(buf, []byte("x"), true)
	if err != lzma1.ErrOutputBufferTooSmall {
		t.Fatalf("Encode with undersized first buffer = %v, want ErrOutputBufferTooSmall", err)
	}
}

func TestNewEncoderRejectsInvalidOptions(t *testing.T) {
	opts := lzma1.NewOptions(5)
	opts.LC = 100
	if _, err := lzma1.NewEncoder(opts); err == nil {
		t.Fatalf("NewEncoder accepted out-of-range LC")
	}
}
