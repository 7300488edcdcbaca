// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/zmij/lzma1

package lzma1_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/klauspost/compress/flate"

	lzma1 "github.com/zmij/lzma1"
)

func benchmarkInputSets() map[string][]byte {
	return map[string][]byte{
		"small-text-4k":   bytes.Repeat([]byte("lzma1 benchmark text payload "), 140),
		"pattern-128k":    bytes.Repeat([]byte("ABCDEF0123456789"), 8192),
		"byte-cycle-256k": bytes.Repeat([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 26214),
	}
}

func BenchmarkEncode(b *testing.B) {
	levels := []int{1, 5, 9}
	for inputName, inputData := range benchmarkInputSets() {
		for _, level := range levels {
			name := fmt.Sprintf("%s/level-%d", inputName, level)
			b.Run(name, func(b *testing.B) {
				opts := lzma1.NewOptions(level)
				opts.UncompressedSize = uint64(len(inputData))
				b.ReportAllocs()
				b.SetBytes(int64(len(inputData)))
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					enc, err := lzma1.NewEncoder(opts)
					if err != nil {
						b.Fatalf("NewEncoder: %v", err)
					}
					dst := make([]byte, len(inputData)+4096)
					if _, err := enc.Encode(dst, inputData, true); err != nil {
						b.Fatalf("Encode: %v", err)
					}
				}
			})
		}
	}
}

// BenchmarkEncodeVsFlate reports this module's compression ratio against
// compress/flate's implementation in klauspost/compress, the way the
// teacher's benchmark_test.go benchmarks its own compress/decompress paths
// side by side. Flate is a DEFLATE-family coder, not an LZMA1 alternative,
// so this is a ratio/speed baseline, not a correctness comparison.
func BenchmarkEncodeVsFlate(b *testing.B) {
	for inputName, inputData := range benchmarkInputSets() {
		opts := lzma1.NewOptions(6)
		opts.UncompressedSize = uint64(len(inputData))

		b.Run(inputName+"/lzma1", func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(inputData)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				enc, err := lzma1.NewEncoder(opts)
				if err != nil {
					b.Fatalf("NewEncoder: %v", err)
				}
				dst := make([]byte, len(inputData)+4096)
				n, err := enc.Encode(dst, inputData, true)
				if err != nil {
					b.Fatalf("Encode: %v", err)
				}
				b.ReportMetric(float64(n)/float64(len(inputData)), "ratio")
			}
		})

		b.Run(inputName+"/flate", func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(inputData)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				var out bytes.Buffer
				w, err := flate.NewWriter(&out, flate.DefaultCompression)
				if err != nil {
					b.Fatalf("flate.NewWriter: %v", err)
				}
				if _, err := w.Write(inputData); err != nil {
					b.Fatalf("flate write: %v", err)
				}
				if err := w.Close(); err != nil {
					b.Fatalf("flate close: %v", err)
				}
				b.ReportMetric(float64(out.Len())/float64(len(inputData)), "ratio")
			}
		})
	}
}
