// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/zmij/lzma1

package lzma1

import "testing"

// TestRangeEncoderNormalizationInvariant checks the coder's core invariant
// (spec §8): after encodeBit's normalization loop, rng never drops below
// 1<<24, the point at which its top byte is no longer determined.
func TestRangeEncoderNormalizationInvariant(t *testing.T) {
	out := newOutputQueue()
	rc := newRangeEncoder(out)
	prob := uint16(probInitValue)
	for i := 0; i < 100000; i++ {
		bit := uint32(0)
		if i%3 == 0 {
			bit = 1
		}
		rc.encodeBit(&prob, bit)
		if rc.rng < topValue {
			t.Fatalf("rng invariant violated at bit %d: rng=%#x", i, rc.rng)
		}
	}
}

func TestBuildProbPricesMonotonic(t *testing.T) {
	// A higher probability of the coded bit should never cost more bits:
	// getPrice0 must be non-increasing as prob increases (prob is P(bit=0)).
	var prev uint32 = 1 << 31
	for p := uint32(1); p < bitModelTotal; p += 32 {
		price := getPrice0(uint16(p))
		if price > prev {
			t.Fatalf("getPrice0 not monotonic at prob=%d: price=%d > prev=%d", p, price, prev)
		}
		prev = price
	}
}

func TestGetPosSlotRoundTripsSmallDistances(t *testing.T) {
	// Slots 0 and 1 are exact distances 0 and 1; beyond that, getPosSlot
	// must be non-decreasing in dist.
	if getPosSlot(0) != 0 || getPosSlot(1) != 1 {
		t.Fatalf("getPosSlot(0)=%d getPosSlot(1)=%d, want 0,1", getPosSlot(0), getPosSlot(1))
	}
	prev := uint32(0)
	for _, d := range []uint32{2, 3, 10, 1000, 1 << 20, 1 << 30, 0xFFFFFFFF} {
		s := getPosSlot(d)
		if s < prev {
			t.Fatalf("getPosSlot(%d)=%d regressed below previous slot %d", d, s, prev)
		}
		prev = s
	}
}
