// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/zmij/lzma1

package lzma1

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestDistancePriceTablesDeterministic checks that filling the distance and
// align price tables from two freshly-initialized probability models (same
// lc/lp, both at their initial probability) produces byte-for-byte identical
// tables, the way a table-driven test compares a generated table against a
// golden fixture.
func TestDistancePriceTablesDeterministic(t *testing.T) {
	probsA, err := newProbModel(3, 0, nil)
	if err != nil {
		t.Fatalf("newProbModel: %v", err)
	}
	probsB, err := newProbModel(3, 0, nil)
	if err != nil {
		t.Fatalf("newProbModel: %v", err)
	}

	var pricesA, pricesB distancePrices
	pricesA.fillDistancesPrices(probsA)
	pricesA.fillAlignPrices(probsA)
	pricesB.fillDistancesPrices(probsB)
	pricesB.fillAlignPrices(probsB)

	if diff := cmp.Diff(pricesA.posSlotPrices, pricesB.posSlotPrices); diff != "" {
		t.Fatalf("posSlotPrices mismatch (-A +B):\n%s", diff)
	}
	if diff := cmp.Diff(pricesA.distPrices, pricesB.distPrices); diff != "" {
		t.Fatalf("distPrices mismatch (-A +B):\n%s", diff)
	}
	if diff := cmp.Diff(pricesA.alignPrices, pricesB.alignPrices); diff != "" {
		t.Fatalf("alignPrices mismatch (-A +B):\n%s", diff)
	}
}
