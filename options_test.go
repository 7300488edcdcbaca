// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/zmij/lzma1

package lzma1_test

import (
	"errors"
	"testing"

	lzma1 "github.com/zmij/lzma1"
)

func TestDefaultOptionsValidate(t *testing.T) {
	if err := lzma1.DefaultOptions().Validate(); err != nil {
		t.Fatalf("DefaultOptions().Validate() = %v, want nil", err)
	}
}

func TestNewOptionsClampsLevel(t *testing.T) {
	if got := lzma1.NewOptions(-5).Level; got != 0 {
		t.Fatalf("NewOptions(-5).Level = %d, want 0", got)
	}
	if got := lzma1.NewOptions(99).Level; got != 9 {
		t.Fatalf("NewOptions(99).Level = %d, want 9", got)
	}
}

func TestValidateRejectsOutOfRangeFields(t *testing.T) {
	cases := []func(*lzma1.Options){
		func(o *lzma1.Options) { o.LC = 9 },
		func(o *lzma1.Options) { o.LP = 5 },
		func(o *lzma1.Options) { o.LC, o.LP = 8, 1 },
		func(o *lzma1.Options) { o.PB = 5 },
		func(o *lzma1.Options) { o.FB = 4 },
		func(o *lzma1.Options) { o.DictSize = 100 },
		func(o *lzma1.Options) { o.MFCycles = 0 },
		func(o *lzma1.Options) { o.NumHashBytes = 5 },
	}
	for i, mutate := range cases {
		o := lzma1.NewOptions(5)
		mutate(o)
		err := o.Validate()
		if err == nil {
			t.Fatalf("case %d: Validate() = nil, want error", i)
		}
		var ce *lzma1.ConfigError
		if !errors.As(err, &ce) {
			t.Fatalf("case %d: error %v is not a *ConfigError", i, err)
		}
		if !errors.Is(err, lzma1.ErrConfigOutOfRange) {
			t.Fatalf("case %d: error %v does not wrap ErrConfigOutOfRange", i, err)
		}
	}
}
