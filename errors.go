// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/zmij/lzma1

package lzma1

import (
	"errors"
	"fmt"
)

// Sentinel errors for encoding. Use errors.Is to test for them; ConfigError
// additionally carries the offending field.
var (
	// ErrConfigOutOfRange is returned (wrapped in a *ConfigError) when an
	// Options field falls outside its documented bounds. Raised from
	// NewEncoder/Options.Validate before any resource is allocated.
	ErrConfigOutOfRange = errors.New("configuration value out of range")

	// ErrAllocation is returned when an injected Allocator returns nil.
	// Any resources already allocated for the same Encoder are released
	// before this error is returned.
	ErrAllocation = errors.New("allocator returned nil")

	// ErrOutputBufferTooSmall is returned together with zero progress when
	// dst cannot hold the minimum output (the 13-byte stream header on the
	// first call). Callers should grow dst and retry; it is not a failure.
	ErrOutputBufferTooSmall = errors.New("output buffer too small")

	// ErrInternal wraps an internal invariant violation. Callers can use
	// errors.Is(err, lzma1.ErrInternal). Should never occur in practice.
	ErrInternal = errors.New("internal encoder error")
)

// ConfigError reports an Options field that failed validation.
type ConfigError struct {
	Field    string
	Value    int
	Min, Max int
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("lzma1: %s=%d out of range [%d,%d]", e.Field, e.Value, e.Min, e.Max)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfigOutOfRange
}

func configRange(field string, value, min, max int) error {
	if value < min || value > max {
		return &ConfigError{Field: field, Value: value, Min: min, Max: max}
	}
	return nil
}
