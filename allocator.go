// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/zmij/lzma1

package lzma1

import "fmt"

// Allocator lets callers supply their own backing storage for the match
// finder's hash/tree/chain tables and the literal probability table — the
// largest and most level-dependent allocations an Encoder makes. Grounded
// on the reference encoder's injectable ISzAlloc; unlike that design this
// interface works in terms of Go slices rather than raw pointers, since Go
// has no uninitialized-allocation primitive to wrap.
//
// A nil Allocator is equivalent to defaultAllocator (plain make()). An
// Allocator that returns a nil or undersized slice for a non-zero request
// causes NewEncoder to fail with ErrAllocation.
type Allocator interface {
	AllocBytes(n int) []byte
	AllocInt32(n int) []int32
	AllocUint16(n int) []uint16
}

type stdAllocator struct{}

func (stdAllocator) AllocBytes(n int) []byte    { return make([]byte, n) }
func (stdAllocator) AllocInt32(n int) []int32   { return make([]int32, n) }
func (stdAllocator) AllocUint16(n int) []uint16 { return make([]uint16, n) }

var defaultAllocator Allocator = stdAllocator{}

// allocBytes/allocInt32/allocUint16 call through to a, falling back to
// defaultAllocator when a is nil, and turn a too-small result into
// ErrAllocation instead of letting a later out-of-bounds index panic.
func allocBytes(a Allocator, n int) ([]byte, error) {
	if a == nil {
		a = defaultAllocator
	}
	s := a.AllocBytes(n)
	if len(s) < n {
		return nil, fmt.Errorf("lzma1: %w: requested %d bytes", ErrAllocation, n)
	}
	return s[:n], nil
}

func allocInt32(a Allocator, n int) ([]int32, error) {
	if a == nil {
		a = defaultAllocator
	}
	s := a.AllocInt32(n)
	if len(s) < n {
		return nil, fmt.Errorf("lzma1: %w: requested %d int32 entries", ErrAllocation, n)
	}
	return s[:n], nil
}

func allocUint16(a Allocator, n int) ([]uint16, error) {
	if a == nil {
		a = defaultAllocator
	}
	s := a.AllocUint16(n)
	if len(s) < n {
		return nil, fmt.Errorf("lzma1: %w: requested %d uint16 entries", ErrAllocation, n)
	}
	return s[:n], nil
}
