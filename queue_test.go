// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/zmij/lzma1

package lzma1

import (
	"bytes"
	"testing"
)

func TestOutputQueueWriteAndDrain(t *testing.T) {
	q := newOutputQueue()
	var want []byte
	for i := 0; i < outputPageSize*3+17; i++ {
		b := byte(i)
		q.writeByte(b)
		want = append(want, b)
	}
	if q.len() != len(want) {
		t.Fatalf("len() = %d, want %d", q.len(), len(want))
	}

	var got []byte
	buf := make([]byte, 4096)
	for q.len() > 0 {
		n := q.drain(buf)
		if n == 0 {
			t.Fatalf("drain returned 0 with %d bytes still queued", q.len())
		}
		got = append(got, buf[:n]...)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("drained content mismatch: got %d bytes, want %d", len(got), len(want))
	}
}

func TestOutputQueueDrainPartial(t *testing.T) {
	q := newOutputQueue()
	for i := 0; i < 10; i++ {
		q.writeByte(byte(i))
	}
	small := make([]byte, 3)
	n := q.drain(small)
	if n != 3 || q.len() != 7 {
		t.Fatalf("drain(3) = %d, remaining %d, want 3, 7", n, q.len())
	}
}
