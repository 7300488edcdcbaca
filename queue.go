// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/zmij/lzma1

package lzma1

import (
	"github.com/emirpasic/gods/v2/lists/doublylinkedlist"
)

// outputPageSize is the fixed page size for the range coder's output queue,
// matching the reference encoder's RangeEnc buffer_page.
const outputPageSize = 64 * 1024

// outputPage is one fixed-size chunk of range-coder output. Pages are
// appended as the coder emits bytes and drained, oldest first, as the
// caller's destination buffer accepts them.
type outputPage struct {
	data [outputPageSize]byte
	n    int // bytes written into data
}

// outputQueue is the range coder's output byte queue: a linked list of
// fixed-size pages, the Go analogue of the reference encoder's
// std::list<buffer_page>. A ring buffer with dynamic growth would satisfy
// the same contract (see SPEC_FULL.md domain stack); this implementation
// picks the linked-list option and backs it with a real generic container
// instead of a hand-rolled list.
type outputQueue struct {
	pages *doublylinkedlist.List[*outputPage]
	tail  *outputPage // == pages.values last page, cached for fast appends
	head  int         // read offset within the first page
	total int         // total unread bytes across all pages
}

func newOutputQueue() *outputQueue {
	return &outputQueue{pages: doublylinkedlist.New[*outputPage]()}
}

// writeByte appends one byte, allocating a new page when the current tail is
// full.
func (q *outputQueue) writeByte(b byte) {
	if q.tail == nil || q.tail.n == outputPageSize {
		q.tail = &outputPage{}
		q.pages.Add(q.tail)
	}
	q.tail.data[q.tail.n] = b
	q.tail.n++
	q.total++
}

// len reports the number of unread bytes currently queued.
func (q *outputQueue) len() int {
	return q.total
}

// drain copies up to len(dst) queued bytes into dst, removing fully-consumed
// pages from the front of the list, and returns the number of bytes copied.
func (q *outputQueue) drain(dst []byte) int {
	written := 0
	for written < len(dst) && q.total > 0 {
		front, ok := q.pages.Get(0)
		if !ok {
			break
		}
		avail := front.n - q.head
		n := copy(dst[written:], front.data[q.head:front.n])
		written += n
		q.head += n
		q.total -= n

		if q.head == front.n {
			q.pages.Remove(0)
			q.head = 0
			if q.pages.Empty() {
				q.tail = nil
			}
		} else if n < avail {
			break
		}
	}
	return written
}
