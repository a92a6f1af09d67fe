/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package reactor

import (
	"container/heap"
	"time"

	libaio "github.com/drouarb/aionet/aio"
)

// operation is one queued submission. The completion fires exactly
// once: the done flag is flipped under the registry mutex by whichever
// of readiness, deadline or shutdown arrives first.
type operation struct {
	resume   libaio.Completion
	fd       int
	op       libaio.Op
	deadline time.Time
	hi       int // index in the timeout heap, -1 when absent
	done     bool
}

// fdState keeps the per-descriptor FIFO of pending operations, one
// queue per direction. An operation with both interests sits in both
// queues and is lazily skipped in the other once completed.
type fdState struct {
	read  []*operation
	write []*operation
}

func (s *fdState) push(op *operation) {
	if op.op.Readable() {
		s.read = append(s.read, op)
	}

	if op.op.Writable() {
		s.write = append(s.write, op)
	}
}

// pop returns the first not yet completed operation of the given
// direction, discarding completed leftovers on the way.
func (s *fdState) pop(readable bool) *operation {
	q := &s.read
	if !readable {
		q = &s.write
	}

	for len(*q) > 0 {
		op := (*q)[0]
		*q = (*q)[1:]

		if !op.done {
			return op
		}
	}

	return nil
}

// pending returns the remaining kernel interest of the descriptor.
func (s *fdState) pending() libaio.Op {
	var op libaio.Op

	for _, o := range s.read {
		if !o.done {
			op |= libaio.OpRead
			break
		}
	}

	for _, o := range s.write {
		if !o.done {
			op |= libaio.OpWrite
			break
		}
	}

	return op
}

// timeoutHeap orders pending operations by deadline. Completed
// operations are skipped lazily on pop.
type timeoutHeap []*operation

func (h timeoutHeap) Len() int { return len(h) }

func (h timeoutHeap) Less(i, j int) bool {
	return h[i].deadline.Before(h[j].deadline)
}

func (h timeoutHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].hi = i
	h[j].hi = j
}

func (h *timeoutHeap) Push(x interface{}) {
	op := x.(*operation)
	op.hi = len(*h)
	*h = append(*h, op)
}

func (h *timeoutHeap) Pop() interface{} {
	old := *h
	n := len(old)
	op := old[n-1]
	old[n-1] = nil
	op.hi = -1
	*h = old[:n-1]
	return op
}

// next returns the earliest live deadline, or the zero time when the
// heap holds no live entry.
func (h *timeoutHeap) next() time.Time {
	for h.Len() > 0 {
		if op := (*h)[0]; op.done {
			heap.Pop(h)
		} else {
			return op.deadline
		}
	}

	return time.Time{}
}

// expired pops every live entry whose deadline is not after now.
func (h *timeoutHeap) expired(now time.Time) []*operation {
	var res []*operation

	for h.Len() > 0 {
		op := (*h)[0]

		if op.done {
			heap.Pop(h)
			continue
		}

		if op.deadline.After(now) {
			break
		}

		heap.Pop(h)
		res = append(res, op)
	}

	return res
}

// drain pops every live entry, used on shutdown.
func (h *timeoutHeap) drain() []*operation {
	var res []*operation

	for h.Len() > 0 {
		op := heap.Pop(h).(*operation)

		if !op.done {
			res = append(res, op)
		}
	}

	return res
}
