/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
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

package buffer

import (
	"io"

	libiot "github.com/drouarb/aionet/ioutils"
)

// Reader is a buffered reader with a fixed capacity chosen at
// construction. The underlying reader is never asked for more than the
// capacity in a single call. Errors met while refilling are deferred
// until the caller's request cannot be fulfilled.
type Reader interface {
	libiot.Reader

	// Peek returns the next unconsumed byte without consuming it,
	// refilling the buffer if needed.
	Peek() (byte, bool)
	// Size returns the number of unconsumed buffered bytes.
	Size() int
	// Capacity returns the fixed buffer capacity.
	Capacity() int
	// Reset clears the buffer, keeps the capacity, and switches to the
	// given underlying reader when non nil.
	Reset(other io.Reader)
	// Error returns the deferred error of the last refill, if any.
	Error() error
}

type reader struct {
	i libiot.Reader
	b []byte
	e error
}

// NewReader returns a buffered Reader of the given capacity over r.
// A non-positive size falls back to DefaultSize.
func NewReader(r io.Reader, size int) Reader {
	if size <= 0 {
		size = DefaultSize
	}

	return &reader{
		i: libiot.WrapReader(r),
		b: make([]byte, 0, size),
	}
}

func (o *reader) Fd() int {
	return o.i.Fd()
}

func (o *reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	// served entirely from the buffer
	if len(p) <= len(o.b) {
		copy(p, o.b[:len(p)])
		o.consume(len(p))
		return len(p), nil
	}

	var total int

	if len(o.b) > 0 {
		copy(p, o.b)
		total = len(o.b)
		o.b = o.b[:0]
	}

	// buffer is empty; large remainders bypass it in capacity-sized
	// direct reads
	for len(p)-total > cap(o.b) {
		n, err := o.i.Read(p[total : total+cap(o.b)])
		total += n

		if err != nil {
			return total, err
		}
	}

	leftover := len(p) - total
	if leftover > 0 {
		o.fill()

		available := min(leftover, len(o.b))
		copy(p[total:], o.b[:available])
		o.consume(available)
		total += available

		// report the deferred error only if the request is short; a
		// short fill without error stays a legal short read
		if available < leftover {
			return total, o.e
		}
	}

	return total, nil
}

func (o *reader) Peek() (byte, bool) {
	if len(o.b) == 0 {
		o.fill()
	}

	if len(o.b) == 0 {
		return 0, false
	}

	return o.b[0], true
}

func (o *reader) Size() int {
	return len(o.b)
}

func (o *reader) Capacity() int {
	return cap(o.b)
}

func (o *reader) Reset(other io.Reader) {
	if other != nil {
		o.i = libiot.WrapReader(other)
	}

	o.b = o.b[:0]
	o.e = nil
}

func (o *reader) Error() error {
	return o.e
}

// consume drops n leading bytes, compacting the remainder to offset 0.
func (o *reader) consume(n int) {
	left := copy(o.b, o.b[n:])
	o.b = o.b[:left]
}

// fill tops the buffer up with a single underlying read, deferring any
// error for the caller to surface later.
func (o *reader) fill() {
	if len(o.b) == cap(o.b) {
		return
	}

	start := len(o.b)
	n, err := o.i.Read(o.b[start:cap(o.b)])
	o.b = o.b[:start+n]
	o.e = err
}

func min(a, b int) int {
	if a < b {
		return a
	}

	return b
}
