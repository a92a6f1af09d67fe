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

// Package buffer provides fixed-capacity buffered wrappers over the
// module's stream contracts. Unlike the standard bufio package, the
// reader defers refill errors until they block the caller's request
// and the writer keeps short-written tails for the next flush.
package buffer

import (
	"io"

	libiot "github.com/drouarb/aionet/ioutils"
)

// DefaultSize is the buffer capacity used when none is given.
const DefaultSize = 4096

// Writer is a buffered writer with a fixed capacity. Writes larger
// than the capacity bypass the buffer once it has been flushed. The
// buffered tail left over by a short underlying write is shifted to
// the front and retried on the next flush.
type Writer interface {
	libiot.Writer

	// Flush writes all buffered bytes to the underlying writer,
	// looping over short writes.
	Flush() (int, error)
	// Size returns the number of unflushed buffered bytes.
	Size() int
	// Capacity returns the fixed buffer capacity.
	Capacity() int
	// Reset drops buffered bytes, keeps the capacity, and switches to
	// the given underlying writer when non nil.
	Reset(other io.Writer)
}

type writer struct {
	i libiot.Writer
	b []byte
}

// NewWriter returns a buffered Writer of the given capacity over w.
// A non-positive size falls back to DefaultSize.
func NewWriter(w io.Writer, size int) Writer {
	if size <= 0 {
		size = DefaultSize
	}

	return &writer{
		i: libiot.WrapWriter(w),
		b: make([]byte, 0, size),
	}
}

func (o *writer) Fd() int {
	return o.i.Fd()
}

func (o *writer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	var total int

	// top the buffer up first
	if len(o.b) < cap(o.b) {
		available := min(cap(o.b)-len(o.b), len(p))
		o.b = append(o.b, p[:available]...)
		total = available
	}

	if total == len(p) {
		return total, nil
	}

	// buffer is full and more remains: flush once
	if len(o.b) == cap(o.b) {
		if err := o.flushAvailable(); err != nil {
			return total, err
		}
	}

	// a short underlying write left a tail in the buffer: keep
	// buffering to preserve ordering, the tail is retried on the next
	// flush
	if len(o.b) > 0 {
		available := min(cap(o.b)-len(o.b), len(p)-total)
		o.b = append(o.b, p[total:total+available]...)
		total += available
		return total, nil
	}

	// buffer is empty: large remainders bypass it
	for len(p)-total > cap(o.b) {
		n, err := o.i.Write(p[total : total+cap(o.b)])
		total += n

		if err != nil {
			return total, err
		}

		if n == 0 {
			return total, libiot.ErrClosed()
		}
	}

	if leftover := len(p) - total; leftover > 0 {
		o.b = append(o.b, p[total:]...)
		total += leftover
	}

	return total, nil
}

func (o *writer) Flush() (int, error) {
	var total int

	for len(o.b) > 0 {
		n, err := o.i.Write(o.b)
		o.shift(n)
		total += n

		if err != nil {
			return total, err
		}

		if n == 0 {
			return total, libiot.ErrClosed()
		}
	}

	return total, nil
}

func (o *writer) Size() int {
	return len(o.b)
}

func (o *writer) Capacity() int {
	return cap(o.b)
}

func (o *writer) Reset(other io.Writer) {
	if other != nil {
		o.i = libiot.WrapWriter(other)
	}

	o.b = o.b[:0]
}

// flushAvailable issues a single underlying write and shifts the
// short-written tail to the front of the buffer.
func (o *writer) flushAvailable() error {
	n, err := o.i.Write(o.b)
	o.shift(n)
	return err
}

// shift drops the n first bytes of the buffer.
func (o *writer) shift(n int) {
	if n >= len(o.b) {
		o.b = o.b[:0]
		return
	}

	left := copy(o.b, o.b[n:])
	o.b = o.b[:left]
}
