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

// Package limit provides a reader bounded to a fixed byte budget.
// Once the budget is spent every read reports a closed stream, no
// matter the state of the underlying reader.
package limit

import (
	"io"

	libiot "github.com/drouarb/aionet/ioutils"
)

// Reader bounds the total number of bytes readable from the wrapped
// reader.
type Reader interface {
	libiot.Reader

	// Remain returns the number of bytes still readable.
	Remain() uint64
}

type reader struct {
	i libiot.Reader
	r uint64
}

// New returns a Reader yielding at most max bytes from r.
func New(r io.Reader, max uint64) Reader {
	return &reader{
		i: libiot.WrapReader(r),
		r: max,
	}
}

func (o *reader) Fd() int {
	return o.i.Fd()
}

func (o *reader) Remain() uint64 {
	return o.r
}

func (o *reader) Read(p []byte) (int, error) {
	if o.r == 0 {
		return 0, libiot.ErrClosed()
	}

	if uint64(len(p)) > o.r {
		p = p[:o.r]
	}

	n, err := o.i.Read(p)
	o.r -= uint64(n)

	return n, err
}
