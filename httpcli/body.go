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

package httpcli

import (
	"io"

	libiot "github.com/drouarb/aionet/ioutils"
	libpol "github.com/drouarb/aionet/pool"
)

// drainBound caps how much of an unread body Close will consume to
// keep the connection reusable; larger leftovers cost less to redial.
const drainBound = 256 * 1024

// body ties the response body to the borrowed connection: the
// connection goes back to its pool only once the body is closed.
type body struct {
	r     io.ReadCloser
	pc    *cnx
	pl    libpol.Pool[*cnx]
	reuse bool
	done  bool
}

func (b *body) Read(p []byte) (int, error) {
	if b.done {
		return 0, libiot.ErrClosed()
	}

	return b.r.Read(p)
}

func (b *body) Close() error {
	if b.done {
		return nil
	}

	b.done = true

	reuse := b.reuse && b.drain()

	if !reuse {
		b.pc.reset()
	}

	b.pl.Put(b.pc)

	return nil
}

// drain consumes the framed remainder of the body so that the next
// exchange starts on a clean stream. It gives up past drainBound.
func (b *body) drain() bool {
	var (
		buf   [4096]byte
		total int
	)

	for total < drainBound {
		n, err := b.r.Read(buf[:])
		total += n

		if err != nil {
			return libiot.IsClosed(err)
		}

		if n == 0 {
			return true
		}
	}

	return false
}
