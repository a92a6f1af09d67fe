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

package chunk

import (
	"io"
	"strconv"

	libiot "github.com/drouarb/aionet/ioutils"
)

// maxChunkSize bounds the payload of a single emitted chunk so the
// decimal size header stays within eight digits.
const maxChunkSize = 99999999

var crlf = []byte("\r\n")

// Writer encodes a chunked stream. Each Write emits one or more chunks
// whose payload sizes sum to the write length. Close emits the
// zero-size terminator; writing after Close fails.
type Writer interface {
	libiot.Writer
	io.Closer
}

type writer struct {
	i      libiot.Writer
	closed bool
}

// NewWriter returns a chunked Writer over w.
func NewWriter(w io.Writer) Writer {
	return &writer{
		i: libiot.WrapWriter(w),
	}
}

func (o *writer) Fd() int {
	return o.i.Fd()
}

func (o *writer) Write(p []byte) (int, error) {
	if o.closed {
		return 0, ErrorWriterClosed.Error(nil)
	}

	var total int

	for total < len(p) {
		amount := len(p) - total
		if amount > maxChunkSize {
			amount = maxChunkSize
		}

		if _, err := libiot.WriteAll(o.i, strconv.Itoa(amount), crlf); err != nil {
			return total, err
		}

		n, err := libiot.WriteAll(o.i, p[total:total+amount])
		total += n

		if err != nil {
			return total, err
		}

		if _, err = libiot.WriteAll(o.i, crlf); err != nil {
			return total, err
		}
	}

	return total, nil
}

// Close terminates the stream with the zero-size chunk. It is
// idempotent.
func (o *writer) Close() error {
	if o.closed {
		return nil
	}

	o.closed = true

	_, err := libiot.WriteAll(o.i, "0", crlf, crlf)
	return err
}
