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

// Package chunk implements the HTTP/1.1 chunked transfer framing as a
// reader / writer pair over the module's stream contracts. The reader
// yields payload bytes only; the writer emits one chunk per write and
// leaves the zero-size terminator to the caller's final Close.
package chunk

import (
	"io"

	libiot "github.com/drouarb/aionet/ioutils"
)

// Reader decodes a chunked stream. Framing bytes never appear in the
// output buffer. A zero-size chunk terminates the stream: every
// subsequent read reports a closed stream.
type Reader interface {
	libiot.Reader
}

type reader struct {
	i    libiot.Reader
	left uint64 // remaining payload bytes of the current chunk
	done bool
}

// NewReader returns a chunked Reader over r.
func NewReader(r io.Reader) Reader {
	return &reader{
		i: libiot.WrapReader(r),
	}
}

func (o *reader) Fd() int {
	return o.i.Fd()
}

func (o *reader) Read(p []byte) (int, error) {
	if o.done {
		return 0, libiot.ErrClosed()
	}

	var total int

	for total < len(p) {
		if o.left == 0 {
			if err := o.nextChunkSize(); err != nil {
				return total, err
			}

			// the final chunk has size zero
			if o.left == 0 {
				if err := o.endOfChunk(); err != nil {
					return total, err
				}

				o.done = true

				if total == 0 {
					return 0, libiot.ErrClosed()
				}

				return total, nil
			}
		}

		amount := uint64(len(p) - total)
		if amount > o.left {
			amount = o.left
		}

		n, err := o.i.Read(p[total : total+int(amount)])
		o.left -= uint64(n)
		total += n

		if err != nil {
			return total, err
		}

		if o.left == 0 {
			if err = o.endOfChunk(); err != nil {
				return total, err
			}
		}
	}

	return total, nil
}

// nextChunkSize parses the ASCII decimal size line up to its CRLF.
func (o *reader) nextChunkSize() error {
	o.left = 0

	for {
		c, err := o.readByte()
		if err != nil {
			return err
		}

		switch {
		case c >= '0' && c <= '9':
			o.left = o.left*10 + uint64(c-'0')

		case c == '\r':
			if c, err = o.readByte(); err != nil {
				return err
			} else if c != '\n' {
				return ErrorIllegalSequence.Error(nil)
			}

			return nil

		default:
			return ErrorIllegalSequence.Error(nil)
		}
	}
}

// endOfChunk consumes the CRLF closing the current chunk.
func (o *reader) endOfChunk() error {
	var end [2]byte

	for i := 0; i < len(end); {
		n, err := o.i.Read(end[i:])
		i += n

		if err != nil {
			return err
		}
	}

	if end[0] != '\r' || end[1] != '\n' {
		return ErrorIllegalSequence.Error(nil)
	}

	return nil
}

func (o *reader) readByte() (byte, error) {
	var b [1]byte

	for {
		n, err := o.i.Read(b[:])

		if n > 0 {
			return b[0], nil
		}

		if err != nil {
			return 0, err
		}
	}
}
