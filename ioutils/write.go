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

package ioutils

import (
	"errors"
	"io"

	liberr "github.com/drouarb/aionet/errors"
)

// WriteFunc is a callable piece for WriteAll, writing itself onto the
// given writer.
type WriteFunc func(w io.Writer) (int, error)

// ErrClosed returns a new closed-stream error carrying io.EOF as
// parent, so that both liberr.IsCode and errors.Is(err, io.EOF) match.
func ErrClosed() liberr.Error {
	return ErrorClosed.Error(io.EOF)
}

// IsClosed reports whether the given error marks a clean end of
// stream, either by code or by wrapping io.EOF.
func IsClosed(err error) bool {
	if err == nil {
		return false
	} else if liberr.Has(err, ErrorClosed) {
		return true
	}

	return errors.Is(err, io.EOF)
}

// WriteAll writes each given piece to the writer in order, summing the
// written counts and stopping on the first error. Supported pieces are
// []byte, string, byte, rune, and WriteFunc. Counts are aggregated
// even for the failing piece.
func WriteAll(w io.Writer, pieces ...interface{}) (int, error) {
	var total int

	for _, piece := range pieces {
		var (
			n   int
			err error
		)

		switch v := piece.(type) {
		case nil:
			continue
		case []byte:
			n, err = writeFull(w, v)
		case string:
			n, err = writeFull(w, []byte(v))
		case byte:
			n, err = writeFull(w, []byte{v})
		case rune:
			n, err = writeFull(w, []byte(string(v)))
		case WriteFunc:
			n, err = v(w)
		case func(w io.Writer) (int, error):
			n, err = v(w)
		default:
			return total, ErrorInvalidWrite.Error(nil)
		}

		total += n

		if err != nil {
			return total, err
		}
	}

	return total, nil
}

// Copy streams src into dst until end of stream, treating a closed
// source as clean completion. Short writes are retried.
func Copy(dst io.Writer, src io.Reader) (int64, error) {
	var (
		buf   = make([]byte, 32*1024)
		total int64
	)

	for {
		n, err := src.Read(buf)

		if n > 0 {
			if w, e := writeFull(dst, buf[:n]); e != nil {
				return total + int64(w), e
			}

			total += int64(n)
		}

		if err != nil {
			if IsClosed(err) {
				return total, nil
			}

			return total, err
		}
	}
}

// writeFull loops over short writes until the whole buffer is written.
func writeFull(w io.Writer, p []byte) (int, error) {
	var total int

	for total < len(p) {
		n, err := w.Write(p[total:])
		total += n

		if err != nil {
			return total, err
		}

		if n == 0 {
			return total, ErrClosed()
		}
	}

	return total, nil
}
