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

// Package ioutils defines the byte stream contracts shared by the whole
// module, plus small composition helpers over them.
//
// The contracts follow the standard io.Reader / io.Writer semantics:
// short reads and writes are legal and do not imply an error, callers
// of Write must loop (or use WriteAll). Streams of this module report
// end of stream on a non-empty read buffer with ErrClosed (see
// error.go), which carries io.EOF as parent. Readers adapted through
// WrapReader, and the wrappers stacked over them, pass the wrapped
// reader's errors through unchanged, so a bare io.EOF can surface
// there; IsClosed matches both forms.
//
// Implementations backed by an OS handle expose it read-only through
// Fd() for readiness registration; in-memory implementations return
// InvalidFd.
package ioutils

import (
	"io"
)

// InvalidFd is the file descriptor reported by stream implementations
// that are not backed by an OS handle.
const InvalidFd = -1

// Handler exposes the OS handle backing a stream, if any.
type Handler interface {
	// Fd returns the underlying OS file descriptor, or InvalidFd.
	Fd() int
}

// Reader is the module's byte source contract.
type Reader interface {
	io.Reader
	Handler
}

// Writer is the module's byte sink contract.
type Writer interface {
	io.Writer
	Handler
}

// ReadCloser combines Reader with idempotent closing.
type ReadCloser interface {
	Reader
	io.Closer
}

// WriteCloser combines Writer with idempotent closing.
type WriteCloser interface {
	Writer
	io.Closer
}

// ReadWriter combines both stream directions over one handle.
type ReadWriter interface {
	Reader
	Writer
}

type rdr struct {
	r io.Reader
}

func (o *rdr) Read(p []byte) (n int, err error) {
	return o.r.Read(p)
}

func (o *rdr) Fd() int {
	return InvalidFd
}

// WrapReader adapts any io.Reader into a Reader with no OS handle.
// A Reader is returned unchanged.
func WrapReader(r io.Reader) Reader {
	if v, ok := r.(Reader); ok {
		return v
	}

	return &rdr{r: r}
}

type wrt struct {
	w io.Writer
}

func (o *wrt) Write(p []byte) (n int, err error) {
	return o.w.Write(p)
}

func (o *wrt) Fd() int {
	return InvalidFd
}

// WrapWriter adapts any io.Writer into a Writer with no OS handle.
// A Writer is returned unchanged.
func WrapWriter(w io.Writer) Writer {
	if v, ok := w.(Writer); ok {
		return v
	}

	return &wrt{w: w}
}
