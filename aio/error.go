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

package aio

import (
	"errors"
	"io"

	liberr "github.com/drouarb/aionet/errors"
	"golang.org/x/sys/unix"
)

const (
	// ErrorClosed marks a peer close, a shut down descriptor or an end
	// of file condition.
	ErrorClosed liberr.CodeError = iota + liberr.MinPkgAio
	// ErrorTimedOut marks a reactor deadline that fired.
	ErrorTimedOut
	// ErrorWouldBlock marks a non-blocking syscall that must be
	// retried after readiness; it is never surfaced to callers.
	ErrorWouldBlock
	// ErrorCancelled marks an operation aborted by shutdown.
	ErrorCancelled
	// ErrorInvalidArgument marks a misuse of the runtime API.
	ErrorInvalidArgument
	// ErrorSystem wraps any other OS error.
	ErrorSystem
)

func init() {
	liberr.RegisterIdFctMessage(ErrorClosed, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorClosed:
		return "closed"
	case ErrorTimedOut:
		return "timed out"
	case ErrorWouldBlock:
		return "operation would block"
	case ErrorCancelled:
		return "cancelled"
	case ErrorInvalidArgument:
		return "invalid argument"
	case ErrorSystem:
		return "system error"
	}

	return ""
}

// ErrClosed returns a closed error also matching errors.Is with io.EOF.
func ErrClosed() liberr.Error {
	return ErrorClosed.Error(io.EOF)
}

// ErrSystem wraps an OS error, mapping the errno values implying a
// half-closed or reset connection to the dedicated closed condition.
func ErrSystem(err error) liberr.Error {
	if err == nil {
		return nil
	}

	var errno unix.Errno
	if errors.As(err, &errno) {
		switch errno {
		case unix.EPIPE, unix.ECONNRESET, unix.ECONNABORTED,
			unix.ECONNREFUSED, unix.ENETDOWN, unix.ENETRESET,
			unix.ENETUNREACH, unix.EHOSTUNREACH, unix.ENOTCONN,
			unix.ESHUTDOWN:
			return ErrorClosed.Error(err)
		case unix.EAGAIN:
			return ErrorWouldBlock.Error(err)
		}
	}

	return ErrorSystem.Error(err)
}

// IsWouldBlock reports whether the error is the suppressed
// would-block condition.
func IsWouldBlock(err error) bool {
	if err == nil {
		return false
	} else if liberr.Has(err, ErrorWouldBlock) {
		return true
	}

	return errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK)
}

// IsClosed reports whether the error marks a closed stream.
func IsClosed(err error) bool {
	if err == nil {
		return false
	} else if liberr.Has(err, ErrorClosed) {
		return true
	}

	return errors.Is(err, io.EOF)
}

// IsTimeout reports whether the error marks a fired deadline.
func IsTimeout(err error) bool {
	return liberr.Has(err, ErrorTimedOut)
}

// IsCancelled reports whether the error marks a shutdown abort.
func IsCancelled(err error) bool {
	return liberr.Has(err, ErrorCancelled)
}
