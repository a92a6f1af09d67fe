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
	liberr "github.com/drouarb/aionet/errors"
)

const (
	// ErrorCreate marks a failure to create the kernel objects.
	ErrorCreate liberr.CodeError = iota + liberr.MinPkgReactor
	// ErrorShutdown marks a submission on a stopped reactor.
	ErrorShutdown
	// ErrorInvalidHandle marks a negative descriptor.
	ErrorInvalidHandle
	// ErrorInvalidOp marks an out of range poll operation.
	ErrorInvalidOp
	// ErrorRegister marks a failed kernel registration.
	ErrorRegister
)

func init() {
	liberr.RegisterIdFctMessage(ErrorCreate, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorCreate:
		return "cannot create reactor kernel objects"
	case ErrorShutdown:
		return "reactor is shut down"
	case ErrorInvalidHandle:
		return "invalid file descriptor"
	case ErrorInvalidOp:
		return "invalid poll operation"
	case ErrorRegister:
		return "cannot register operation with kernel queue"
	}

	return ""
}
