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
	liberr "github.com/drouarb/aionet/errors"
)

const (
	// ErrorClosed marks end of stream on read or a closed sink on write.
	ErrorClosed liberr.CodeError = iota + liberr.MinPkgIOUtils
	// ErrorInvalidInstance marks a call on a nil or closed stream.
	ErrorInvalidInstance
	// ErrorInvalidWrite marks an unsupported piece given to WriteAll.
	ErrorInvalidWrite
)

func init() {
	liberr.RegisterIdFctMessage(ErrorClosed, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorClosed:
		return "stream is closed"
	case ErrorInvalidInstance:
		return "invalid stream instance"
	case ErrorInvalidWrite:
		return "invalid write piece type"
	}

	return ""
}
