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

package http11

import (
	liberr "github.com/drouarb/aionet/errors"
)

const (
	// ErrorMalformedStartLine marks a start line that does not split
	// into its three tokens.
	ErrorMalformedStartLine liberr.CodeError = iota + liberr.MinPkgHttp11
	// ErrorMalformedHeader marks a header line without a colon, an
	// empty name, or folding.
	ErrorMalformedHeader
	// ErrorLineTooLong marks a line above the configured header byte
	// bound.
	ErrorLineTooLong
	// ErrorUnsupportedProtocol marks a version this codec cannot
	// speak.
	ErrorUnsupportedProtocol
	// ErrorUnsupportedEncoding marks a Transfer-Encoding other than
	// chunked.
	ErrorUnsupportedEncoding
	// ErrorUnsupportedExpect marks an Expect header, which this codec
	// refuses rather than guesses.
	ErrorUnsupportedExpect
	// ErrorInvalidLength marks a Content-Length with a non digit.
	ErrorInvalidLength
)

func init() {
	liberr.RegisterIdFctMessage(ErrorMalformedStartLine, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorMalformedStartLine:
		return "malformed start line"
	case ErrorMalformedHeader:
		return "malformed header line"
	case ErrorLineTooLong:
		return "header line exceeds configured bound"
	case ErrorUnsupportedProtocol:
		return "unsupported protocol version"
	case ErrorUnsupportedEncoding:
		return "unsupported transfer encoding"
	case ErrorUnsupportedExpect:
		return "expect header is not supported"
	case ErrorInvalidLength:
		return "invalid content length"
	}

	return ""
}
