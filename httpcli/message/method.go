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

package message

import (
	"strings"
)

// Method is an HTTP request method.
type Method uint8

const (
	// MethodNone is the zero value, never valid on the wire.
	MethodNone Method = iota
	MethodConnect
	MethodDelete
	MethodGet
	MethodHead
	MethodOptions
	MethodPatch
	MethodPost
	MethodPut
	MethodTrace
)

// String returns the wire form of the method.
func (m Method) String() string {
	switch m {
	case MethodConnect:
		return "CONNECT"
	case MethodDelete:
		return "DELETE"
	case MethodGet:
		return "GET"
	case MethodHead:
		return "HEAD"
	case MethodOptions:
		return "OPTIONS"
	case MethodPatch:
		return "PATCH"
	case MethodPost:
		return "POST"
	case MethodPut:
		return "PUT"
	case MethodTrace:
		return "TRACE"
	}

	return "NONE"
}

// IsValid reports whether the method can be sent on the wire.
func (m Method) IsValid() bool {
	return m > MethodNone && m <= MethodTrace
}

// ParseMethod returns the method matching the given token, case
// insensitively, or MethodNone.
func ParseMethod(s string) Method {
	switch strings.ToUpper(s) {
	case "CONNECT":
		return MethodConnect
	case "DELETE":
		return MethodDelete
	case "GET":
		return MethodGet
	case "HEAD":
		return MethodHead
	case "OPTIONS":
		return MethodOptions
	case "PATCH":
		return MethodPatch
	case "POST":
		return MethodPost
	case "PUT":
		return MethodPut
	case "TRACE":
		return MethodTrace
	}

	return MethodNone
}
