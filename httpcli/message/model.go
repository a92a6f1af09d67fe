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

// Package message provides the HTTP data model: method, status,
// protocol version, request and response. URL parsing is delegated to
// the net/url package.
package message

import (
	"io"
	"net/url"

	libhdr "github.com/drouarb/aionet/httpcli/header"
)

// Request is one HTTP request. On the client side Body is the bytes
// to send; on the server side it is the framed incoming body.
type Request struct {
	Method  Method
	Version Version
	URL     *url.URL
	Headers libhdr.Headers
	Body    io.Reader
}

// NewRequest returns a request for the given method and raw URL.
func NewRequest(method Method, rawURL string, body io.Reader) (*Request, error) {
	if !method.IsValid() {
		return nil, ErrorInvalidMethod.Error(nil)
	}

	u, err := url.Parse(rawURL)

	if err != nil {
		return nil, ErrorInvalidURL.Error(err)
	}

	return &Request{
		Method:  method,
		URL:     u,
		Headers: libhdr.New(),
		Body:    body,
	}, nil
}

// Host returns the "host:port" the request targets, defaulting the
// port to 80.
func (r *Request) Host() string {
	if r.URL == nil {
		return ""
	}

	host := r.URL.Host

	if r.URL.Port() == "" {
		host += ":80"
	}

	return host
}

// Target returns the request target of the start line: the encoded
// path and query, "/" when absent, or "*" as is.
func (r *Request) Target() string {
	if r.URL == nil {
		return "/"
	}

	if r.URL.Path == "*" {
		return "*"
	}

	target := r.URL.EscapedPath()

	if target == "" {
		target = "/"
	}

	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	return target
}

// Response is one HTTP response. On the client side Body yields the
// framed incoming body; its Close releases the underlying connection.
type Response struct {
	Version Version
	Status  Status
	Reason  string
	Headers libhdr.Headers
	Body    io.ReadCloser
}

// ContentLength returns the Content-Length header value, or -1 when
// absent or malformed.
func (r *Response) ContentLength() int64 {
	if r.Headers == nil {
		return -1
	}

	val, ok := r.Headers.Get("Content-Length")
	if !ok {
		return -1
	}

	var n int64

	for _, c := range val {
		if c < '0' || c > '9' {
			return -1
		}

		n = n*10 + int64(c-'0')
	}

	return n
}

// IsKeepAlive reports whether the connection may be reused after the
// body has been consumed.
func (r *Response) IsKeepAlive() bool {
	if r.Headers != nil {
		if val, ok := r.Headers.Get("Connection"); ok {
			return !equalFold(val, "close")
		}
	}

	// HTTP/1.0 defaults to close
	return !(r.Version.Major == 1 && r.Version.Minor == 0)
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]

		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}

		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}

		if ca != cb {
			return false
		}
	}

	return true
}
