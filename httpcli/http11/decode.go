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
	"io"
	"net/url"
	"strings"

	libhdr "github.com/drouarb/aionet/httpcli/header"
	libmsg "github.com/drouarb/aionet/httpcli/message"
	libchk "github.com/drouarb/aionet/ioutils/chunk"
	liblim "github.com/drouarb/aionet/ioutils/limit"
)

// DefaultMaxHeaderBytes bounds a single decoded line when the caller
// gives no bound.
const DefaultMaxHeaderBytes = 8192

// DecodeResponse reads one response head off the reader and returns
// the response with its body framed per the headers: Content-Length
// through a limit reader, chunked transfer encoding through a chunk
// reader, zero length otherwise. The body shares the given reader.
func DecodeResponse(r io.Reader, maxHeader int) (*libmsg.Response, error) {
	line, err := readLine(r, maxHeader)
	if err != nil {
		return nil, err
	}

	version, rest, ok := cutToken(line)
	if !ok {
		return nil, ErrorMalformedStartLine.Error(nil)
	}

	rsp := &libmsg.Response{}

	if rsp.Version, err = libmsg.ParseVersion(version); err != nil {
		return nil, ErrorMalformedStartLine.Error(err)
	}

	if err = checkVersion(rsp.Version); err != nil {
		return nil, err
	}

	// the reason phrase may hold spaces, or be absent entirely
	code, reason, _ := cutToken(rest)

	if rsp.Status, err = libmsg.ParseStatus(code); err != nil {
		return nil, ErrorMalformedStartLine.Error(err)
	}

	rsp.Reason = reason

	if rsp.Headers, err = decodeHeaders(r, maxHeader); err != nil {
		return nil, err
	}

	if rsp.Body, err = decodeBody(r, rsp.Headers); err != nil {
		return nil, err
	}

	return rsp, nil
}

// DecodeRequest reads one request head off the reader. The Expect
// header is refused rather than half-supported.
func DecodeRequest(r io.Reader, maxHeader int) (*libmsg.Request, error) {
	line, err := readLine(r, maxHeader)
	if err != nil {
		return nil, err
	}

	method, rest, ok := cutToken(line)
	if !ok {
		return nil, ErrorMalformedStartLine.Error(nil)
	}

	target, version, ok := cutToken(rest)
	if !ok || strings.IndexByte(version, ' ') >= 0 {
		return nil, ErrorMalformedStartLine.Error(nil)
	}

	req := &libmsg.Request{}

	if req.Method = libmsg.ParseMethod(method); !req.Method.IsValid() {
		return nil, ErrorMalformedStartLine.Error(nil)
	}

	if req.Version, err = libmsg.ParseVersion(version); err != nil {
		return nil, ErrorMalformedStartLine.Error(err)
	}

	if err = checkVersion(req.Version); err != nil {
		return nil, err
	}

	if target == "*" {
		req.URL = &url.URL{Path: "*"}
	} else if req.URL, err = url.ParseRequestURI(target); err != nil {
		req.URL = &url.URL{Path: "/"}
	}

	if req.Headers, err = decodeHeaders(r, maxHeader); err != nil {
		return nil, err
	}

	if req.Headers.Has("Expect") {
		return nil, ErrorUnsupportedExpect.Error(nil)
	}

	body, err := decodeBody(r, req.Headers)
	if err != nil {
		return nil, err
	}

	req.Body = body

	return req, nil
}

// decodeHeaders reads header lines up to the empty line. Names are
// stored canonically cased; optional whitespace around values is
// trimmed; folded continuation lines are refused.
func decodeHeaders(r io.Reader, maxHeader int) (libhdr.Headers, error) {
	hdrs := libhdr.New()

	for {
		line, err := readLine(r, maxHeader)
		if err != nil {
			return nil, err
		}

		if line == "" {
			return hdrs, nil
		}

		if line[0] == ' ' || line[0] == '\t' {
			// obs-fold is not supported
			return nil, ErrorMalformedHeader.Error(nil)
		}

		idx := strings.IndexByte(line, ':')
		if idx <= 0 {
			return nil, ErrorMalformedHeader.Error(nil)
		}

		name := line[:idx]

		if strings.IndexByte(name, ' ') >= 0 || strings.IndexByte(name, '\t') >= 0 {
			return nil, ErrorMalformedHeader.Error(nil)
		}

		hdrs.Add(name, strings.Trim(line[idx+1:], " \t"))
	}
}

// decodeBody wraps the remaining stream per the framing headers.
func decodeBody(r io.Reader, hdrs libhdr.Headers) (io.ReadCloser, error) {
	if val, found := hdrs.Get("Transfer-Encoding"); found {
		if !strings.EqualFold(val, "chunked") {
			return nil, ErrorUnsupportedEncoding.Error(nil)
		}

		return io.NopCloser(libchk.NewReader(r)), nil
	}

	if val, found := hdrs.Get("Content-Length"); found {
		length, err := parseLength(val)
		if err != nil {
			return nil, err
		}

		return io.NopCloser(liblim.New(r, length)), nil
	}

	return io.NopCloser(liblim.New(r, 0)), nil
}

func parseLength(s string) (uint64, error) {
	if s == "" {
		return 0, ErrorInvalidLength.Error(nil)
	}

	var n uint64

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, ErrorInvalidLength.Error(nil)
		}

		n = n*10 + uint64(s[i]-'0')
	}

	return n, nil
}

// readLine reads one CRLF terminated line, excluding the terminator,
// bounded by maxHeader bytes.
func readLine(r io.Reader, maxHeader int) (string, error) {
	if maxHeader <= 0 {
		maxHeader = DefaultMaxHeaderBytes
	}

	var (
		buf = make([]byte, 0, 64)
		one [1]byte
	)

	for {
		n, err := r.Read(one[:])

		if n == 0 && err != nil {
			return "", err
		} else if n == 0 {
			continue
		}

		if one[0] == '\n' {
			if len(buf) == 0 || buf[len(buf)-1] != '\r' {
				return "", ErrorMalformedHeader.Error(nil)
			}

			return string(buf[:len(buf)-1]), nil
		}

		buf = append(buf, one[0])

		if len(buf) > maxHeader {
			return "", ErrorLineTooLong.Error(nil)
		}
	}
}

// cutToken splits the first space separated token off the line.
func cutToken(s string) (token, rest string, ok bool) {
	idx := strings.IndexByte(s, ' ')

	if idx < 0 {
		return s, "", s != ""
	}

	return s[:idx], s[idx+1:], idx > 0
}
