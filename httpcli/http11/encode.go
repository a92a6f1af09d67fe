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

// Package http11 provides the HTTP/1.1 wire codec over the module's
// stream contracts: strict on output, permissive about optional
// whitespace on input. Bodies are framed by Content-Length through a
// limit reader or by chunked transfer encoding through the chunk
// package; anything else decodes as a zero length body.
package http11

import (
	"io"
	"strings"

	libhdr "github.com/drouarb/aionet/httpcli/header"
	libmsg "github.com/drouarb/aionet/httpcli/message"
	libiot "github.com/drouarb/aionet/ioutils"
	libchk "github.com/drouarb/aionet/ioutils/chunk"
)

var crlf = []byte("\r\n")

// EncodeRequest writes the request start line, headers and body. A
// Host header is synthesized from the URL when absent. A chunked
// Transfer-Encoding header routes the body through a chunked writer,
// terminator included.
func EncodeRequest(w io.Writer, req *libmsg.Request) error {
	if req == nil || !req.Method.IsValid() {
		return libmsg.ErrorInvalidMethod.Error(nil)
	}

	if err := checkVersion(req.Version); err != nil {
		return err
	}

	if _, err := libiot.WriteAll(w,
		req.Method.String(), byte(' '),
		req.Target(), byte(' '),
		req.Version.String(), crlf,
	); err != nil {
		return err
	}

	if req.URL != nil && (req.Headers == nil || !req.Headers.Has("Host")) {
		if _, err := libiot.WriteAll(w, "Host: ", req.URL.Host, crlf); err != nil {
			return err
		}
	}

	if err := encodeHeaders(w, req.Headers); err != nil {
		return err
	}

	return encodeBody(w, req.Headers, req.Body)
}

// EncodeResponse writes the response start line, headers and body.
func EncodeResponse(w io.Writer, rsp *libmsg.Response) error {
	if rsp == nil || !rsp.Status.IsValid() {
		return libmsg.ErrorInvalidStatus.Error(nil)
	}

	if err := checkVersion(rsp.Version); err != nil {
		return err
	}

	reason := rsp.Reason
	if reason == "" {
		reason = rsp.Status.Reason()
	}

	if _, err := libiot.WriteAll(w,
		rsp.Version.String(), byte(' '),
		rsp.Status.String(), byte(' '),
		reason, crlf,
	); err != nil {
		return err
	}

	if err := encodeHeaders(w, rsp.Headers); err != nil {
		return err
	}

	return encodeBody(w, rsp.Headers, rsp.Body)
}

func checkVersion(v libmsg.Version) error {
	if v.IsZero() || v == libmsg.Version10 || v == libmsg.Version11 {
		return nil
	}

	return ErrorUnsupportedProtocol.Error(nil)
}

func encodeHeaders(w io.Writer, hdrs libhdr.Headers) error {
	var err error

	if hdrs != nil {
		hdrs.Walk(func(key string, vals []string) bool {
			for _, val := range vals {
				if _, err = libiot.WriteAll(w, key, ": ", val, crlf); err != nil {
					return false
				}
			}

			return true
		})
	}

	if err != nil {
		return err
	}

	_, err = libiot.WriteAll(w, crlf)
	return err
}

// encodeBody streams the body after the header block, chunk framed
// when the headers say so.
func encodeBody(w io.Writer, hdrs libhdr.Headers, body io.Reader) error {
	if body == nil {
		return nil
	}

	if isChunked(hdrs) {
		cw := libchk.NewWriter(w)

		if _, err := libiot.Copy(cw, body); err != nil {
			return err
		}

		return cw.Close()
	}

	_, err := libiot.Copy(w, body)
	return err
}

func isChunked(hdrs libhdr.Headers) bool {
	if hdrs == nil {
		return false
	}

	if val, found := hdrs.Get("Transfer-Encoding"); found {
		return strings.EqualFold(val, "chunked")
	}

	return false
}
