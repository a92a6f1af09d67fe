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

package http11_test

import (
	"bytes"
	"io"
	"strings"

	liberr "github.com/drouarb/aionet/errors"
	libh11 "github.com/drouarb/aionet/httpcli/http11"
	libmsg "github.com/drouarb/aionet/httpcli/message"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Request Codec", func() {
	Context("encoding", func() {
		It("should write the start line, a synthesized host and the header block", func() {
			req, err := libmsg.NewRequest(libmsg.MethodGet, "http://example.com/path?q=1", nil)
			Expect(err).ToNot(HaveOccurred())

			req.Headers.Set("Accept", "*/*")

			var buf bytes.Buffer
			Expect(libh11.EncodeRequest(&buf, req)).ToNot(HaveOccurred())

			raw := buf.String()
			Expect(raw).To(HavePrefix("GET /path?q=1 HTTP/1.1\r\n"))
			Expect(raw).To(ContainSubstring("Host: example.com\r\n"))
			Expect(raw).To(ContainSubstring("Accept: */*\r\n"))
			Expect(raw).To(HaveSuffix("\r\n\r\n"))
		})

		It("should frame a chunked body and terminate it", func() {
			req, err := libmsg.NewRequest(libmsg.MethodPost, "http://example.com/", strings.NewReader("payload"))
			Expect(err).ToNot(HaveOccurred())

			req.Headers.Set("Transfer-Encoding", "chunked")

			var buf bytes.Buffer
			Expect(libh11.EncodeRequest(&buf, req)).ToNot(HaveOccurred())

			Expect(buf.String()).To(ContainSubstring("7\r\npayload\r\n"))
			Expect(buf.String()).To(HaveSuffix("0\r\n\r\n"))
		})

		It("should refuse an unsupported protocol version", func() {
			req, err := libmsg.NewRequest(libmsg.MethodGet, "http://example.com/", nil)
			Expect(err).ToNot(HaveOccurred())

			req.Version = libmsg.Version20

			var buf bytes.Buffer
			err = libh11.EncodeRequest(&buf, req)
			Expect(liberr.Has(err, libh11.ErrorUnsupportedProtocol)).To(BeTrue())
		})
	})

	Context("decoding", func() {
		It("should parse the start line, headers and bounded body", func() {
			raw := "POST /submit HTTP/1.1\r\n" +
				"Host: example.com\r\n" +
				"Content-Length: 5\r\n" +
				"\r\n" +
				"hellotrailing"

			req, err := libh11.DecodeRequest(strings.NewReader(raw), 0)
			Expect(err).ToNot(HaveOccurred())
			Expect(req.Method).To(Equal(libmsg.MethodPost))
			Expect(req.URL.Path).To(Equal("/submit"))

			host, ok := req.Headers.Get("host")
			Expect(ok).To(BeTrue())
			Expect(host).To(Equal("example.com"))

			Expect(bodyString(req.Body)).To(Equal("hello"))
		})

		It("should pass an asterisk target through", func() {
			req, err := libh11.DecodeRequest(strings.NewReader("OPTIONS * HTTP/1.1\r\n\r\n"), 0)
			Expect(err).ToNot(HaveOccurred())
			Expect(req.URL.Path).To(Equal("*"))
		})

		It("should refuse a start line with missing tokens", func() {
			_, err := libh11.DecodeRequest(strings.NewReader("GET /\r\n\r\n"), 0)
			Expect(liberr.Has(err, libh11.ErrorMalformedStartLine)).To(BeTrue())
		})

		It("should refuse an unknown method", func() {
			_, err := libh11.DecodeRequest(strings.NewReader("FETCH / HTTP/1.1\r\n\r\n"), 0)
			Expect(liberr.Has(err, libh11.ErrorMalformedStartLine)).To(BeTrue())
		})

		It("should refuse the expect header", func() {
			raw := "POST / HTTP/1.1\r\nExpect: 100-continue\r\n\r\n"

			_, err := libh11.DecodeRequest(strings.NewReader(raw), 0)
			Expect(liberr.Has(err, libh11.ErrorUnsupportedExpect)).To(BeTrue())
		})
	})

	Context("round trip", func() {
		It("should decode an equivalent request from its own encoding", func() {
			req, err := libmsg.NewRequest(libmsg.MethodPut, "http://example.com/items/7?full=1", strings.NewReader("content"))
			Expect(err).ToNot(HaveOccurred())

			req.Headers.
				Set("Content-Length", "7").
				Add("Accept", "text/plain").
				Add("Accept", "text/html")

			var buf bytes.Buffer
			Expect(libh11.EncodeRequest(&buf, req)).ToNot(HaveOccurred())

			got, err := libh11.DecodeRequest(&buf, 0)
			Expect(err).ToNot(HaveOccurred())

			Expect(got.Method).To(Equal(req.Method))
			Expect(got.Target()).To(Equal(req.Target()))
			Expect(got.Headers.GetAll("Accept")).To(Equal([]string{"text/plain", "text/html"}))
			Expect(bodyString(got.Body)).To(Equal("content"))
		})
	})
})

var _ = Describe("Response Codec", func() {
	Context("decoding", func() {
		It("should parse status, reason, headers and bounded body", func() {
			raw := "HTTP/1.1 200 OK\r\n" +
				"Content-Length: 11\r\n" +
				"\r\n" +
				"hello world"

			rsp, err := libh11.DecodeResponse(strings.NewReader(raw), 0)
			Expect(err).ToNot(HaveOccurred())
			Expect(rsp.Status).To(Equal(libmsg.StatusOK))
			Expect(rsp.Reason).To(Equal("OK"))
			Expect(rsp.ContentLength()).To(Equal(int64(11)))
			Expect(bodyString(rsp.Body)).To(Equal("hello world"))
		})

		It("should tolerate whitespace around header values", func() {
			raw := "HTTP/1.1 200 OK\r\nX-Pad:   spaced out \t\r\nContent-Length: 0\r\n\r\n"

			rsp, err := libh11.DecodeResponse(strings.NewReader(raw), 0)
			Expect(err).ToNot(HaveOccurred())

			val, ok := rsp.Headers.Get("X-Pad")
			Expect(ok).To(BeTrue())
			Expect(val).To(Equal("spaced out"))
		})

		It("should yield a chunked body and its end of stream", func() {
			raw := "HTTP/1.1 200 OK\r\n" +
				"Transfer-Encoding: chunked\r\n" +
				"\r\n" +
				"5\r\nhello\r\n6\r\n world\r\n0\r\n\r\n"

			rsp, err := libh11.DecodeResponse(strings.NewReader(raw), 0)
			Expect(err).ToNot(HaveOccurred())
			Expect(bodyString(rsp.Body)).To(Equal("hello world"))
		})

		It("should decode a zero length body when no framing header is given", func() {
			rsp, err := libh11.DecodeResponse(strings.NewReader("HTTP/1.1 204 No Content\r\n\r\n"), 0)
			Expect(err).ToNot(HaveOccurred())
			Expect(bodyString(rsp.Body)).To(Equal(""))
		})

		It("should refuse a transfer encoding other than chunked", func() {
			raw := "HTTP/1.1 200 OK\r\nTransfer-Encoding: gzip\r\n\r\n"

			_, err := libh11.DecodeResponse(strings.NewReader(raw), 0)
			Expect(liberr.Has(err, libh11.ErrorUnsupportedEncoding)).To(BeTrue())
		})

		It("should refuse a non digit content length", func() {
			raw := "HTTP/1.1 200 OK\r\nContent-Length: 12a\r\n\r\n"

			_, err := libh11.DecodeResponse(strings.NewReader(raw), 0)
			Expect(liberr.Has(err, libh11.ErrorInvalidLength)).To(BeTrue())
		})

		It("should refuse a header line without a colon", func() {
			raw := "HTTP/1.1 200 OK\r\nNoColonHere\r\n\r\n"

			_, err := libh11.DecodeResponse(strings.NewReader(raw), 0)
			Expect(liberr.Has(err, libh11.ErrorMalformedHeader)).To(BeTrue())
		})

		It("should refuse folded header lines", func() {
			raw := "HTTP/1.1 200 OK\r\nX-A: 1\r\n  folded\r\n\r\n"

			_, err := libh11.DecodeResponse(strings.NewReader(raw), 0)
			Expect(liberr.Has(err, libh11.ErrorMalformedHeader)).To(BeTrue())
		})

		It("should bound header line length", func() {
			raw := "HTTP/1.1 200 OK\r\nX-Big: " + strings.Repeat("a", 100) + "\r\n\r\n"

			_, err := libh11.DecodeResponse(strings.NewReader(raw), 32)
			Expect(liberr.Has(err, libh11.ErrorLineTooLong)).To(BeTrue())
		})
	})

	Context("round trip", func() {
		It("should decode an equivalent response from its own encoding", func() {
			src := &libmsg.Response{
				Status: libmsg.StatusAccepted,
				Body:   io.NopCloser(strings.NewReader("queued")),
			}

			src.Headers = newHeaders("Content-Length", "6", "X-Job", "42")

			var buf bytes.Buffer
			Expect(libh11.EncodeResponse(&buf, src)).ToNot(HaveOccurred())

			got, err := libh11.DecodeResponse(&buf, 0)
			Expect(err).ToNot(HaveOccurred())
			Expect(got.Status).To(Equal(libmsg.StatusAccepted))
			Expect(got.Reason).To(Equal("Accepted"))

			job, ok := got.Headers.Get("X-Job")
			Expect(ok).To(BeTrue())
			Expect(job).To(Equal("42"))

			Expect(bodyString(got.Body)).To(Equal("queued"))
		})
	})
})
