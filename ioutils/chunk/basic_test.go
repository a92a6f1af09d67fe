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

package chunk_test

import (
	"bytes"
	"strings"

	liberr "github.com/drouarb/aionet/errors"
	libiot "github.com/drouarb/aionet/ioutils"
	libchk "github.com/drouarb/aionet/ioutils/chunk"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Chunked Reader", func() {
	Context("a two chunk stream", func() {
		It("should yield only the payload bytes", func() {
			rdr := libchk.NewReader(chunked("5\r\nhello\r\n6\r\n world\r\n0\r\n\r\n"))

			data, err := readAll(rdr)

			Expect(libiot.IsClosed(err)).To(BeTrue())
			Expect(string(data)).To(Equal("hello world"))
		})
	})

	Context("the terminating chunk", func() {
		It("should report closed on every read after the zero size chunk", func() {
			rdr := libchk.NewReader(chunked("0\r\n\r\n"))

			for i := 0; i < 3; i++ {
				n, err := rdr.Read(make([]byte, 4))
				Expect(n).To(Equal(0))
				Expect(libiot.IsClosed(err)).To(BeTrue())
			}
		})
	})

	Context("framing violations", func() {
		It("should refuse a non digit where a size is expected", func() {
			rdr := libchk.NewReader(chunked("x\r\nhello\r\n"))

			_, err := readAll(rdr)
			Expect(liberr.Has(err, libchk.ErrorIllegalSequence)).To(BeTrue())
		})

		It("should refuse a hexadecimal size digit", func() {
			rdr := libchk.NewReader(chunked("a\r\n0123456789\r\n0\r\n\r\n"))

			_, err := readAll(rdr)
			Expect(liberr.Has(err, libchk.ErrorIllegalSequence)).To(BeTrue())
		})

		It("should refuse a missing end of chunk", func() {
			rdr := libchk.NewReader(chunked("2\r\nabXY"))

			_, err := readAll(rdr)
			Expect(liberr.Has(err, libchk.ErrorIllegalSequence)).To(BeTrue())
		})
	})
})

var _ = Describe("Chunked Writer", func() {
	Context("encoding", func() {
		It("should frame each write as size, payload and CRLF", func() {
			var buf bytes.Buffer

			wrt := libchk.NewWriter(&buf)

			n, err := wrt.Write([]byte("hello"))
			Expect(err).ToNot(HaveOccurred())
			Expect(n).To(Equal(5))
			Expect(buf.String()).To(Equal("5\r\nhello\r\n"))
		})

		It("should leave the terminator to Close", func() {
			var buf bytes.Buffer

			wrt := libchk.NewWriter(&buf)

			_, err := wrt.Write([]byte("hi"))
			Expect(err).ToNot(HaveOccurred())
			Expect(strings.HasSuffix(buf.String(), "0\r\n\r\n")).To(BeFalse())

			Expect(wrt.Close()).ToNot(HaveOccurred())
			Expect(strings.HasSuffix(buf.String(), "0\r\n\r\n")).To(BeTrue())
		})

		It("should refuse writes after Close", func() {
			wrt := libchk.NewWriter(&bytes.Buffer{})

			Expect(wrt.Close()).ToNot(HaveOccurred())

			_, err := wrt.Write([]byte("late"))
			Expect(liberr.Has(err, libchk.ErrorWriterClosed)).To(BeTrue())
		})
	})

	Context("round trip", func() {
		It("should decode exactly what the writer encoded", func() {
			var (
				buf  bytes.Buffer
				data = []byte("the quick brown fox jumps over the lazy dog")
			)

			wrt := libchk.NewWriter(&buf)

			for i := 0; i < len(data); i += 10 {
				end := i + 10
				if end > len(data) {
					end = len(data)
				}

				_, err := wrt.Write(data[i:end])
				Expect(err).ToNot(HaveOccurred())
			}

			Expect(wrt.Close()).ToNot(HaveOccurred())

			got, err := readAll(libchk.NewReader(&buf))
			Expect(libiot.IsClosed(err)).To(BeTrue())
			Expect(got).To(Equal(data))
		})
	})
})
