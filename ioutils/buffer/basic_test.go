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

package buffer_test

import (
	"bytes"

	libbuf "github.com/drouarb/aionet/ioutils/buffer"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Buffered Reader", func() {
	Context("reading less than the buffered content", func() {
		It("should serve from the buffer and keep the remainder", func() {
			src := &chunkReader{data: []byte("hello world")}
			rdr := libbuf.NewReader(src, 8)

			buf := make([]byte, 4)
			n, err := rdr.Read(buf)

			Expect(err).ToNot(HaveOccurred())
			Expect(n).To(Equal(4))
			Expect(string(buf)).To(Equal("hell"))

			n, err = rdr.Read(buf)
			Expect(err).ToNot(HaveOccurred())
			Expect(n).To(Equal(4))
			Expect(string(buf)).To(Equal("o wo"))
		})
	})

	Context("reading more than the capacity", func() {
		It("should return the full request without ever asking the underlying reader for more than the capacity", func() {
			data := pattern(1000)
			src := &chunkReader{data: append([]byte{}, data...)}
			rdr := libbuf.NewReader(src, 16)

			out := make([]byte, 1000)
			total := 0

			for total < len(out) {
				n, err := rdr.Read(out[total:])
				Expect(err).ToNot(HaveOccurred())
				Expect(n).To(BeNumerically(">", 0))
				Expect(n).To(BeNumerically("<=", len(out)-total))
				total += n
			}

			Expect(out).To(Equal(data))
			Expect(src.maxSeen).To(BeNumerically("<=", 16))
		})
	})

	Context("underlying reader yielding short counts", func() {
		It("should still return the exact requested length", func() {
			data := pattern(240)
			src := &chunkReader{data: append([]byte{}, data...), max: 7}
			rdr := libbuf.NewReader(src, 32)

			out := make([]byte, 240)
			total := 0

			for total < len(out) {
				n, err := rdr.Read(out[total:])
				Expect(err).ToNot(HaveOccurred())
				total += n
			}

			Expect(out).To(Equal(data))
		})
	})

	Context("zero length request", func() {
		It("should return zero with no error", func() {
			rdr := libbuf.NewReader(bytes.NewReader([]byte("x")), 4)

			n, err := rdr.Read(nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(n).To(Equal(0))
		})
	})

	Context("peeking", func() {
		It("should expose the next byte without consuming it", func() {
			rdr := libbuf.NewReader(bytes.NewReader([]byte("ab")), 4)

			b, ok := rdr.Peek()
			Expect(ok).To(BeTrue())
			Expect(b).To(Equal(byte('a')))

			buf := make([]byte, 1)
			n, err := rdr.Read(buf)
			Expect(err).ToNot(HaveOccurred())
			Expect(n).To(Equal(1))
			Expect(buf[0]).To(Equal(byte('a')))
		})

		It("should report no byte at end of stream", func() {
			rdr := libbuf.NewReader(bytes.NewReader(nil), 4)

			_, ok := rdr.Peek()
			Expect(ok).To(BeFalse())
		})
	})

	Context("resetting", func() {
		It("should drop buffered bytes, keep the capacity and switch streams", func() {
			rdr := libbuf.NewReader(bytes.NewReader([]byte("abcdef")), 4)

			buf := make([]byte, 1)
			_, err := rdr.Read(buf)
			Expect(err).ToNot(HaveOccurred())
			Expect(rdr.Size()).To(BeNumerically(">", 0))

			rdr.Reset(bytes.NewReader([]byte("xyz")))
			Expect(rdr.Size()).To(Equal(0))
			Expect(rdr.Capacity()).To(Equal(4))

			n, err := rdr.Read(buf)
			Expect(err).ToNot(HaveOccurred())
			Expect(n).To(Equal(1))
			Expect(buf[0]).To(Equal(byte('x')))
		})
	})

	Context("end of stream", func() {
		It("should serve what remains, then surface the deferred error", func() {
			rdr := libbuf.NewReader(bytes.NewReader([]byte("abc")), 8)

			out := make([]byte, 8)
			n, err := rdr.Read(out)

			Expect(n).To(Equal(3))
			Expect(err).ToNot(HaveOccurred())

			n, err = rdr.Read(out)
			Expect(n).To(Equal(0))
			Expect(err).To(HaveOccurred())
		})
	})
})

var _ = Describe("Buffered Writer", func() {
	Context("writing below the capacity", func() {
		It("should buffer without touching the underlying writer", func() {
			dst := &shortWriter{}
			wrt := libbuf.NewWriter(dst, 8)

			n, err := wrt.Write([]byte("abc"))
			Expect(err).ToNot(HaveOccurred())
			Expect(n).To(Equal(3))
			Expect(dst.data).To(BeEmpty())
			Expect(wrt.Size()).To(Equal(3))
		})
	})

	Context("flushing", func() {
		It("should push every buffered byte downstream", func() {
			dst := &shortWriter{}
			wrt := libbuf.NewWriter(dst, 8)

			_, err := wrt.Write([]byte("abc"))
			Expect(err).ToNot(HaveOccurred())

			n, err := wrt.Flush()
			Expect(err).ToNot(HaveOccurred())
			Expect(n).To(Equal(3))
			Expect(string(dst.data)).To(Equal("abc"))
			Expect(wrt.Size()).To(Equal(0))
		})

		It("should retry short underlying writes until drained", func() {
			dst := &shortWriter{max: 2}
			wrt := libbuf.NewWriter(dst, 8)

			_, err := wrt.Write([]byte("abcdefg"))
			Expect(err).ToNot(HaveOccurred())

			_, err = wrt.Flush()
			Expect(err).ToNot(HaveOccurred())
			Expect(string(dst.data)).To(Equal("abcdefg"))
		})
	})

	Context("writing across the capacity", func() {
		It("should deliver all bytes in order", func() {
			data := pattern(300)
			dst := &shortWriter{max: 5}
			wrt := libbuf.NewWriter(dst, 16)

			total := 0

			for total < len(data) {
				n, err := wrt.Write(data[total:])
				Expect(err).ToNot(HaveOccurred())
				Expect(n).To(BeNumerically(">", 0))
				total += n
			}

			_, err := wrt.Flush()
			Expect(err).ToNot(HaveOccurred())
			Expect(dst.data).To(Equal(data))
		})

		It("should never hold more than the capacity", func() {
			dst := &shortWriter{}
			wrt := libbuf.NewWriter(dst, 8)

			for i := 0; i < 10; i++ {
				_, err := wrt.Write(pattern(7))
				Expect(err).ToNot(HaveOccurred())
				Expect(wrt.Size()).To(BeNumerically("<=", wrt.Capacity()))
			}
		})
	})

	Context("zero length write", func() {
		It("should return zero with no error", func() {
			wrt := libbuf.NewWriter(&shortWriter{}, 8)

			n, err := wrt.Write(nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(n).To(Equal(0))
		})
	})
})
