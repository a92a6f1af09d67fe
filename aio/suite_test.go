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

package aio_test

import (
	"io"
	"testing"

	libaio "github.com/drouarb/aionet/aio"
	"golang.org/x/sys/unix"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAio(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "AIO Suite")
}

var _ = Describe("Poll Op", func() {
	It("should expose its directions", func() {
		Expect(libaio.OpRead.Readable()).To(BeTrue())
		Expect(libaio.OpRead.Writable()).To(BeFalse())
		Expect(libaio.OpWrite.Writable()).To(BeTrue())
		Expect(libaio.OpReadWrite.Readable()).To(BeTrue())
		Expect(libaio.OpReadWrite.Writable()).To(BeTrue())
	})

	It("should validate only the three defined values", func() {
		Expect(libaio.OpRead.IsValid()).To(BeTrue())
		Expect(libaio.OpWrite.IsValid()).To(BeTrue())
		Expect(libaio.OpReadWrite.IsValid()).To(BeTrue())
		Expect(libaio.Op(0).IsValid()).To(BeFalse())
		Expect(libaio.Op(8).IsValid()).To(BeFalse())
	})

	It("should name itself", func() {
		Expect(libaio.OpRead.String()).To(Equal("read"))
		Expect(libaio.OpWrite.String()).To(Equal("write"))
		Expect(libaio.OpReadWrite.String()).To(Equal("read+write"))
	})
})

var _ = Describe("Error Taxonomy", func() {
	It("should map end of file indications onto the closed condition", func() {
		for _, errno := range []unix.Errno{
			unix.EPIPE, unix.ECONNRESET, unix.ECONNABORTED, unix.ENOTCONN,
		} {
			Expect(libaio.IsClosed(libaio.ErrSystem(errno))).To(BeTrue())
		}
	})

	It("should keep other OS errors as system errors", func() {
		err := libaio.ErrSystem(unix.EINVAL)
		Expect(libaio.IsClosed(err)).To(BeFalse())
		Expect(err).To(HaveOccurred())
	})

	It("should suppress the would block condition", func() {
		Expect(libaio.IsWouldBlock(libaio.ErrSystem(unix.EAGAIN))).To(BeTrue())
		Expect(libaio.IsWouldBlock(unix.EAGAIN)).To(BeTrue())
		Expect(libaio.IsWouldBlock(nil)).To(BeFalse())
	})

	It("should match the closed condition with io.EOF", func() {
		Expect(libaio.IsClosed(libaio.ErrClosed())).To(BeTrue())
		Expect(libaio.IsClosed(io.EOF)).To(BeTrue())
	})

	It("should keep a nil error nil", func() {
		Expect(libaio.ErrSystem(nil)).To(BeNil())
	})

	It("should distinguish timeout and cancellation", func() {
		Expect(libaio.IsTimeout(libaio.ErrorTimedOut.Error(nil))).To(BeTrue())
		Expect(libaio.IsTimeout(libaio.ErrorCancelled.Error(nil))).To(BeFalse())
		Expect(libaio.IsCancelled(libaio.ErrorCancelled.Error(nil))).To(BeTrue())
	})
})
