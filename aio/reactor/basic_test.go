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

package reactor_test

import (
	"sync"
	"time"

	libaio "github.com/drouarb/aionet/aio"
	librea "github.com/drouarb/aionet/aio/reactor"
	"golang.org/x/sys/unix"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Reactor", func() {
	var (
		r       libaio.Reactor
		stopped chan struct{}
		rfd     int
		wfd     int
	)

	BeforeEach(func() {
		var err error

		r, err = librea.New(librea.Options{})
		Expect(err).ToNot(HaveOccurred())

		stopped = make(chan struct{})
		go pump(r, stopped)

		rfd, wfd = pipePair()
	})

	AfterEach(func() {
		r.Shutdown()
		Eventually(stopped, time.Second).Should(BeClosed())

		_ = unix.Close(rfd)
		_ = unix.Close(wfd)
	})

	Context("submission checks", func() {
		It("should refuse a nil completion, a negative handle and an empty op", func() {
			cb, _ := recorder()

			Expect(r.Queue(nil, rfd, libaio.OpRead, 0)).To(HaveOccurred())
			Expect(r.Queue(cb, -1, libaio.OpRead, 0)).To(HaveOccurred())
			Expect(r.Queue(cb, rfd, 0, 0)).To(HaveOccurred())
		})
	})

	Context("readiness", func() {
		It("should complete exactly once when the descriptor becomes readable", func() {
			cb, ch := recorder()

			Expect(r.Queue(cb, rfd, libaio.OpRead, 0)).ToNot(HaveOccurred())

			Consistently(ch, 50*time.Millisecond).ShouldNot(Receive())

			_, err := unix.Write(wfd, []byte("x"))
			Expect(err).ToNot(HaveOccurred())

			var res outcome
			Eventually(ch, time.Second).Should(Receive(&res))
			Expect(res.err).ToNot(HaveOccurred())

			Consistently(ch, 100*time.Millisecond).ShouldNot(Receive())
		})

		It("should complete a write interest on a writable descriptor", func() {
			cb, ch := recorder()

			Expect(r.Queue(cb, wfd, libaio.OpWrite, 0)).ToNot(HaveOccurred())

			var res outcome
			Eventually(ch, time.Second).Should(Receive(&res))
			Expect(res.err).ToNot(HaveOccurred())
		})

		It("should keep FIFO order per descriptor per direction", func() {
			var (
				m     sync.Mutex
				order []int
			)

			mark := func(id int) libaio.Completion {
				return func(size int, err error) {
					m.Lock()
					order = append(order, id)
					m.Unlock()
				}
			}

			Expect(r.Queue(mark(1), rfd, libaio.OpRead, 0)).ToNot(HaveOccurred())
			Expect(r.Queue(mark(2), rfd, libaio.OpRead, 0)).ToNot(HaveOccurred())

			_, err := unix.Write(wfd, []byte("ab"))
			Expect(err).ToNot(HaveOccurred())

			Eventually(func() []int {
				m.Lock()
				defer m.Unlock()
				return append([]int{}, order...)
			}, time.Second).Should(Equal([]int{1, 2}))
		})
	})

	Context("timeouts", func() {
		It("should fire the deadline when no readiness arrives", func() {
			cb, ch := recorder()

			start := time.Now()
			Expect(r.Queue(cb, rfd, libaio.OpRead, 50*time.Millisecond)).ToNot(HaveOccurred())

			var res outcome
			Eventually(ch, time.Second).Should(Receive(&res))

			Expect(libaio.IsTimeout(res.err)).To(BeTrue())
			Expect(res.size).To(Equal(0))

			elapsed := time.Since(start)
			Expect(elapsed).To(BeNumerically(">=", 45*time.Millisecond))
			Expect(elapsed).To(BeNumerically("<", 500*time.Millisecond))
		})

		It("should prefer readiness over a pending deadline", func() {
			cb, ch := recorder()

			Expect(r.Queue(cb, rfd, libaio.OpRead, 500*time.Millisecond)).ToNot(HaveOccurred())

			_, err := unix.Write(wfd, []byte("x"))
			Expect(err).ToNot(HaveOccurred())

			var res outcome
			Eventually(ch, time.Second).Should(Receive(&res))
			Expect(res.err).ToNot(HaveOccurred())

			// the deadline must not produce a second completion
			Consistently(ch, 600*time.Millisecond).ShouldNot(Receive())
		})
	})

	Context("wake-ups", func() {
		It("should deliver an out of band continuation with a zero result", func() {
			cb, ch := recorder()

			Expect(r.Wake(cb)).ToNot(HaveOccurred())

			var res outcome
			Eventually(ch, time.Second).Should(Receive(&res))
			Expect(res.size).To(Equal(0))
			Expect(res.err).ToNot(HaveOccurred())
		})
	})

	Context("shutdown", func() {
		It("should cancel pending operations and stop the loop", func() {
			cb, ch := recorder()

			Expect(r.Queue(cb, rfd, libaio.OpRead, 0)).ToNot(HaveOccurred())

			r.Shutdown()

			var res outcome
			Eventually(ch, time.Second).Should(Receive(&res))
			Expect(libaio.IsCancelled(res.err)).To(BeTrue())

			Eventually(stopped, time.Second).Should(BeClosed())
		})

		It("should be idempotent and refuse new submissions", func() {
			r.Shutdown()
			r.Shutdown()

			cb, _ := recorder()
			Expect(r.Queue(cb, rfd, libaio.OpRead, 0)).To(HaveOccurred())
		})
	})
})
