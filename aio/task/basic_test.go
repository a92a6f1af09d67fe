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

package task_test

import (
	"context"
	"errors"
	"time"

	libaio "github.com/drouarb/aionet/aio"
	libtsk "github.com/drouarb/aionet/aio/task"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Task", func() {
	Context("lifecycle", func() {
		It("should not run before the first resume", func() {
			ran := false

			t := libtsk.New(nil, func(tc *libtsk.Context) (int, error) {
				ran = true
				return 1, nil
			})

			Expect(t.State()).To(Equal(libtsk.NotStarted))
			Expect(t.IsReady()).To(BeFalse())
			Expect(ran).To(BeFalse())
		})

		It("should complete on the resuming goroutine when the body never suspends", func() {
			t := libtsk.New(nil, func(tc *libtsk.Context) (int, error) {
				return 41 + 1, nil
			})

			Expect(t.Resume()).To(BeFalse())
			Expect(t.IsReady()).To(BeTrue())
			Expect(t.State()).To(Equal(libtsk.Completed))

			val, err := t.Result()
			Expect(err).ToNot(HaveOccurred())
			Expect(val).To(Equal(42))
		})

		It("should surface the body error through the result", func() {
			boom := errors.New("boom")

			t := libtsk.New(nil, func(tc *libtsk.Context) (int, error) {
				return 0, boom
			})

			t.Resume()

			_, err := t.Result()
			Expect(err).To(Equal(boom))
			Expect(t.Err()).To(Equal(boom))
		})

		It("should capture a panicking body as an error", func() {
			t := libtsk.New(nil, func(tc *libtsk.Context) (int, error) {
				panic("broken")
			})

			Expect(t.Resume()).To(BeFalse())

			_, err := t.Result()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("broken"))
		})

		It("should refuse a result before completion", func() {
			t := libtsk.New(nil, func(tc *libtsk.Context) (int, error) {
				return 0, nil
			})

			_, err := t.Result()
			Expect(err).To(HaveOccurred())
		})

		It("should destroy only a completed or never started task", func() {
			fresh := libtsk.New(nil, func(tc *libtsk.Context) (int, error) { return 0, nil })
			Expect(fresh.Destroy()).To(BeTrue())

			done := libtsk.New(nil, func(tc *libtsk.Context) (int, error) { return 0, nil })
			done.Resume()
			Expect(done.Destroy()).To(BeTrue())
			Expect(done.State()).To(Equal(libtsk.Destroyed))
		})
	})

	Context("suspension", func() {
		It("should park at the suspension point until the wake arrives", func() {
			var wake libaio.Completion

			registered := make(chan struct{})

			t := libtsk.New(nil, func(tc *libtsk.Context) (int, error) {
				return tc.Suspend(func(w libaio.Completion) error {
					wake = w
					close(registered)
					return nil
				})
			})

			// first resume drives the body to the suspension point
			Expect(t.Resume()).To(BeTrue())
			Eventually(registered).Should(BeClosed())
			Expect(t.State()).To(Equal(libtsk.Suspended))

			// the wake resumes the body on the calling goroutine
			wake(7, nil)

			Expect(t.IsReady()).To(BeTrue())

			val, err := t.Result()
			Expect(err).ToNot(HaveOccurred())
			Expect(val).To(Equal(7))
		})

		It("should not park when the registrar fails", func() {
			boom := errors.New("no backend")

			t := libtsk.New(nil, func(tc *libtsk.Context) (int, error) {
				return tc.Suspend(func(w libaio.Completion) error {
					return boom
				})
			})

			Expect(t.Resume()).To(BeFalse())

			_, err := t.Result()
			Expect(err).To(Equal(boom))
		})
	})

	Context("continuation", func() {
		It("should run the continuation on the completing goroutine", func() {
			seen := false

			t := libtsk.New(nil, func(tc *libtsk.Context) (int, error) {
				return 1, nil
			})

			t.SetContinuation(func() { seen = true })
			t.Resume()

			Expect(seen).To(BeTrue())
		})

		It("should invoke a continuation set after completion immediately", func() {
			t := libtsk.New(nil, func(tc *libtsk.Context) (int, error) {
				return 1, nil
			})

			t.Resume()

			seen := false
			t.SetContinuation(func() { seen = true })
			Expect(seen).To(BeTrue())
		})
	})

	Context("awaiting", func() {
		It("should drive the awaited task and return its result", func() {
			inner := libtsk.New(nil, func(tc *libtsk.Context) (string, error) {
				return "inner value", nil
			})

			outer := libtsk.New(nil, func(tc *libtsk.Context) (string, error) {
				return libtsk.Await(tc, inner)
			})

			Expect(outer.Resume()).To(BeFalse())

			val, err := outer.Result()
			Expect(err).ToNot(HaveOccurred())
			Expect(val).To(Equal("inner value"))
		})

		It("should resume the awaiting task once a suspended awaited task completes", func() {
			var wake libaio.Completion

			registered := make(chan struct{})

			inner := libtsk.New(nil, func(tc *libtsk.Context) (int, error) {
				return tc.Suspend(func(w libaio.Completion) error {
					wake = w
					close(registered)
					return nil
				})
			})

			outer := libtsk.New(nil, func(tc *libtsk.Context) (int, error) {
				val, err := libtsk.Await(tc, inner)
				return val * 2, err
			})

			go outer.Resume()

			Eventually(registered, time.Second).Should(BeClosed())

			wake(21, nil)

			val, err := outer.Wait(context.Background())
			Expect(err).ToNot(HaveOccurred())
			Expect(val).To(Equal(42))
		})
	})

	Context("waiting", func() {
		It("should time out through the context", func() {
			t := libtsk.New(nil, func(tc *libtsk.Context) (int, error) {
				return 0, nil
			})

			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
			defer cancel()

			_, err := t.Wait(ctx)
			Expect(err).To(HaveOccurred())
		})
	})
})
