/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
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

package atomic_test

import (
	"sync"
	"testing"

	libatm "github.com/drouarb/aionet/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAtomic(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Atomic Suite")
}

var _ = Describe("Atomic Value", func() {
	Context("empty value", func() {
		It("should load the zero value without defaults", func() {
			v := libatm.NewValue[int]()
			Expect(v.Load()).To(Equal(0))
		})

		It("should load the default load value when set", func() {
			v := libatm.NewValue[int]()
			v.SetDefaultLoad(42)
			Expect(v.Load()).To(Equal(42))
		})
	})

	Context("store and load", func() {
		It("should round trip a stored value", func() {
			v := libatm.NewValue[string]()
			v.Store("hello")
			Expect(v.Load()).To(Equal("hello"))
		})

		It("should substitute the default store value for a zero store", func() {
			v := libatm.NewValueDefault[int](0, 99)
			v.Store(0)
			Expect(v.Load()).To(Equal(99))
		})
	})

	Context("swap", func() {
		It("should return the previous value", func() {
			v := libatm.NewValue[int]()
			v.Store(1)

			Expect(v.Swap(2)).To(Equal(1))
			Expect(v.Load()).To(Equal(2))
		})
	})

	Context("compare and swap", func() {
		It("should swap only on an exact match", func() {
			v := libatm.NewValue[int]()
			v.Store(5)

			Expect(v.CompareAndSwap(4, 6)).To(BeFalse())
			Expect(v.CompareAndSwap(5, 6)).To(BeTrue())
			Expect(v.Load()).To(Equal(6))
		})
	})

	Context("concurrent access", func() {
		It("should never tear a stored value", func() {
			v := libatm.NewValue[int]()
			v.Store(1)

			var wg sync.WaitGroup

			for i := 0; i < 8; i++ {
				wg.Add(1)

				go func(val int) {
					defer wg.Done()

					for j := 0; j < 1000; j++ {
						v.Store(val)
						got := v.Load()
						Expect(got).To(BeNumerically(">=", 1))
						Expect(got).To(BeNumerically("<=", 8))
					}
				}(i + 1)
			}

			wg.Wait()
		})
	})
})
