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

package errors_test

import (
	"errors"
	"fmt"
	"io"

	liberr "github.com/drouarb/aionet/errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const (
	testCodeBase liberr.CodeError = liberr.MinAvailable + iota
	testCodeOther
)

func init() {
	liberr.RegisterIdFctMessage(testCodeBase, func(code liberr.CodeError) string {
		switch code {
		case testCodeBase:
			return "base test error"
		case testCodeOther:
			return "other test error"
		}

		return ""
	})
}

var _ = Describe("Error Codes", func() {
	Context("registered message functions", func() {
		It("should resolve the message of every code in the range", func() {
			Expect(testCodeBase.Message()).To(Equal("base test error"))
			Expect(testCodeOther.Message()).To(Equal("other test error"))
		})

		It("should fall back to the unknown message outside any range", func() {
			Expect(liberr.UnknownError.Message()).To(Equal(liberr.UnknownMessage))
		})
	})

	Context("building errors", func() {
		It("should carry its code and message", func() {
			err := testCodeBase.Error(nil)

			Expect(err.IsCode(testCodeBase)).To(BeTrue())
			Expect(err.IsCode(testCodeOther)).To(BeFalse())
			Expect(err.Code()).To(Equal(testCodeBase))
			Expect(err.StringError()).To(Equal("base test error"))
			Expect(err.GetTrace()).ToNot(BeEmpty())
		})

		It("should chain parents and find their codes", func() {
			err := testCodeBase.Error(testCodeOther.Error(nil))

			Expect(err.HasParent()).To(BeTrue())
			Expect(err.HasCode(testCodeOther)).To(BeTrue())
			Expect(err.CodeSlice()).To(Equal([]liberr.CodeError{testCodeBase, testCodeOther}))
		})

		It("should return nil from IfError when every parent is nil", func() {
			Expect(testCodeBase.IfError(nil, nil)).To(BeNil())
			Expect(testCodeBase.IfError(nil, io.EOF)).ToNot(BeNil())
		})
	})

	Context("standard library interop", func() {
		It("should keep sentinel parents matchable through errors.Is", func() {
			err := testCodeBase.Error(io.EOF)

			Expect(errors.Is(err, io.EOF)).To(BeTrue())
		})

		It("should expose the typed error through errors.As", func() {
			var typed liberr.Error

			wrapped := fmt.Errorf("outer: %w", testCodeBase.Error(nil))

			Expect(errors.As(wrapped, &typed)).To(BeTrue())
			Expect(typed.IsCode(testCodeBase)).To(BeTrue())
		})

		It("should answer the package level helpers", func() {
			err := testCodeBase.Error(nil)

			Expect(liberr.Is(err)).To(BeTrue())
			Expect(liberr.IsCode(err, testCodeBase)).To(BeTrue())
			Expect(liberr.Has(err, testCodeBase)).To(BeTrue())
			Expect(liberr.ContainsString(err, "base test")).To(BeTrue())
			Expect(liberr.Is(io.EOF)).To(BeFalse())
		})
	})

	Context("wrapping foreign errors", func() {
		It("should wrap a plain error with the unknown code", func() {
			err := liberr.Make(errors.New("plain"))

			Expect(err).ToNot(BeNil())
			Expect(err.Code()).To(Equal(liberr.UnknownError))
			Expect(err.StringError()).To(Equal("plain"))
		})

		It("should keep a nil error nil", func() {
			Expect(liberr.Make(nil)).To(BeNil())
		})
	})
})
