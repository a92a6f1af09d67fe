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

package errors

import (
	"runtime"
	"strings"
)

// ers keeps the original parent errors untouched so that errors.Is and
// errors.As keep matching sentinel values through Unwrap.
type ers struct {
	c CodeError
	e string
	p []error
	t runtime.Frame
}

func (e *ers) Error() string {
	if len(e.p) == 0 {
		return e.e
	}

	var buf strings.Builder
	buf.WriteString(e.e)

	for _, p := range e.p {
		buf.WriteString(", ")
		buf.WriteString(p.Error())
	}

	return buf.String()
}

func (e *ers) IsCode(code CodeError) bool {
	return e.c == code
}

func (e *ers) HasCode(code CodeError) bool {
	if e.IsCode(code) {
		return true
	}

	for _, p := range e.p {
		if v := Get(p); v != nil && v.HasCode(code) {
			return true
		}
	}

	return false
}

func (e *ers) Code() CodeError {
	return e.c
}

func (e *ers) CodeSlice() []CodeError {
	res := []CodeError{e.c}

	for _, p := range e.p {
		if v := Get(p); v != nil {
			res = append(res, v.CodeSlice()...)
		} else {
			res = append(res, UnknownError)
		}
	}

	return res
}

func (e *ers) IsError(err error) bool {
	if err == nil {
		return false
	}

	return strings.EqualFold(e.e, err.Error())
}

func (e *ers) HasError(err error) bool {
	if e.IsError(err) {
		return true
	}

	for _, p := range e.p {
		if v := Get(p); v != nil {
			if v.HasError(err) {
				return true
			}
		} else if err != nil && strings.EqualFold(p.Error(), err.Error()) {
			return true
		}
	}

	return false
}

func (e *ers) HasParent() bool {
	return len(e.p) > 0
}

func (e *ers) ContainsString(s string) bool {
	if strings.Contains(e.e, s) {
		return true
	}

	for _, p := range e.p {
		if strings.Contains(p.Error(), s) {
			return true
		}
	}

	return false
}

func (e *ers) Add(parent ...error) {
	for _, v := range parent {
		if v != nil {
			e.p = append(e.p, v)
		}
	}
}

func (e *ers) SetParent(parent ...error) {
	e.p = make([]error, 0, len(parent))
	e.Add(parent...)
}

func (e *ers) Map(fct FuncMap) bool {
	if !fct(e) {
		return false
	}

	for _, p := range e.p {
		if v := Get(p); v != nil {
			if !v.Map(fct) {
				return false
			}
		} else if !fct(p) {
			return false
		}
	}

	return true
}

func (e *ers) StringError() string {
	return e.e
}

func (e *ers) StringErrorSlice() []string {
	res := []string{e.e}

	for _, p := range e.p {
		res = append(res, p.Error())
	}

	return res
}

func (e *ers) GetParent(withMainError bool) []error {
	res := make([]error, 0, len(e.p)+1)

	if withMainError {
		res = append(res, e)
	}

	res = append(res, e.p...)

	return res
}

func (e *ers) Unwrap() []error {
	return e.p
}

func (e *ers) GetTrace() string {
	return frameString(e.t)
}
