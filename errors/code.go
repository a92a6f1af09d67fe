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
	"math"
	"sort"
	"strconv"
	"sync"
)

// Message generates the message associated with an error code.
type Message func(code CodeError) string

// CodeError is a numeric error classification. Each package of the
// module owns a range of codes, see modules.go.
type CodeError uint16

const (
	// UnknownError is the fallback code used when no code applies.
	UnknownError CodeError = 0

	// UnknownMessage is the message associated with UnknownError.
	UnknownMessage = "unknown error"
)

var (
	msgMut sync.RWMutex
	msgFct = make(map[CodeError]Message)
)

// ParseCodeError converts any int64 into a CodeError, clamping out of
// range values.
func ParseCodeError(i int64) CodeError {
	if i < 0 {
		return UnknownError
	} else if i >= int64(math.MaxUint16) {
		return CodeError(math.MaxUint16)
	}

	return CodeError(i)
}

// Uint16 returns the code as its underlying numeric value.
func (c CodeError) Uint16() uint16 {
	return uint16(c)
}

// Int returns the code as an int.
func (c CodeError) Int() int {
	return int(c)
}

// String returns the decimal representation of the code.
func (c CodeError) String() string {
	return strconv.Itoa(c.Int())
}

// Message returns the registered message for the code, or
// UnknownMessage when no message function covers it.
func (c CodeError) Message() string {
	if c == UnknownError {
		return UnknownMessage
	}

	msgMut.RLock()
	defer msgMut.RUnlock()

	if f, ok := msgFct[findRangeBase(c)]; ok {
		if m := f(c); m != "" {
			return m
		}
	}

	return UnknownMessage
}

// Error returns a new Error with this code, attaching all given
// non-nil errors as parents.
func (c CodeError) Error(parent ...error) Error {
	e := &ers{
		c: c,
		e: c.Message(),
		t: getFrame(),
	}

	e.Add(parent...)

	return e
}

// ErrorParent is a shorthand for Error with a mandatory parent list.
func (c CodeError) ErrorParent(parent ...error) Error {
	return c.Error(parent...)
}

// IfError returns a new Error with this code if at least one of the
// given errors is non nil, or nil otherwise.
func (c CodeError) IfError(parent ...error) Error {
	for _, p := range parent {
		if p != nil {
			return c.Error(parent...)
		}
	}

	return nil
}

// RegisterIdFctMessage registers the message function covering the code
// range starting at minCode. The range extends to the next registered
// base code.
func RegisterIdFctMessage(minCode CodeError, fct Message) {
	msgMut.Lock()
	defer msgMut.Unlock()

	msgFct[minCode] = fct
}

// ExistInMapMessage reports whether a registered message function
// already yields a non-empty message for the given code.
func ExistInMapMessage(code CodeError) bool {
	return code.Message() != UnknownMessage
}

// findRangeBase returns the greatest registered base code that is not
// greater than the given code. Callers must hold msgMut.
func findRangeBase(code CodeError) CodeError {
	bases := make([]int, 0, len(msgFct))

	for k := range msgFct {
		bases = append(bases, k.Int())
	}

	sort.Sort(sort.Reverse(sort.IntSlice(bases)))

	for _, b := range bases {
		if b <= code.Int() {
			return CodeError(b)
		}
	}

	return UnknownError
}
