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

// Package errors provides error handling with numeric error codes, stack
// trace capture and parent error chains.
//
// Each package of this module reserves a contiguous code range in
// modules.go and registers a message function for its codes. The Error
// interface stays compatible with the standard errors.Is / errors.As
// helpers through Unwrap.
package errors

import (
	"errors"
	"strings"
)

// FuncMap is the callback used to iterate over an error hierarchy.
// Returning false stops the iteration.
type FuncMap func(e error) bool

// Error extends the standard error interface with an error code, a
// parent chain and the source location of the error's creation.
//
// Reading methods are safe for concurrent use; Add and SetParent
// are not.
type Error interface {
	error

	// IsCode checks the error's own code against the given code,
	// ignoring parents.
	IsCode(code CodeError) bool
	// HasCode checks the error's code and every parent's code.
	HasCode(code CodeError) bool
	// Code returns the error's own code.
	Code() CodeError
	// CodeSlice returns the codes of the error and all its parents.
	CodeSlice() []CodeError

	// IsError compares the error message with the given error's message.
	IsError(e error) bool
	// HasError checks the error and every parent against the given error.
	HasError(err error) bool
	// HasParent reports whether at least one parent is attached.
	HasParent() bool
	// ContainsString reports whether the error or any parent message
	// contains the given substring.
	ContainsString(s string) bool

	// Add appends all non-nil given errors to the parent chain.
	Add(parent ...error)
	// SetParent replaces the parent chain with the given errors.
	SetParent(parent ...error)

	// Map applies the given function to the error and each parent,
	// stopping when it returns false.
	Map(fct FuncMap) bool

	// StringError returns the message of the error without parents.
	StringError() string
	// StringErrorSlice returns the messages of the error and all parents.
	StringErrorSlice() []string

	// GetParent returns the direct parents of the error; parents of
	// parents are not included. If withMainError is true, the error
	// itself is prepended.
	GetParent(withMainError bool) []error
	// Unwrap implements the multi-error unwrap convention used by
	// errors.Is and errors.As.
	Unwrap() []error

	// GetTrace returns the "file#line" location captured at creation.
	GetTrace() string
}

// Is reports whether the given error is (or wraps) an Error of this package.
func Is(e error) bool {
	var err Error
	return errors.As(e, &err)
}

// Get returns the Error wrapped in e, or nil.
func Get(e error) Error {
	var err Error
	if errors.As(e, &err) {
		return err
	}

	return nil
}

// Has reports whether e or one of its parents carries the given code.
func Has(e error, code CodeError) bool {
	if err := Get(e); err == nil {
		return false
	} else {
		return err.HasCode(code)
	}
}

// IsCode reports whether e's own code is the given code.
func IsCode(e error, code CodeError) bool {
	if err := Get(e); err == nil {
		return false
	} else {
		return err.IsCode(code)
	}
}

// ContainsString reports whether the message of e or of any parent
// contains the given substring.
func ContainsString(e error, s string) bool {
	if e == nil {
		return false
	} else if err := Get(e); err == nil {
		return strings.Contains(e.Error(), s)
	} else {
		return err.ContainsString(s)
	}
}

// Make wraps any error into an Error. A nil error stays nil; an
// existing Error is returned unchanged; anything else is wrapped with
// the UnknownError code.
func Make(e error) Error {
	var err Error

	if e == nil {
		return nil
	} else if errors.As(e, &err) {
		return err
	}

	return &ers{
		c: UnknownError,
		e: e.Error(),
		t: getFrame(),
	}
}

// IfError returns an Error wrapping all non-nil given errors, or nil
// if every given error is nil.
func IfError(lst ...error) Error {
	var e Error

	for _, p := range lst {
		if p == nil {
			continue
		} else if e == nil {
			e = Make(p)
		} else {
			e.Add(p)
		}
	}

	return e
}
