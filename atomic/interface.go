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

// Package atomic provides a type-safe wrapper around sync/atomic.Value
// with optional default values for load and store.
package atomic

import (
	"sync/atomic"
)

// Value is a typed atomic container for values of type T.
type Value[T any] interface {
	// SetDefaultLoad sets the value returned by Load while no value
	// has been stored yet.
	SetDefaultLoad(def T)
	// SetDefaultStore sets the value substituted when Store is called
	// with the zero value of T.
	SetDefaultStore(def T)

	// Load returns the stored value, or the default load value.
	Load() (val T)
	// Store stores the given value, substituting the default store
	// value when val is the zero value of T.
	Store(val T)
	// Swap stores the new value and returns the previous one.
	Swap(new T) (old T)
	// CompareAndSwap swaps to new only if the current value equals old.
	CompareAndSwap(old, new T) (swapped bool)
}

// NewValue returns a new empty atomic Value for type T.
func NewValue[T any]() Value[T] {
	return &val[T]{
		av: new(atomic.Value),
		dl: new(atomic.Value),
		ds: new(atomic.Value),
	}
}

// NewValueDefault returns a new atomic Value with the given load and
// store defaults preset.
func NewValueDefault[T any](defLoad, defStore T) Value[T] {
	v := NewValue[T]()
	v.SetDefaultLoad(defLoad)
	v.SetDefaultStore(defStore)
	return v
}
