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

// Package header provides the HTTP header multimap: keys compare case
// insensitively and are stored in canonical case, values keep their
// per-key insertion order, and key iteration follows first-insertion
// order so that encoding stays deterministic.
package header

// Headers is the header multimap.
type Headers interface {
	// Set replaces every value of the key with the given one.
	Set(key, val string) Headers
	// Add appends a value to the key.
	Add(key, val string) Headers
	// Del removes the key, reporting whether it existed.
	Del(key string) bool

	// Get returns the first value of the key.
	Get(key string) (string, bool)
	// GetAll returns every value of the key in insertion order.
	GetAll(key string) []string
	// Has reports whether the key exists.
	Has(key string) bool

	// Keys returns the canonical keys in first-insertion order.
	Keys() []string
	// Walk calls the given function per key, in first-insertion
	// order, until it returns false.
	Walk(fct func(key string, vals []string) bool)

	// Len returns the number of distinct keys.
	Len() int
	// IsEmpty reports whether no key is stored.
	IsEmpty() bool

	// Clone returns an independent copy.
	Clone() Headers
	// Equal reports whether both multimaps carry the same keys and
	// value sequences, ignoring key order.
	Equal(other Headers) bool
}

// New returns an empty header multimap.
func New() Headers {
	return &hdr{
		values: make(map[string][]string),
	}
}

// Canonical folds a header key to its canonical case: the first
// letter and every letter after a dash upper cased, everything else
// lower cased ("content-length" becomes "Content-Length").
func Canonical(key string) string {
	b := []byte(key)
	up := true

	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z':
			if up {
				b[i] = c - 'a' + 'A'
			}
			up = false

		case c >= 'A' && c <= 'Z':
			if !up {
				b[i] = c - 'A' + 'a'
			}
			up = false

		default:
			up = c == '-'
		}
	}

	return string(b)
}
