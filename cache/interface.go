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

// Package cache provides a bounded associative cache evicting with the
// SIEVE algorithm: one visited bit per entry and a hand walking
// backward from the tail, giving O(1) operations with no list mutation
// on hit.
package cache

// FuncLoad builds the value for a key missing from the cache.
type FuncLoad[K comparable, V any] func(key K) (V, error)

// Cache is a bounded key to value map. The capacity is a hard bound:
// every insertion above it evicts exactly one entry.
type Cache[K comparable, V any] interface {
	// Load returns the value stored for the key, marking the entry as
	// visited on hit.
	Load(key K) (val V, ok bool)

	// Store inserts or updates the value for the key, evicting one
	// entry when the cache is full.
	Store(key K, val V)

	// LoadOrStore returns the cached value for the key, or builds,
	// stores and returns it with the given loader.
	LoadOrStore(key K, fct FuncLoad[K, V]) (V, error)

	// Delete removes the entry for the key, reporting whether one was
	// removed.
	Delete(key K) bool

	// Contains reports whether the key is cached, without touching
	// the visited bit.
	Contains(key K) bool

	// Walk calls the given function for every entry until it returns
	// false.
	Walk(fct func(key K, val V) bool)

	// Len returns the number of cached entries.
	Len() int
	// IsEmpty reports whether the cache holds no entry.
	IsEmpty() bool
	// Capacity returns the configured bound.
	Capacity() int

	// Purge removes every entry.
	Purge()
}

// New returns an empty SIEVE cache with the given capacity; a
// non-positive capacity defaults to 1.
func New[K comparable, V any](capacity int) Cache[K, V] {
	if capacity <= 0 {
		capacity = 1
	}

	return newCache[K, V](capacity)
}
