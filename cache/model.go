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

package cache

import (
	"container/list"
	"sync"
	"sync/atomic"
)

// entry carries the single visited bit of the SIEVE algorithm. The bit
// is atomic so that hits only take the read lock.
type entry[K comparable, V any] struct {
	key     K
	val     V
	visited atomic.Bool
}

type sieve[K comparable, V any] struct {
	m sync.RWMutex

	capacity int
	entries  *list.List          // insertion order, newest at front
	lookup   map[K]*list.Element // key to list element
	hand     *list.Element       // eviction hand, walks backward
}

func newCache[K comparable, V any](capacity int) Cache[K, V] {
	return &sieve[K, V]{
		capacity: capacity,
		entries:  list.New(),
		lookup:   make(map[K]*list.Element, capacity),
	}
}

func (c *sieve[K, V]) Load(key K) (val V, ok bool) {
	c.m.RLock()
	defer c.m.RUnlock()

	if elem, found := c.lookup[key]; found {
		ent := elem.Value.(*entry[K, V])
		ent.visited.Store(true)
		return ent.val, true
	}

	return val, false
}

func (c *sieve[K, V]) Store(key K, val V) {
	c.m.Lock()
	defer c.m.Unlock()

	if elem, found := c.lookup[key]; found {
		ent := elem.Value.(*entry[K, V])
		ent.val = val
		ent.visited.Store(true)
		return
	}

	if c.entries.Len() >= c.capacity {
		c.evict()
	}

	ent := &entry[K, V]{key: key, val: val}
	c.lookup[key] = c.entries.PushFront(ent)
}

func (c *sieve[K, V]) LoadOrStore(key K, fct FuncLoad[K, V]) (V, error) {
	if val, ok := c.Load(key); ok {
		return val, nil
	}

	val, err := fct(key)

	if err != nil {
		return val, err
	}

	c.Store(key, val)

	return val, nil
}

func (c *sieve[K, V]) Delete(key K) bool {
	c.m.Lock()
	defer c.m.Unlock()

	elem, found := c.lookup[key]
	if !found {
		return false
	}

	if elem == c.hand {
		c.hand = elem.Prev()
	}

	c.entries.Remove(elem)
	delete(c.lookup, key)

	return true
}

func (c *sieve[K, V]) Contains(key K) bool {
	c.m.RLock()
	defer c.m.RUnlock()

	_, found := c.lookup[key]
	return found
}

func (c *sieve[K, V]) Walk(fct func(key K, val V) bool) {
	c.m.RLock()
	defer c.m.RUnlock()

	for elem := c.entries.Front(); elem != nil; elem = elem.Next() {
		ent := elem.Value.(*entry[K, V])

		if !fct(ent.key, ent.val) {
			return
		}
	}
}

func (c *sieve[K, V]) Len() int {
	c.m.RLock()
	defer c.m.RUnlock()

	return c.entries.Len()
}

func (c *sieve[K, V]) IsEmpty() bool {
	return c.Len() == 0
}

func (c *sieve[K, V]) Capacity() int {
	return c.capacity
}

func (c *sieve[K, V]) Purge() {
	c.m.Lock()
	defer c.m.Unlock()

	c.entries.Init()
	c.lookup = make(map[K]*list.Element, c.capacity)
	c.hand = nil
}

// evict removes the first entry whose visited bit is clear, starting
// at the hand (or the tail) and walking backward, clearing visited
// bits on the way and wrapping at the head. Callers must hold the
// write lock.
func (c *sieve[K, V]) evict() {
	old := c.hand
	if old == nil {
		old = c.entries.Back()
	}

	for {
		ent := old.Value.(*entry[K, V])

		if !ent.visited.Load() {
			break
		}

		ent.visited.Store(false)

		if prev := old.Prev(); prev != nil {
			old = prev
		} else {
			old = c.entries.Back()
		}
	}

	c.hand = old.Prev()

	delete(c.lookup, old.Value.(*entry[K, V]).key)
	c.entries.Remove(old)
}
