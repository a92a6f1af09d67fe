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

package pool

import (
	"sync"

	liblog "github.com/drouarb/aionet/logger"
)

type pol[T any] struct {
	m sync.Mutex
	c sync.Cond

	idle    []T
	borrow  int
	waiting int

	mk   FuncMake[T]
	drop FuncDrop[T]

	target int
	max    int

	log liblog.FuncLog
}

func (p *pol[T]) Get() (T, error) {
	p.m.Lock()
	defer p.m.Unlock()

	for {
		if len(p.idle) > 0 {
			return p.pop(), nil
		}

		if len(p.idle)+p.borrow < p.max {
			return p.make()
		}

		// hard limit: wait for a resource to come back
		p.waiting++
		p.c.Wait()
		p.waiting--
	}
}

func (p *pol[T]) TryGet() (res T, ok bool, err error) {
	p.m.Lock()
	defer p.m.Unlock()

	if len(p.idle) > 0 {
		return p.pop(), true, nil
	}

	if len(p.idle)+p.borrow < p.max {
		if res, err = p.make(); err != nil {
			return res, false, err
		}

		return res, true, nil
	}

	return res, false, nil
}

func (p *pol[T]) Put(res T) {
	p.m.Lock()

	p.borrow--

	// above target with nobody waiting: shrink back by dropping
	if len(p.idle) >= p.target && p.waiting == 0 {
		drop := p.drop
		p.m.Unlock()

		if drop != nil {
			drop(res)
		}

		return
	}

	p.idle = append(p.idle, res)
	p.c.Signal()
	p.m.Unlock()
}

func (p *pol[T]) Discard(res T) {
	p.m.Lock()
	p.borrow--
	drop := p.drop
	p.c.Signal()
	p.m.Unlock()

	if drop != nil {
		drop(res)
	}
}

func (p *pol[T]) Use(fn func(res T) error) error {
	res, err := p.Get()
	if err != nil {
		return err
	}

	defer p.Put(res)

	return fn(res)
}

func (p *pol[T]) Available() int {
	p.m.Lock()
	defer p.m.Unlock()

	return len(p.idle)
}

func (p *pol[T]) InUse() int {
	p.m.Lock()
	defer p.m.Unlock()

	return p.borrow
}

// pop removes the top idle resource. Callers must hold the mutex.
func (p *pol[T]) pop() T {
	last := len(p.idle) - 1
	res := p.idle[last]

	var zero T
	p.idle[last] = zero
	p.idle = p.idle[:last]

	p.borrow++

	return res
}

// make builds a fresh resource. Callers must hold the mutex.
func (p *pol[T]) make() (T, error) {
	res, err := p.mk()

	if err != nil {
		liblog.Get(p.log).CheckError("pool: factory failed", err)
		return res, ErrorFactory.Error(err)
	}

	p.borrow++

	return res, nil
}
