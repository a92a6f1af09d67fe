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

// Package pool provides a bounded pool of reusable resources with a
// target size and a hard maximum. The pool shrinks back to its target
// after bursts: returned resources above the target are dropped unless
// a getter is actively waiting.
package pool

import (
	liblog "github.com/drouarb/aionet/logger"
)

// FuncMake builds a new resource when the pool is empty and below its
// maximum size.
type FuncMake[T any] func() (T, error)

// FuncDrop releases a resource the pool decided not to keep. Nil
// means dropping is free.
type FuncDrop[T any] func(res T)

// Pool is a bounded stack of reusable resources.
//
// In steady state the number of idle resources never exceeds the
// target size; during bursts idle plus borrowed never exceeds the
// maximum.
type Pool[T any] interface {
	// Get pops an idle resource, builds one while below the maximum,
	// or blocks until another borrower returns one.
	Get() (T, error)

	// TryGet is the non-blocking variant: ok is false when the pool is
	// empty and at its maximum.
	TryGet() (res T, ok bool, err error)

	// Put returns a borrowed resource. Resources above the target are
	// dropped unless a Get is waiting.
	Put(res T)

	// Discard accounts a borrowed resource as dead without returning
	// it, freeing its slot for a future Get.
	Discard(res T)

	// Use borrows a resource around the given function, returning it
	// on every path.
	Use(fn func(res T) error) error

	// Available returns the number of idle resources.
	Available() int
	// InUse returns the number of borrowed resources.
	InUse() int
}

// Options tunes a new pool.
type Options struct {
	// Target is the steady-state idle bound; non-positive defaults
	// to 1.
	Target int
	// Max is the hard bound of idle plus borrowed; values below the
	// target are raised to it.
	Max int
	// Logger provides the pool logger; nil discards.
	Logger liblog.FuncLog
}

// New returns an empty pool producing resources with make and
// releasing dropped ones with drop.
func New[T any](opt Options, mk FuncMake[T], drop FuncDrop[T]) (Pool[T], error) {
	if mk == nil {
		return nil, ErrorInvalidMake.Error(nil)
	}

	target := opt.Target
	if target <= 0 {
		target = 1
	}

	max := opt.Max
	if max < target {
		max = target
	}

	p := &pol[T]{
		mk:     mk,
		drop:   drop,
		target: target,
		max:    max,
		log:    opt.Logger,
	}

	p.c.L = &p.m

	return p, nil
}
