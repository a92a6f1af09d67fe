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

package atomic

import (
	"reflect"
	"sync/atomic"
)

// box wraps a stored value so that nil interfaces and mismatched
// concrete types can still be stored into a sync/atomic.Value.
type box[T any] struct {
	v T
}

type val[T any] struct {
	av *atomic.Value // current value
	dl *atomic.Value // default returned on empty Load
	ds *atomic.Value // default substituted on zero Store
}

func (o *val[T]) SetDefaultLoad(def T) {
	o.dl.Store(box[T]{v: def})
}

func (o *val[T]) SetDefaultStore(def T) {
	o.ds.Store(box[T]{v: def})
}

func (o *val[T]) getDefault(i any) T {
	if b, k := i.(box[T]); k {
		return b.v
	}

	var zero T
	return zero
}

func (o *val[T]) Load() (val T) {
	if b, k := o.av.Load().(box[T]); k {
		return b.v
	}

	return o.getDefault(o.dl.Load())
}

func (o *val[T]) Store(val T) {
	if isZero[T](val) {
		if d := o.ds.Load(); d != nil {
			val = o.getDefault(d)
		}
	}

	o.av.Store(box[T]{v: val})
}

func (o *val[T]) Swap(new T) (old T) {
	if isZero[T](new) {
		if d := o.ds.Load(); d != nil {
			new = o.getDefault(d)
		}
	}

	if b, k := o.av.Swap(box[T]{v: new}).(box[T]); k {
		return b.v
	}

	return o.getDefault(o.dl.Load())
}

func (o *val[T]) CompareAndSwap(old, new T) (swapped bool) {
	return o.av.CompareAndSwap(box[T]{v: old}, box[T]{v: new})
}

// isZero reports whether the given value is the zero value of T.
func isZero[T any](v T) bool {
	var r = reflect.ValueOf(&v).Elem()
	return !r.IsValid() || r.IsZero()
}
