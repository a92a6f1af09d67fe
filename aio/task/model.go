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

package task

import (
	"context"
	"fmt"
	"sync"

	libaio "github.com/drouarb/aionet/aio"
)

// frame is the type-erased part of a task: the hand-off channels
// between the driving worker and the body goroutine, the lifecycle
// state and the stored continuation. Frames are pinned for their whole
// life: the wake completion captured by the reactor points here.
type frame struct {
	m sync.Mutex

	resume chan struct{} // worker -> body: run
	yield  chan struct{} // body -> worker: suspended or completed
	done   chan struct{} // closed at completion

	st   State
	cont func()

	wakeN   int
	wakeErr error

	ctx context.Context
}

func (f *frame) init(ctx context.Context) {
	f.resume = make(chan struct{})
	f.yield = make(chan struct{})
	f.done = make(chan struct{})
	f.ctx = ctx
}

// step hands control to the body until its next suspension point. It
// is the single resumption primitive: the initial start, reactor
// wake-ups and continuations all come through here. The completing
// step runs the stored continuation inline on the current goroutine.
func (f *frame) step() bool {
	f.resume <- struct{}{}
	<-f.yield

	f.m.Lock()
	done := f.st == Completed
	var cont func()
	if done {
		cont = f.cont
		f.cont = nil
	}
	f.m.Unlock()

	if cont != nil {
		cont()
	}

	return !done
}

// wake stores the operation result and resumes the body on the
// calling goroutine.
func (f *frame) wake(size int, err error) {
	f.m.Lock()
	f.wakeN = size
	f.wakeErr = err
	f.m.Unlock()

	f.step()
}

// Context is handed to a task body. It carries the cancellation
// context plus the suspension primitive the I/O layer builds on.
type Context struct {
	context.Context

	f *frame
}

// Suspend parks the task after handing a wake completion to the given
// registrar. The registrar must not invoke the wake on the current
// goroutine; it may invoke it from any other goroutine, even before
// Suspend parks. When the registrar returns an error the task is not
// parked and the error is returned as is.
func (tc *Context) Suspend(register func(wake libaio.Completion) error) (int, error) {
	if err := register(tc.f.wake); err != nil {
		return 0, err
	}

	tc.f.m.Lock()
	tc.f.st = Suspended
	tc.f.m.Unlock()

	// park: give control back to the driving worker, wait for wake
	tc.f.yield <- struct{}{}
	<-tc.f.resume

	tc.f.m.Lock()
	tc.f.st = Running
	n, err := tc.f.wakeN, tc.f.wakeErr
	tc.f.m.Unlock()

	return n, err
}

// tsk binds a frame to a typed body and result.
type tsk[T any] struct {
	f   frame
	fn  Func[T]
	val T
	err error
}

func (t *tsk[T]) Resume() bool {
	t.f.m.Lock()

	switch t.f.st {
	case Completed, Destroyed:
		t.f.m.Unlock()
		return false

	case NotStarted:
		t.f.st = Running
		t.f.m.Unlock()
		go t.run()

	default:
		t.f.m.Unlock()
	}

	return t.f.step()
}

// run is the body goroutine. It parks on the initial suspension and
// executes the body once the first step arrives.
func (t *tsk[T]) run() {
	<-t.f.resume

	val, err := t.invoke()

	t.f.m.Lock()
	t.val = val
	t.err = err
	t.f.st = Completed
	t.f.m.Unlock()

	close(t.f.done)

	// return control to the worker driving the final step
	t.f.yield <- struct{}{}
}

// invoke shields the runtime from a panicking body.
func (t *tsk[T]) invoke() (val T, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = ErrorPanic.Error(fmt.Errorf("%v", rec))
		}
	}()

	return t.fn(&Context{Context: t.f.ctx, f: &t.f})
}

func (t *tsk[T]) IsReady() bool {
	t.f.m.Lock()
	defer t.f.m.Unlock()

	return t.f.st == Completed || t.f.st == Destroyed
}

func (t *tsk[T]) State() State {
	t.f.m.Lock()
	defer t.f.m.Unlock()

	return t.f.st
}

func (t *tsk[T]) SetContinuation(fn func()) {
	t.f.m.Lock()

	if t.f.st == Completed {
		t.f.m.Unlock()

		if fn != nil {
			fn()
		}

		return
	}

	t.f.cont = fn
	t.f.m.Unlock()
}

func (t *tsk[T]) Destroy() bool {
	t.f.m.Lock()
	defer t.f.m.Unlock()

	switch t.f.st {
	case Completed, NotStarted:
		t.f.st = Destroyed
		t.f.cont = nil
		return true

	case Destroyed:
		return true
	}

	return false
}

func (t *tsk[T]) Err() error {
	t.f.m.Lock()
	defer t.f.m.Unlock()

	if t.f.st != Completed {
		return nil
	}

	return t.err
}

func (t *tsk[T]) Wait(ctx context.Context) (T, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	select {
	case <-t.f.done:
		return t.Result()

	case <-ctx.Done():
		var zero T
		return zero, ErrorContext.Error(ctx.Err())
	}
}

func (t *tsk[T]) Result() (T, error) {
	t.f.m.Lock()
	defer t.f.m.Unlock()

	if t.f.st != Completed && t.f.st != Destroyed {
		var zero T
		return zero, ErrorNotCompleted.Error(nil)
	}

	return t.val, t.err
}
