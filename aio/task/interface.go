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

// Package task provides the cooperative unit of execution of the
// runtime. A task body runs only while a worker drives it: the worker
// blocks in Resume while the body executes, and regains control at
// every suspension point. Suspension hands a wake completion to the
// registrar (usually the reactor through the scheduler); invoking the
// wake resumes the body on the invoking goroutine.
//
// A task holds at most one continuation: the closure of whoever awaits
// its completion. The continuation runs on the worker that completed
// the task.
package task

import (
	"context"

	libaio "github.com/drouarb/aionet/aio"
)

// State is the lifecycle position of a task.
type State uint8

const (
	// NotStarted means the initial suspension still holds.
	NotStarted State = iota
	// Running means a worker currently drives the body.
	Running
	// Suspended means the body sits at an await point.
	Suspended
	// Completed means the body returned and the result is stored.
	Completed
	// Destroyed means the frame has been released.
	Destroyed
)

// String returns the symbolic name of the state.
func (s State) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case Running:
		return "running"
	case Suspended:
		return "suspended"
	case Completed:
		return "completed"
	case Destroyed:
		return "destroyed"
	}

	return "invalid"
}

// Executor runs ready continuations. The worker pool implements it.
type Executor interface {
	// Schedule enqueues a job for execution by the executor.
	Schedule(job func()) error
	// Resume enqueues a batch of ready jobs in one notification.
	Resume(jobs ...func())
}

// Runner is the type-erased view of a task, used by the task group and
// the scheduler.
type Runner interface {
	// Resume drives the body until its next suspension point and
	// reports whether the task still runs. The first call starts the
	// body; completing it fires the stored continuation inline.
	Resume() bool
	// IsReady reports whether the task has completed (or was
	// destroyed before starting).
	IsReady() bool
	// State returns the current lifecycle state.
	State() State
	// SetContinuation stores the single continuation, invoking it at
	// once when the task has already completed.
	SetContinuation(fn func())
	// Destroy releases the frame. Only a completed or never started
	// task can be destroyed; Destroy reports whether it released.
	Destroy() bool
	// Err returns the stored failure after completion, nil otherwise.
	Err() error
}

// Task is a suspendable unit of work producing a value of type T.
type Task[T any] interface {
	Runner

	// Wait blocks the calling goroutine (not a worker) until the task
	// completes or the context expires, then returns the result.
	Wait(ctx context.Context) (T, error)
	// Result returns the stored value and failure; it must only be
	// called once IsReady reports true.
	Result() (T, error)
}

// Func is a task body. The passed Context carries the cancellation
// context and the suspension machinery.
type Func[T any] func(tc *Context) (T, error)

// New returns a task over the given body. Nothing runs until the task
// is resumed by a worker or started through a group.
func New[T any](ctx context.Context, fn Func[T]) Task[T] {
	if ctx == nil {
		ctx = context.Background()
	}

	t := &tsk[T]{fn: fn}
	t.f.init(ctx)

	return t
}

// Await suspends the calling task until the other task completes,
// driving it on the current worker until its first suspension point
// (the go analogue of a symmetric transfer). The other task must not
// be attached to a group.
func Await[T any](tc *Context, other Task[T]) (T, error) {
	// direct transfer: run the awaited task here until it suspends or
	// completes
	if other.State() == NotStarted {
		other.Resume()
	}

	if !other.IsReady() {
		_, err := tc.Suspend(func(wake libaio.Completion) error {
			other.SetContinuation(func() { wake(0, nil) })
			return nil
		})

		if err != nil {
			var zero T
			return zero, err
		}
	}

	return other.Result()
}

// Yield reposts the calling task at the tail of the executor queue,
// letting other ready continuations run first.
func Yield(tc *Context, e Executor) error {
	_, err := tc.Suspend(func(wake libaio.Completion) error {
		return e.Schedule(func() { wake(0, nil) })
	})

	return err
}
