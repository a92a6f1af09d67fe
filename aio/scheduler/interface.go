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

// Package scheduler provides the facade of the runtime: a worker pool,
// a reactor, and the dedicated goroutine that pumps reactor events
// into the pool. Tasks run on the workers and come back to them after
// every reactor wake-up.
package scheduler

import (
	"time"

	libaio "github.com/drouarb/aionet/aio"
	libpol "github.com/drouarb/aionet/aio/pool"
	libtsk "github.com/drouarb/aionet/aio/task"
	liblog "github.com/drouarb/aionet/logger"
	libmet "github.com/prometheus/client_golang/prometheus"
)

// Scheduler owns the runtime pieces and exposes the two operations
// everything else builds on: starting a task and polling a descriptor.
type Scheduler interface {
	libtsk.Executor

	// Start schedules a task's initial resume on the worker pool.
	Start(t libtsk.Runner) error

	// Poll suspends the calling task until the descriptor becomes
	// ready for the operation, the timeout fires, or the scheduler
	// shuts down. A zero timeout polls without deadline. The returned
	// count is the backend's byte count hint, zero when it has none.
	Poll(tc *libtsk.Context, fd int, op libaio.Op, timeout time.Duration) (int, error)

	// Yield reposts the calling task at the tail of the ready queue.
	Yield(tc *libtsk.Context) error

	// Workers returns the worker pool.
	Workers() libpol.Pool

	// IsRunning reports whether the scheduler accepts work.
	IsRunning() bool

	// Shutdown stops the reactor, cancels pending operations, joins
	// the dispatch goroutine and stops the pool. It is idempotent.
	Shutdown()
}

// Options tunes a new scheduler.
type Options struct {
	// Workers is the worker count; non-positive values default to the
	// machine parallelism minus one, with a minimum of one.
	Workers int
	// Logger provides the scheduler logger; nil discards.
	Logger liblog.FuncLog
	// Registerer receives the runtime metrics; nil disables them.
	Registerer libmet.Registerer
}

// New returns a running scheduler.
func New(opt Options) (Scheduler, error) {
	return newScheduler(opt)
}
