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

// Package pool provides the worker pool resuming ready continuations.
// A fixed number of workers drain one FIFO guarded by a mutex and a
// condition variable; the job counter tracks queued plus executing
// jobs for observability.
package pool

import (
	"runtime"

	libtsk "github.com/drouarb/aionet/aio/task"
	liblog "github.com/drouarb/aionet/logger"
	libmet "github.com/prometheus/client_golang/prometheus"
)

// Pool runs ready continuations on a fixed set of workers.
type Pool interface {
	libtsk.Executor

	// Concurrency returns the number of workers.
	Concurrency() int
	// Size returns the number of live jobs, queued plus executing.
	Size() int
	// IsEmpty reports whether no job is live.
	IsEmpty() bool
	// QueueSize returns the number of queued, not yet running jobs.
	QueueSize() int

	// Shutdown stops the workers and joins them. Jobs already queued
	// still run before the workers exit. Shutdown is idempotent.
	Shutdown()
}

// Options tunes a new pool.
type Options struct {
	// Concurrency is the worker count; when not positive it defaults
	// to HardwareConcurrency(1).
	Concurrency int
	// Logger provides the pool logger; nil discards.
	Logger liblog.FuncLog
	// Registerer receives the pool metrics; nil disables them.
	Registerer libmet.Registerer
}

// HardwareConcurrency returns the machine parallelism minus the given
// amount, never less than one.
func HardwareConcurrency(minus int) int {
	count := runtime.NumCPU()

	if count > 1 && count > minus {
		return count - minus
	}

	return 1
}

// New returns a started pool.
func New(opt Options) Pool {
	return newPool(opt)
}
