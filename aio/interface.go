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

// Package aio holds the shared vocabulary of the asynchronous runtime:
// poll operations, completions, reactor events and the runtime error
// taxonomy. The concrete pieces live in the sub packages reactor,
// task, pool, group and scheduler.
package aio

import (
	"time"
)

// InvalidFd is the invalid OS handle value.
const InvalidFd = -1

// Op selects the readiness direction of a submitted operation.
type Op uint8

const (
	// OpRead waits for the descriptor to become readable.
	OpRead Op = 1 << iota
	// OpWrite waits for the descriptor to become writable.
	OpWrite

	// OpReadWrite waits for either direction.
	OpReadWrite = OpRead | OpWrite
)

// Readable reports whether the op includes read interest.
func (o Op) Readable() bool {
	return o&OpRead != 0
}

// Writable reports whether the op includes write interest.
func (o Op) Writable() bool {
	return o&OpWrite != 0
}

// IsValid reports whether the op selects at least one direction and
// nothing else.
func (o Op) IsValid() bool {
	return o != 0 && o&^OpReadWrite == 0
}

// String returns the symbolic name of the op.
func (o Op) String() string {
	switch o {
	case OpRead:
		return "read"
	case OpWrite:
		return "write"
	case OpReadWrite:
		return "read+write"
	}

	return "invalid"
}

// Completion is the stored continuation of a suspended operation. The
// reactor invokes it exactly once, with the byte count reported by the
// backend (zero when the backend has none) and the completion error:
// nil on readiness, a timed-out code on deadline, a cancelled code on
// shutdown, a closed code on half-close.
type Completion func(size int, err error)

// Event is one reactor completion, pairing the continuation with its
// result. The worker pool resumes the continuation.
type Event struct {
	Resume Completion
	Size   int
	Err    error
}

// Reactor multiplexes descriptor readiness, deadlines and wake-ups on
// one OS primitive. Implementations are selected at build time, see
// the reactor sub package.
type Reactor interface {
	// Queue registers a continuation to be completed exactly once,
	// when fd becomes ready for op, when the timeout expires, or when
	// the reactor shuts down. A zero timeout means no deadline.
	Queue(resume Completion, fd int, op Op, timeout time.Duration) error

	// Wake hands a ready continuation to the reactor out of band; the
	// next dispatch returns it with a zero result.
	Wake(resume Completion) error

	// Dispatch blocks on the OS primitive and returns the next batch
	// of events. The second return value is false once the reactor is
	// shut down and fully drained.
	Dispatch() ([]Event, bool)

	// Shutdown stops the loop. Pending operations complete with a
	// cancelled error. Shutdown is idempotent.
	Shutdown()
}
