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

// Package group provides the lifetime anchor of fire-and-forget tasks.
// Task frames stay attached to a slot of the group until the task has
// completed and been garbage collected, so that continuation pointers
// held by the reactor never outlive their frame.
package group

import (
	libtsk "github.com/drouarb/aionet/aio/task"
	liblog "github.com/drouarb/aionet/logger"
)

// Default sizing of a new group.
const (
	DefaultCapacity = 8
	DefaultGrowth   = 2.0
)

// Group keeps task storage alive until completion.
//
// Invariant: live count + pending-deletion count + free slot count
// equals the capacity at every observation point outside the guarded
// section.
type Group interface {
	// Start attaches the task to the group and begins executing it
	// through the executor.
	Start(t libtsk.Runner, e libtsk.Executor) error

	// CollectGarbage reclaims the slots of finished tasks and returns
	// how many were reclaimed.
	CollectGarbage() int

	// Size returns the number of live tasks.
	Size() int
	// IsEmpty reports whether no task is live.
	IsEmpty() bool
	// Capacity returns the current slot count.
	Capacity() int
	// PendingDeletion returns the number of finished, not yet
	// collected tasks.
	PendingDeletion() int
	// FreeSlots returns the number of unused slots.
	FreeSlots() int
	// Stats returns live, pending-deletion, free and capacity counts
	// in one consistent snapshot.
	Stats() (live, pending, free, capacity int)

	// Close blocks until every live task has completed, then collects
	// every pending slot in one pass. This is the only blocking point
	// of the runtime core.
	Close() error
}

// Options tunes a new group.
type Options struct {
	// Capacity is the initial slot count; non-positive values default
	// to DefaultCapacity.
	Capacity int
	// Growth is the capacity growth factor; values not above 1 default
	// to DefaultGrowth.
	Growth float64
	// Logger provides the group logger; nil discards.
	Logger liblog.FuncLog
}

// New returns an empty group.
func New(opt Options) Group {
	return newGroup(opt)
}
