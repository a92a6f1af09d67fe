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

// Package reactor provides the readiness demultiplexer of the runtime.
//
// One backend is selected at build time by target OS: epoll on Linux
// (one-shot edge-triggered events, a single timer descriptor re-armed
// to the next deadline, an eventfd for wake-ups) and kqueue on Darwin
// (one-shot EV_CLEAR events, a one-shot EVFILT_TIMER per submission,
// EVFILT_USER sentinel idents for wake-up and shutdown).
//
// The contract exposed upward is backend neutral: every queued
// operation completes exactly once, completions are FIFO per
// descriptor per direction, and when a descriptor's readiness and its
// deadline arrive in the same kernel batch the readiness wins.
package reactor

import (
	libaio "github.com/drouarb/aionet/aio"
	liblog "github.com/drouarb/aionet/logger"
	libmet "github.com/prometheus/client_golang/prometheus"
)

// Options tunes a new reactor.
type Options struct {
	// Logger provides the reactor logger; nil discards.
	Logger liblog.FuncLog
	// Registerer receives the reactor metrics; nil disables them.
	Registerer libmet.Registerer
}

// New returns the reactor backend of the build target.
func New(opt Options) (libaio.Reactor, error) {
	return newReactor(opt)
}
