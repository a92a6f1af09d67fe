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

// Package tcp provides the stream socket primitives of the runtime: a
// listener whose accept suspends on readiness, and a connection whose
// reads and writes first try the non-blocking syscall and await the
// reactor on would-block.
//
// Connections are owned by one task at a time; Bind attaches the
// owning task context used at every suspension point.
package tcp

import (
	"net"
	"time"

	libaio "github.com/drouarb/aionet/aio"
	libtsk "github.com/drouarb/aionet/aio/task"
	libiot "github.com/drouarb/aionet/ioutils"
	libsck "github.com/drouarb/aionet/socket"
)

// Poller is the scheduler surface the socket layer consumes.
type Poller interface {
	Poll(tc *libtsk.Context, fd int, op libaio.Op, timeout time.Duration) (int, error)
}

// Conn is a connected stream socket.
type Conn interface {
	libiot.ReadWriter

	// Bind attaches the task context used at suspension points. It
	// returns the connection for chaining.
	Bind(tc *libtsk.Context) Conn

	// Close releases the OS handle exactly once.
	Close() error
	// IsClosed reports whether the handle has been released.
	IsClosed() bool

	// LocalAddr returns the bound local endpoint.
	LocalAddr() string
	// RemoteAddr returns the connected peer endpoint.
	RemoteAddr() string
}

// Listener is a bound, listening stream socket.
type Listener interface {
	libiot.Handler

	// Accept suspends until a connection arrives and returns it bound
	// to the given task context.
	Accept(tc *libtsk.Context) (Conn, error)

	// Addr returns the bound endpoint, with the effective port.
	Addr() string

	// Close releases the OS handle exactly once.
	Close() error
	// IsClosed reports whether the handle has been released.
	IsClosed() bool
}

// Listen binds a listening socket per the given config.
func Listen(p Poller, cfg libsck.Config) (Listener, error) {
	return newListener(p, cfg)
}

// Dial opens a connection to the configured endpoint, suspending the
// calling task while the connect is in flight.
func Dial(tc *libtsk.Context, p Poller, cfg libsck.Config) (Conn, error) {
	return dial(tc, p, cfg)
}

// resolve maps the configured endpoint to a TCP address of the
// configured family. Name resolution is delegated to the net package.
func resolve(cfg libsck.Config) (*net.TCPAddr, error) {
	adr, err := net.ResolveTCPAddr(cfg.Protocol.Network(), cfg.Address)

	if err != nil {
		return nil, libsck.ErrorResolve.Error(err)
	}

	return adr, nil
}
