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

package tcp

import (
	"sync/atomic"
	"time"

	libaio "github.com/drouarb/aionet/aio"
	libtsk "github.com/drouarb/aionet/aio/task"
	libsck "github.com/drouarb/aionet/socket"
	"golang.org/x/sys/unix"
)

type conn struct {
	p   Poller
	fd  atomic.Int64
	tc  *libtsk.Context
	tmo time.Duration
}

func newConn(fd int, p Poller, tmo time.Duration) Conn {
	c := &conn{
		p:   p,
		tmo: tmo,
	}

	c.fd.Store(int64(fd))

	return c
}

func dial(tc *libtsk.Context, p Poller, cfg libsck.Config) (Conn, error) {
	if tc == nil {
		return nil, libsck.ErrorNotBound.Error(nil)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	adr, err := resolve(cfg)
	if err != nil {
		return nil, err
	}

	sa, family := sockaddr(adr)

	fd, err := unix.Socket(family, unix.SOCK_STREAM|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, libsck.ErrorOpen.Error(err)
	}

	if err = setOptions(fd, cfg); err != nil {
		_ = unix.Close(fd)
		return nil, err
	}

	err = unix.Connect(fd, sa)

	if err == unix.EINPROGRESS {
		if _, perr := p.Poll(tc, fd, libaio.OpWrite, cfg.Timeout.Time()); perr != nil && !libaio.IsClosed(perr) {
			_ = unix.Close(fd)
			return nil, perr
		}

		soerr, gerr := unix.GetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_ERROR)

		if gerr != nil {
			_ = unix.Close(fd)
			return nil, libsck.ErrorConnect.Error(gerr)
		} else if soerr != 0 {
			_ = unix.Close(fd)
			return nil, libsck.ErrorConnect.Error(unix.Errno(soerr))
		}
	} else if err != nil {
		_ = unix.Close(fd)
		return nil, libsck.ErrorConnect.Error(err)
	}

	return newConn(fd, p, cfg.Timeout.Time()).Bind(tc), nil
}

func (c *conn) Bind(tc *libtsk.Context) Conn {
	c.tc = tc
	return c
}

func (c *conn) Fd() int {
	return int(c.fd.Load())
}

func (c *conn) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if c.tc == nil {
		return 0, libsck.ErrorNotBound.Error(nil)
	}

	for {
		fd := c.Fd()
		if fd < 0 {
			return 0, libsck.ErrorClosed.Error(nil)
		}

		n, err := unix.Read(fd, p)

		switch {
		case err == unix.EINTR:
			continue

		case err == unix.EAGAIN:
			if _, perr := c.p.Poll(c.tc, fd, libaio.OpRead, c.tmo); perr != nil && !libaio.IsClosed(perr) {
				return 0, perr
			}

		case err != nil:
			return 0, libaio.ErrSystem(err)

		case n == 0:
			// a zero byte read on a non empty buffer is end of stream
			return 0, libaio.ErrClosed()

		default:
			return n, nil
		}
	}
}

func (c *conn) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if c.tc == nil {
		return 0, libsck.ErrorNotBound.Error(nil)
	}

	for {
		fd := c.Fd()
		if fd < 0 {
			return 0, libsck.ErrorClosed.Error(nil)
		}

		n, err := unix.Write(fd, p)

		switch {
		case err == unix.EINTR:
			continue

		case err == unix.EAGAIN:
			if _, perr := c.p.Poll(c.tc, fd, libaio.OpWrite, c.tmo); perr != nil && !libaio.IsClosed(perr) {
				return 0, perr
			}

		case err != nil:
			return 0, libaio.ErrSystem(err)

		default:
			// partial writes are legal, callers loop
			return n, nil
		}
	}
}

func (c *conn) Close() error {
	if fd := c.fd.Swap(-1); fd >= 0 {
		return unix.Close(int(fd))
	}

	return nil
}

func (c *conn) IsClosed() bool {
	return c.Fd() < 0
}

func (c *conn) LocalAddr() string {
	if fd := c.Fd(); fd >= 0 {
		if sa, err := unix.Getsockname(fd); err == nil {
			return addrString(sa)
		}
	}

	return ""
}

func (c *conn) RemoteAddr() string {
	if fd := c.Fd(); fd >= 0 {
		if sa, err := unix.Getpeername(fd); err == nil {
			return addrString(sa)
		}
	}

	return ""
}
