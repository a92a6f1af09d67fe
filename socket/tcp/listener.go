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

type lstn struct {
	p   Poller
	fd  atomic.Int64
	tmo time.Duration
	kpa bool
}

func newListener(p Poller, cfg libsck.Config) (Listener, error) {
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

	if err = unix.Bind(fd, sa); err != nil {
		_ = unix.Close(fd)
		return nil, libsck.ErrorBind.Error(err)
	}

	if err = unix.Listen(fd, cfg.GetBacklog()); err != nil {
		_ = unix.Close(fd)
		return nil, libsck.ErrorListen.Error(err)
	}

	l := &lstn{
		p:   p,
		tmo: cfg.Timeout.Time(),
		kpa: cfg.KeepAlive,
	}

	l.fd.Store(int64(fd))

	return l, nil
}

// setOptions applies the socket options shared by listeners and dialed
// connections: address reuse, keep-alive probes and receive timeout.
func setOptions(fd int, cfg libsck.Config) error {
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		return libsck.ErrorOpen.Error(err)
	}

	if cfg.KeepAlive {
		if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_KEEPALIVE, 1); err != nil {
			return libsck.ErrorOpen.Error(err)
		}
	}

	if tmo := cfg.Timeout.Time(); tmo > 0 {
		tv := unix.NsecToTimeval(tmo.Nanoseconds())
		if err := unix.SetsockoptTimeval(fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv); err != nil {
			return libsck.ErrorOpen.Error(err)
		}
	}

	return nil
}

func (l *lstn) Fd() int {
	return int(l.fd.Load())
}

func (l *lstn) Accept(tc *libtsk.Context) (Conn, error) {
	if tc == nil {
		return nil, libsck.ErrorNotBound.Error(nil)
	}

	for {
		fd := l.Fd()
		if fd < 0 {
			return nil, libsck.ErrorClosed.Error(nil)
		}

		nfd, _, err := unix.Accept4(fd, unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)

		switch err {
		case nil:
			return newConn(nfd, l.p, l.tmo).Bind(tc), nil

		case unix.EINTR, unix.ECONNABORTED:
			continue

		case unix.EAGAIN:
			if _, perr := l.p.Poll(tc, fd, libaio.OpRead, l.tmo); perr != nil {
				if libaio.IsClosed(perr) {
					// readiness with a pending hang-up: retry the
					// syscall once more to drain the accept queue
					continue
				}

				return nil, perr
			}

		default:
			return nil, libsck.ErrorAccept.Error(err)
		}
	}
}

func (l *lstn) Addr() string {
	fd := l.Fd()
	if fd < 0 {
		return ""
	}

	if sa, err := unix.Getsockname(fd); err == nil {
		return addrString(sa)
	}

	return ""
}

func (l *lstn) Close() error {
	if fd := l.fd.Swap(-1); fd >= 0 {
		return unix.Close(int(fd))
	}

	return nil
}

func (l *lstn) IsClosed() bool {
	return l.Fd() < 0
}
