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

//go:build linux

package reactor

import (
	"container/heap"
	"encoding/binary"
	"sync"
	"time"

	libaio "github.com/drouarb/aionet/aio"
	liblog "github.com/drouarb/aionet/logger"
	libmet "github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sys/unix"
)

// epl is the epoll backend. Three out-of-band kernel objects flank the
// multiplexing descriptor: an eventfd for wake-ups, a single timerfd
// re-armed to the next deadline, and an eventfd for shutdown.
type epl struct {
	m sync.Mutex

	epfd int
	wkfd int
	tmfd int
	shfd int

	fds  map[int]*fdState
	tmh  timeoutHeap
	wake []libaio.Completion

	stop   bool
	closed bool

	log liblog.FuncLog
	evt libmet.Counter
}

func newReactor(opt Options) (libaio.Reactor, error) {
	r := &epl{
		epfd: -1,
		wkfd: -1,
		tmfd: -1,
		shfd: -1,
		fds:  make(map[int]*fdState),
		log:  opt.Logger,
	}

	var err error

	if r.epfd, err = unix.EpollCreate1(unix.EPOLL_CLOEXEC); err != nil {
		return nil, ErrorCreate.Error(err)
	}

	if r.wkfd, err = unix.Eventfd(0, unix.EFD_CLOEXEC|unix.EFD_NONBLOCK); err != nil {
		r.closeAll()
		return nil, ErrorCreate.Error(err)
	}

	if r.tmfd, err = unix.TimerfdCreate(unix.CLOCK_MONOTONIC, unix.TFD_CLOEXEC|unix.TFD_NONBLOCK); err != nil {
		r.closeAll()
		return nil, ErrorCreate.Error(err)
	}

	if r.shfd, err = unix.Eventfd(0, unix.EFD_CLOEXEC|unix.EFD_NONBLOCK); err != nil {
		r.closeAll()
		return nil, ErrorCreate.Error(err)
	}

	for _, fd := range []int{r.wkfd, r.tmfd, r.shfd} {
		ev := &unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(fd)}
		if err = unix.EpollCtl(r.epfd, unix.EPOLL_CTL_ADD, fd, ev); err != nil {
			r.closeAll()
			return nil, ErrorCreate.Error(err)
		}
	}

	if opt.Registerer != nil {
		r.evt = libmet.NewCounter(libmet.CounterOpts{
			Name: "aionet_reactor_events_total",
			Help: "Number of completions delivered by the reactor.",
		})
		opt.Registerer.MustRegister(r.evt)
	}

	return r, nil
}

func (r *epl) Queue(resume libaio.Completion, fd int, op libaio.Op, timeout time.Duration) error {
	if resume == nil {
		return ErrorInvalidOp.Error(nil)
	} else if fd < 0 {
		return ErrorInvalidHandle.Error(nil)
	} else if !op.IsValid() {
		return ErrorInvalidOp.Error(nil)
	}

	r.m.Lock()
	defer r.m.Unlock()

	if r.stop {
		return ErrorShutdown.Error(nil)
	}

	o := &operation{
		resume: resume,
		fd:     fd,
		op:     op,
		hi:     -1,
	}

	st, ok := r.fds[fd]
	if !ok {
		st = &fdState{}
		r.fds[fd] = st
	}

	st.push(o)

	if err := r.arm(fd, st.pending(), !ok); err != nil {
		o.done = true
		return ErrorRegister.Error(err)
	}

	if timeout > 0 {
		o.deadline = time.Now().Add(timeout)
		heap.Push(&r.tmh, o)
		r.rearmTimer()
	}

	return nil
}

func (r *epl) Wake(resume libaio.Completion) error {
	if resume == nil {
		return ErrorInvalidOp.Error(nil)
	}

	r.m.Lock()

	if r.stop {
		r.m.Unlock()
		return ErrorShutdown.Error(nil)
	}

	r.wake = append(r.wake, resume)
	r.m.Unlock()

	return r.notify(r.wkfd)
}

func (r *epl) Dispatch() ([]libaio.Event, bool) {
	r.m.Lock()
	if r.closed {
		r.m.Unlock()
		return nil, false
	}
	r.m.Unlock()

	evs := make([]unix.EpollEvent, 64)

	var n int

	for {
		var err error
		n, err = unix.EpollWait(r.epfd, evs, -1)

		if err == unix.EINTR {
			continue
		} else if err != nil {
			return r.terminate(nil)
		}

		break
	}

	var (
		out   []libaio.Event
		timer bool
		shut  bool
	)

	for i := 0; i < n; i++ {
		ev := evs[i]

		switch int(ev.Fd) {
		case r.wkfd:
			r.drainEventfd(r.wkfd)
			out = append(out, r.popWake()...)

		case r.tmfd:
			r.drainEventfd(r.tmfd)
			timer = true

		case r.shfd:
			shut = true

		default:
			out = append(out, r.completeIO(ev)...)
		}
	}

	// readiness before deadlines within one kernel batch: a task whose
	// descriptor became ready in the same batch as its deadline sees
	// success, not timeout
	if timer {
		out = append(out, r.completeTimeouts()...)
	}

	if shut {
		return r.terminate(out)
	}

	r.count(len(out))

	return out, true
}

func (r *epl) Shutdown() {
	r.m.Lock()

	if r.stop {
		r.m.Unlock()
		return
	}

	r.stop = true
	r.m.Unlock()

	liblog.Get(r.log).Debug("reactor: shutdown requested")

	_ = r.notify(r.shfd)
}

// arm registers or updates the kernel interest of a descriptor. Every
// interest is one-shot and edge-triggered; the descriptor is re-armed
// after each delivery while operations remain queued.
func (r *epl) arm(fd int, op libaio.Op, isNew bool) error {
	var flags uint32 = unix.EPOLLONESHOT | unix.EPOLLRDHUP | unix.EPOLLET

	if op.Readable() {
		flags |= unix.EPOLLIN
	}

	if op.Writable() {
		flags |= unix.EPOLLOUT
	}

	ev := &unix.EpollEvent{Events: flags, Fd: int32(fd)}

	mode := unix.EPOLL_CTL_MOD
	if isNew {
		mode = unix.EPOLL_CTL_ADD
	}

	err := unix.EpollCtl(r.epfd, mode, fd, ev)

	if err == unix.EEXIST {
		err = unix.EpollCtl(r.epfd, unix.EPOLL_CTL_MOD, fd, ev)
	} else if err == unix.ENOENT {
		err = unix.EpollCtl(r.epfd, unix.EPOLL_CTL_ADD, fd, ev)
	}

	return err
}

// completeIO resolves one descriptor readiness event into completions.
func (r *epl) completeIO(ev unix.EpollEvent) []libaio.Event {
	r.m.Lock()
	defer r.m.Unlock()

	fd := int(ev.Fd)
	st, ok := r.fds[fd]

	if !ok {
		return nil
	}

	var (
		out  []libaio.Event
		rerr error
	)

	if ev.Events&(unix.EPOLLHUP|unix.EPOLLRDHUP) != 0 {
		rerr = libaio.ErrClosed()
	} else if ev.Events&unix.EPOLLERR != 0 {
		rerr = libaio.ErrorSystem.Error(nil)
	}

	if ev.Events&(unix.EPOLLIN|unix.EPOLLHUP|unix.EPOLLRDHUP|unix.EPOLLERR) != 0 {
		if op := st.pop(true); op != nil {
			op.done = true
			out = append(out, libaio.Event{Resume: op.resume, Size: 0, Err: rerr})
		}
	}

	if ev.Events&(unix.EPOLLOUT|unix.EPOLLHUP|unix.EPOLLERR) != 0 {
		if op := st.pop(false); op != nil {
			op.done = true
			out = append(out, libaio.Event{Resume: op.resume, Size: 0, Err: rerr})
		}
	}

	if pending := st.pending(); pending == 0 {
		_ = unix.EpollCtl(r.epfd, unix.EPOLL_CTL_DEL, fd, nil)
		delete(r.fds, fd)
	} else {
		_ = r.arm(fd, pending, false)
	}

	return out
}

// completeTimeouts pops every expired deadline and re-arms the timer
// descriptor to the next one.
func (r *epl) completeTimeouts() []libaio.Event {
	r.m.Lock()
	defer r.m.Unlock()

	var out []libaio.Event

	for _, op := range r.tmh.expired(time.Now()) {
		op.done = true
		out = append(out, libaio.Event{Resume: op.resume, Size: 0, Err: libaio.ErrorTimedOut.Error(nil)})
	}

	r.rearmTimer()

	return out
}

// terminate drains every pending operation with a cancelled result,
// releases the kernel objects and stops the loop.
func (r *epl) terminate(out []libaio.Event) ([]libaio.Event, bool) {
	r.m.Lock()
	defer r.m.Unlock()

	for _, op := range r.tmh.drain() {
		op.done = true
		out = append(out, libaio.Event{Resume: op.resume, Size: 0, Err: libaio.ErrorCancelled.Error(nil)})
	}

	for fd, st := range r.fds {
		for {
			op := st.pop(true)
			if op == nil {
				op = st.pop(false)
			}

			if op == nil {
				break
			}

			op.done = true
			out = append(out, libaio.Event{Resume: op.resume, Size: 0, Err: libaio.ErrorCancelled.Error(nil)})
		}

		_ = unix.EpollCtl(r.epfd, unix.EPOLL_CTL_DEL, fd, nil)
		delete(r.fds, fd)
	}

	for _, fn := range r.wake {
		out = append(out, libaio.Event{Resume: fn})
	}

	r.wake = nil
	r.stop = true
	r.closeAll()
	r.count(len(out))

	return out, false
}

func (r *epl) popWake() []libaio.Event {
	r.m.Lock()
	defer r.m.Unlock()

	out := make([]libaio.Event, 0, len(r.wake))

	for _, fn := range r.wake {
		out = append(out, libaio.Event{Resume: fn})
	}

	r.wake = nil

	return out
}

// rearmTimer points the timer descriptor at the earliest live
// deadline, or disarms it. Callers must hold the mutex.
func (r *epl) rearmTimer() {
	var spec unix.ItimerSpec

	if next := r.tmh.next(); !next.IsZero() {
		rel := time.Until(next)
		if rel <= 0 {
			rel = time.Nanosecond
		}

		spec.Value = unix.NsecToTimespec(rel.Nanoseconds())
	}

	_ = unix.TimerfdSettime(r.tmfd, 0, &spec, nil)
}

func (r *epl) drainEventfd(fd int) {
	var buf [8]byte

	for {
		if _, err := unix.Read(fd, buf[:]); err != nil {
			return
		}
	}
}

func (r *epl) notify(fd int) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], 1)

	if _, err := unix.Write(fd, buf[:]); err != nil && err != unix.EAGAIN {
		return ErrorRegister.Error(err)
	}

	return nil
}

// closeAll releases the kernel objects once. Callers must hold the
// mutex or be the only live reference.
func (r *epl) closeAll() {
	if r.closed {
		return
	}

	r.closed = true

	for _, fd := range []int{r.epfd, r.wkfd, r.tmfd, r.shfd} {
		if fd != -1 {
			_ = unix.Close(fd)
		}
	}
}

func (r *epl) count(n int) {
	if r.evt != nil && n > 0 {
		r.evt.Add(float64(n))
	}
}
