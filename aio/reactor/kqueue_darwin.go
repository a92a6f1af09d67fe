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

//go:build darwin

package reactor

import (
	"sync"
	"time"

	libaio "github.com/drouarb/aionet/aio"
	liblog "github.com/drouarb/aionet/logger"
	libmet "github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sys/unix"
)

// Sentinel idents of the user-event filter.
const (
	wakeIdent     = 0x77616b65 // "wake"
	shutdownIdent = 0x65786974 // "exit"
)

// kqu is the kqueue backend. Wake-up and shutdown are user-filter
// events on sentinel idents; each submission with a deadline adds a
// one-shot timer event of its own.
type kqu struct {
	m sync.Mutex

	kq int

	fds  map[int]*fdState
	tms  map[uint64]*operation
	tmid uint64
	wake []libaio.Completion

	stop   bool
	closed bool

	log liblog.FuncLog
	evt libmet.Counter
}

func newReactor(opt Options) (libaio.Reactor, error) {
	kq, err := unix.Kqueue()
	if err != nil {
		return nil, ErrorCreate.Error(err)
	}

	r := &kqu{
		kq:  kq,
		fds: make(map[int]*fdState),
		tms: make(map[uint64]*operation),
		log: opt.Logger,
	}

	regs := []unix.Kevent_t{
		{Ident: wakeIdent, Filter: unix.EVFILT_USER, Flags: unix.EV_ADD | unix.EV_CLEAR},
		{Ident: shutdownIdent, Filter: unix.EVFILT_USER, Flags: unix.EV_ADD | unix.EV_CLEAR},
	}

	if _, err = unix.Kevent(kq, regs, nil, nil); err != nil {
		_ = unix.Close(kq)
		return nil, ErrorCreate.Error(err)
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

func (r *kqu) Queue(resume libaio.Completion, fd int, op libaio.Op, timeout time.Duration) error {
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

	// up to three one-shot events per submission: read, write, timer
	regs := make([]unix.Kevent_t, 0, 3)

	if op.Readable() {
		regs = append(regs, unix.Kevent_t{
			Ident:  uint64(fd),
			Filter: unix.EVFILT_READ,
			Flags:  unix.EV_ADD | unix.EV_ONESHOT | unix.EV_CLEAR,
		})
	}

	if op.Writable() {
		regs = append(regs, unix.Kevent_t{
			Ident:  uint64(fd),
			Filter: unix.EVFILT_WRITE,
			Flags:  unix.EV_ADD | unix.EV_ONESHOT | unix.EV_CLEAR,
		})
	}

	var tmid uint64

	if timeout > 0 {
		r.tmid++
		tmid = r.tmid
		regs = append(regs, unix.Kevent_t{
			Ident:  tmid,
			Filter: unix.EVFILT_TIMER,
			Flags:  unix.EV_ADD | unix.EV_ONESHOT,
			Data:   timeout.Milliseconds(),
		})
	}

	if _, err := unix.Kevent(r.kq, regs, nil, nil); err != nil {
		return ErrorRegister.Error(err)
	}

	st, ok := r.fds[fd]
	if !ok {
		st = &fdState{}
		r.fds[fd] = st
	}

	st.push(o)

	if tmid != 0 {
		r.tms[tmid] = o
	}

	return nil
}

func (r *kqu) Wake(resume libaio.Completion) error {
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

	return r.trigger(wakeIdent)
}

func (r *kqu) Dispatch() ([]libaio.Event, bool) {
	r.m.Lock()
	if r.closed {
		r.m.Unlock()
		return nil, false
	}
	r.m.Unlock()

	evs := make([]unix.Kevent_t, 64)

	var n int

	for {
		var err error
		n, err = unix.Kevent(r.kq, nil, evs, nil)

		if err == unix.EINTR {
			continue
		} else if err != nil {
			return r.terminate(nil)
		}

		break
	}

	var (
		out  []libaio.Event
		late []libaio.Event
		shut bool
	)

	for i := 0; i < n; i++ {
		ev := evs[i]

		switch ev.Filter {
		case unix.EVFILT_USER:
			if ev.Ident == shutdownIdent {
				shut = true
			} else if ev.Ident == wakeIdent {
				out = append(out, r.popWake()...)
			}

		case unix.EVFILT_TIMER:
			// held back so that same-batch readiness wins over the
			// deadline of the same operation
			late = append(late, r.completeTimer(ev.Ident)...)

		case unix.EVFILT_READ, unix.EVFILT_WRITE:
			out = append(out, r.completeIO(ev)...)
		}
	}

	out = append(out, late...)

	if shut {
		return r.terminate(out)
	}

	r.count(len(out))

	return out, true
}

func (r *kqu) Shutdown() {
	r.m.Lock()

	if r.stop {
		r.m.Unlock()
		return
	}

	r.stop = true
	r.m.Unlock()

	liblog.Get(r.log).Debug("reactor: shutdown requested")

	_ = r.trigger(shutdownIdent)
}

func (r *kqu) completeIO(ev unix.Kevent_t) []libaio.Event {
	r.m.Lock()
	defer r.m.Unlock()

	st, ok := r.fds[int(ev.Ident)]
	if !ok {
		return nil
	}

	op := st.pop(ev.Filter == unix.EVFILT_READ)
	if op == nil {
		return nil
	}

	op.done = true

	var rerr error

	if ev.Flags&unix.EV_EOF != 0 {
		if ev.Fflags != 0 {
			rerr = libaio.ErrSystem(unix.Errno(ev.Fflags))
		} else {
			rerr = libaio.ErrClosed()
		}
	}

	if pending := st.pending(); pending == 0 {
		delete(r.fds, int(ev.Ident))
	} else {
		// the one-shot knote is gone: re-register the remaining
		// interest so queued operations still complete
		regs := make([]unix.Kevent_t, 0, 2)

		if pending.Readable() {
			regs = append(regs, unix.Kevent_t{
				Ident:  ev.Ident,
				Filter: unix.EVFILT_READ,
				Flags:  unix.EV_ADD | unix.EV_ONESHOT | unix.EV_CLEAR,
			})
		}

		if pending.Writable() {
			regs = append(regs, unix.Kevent_t{
				Ident:  ev.Ident,
				Filter: unix.EVFILT_WRITE,
				Flags:  unix.EV_ADD | unix.EV_ONESHOT | unix.EV_CLEAR,
			})
		}

		_, _ = unix.Kevent(r.kq, regs, nil, nil)
	}

	return []libaio.Event{{Resume: op.resume, Size: int(ev.Data), Err: rerr}}
}

func (r *kqu) completeTimer(ident uint64) []libaio.Event {
	r.m.Lock()
	defer r.m.Unlock()

	op, ok := r.tms[ident]
	delete(r.tms, ident)

	if !ok || op.done {
		return nil
	}

	op.done = true

	return []libaio.Event{{Resume: op.resume, Size: 0, Err: libaio.ErrorTimedOut.Error(nil)}}
}

func (r *kqu) terminate(out []libaio.Event) ([]libaio.Event, bool) {
	r.m.Lock()
	defer r.m.Unlock()

	for id, op := range r.tms {
		delete(r.tms, id)

		if !op.done {
			op.done = true
			out = append(out, libaio.Event{Resume: op.resume, Size: 0, Err: libaio.ErrorCancelled.Error(nil)})
		}
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

		delete(r.fds, fd)
	}

	for _, fn := range r.wake {
		out = append(out, libaio.Event{Resume: fn})
	}

	r.wake = nil
	r.stop = true

	if !r.closed {
		r.closed = true
		_ = unix.Close(r.kq)
	}

	r.count(len(out))

	return out, false
}

func (r *kqu) popWake() []libaio.Event {
	r.m.Lock()
	defer r.m.Unlock()

	out := make([]libaio.Event, 0, len(r.wake))

	for _, fn := range r.wake {
		out = append(out, libaio.Event{Resume: fn})
	}

	r.wake = nil

	return out
}

func (r *kqu) trigger(ident uint64) error {
	ev := []unix.Kevent_t{{
		Ident:  ident,
		Filter: unix.EVFILT_USER,
		Fflags: unix.NOTE_TRIGGER,
	}}

	if _, err := unix.Kevent(r.kq, ev, nil, nil); err != nil {
		return ErrorRegister.Error(err)
	}

	return nil
}

func (r *kqu) count(n int) {
	if r.evt != nil && n > 0 {
		r.evt.Add(float64(n))
	}
}
