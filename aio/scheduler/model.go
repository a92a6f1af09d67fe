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

package scheduler

import (
	"sync"
	"sync/atomic"
	"time"

	libaio "github.com/drouarb/aionet/aio"
	libpol "github.com/drouarb/aionet/aio/pool"
	librea "github.com/drouarb/aionet/aio/reactor"
	libtsk "github.com/drouarb/aionet/aio/task"
	liblog "github.com/drouarb/aionet/logger"
)

type sch struct {
	p libpol.Pool
	r libaio.Reactor

	run  atomic.Bool
	done chan struct{}
	once sync.Once

	log liblog.FuncLog
}

func newScheduler(opt Options) (Scheduler, error) {
	workers := opt.Workers
	if workers <= 0 {
		workers = libpol.HardwareConcurrency(1)
	}

	r, err := librea.New(librea.Options{
		Logger:     opt.Logger,
		Registerer: opt.Registerer,
	})

	if err != nil {
		return nil, err
	}

	s := &sch{
		r:    r,
		done: make(chan struct{}),
		log:  opt.Logger,
	}

	s.p = libpol.New(libpol.Options{
		Concurrency: workers,
		Logger:      opt.Logger,
		Registerer:  opt.Registerer,
	})

	s.run.Store(true)

	go s.ioLoop()

	return s, nil
}

// ioLoop is the dedicated reactor goroutine: it pumps each dispatched
// batch into the worker pool and exits once the reactor reports its
// shutdown drain.
func (s *sch) ioLoop() {
	defer close(s.done)

	for {
		evs, ok := s.r.Dispatch()

		if len(evs) > 0 {
			jobs := make([]func(), 0, len(evs))

			for _, ev := range evs {
				ev := ev
				jobs = append(jobs, func() { ev.Resume(ev.Size, ev.Err) })
			}

			s.p.Resume(jobs...)
		}

		if !ok {
			return
		}
	}
}

func (s *sch) Start(t libtsk.Runner) error {
	if t == nil {
		return ErrorInvalidTask.Error(nil)
	}

	return s.Schedule(func() { t.Resume() })
}

func (s *sch) Schedule(job func()) error {
	if !s.run.Load() {
		return ErrorShutdown.Error(nil)
	}

	return s.p.Schedule(job)
}

func (s *sch) Resume(jobs ...func()) {
	s.p.Resume(jobs...)
}

func (s *sch) Poll(tc *libtsk.Context, fd int, op libaio.Op, timeout time.Duration) (int, error) {
	if tc == nil {
		return 0, libaio.ErrorInvalidArgument.Error(nil)
	}

	return tc.Suspend(func(wake libaio.Completion) error {
		return s.r.Queue(wake, fd, op, timeout)
	})
}

func (s *sch) Yield(tc *libtsk.Context) error {
	return libtsk.Yield(tc, s)
}

func (s *sch) Workers() libpol.Pool {
	return s.p
}

func (s *sch) IsRunning() bool {
	return s.run.Load()
}

func (s *sch) Shutdown() {
	s.once.Do(func() {
		s.run.Store(false)

		liblog.Get(s.log).Debug("scheduler: shutting down")

		// stop the reactor first so pending operations complete with
		// a cancelled result while the workers still run, then join
		// the dispatch goroutine and stop the pool
		s.r.Shutdown()
		<-s.done
		s.p.Shutdown()
	})
}
