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

package pool

import (
	"sync"
	"sync/atomic"

	liblog "github.com/drouarb/aionet/logger"
	libmet "github.com/prometheus/client_golang/prometheus"
)

type wkp struct {
	m    sync.Mutex
	c    *sync.Cond
	jobs []func()

	running bool
	workers int
	wg      sync.WaitGroup

	size atomic.Int64 // queued + executing

	log liblog.FuncLog
	gse libmet.Gauge
}

func newPool(opt Options) Pool {
	concurrency := opt.Concurrency
	if concurrency <= 0 {
		concurrency = HardwareConcurrency(1)
	}

	p := &wkp{
		running: true,
		workers: concurrency,
		log:     opt.Logger,
	}

	p.c = sync.NewCond(&p.m)

	if opt.Registerer != nil {
		p.gse = libmet.NewGauge(libmet.GaugeOpts{
			Name: "aionet_pool_jobs",
			Help: "Number of live jobs, queued plus executing.",
		})
		opt.Registerer.MustRegister(p.gse)
	}

	p.wg.Add(concurrency)

	for i := 0; i < concurrency; i++ {
		go p.worker()
	}

	return p
}

func (p *wkp) Schedule(job func()) error {
	if job == nil {
		return nil
	}

	p.m.Lock()

	if !p.running {
		p.m.Unlock()
		return ErrorShutdown.Error(nil)
	}

	p.jobs = append(p.jobs, job)
	p.m.Unlock()

	p.addJobs(1)
	p.c.Signal()

	return nil
}

func (p *wkp) Resume(jobs ...func()) {
	var added int64

	p.m.Lock()

	if !p.running {
		p.m.Unlock()
		return
	}

	for _, job := range jobs {
		if job != nil {
			p.jobs = append(p.jobs, job)
			added++
		}
	}

	p.m.Unlock()

	if added == 0 {
		return
	}

	p.addJobs(added)

	if added == 1 {
		p.c.Signal()
	} else {
		p.c.Broadcast()
	}
}

func (p *wkp) Concurrency() int {
	return p.workers
}

func (p *wkp) Size() int {
	return int(p.size.Load())
}

func (p *wkp) IsEmpty() bool {
	return p.Size() == 0
}

func (p *wkp) QueueSize() int {
	p.m.Lock()
	defer p.m.Unlock()

	return len(p.jobs)
}

func (p *wkp) Shutdown() {
	p.m.Lock()

	if !p.running {
		p.m.Unlock()
		return
	}

	p.running = false
	pending := len(p.jobs)
	p.m.Unlock()

	if pending > 0 {
		liblog.Get(p.log).Debug("pool: draining %d queued jobs at shutdown", pending)
	}

	p.c.Broadcast()
	p.wg.Wait()
}

// worker drains the FIFO until shutdown; queued continuations still
// run after the stop flag flips, so pending cancellations reach their
// task.
func (p *wkp) worker() {
	defer p.wg.Done()

	for {
		p.m.Lock()

		for p.running && len(p.jobs) == 0 {
			p.c.Wait()
		}

		if !p.running && len(p.jobs) == 0 {
			p.m.Unlock()
			return
		}

		job := p.jobs[0]
		p.jobs = p.jobs[1:]
		p.m.Unlock()

		job()
		p.addJobs(-1)
	}
}

func (p *wkp) addJobs(n int64) {
	p.size.Add(n)

	if p.gse != nil {
		p.gse.Add(float64(n))
	}
}
