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

package group

import (
	"container/list"
	"sync"

	libtsk "github.com/drouarb/aionet/aio/task"
	liblog "github.com/drouarb/aionet/logger"
)

// grp threads a doubly linked list of slot indices through the task
// array. The list starts with the used slots; free points at the first
// unused one. Finished tasks park their list element on the pending
// list until garbage collection splices them to the free tail and
// destroys the frame.
type grp struct {
	m sync.Mutex
	c *sync.Cond

	tasks  []libtsk.Runner
	order  *list.List
	free   *list.Element
	pend   []*list.Element
	live   int
	growth float64

	log liblog.FuncLog
}

func newGroup(opt Options) Group {
	capacity := opt.Capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	growth := opt.Growth
	if growth <= 1 {
		growth = DefaultGrowth
	}

	g := &grp{
		tasks:  make([]libtsk.Runner, capacity),
		order:  list.New(),
		growth: growth,
		log:    opt.Logger,
	}

	g.c = sync.NewCond(&g.m)

	for i := 0; i < capacity; i++ {
		g.order.PushBack(i)
	}

	g.free = g.order.Front()

	return g
}

func (g *grp) Start(t libtsk.Runner, e libtsk.Executor) error {
	if t == nil {
		return ErrorInvalidTask.Error(nil)
	}

	g.m.Lock()

	g.collect()

	if g.free == nil {
		g.grow()
	}

	elem := g.free
	idx := elem.Value.(int)
	g.tasks[idx] = t
	g.free = elem.Next()
	g.live++

	g.m.Unlock()

	// the completing worker parks the slot for deletion and signals
	// the group
	t.SetContinuation(func() {
		g.finish(elem)
	})

	if e == nil {
		go t.Resume()
		return nil
	}

	return e.Schedule(func() { t.Resume() })
}

func (g *grp) CollectGarbage() int {
	g.m.Lock()
	defer g.m.Unlock()

	return g.collect()
}

func (g *grp) Size() int {
	g.m.Lock()
	defer g.m.Unlock()

	return g.live
}

func (g *grp) IsEmpty() bool {
	return g.Size() == 0
}

func (g *grp) Capacity() int {
	g.m.Lock()
	defer g.m.Unlock()

	return len(g.tasks)
}

func (g *grp) PendingDeletion() int {
	g.m.Lock()
	defer g.m.Unlock()

	return len(g.pend)
}

func (g *grp) FreeSlots() int {
	g.m.Lock()
	defer g.m.Unlock()

	var n int

	for e := g.free; e != nil; e = e.Next() {
		n++
	}

	return n
}

func (g *grp) Stats() (live, pending, free, capacity int) {
	g.m.Lock()
	defer g.m.Unlock()

	for e := g.free; e != nil; e = e.Next() {
		free++
	}

	return g.live, len(g.pend), free, len(g.tasks)
}

func (g *grp) Close() error {
	g.m.Lock()

	for g.live > 0 {
		g.c.Wait()
	}

	g.collect()
	g.m.Unlock()

	return nil
}

// finish parks a completed slot for deletion. It runs on the worker
// that completed the task.
func (g *grp) finish(elem *list.Element) {
	g.m.Lock()

	g.pend = append(g.pend, elem)
	g.live--

	if idx, ok := elem.Value.(int); ok {
		if t := g.tasks[idx]; t != nil {
			if err := t.Err(); err != nil {
				liblog.Get(g.log).CheckError("group: task failed unobserved", err)
			}
		}
	}

	g.c.Broadcast()
	g.m.Unlock()
}

// collect splices every pending slot to the free tail and destroys the
// task frame. Callers must hold the mutex.
func (g *grp) collect() int {
	if len(g.pend) == 0 {
		return 0
	}

	deleted := len(g.pend)

	for _, elem := range g.pend {
		idx := elem.Value.(int)

		g.order.MoveToBack(elem)

		if g.free == nil {
			g.free = elem
		}

		if t := g.tasks[idx]; t != nil {
			t.Destroy()
			g.tasks[idx] = nil
		}
	}

	g.pend = g.pend[:0]

	return deleted
}

// grow enlarges the slot array by the growth factor (by at least one
// slot), appending the new indices to the free list. Callers must hold
// the mutex.
func (g *grp) grow() {
	oldSize := len(g.tasks)
	newSize := int(float64(oldSize) * g.growth)

	if newSize <= oldSize {
		newSize = oldSize + 1
	}

	grown := make([]libtsk.Runner, newSize)
	copy(grown, g.tasks)
	g.tasks = grown

	for i := oldSize; i < newSize; i++ {
		elem := g.order.PushBack(i)

		if g.free == nil {
			g.free = elem
		}
	}
}
