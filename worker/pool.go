// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package worker

import (
	"runtime"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/multihashd/counter"
	"github.com/bitmark-inc/multihashd/fault"
)

const (
	minThreadCount    = 1
	defaultQueueDepth = 1000
)

// Task - one unit of background work, always run to completion
type Task func()

// Executor - anything that can run a task on another goroutine
type Executor interface {
	Enqueue(Task) error
}

// Pool - a resizable set of threads fed from one bounded queue
type Pool struct {
	sync.RWMutex
	log     *logger.L
	queue   chan Task
	stop    chan struct{}
	quit    []chan struct{}
	wg      sync.WaitGroup
	sending sync.WaitGroup
	stopped bool
	busy    counter.Counter
}

// New - start a pool of threads, queue depth <= 0 selects the default
func New(log *logger.L, threads int, depth int) (*Pool, error) {
	if threads < minThreadCount {
		return nil, fault.InvalidPoolSize
	}
	if depth <= 0 {
		depth = defaultQueueDepth
	}

	p := &Pool{
		log:   log,
		queue: make(chan Task, depth),
		stop:  make(chan struct{}),
	}

	p.Lock()
	p.grow(threads)
	p.Unlock()

	log.Infof("started %d threads, queue depth: %d", threads, depth)
	return p, nil
}

// ThreadCount - threads to use for a percentage of the available CPUs
func ThreadCount(maxCPUUsage int) int {
	cpus := runtime.NumCPU()
	return threadCountFor(maxCPUUsage, cpus)
}

func threadCountFor(maxCPUUsage int, cpus int) int {
	threads := cpus * maxCPUUsage / 100
	if threads <= minThreadCount {
		return minThreadCount
	}
	if threads > cpus {
		return cpus
	}
	return threads
}

// Enqueue - add a task, blocks while the queue is full
//
// the lock is not held while blocked, so Resize and Threads stay
// responsive under load
func (p *Pool) Enqueue(task Task) error {
	p.RLock()
	if p.stopped {
		p.RUnlock()
		return fault.PoolStopped
	}
	p.sending.Add(1)
	p.RUnlock()
	defer p.sending.Done()

	select {
	case p.queue <- task:
		return nil
	case <-p.stop:
		return fault.PoolStopped
	}
}

// Resize - change the number of running threads
//
// removed threads finish the task they are running before exiting
func (p *Pool) Resize(threads int) error {
	if threads < minThreadCount {
		return fault.InvalidPoolSize
	}

	p.Lock()
	defer p.Unlock()

	if p.stopped {
		return fault.PoolStopped
	}

	current := len(p.quit)
	switch {
	case threads > current:
		p.grow(threads - current)
	case threads < current:
		for _, q := range p.quit[threads:] {
			close(q)
		}
		p.quit = p.quit[:threads]
	default:
		return nil
	}
	p.log.Infof("resized from %d to %d threads", current, threads)
	return nil
}

// Threads - number of running threads
func (p *Pool) Threads() int {
	p.RLock()
	defer p.RUnlock()
	return len(p.quit)
}

// Queued - tasks waiting for a thread
func (p *Pool) Queued() int {
	return len(p.queue)
}

// Busy - threads currently running a task
func (p *Pool) Busy() uint64 {
	return p.busy.Uint64()
}

// Stop - refuse new tasks, run everything already queued, then
// wait for all threads to exit
func (p *Pool) Stop() {
	p.Lock()
	if p.stopped {
		p.Unlock()
		return
	}
	p.stopped = true
	p.quit = nil
	p.Unlock()

	close(p.stop)

	// no new senders after stopped is set, wait for the blocked ones
	// before closing the queue
	p.sending.Wait()
	close(p.queue)

	p.wg.Wait()
	p.log.Info("stopped")
}

// must hold the write lock
func (p *Pool) grow(n int) {
	for i := 0; i < n; i += 1 {
		q := make(chan struct{})
		p.quit = append(p.quit, q)
		p.wg.Add(1)
		go p.thread(q)
	}
}

func (p *Pool) thread(quit <-chan struct{}) {
	defer p.wg.Done()

	for {
		select {
		case <-quit:
			return
		case task, ok := <-p.queue:
			if !ok {
				return
			}
			p.run(task)
		}
	}
}

func (p *Pool) run(task Task) {
	p.busy.Increment()
	defer p.busy.Decrement()

	defer func() {
		if r := recover(); nil != r {
			p.log.Criticalf("task panic: %v", r)
		}
	}()
	task()
}
