// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package workerpool provides the sharded goroutine pool that runs locally
// dispatched actions. Workers are spawned on demand and exit after staying
// idle for the passivation delay.
package workerpool

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

const maxShards = 128

// Option is the interface that applies a WorkerPool option.
type Option interface {
	// Apply sets the Option value of a WorkerPool.
	Apply(pool *WorkerPool)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(pool *WorkerPool)

// Apply applies the WorkerPool option
func (f OptionFunc) Apply(pool *WorkerPool) {
	f(pool)
}

// WithPassivateAfter sets how long a worker stays idle before exiting
func WithPassivateAfter(d time.Duration) Option {
	return OptionFunc(func(pool *WorkerPool) {
		pool.passivateAfter = d
	})
}

// WithNumShards sets the number of shards
func WithNumShards(numShards int) Option {
	return OptionFunc(func(pool *WorkerPool) {
		pool.numShards = numShards
	})
}

// WorkerPool spreads tasks over shards, each keeping its own stack of idle
// workers so that submitters rarely contend on the same lock.
type WorkerPool struct {
	passivateAfter time.Duration
	numShards      int

	// held for reading by submitters and for writing by Start and Stop
	mu      sync.RWMutex
	running bool
	shards  []*shard

	next    atomic.Uint32
	workers atomic.Int64
	wg      sync.WaitGroup
}

type shard struct {
	pool    *WorkerPool
	mu      sync.Mutex
	idle    []*worker
	stopped bool
}

type worker struct {
	tasks chan func()
}

// New creates a WorkerPool. It must be started before accepting work.
func New(opts ...Option) *WorkerPool {
	pool := &WorkerPool{
		passivateAfter: time.Second,
		numShards:      1,
	}

	for _, opt := range opts {
		opt.Apply(pool)
	}

	pool.numShards = min(max(pool.numShards, 1), maxShards)
	if pool.passivateAfter <= 0 {
		pool.passivateAfter = time.Second
	}
	return pool
}

// Start makes the pool accept work. Starting a running pool does nothing.
func (wp *WorkerPool) Start() {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	if wp.running {
		return
	}

	wp.shards = make([]*shard, wp.numShards)
	for i := range wp.shards {
		wp.shards[i] = &shard{pool: wp}
	}
	wp.running = true
}

// Stop rejects new work, releases the idle workers and waits for the busy
// ones to finish their task.
func (wp *WorkerPool) Stop() {
	wp.mu.Lock()
	if !wp.running {
		wp.mu.Unlock()
		return
	}
	wp.running = false
	for _, s := range wp.shards {
		s.stop()
	}
	wp.mu.Unlock()

	wp.wg.Wait()
}

// SubmitWork runs task on a worker. It returns false when the pool is not
// running, in which case task is discarded.
func (wp *WorkerPool) SubmitWork(task func()) bool {
	wp.mu.RLock()
	defer wp.mu.RUnlock()
	if !wp.running {
		return false
	}

	s := wp.shards[wp.next.Add(1)%uint32(len(wp.shards))]
	if w := s.pop(); w != nil {
		w.tasks <- task
		return true
	}

	wp.spawn(s, task)
	return true
}

// Workers returns the number of live workers
func (wp *WorkerPool) Workers() int {
	return int(wp.workers.Load())
}

func (wp *WorkerPool) spawn(s *shard, task func()) {
	w := &worker{tasks: make(chan func())}
	wp.workers.Add(1)
	wp.wg.Add(1)
	go func() {
		defer wp.wg.Done()
		defer wp.workers.Add(-1)
		w.run(s, task)
	}()
}

func (w *worker) run(s *shard, task func()) {
	timer := time.NewTimer(s.pool.passivateAfter)
	defer timer.Stop()

	for {
		task()

		if !s.push(w) {
			return
		}

		timer.Reset(s.pool.passivateAfter)
		var ok bool
		select {
		case task, ok = <-w.tasks:
		case <-timer.C:
			if s.remove(w) {
				return
			}
			// a submitter took this worker before the timer fired
			task, ok = <-w.tasks
		}

		if !ok {
			return
		}
	}
}

// pop takes the most recently parked worker
func (s *shard) pop() *worker {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.idle)
	if n == 0 {
		return nil
	}
	w := s.idle[n-1]
	s.idle[n-1] = nil
	s.idle = s.idle[:n-1]
	return w
}

// push parks w. It reports false once the shard is stopped.
func (s *shard) push(w *worker) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return false
	}
	s.idle = append(s.idle, w)
	return true
}

// remove unparks w and reports whether it was still parked
func (s *shard) remove(w *worker) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.Index(s.idle, w)
	if i < 0 {
		return false
	}
	s.idle = slices.Delete(s.idle, i, i+1)
	return true
}

func (s *shard) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for _, w := range s.idle {
		close(w.tasks)
	}
	s.idle = nil
}
