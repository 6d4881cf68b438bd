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

package workerpool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func idleWorkers(pool *WorkerPool) int {
	count := 0
	for _, s := range pool.shards {
		s.mu.Lock()
		count += len(s.idle)
		s.mu.Unlock()
	}
	return count
}

func TestWorkerPool(t *testing.T) {
	t.Run("With happy path", func(t *testing.T) {
		defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

		pool := New(WithNumShards(256), WithPassivateAfter(10*time.Millisecond))
		assert.Equal(t, maxShards, pool.numShards)

		pool.Start()
		pool.Start()
		require.Zero(t, pool.Workers())

		workCount := 1000
		var wg sync.WaitGroup
		var executed atomic.Int64
		wg.Add(workCount)
		for range workCount {
			accepted := pool.SubmitWork(func() {
				defer wg.Done()
				executed.Add(1)
			})
			require.True(t, accepted)
		}

		wg.Wait()
		assert.EqualValues(t, workCount, executed.Load())

		pool.Stop()
		pool.Stop()
		assert.Zero(t, pool.Workers())
		assert.False(t, pool.SubmitWork(func() {}))
	})
	t.Run("With idle workers reused", func(t *testing.T) {
		defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

		pool := New(WithPassivateAfter(time.Minute))
		pool.Start()

		for range 5 {
			done := make(chan struct{})
			require.True(t, pool.SubmitWork(func() { close(done) }))
			<-done
			// the worker parks itself right after the task returns
			require.Eventually(t, func() bool { return idleWorkers(pool) == 1 }, time.Second, time.Millisecond)
		}
		assert.Equal(t, 1, pool.Workers())

		pool.Stop()
		assert.Zero(t, pool.Workers())
	})
	t.Run("With idle workers passivated", func(t *testing.T) {
		defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

		pool := New(WithPassivateAfter(5 * time.Millisecond))
		pool.Start()

		var wg sync.WaitGroup
		wg.Add(4)
		release := make(chan struct{})
		for range 4 {
			require.True(t, pool.SubmitWork(func() {
				defer wg.Done()
				<-release
			}))
		}
		assert.Equal(t, 4, pool.Workers())
		close(release)
		wg.Wait()

		require.Eventually(t, func() bool { return pool.Workers() == 0 }, time.Second, 5*time.Millisecond)
		pool.Stop()
	})
	t.Run("With stop waiting for busy workers", func(t *testing.T) {
		defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

		pool := New()
		pool.Start()

		var finished atomic.Bool
		started := make(chan struct{})
		require.True(t, pool.SubmitWork(func() {
			close(started)
			time.Sleep(20 * time.Millisecond)
			finished.Store(true)
		}))
		<-started

		pool.Stop()
		assert.True(t, finished.Load())
	})
	t.Run("When not started", func(t *testing.T) {
		pool := New()
		assert.False(t, pool.SubmitWork(func() {}))
		pool.Stop()
		assert.False(t, pool.running)
	})
	t.Run("With invalid options", func(t *testing.T) {
		pool := New(WithNumShards(0), WithPassivateAfter(0))
		assert.Equal(t, 1, pool.numShards)
		assert.Equal(t, time.Second, pool.passivateAfter)
	})
}
