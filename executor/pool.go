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

package executor

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/atomic"

	"github.com/tochemey/applier/action"
	"github.com/tochemey/applier/errors"
	"github.com/tochemey/applier/internal/workerpool"
	"github.com/tochemey/applier/log"
)

// Option configures a Pool
type Option func(*Pool)

// WithShards sets the number of worker shards
func WithShards(shards int) Option {
	return func(p *Pool) {
		p.shards = shards
	}
}

// WithIdleTimeout sets how long an idle worker is kept
func WithIdleTimeout(timeout time.Duration) Option {
	return func(p *Pool) {
		p.idleTimeout = timeout
	}
}

// WithLogger sets the logger
func WithLogger(logger log.Logger) Option {
	return func(p *Pool) {
		p.logger = logger
	}
}

// WithTrigger sets where continuation outcomes are delivered
func WithTrigger(trigger action.Trigger) Option {
	return func(p *Pool) {
		p.trigger = trigger
	}
}

// Pool is an Executor running actions on a sharded goroutine pool.
// A panicking action is recovered and reported to its continuation as a
// PanicError.
type Pool struct {
	shards      int
	idleTimeout time.Duration
	logger      log.Logger
	trigger     action.Trigger
	workers     *workerpool.WorkerPool
	running     *atomic.Bool
}

var _ Executor = (*Pool)(nil)

// NewPool creates a Pool
func NewPool(opts ...Option) *Pool {
	pool := &Pool{
		shards:      runtime.NumCPU(),
		idleTimeout: time.Second,
		logger:      log.DefaultLogger,
		running:     atomic.NewBool(false),
	}

	for _, opt := range opts {
		opt(pool)
	}

	pool.workers = workerpool.New(
		workerpool.WithNumShards(pool.shards),
		workerpool.WithPassivateAfter(pool.idleTimeout))
	return pool
}

// SetTrigger sets where continuation outcomes are delivered. It must be
// called before Start.
func (p *Pool) SetTrigger(trigger action.Trigger) {
	p.trigger = trigger
}

// Start implements Executor
func (p *Pool) Start(context.Context) error {
	if p.running.CompareAndSwap(false, true) {
		p.workers.Start()
	}
	return nil
}

// Stop implements Executor
func (p *Pool) Stop(context.Context) error {
	if p.running.CompareAndSwap(true, false) {
		p.workers.Stop()
	}
	return nil
}

// Submit implements Executor
func (p *Pool) Submit(ctx context.Context, handle any, act *action.Action, cont *action.Continuation) error {
	if act == nil {
		return errors.ErrUndefinedAction
	}

	if !p.running.Load() {
		return errors.ErrExecutorStopped
	}

	ctx = context.WithoutCancel(ctx)
	if !p.workers.SubmitWork(func() { p.run(ctx, handle, act, cont) }) {
		return errors.ErrExecutorStopped
	}
	return nil
}

func (p *Pool) run(ctx context.Context, handle any, act *action.Action, cont *action.Continuation) {
	result, err := p.invoke(ctx, handle, act)
	if err != nil {
		p.logger.Warnf("action=(%s) failed: %v", act.Name(), err)
	}

	if cont == nil || p.trigger == nil {
		return
	}

	if err := p.trigger.Trigger(ctx, cont, result, err); err != nil {
		p.logger.Errorf("failed to trigger continuation=(%s) of action=(%s): %v", cont, act.Name(), err)
	}
}

func (p *Pool) invoke(ctx context.Context, handle any, act *action.Action) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			pc, fn, line, _ := runtime.Caller(2)
			if rerr, ok := r.(error); ok {
				err = errors.NewPanicError(fmt.Errorf("%w at %s[%s:%d]", rerr, runtime.FuncForPC(pc).Name(), fn, line))
				return
			}
			err = errors.NewPanicError(fmt.Errorf("%#v at %s[%s:%d]", r, runtime.FuncForPC(pc).Name(), fn, line))
		}
	}()
	return act.Invoke(ctx, handle)
}
