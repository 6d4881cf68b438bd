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

package testkit

import (
	"context"
	"sync"

	"github.com/tochemey/applier/action"
	"github.com/tochemey/applier/executor"
)

// Submission is one call to Executor.Submit
type Submission struct {
	Handle       any
	Action       *action.Action
	Continuation *action.Continuation
}

// Executor is an executor.Executor keeping submissions without running them.
type Executor struct {
	mu          sync.Mutex
	submissions []Submission
	trigger     action.Trigger
	err         error
}

var _ executor.Executor = (*Executor)(nil)

// NewExecutor creates an Executor
func NewExecutor() *Executor {
	return &Executor{}
}

// FailWith makes every following Submit return err
func (x *Executor) FailWith(err error) {
	x.mu.Lock()
	x.err = err
	x.mu.Unlock()
}

// SetTrigger records the trigger the Applier installs
func (x *Executor) SetTrigger(trigger action.Trigger) {
	x.mu.Lock()
	x.trigger = trigger
	x.mu.Unlock()
}

// Trigger returns the installed trigger
func (x *Executor) Trigger() action.Trigger {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.trigger
}

// Submit implements executor.Executor
func (x *Executor) Submit(_ context.Context, handle any, act *action.Action, cont *action.Continuation) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.err != nil {
		return x.err
	}
	x.submissions = append(x.submissions, Submission{Handle: handle, Action: act, Continuation: cont})
	return nil
}

// Start implements executor.Executor
func (x *Executor) Start(context.Context) error {
	return nil
}

// Stop implements executor.Executor
func (x *Executor) Stop(context.Context) error {
	return nil
}

// Submissions returns the recorded submissions in order
func (x *Executor) Submissions() []Submission {
	x.mu.Lock()
	defer x.mu.Unlock()
	out := make([]Submission, len(x.submissions))
	copy(out, x.submissions)
	return out
}

// RunAll invokes every recorded submission in order and fires the installed
// trigger for those carrying a continuation. The recorded list is cleared.
func (x *Executor) RunAll(ctx context.Context) error {
	x.mu.Lock()
	submissions := x.submissions
	x.submissions = nil
	trigger := x.trigger
	x.mu.Unlock()

	for _, submission := range submissions {
		result, err := submission.Action.Invoke(ctx, submission.Handle)
		if submission.Continuation == nil || trigger == nil {
			continue
		}
		if err := trigger.Trigger(ctx, submission.Continuation, result, err); err != nil {
			return err
		}
	}
	return nil
}
