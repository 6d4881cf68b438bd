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

// Package lco holds local control objects: targets a continuation completes.
// A Future is registered as a variant of the Receiver base component so the
// SetValue and SetError actions, declared for any Receiver, run against it.
package lco

import (
	"context"
	"errors"
	"sync"
)

// Receiver accepts the outcome of an action.
type Receiver interface {
	// SetValue completes the receiver with a value
	SetValue(value any)
	// SetError completes the receiver with an error
	SetError(err error)
}

// Future is a single-assignment Receiver. The first outcome wins and later
// ones are ignored.
type Future struct {
	once  sync.Once
	done  chan struct{}
	value any
	err   error
}

var _ Receiver = (*Future)(nil)

// NewFuture creates a pending Future
func NewFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// SetValue implements Receiver
func (f *Future) SetValue(value any) {
	f.complete(value, nil)
}

// SetError implements Receiver
func (f *Future) SetError(err error) {
	if err == nil {
		err = errors.New("lco: nil error")
	}
	f.complete(nil, err)
}

// Await blocks until the Future completes or ctx is done.
func (f *Future) Await(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// IsCompleted reports whether an outcome was set.
func (f *Future) IsCompleted() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

func (f *Future) complete(value any, err error) {
	f.once.Do(func() {
		f.value = value
		f.err = err
		close(f.done)
	})
}
