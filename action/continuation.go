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

package action

import (
	"context"

	"go.uber.org/atomic"

	"github.com/tochemey/applier/address"
	"github.com/tochemey/applier/errors"
)

// Continuation names where the result of an action is delivered, either by
// GID alone or by a FullAddress. A continuation has a single owner: Transfer
// hands ownership on and leaves the original spent.
type Continuation struct {
	gid    address.GID
	target *address.FullAddress
	spent  atomic.Bool
}

// NewContinuation creates a continuation targeting gid.
func NewContinuation(gid address.GID) *Continuation {
	return &Continuation{gid: gid}
}

// NewContinuationFor creates a continuation targeting a copy of target.
// Resolving the continuation later never writes to the caller's FullAddress.
func NewContinuationFor(target *address.FullAddress) *Continuation {
	return &Continuation{
		gid:    target.GID(),
		target: target.Clone(),
	}
}

// GID returns the target GID
func (c *Continuation) GID() address.GID {
	return c.gid
}

// FullAddress returns the target FullAddress, or nil for a GID-only continuation.
func (c *Continuation) FullAddress() *address.FullAddress {
	return c.target
}

// IsSpent reports whether ownership was transferred away.
func (c *Continuation) IsSpent() bool {
	return c.spent.Load()
}

// Transfer moves ownership to the returned continuation. The receiver is
// spent afterwards and every further Transfer fails.
func (c *Continuation) Transfer() (*Continuation, error) {
	if c == nil {
		return nil, errors.ErrUndefinedContinuation
	}
	if c.spent.Swap(true) {
		return nil, errors.ErrContinuationSpent
	}
	return &Continuation{gid: c.gid, target: c.target.Clone()}, nil
}

// Reclaim undoes a Transfer whose hand-off failed: transferred is spent and
// c owns the target again.
func (c *Continuation) Reclaim(transferred *Continuation) {
	if c == nil || transferred == nil {
		return
	}
	transferred.spent.Store(true)
	c.spent.Store(false)
}

func (c *Continuation) String() string {
	if c.target != nil {
		return c.target.String()
	}
	return c.gid.String()
}

// Trigger delivers the outcome of an action to its continuation.
type Trigger interface {
	Trigger(ctx context.Context, cont *Continuation, result any, err error) error
}

// TriggerFunc adapts a function to Trigger.
type TriggerFunc func(ctx context.Context, cont *Continuation, result any, err error) error

// Trigger calls f.
func (f TriggerFunc) Trigger(ctx context.Context, cont *Continuation, result any, err error) error {
	return f(ctx, cont, result, err)
}
