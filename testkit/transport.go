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

	"github.com/tochemey/applier/parcel"
	"github.com/tochemey/applier/transport"
)

// Transport is a transport.Transport keeping every delivered parcel.
type Transport struct {
	mu      sync.Mutex
	parcels []*parcel.Parcel
	handler transport.Handler
	err     error
	started bool
}

var _ transport.Transport = (*Transport)(nil)

// NewTransport creates a Transport
func NewTransport() *Transport {
	return &Transport{}
}

// FailWith makes every following Deliver return err
func (x *Transport) FailWith(err error) {
	x.mu.Lock()
	x.err = err
	x.mu.Unlock()
}

// Deliver implements transport.Transport
func (x *Transport) Deliver(_ context.Context, p *parcel.Parcel) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.err != nil {
		return x.err
	}
	x.parcels = append(x.parcels, p)
	return nil
}

// Start implements transport.Transport
func (x *Transport) Start(_ context.Context, handler transport.Handler) error {
	x.mu.Lock()
	x.handler = handler
	x.started = true
	x.mu.Unlock()
	return nil
}

// Stop implements transport.Transport
func (x *Transport) Stop(context.Context) error {
	x.mu.Lock()
	x.started = false
	x.mu.Unlock()
	return nil
}

// Parcels returns the delivered parcels in delivery order
func (x *Transport) Parcels() []*parcel.Parcel {
	x.mu.Lock()
	defer x.mu.Unlock()
	out := make([]*parcel.Parcel, len(x.parcels))
	copy(out, x.parcels)
	return out
}

// Handler returns the handler given to Start
func (x *Transport) Handler() transport.Handler {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.handler
}

// IsStarted reports whether the transport is between Start and Stop
func (x *Transport) IsStarted() bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.started
}
