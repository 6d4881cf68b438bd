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

package inmem

import (
	"context"
	"sync"

	gods "github.com/Workiva/go-datastructures/queue"
	"go.uber.org/atomic"

	"github.com/tochemey/applier/address"
	"github.com/tochemey/applier/errors"
	"github.com/tochemey/applier/parcel"
	"github.com/tochemey/applier/transport"
)

// Endpoint is the Transport of one locality attached to a Hub.
type Endpoint struct {
	hub      *Hub
	locality address.Locality
	inbox    *gods.RingBuffer
	started  *atomic.Bool
	stopped  *atomic.Bool
	wg       sync.WaitGroup
}

var _ transport.Transport = (*Endpoint)(nil)

func newEndpoint(hub *Hub, locality address.Locality) *Endpoint {
	return &Endpoint{
		hub:      hub,
		locality: locality,
		inbox:    gods.NewRingBuffer(uint64(hub.inboxSize)),
		started:  atomic.NewBool(false),
		stopped:  atomic.NewBool(false),
	}
}

// Locality returns the locality served by the endpoint
func (e *Endpoint) Locality() address.Locality {
	return e.locality
}

// Deliver implements transport.Transport
func (e *Endpoint) Deliver(_ context.Context, p *parcel.Parcel) error {
	if e.stopped.Load() {
		return errors.ErrTransportStopped
	}
	p.SetSource(e.locality)
	return e.hub.route(e.locality, p)
}

// Start implements transport.Transport
func (e *Endpoint) Start(ctx context.Context, handler transport.Handler) error {
	if e.stopped.Load() {
		return errors.ErrTransportStopped
	}
	if !e.started.CompareAndSwap(false, true) {
		return nil
	}

	ctx = context.WithoutCancel(ctx)
	e.wg.Add(1)
	go e.receive(ctx, handler)
	return nil
}

// Stop implements transport.Transport. Parcels still in the inbox are dropped.
func (e *Endpoint) Stop(context.Context) error {
	if e.stopped.CompareAndSwap(false, true) {
		e.inbox.Dispose()
	}
	e.wg.Wait()
	return nil
}

func (e *Endpoint) enqueue(data []byte) error {
	ok, err := e.inbox.Offer(data)
	if err != nil {
		return errors.ErrTransportStopped
	}
	if !ok {
		return errors.ErrInboxFull
	}
	return nil
}

func (e *Endpoint) receive(ctx context.Context, handler transport.Handler) {
	defer e.wg.Done()
	logger := e.hub.logger
	for {
		item, err := e.inbox.Get()
		if err != nil {
			return
		}

		p, err := e.hub.codec.Decode(item.([]byte))
		if err != nil {
			logger.Errorf("locality=(%s) failed to decode parcel: %v", e.locality, err)
			continue
		}

		if err := handler.HandleParcel(ctx, p); err != nil {
			logger.Warnf("locality=(%s) failed to handle parcel=(%s): %v", e.locality, p.ID(), err)
		}
	}
}
