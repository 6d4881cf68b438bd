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

// Package inmem connects localities living in the same process. Parcels are
// encoded on send and decoded on receipt, exactly as on a network transport.
package inmem

import (
	"context"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/sync/errgroup"

	"github.com/tochemey/applier/address"
	"github.com/tochemey/applier/errors"
	"github.com/tochemey/applier/internal/xsync"
	"github.com/tochemey/applier/log"
	"github.com/tochemey/applier/parcel"
)

// DefaultInboxSize is the parcel capacity of an endpoint inbox.
const DefaultInboxSize = 1024

// Option configures a Hub
type Option func(*Hub)

// WithInboxSize sets the inbox capacity of every endpoint
func WithInboxSize(size int) Option {
	return func(h *Hub) {
		h.inboxSize = size
	}
}

// WithLogger sets the logger
func WithLogger(logger log.Logger) Option {
	return func(h *Hub) {
		h.logger = logger
	}
}

// Hub routes encoded parcels between the endpoints it created.
type Hub struct {
	codec      *parcel.Codec
	inboxSize  int
	logger     log.Logger
	endpoints  *xsync.Map[address.Locality, *Endpoint]
	localities mapset.Set[address.Locality]
}

// NewHub creates a Hub encoding parcels with codec.
func NewHub(codec *parcel.Codec, opts ...Option) *Hub {
	hub := &Hub{
		codec:      codec,
		inboxSize:  DefaultInboxSize,
		logger:     log.DefaultLogger,
		endpoints:  xsync.NewMap[address.Locality, *Endpoint](),
		localities: mapset.NewSet[address.Locality](),
	}

	for _, opt := range opts {
		opt(hub)
	}

	if hub.inboxSize < 1 {
		hub.inboxSize = DefaultInboxSize
	}
	return hub
}

// Endpoint returns the transport of locality, creating it on first use.
func (h *Hub) Endpoint(locality address.Locality) *Endpoint {
	if endpoint, ok := h.endpoints.Get(locality); ok {
		return endpoint
	}

	endpoint, _ := h.endpoints.SetIfAbsent(locality, newEndpoint(h, locality))
	h.localities.Add(locality)
	return endpoint
}

// Localities returns the localities attached to the hub.
func (h *Hub) Localities() []address.Locality {
	return h.localities.ToSlice()
}

// Close stops every endpoint.
func (h *Hub) Close(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	for _, endpoint := range h.endpoints.All() {
		eg.Go(func() error {
			return endpoint.Stop(ctx)
		})
	}
	return eg.Wait()
}

func (h *Hub) route(from address.Locality, p *parcel.Parcel) error {
	data, err := h.codec.Encode(p)
	if err != nil {
		return err
	}

	if !p.IsBroadcast() {
		endpoint, ok := h.endpoints.Get(p.DestinationAddr().Locality)
		if !ok {
			return errors.NewErrLocalityNotFound(p.DestinationAddr().Locality.String())
		}
		return endpoint.enqueue(data)
	}

	for _, locality := range h.localities.ToSlice() {
		if locality == from {
			continue
		}
		endpoint, ok := h.endpoints.Get(locality)
		if !ok {
			continue
		}
		if err := endpoint.enqueue(data); err != nil {
			h.logger.Warnf("failed to broadcast parcel=(%s) to locality=(%s): %v", p.ID(), locality, err)
		}
	}
	return nil
}
