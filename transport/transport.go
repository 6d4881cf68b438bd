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

// Package transport defines how parcels leave and enter a node.
package transport

import (
	"context"

	"github.com/tochemey/applier/parcel"
)

// Handler receives the parcels a transport takes in.
type Handler interface {
	HandleParcel(ctx context.Context, p *parcel.Parcel) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, p *parcel.Parcel) error

// HandleParcel calls f.
func (f HandlerFunc) HandleParcel(ctx context.Context, p *parcel.Parcel) error {
	return f(ctx, p)
}

// Transport moves parcels between nodes. Deliver hands a parcel over and
// returns without waiting for it to arrive. A parcel whose destination
// locality is unknown is broadcast to every other node.
type Transport interface {
	// Deliver takes ownership of p and sends it.
	Deliver(ctx context.Context, p *parcel.Parcel) error
	// Start begins receiving parcels and hands them to handler.
	Start(ctx context.Context, handler Handler) error
	// Stop stops sending and receiving.
	Stop(ctx context.Context) error
}
