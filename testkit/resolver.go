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
	"sync"

	"github.com/tochemey/applier/address"
	"github.com/tochemey/applier/component"
	"github.com/tochemey/applier/resolver"
)

// Resolver is a resolver.Resolver backed by a plain map that counts the
// queries it answers.
type Resolver struct {
	mu       sync.Mutex
	here     address.Locality
	bindings map[address.GID]address.Address
	calls    int
}

var _ resolver.Resolver = (*Resolver)(nil)

// NewResolver creates a Resolver for the here locality
func NewResolver(here address.Locality) *Resolver {
	return &Resolver{
		here:     here,
		bindings: make(map[address.GID]address.Address),
	}
}

// Local binds gid to a local handle
func (r *Resolver) Local(gid address.GID, handle any, componentType component.Type) address.Address {
	addr := address.New(r.here, handle, componentType)
	r.mu.Lock()
	r.bindings[gid] = addr
	r.mu.Unlock()
	return addr
}

// Remote records that gid lives on locality
func (r *Resolver) Remote(gid address.GID, locality address.Locality, componentType component.Type) address.Address {
	addr := address.New(locality, nil, componentType)
	r.mu.Lock()
	r.bindings[gid] = addr
	r.mu.Unlock()
	return addr
}

// Resolve implements resolver.Resolver
func (r *Resolver) Resolve(gid address.GID) (bool, address.Address) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	addr, ok := r.bindings[gid]
	if !ok {
		return false, address.Address{}
	}
	return addr.IsLocal(r.here), addr
}

// ResolveFull implements resolver.Resolver
func (r *Resolver) ResolveFull(fa *address.FullAddress) bool {
	if fa.IsResolved() {
		return fa.IsLocal(r.here)
	}
	local, addr := r.Resolve(fa.GID())
	if !addr.Locality.IsZero() {
		fa.SetAddress(addr)
	}
	return local
}

// Calls returns the number of queries answered
func (r *Resolver) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}
