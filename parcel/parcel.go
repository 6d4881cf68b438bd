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

// Package parcel defines the unit of remote dispatch: an action addressed to
// a GID, with an optional continuation, plus the codec moving it between nodes.
package parcel

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/tochemey/applier/action"
	"github.com/tochemey/applier/address"
)

// Parcel carries an action to the node owning its destination GID. The
// parcel owns its action and continuation.
type Parcel struct {
	id           string
	destination  address.GID
	addr         address.Address
	action       *action.Action
	continuation *action.Continuation
	source       address.Locality
	hops         int
}

// New creates a parcel for the given destination. cont may be nil.
func New(destination address.GID, act *action.Action, cont *action.Continuation) *Parcel {
	return &Parcel{
		id:           uuid.NewString(),
		destination:  destination,
		action:       act,
		continuation: cont,
	}
}

// ID returns the parcel unique id
func (p *Parcel) ID() string {
	return p.id
}

// Destination returns the destination GID
func (p *Parcel) Destination() address.GID {
	return p.destination
}

// DestinationAddr returns the cached destination address. Its Handle is
// only set on the node that built the parcel.
func (p *Parcel) DestinationAddr() address.Address {
	return p.addr
}

// SetDestinationAddr caches the address the destination resolved to.
func (p *Parcel) SetDestinationAddr(addr address.Address) {
	p.addr = addr
}

// Action returns the carried action
func (p *Parcel) Action() *action.Action {
	return p.action
}

// Continuation returns the carried continuation, or nil.
func (p *Parcel) Continuation() *action.Continuation {
	return p.continuation
}

// Source returns the locality that sent the parcel.
func (p *Parcel) Source() address.Locality {
	return p.source
}

// SetSource records the sending locality.
func (p *Parcel) SetSource(source address.Locality) {
	p.source = source
}

// Hops returns how many times the parcel was forwarded.
func (p *Parcel) Hops() int {
	return p.hops
}

// Forward readdresses the parcel to locality and counts the hop.
func (p *Parcel) Forward(from, to address.Locality) {
	p.hops++
	p.source = from
	p.addr.Locality = to
	p.addr.Handle = nil
}

// IsBroadcast reports whether the destination locality is unknown.
func (p *Parcel) IsBroadcast() bool {
	return p.addr.Locality.IsZero()
}

func (p *Parcel) String() string {
	return fmt.Sprintf("parcel(id=%s, action=%s, destination=%s, locality=%s)",
		p.id, p.action, p.destination, p.addr.Locality)
}
