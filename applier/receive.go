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

package applier

import (
	"context"

	"github.com/tochemey/applier/action"
	"github.com/tochemey/applier/address"
	"github.com/tochemey/applier/errors"
	"github.com/tochemey/applier/lco"
	"github.com/tochemey/applier/parcel"
)

// HandleParcel runs a parcel taken in by the transport. A parcel whose
// destination lives here is submitted to the executor. Otherwise a
// broadcast parcel is dropped and an addressed one is forwarded to the
// locality the resolver knows about, until the forwarding limit is reached.
// Unlike ApplyLocal, a type mismatch is reported as an error since the
// parcel comes from another node.
func (a *Applier) HandleParcel(ctx context.Context, p *parcel.Parcel) error {
	a.metric.RecordReceived(ctx)

	act := p.Action()
	if act == nil {
		return errors.ErrUndefinedAction
	}

	local, addr := a.resolver.Resolve(p.Destination())
	if local {
		if !a.Compatible(addr, act.Definition()) {
			return a.mismatch(act.Definition(), addr)
		}
		if err := a.executor.Submit(ctx, addr.Handle, act, p.Continuation()); err != nil {
			return err
		}
		a.metric.RecordLocal(ctx)
		return nil
	}

	if p.IsBroadcast() {
		a.metric.RecordDropped(ctx)
		a.logger.Debugf("dropping broadcast parcel=(%s) for unknown gid=(%s)", p.ID(), p.Destination())
		return nil
	}

	if p.Hops() >= a.config.ForwardingLimit {
		a.metric.RecordDropped(ctx)
		return errors.NewErrForwardingLimit(p.ID(), p.Hops())
	}

	p.Forward(a.here, addr.Locality)
	if err := a.transport.Deliver(ctx, p); err != nil {
		return errors.NewRemoteDeliveryError(err)
	}

	a.metric.RecordForwarded(ctx)
	a.logger.Debugf("forwarded parcel=(%s) to locality=(%s) hops=%d", p.ID(), addr.Locality, p.Hops())
	return nil
}

// Trigger delivers an action outcome to the continuation target by
// applying lco.SetValue, or lco.SetError when err is set. The target may
// live on any node. A local target that is not an lco.Receiver is reported
// as an error.
func (a *Applier) Trigger(ctx context.Context, cont *action.Continuation, result any, err error) error {
	if cont == nil {
		return errors.ErrUndefinedContinuation
	}

	def, arg := lco.SetValue, result
	if err != nil {
		def, arg = lco.SetError, err.Error()
	}

	target := cont.FullAddress()
	if target == nil {
		target = address.FullAddressOf(cont.GID())
	}

	local, addr := a.locate(target)
	if local {
		if !a.Compatible(addr, def) {
			return a.mismatch(def, addr)
		}
		_, err := a.applyLocal(ctx, def, addr, nil, []any{arg})
		return err
	}

	_, err = a.applyRemote(ctx, def, &addr, target.GID(), nil, []any{arg})
	return err
}
