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

// Package applier dispatches actions to objects named by GID. Every apply
// asks the resolver once and either submits the action to the local
// executor or wraps it in a parcel handed to the transport. Neither path
// waits for the action to run.
//
// The boolean returned by every apply reports the routing decision: true
// when the action was submitted locally, false when it was handed to the
// transport. The error reports argument validation or hand-off failures.
package applier

import (
	"context"

	otelmetric "go.opentelemetry.io/otel/metric"
	"go.uber.org/atomic"
	"go.uber.org/multierr"

	"github.com/tochemey/applier/action"
	"github.com/tochemey/applier/address"
	"github.com/tochemey/applier/component"
	"github.com/tochemey/applier/config"
	"github.com/tochemey/applier/errors"
	"github.com/tochemey/applier/executor"
	"github.com/tochemey/applier/internal/metric"
	"github.com/tochemey/applier/log"
	"github.com/tochemey/applier/parcel"
	"github.com/tochemey/applier/resolver"
	"github.com/tochemey/applier/transport"
)

// Applier is the dispatch context of one node. It is safe for concurrent use.
type Applier struct {
	config        *config.Config
	here          address.Locality
	resolver      resolver.Resolver
	transport     transport.Transport
	registry      component.Registry
	executor      executor.Executor
	logger        log.Logger
	meterProvider otelmetric.MeterProvider
	metric        *metric.DispatchMetric
	started       *atomic.Bool
}

var (
	_ transport.Handler = (*Applier)(nil)
	_ action.Trigger    = (*Applier)(nil)
)

// New creates an Applier for the node described by cfg.
func New(cfg *config.Config, res resolver.Resolver, tr transport.Transport, registry component.Registry, opts ...Option) (*Applier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	applier := &Applier{
		config:    cfg,
		here:      cfg.Here(),
		resolver:  res,
		transport: tr,
		registry:  registry,
		started:   atomic.NewBool(false),
	}

	for _, opt := range opts {
		opt.Apply(applier)
	}

	if applier.logger == nil {
		applier.logger = cfg.Logger()
	}

	applier.logger = applier.logger.With("locality", cfg.Locality)

	if applier.executor == nil {
		applier.executor = executor.NewPool(
			executor.WithShards(cfg.WorkerShards),
			executor.WithIdleTimeout(cfg.WorkerIdleTimeout),
			executor.WithLogger(applier.logger))
	}

	if setter, ok := applier.executor.(interface{ SetTrigger(action.Trigger) }); ok {
		setter.SetTrigger(applier)
	}

	dispatchMetric, err := metric.NewDispatchMetric(metric.NewProvider(applier.meterProvider).Meter(), cfg.Locality)
	if err != nil {
		return nil, err
	}
	applier.metric = dispatchMetric
	return applier, nil
}

// Here returns the locality of the node
func (a *Applier) Here() address.Locality {
	return a.here
}

// Logger returns the logger of the node
func (a *Applier) Logger() log.Logger {
	return a.logger
}

// Start starts the executor and begins receiving parcels.
func (a *Applier) Start(ctx context.Context) error {
	if !a.started.CompareAndSwap(false, true) {
		return nil
	}

	if err := a.executor.Start(ctx); err != nil {
		a.started.Store(false)
		return err
	}

	if err := a.transport.Start(ctx, a); err != nil {
		a.started.Store(false)
		return multierr.Append(err, a.executor.Stop(ctx))
	}

	a.logger.Infof("applier started (max_arity=%d, forwarding_limit=%d)", a.config.MaxArity, a.config.ForwardingLimit)
	return nil
}

// Stop stops receiving parcels, then stops the executor.
func (a *Applier) Stop(ctx context.Context) error {
	if !a.started.CompareAndSwap(true, false) {
		return nil
	}

	err := multierr.Combine(a.transport.Stop(ctx), a.executor.Stop(ctx))
	if err != nil {
		a.logger.Errorf("applier stopped with errors: %v", err)
		return err
	}
	a.logger.Info("applier stopped")
	return nil
}

// Compatible reports whether def may run against the object at addr.
// ApplyLocal panics when it is not.
func (a *Applier) Compatible(addr address.Address, def action.Definition) bool {
	if def == nil {
		return false
	}
	return a.registry.Compatible(addr.Type, a.registry.TypeOf(def.ComponentType()))
}

// Apply runs def against gid with args, locally when gid resolves here.
func (a *Applier) Apply(ctx context.Context, def action.Definition, gid address.GID, args ...any) (bool, error) {
	local, addr := a.resolver.Resolve(gid)
	if local {
		return a.applyLocal(ctx, def, addr, nil, args)
	}
	return a.applyRemote(ctx, def, &addr, gid, nil, args)
}

// ApplyWith is Apply delivering the outcome to cont. cont is spent once
// the action is bound.
func (a *Applier) ApplyWith(ctx context.Context, cont *action.Continuation, def action.Definition, gid address.GID, args ...any) (bool, error) {
	local, addr := a.resolver.Resolve(gid)
	if cont == nil {
		return local, errors.ErrUndefinedContinuation
	}
	if local {
		return a.applyLocal(ctx, def, addr, cont, args)
	}
	return a.applyRemote(ctx, def, &addr, gid, cont, args)
}

// ApplyFull is Apply for a FullAddress. A resolved fa is routed on its own
// locality without asking the resolver. A remote fa without a component type
// keeps the type of def.
func (a *Applier) ApplyFull(ctx context.Context, def action.Definition, fa *address.FullAddress, args ...any) (bool, error) {
	if fa == nil {
		return false, errors.ErrAddressNotFound
	}
	local, addr := a.locate(fa)
	if local {
		return a.applyLocal(ctx, def, addr, nil, args)
	}
	routed, err := a.applyRemote(ctx, def, &addr, fa.GID(), nil, args)
	fa.FillType(addr.Type)
	return routed, err
}

// ApplyFullWith is ApplyFull delivering the outcome to cont.
func (a *Applier) ApplyFullWith(ctx context.Context, cont *action.Continuation, def action.Definition, fa *address.FullAddress, args ...any) (bool, error) {
	if fa == nil {
		return false, errors.ErrAddressNotFound
	}
	local, addr := a.locate(fa)
	if cont == nil {
		return local, errors.ErrUndefinedContinuation
	}
	if local {
		return a.applyLocal(ctx, def, addr, cont, args)
	}
	routed, err := a.applyRemote(ctx, def, &addr, fa.GID(), cont, args)
	fa.FillType(addr.Type)
	return routed, err
}

// ApplyLocal submits def against the local object at addr. addr must be
// compatible with def: a mismatch is a programming error and panics with
// a *errors.TypeMismatchError. Use Compatible to check first.
func (a *Applier) ApplyLocal(ctx context.Context, def action.Definition, addr address.Address, args ...any) (bool, error) {
	return a.applyLocal(ctx, def, addr, nil, args)
}

// ApplyLocalWith is ApplyLocal delivering the outcome to cont.
func (a *Applier) ApplyLocalWith(ctx context.Context, cont *action.Continuation, def action.Definition, addr address.Address, args ...any) (bool, error) {
	if cont == nil {
		return true, errors.ErrUndefinedContinuation
	}
	return a.applyLocal(ctx, def, addr, cont, args)
}

// ApplyRemote sends def to gid in a parcel. When addr carries no component
// type it is set from def before being cached in the parcel.
func (a *Applier) ApplyRemote(ctx context.Context, def action.Definition, addr *address.Address, gid address.GID, args ...any) (bool, error) {
	return a.applyRemote(ctx, def, addr, gid, nil, args)
}

// ApplyRemoteWith is ApplyRemote delivering the outcome to cont.
func (a *Applier) ApplyRemoteWith(ctx context.Context, cont *action.Continuation, def action.Definition, addr *address.Address, gid address.GID, args ...any) (bool, error) {
	if cont == nil {
		return false, errors.ErrUndefinedContinuation
	}
	return a.applyRemote(ctx, def, addr, gid, cont, args)
}

// ApplyC is ApplyWith with a continuation targeting contGID.
func (a *Applier) ApplyC(ctx context.Context, contGID address.GID, def action.Definition, gid address.GID, args ...any) (bool, error) {
	return a.ApplyWith(ctx, action.NewContinuation(contGID), def, gid, args...)
}

// ApplyCFull is ApplyWith with a continuation targeting contFA.
func (a *Applier) ApplyCFull(ctx context.Context, contFA *address.FullAddress, def action.Definition, gid address.GID, args ...any) (bool, error) {
	return a.ApplyWith(ctx, action.NewContinuationFor(contFA), def, gid, args...)
}

// ApplyRemoteC is ApplyRemoteWith with a continuation targeting contGID.
func (a *Applier) ApplyRemoteC(ctx context.Context, contGID address.GID, def action.Definition, addr *address.Address, gid address.GID, args ...any) (bool, error) {
	return a.ApplyRemoteWith(ctx, action.NewContinuation(contGID), def, addr, gid, args...)
}

// ApplyRemoteCFull is ApplyRemoteWith with a continuation targeting contFA.
func (a *Applier) ApplyRemoteCFull(ctx context.Context, contFA *address.FullAddress, def action.Definition, addr *address.Address, gid address.GID, args ...any) (bool, error) {
	return a.ApplyRemoteWith(ctx, action.NewContinuationFor(contFA), def, addr, gid, args...)
}

func (a *Applier) locate(fa *address.FullAddress) (bool, address.Address) {
	if addr, resolved := fa.Load(); resolved {
		return addr.IsLocal(a.here), addr
	}
	local := a.resolver.ResolveFull(fa)
	return local, fa.Address()
}

func (a *Applier) bind(def action.Definition, args []any) (*action.Action, error) {
	return action.Bind(def, a.config.MaxArity, args...)
}

// transfer takes ownership of cont. A nil continuation stays nil.
func transfer(cont *action.Continuation) (*action.Continuation, error) {
	if cont == nil {
		return nil, nil
	}
	return cont.Transfer()
}

func (a *Applier) applyLocal(ctx context.Context, def action.Definition, addr address.Address, cont *action.Continuation, args []any) (bool, error) {
	act, err := a.bind(def, args)
	if err != nil {
		return true, err
	}

	if !a.Compatible(addr, def) {
		err := a.mismatch(def, addr)
		a.logger.Error(err)
		panic(err)
	}

	owned, err := transfer(cont)
	if err != nil {
		return true, err
	}

	if err := a.executor.Submit(ctx, addr.Handle, act, owned); err != nil {
		cont.Reclaim(owned)
		return true, err
	}

	a.metric.RecordLocal(ctx)
	return true, nil
}

func (a *Applier) applyRemote(ctx context.Context, def action.Definition, addr *address.Address, gid address.GID, cont *action.Continuation, args []any) (bool, error) {
	act, err := a.bind(def, args)
	if err != nil {
		return false, err
	}

	owned, err := transfer(cont)
	if err != nil {
		return false, err
	}

	if addr == nil {
		addr = new(address.Address)
	}

	if !addr.Type.IsValid() {
		addr.Type = a.registry.TypeOf(def.ComponentType())
	}

	p := parcel.New(gid, act, owned)
	p.SetDestinationAddr(*addr)
	p.SetSource(a.here)

	if err := a.transport.Deliver(ctx, p); err != nil {
		cont.Reclaim(owned)
		a.logger.Warnf("failed to deliver parcel=(%s) to gid=(%s): %v", p.ID(), gid, err)
		return false, errors.NewRemoteDeliveryError(err)
	}

	a.metric.RecordRemote(ctx)
	return false, nil
}

func (a *Applier) mismatch(def action.Definition, addr address.Address) *errors.TypeMismatchError {
	declared := a.registry.TypeOf(def.ComponentType())
	return errors.NewTypeMismatchError(def.Name(), declared.String(), addr.Type.String())
}
