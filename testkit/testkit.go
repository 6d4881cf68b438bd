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

// Package testkit provides fakes for the dispatch collaborators and an
// in-process cluster of nodes connected through the inmem transport.
package testkit

import (
	"context"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/tochemey/applier/action"
	"github.com/tochemey/applier/address"
	"github.com/tochemey/applier/applier"
	"github.com/tochemey/applier/component"
	"github.com/tochemey/applier/config"
	"github.com/tochemey/applier/lco"
	"github.com/tochemey/applier/log"
	"github.com/tochemey/applier/parcel"
	"github.com/tochemey/applier/resolver"
	"github.com/tochemey/applier/transport/inmem"
)

// TestKit runs several nodes in the same process.
type TestKit struct {
	t             testing.TB
	logger        log.Logger
	definitions   []action.Definition
	argumentTypes []any
	components    []func(types *component.Types) error
	configOptions []config.Option

	codec *parcel.Codec
	hub   *inmem.Hub

	mu    sync.Mutex
	nodes []*Node
}

// Node is one locality of a TestKit
type Node struct {
	kit      *TestKit
	Applier  *applier.Applier
	Resolver *resolver.Table
	Types    *component.Types
}

// New creates a TestKit. The kit shuts down when the test ends.
func New(ctx context.Context, t testing.TB, opts ...Option) *TestKit {
	kit := &TestKit{
		t:      t,
		logger: log.DiscardLogger,
	}

	for _, opt := range opts {
		opt.Apply(kit)
	}

	catalog := action.NewCatalog(lco.Definitions()...)
	require.NoError(t, catalog.Register(kit.definitions...))

	// every node shares the codec, so compression comes from the kit-wide options
	cfg := config.New("testkit", kit.configOptions...)
	codec, err := parcel.NewCodec(catalog,
		parcel.WithTypes(kit.argumentTypes...),
		parcel.WithCompression(parcel.Compression(cfg.Compression)))
	require.NoError(t, err)

	kit.codec = codec
	kit.hub = inmem.NewHub(codec, inmem.WithLogger(kit.logger))

	t.Cleanup(func() {
		require.NoError(t, kit.Shutdown(context.WithoutCancel(ctx)))
	})
	return kit
}

// AddNode starts a node at locality
func (k *TestKit) AddNode(ctx context.Context, locality string) *Node {
	k.t.Helper()

	types := component.NewTypes()
	_, _, err := lco.Register(types)
	require.NoError(k.t, err)
	for _, fn := range k.components {
		require.NoError(k.t, fn(types))
	}

	cfg := config.New(locality, k.configOptions...)
	table, err := resolver.NewTable(cfg.Here(), resolver.WithCacheSize(cfg.ResolverCacheSize))
	require.NoError(k.t, err)

	dispatcher, err := applier.New(cfg, table, k.hub.Endpoint(cfg.Here()), types, applier.WithLogger(k.logger))
	require.NoError(k.t, err)
	require.NoError(k.t, dispatcher.Start(ctx))

	node := &Node{
		kit:      k,
		Applier:  dispatcher,
		Resolver: table,
		Types:    types,
	}

	k.mu.Lock()
	k.nodes = append(k.nodes, node)
	k.mu.Unlock()
	return node
}

// Codec returns the codec shared by the nodes
func (k *TestKit) Codec() *parcel.Codec {
	return k.codec
}

// Nodes returns the nodes in creation order
func (k *TestKit) Nodes() []*Node {
	k.mu.Lock()
	defer k.mu.Unlock()
	out := make([]*Node, len(k.nodes))
	copy(out, k.nodes)
	return out
}

// Shutdown stops every node, then the hub
func (k *TestKit) Shutdown(ctx context.Context) error {
	k.mu.Lock()
	nodes := k.nodes
	k.nodes = nil
	k.mu.Unlock()

	var err error
	for _, node := range nodes {
		err = multierr.Append(err, node.Applier.Stop(ctx))
	}

	if k.hub != nil {
		err = multierr.Append(err, k.hub.Close(ctx))
		k.hub = nil
	}
	return err
}

// Here returns the locality of the node
func (n *Node) Here() address.Locality {
	return n.Applier.Here()
}

// Spawn binds handle on the node under a new GID and tells every other
// node where it lives. The dynamic type of handle must be registered.
func (n *Node) Spawn(handle any) address.GID {
	gid := n.SpawnHidden(handle)
	componentType := n.Types.TypeOf(reflect.TypeOf(handle))
	for _, peer := range n.kit.Nodes() {
		if peer != n {
			peer.Resolver.BindRemote(gid, n.Here(), componentType)
		}
	}
	return gid
}

// SpawnHidden binds handle on the node only. Other nodes reach it through
// broadcast parcels.
func (n *Node) SpawnHidden(handle any) address.GID {
	n.kit.t.Helper()
	componentType := n.Types.TypeOf(reflect.TypeOf(handle))
	require.Truef(n.kit.t, componentType.IsValid(), "component type %T is not registered", handle)

	gid := address.NewGID()
	require.NoError(n.kit.t, n.Resolver.Bind(gid, handle, componentType))
	return gid
}

// NewFuture spawns a Future on the node to receive a continuation result
func (n *Node) NewFuture() (address.GID, *lco.Future) {
	future := lco.NewFuture()
	return n.Spawn(future), future
}
