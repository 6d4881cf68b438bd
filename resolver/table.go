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

package resolver

import (
	lru "github.com/hashicorp/golang-lru"
	"github.com/zeebo/xxh3"

	"github.com/tochemey/applier/address"
	"github.com/tochemey/applier/component"
	"github.com/tochemey/applier/internal/xsync"
)

const (
	// DefaultCacheSize bounds the remote hint cache when none is configured.
	DefaultCacheSize = 4096

	defaultShards = 16
)

// Option configures a Table
type Option func(*Table)

// WithCacheSize sets the number of remote hints kept.
func WithCacheSize(size int) Option {
	return func(t *Table) {
		t.cacheSize = size
	}
}

// WithShards sets the number of shards holding local bindings.
func WithShards(shards int) Option {
	return func(t *Table) {
		t.numShards = shards
	}
}

// Table is a Resolver holding the objects bound on this node and a bounded
// cache of hints about objects living elsewhere.
type Table struct {
	here      address.Locality
	numShards int
	cacheSize int
	shards    []*xsync.Map[address.GID, address.Address]
	remotes   *lru.ARCCache
}

var _ Resolver = (*Table)(nil)

type remoteHint struct {
	locality      address.Locality
	componentType component.Type
}

// NewTable creates a Table for the here locality.
func NewTable(here address.Locality, opts ...Option) (*Table, error) {
	table := &Table{
		here:      here,
		numShards: defaultShards,
		cacheSize: DefaultCacheSize,
	}

	for _, opt := range opts {
		opt(table)
	}

	if table.numShards < 1 {
		table.numShards = 1
	}

	if table.cacheSize < 1 {
		table.cacheSize = DefaultCacheSize
	}

	remotes, err := lru.NewARC(table.cacheSize)
	if err != nil {
		return nil, err
	}

	table.remotes = remotes
	table.shards = make([]*xsync.Map[address.GID, address.Address], table.numShards)
	for i := range table.shards {
		table.shards[i] = xsync.NewMap[address.GID, address.Address]()
	}
	return table, nil
}

// Here returns the locality the table resolves for.
func (t *Table) Here() address.Locality {
	return t.here
}

// Bind registers a local object under gid.
func (t *Table) Bind(gid address.GID, handle any, componentType component.Type) error {
	addr := address.New(t.here, handle, componentType)
	if err := addr.Validate(); err != nil {
		return err
	}
	t.shard(gid).Set(gid, addr)
	t.remotes.Remove(gid)
	return nil
}

// BindRemote records that gid lives on locality. Hints about local objects
// are ignored.
func (t *Table) BindRemote(gid address.GID, locality address.Locality, componentType component.Type) {
	if locality == t.here || locality.IsZero() {
		return
	}
	if _, ok := t.shard(gid).Get(gid); ok {
		return
	}
	t.remotes.Add(gid, remoteHint{locality: locality, componentType: componentType})
}

// Unbind removes gid from the local bindings and the remote hints. It reports
// whether gid was bound locally.
func (t *Table) Unbind(gid address.GID) bool {
	t.remotes.Remove(gid)
	return t.shard(gid).Delete(gid)
}

// Len returns the number of local bindings.
func (t *Table) Len() int {
	var count int
	for _, shard := range t.shards {
		count += shard.Len()
	}
	return count
}

// Resolve implements Resolver
func (t *Table) Resolve(gid address.GID) (bool, address.Address) {
	if addr, ok := t.shard(gid).Get(gid); ok {
		return true, addr
	}

	if value, ok := t.remotes.Get(gid); ok {
		hint := value.(remoteHint)
		return false, address.Address{Locality: hint.locality, Type: hint.componentType}
	}

	return false, address.Address{Type: component.TypeInvalid}
}

// ResolveFull implements Resolver. An unknown GID leaves fa unresolved.
func (t *Table) ResolveFull(fa *address.FullAddress) bool {
	if fa == nil {
		return false
	}

	if fa.IsResolved() {
		return fa.IsLocal(t.here)
	}

	local, addr := t.Resolve(fa.GID())
	if local || !addr.Locality.IsZero() {
		fa.SetAddress(addr)
	}
	return local
}

func (t *Table) shard(gid address.GID) *xsync.Map[address.GID, address.Address] {
	return t.shards[xxh3.Hash(gid.Bytes())%uint64(len(t.shards))]
}
