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

// Package xsync holds the concurrent containers shared by the registries,
// the resolver and the transports.
package xsync

import (
	"iter"
	"maps"
	"sync"
)

// Map is a map guarded by a read-write mutex.
type Map[K comparable, V any] struct {
	mu sync.RWMutex
	m  map[K]V
}

// NewMap creates an empty Map
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{m: make(map[K]V)}
}

func (x *Map[K, V]) Get(k K) (V, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	v, ok := x.m[k]
	return v, ok
}

func (x *Map[K, V]) Set(k K, v V) {
	x.mu.Lock()
	x.m[k] = v
	x.mu.Unlock()
}

// SetIfAbsent stores v unless k is present. It returns the value held
// under k afterwards and whether v was stored.
func (x *Map[K, V]) SetIfAbsent(k K, v V) (V, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()
	if current, ok := x.m[k]; ok {
		return current, false
	}
	x.m[k] = v
	return v, true
}

// Delete removes k and reports whether it was present
func (x *Map[K, V]) Delete(k K) bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	_, ok := x.m[k]
	delete(x.m, k)
	return ok
}

func (x *Map[K, V]) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.m)
}

// All iterates over a copy taken when the iteration starts. The loop body
// may call back into the map.
func (x *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		x.mu.RLock()
		snapshot := maps.Clone(x.m)
		x.mu.RUnlock()

		for k, v := range snapshot {
			if !yield(k, v) {
				return
			}
		}
	}
}
