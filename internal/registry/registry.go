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

// Package registry keeps the Go types that may travel inside a parcel so
// the receiving side can rebuild argument values with their original types.
package registry

import (
	"maps"
	"reflect"
	"strings"

	"github.com/tochemey/applier/internal/xsync"
)

// Registry defines the types registry interface
type Registry interface {
	// Register records the dynamic type of each given value
	Register(values ...any)
	// Deregister removes the registered type from the registry
	Deregister(v any)
	// Exists return true when the type of the given value is in the registry
	Exists(v any) bool
	// TypesMap returns the registered types at any point in time
	TypesMap() map[string]reflect.Type
	// TypeOf returns the type registered under the given name
	TypeOf(name string) (reflect.Type, bool)
}

type registry struct {
	m *xsync.Map[string, reflect.Type]
}

var _ Registry = (*registry)(nil)

// builtins are always known to the registry so that scalar arguments
// do not need an explicit registration.
var builtins = []any{
	false, "", []byte(nil),
	int(0), int8(0), int16(0), int32(0), int64(0),
	uint(0), uint8(0), uint16(0), uint32(0), uint64(0),
	float32(0), float64(0),
	[]string(nil), []int(nil), []int64(nil), []float64(nil), []any(nil),
	map[string]any(nil), map[string]string(nil),
}

// New creates a new types registry preloaded with the builtin scalar types
func New() Registry {
	r := &registry{
		m: xsync.NewMap[string, reflect.Type](),
	}
	r.Register(builtins...)
	return r
}

// Deregister removes the registered type from the registry
func (x *registry) Deregister(v any) {
	x.m.Delete(Name(v))
}

// Exists return true when the type of the given value is in the registry
func (x *registry) Exists(v any) bool {
	_, ok := x.m.Get(Name(v))
	return ok
}

// TypesMap returns the registered types at any point in time
func (x *registry) TypesMap() map[string]reflect.Type {
	return maps.Collect(x.m.All())
}

// Register records the dynamic type of each given value
func (x *registry) Register(values ...any) {
	for _, v := range values {
		rtype := reflectType(v)
		if rtype == nil {
			continue
		}
		x.m.Set(lowTrim(rtype.String()), rtype)
	}
}

// TypeOf returns the type registered under the given name
func (x *registry) TypeOf(name string) (reflect.Type, bool) {
	return x.m.Get(lowTrim(name))
}

// reflectType returns the runtime type of the value. A reflect.Type is
// taken as is.
func reflectType(v any) reflect.Type {
	if rtype, ok := v.(reflect.Type); ok {
		return rtype
	}
	return reflect.TypeOf(v)
}

// Name returns the registry name of the dynamic type of v.
// It returns an empty string for a nil value.
func Name(v any) string {
	rtype := reflectType(v)
	if rtype == nil {
		return ""
	}
	return lowTrim(rtype.String())
}

// lowTrim trim any space and lower the string value
func lowTrim(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
