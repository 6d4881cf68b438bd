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

package component

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/tochemey/applier/errors"
	"github.com/tochemey/applier/internal/xsync"
)

const maxBaseTypes = baseMask

// Registry is the query side of the component-type registry consumed by the
// dispatcher. Implementations must be safe for concurrent use.
type Registry interface {
	// TypeOf returns the tag registered for the Go type, or TypeInvalid.
	TypeOf(goType reflect.Type) Type
	// Compatible reports whether the two tags are compatible.
	Compatible(a, b Type) bool
}

// Types is the in-process Registry. Registration is expected at startup,
// lookups happen on every dispatch.
type Types struct {
	mu       sync.Mutex
	byGoType *xsync.Map[reflect.Type, Type]
	names    *xsync.Map[Type, string]
	nextBase Type
	variants map[Type]uint16
}

var _ Registry = (*Types)(nil)

// NewTypes creates an empty registry.
func NewTypes() *Types {
	return &Types{
		byGoType: xsync.NewMap[reflect.Type, Type](),
		names:    xsync.NewMap[Type, string](),
		nextBase: 1,
		variants: make(map[Type]uint16),
	}
}

// Register assigns a new base tag to goType.
func (r *Types) Register(goType reflect.Type) (Type, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkUnique(goType); err != nil {
		return TypeInvalid, err
	}

	if r.nextBase > maxBaseTypes {
		return TypeInvalid, errors.NewInternalError(fmt.Errorf("no base type left for %s", goType))
	}

	t := r.nextBase
	r.nextBase++
	r.store(goType, t)
	return t, nil
}

// RegisterDerived assigns goType a new variant tag of base. The base must
// already be registered.
func (r *Types) RegisterDerived(goType reflect.Type, base Type) (Type, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkUnique(goType); err != nil {
		return TypeInvalid, err
	}

	base = base.Base()
	if _, ok := r.names.Get(base); !ok {
		return TypeInvalid, errors.NewErrTypeNotRegistered(base.String())
	}

	variant := r.variants[base] + 1
	if variant == 0 {
		return TypeInvalid, errors.NewInternalError(fmt.Errorf("no variant left of %s for %s", base, goType))
	}
	r.variants[base] = variant

	t := NewDerived(base, variant)
	r.store(goType, t)
	return t, nil
}

// TypeOf returns the tag registered for goType, or TypeInvalid.
func (r *Types) TypeOf(goType reflect.Type) Type {
	if goType == nil {
		return TypeInvalid
	}
	t, _ := r.byGoType.Get(goType)
	return t
}

// Compatible reports whether a and b are compatible.
func (r *Types) Compatible(a, b Type) bool {
	return Compatible(a, b)
}

// Name returns the Go type name registered under t.
func (r *Types) Name(t Type) string {
	if name, ok := r.names.Get(t); ok {
		return name
	}
	return t.String()
}

// Len returns the number of registered Go types.
func (r *Types) Len() int {
	return r.byGoType.Len()
}

func (r *Types) checkUnique(goType reflect.Type) error {
	if goType == nil {
		return errors.NewErrTypeNotRegistered("<nil>")
	}
	if _, ok := r.byGoType.Get(goType); ok {
		return errors.NewErrTypeAlreadyRegistered(goType.String())
	}
	return nil
}

func (r *Types) store(goType reflect.Type, t Type) {
	r.byGoType.Set(goType, t)
	r.names.Set(t, goType.String())
}

// Register assigns a base tag to T.
func Register[T any](r *Types) (Type, error) {
	return r.Register(reflect.TypeFor[T]())
}

// RegisterDerived assigns T a variant tag of base.
func RegisterDerived[T any](r *Types, base Type) (Type, error) {
	return r.RegisterDerived(reflect.TypeFor[T](), base)
}

// TypeFor returns the tag of T in r, or TypeInvalid.
func TypeFor[T any](r Registry) Type {
	return r.TypeOf(reflect.TypeFor[T]())
}
