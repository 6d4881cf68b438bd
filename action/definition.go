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

// Package action describes the work the dispatcher carries: a named
// Definition bound to a component type, the Arguments captured for one
// invocation, and the Continuation that receives the result.
package action

import (
	"context"
	"fmt"
	"reflect"

	"github.com/tochemey/applier/errors"
)

// Definition is a named operation that runs against a target object.
// ComponentType is the Go type of the target the operation is declared for;
// the dispatcher maps it to a component tag before invoking.
type Definition interface {
	// Name identifies the definition across nodes.
	Name() string
	// ComponentType returns the Go type of the expected target.
	ComponentType() reflect.Type
	// Invoke runs the operation against target.
	Invoke(ctx context.Context, target any, args Arguments) (any, error)
}

// Func is the body of an operation declared for targets of type C.
type Func[C any] func(ctx context.Context, target C, args Arguments) (any, error)

type definition[C any] struct {
	name string
	fn   Func[C]
}

var _ Definition = (*definition[any])(nil)

// Define declares an operation named name whose target must be a C.
func Define[C any](name string, fn Func[C]) Definition {
	return &definition[C]{name: name, fn: fn}
}

func (d *definition[C]) Name() string {
	return d.name
}

func (d *definition[C]) ComponentType() reflect.Type {
	return reflect.TypeFor[C]()
}

func (d *definition[C]) Invoke(ctx context.Context, target any, args Arguments) (any, error) {
	typed, ok := target.(C)
	if !ok {
		return nil, errors.NewTypeMismatchError(d.name, d.ComponentType().String(), fmt.Sprintf("%T", target))
	}
	return d.fn(ctx, typed, args)
}

func (d *definition[C]) String() string {
	return d.name
}
