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

package action

import (
	"fmt"

	"github.com/tochemey/applier/errors"
)

// DefaultMaxArity is the argument bound used when none is configured.
const DefaultMaxArity = 8

// Arguments is the immutable ordered argument list of one invocation.
type Arguments struct {
	values []any
}

// NewArguments copies values into an Arguments.
func NewArguments(values ...any) Arguments {
	if len(values) == 0 {
		return Arguments{}
	}
	copied := make([]any, len(values))
	copy(copied, values)
	return Arguments{values: copied}
}

// Len returns the number of arguments.
func (a Arguments) Len() int {
	return len(a.values)
}

// At returns the argument at index i, or nil when i is out of range.
func (a Arguments) At(i int) any {
	if i < 0 || i >= len(a.values) {
		return nil
	}
	return a.values[i]
}

// Values returns a copy of the arguments.
func (a Arguments) Values() []any {
	out := make([]any, len(a.values))
	copy(out, a.values)
	return out
}

// Arg reads argument i as a T.
func Arg[T any](args Arguments, i int) (T, error) {
	var zero T
	if i < 0 || i >= args.Len() {
		return zero, errors.NewErrInvalidArgument(i, fmt.Errorf("out of range, arity is %d", args.Len()))
	}
	value, ok := args.values[i].(T)
	if !ok {
		return zero, errors.NewErrInvalidArgument(i, fmt.Errorf("got %T, want %T", args.values[i], zero))
	}
	return value, nil
}

// MustArg is like Arg but panics when the argument cannot be read.
func MustArg[T any](args Arguments, i int) T {
	value, err := Arg[T](args, i)
	if err != nil {
		panic(err)
	}
	return value
}
