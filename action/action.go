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
	"context"

	"github.com/tochemey/applier/errors"
)

// Action is a Definition bound to the arguments of one invocation. It is
// immutable once bound.
type Action struct {
	def  Definition
	args Arguments
}

// Bind captures args for def. A maxArity of zero or less means
// DefaultMaxArity.
func Bind(def Definition, maxArity int, args ...any) (*Action, error) {
	if def == nil {
		return nil, errors.ErrUndefinedAction
	}

	if maxArity <= 0 {
		maxArity = DefaultMaxArity
	}

	if len(args) > maxArity {
		return nil, errors.NewErrArityExceeded(len(args), maxArity)
	}

	return &Action{
		def:  def,
		args: NewArguments(args...),
	}, nil
}

// Definition returns the bound definition
func (a *Action) Definition() Definition {
	return a.def
}

// Name returns the definition name
func (a *Action) Name() string {
	return a.def.Name()
}

// Arguments returns the captured arguments
func (a *Action) Arguments() Arguments {
	return a.args
}

// Invoke runs the action against target.
func (a *Action) Invoke(ctx context.Context, target any) (any, error) {
	return a.def.Invoke(ctx, target, a.args)
}

func (a *Action) String() string {
	return a.def.Name()
}
