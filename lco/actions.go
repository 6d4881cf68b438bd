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

package lco

import (
	"context"
	"errors"

	"github.com/tochemey/applier/action"
	"github.com/tochemey/applier/component"
)

// SetValue completes a Receiver with its single argument.
var SetValue = action.Define("lco.set_value", func(_ context.Context, target Receiver, args action.Arguments) (any, error) {
	target.SetValue(args.At(0))
	return nil, nil
})

// SetError fails a Receiver with the message passed as its single argument.
var SetError = action.Define("lco.set_error", func(_ context.Context, target Receiver, args action.Arguments) (any, error) {
	message, err := action.Arg[string](args, 0)
	if err != nil {
		return nil, err
	}
	target.SetError(errors.New(message))
	return nil, nil
})

// Definitions returns the actions every node needs in its catalog.
func Definitions() []action.Definition {
	return []action.Definition{SetValue, SetError}
}

// Register records Receiver as a base component and Future as its variant.
func Register(types *component.Types) (receiverType, futureType component.Type, err error) {
	receiverType, err = component.Register[Receiver](types)
	if err != nil {
		return component.TypeInvalid, component.TypeInvalid, err
	}
	futureType, err = component.RegisterDerived[*Future](types, receiverType)
	if err != nil {
		return component.TypeInvalid, component.TypeInvalid, err
	}
	return receiverType, futureType, nil
}
