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

package testkit

import (
	"github.com/tochemey/applier/action"
	"github.com/tochemey/applier/component"
	"github.com/tochemey/applier/config"
	"github.com/tochemey/applier/log"
)

// Option is the interface that applies a TestKit option.
type Option interface {
	// Apply sets the Option value of a TestKit.
	Apply(testkit *TestKit)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(kit *TestKit)

// Apply applies the TestKit option
func (f OptionFunc) Apply(kit *TestKit) {
	f(kit)
}

// WithLogger sets the logger shared by every node
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(kit *TestKit) {
		kit.logger = logger
	})
}

// WithDefinitions adds actions to the catalog shared by every node
func WithDefinitions(defs ...action.Definition) Option {
	return OptionFunc(func(kit *TestKit) {
		kit.definitions = append(kit.definitions, defs...)
	})
}

// WithArgumentTypes registers argument types with the parcel codec
func WithArgumentTypes(values ...any) Option {
	return OptionFunc(func(kit *TestKit) {
		kit.argumentTypes = append(kit.argumentTypes, values...)
	})
}

// WithComponents registers component types. fn runs once per node, in the
// same order on every node, so type tags agree across the cluster.
func WithComponents(fn func(types *component.Types) error) Option {
	return OptionFunc(func(kit *TestKit) {
		kit.components = append(kit.components, fn)
	})
}

// WithConfig adds options applied to the configuration of every node
func WithConfig(opts ...config.Option) Option {
	return OptionFunc(func(kit *TestKit) {
		kit.configOptions = append(kit.configOptions, opts...)
	})
}
