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

package applier

import (
	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/tochemey/applier/executor"
	"github.com/tochemey/applier/log"
)

// Option is the interface that applies an Applier option.
type Option interface {
	// Apply sets the Option value of an Applier.
	Apply(applier *Applier)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(applier *Applier)

// Apply applies the Applier's option
func (f OptionFunc) Apply(applier *Applier) {
	f(applier)
}

// WithLogger sets the logger
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(applier *Applier) {
		applier.logger = logger
	})
}

// WithExecutor replaces the default worker pool. An executor exposing
// SetTrigger is handed the Applier so continuations fire through it.
func WithExecutor(exec executor.Executor) Option {
	return OptionFunc(func(applier *Applier) {
		applier.executor = exec
	})
}

// WithMeterProvider sets the OpenTelemetry meter provider used for the
// dispatch counters. The global provider is used otherwise.
func WithMeterProvider(provider otelmetric.MeterProvider) Option {
	return OptionFunc(func(applier *Applier) {
		applier.meterProvider = provider
	})
}
