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

package config

import (
	"time"

	"github.com/tochemey/applier/parcel"
)

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(config *Config)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*Config)

// Apply applies the Config's option
func (f OptionFunc) Apply(c *Config) {
	f(c)
}

// WithMaxArity sets the maximum number of action arguments
func WithMaxArity(maxArity int) Option {
	return OptionFunc(func(config *Config) {
		config.MaxArity = maxArity
	})
}

// WithForwardingLimit sets how many times a parcel may be forwarded
func WithForwardingLimit(limit int) Option {
	return OptionFunc(func(config *Config) {
		config.ForwardingLimit = limit
	})
}

// WithResolverCacheSize sets the number of remote hints kept
func WithResolverCacheSize(size int) Option {
	return OptionFunc(func(config *Config) {
		config.ResolverCacheSize = size
	})
}

// WithWorkers sets the executor shards and idle timeout
func WithWorkers(shards int, idleTimeout time.Duration) Option {
	return OptionFunc(func(config *Config) {
		config.WorkerShards = shards
		config.WorkerIdleTimeout = idleTimeout
	})
}

// WithCompression sets the parcel compression
func WithCompression(compression parcel.Compression) Option {
	return OptionFunc(func(config *Config) {
		config.Compression = string(compression)
	})
}

// WithLogLevel sets the log level name
func WithLogLevel(level string) Option {
	return OptionFunc(func(config *Config) {
		config.LogLevel = level
	})
}

// WithNats sets the NATS server url and subject prefix
func WithNats(url, subjectPrefix string) Option {
	return OptionFunc(func(config *Config) {
		config.Nats.URL = url
		config.Nats.SubjectPrefix = subjectPrefix
	})
}
