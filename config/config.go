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

// Package config holds the settings of one dispatching node. A Config is
// built from Default, a TOML file through Load, or New with options.
package config

import (
	"errors"
	"fmt"
	"regexp"
	"runtime"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/tochemey/applier/action"
	"github.com/tochemey/applier/address"
	"github.com/tochemey/applier/internal/validation"
	"github.com/tochemey/applier/log"
	"github.com/tochemey/applier/parcel"
	"github.com/tochemey/applier/resolver"
	natstransport "github.com/tochemey/applier/transport/nats"
)

var localityPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_\-]*$`)

// DefaultForwardingLimit is the number of times a parcel may be forwarded
// before it is rejected.
const DefaultForwardingLimit = 4

// ErrNatsDisabled is returned when the NATS transport is requested but no
// server url is configured.
var ErrNatsDisabled = errors.New("nats transport is not configured")

// ErrInvalidLocality is returned when the locality name is malformed.
var ErrInvalidLocality = errors.New("locality must start with a letter or digit and contain only [A-Za-z0-9_-]")

// Config defines the settings of a node
type Config struct {
	// Locality names this node
	Locality string `toml:"locality"`
	// LogLevel is one of debug, info, warn, error
	LogLevel string `toml:"log_level"`
	// MaxArity bounds the number of arguments of an action
	MaxArity int `toml:"max_arity"`
	// ForwardingLimit bounds how many times a parcel is forwarded
	ForwardingLimit int `toml:"forwarding_limit"`
	// ResolverCacheSize bounds the remote address hints kept by the resolver
	ResolverCacheSize int `toml:"resolver_cache_size"`
	// WorkerShards is the number of shards of the local executor
	WorkerShards int `toml:"worker_shards"`
	// WorkerIdleTimeout is how long an idle worker is kept
	WorkerIdleTimeout time.Duration `toml:"worker_idle_timeout"`
	// Compression applied to parcels: none, zstd or brotli
	Compression string `toml:"compression"`
	// Nats configures the NATS transport. It is unused when URL is empty.
	Nats NatsConfig `toml:"nats"`
}

// NatsConfig defines the NATS transport settings
type NatsConfig struct {
	URL            string        `toml:"url"`
	SubjectPrefix  string        `toml:"subject_prefix"`
	ConnectTimeout time.Duration `toml:"connect_timeout"`
	MaxRetries     int           `toml:"max_retries"`
}

var _ validation.Validator = (*Config)(nil)

// Default returns a Config with every default set and no locality.
func Default() *Config {
	return &Config{
		LogLevel:          log.InfoLevel.String(),
		MaxArity:          action.DefaultMaxArity,
		ForwardingLimit:   DefaultForwardingLimit,
		ResolverCacheSize: resolver.DefaultCacheSize,
		WorkerShards:      runtime.NumCPU(),
		WorkerIdleTimeout: time.Second,
		Compression:       string(parcel.NoCompression),
		Nats: NatsConfig{
			SubjectPrefix:  "applier",
			ConnectTimeout: 2 * time.Second,
			MaxRetries:     5,
		},
	}
}

// New returns the default Config for locality with opts applied.
func New(locality string, opts ...Option) *Config {
	config := Default()
	config.Locality = locality
	for _, opt := range opts {
		opt.Apply(config)
	}
	return config
}

// Load reads a TOML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	config := Default()
	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("load config (%s): %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config (%s): %w", path, err)
	}
	return config, nil
}

// Validate checks every field and reports all violations.
func (c *Config) Validate() error {
	return validation.New(validation.AllErrors).
		Add(validation.Required("locality", c.Locality),
			validation.Matches(localityPattern, c.Locality, ErrInvalidLocality),
			validation.Positive("max_arity", c.MaxArity),
			validation.Positive("resolver_cache_size", c.ResolverCacheSize),
			validation.Positive("worker_shards", c.WorkerShards),
			validation.Positive("worker_idle_timeout", c.WorkerIdleTimeout)).
		Assert(log.ParseLevel(c.LogLevel) != log.InvalidLevel, "the [log_level] %q is invalid", c.LogLevel).
		Assert(c.ForwardingLimit >= 0, "the [forwarding_limit] must not be negative").
		Assert(parcel.Compression(c.Compression).IsValid(), "the [compression] %q is invalid", c.Compression).
		When(c.Nats.URL != "", c.NatsTransportConfig()).
		Validate()
}

// Here returns the locality as an address.Locality
func (c *Config) Here() address.Locality {
	return address.Locality(c.Locality)
}

// Logger builds the zap logger matching LogLevel and writing to stdout.
func (c *Config) Logger() log.Logger {
	level := log.ParseLevel(c.LogLevel)
	if level == log.InvalidLevel {
		level = log.InfoLevel
	}
	return log.NewZap(level)
}

// NatsTransportConfig returns the settings of the NATS transport.
func (c *Config) NatsTransportConfig() *natstransport.Config {
	return &natstransport.Config{
		URL:            c.Nats.URL,
		SubjectPrefix:  c.Nats.SubjectPrefix,
		Locality:       c.Here(),
		ConnectTimeout: c.Nats.ConnectTimeout,
		MaxRetries:     c.Nats.MaxRetries,
	}
}

// NatsTransport builds the NATS transport of the node. It logs through
// Logger unless opts set another logger.
func (c *Config) NatsTransport(codec *parcel.Codec, opts ...natstransport.Option) (*natstransport.Transport, error) {
	if c.Nats.URL == "" {
		return nil, ErrNatsDisabled
	}

	natsConfig := c.NatsTransportConfig()
	if err := natsConfig.Validate(); err != nil {
		return nil, err
	}

	opts = append([]natstransport.Option{natstransport.WithLogger(c.Logger())}, opts...)
	return natstransport.New(natsConfig, codec, opts...), nil
}
