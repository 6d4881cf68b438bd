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

// Package nats is a Transport publishing parcels on NATS subjects. Each
// locality subscribes to <prefix>.<locality>; parcels with an unknown
// destination locality go to <prefix>.broadcast.
package nats

import (
	"context"
	"sync"
	"time"

	"github.com/flowchartsman/retry"
	"github.com/nats-io/nats.go"
	"go.uber.org/atomic"
	"go.uber.org/multierr"

	"github.com/tochemey/applier/address"
	gerrors "github.com/tochemey/applier/errors"
	"github.com/tochemey/applier/log"
	"github.com/tochemey/applier/parcel"
	"github.com/tochemey/applier/transport"
)

const (
	broadcastToken    = "broadcast"
	defaultMaxRetries = 5
)

// Option configures a Transport
type Option func(*Transport)

// WithLogger sets the logger
func WithLogger(logger log.Logger) Option {
	return func(t *Transport) {
		t.logger = logger
	}
}

// Transport implements transport.Transport over NATS.
type Transport struct {
	config *Config
	codec  *parcel.Codec
	logger log.Logger

	mu            sync.Mutex
	connection    *nats.Conn
	subscriptions []*nats.Subscription
	started       *atomic.Bool
}

var _ transport.Transport = (*Transport)(nil)

// New creates a Transport
func New(config *Config, codec *parcel.Codec, opts ...Option) *Transport {
	t := &Transport{
		config:  config,
		codec:   codec,
		logger:  log.DefaultLogger,
		started: atomic.NewBool(false),
	}

	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start connects to the server and subscribes to the locality and broadcast subjects.
func (t *Transport) Start(ctx context.Context, handler transport.Handler) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started.Load() {
		return nil
	}

	if err := t.config.Validate(); err != nil {
		return err
	}

	connection, err := t.connect()
	if err != nil {
		return err
	}

	ctx = context.WithoutCancel(ctx)
	onMessage := func(msg *nats.Msg) {
		p, err := t.codec.Decode(msg.Data)
		if err != nil {
			t.logger.Errorf("locality=(%s) failed to decode parcel from subject=(%s): %v", t.config.Locality, msg.Subject, err)
			return
		}
		if err := handler.HandleParcel(ctx, p); err != nil {
			t.logger.Warnf("locality=(%s) failed to handle parcel=(%s): %v", t.config.Locality, p.ID(), err)
		}
	}

	for _, subject := range []string{t.subject(t.config.Locality), t.subject("")} {
		subscription, err := connection.Subscribe(subject, onMessage)
		if err != nil {
			t.unsubscribe()
			connection.Close()
			return err
		}
		t.subscriptions = append(t.subscriptions, subscription)
	}

	if err := connection.Flush(); err != nil {
		t.unsubscribe()
		connection.Close()
		return err
	}

	t.connection = connection
	t.started.Store(true)
	t.logger.Infof("locality=(%s) listening on NATS subject=(%s)", t.config.Locality, t.subject(t.config.Locality))
	return nil
}

// Deliver publishes p on the subject of its destination locality.
func (t *Transport) Deliver(_ context.Context, p *parcel.Parcel) error {
	if !t.started.Load() {
		return gerrors.ErrTransportStopped
	}

	p.SetSource(t.config.Locality)
	data, err := t.codec.Encode(p)
	if err != nil {
		return err
	}

	return t.connection.Publish(t.subject(p.DestinationAddr().Locality), data)
}

// Stop drops the subscriptions and closes the connection.
func (t *Transport) Stop(context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.started.Load() {
		return nil
	}

	t.started.Store(false)
	err := t.unsubscribe()
	t.connection.Close()
	return err
}

func (t *Transport) connect() (*nats.Conn, error) {
	opts := nats.GetDefaultOptions()
	opts.Url = t.config.URL
	opts.Name = string(t.config.Locality)
	opts.NoEcho = true
	opts.ReconnectWait = 2 * time.Second
	opts.MaxReconnect = -1
	if t.config.ConnectTimeout > 0 {
		opts.Timeout = t.config.ConnectTimeout
	}

	maxRetries := t.config.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	var connection *nats.Conn
	retrier := retry.NewRetrier(maxRetries, 100*time.Millisecond, opts.ReconnectWait)
	err := retrier.Run(func() error {
		var err error
		connection, err = opts.Connect()
		return err
	})
	if err != nil {
		return nil, err
	}
	return connection, nil
}

func (t *Transport) unsubscribe() error {
	var err error
	for _, subscription := range t.subscriptions {
		if subscription != nil && subscription.IsValid() {
			err = multierr.Append(err, subscription.Unsubscribe())
		}
	}
	t.subscriptions = nil
	return err
}

func (t *Transport) subject(locality address.Locality) string {
	if locality.IsZero() {
		return t.config.SubjectPrefix + "." + broadcastToken
	}
	return t.config.SubjectPrefix + "." + string(locality)
}
