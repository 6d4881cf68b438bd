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

package nats

import (
	"context"
	"fmt"
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travisjeffery/go-dynaport"

	"github.com/tochemey/applier/action"
	"github.com/tochemey/applier/address"
	"github.com/tochemey/applier/component"
	gerrors "github.com/tochemey/applier/errors"
	"github.com/tochemey/applier/log"
	"github.com/tochemey/applier/parcel"
	"github.com/tochemey/applier/transport"
)

type echoer struct{}

var echo = action.Define("echo", func(_ context.Context, _ *echoer, args action.Arguments) (any, error) {
	return args.At(0), nil
})

func startNatsServer(t *testing.T) *natsserver.Server {
	t.Helper()
	serv, err := natsserver.NewServer(&natsserver.Options{
		Host: "127.0.0.1",
		Port: dynaport.Get(1)[0],
	})

	require.NoError(t, err)

	ready := make(chan bool)
	go func() {
		ready <- true
		serv.Start()
	}()
	<-ready

	if !serv.ReadyForConnections(2 * time.Second) {
		t.Fatalf("nats-io server failed to start")
	}

	t.Cleanup(serv.Shutdown)
	return serv
}

func newTransport(t *testing.T, serv *natsserver.Server, locality address.Locality) *Transport {
	t.Helper()
	codec, err := parcel.NewCodec(action.NewCatalog(echo), parcel.WithCompression(parcel.ZstdCompression))
	require.NoError(t, err)
	t.Cleanup(func() { _ = codec.Close() })

	config := &Config{
		URL:            fmt.Sprintf("nats://%s", serv.Addr().String()),
		SubjectPrefix:  "applier-test",
		Locality:       locality,
		ConnectTimeout: time.Second,
		MaxRetries:     2,
	}
	return New(config, codec, WithLogger(log.DiscardLogger))
}

func collector() (transport.Handler, chan *parcel.Parcel) {
	received := make(chan *parcel.Parcel, 8)
	return transport.HandlerFunc(func(_ context.Context, p *parcel.Parcel) error {
		received <- p
		return nil
	}), received
}

func newParcel(t *testing.T, locality address.Locality, args ...any) *parcel.Parcel {
	t.Helper()
	act, err := action.Bind(echo, 0, args...)
	require.NoError(t, err)
	p := parcel.New(address.NewGID(), act, nil)
	p.SetDestinationAddr(address.Address{Locality: locality, Type: component.Type(1)})
	return p
}

func TestTransport(t *testing.T) {
	t.Run("With addressed parcel", func(t *testing.T) {
		ctx := context.Background()
		serv := startNatsServer(t)

		sender := newTransport(t, serv, "node-1")
		receiver := newTransport(t, serv, "node-2")

		senderHandler, _ := collector()
		require.NoError(t, sender.Start(ctx, senderHandler))
		handler, received := collector()
		require.NoError(t, receiver.Start(ctx, handler))
		require.NoError(t, receiver.Start(ctx, handler))

		p := newParcel(t, "node-2", "hello")
		require.NoError(t, sender.Deliver(ctx, p))

		select {
		case got := <-received:
			assert.Equal(t, p.ID(), got.ID())
			assert.Equal(t, address.Locality("node-1"), got.Source())
			assert.Equal(t, "hello", got.Action().Arguments().At(0))
		case <-time.After(2 * time.Second):
			t.Fatal("parcel not received")
		}

		require.NoError(t, sender.Stop(ctx))
		require.NoError(t, receiver.Stop(ctx))
		require.NoError(t, receiver.Stop(ctx))
	})
	t.Run("With broadcast parcel", func(t *testing.T) {
		ctx := context.Background()
		serv := startNatsServer(t)

		sender := newTransport(t, serv, "node-1")
		receiver := newTransport(t, serv, "node-2")

		senderHandler, senderReceived := collector()
		require.NoError(t, sender.Start(ctx, senderHandler))
		handler, received := collector()
		require.NoError(t, receiver.Start(ctx, handler))

		p := newParcel(t, "", 7)
		require.NoError(t, sender.Deliver(ctx, p))

		select {
		case got := <-received:
			assert.Equal(t, p.ID(), got.ID())
			assert.True(t, got.IsBroadcast())
		case <-time.After(2 * time.Second):
			t.Fatal("broadcast not received")
		}

		assert.Never(t, func() bool { return len(senderReceived) > 0 }, 200*time.Millisecond, 20*time.Millisecond)

		require.NoError(t, sender.Stop(ctx))
		require.NoError(t, receiver.Stop(ctx))
	})
	t.Run("With transport not started", func(t *testing.T) {
		serv := startNatsServer(t)
		sender := newTransport(t, serv, "node-1")
		err := sender.Deliver(context.Background(), newParcel(t, "node-2"))
		assert.ErrorIs(t, err, gerrors.ErrTransportStopped)
		assert.NoError(t, sender.Stop(context.Background()))
	})
	t.Run("With unreachable server", func(t *testing.T) {
		codec, err := parcel.NewCodec(action.NewCatalog(echo))
		require.NoError(t, err)
		config := &Config{
			URL:            fmt.Sprintf("nats://127.0.0.1:%d", dynaport.Get(1)[0]),
			SubjectPrefix:  "applier-test",
			Locality:       "node-1",
			ConnectTimeout: 100 * time.Millisecond,
			MaxRetries:     1,
		}
		handler, _ := collector()
		err = New(config, codec, WithLogger(log.DiscardLogger)).Start(context.Background(), handler)
		assert.Error(t, err)
	})
}

func TestConfig(t *testing.T) {
	config := Config{URL: "nats://127.0.0.1:4222", SubjectPrefix: "applier", Locality: "node-1"}
	assert.NoError(t, config.Validate())

	config.Locality = "node.1"
	assert.ErrorIs(t, config.Validate(), ErrInvalidLocality)

	config.Locality = "broadcast"
	assert.Error(t, config.Validate())

	config.Locality = "node-1"
	config.URL = ""
	assert.Error(t, config.Validate())
}
