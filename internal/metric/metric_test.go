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

package metric

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

type recorderMeterProvider struct {
	noop.MeterProvider
	meter  metric.Meter
	called []string
}

func (r *recorderMeterProvider) Meter(name string, _ ...metric.MeterOption) metric.Meter {
	r.called = append(r.called, name)
	return r.meter
}

type failingMeter struct {
	noop.Meter
	failOn string
}

func (f failingMeter) Int64Counter(name string, opts ...metric.Int64CounterOption) (metric.Int64Counter, error) {
	if name == f.failOn {
		return nil, errors.New("instrument failure")
	}
	return f.Meter.Int64Counter(name, opts...)
}

func TestProvider(t *testing.T) {
	t.Run("With global provider", func(t *testing.T) {
		prevProvider := otel.GetMeterProvider()
		recorder := &recorderMeterProvider{meter: noop.NewMeterProvider().Meter("base")}
		otel.SetMeterProvider(recorder)
		t.Cleanup(func() {
			otel.SetMeterProvider(prevProvider)
		})

		provider := NewProvider(nil)
		require.NotNil(t, provider.Meter())
		assert.Equal(t, []string{instrumentationName}, recorder.called)
	})
	t.Run("With custom provider", func(t *testing.T) {
		recorder := &recorderMeterProvider{meter: noop.NewMeterProvider().Meter("custom")}
		provider := NewProvider(recorder)
		assert.Equal(t, recorder.meter, provider.Meter())
	})
}

func TestDispatchMetric(t *testing.T) {
	t.Run("With happy path", func(t *testing.T) {
		ctx := context.Background()
		instruments, err := NewDispatchMetric(noop.NewMeterProvider().Meter("test"), "node-1")
		require.NoError(t, err)
		require.NotNil(t, instruments)

		assert.NotPanics(t, func() {
			instruments.RecordLocal(ctx)
			instruments.RecordRemote(ctx)
			instruments.RecordReceived(ctx)
			instruments.RecordForwarded(ctx)
			instruments.RecordDropped(ctx)
		})
	})
	t.Run("With instrument failure", func(t *testing.T) {
		for _, name := range []string{
			"applier.dispatch.local",
			"applier.dispatch.remote",
			"applier.parcels.received",
			"applier.parcels.forwarded",
			"applier.parcels.dropped",
		} {
			instruments, err := NewDispatchMetric(failingMeter{failOn: name}, "node-1")
			require.Error(t, err, name)
			assert.Nil(t, instruments)
		}
	})
}
