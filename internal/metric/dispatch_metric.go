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

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// localityKey is the attribute naming the node that recorded the measure
const localityKey = "applier.locality"

// DispatchMetric groups the counters describing how the applier routed
// work:
//   - applier.dispatch.local     actions submitted to the local executor
//   - applier.dispatch.remote    parcels handed to the transport
//   - applier.parcels.received   parcels accepted from the transport
//   - applier.parcels.forwarded  parcels sent on to another locality
//   - applier.parcels.dropped    parcels rejected on the receive path
type DispatchMetric struct {
	local     metric.Int64Counter
	remote    metric.Int64Counter
	received  metric.Int64Counter
	forwarded metric.Int64Counter
	dropped   metric.Int64Counter
	attrs     metric.MeasurementOption
}

// NewDispatchMetric creates the dispatch counters using the provided Meter.
// It returns an error if any instrument cannot be created so telemetry
// initialization failures are surfaced early.
func NewDispatchMetric(meter metric.Meter, locality string) (*DispatchMetric, error) {
	instruments := &DispatchMetric{
		attrs: metric.WithAttributeSet(attribute.NewSet(attribute.String(localityKey, locality))),
	}

	var err error
	if instruments.local, err = meter.Int64Counter(
		"applier.dispatch.local",
		metric.WithDescription("Total number of actions submitted for local execution"),
	); err != nil {
		return nil, err
	}

	if instruments.remote, err = meter.Int64Counter(
		"applier.dispatch.remote",
		metric.WithDescription("Total number of parcels handed to the transport"),
	); err != nil {
		return nil, err
	}

	if instruments.received, err = meter.Int64Counter(
		"applier.parcels.received",
		metric.WithDescription("Total number of parcels received from the transport"),
	); err != nil {
		return nil, err
	}

	if instruments.forwarded, err = meter.Int64Counter(
		"applier.parcels.forwarded",
		metric.WithDescription("Total number of parcels forwarded to another locality"),
	); err != nil {
		return nil, err
	}

	if instruments.dropped, err = meter.Int64Counter(
		"applier.parcels.dropped",
		metric.WithDescription("Total number of parcels dropped on the receive path"),
	); err != nil {
		return nil, err
	}

	return instruments, nil
}

// RecordLocal counts one local submission
func (x *DispatchMetric) RecordLocal(ctx context.Context) {
	x.local.Add(ctx, 1, x.attrs)
}

// RecordRemote counts one parcel handed to the transport
func (x *DispatchMetric) RecordRemote(ctx context.Context) {
	x.remote.Add(ctx, 1, x.attrs)
}

// RecordReceived counts one parcel received
func (x *DispatchMetric) RecordReceived(ctx context.Context) {
	x.received.Add(ctx, 1, x.attrs)
}

// RecordForwarded counts one forwarded parcel
func (x *DispatchMetric) RecordForwarded(ctx context.Context) {
	x.forwarded.Add(ctx, 1, x.attrs)
}

// RecordDropped counts one dropped parcel
func (x *DispatchMetric) RecordDropped(ctx context.Context) {
	x.dropped.Add(ctx, 1, x.attrs)
}
