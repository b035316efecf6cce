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
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// RegistryMetric defines the registry instrumentation
type RegistryMetric struct {
	// Specifies the total number of admitted contributions
	contributionsAdded metric.Int64Counter
	// Specifies the total number of rejected contributions
	contributionsRejected metric.Int64Counter
	// Specifies the total number of removed contributions
	contributionsRemoved metric.Int64Counter
	// Specifies the total number of deltas handed to listeners
	deltasDelivered metric.Int64Counter
	// Specifies the total number of listener panics
	listenerFailures metric.Int64Counter
}

// NewRegistryMetric creates an instance of RegistryMetric
func NewRegistryMetric(meter metric.Meter) (*RegistryMetric, error) {
	registryMetric := new(RegistryMetric)
	var err error
	if registryMetric.contributionsAdded, err = meter.Int64Counter(
		"registry.contributions.added",
		metric.WithDescription("Total number of admitted contributions"),
	); err != nil {
		return nil, fmt.Errorf("failed to create contributionsAdded instrument, %w", err)
	}

	if registryMetric.contributionsRejected, err = meter.Int64Counter(
		"registry.contributions.rejected",
		metric.WithDescription("Total number of contributions rejected because of a conflict or a malformed record"),
	); err != nil {
		return nil, fmt.Errorf("failed to create contributionsRejected instrument, %w", err)
	}

	if registryMetric.contributionsRemoved, err = meter.Int64Counter(
		"registry.contributions.removed",
		metric.WithDescription("Total number of removed contributions"),
	); err != nil {
		return nil, fmt.Errorf("failed to create contributionsRemoved instrument, %w", err)
	}

	if registryMetric.deltasDelivered, err = meter.Int64Counter(
		"registry.deltas.delivered",
		metric.WithDescription("Total number of deltas delivered to listeners"),
	); err != nil {
		return nil, fmt.Errorf("failed to create deltasDelivered instrument, %w", err)
	}

	if registryMetric.listenerFailures, err = meter.Int64Counter(
		"registry.listener.failures",
		metric.WithDescription("Total number of listener invocations that panicked"),
	); err != nil {
		return nil, fmt.Errorf("failed to create listenerFailures instrument, %w", err)
	}

	return registryMetric, nil
}

// ContributionsAdded returns the admitted contributions counter
func (x *RegistryMetric) ContributionsAdded() metric.Int64Counter {
	return x.contributionsAdded
}

// ContributionsRejected returns the rejected contributions counter
func (x *RegistryMetric) ContributionsRejected() metric.Int64Counter {
	return x.contributionsRejected
}

// ContributionsRemoved returns the removed contributions counter
func (x *RegistryMetric) ContributionsRemoved() metric.Int64Counter {
	return x.contributionsRemoved
}

// DeltasDelivered returns the delivered deltas counter
func (x *RegistryMetric) DeltasDelivered() metric.Int64Counter {
	return x.deltasDelivered
}

// ListenerFailures returns the listener failures counter
func (x *RegistryMetric) ListenerFailures() metric.Int64Counter {
	return x.listenerFailures
}

// Recorder is a nil-safe front of RegistryMetric bound to a context
type Recorder struct {
	metric *RegistryMetric
}

// NewRecorder wraps the given RegistryMetric. A nil metric records nothing.
func NewRecorder(registryMetric *RegistryMetric) *Recorder {
	return &Recorder{metric: registryMetric}
}

// Added records an admitted contribution
func (r *Recorder) Added(ctx context.Context, contributor string) {
	if r == nil || r.metric == nil {
		return
	}
	r.metric.contributionsAdded.Add(ctx, 1, metric.WithAttributes(attribute.String("contributor", contributor)))
}

// Rejected records a rejected contribution together with the rejection reason
func (r *Recorder) Rejected(ctx context.Context, contributor, reason string) {
	if r == nil || r.metric == nil {
		return
	}
	r.metric.contributionsRejected.Add(ctx, 1, metric.WithAttributes(
		attribute.String("contributor", contributor),
		attribute.String("reason", reason),
	))
}

// Removed records a removed contribution
func (r *Recorder) Removed(ctx context.Context, contributor string) {
	if r == nil || r.metric == nil {
		return
	}
	r.metric.contributionsRemoved.Add(ctx, 1, metric.WithAttributes(attribute.String("contributor", contributor)))
}

// Delivered records count deltas delivered to a listener
func (r *Recorder) Delivered(ctx context.Context, count int) {
	if r == nil || r.metric == nil || count == 0 {
		return
	}
	r.metric.deltasDelivered.Add(ctx, int64(count))
}

// ListenerFailed records a listener panic
func (r *Recorder) ListenerFailed(ctx context.Context) {
	if r == nil || r.metric == nil {
		return
	}
	r.metric.listenerFailures.Add(ctx, 1)
}
