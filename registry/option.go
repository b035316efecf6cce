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

package registry

import (
	"go.opentelemetry.io/otel/metric"

	"github.com/tochemey/extreg/cache"
	imetric "github.com/tochemey/extreg/internal/metric"
	"github.com/tochemey/extreg/log"
)

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(registry *Registry)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*Registry)

// Apply applies the option to the Registry
func (f OptionFunc) Apply(r *Registry) {
	f(r)
}

// WithLogger sets the registry logger
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	})
}

// WithMetrics enables the registry instruments on the given meter
func WithMetrics(meter metric.Meter) Option {
	return OptionFunc(func(r *Registry) {
		r.meter = meter
	})
}

// WithMeterProvider enables the registry instruments on a meter of the given provider.
// A nil provider falls back to the global otel meter provider.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return OptionFunc(func(r *Registry) {
		r.meter = imetric.New(imetric.WithMeterProvider(provider)).Meter()
	})
}

// WithCacheOptions sets the options of the registry cache
func WithCacheOptions(opts ...cache.Option) Option {
	return OptionFunc(func(r *Registry) {
		r.cacheOptions = append(r.cacheOptions, opts...)
	})
}

// WithCacheReadOnly loads the cache at start but never writes it back on Stop
func WithCacheReadOnly() Option {
	return OptionFunc(func(r *Registry) {
		r.cacheReadOnly = true
	})
}
