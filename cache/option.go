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

package cache

import (
	"time"

	"github.com/tochemey/extreg/log"
)

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(cache *Cache)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*Cache)

// Apply applies the option to the Cache
func (f OptionFunc) Apply(c *Cache) {
	f(c)
}

// WithLocation sets the storage location of the payload
func WithLocation(location string) Option {
	return OptionFunc(func(c *Cache) {
		if location != "" {
			c.location = location
		}
	})
}

// WithCompression sets the algorithm used to compress the snapshot
func WithCompression(compression Compression) Option {
	return OptionFunc(func(c *Cache) {
		c.compression = compression
	})
}

// WithLoadTimeout bounds how long Load waits on the storage
func WithLoadTimeout(timeout time.Duration) Option {
	return OptionFunc(func(c *Cache) {
		if timeout > 0 {
			c.loadTimeout = timeout
		}
	})
}

// WithLogger sets the cache logger
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	})
}
