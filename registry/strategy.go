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
	"time"

	"github.com/tochemey/extreg/cache"
	"github.com/tochemey/extreg/extension"
)

// Strategy tells a Registry where its cache lives and how to check that a
// cached contribution still matches its declaration source.
type Strategy interface {
	// Storage returns the cache storage. A nil storage disables caching.
	Storage() cache.Storage
	// IsFresh returns false when the cached contribution must be dropped
	IsFresh(contribution *extension.Contribution) bool
}

type strategy struct {
	storage cache.Storage
	fresh   cache.FreshnessFunc
}

var _ Strategy = (*strategy)(nil)

// DefaultStrategy returns a Strategy without cache
func DefaultStrategy() Strategy {
	return &strategy{}
}

// NewStrategy creates a Strategy. A nil fresh function keeps every cached contribution.
func NewStrategy(storage cache.Storage, fresh cache.FreshnessFunc) Strategy {
	return &strategy{storage: storage, fresh: fresh}
}

func (s *strategy) Storage() cache.Storage {
	return s.storage
}

func (s *strategy) IsFresh(contribution *extension.Contribution) bool {
	if s.fresh == nil {
		return true
	}
	return s.fresh(contribution)
}

// TimestampFreshness builds a FreshnessFunc comparing the timestamp of a cached
// contribution with the current one returned by current. A cached contribution is
// fresh when it is not older than the current timestamp. A contribution whose
// current timestamp is unknown is considered stale.
func TimestampFreshness(current func(contribution *extension.Contribution) (time.Time, bool)) cache.FreshnessFunc {
	return func(contribution *extension.Contribution) bool {
		stamp, ok := current(contribution)
		if !ok {
			return false
		}
		return !contribution.Timestamp.Before(stamp)
	}
}
