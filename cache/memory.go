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
	"context"
	"slices"
	"sync"

	gerrors "github.com/tochemey/extreg/errors"
)

// MemoryStorage keeps payloads in memory. It is meant for tests and for
// registries that only need the cache across Stop and New in the same process.
type MemoryStorage struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

var _ Storage = (*MemoryStorage)(nil)

// NewMemoryStorage creates an empty MemoryStorage
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string][]byte)}
}

// Read returns a copy of the payload stored at location
func (s *MemoryStorage) Read(ctx context.Context, location string) ([]byte, error) {
	if err := contextErr(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, gerrors.ErrStorageClosed
	}
	data, ok := s.data[location]
	if !ok {
		return nil, gerrors.ErrNotFound
	}
	return slices.Clone(data), nil
}

// Write stores a copy of data at location
func (s *MemoryStorage) Write(ctx context.Context, location string, data []byte) error {
	if err := contextErr(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return gerrors.ErrStorageClosed
	}
	s.data[location] = slices.Clone(data)
	return nil
}

// Remove deletes the payload stored at location
func (s *MemoryStorage) Remove(ctx context.Context, location string) error {
	if err := contextErr(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return gerrors.ErrStorageClosed
	}
	delete(s.data, location)
	return nil
}

// Close marks the storage closed. Stored payloads are kept so that a test can
// reopen them with Reopen.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

// Reopen makes a closed MemoryStorage usable again with its payloads intact
func (s *MemoryStorage) Reopen() {
	s.mu.Lock()
	s.closed = false
	s.mu.Unlock()
}
