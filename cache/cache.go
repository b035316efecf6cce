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

// Package cache persists the contributions marked for persistence so that a
// registry can be rebuilt without reloading every declaration source.
//
// The payload is framed as follows:
//
//	magic (4 bytes) | version (1 byte) | compression (1 byte) | xxh3 checksum (8 bytes) | snapshot
//
// The checksum covers the compressed snapshot. The snapshot is a msgpack document.
package cache

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/zeebo/xxh3"

	gerrors "github.com/tochemey/extreg/errors"
	"github.com/tochemey/extreg/extension"
	"github.com/tochemey/extreg/log"
)

const (
	// DefaultLocation is the storage location of the payload
	DefaultLocation = "registry.cache"
	// DefaultLoadTimeout bounds Load
	DefaultLoadTimeout = 5 * time.Second

	formatVersion byte = 1
	headerSize         = 4 + 1 + 1 + 8
)

var magic = []byte("XRGC")

// FreshnessFunc tells whether a cached contribution still matches its declaration source.
// Stale contributions are dropped on Load and must be submitted again.
type FreshnessFunc func(contribution *extension.Contribution) bool

// Cache saves and loads registry snapshots through a Storage
type Cache struct {
	storage     Storage
	location    string
	compression Compression
	loadTimeout time.Duration
	logger      log.Logger
}

// New creates a Cache on top of storage
func New(storage Storage, opts ...Option) *Cache {
	c := &Cache{
		storage:     storage,
		location:    DefaultLocation,
		compression: Zstd,
		loadTimeout: DefaultLoadTimeout,
		logger:      log.DiscardLogger,
	}
	for _, opt := range opts {
		opt.Apply(c)
	}
	c.logger = c.logger.With("component", "cache", "location", c.location)
	return c
}

// Location returns the storage location of the payload
func (c *Cache) Location() string {
	return c.location
}

// Save persists the contributions marked for persistence, replacing any previous payload
func (c *Cache) Save(ctx context.Context, contributions []*extension.Contribution) error {
	persisted := make([]*extension.Contribution, 0, len(contributions))
	for _, contribution := range contributions {
		if contribution != nil && contribution.Persist {
			persisted = append(persisted, contribution)
		}
	}

	payload, err := c.encode(persisted)
	if err != nil {
		return fmt.Errorf("cache: encode snapshot: %w", err)
	}

	if err := c.storage.Write(ctx, c.location, payload); err != nil {
		return fmt.Errorf("cache: write snapshot: %w", err)
	}

	c.logger.Debugf("saved %d contributions (%d bytes)", len(persisted), len(payload))
	return nil
}

// Read returns every contribution of the payload. It fails with errors.ErrCacheMiss
// when nothing is stored and with errors.ErrCorruptCache when the payload is invalid.
func (c *Cache) Read(ctx context.Context) ([]*extension.Contribution, error) {
	payload, err := c.storage.Read(ctx, c.location)
	if err != nil {
		if errors.Is(err, gerrors.ErrNotFound) {
			return nil, gerrors.ErrCacheMiss
		}
		return nil, err
	}
	return c.decode(payload)
}

// Load reads the payload within the load timeout and returns the fresh contributions.
// Every failure is logged and degrades to a cache miss: Load never fails.
func (c *Cache) Load(ctx context.Context, fresh FreshnessFunc) []*extension.Contribution {
	ctx, cancel := context.WithTimeout(ctx, c.loadTimeout)
	defer cancel()

	type result struct {
		contributions []*extension.Contribution
		err           error
	}

	done := make(chan result, 1)
	go func() {
		contributions, err := c.Read(ctx)
		done <- result{contributions, err}
	}()

	var res result
	select {
	case res = <-done:
	case <-ctx.Done():
		res = result{err: ctx.Err()}
	}

	switch {
	case res.err == nil:
	case errors.Is(res.err, gerrors.ErrCacheMiss):
		c.logger.Debug("no cached registry state")
		return nil
	default:
		c.logger.Warnf("discarding cached registry state: %v", res.err)
		return nil
	}

	out := make([]*extension.Contribution, 0, len(res.contributions))
	for _, contribution := range res.contributions {
		if fresh != nil && !fresh(contribution) {
			c.logger.Debugf("contributor=(%s) cached contribution is stale", contribution.Contributor.ID)
			continue
		}
		out = append(out, contribution)
	}
	c.logger.Debugf("loaded %d of %d cached contributions", len(out), len(res.contributions))
	return out
}

// Clear removes the payload
func (c *Cache) Clear(ctx context.Context) error {
	return c.storage.Remove(ctx, c.location)
}

// Close closes the underlying storage
func (c *Cache) Close() error {
	return c.storage.Close()
}

func (c *Cache) encode(contributions []*extension.Contribution) ([]byte, error) {
	raw, err := encodeSnapshot(contributions)
	if err != nil {
		return nil, err
	}

	body, err := compress(c.compression, raw)
	if err != nil {
		return nil, err
	}

	payload := make([]byte, headerSize, headerSize+len(body))
	copy(payload, magic)
	payload[4] = formatVersion
	payload[5] = byte(c.compression)
	binary.BigEndian.PutUint64(payload[6:headerSize], xxh3.Hash(body))
	return append(payload, body...), nil
}

// decode validates the frame. The compression recorded in the header wins over
// the configured one so that a payload written with another setting still loads.
func (c *Cache) decode(payload []byte) ([]*extension.Contribution, error) {
	if len(payload) < headerSize {
		return nil, gerrors.NewErrCorruptCache(fmt.Errorf("payload of %d bytes is truncated", len(payload)))
	}
	if !bytes.Equal(payload[:4], magic) {
		return nil, gerrors.NewErrCorruptCache(errors.New("bad magic"))
	}
	if version := payload[4]; version != formatVersion {
		return nil, gerrors.NewErrCorruptCache(fmt.Errorf("unsupported format version %d", version))
	}

	compression := Compression(payload[5])
	body := payload[headerSize:]
	if sum := binary.BigEndian.Uint64(payload[6:headerSize]); sum != xxh3.Hash(body) {
		return nil, gerrors.NewErrCorruptCache(errors.New("checksum mismatch"))
	}

	raw, err := decompress(compression, body)
	if err != nil {
		return nil, gerrors.NewErrCorruptCache(fmt.Errorf("decompress: %w", err))
	}

	contributions, err := decodeSnapshot(raw)
	if err != nil {
		return nil, gerrors.NewErrCorruptCache(fmt.Errorf("decode: %w", err))
	}
	return contributions, nil
}
