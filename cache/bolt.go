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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/flowchartsman/retry"
	bbolt "go.etcd.io/bbolt"
	berrors "go.etcd.io/bbolt/errors"
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/extreg/errors"
)

const (
	boltBucketName  = "contributions"
	boltOpenRetries = 5
)

var (
	boltTimeout        = time.Second
	defaultBoltOptions = &bbolt.Options{Timeout: boltTimeout, NoGrowSync: true}
)

// BoltStorage keeps payloads in a bbolt database, one key per location.
//
// bbolt holds an exclusive file lock while a database is open, so opening is
// retried with backoff in case another process is releasing it.
type BoltStorage struct {
	db     *bbolt.DB
	bucket []byte
	path   string
	closed *atomic.Bool
}

var _ Storage = (*BoltStorage)(nil)

// NewBoltStorage opens (or creates) the bbolt database at path
func NewBoltStorage(ctx context.Context, path string) (*BoltStorage, error) {
	if path == "" {
		return nil, fmt.Errorf("cache: %w: empty bolt path", gerrors.ErrInvalidLocation)
	}
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return nil, fmt.Errorf("cache: unable to create bolt directory: %w", err)
	}

	var db *bbolt.DB
	retrier := retry.NewRetrier(boltOpenRetries, 100*time.Millisecond, time.Second)
	if err := retrier.RunContext(ctx, func(_ context.Context) error {
		optionsCopy := *defaultBoltOptions
		var err error
		db, err = bbolt.Open(path, fileMode, &optionsCopy)
		return err
	}); err != nil {
		return nil, fmt.Errorf("cache: opening boltdb: %w", err)
	}

	bucket := []byte(boltBucketName)
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, e := tx.CreateBucketIfNotExists(bucket)
		return e
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cache: initializing boltdb bucket: %w", err)
	}

	return &BoltStorage{
		db:     db,
		bucket: bucket,
		path:   path,
		closed: atomic.NewBool(false),
	}, nil
}

// Path returns the database file
func (s *BoltStorage) Path() string {
	return s.path
}

// Read returns the payload stored under location
func (s *BoltStorage) Read(ctx context.Context, location string) ([]byte, error) {
	if err := s.ensureOpen(ctx); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(s.bucket)
		if bucket == nil {
			return fmt.Errorf("cache: bucket %q missing", s.bucket)
		}
		raw := bucket.Get([]byte(location))
		if raw == nil {
			return gerrors.ErrNotFound
		}
		// raw is only valid for the lifetime of the transaction
		data = slices.Clone(raw)
		return nil
	})
	if err != nil {
		return nil, closedErr(err)
	}
	return data, nil
}

// Write stores data under location
func (s *BoltStorage) Write(ctx context.Context, location string, data []byte) error {
	if err := s.ensureOpen(ctx); err != nil {
		return err
	}
	return closedErr(s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(s.bucket)
		if bucket == nil {
			return fmt.Errorf("cache: bucket %q missing", s.bucket)
		}
		return bucket.Put([]byte(location), data)
	}))
}

// Remove deletes the payload stored under location
func (s *BoltStorage) Remove(ctx context.Context, location string) error {
	if err := s.ensureOpen(ctx); err != nil {
		return err
	}
	return closedErr(s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(s.bucket)
		if bucket == nil {
			return fmt.Errorf("cache: bucket %q missing", s.bucket)
		}
		return bucket.Delete([]byte(location))
	}))
}

// Close releases the database and its file lock. The file is kept.
func (s *BoltStorage) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.db.Close()
}

func (s *BoltStorage) ensureOpen(ctx context.Context) error {
	if s.closed.Load() {
		return gerrors.ErrStorageClosed
	}
	return contextErr(ctx)
}

// closedErr reports a database closed by a concurrent Close as ErrStorageClosed
func closedErr(err error) error {
	if errors.Is(err, berrors.ErrDatabaseNotOpen) {
		return gerrors.ErrStorageClosed
	}
	return err
}
