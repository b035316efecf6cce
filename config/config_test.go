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

package config

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/tochemey/extreg/cache"
	"github.com/tochemey/extreg/log"
)

func TestLoad(t *testing.T) {
	t.Run("With defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
		assert.Equal(t, log.InfoLevel, cfg.Level())
	})
	t.Run("With environment", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("EXTREG_CACHE_BACKEND", "bolt")
		t.Setenv("EXTREG_CACHE_DIR", dir)
		t.Setenv("EXTREG_CACHE_LOCATION", "state")
		t.Setenv("EXTREG_CACHE_COMPRESSION", "brotli")
		t.Setenv("EXTREG_CACHE_LOAD_TIMEOUT", "250ms")
		t.Setenv("EXTREG_LOG_LEVEL", "debug")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, BackendBolt, cfg.CacheBackend)
		assert.Equal(t, 250*time.Millisecond, cfg.CacheLoadTimeout)
		assert.Equal(t, log.DebugLevel, cfg.Level())
		assert.Len(t, cfg.CacheOptions(), 3)

		storage, err := cfg.Storage(context.Background())
		require.NoError(t, err)
		require.IsType(t, &cache.BoltStorage{}, storage)
		assert.Equal(t, filepath.Join(dir, boltFile), storage.(*cache.BoltStorage).Path())
		require.NoError(t, storage.Close())
	})
	t.Run("With invalid environment", func(t *testing.T) {
		t.Setenv("EXTREG_CACHE_LOAD_TIMEOUT", "soon")
		_, err := Load()
		require.Error(t, err)
	})
	t.Run("With invalid settings", func(t *testing.T) {
		t.Setenv("EXTREG_CACHE_BACKEND", "redis")
		t.Setenv("EXTREG_CACHE_COMPRESSION", "lz4")
		t.Setenv("EXTREG_LOG_LEVEL", "verbose")
		_, err := Load()
		require.Error(t, err)
		assert.Len(t, multierr.Errors(err), 3)
	})
}

func TestStorage(t *testing.T) {
	ctx := context.Background()
	cfg := Default()

	cfg.CacheBackend = BackendNone
	storage, err := cfg.Storage(ctx)
	require.NoError(t, err)
	assert.Nil(t, storage)

	cfg.CacheBackend = BackendMemory
	storage, err = cfg.Storage(ctx)
	require.NoError(t, err)
	assert.IsType(t, &cache.MemoryStorage{}, storage)

	cfg.CacheBackend = "FILE"
	cfg.CacheDir = t.TempDir()
	storage, err = cfg.Storage(ctx)
	require.NoError(t, err)
	require.IsType(t, &cache.FileStorage{}, storage)
	assert.Equal(t, cfg.CacheDir, storage.(*cache.FileStorage).Dir())

	cfg.CacheBackend = "unknown"
	_, err = cfg.Storage(ctx)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.CacheLocation = ""
	cfg.CacheLoadTimeout = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
}
