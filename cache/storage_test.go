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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/extreg/errors"
)

func TestStorage(t *testing.T) {
	ctx := context.Background()
	storages := map[string]func(t *testing.T) Storage{
		"memory": func(*testing.T) Storage {
			return NewMemoryStorage()
		},
		"file": func(t *testing.T) Storage {
			storage, err := NewFileStorage(t.TempDir())
			require.NoError(t, err)
			return storage
		},
		"bolt": func(t *testing.T) Storage {
			storage, err := NewBoltStorage(ctx, filepath.Join(t.TempDir(), "cache.db"))
			require.NoError(t, err)
			return storage
		},
	}

	for name, newStorage := range storages {
		t.Run(name, func(t *testing.T) {
			storage := newStorage(t)

			_, err := storage.Read(ctx, "missing")
			require.ErrorIs(t, err, gerrors.ErrNotFound)

			require.NoError(t, storage.Write(ctx, "state", []byte("first")))
			require.NoError(t, storage.Write(ctx, "state", []byte("second")))
			data, err := storage.Read(ctx, "state")
			require.NoError(t, err)
			assert.Equal(t, []byte("second"), data)

			require.NoError(t, storage.Remove(ctx, "state"))
			require.NoError(t, storage.Remove(ctx, "state"))
			_, err = storage.Read(ctx, "state")
			require.ErrorIs(t, err, gerrors.ErrNotFound)

			canceled, cancel := context.WithCancel(ctx)
			cancel()
			require.ErrorIs(t, storage.Write(canceled, "state", []byte("x")), context.Canceled)

			require.NoError(t, storage.Close())
			require.NoError(t, storage.Close())
		})
	}
}

func TestMemoryStorage(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	payload := []byte("payload")
	require.NoError(t, storage.Write(ctx, "state", payload))
	payload[0] = 'P'

	data, err := storage.Read(ctx, "state")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)

	require.NoError(t, storage.Close())
	_, err = storage.Read(ctx, "state")
	require.ErrorIs(t, err, gerrors.ErrStorageClosed)
	require.ErrorIs(t, storage.Write(ctx, "state", nil), gerrors.ErrStorageClosed)

	storage.Reopen()
	data, err = storage.Read(ctx, "state")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)
}

func TestFileStorage(t *testing.T) {
	ctx := context.Background()
	t.Run("With invalid location", func(t *testing.T) {
		storage, err := NewFileStorage(t.TempDir())
		require.NoError(t, err)
		for _, location := range []string{"../escape", "/etc/passwd", ""} {
			require.ErrorIs(t, storage.Write(ctx, location, []byte("x")), gerrors.ErrInvalidLocation)
			_, err := storage.Read(ctx, location)
			require.ErrorIs(t, err, gerrors.ErrInvalidLocation)
		}
	})
	t.Run("With nested location", func(t *testing.T) {
		dir := t.TempDir()
		storage, err := NewFileStorage(dir)
		require.NoError(t, err)
		require.NoError(t, storage.Write(ctx, filepath.Join("nested", "state"), []byte("x")))
		assert.FileExists(t, filepath.Join(dir, "nested", "state"))

		matches, err := filepath.Glob(filepath.Join(dir, "nested", "*.tmp"))
		require.NoError(t, err)
		assert.Empty(t, matches)
	})
	t.Run("With empty directory", func(t *testing.T) {
		_, err := NewFileStorage("")
		require.ErrorIs(t, err, gerrors.ErrInvalidLocation)
	})
}

func TestBoltStorage(t *testing.T) {
	ctx := context.Background()
	t.Run("With closed storage", func(t *testing.T) {
		storage, err := NewBoltStorage(ctx, filepath.Join(t.TempDir(), "cache.db"))
		require.NoError(t, err)
		require.NoError(t, storage.Close())

		_, err = storage.Read(ctx, "state")
		require.ErrorIs(t, err, gerrors.ErrStorageClosed)
		require.ErrorIs(t, storage.Remove(ctx, "state"), gerrors.ErrStorageClosed)
		assert.FileExists(t, storage.Path())
	})
	t.Run("With database closed behind the flag", func(t *testing.T) {
		storage, err := NewBoltStorage(ctx, filepath.Join(t.TempDir(), "cache.db"))
		require.NoError(t, err)
		// a concurrent Close may release the database after the flag was checked
		require.NoError(t, storage.db.Close())

		_, err = storage.Read(ctx, "state")
		require.ErrorIs(t, err, gerrors.ErrStorageClosed)
		require.ErrorIs(t, storage.Write(ctx, "state", []byte("payload")), gerrors.ErrStorageClosed)
		require.ErrorIs(t, storage.Remove(ctx, "state"), gerrors.ErrStorageClosed)
		require.NoError(t, storage.Close())
	})
	t.Run("With empty path", func(t *testing.T) {
		_, err := NewBoltStorage(ctx, "")
		require.ErrorIs(t, err, gerrors.ErrInvalidLocation)
	})
}
