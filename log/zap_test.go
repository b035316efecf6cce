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

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZap(t *testing.T) {
	t.Run("With unknown level falls back to debug", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(Level(42), buffer)
		require.Equal(t, DebugLevel, logger.LogLevel())

		logger.Debug("test debug")
		entry := decode(t, buffer)
		assert.Equal(t, "test debug", entry["msg"])
		assert.Equal(t, "debug", entry["level"])
	})
	t.Run("With level filtering", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(WarningLevel, buffer)
		assert.False(t, logger.Enabled(InfoLevel))
		assert.True(t, logger.Enabled(ErrorLevel))

		logger.Infof("hidden %d", 1)
		assert.Zero(t, buffer.Len())

		logger.Warnf("visible %d", 2)
		entry := decode(t, buffer)
		assert.Equal(t, "visible 2", entry["msg"])
		assert.Equal(t, "warn", entry["level"])
	})
	t.Run("With structured fields", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.With("component", "registry", "contributions", 3, "err", errors.New("boom")).Error("stopped")

		entry := decode(t, buffer)
		assert.Equal(t, "registry", entry["component"])
		assert.EqualValues(t, 3, entry["contributions"])
		assert.Equal(t, "boom", entry["err"])
	})
	t.Run("With empty or invalid fields returns same logger", func(t *testing.T) {
		logger := NewZap(InfoLevel, new(bytes.Buffer))
		assert.Same(t, logger, logger.With())
		assert.Same(t, logger, logger.With(1, "ignored"))
	})
	t.Run("With orphan value", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.With("a", 1, "orphan").Info("msg")
		entry := decode(t, buffer)
		assert.Contains(t, entry, "a")
		assert.Contains(t, entry, "_")
	})
	t.Run("With buffered file output", func(t *testing.T) {
		file, err := os.Create(filepath.Join(t.TempDir(), "registry.log"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = file.Close() })

		logger := NewZap(InfoLevel, file)
		logger.Info("buffered")
		require.NoError(t, logger.Flush())

		content, err := os.ReadFile(file.Name())
		require.NoError(t, err)
		assert.Contains(t, string(content), "buffered")
		assert.Equal(t, []any{file}, toAny(logger.LogOutput()))
	})
}

func TestLevel(t *testing.T) {
	assert.Equal(t, "info", InfoLevel.String())
	assert.Equal(t, "invalid", Level(-1).String())
	assert.Equal(t, WarningLevel, ParseLevel("WARNING"))
	assert.Equal(t, WarningLevel, ParseLevel("warn"))
	assert.Equal(t, DebugLevel, ParseLevel(" debug "))
	assert.Equal(t, InvalidLevel, ParseLevel("verbose"))
}

func TestDiscardLogger(t *testing.T) {
	logger := DiscardLogger
	logger.Info("x")
	logger.Errorf("%s", "y")
	assert.Equal(t, DiscardLogger, logger.With("k", "v"))
	assert.False(t, logger.Enabled(ErrorLevel))
	assert.Equal(t, InfoLevel, logger.LogLevel())
	assert.NoError(t, logger.Flush())
	assert.Len(t, logger.LogOutput(), 1)
}

func decode(t *testing.T, buffer *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &entry))
	return entry
}

func toAny[T any](values []T) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}
