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

// Package config reads the registry settings from the environment.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/tochemey/extreg/cache"
	"github.com/tochemey/extreg/internal/validation"
	"github.com/tochemey/extreg/log"
)

// Prefix is the prefix of every environment variable read by Load
const Prefix = "extreg"

// Cache backends
const (
	BackendNone   = "none"
	BackendFile   = "file"
	BackendBolt   = "bolt"
	BackendMemory = "memory"
)

const boltFile = "registry.db"

var backends = []string{BackendNone, BackendFile, BackendBolt, BackendMemory}

// Config holds the registry settings
type Config struct {
	// CacheBackend selects the cache storage: none, file, bolt or memory
	CacheBackend string `envconfig:"CACHE_BACKEND" default:"file"`
	// CacheDir is the directory of the file and bolt backends.
	// It defaults to extreg under the user cache directory.
	CacheDir string `envconfig:"CACHE_DIR"`
	// CacheLocation is the name of the payload inside the storage
	CacheLocation string `envconfig:"CACHE_LOCATION" default:"registry.cache"`
	// CacheCompression is either zstd or brotli
	CacheCompression string `envconfig:"CACHE_COMPRESSION" default:"zstd"`
	// CacheLoadTimeout bounds the cache load at start
	CacheLoadTimeout time.Duration `envconfig:"CACHE_LOAD_TIMEOUT" default:"5s"`
	// LogLevel is the minimum level logged
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads the configuration from the EXTREG_ environment variables and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		CacheBackend:     BackendFile,
		CacheLocation:    cache.DefaultLocation,
		CacheCompression: cache.Zstd.String(),
		CacheLoadTimeout: cache.DefaultLoadTimeout,
		LogLevel:         log.InfoLevel.String(),
	}
}

// Validate checks the settings
func (c *Config) Validate() error {
	_, compressionErr := cache.ParseCompression(c.CacheCompression)
	return validation.New(validation.AllErrors()).
		AddAssertion(slices.Contains(backends, c.backend()),
			fmt.Sprintf("cache backend %q is not one of %s", c.CacheBackend, strings.Join(backends, ", "))).
		AddAssertion(c.CacheLocation != "", "the cache location is required").
		AddAssertion(compressionErr == nil, fmt.Sprintf("cache compression %q is not supported", c.CacheCompression)).
		AddAssertion(c.CacheLoadTimeout > 0, "the cache load timeout must be positive").
		AddAssertion(c.Level() != log.InvalidLevel, fmt.Sprintf("log level %q is not supported", c.LogLevel)).
		Validate()
}

// Level returns the log level
func (c *Config) Level() log.Level {
	return log.ParseLevel(c.LogLevel)
}

// Dir returns the cache directory
func (c *Config) Dir() (string, error) {
	if c.CacheDir != "" {
		return c.CacheDir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("cache directory: %w", err)
	}
	return filepath.Join(base, Prefix), nil
}

// Storage opens the configured cache storage. It returns nil for the none backend.
func (c *Config) Storage(ctx context.Context) (cache.Storage, error) {
	switch c.backend() {
	case BackendNone:
		return nil, nil
	case BackendMemory:
		return cache.NewMemoryStorage(), nil
	case BackendFile:
		dir, err := c.Dir()
		if err != nil {
			return nil, err
		}
		return cache.NewFileStorage(dir)
	case BackendBolt:
		dir, err := c.Dir()
		if err != nil {
			return nil, err
		}
		return cache.NewBoltStorage(ctx, filepath.Join(dir, boltFile))
	default:
		return nil, fmt.Errorf("unknown cache backend %q", c.CacheBackend)
	}
}

// CacheOptions returns the cache options matching the settings
func (c *Config) CacheOptions() []cache.Option {
	compression, err := cache.ParseCompression(c.CacheCompression)
	if err != nil {
		compression = cache.Zstd
	}
	return []cache.Option{
		cache.WithLocation(c.CacheLocation),
		cache.WithCompression(compression),
		cache.WithLoadTimeout(c.CacheLoadTimeout),
	}
}

func (c *Config) backend() string {
	return strings.ToLower(strings.TrimSpace(c.CacheBackend))
}
