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
	"io/fs"
	"os"
	"path/filepath"

	gerrors "github.com/tochemey/extreg/errors"
)

const (
	dirMode  os.FileMode = 0o755
	fileMode os.FileMode = 0o600
)

// FileStorage stores each location as a file under a root directory.
// Writes go to a temporary file renamed over the target so that a reader
// never observes a partial payload.
type FileStorage struct {
	dir string
}

var _ Storage = (*FileStorage)(nil)

// NewFileStorage creates a FileStorage rooted at dir, creating the directory when needed
func NewFileStorage(dir string) (*FileStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("cache: %w: empty directory", gerrors.ErrInvalidLocation)
	}
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, fmt.Errorf("cache: unable to create directory %s: %w", dir, err)
	}
	return &FileStorage{dir: dir}, nil
}

// Dir returns the root directory
func (s *FileStorage) Dir() string {
	return s.dir
}

// Read returns the content of the file at location
func (s *FileStorage) Read(ctx context.Context, location string) ([]byte, error) {
	path, err := s.path(ctx, location)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, gerrors.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Write replaces the file at location with data
func (s *FileStorage) Write(ctx context.Context, location string, data []byte) error {
	path, err := s.path(ctx, location)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return err
	}

	file, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("cache: create temporary file: %w", err)
	}
	tmp := file.Name()

	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("cache: write %s: %w", location, err)
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("cache: sync %s: %w", location, err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("cache: close %s: %w", location, err)
	}
	if err := os.Chmod(tmp, fileMode); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("cache: rename %s: %w", location, err)
	}
	return nil
}

// Remove deletes the file at location. A missing file is not an error.
func (s *FileStorage) Remove(ctx context.Context, location string) error {
	path, err := s.path(ctx, location)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Close is a no-op: files are opened per operation
func (s *FileStorage) Close() error {
	return nil
}

// path resolves location under the root directory and refuses to escape it
func (s *FileStorage) path(ctx context.Context, location string) (string, error) {
	if err := contextErr(ctx); err != nil {
		return "", err
	}
	if !filepath.IsLocal(location) {
		return "", fmt.Errorf("cache: %w: %q", gerrors.ErrInvalidLocation, location)
	}
	return filepath.Join(s.dir, location), nil
}
