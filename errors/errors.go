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

package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned when the supplied token is not allowed to mutate or stop the registry.
	ErrUnauthorized = errors.New("unauthorized mutation")

	// ErrRegistryStopped is returned when a mutation is attempted on a registry that has been stopped.
	ErrRegistryStopped = errors.New("registry is stopped")

	// ErrInvalidContribution is returned when a contribution carries malformed records.
	ErrInvalidContribution = errors.New("invalid contribution")

	// ErrDuplicateID indicates that an extension point or an extension unique id is already taken.
	ErrDuplicateID = errors.New("duplicate unique id")

	// ErrCacheMiss indicates that the persistence cache holds no usable state.
	ErrCacheMiss = errors.New("cache miss")

	// ErrCorruptCache indicates that the persisted cache payload failed validation.
	ErrCorruptCache = errors.New("corrupt cache")

	// ErrNotFound is returned by a cache storage when the requested location does not exist.
	ErrNotFound = errors.New("location not found")

	// ErrInvalidLocation is returned by a cache storage when a location cannot be mapped safely.
	ErrInvalidLocation = errors.New("invalid cache location")

	// ErrStorageClosed is returned by a cache storage once it has been closed.
	ErrStorageClosed = errors.New("storage is closed")
)

// NewErrInvalidContribution wraps the validation failures of a contribution.
func NewErrInvalidContribution(contributor string, err error) error {
	return fmt.Errorf("contributor=(%s) %w: %w", contributor, ErrInvalidContribution, err)
}

// NewErrCorruptCache wraps the reason a cache payload was rejected.
func NewErrCorruptCache(err error) error {
	return errors.Join(ErrCorruptCache, err)
}

// ConflictError reports a unique id collision between two contributions.
// The existing registrant always wins; the offending contribution is rejected.
type ConflictError struct {
	// ID is the colliding unique id
	ID string
	// Kind is either "extension point" or "extension"
	Kind string
	// Existing is the contributor that already owns the id
	Existing string
	// Offending is the contributor whose contribution was rejected
	Offending string
}

// enforce compilation error
var _ error = (*ConflictError)(nil)

// NewConflictError creates an instance of ConflictError
func NewConflictError(kind, id, existing, offending string) *ConflictError {
	return &ConflictError{
		ID:        id,
		Kind:      kind,
		Existing:  existing,
		Offending: offending,
	}
}

// Error implements the standard error interface
func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s id=(%s) declared by contributor=(%s) is already owned by contributor=(%s): %s",
		e.Kind, e.ID, e.Offending, e.Existing, ErrDuplicateID.Error())
}

// Unwrap returns ErrDuplicateID so callers can use errors.Is
func (e *ConflictError) Unwrap() error {
	return ErrDuplicateID
}

// PanicError wraps a panic recovered at a dispatch boundary
type PanicError struct {
	err error
}

// enforce compilation error
var _ error = (*PanicError)(nil)

// NewPanicError creates an instance of PanicError
func NewPanicError(err error) *PanicError {
	return &PanicError{err: err}
}

// Error implements the standard error interface
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.err)
}

func (e *PanicError) Unwrap() error {
	return e.err
}

// Recovered converts a recovered panic value into a PanicError
func Recovered(r any) *PanicError {
	if err, ok := r.(error); ok {
		return NewPanicError(err)
	}
	return NewPanicError(fmt.Errorf("%v", r))
}
