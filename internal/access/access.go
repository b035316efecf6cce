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

package access

import (
	gerrors "github.com/tochemey/extreg/errors"
)

// Controller guards registry mutations with capability tokens.
//
// Tokens are compared by identity. A nil master token makes the registry
// fully open. The user token, when set, only allows dynamic (non-persisted)
// contributions.
type Controller[T any] struct {
	master *T
	user   *T
}

// New creates an instance of Controller
func New[T any](master, user *T) *Controller[T] {
	return &Controller[T]{
		master: master,
		user:   user,
	}
}

// IsOpen returns true when no master token has been configured
func (c *Controller[T]) IsOpen() bool {
	return c.master == nil
}

// CheckMutation validates the token supplied for a mutation. persist tells whether
// the mutation touches contributions that survive into the cache.
func (c *Controller[T]) CheckMutation(token *T, persist bool) error {
	switch {
	case c.master == nil:
		return nil
	case token == c.master:
		return nil
	case !persist && c.user != nil && token == c.user:
		return nil
	default:
		return gerrors.ErrUnauthorized
	}
}

// CheckStop validates the token supplied to stop the registry
func (c *Controller[T]) CheckStop(token *T) error {
	if c.master == nil || token == c.master {
		return nil
	}
	return gerrors.ErrUnauthorized
}
