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
	"testing"

	"github.com/stretchr/testify/assert"

	gerrors "github.com/tochemey/extreg/errors"
)

type token struct {
	name string
}

func TestController(t *testing.T) {
	t.Run("With open registry", func(t *testing.T) {
		controller := New[token](nil, nil)
		assert.True(t, controller.IsOpen())
		assert.NoError(t, controller.CheckMutation(nil, true))
		assert.NoError(t, controller.CheckMutation(&token{name: "any"}, false))
		assert.NoError(t, controller.CheckStop(nil))
		assert.NoError(t, controller.CheckStop(&token{name: "any"}))
	})
	t.Run("With master token", func(t *testing.T) {
		master := &token{name: "master"}
		controller := New(master, nil)
		assert.False(t, controller.IsOpen())
		assert.NoError(t, controller.CheckMutation(master, true))
		assert.NoError(t, controller.CheckStop(master))
		assert.ErrorIs(t, controller.CheckMutation(nil, false), gerrors.ErrUnauthorized)
		assert.ErrorIs(t, controller.CheckStop(nil), gerrors.ErrUnauthorized)
	})
	t.Run("With identity comparison", func(t *testing.T) {
		master := &token{name: "master"}
		lookalike := &token{name: "master"}
		controller := New(master, nil)
		assert.ErrorIs(t, controller.CheckMutation(lookalike, true), gerrors.ErrUnauthorized)
		assert.ErrorIs(t, controller.CheckStop(lookalike), gerrors.ErrUnauthorized)
	})
	t.Run("With user token", func(t *testing.T) {
		master := &token{name: "master"}
		user := &token{name: "user"}
		controller := New(master, user)
		assert.NoError(t, controller.CheckMutation(user, false))
		assert.ErrorIs(t, controller.CheckMutation(user, true), gerrors.ErrUnauthorized)
		assert.ErrorIs(t, controller.CheckStop(user), gerrors.ErrUnauthorized)
		assert.NoError(t, controller.CheckMutation(master, false))
	})
}
