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

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/extreg/errors"
)

func TestDefault(t *testing.T) {
	t.Cleanup(func() {
		require.NoError(t, SetDefault(nil, nil))
	})

	assert.Nil(t, Default())

	firstToken := NewToken()
	first := New(DefaultStrategy(), firstToken, nil)
	require.NoError(t, SetDefault(first, nil))
	assert.Same(t, first, Default())

	// installing the same registry again is allowed
	require.NoError(t, SetDefault(first, nil))

	secondToken := NewToken()
	second := New(DefaultStrategy(), secondToken, nil)
	require.ErrorIs(t, SetDefault(second, secondToken), gerrors.ErrUnauthorized)
	assert.Same(t, first, Default())

	require.NoError(t, SetDefault(second, firstToken))
	assert.Same(t, second, Default())

	// a stopped default can be replaced freely
	require.NoError(t, second.Stop(secondToken))
	require.NoError(t, SetDefault(first, nil))
	assert.Same(t, first, Default())

	require.NoError(t, first.Stop(firstToken))
}
