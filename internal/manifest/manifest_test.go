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

package manifest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
contributor:
  id: org.sample.ui
  name: Sample UI
translations:
  menu.label: File
points:
  - name: menus
    label: Menus
extensions:
  - name: file
    label: "%menu.label"
    point: org.sample.ui.menus
    elements:
      - name: menu
        attributes:
          id: file
        children:
          - name: command
            value: Open
  - point: org.other.views
`

func TestParse(t *testing.T) {
	t.Run("With sample manifest", func(t *testing.T) {
		contribution, err := Parse([]byte(sample))
		require.NoError(t, err)

		assert.Equal(t, "org.sample.ui", contribution.Contributor.ID)
		assert.Equal(t, "Sample UI", contribution.Contributor.Name)
		assert.True(t, contribution.Persist)
		assert.Equal(t, "File", contribution.Translations["menu.label"])

		require.Len(t, contribution.Points, 1)
		assert.Equal(t, "menus", contribution.Points[0].Name)

		require.Len(t, contribution.Extensions, 2)
		file := contribution.Extensions[0]
		assert.Equal(t, "org.sample.ui.menus", file.PointID)
		require.Len(t, file.Elements, 1)
		assert.Equal(t, "file", file.Elements[0].Attributes["id"])
		require.Len(t, file.Elements[0].Children, 1)
		assert.Equal(t, "Open", file.Elements[0].Children[0].Value)
		assert.True(t, contribution.Extensions[1].IsAnonymous())
	})
	t.Run("With dynamic manifest", func(t *testing.T) {
		contribution, err := Parse([]byte("contributor: {id: dyn}\npersist: false\n"))
		require.NoError(t, err)
		assert.False(t, contribution.Persist)
	})
	t.Run("With missing contributor", func(t *testing.T) {
		_, err := Parse([]byte("points: [{name: menus}]\n"))
		require.Error(t, err)
	})
	t.Run("With invalid yaml", func(t *testing.T) {
		_, err := Parse([]byte("contributor: [\n"))
		require.Error(t, err)
	})
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ui.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))
	stamp := time.Unix(1_700_000_000, 0)
	require.NoError(t, os.Chtimes(path, stamp, stamp))

	contribution, err := ReadFile(path)
	require.NoError(t, err)
	assert.True(t, contribution.Timestamp.Equal(stamp))

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
