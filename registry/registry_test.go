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
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/atomic"
	"go.uber.org/goleak"

	"github.com/tochemey/extreg/cache"
	gerrors "github.com/tochemey/extreg/errors"
	"github.com/tochemey/extreg/extension"
	"github.com/tochemey/extreg/log"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordingListener struct {
	mu     sync.Mutex
	events []*ChangeEvent
}

func (l *recordingListener) RegistryChanged(event *ChangeEvent) {
	l.mu.Lock()
	l.events = append(l.events, event)
	l.mu.Unlock()
}

func (l *recordingListener) deltas() []*extension.Delta {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []*extension.Delta
	for _, event := range l.events {
		out = append(out, event.Deltas()...)
	}
	return out
}

type panickingListener struct {
	calls *atomic.Int32
}

func (l panickingListener) RegistryChanged(*ChangeEvent) {
	l.calls.Inc()
	panic("listener failure")
}

func points(contributor string, persist bool, names ...string) *extension.Contribution {
	contribution := &extension.Contribution{
		Contributor: extension.Contributor{ID: contributor},
		Persist:     persist,
		Timestamp:   time.Unix(1_700_000_000, 0),
	}
	for _, name := range names {
		contribution.Points = append(contribution.Points, &extension.Point{Name: name, Label: name})
	}
	return contribution
}

func extensions(contributor string, persist bool, pointID string, names ...string) *extension.Contribution {
	contribution := &extension.Contribution{
		Contributor: extension.Contributor{ID: contributor},
		Persist:     persist,
		Timestamp:   time.Unix(1_700_000_000, 0),
	}
	for _, name := range names {
		contribution.Extensions = append(contribution.Extensions, &extension.Extension{
			Name:    name,
			PointID: pointID,
			Elements: []*extension.Element{
				{
					Name:       "handler",
					Attributes: map[string]string{"class": name},
					Children:   []*extension.Element{{Name: "param", Value: name}},
				},
			},
		})
	}
	return contribution
}

func TestRegistry(t *testing.T) {
	t.Run("With token enforcement on stop", func(t *testing.T) {
		master, other := NewToken(), NewToken()
		registry := New(DefaultStrategy(), master, nil)

		require.ErrorIs(t, registry.Stop(other), gerrors.ErrUnauthorized)
		require.ErrorIs(t, registry.Stop(nil), gerrors.ErrUnauthorized)
		assert.True(t, registry.IsRunning())

		ok, err := registry.AddContribution(points("A", true, "point1"), master)
		require.NoError(t, err)
		assert.True(t, ok)

		require.NoError(t, registry.Stop(master))
		assert.False(t, registry.IsRunning())
		require.NoError(t, registry.Stop(master))
	})
	t.Run("With token enforcement on mutations", func(t *testing.T) {
		master, user := NewToken(), NewToken()
		registry := New(DefaultStrategy(), master, user)

		ok, err := registry.AddContribution(points("A", true, "point1"), user)
		require.ErrorIs(t, err, gerrors.ErrUnauthorized)
		assert.False(t, ok)
		_, exists := registry.ExtensionPoint("A.point1")
		assert.False(t, exists)

		ok, err = registry.AddContribution(points("A", true, "point1"), NewToken())
		require.ErrorIs(t, err, gerrors.ErrUnauthorized)
		assert.False(t, ok)

		ok, err = registry.AddContribution(points("A", true, "point1"), master)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = registry.AddContribution(extensions("B", false, "A.point1", "ext1"), user)
		require.NoError(t, err)
		assert.True(t, ok)

		// A owns persisted records: only the master token withdraws them
		ok, err = registry.RemoveContribution("A", user)
		require.ErrorIs(t, err, gerrors.ErrUnauthorized)
		assert.False(t, ok)

		ok, err = registry.RemoveContribution("B", user)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = registry.RemoveContribution("A", master)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = registry.RemoveContribution("A", master)
		require.NoError(t, err)
		assert.False(t, ok)

		require.ErrorIs(t, registry.Stop(user), gerrors.ErrUnauthorized)
		require.NoError(t, registry.Stop(master))
	})
	t.Run("With open registry", func(t *testing.T) {
		registry := New(nil, nil, nil)
		ok, err := registry.AddContribution(points("A", true, "point1"), nil)
		require.NoError(t, err)
		assert.True(t, ok)
		require.NoError(t, registry.Stop(nil))
	})
	t.Run("With stopped registry", func(t *testing.T) {
		master := NewToken()
		registry := New(DefaultStrategy(), master, nil)
		contribution := points("A", true, "point1")
		contribution.Extensions = extensions("A", true, "A.point1", "ext1").Extensions
		ok, err := registry.AddContribution(contribution, master)
		require.NoError(t, err)
		require.True(t, ok)
		ext, found := registry.Extension("A.point1", "A.ext1")
		require.True(t, found)

		require.NoError(t, registry.Stop(master))

		ok, err = registry.AddContribution(points("B", true, "point1"), master)
		require.ErrorIs(t, err, gerrors.ErrRegistryStopped)
		assert.False(t, ok)
		ok, err = registry.RemoveContribution("A", master)
		require.ErrorIs(t, err, gerrors.ErrRegistryStopped)
		assert.False(t, ok)

		_, found = registry.ExtensionPoint("A.point1")
		assert.False(t, found)
		_, found = registry.Extension("A.point1", "A.ext1")
		assert.False(t, found)
		_, found = registry.ExtensionByID("A.ext1")
		assert.False(t, found)
		assert.Empty(t, registry.ExtensionPoints())
		assert.Empty(t, registry.ExtensionPointsIn("A"))
		assert.Empty(t, registry.Extensions("A"))
		assert.Empty(t, registry.ExtensionsFor("A.point1"))
		assert.Empty(t, registry.ConfigurationElementsFor("A.point1"))
		assert.Empty(t, registry.ConfigurationElementsForExtension("A.point1", "A.ext1"))
		assert.Empty(t, registry.Namespaces())
		assert.Empty(t, registry.Contributors())
		assert.False(t, registry.Contains(ext))

		// listener registration is a no-op
		registry.AddListener(new(recordingListener), "")
		registry.RemoveListener(new(recordingListener))
	})
	t.Run("With orphan linking", func(t *testing.T) {
		master := NewToken()
		registry := New(DefaultStrategy(), master, nil)

		ok, err := registry.AddContribution(extensions("A", false, "A.point1", "ext1"), master)
		require.NoError(t, err)
		require.True(t, ok)

		_, found := registry.ExtensionPoint("A.point1")
		assert.False(t, found)
		assert.Empty(t, registry.Extensions("A"))
		assert.Empty(t, registry.ExtensionsFor("A.point1"))

		point := points("A.provider", false, "point1")
		point.Points[0].Namespace = "A"
		ok, err = registry.AddContribution(point, master)
		require.NoError(t, err)
		require.True(t, ok)

		_, found = registry.ExtensionPoint("A.point1")
		require.True(t, found)
		linked := registry.ExtensionsFor("A.point1")
		require.Len(t, linked, 1)
		assert.Equal(t, "A.ext1", linked[0].UniqueID())
		assert.Len(t, registry.Extensions("A"), 1)
		assert.True(t, registry.Contains(linked[0]))

		require.NoError(t, registry.Stop(master))
	})
	t.Run("With duplicate rejection", func(t *testing.T) {
		master := NewToken()
		meter := noop.NewMeterProvider().Meter("test")
		registry := New(DefaultStrategy(), master, nil, WithMetrics(meter), WithLogger(log.DiscardLogger))

		first := points("A", true, "point1")
		first.Points[0].Label = "first"
		ok, err := registry.AddContribution(first, master)
		require.NoError(t, err)
		require.True(t, ok)

		second := points("B", true, "point1")
		second.Points[0].Namespace = "A"
		second.Points[0].Label = "second"
		ok, err = registry.AddContribution(second, master)
		require.NoError(t, err)
		assert.False(t, ok)

		point, found := registry.ExtensionPoint("A.point1")
		require.True(t, found)
		assert.Equal(t, "first", point.Label)
		assert.Equal(t, "A", point.Contributor)
		assert.False(t, registry.HasContributor("B"))

		// malformed records are rejected the same way
		ok, err = registry.AddContribution(&extension.Contribution{}, master)
		require.NoError(t, err)
		assert.False(t, ok)
		ok, err = registry.AddContribution(nil, master)
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, registry.Stop(master))
	})
	t.Run("With queries", func(t *testing.T) {
		master := NewToken()
		registry := New(DefaultStrategy(), master, nil)
		ok, err := registry.AddContribution(points("A", true, "point1", "point2"), master)
		require.NoError(t, err)
		require.True(t, ok)
		ok, err = registry.AddContribution(extensions("B", true, "A.point1", "ext1", "ext2"), master)
		require.NoError(t, err)
		require.True(t, ok)

		assert.Len(t, registry.ExtensionPoints(), 2)
		assert.Len(t, registry.ExtensionPointsIn("A"), 2)
		assert.Empty(t, registry.ExtensionPointsIn("B"))
		assert.Len(t, registry.Extensions("B"), 2)
		assert.Empty(t, registry.ExtensionsFor("A.point2"))
		assert.Equal(t, []string{"A", "B"}, registry.Namespaces())
		assert.Equal(t, []string{"A", "B"}, registry.Contributors())
		assert.True(t, registry.HasContributor("A"))

		elements := registry.ConfigurationElementsFor("A.point1")
		require.Len(t, elements, 2)
		assert.Equal(t, "ext1", elements[0].Attributes["class"])

		elements = registry.ConfigurationElementsForExtension("A.point1", "B.ext2")
		require.Len(t, elements, 1)
		assert.Equal(t, "ext2", elements[0].Children[0].Value)

		ext, found := registry.ExtensionByID("B.ext1")
		require.True(t, found)
		assert.Equal(t, "A.point1", ext.PointID)
		_, found = registry.Extension("A.point2", "B.ext1")
		assert.False(t, found)

		require.NoError(t, registry.Stop(master))
	})
	t.Run("With filtered notification", func(t *testing.T) {
		master := NewToken()
		registry := New(DefaultStrategy(), master, nil)
		onlyB, everything := new(recordingListener), new(recordingListener)
		registry.AddListener(onlyB, "B")
		registry.AddListener(everything, "")

		contribution := points("A", false, "point1")
		contribution.Extensions = extensions("A", false, "A.point1", "ext1", "ext2").Extensions
		ok, err := registry.AddContribution(contribution, master)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = registry.RemoveContribution("A", master)
		require.NoError(t, err)
		require.True(t, ok)

		// Stop delivers the pending batches
		require.NoError(t, registry.Stop(master))

		assert.Empty(t, onlyB.deltas())
		deltas := everything.deltas()
		require.Len(t, deltas, 4)
		assert.Equal(t, extension.Added, deltas[0].Kind)
		assert.Equal(t, extension.Added, deltas[1].Kind)
		assert.Equal(t, extension.Removed, deltas[2].Kind)
		assert.Equal(t, extension.Removed, deltas[3].Kind)
		for _, delta := range deltas {
			assert.Equal(t, "A.point1", delta.Point.UniqueID())
		}
	})
	t.Run("With listener removed", func(t *testing.T) {
		master := NewToken()
		registry := New(DefaultStrategy(), master, nil)
		listener := new(recordingListener)
		registry.AddListener(listener, "")
		registry.RemoveListener(listener)

		ok, err := registry.AddContribution(extensions("A", false, "A.point1", "ext1"), master)
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, registry.Stop(master))
		assert.Empty(t, listener.deltas())
	})
	t.Run("With failing listener", func(t *testing.T) {
		master := NewToken()
		registry := New(DefaultStrategy(), master, nil, WithMeterProvider(noop.NewMeterProvider()))
		failing := panickingListener{calls: atomic.NewInt32(0)}
		healthy := new(recordingListener)
		registry.AddListener(failing, "")
		registry.AddListener(healthy, "")

		contribution := points("A", false, "point1")
		contribution.Extensions = extensions("A", false, "A.point1", "ext1").Extensions
		for range 2 {
			ok, err := registry.AddContribution(contribution, master)
			require.NoError(t, err)
			if ok {
				_, err = registry.RemoveContribution("A", master)
				require.NoError(t, err)
			}
		}
		require.NoError(t, registry.Stop(master))

		assert.EqualValues(t, 4, failing.calls.Load())
		assert.Len(t, healthy.deltas(), 4)
	})
	t.Run("With cache round trip", func(t *testing.T) {
		dir := t.TempDir()
		storage, err := cache.NewFileStorage(dir)
		require.NoError(t, err)
		master := NewToken()

		registry := New(NewStrategy(storage, nil), master, nil, WithCacheOptions(cache.WithCompression(cache.Brotli)))
		ok, err := registry.AddContribution(points("A", true, "point1"), master)
		require.NoError(t, err)
		require.True(t, ok)
		ok, err = registry.AddContribution(extensions("B", true, "A.point1", "ext1", "ext2"), master)
		require.NoError(t, err)
		require.True(t, ok)
		ok, err = registry.AddContribution(extensions("C", false, "A.point1", "dynamic"), master)
		require.NoError(t, err)
		require.True(t, ok)

		point, _ := registry.ExtensionPoint("A.point1")
		exts := registry.Extensions("B")
		elements := registry.ConfigurationElementsFor("A.point1")
		require.Len(t, elements, 3)
		elements = elements[:2]

		require.NoError(t, registry.Stop(master))
		assert.FileExists(t, filepath.Join(dir, cache.DefaultLocation))

		restored := New(NewStrategy(storage, nil), master, nil)
		restoredPoint, found := restored.ExtensionPoint("A.point1")
		require.True(t, found)
		assert.Empty(t, cmp.Diff(point, restoredPoint))
		assert.Empty(t, cmp.Diff(exts, restored.Extensions("B")))
		assert.Empty(t, cmp.Diff(elements, restored.ConfigurationElementsFor("A.point1")))
		assert.False(t, restored.HasContributor("C"))
		require.NoError(t, restored.Stop(master))
	})
	t.Run("With stale cached contributions", func(t *testing.T) {
		storage, err := cache.NewFileStorage(t.TempDir())
		require.NoError(t, err)
		master := NewToken()

		registry := New(NewStrategy(storage, nil), master, nil)
		_, err = registry.AddContribution(points("A", true, "point1"), master)
		require.NoError(t, err)
		_, err = registry.AddContribution(points("B", true, "point1"), master)
		require.NoError(t, err)
		_, err = registry.AddContribution(points("C", true, "point1"), master)
		require.NoError(t, err)
		_, err = registry.AddContribution(points("D", true, "point1"), master)
		require.NoError(t, err)
		require.NoError(t, registry.Stop(master))

		// A is unchanged, B changed after caching, C predates the cached copy, D is unknown
		stamps := map[string]time.Time{
			"A": time.Unix(1_700_000_000, 0),
			"B": time.Unix(1_800_000_000, 0),
			"C": time.Unix(1_600_000_000, 0),
		}
		fresh := TimestampFreshness(func(contribution *extension.Contribution) (time.Time, bool) {
			stamp, ok := stamps[contribution.Contributor.ID]
			return stamp, ok
		})
		restored := New(NewStrategy(storage, fresh), master, nil, WithCacheReadOnly())
		assert.Equal(t, []string{"A", "C"}, restored.Contributors())
		require.NoError(t, restored.Stop(master))

		// read-only registries leave the payload untouched
		again := New(NewStrategy(storage, nil), master, nil)
		assert.Equal(t, []string{"A", "B", "C", "D"}, again.Contributors())
		require.NoError(t, again.Stop(master))
	})
	t.Run("With corrupt cache", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, cache.DefaultLocation), []byte("garbage"), 0o600))
		storage, err := cache.NewFileStorage(dir)
		require.NoError(t, err)
		master := NewToken()

		registry := New(NewStrategy(storage, nil), master, nil)
		assert.True(t, registry.IsRunning())
		assert.Empty(t, registry.Namespaces())
		ok, err := registry.AddContribution(points("A", true, "point1"), master)
		require.NoError(t, err)
		assert.True(t, ok)
		require.NoError(t, registry.Stop(master))

		payload, err := storage.Read(context.Background(), cache.DefaultLocation)
		require.NoError(t, err)
		assert.NotEqual(t, []byte("garbage"), payload)
	})
	t.Run("With concurrent mutations", func(t *testing.T) {
		master := NewToken()
		registry := New(DefaultStrategy(), master, nil)
		listener := new(recordingListener)
		registry.AddListener(listener, "")
		_, err := registry.AddContribution(points("A", true, "point1"), master)
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := range 16 {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				contributor := string(rune('a' + i))
				ok, err := registry.AddContribution(extensions(contributor, false, "A.point1", "ext"), master)
				assert.NoError(t, err)
				assert.True(t, ok)
			}(i)
		}
		wg.Wait()
		require.NoError(t, registry.Stop(master))
		assert.Len(t, listener.deltas(), 16)
	})
}

func TestChangeEvent(t *testing.T) {
	pointA := &extension.Point{Namespace: "A", Name: "point1"}
	pointB := &extension.Point{Namespace: "B", Name: "point1"}
	ext1 := &extension.Extension{Namespace: "C", Name: "ext1", PointID: "A.point1"}
	ext2 := &extension.Extension{Namespace: "C", Name: "ext2", PointID: "B.point1"}
	event := newChangeEvent([]*extension.Delta{
		extension.NewDelta(extension.Added, pointB, ext2),
		extension.NewDelta(extension.Removed, pointA, ext1),
	})

	assert.Len(t, event.Deltas(), 2)
	assert.Equal(t, []string{"A", "B"}, event.Namespaces())
	deltas := event.DeltasFor("A.point1")
	require.Len(t, deltas, 1)
	assert.Equal(t, extension.Removed, deltas[0].Kind)
	assert.Empty(t, event.DeltasFor("D.point1"))

	delta, ok := event.Delta("B.point1", "C.ext2")
	require.True(t, ok)
	assert.Same(t, ext2, delta.Extension)
	_, ok = event.Delta("B.point1", "C.ext1")
	assert.False(t, ok)
}

func TestToken(t *testing.T) {
	first, second := NewToken(), NewToken()
	assert.NotEqual(t, first.String(), second.String())
	assert.NotSame(t, first, second)
	var nilToken *Token
	assert.Equal(t, "<nil>", nilToken.String())
}
