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

package store

import (
	"slices"
	"strings"

	"github.com/tochemey/extreg/extension"
)

// Point returns the extension point with the given unique id
func (s *Store) Point(id string) (*extension.Point, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.points[id]
	if !ok {
		return nil, false
	}
	return entry.point, true
}

// Points returns every extension point, ordered by unique id
func (s *Store) Points() []*extension.Point {
	s.mu.RLock()
	out := make([]*extension.Point, 0, len(s.points))
	for _, entry := range s.points {
		out = append(out, entry.point)
	}
	s.mu.RUnlock()
	slices.SortFunc(out, func(a, b *extension.Point) int {
		return strings.Compare(a.UniqueID(), b.UniqueID())
	})
	return out
}

// PointsIn returns the extension points of a namespace in admission order
func (s *Store) PointsIn(namespace string) []*extension.Point {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.namespaces[namespace]
	if !ok {
		return []*extension.Point{}
	}
	return slices.Clone(b.points)
}

// Extension returns the named extension with the given unique id, linked or orphan
func (s *Store) Extension(id string) (*extension.Extension, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ext, ok := s.extensions[id]
	return ext, ok
}

// ExtensionOf returns the extension extID linked to the extension point pointID
func (s *Store) ExtensionOf(pointID, extID string) (*extension.Extension, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.points[pointID]
	if !ok {
		return nil, false
	}
	for _, ext := range entry.extensions {
		if ext.UniqueID() == extID {
			return ext, true
		}
	}
	return nil, false
}

// ExtensionsFor returns the extensions linked to an extension point in admission order
func (s *Store) ExtensionsFor(pointID string) []*extension.Extension {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.points[pointID]
	if !ok {
		return []*extension.Extension{}
	}
	return slices.Clone(entry.extensions)
}

// ExtensionsIn returns the linked extensions declared in a namespace.
// Orphans are not reachable until their extension point appears.
func (s *Store) ExtensionsIn(namespace string) []*extension.Extension {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.namespaces[namespace]
	if !ok {
		return []*extension.Extension{}
	}
	return slices.Clone(b.extensions)
}

// ElementsFor returns the configuration elements of every extension linked to an extension point
func (s *Store) ElementsFor(pointID string) []*extension.Element {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.points[pointID]
	if !ok {
		return []*extension.Element{}
	}
	out := make([]*extension.Element, 0, len(entry.extensions))
	for _, ext := range entry.extensions {
		out = append(out, ext.Elements...)
	}
	return out
}

// ElementsForExtension returns the configuration elements of the extension extID linked to pointID
func (s *Store) ElementsForExtension(pointID, extID string) []*extension.Element {
	ext, ok := s.ExtensionOf(pointID, extID)
	if !ok {
		return []*extension.Element{}
	}
	return slices.Clone(ext.Elements)
}

// Namespaces returns the sorted namespaces holding at least one extension point or linked extension
func (s *Store) Namespaces() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.namespaces)
}

// Orphans returns the extensions waiting for their extension point
func (s *Store) Orphans() []*extension.Extension {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*extension.Extension, 0)
	for _, pointID := range sortedKeys(s.orphans) {
		out = append(out, s.orphans[pointID]...)
	}
	return out
}

// IsLinked returns true when the extension is registered and attached to its
// extension point. Orphans are not linked.
func (s *Store) IsLinked(ext *extension.Extension) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.live[ext]; !ok {
		return false
	}
	entry, ok := s.points[ext.PointID]
	return ok && slices.Contains(entry.extensions, ext)
}

// Contains returns true when the extension is registered, linked or orphan
func (s *Store) Contains(ext *extension.Extension) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.live[ext]
	return ok
}
