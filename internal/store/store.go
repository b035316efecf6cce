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
	"sync"

	goset "github.com/deckarep/golang-set/v2"

	gerrors "github.com/tochemey/extreg/errors"
	"github.com/tochemey/extreg/extension"
	"github.com/tochemey/extreg/internal/validation"
)

const (
	kindPoint     = "extension point"
	kindExtension = "extension"
)

// pointEntry holds an extension point and the extensions linked to it, in admission order
type pointEntry struct {
	point      *extension.Point
	extensions []*extension.Extension
}

// bucket indexes the records of a namespace
type bucket struct {
	points     []*extension.Point
	extensions []*extension.Extension
}

func (b *bucket) empty() bool {
	return len(b.points) == 0 && len(b.extensions) == 0
}

// Store is the indexed contribution model: namespaces, extension points,
// extensions and configuration elements, plus the orphan set of extensions
// whose extension point is not registered yet.
//
// Store has a single writer and many readers. Every mutation runs under the
// write lock for the whole contribution, so readers observe either the state
// before or after a contribution, never a partial merge. Slices returned by
// queries are copies.
type Store struct {
	mu sync.RWMutex

	points     map[string]*pointEntry
	extensions map[string]*extension.Extension
	orphans    map[string][]*extension.Extension
	namespaces map[string]*bucket
	live       map[*extension.Extension]struct{}

	// contributions in admission order and per contributor
	contributions []*extension.Contribution
	contributors  map[string][]*extension.Contribution
}

// New creates an empty Store
func New() *Store {
	s := &Store{}
	s.reset()
	return s
}

// Add admits a contribution. It returns the deltas produced by the admission.
// A malformed contribution yields an error wrapping errors.ErrInvalidContribution and a
// unique id collision yields a *errors.ConflictError. In both cases the store is left untouched.
func (s *Store) Add(contribution *extension.Contribution) ([]*extension.Delta, error) {
	if contribution == nil {
		return nil, gerrors.NewErrInvalidContribution("", validation.NewContributionValidator(nil).Validate())
	}

	canonical := contribution.Clone()
	canonical.Normalize()

	if err := validation.NewContributionValidator(canonical).Validate(); err != nil {
		return nil, gerrors.NewErrInvalidContribution(canonical.Contributor.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkConflicts(canonical); err != nil {
		return nil, err
	}

	var deltas []*extension.Delta
	for _, point := range canonical.Points {
		deltas = append(deltas, s.addPoint(point)...)
	}

	for _, ext := range canonical.Extensions {
		if delta := s.addExtension(ext); delta != nil {
			deltas = append(deltas, delta)
		}
	}

	id := canonical.Contributor.ID
	s.contributions = append(s.contributions, canonical)
	s.contributors[id] = append(s.contributors[id], canonical)
	return deltas, nil
}

// Remove detaches every extension point and extension owned by the given contributor.
// It returns the produced deltas and false when the contributor owns nothing.
func (s *Store) Remove(contributorID string) ([]*extension.Delta, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owned, ok := s.contributors[contributorID]
	if !ok {
		return nil, false
	}

	var deltas []*extension.Delta
	for _, contribution := range owned {
		for _, ext := range contribution.Extensions {
			if delta := s.removeExtension(ext); delta != nil {
				deltas = append(deltas, delta)
			}
		}
	}

	for _, contribution := range owned {
		for _, point := range contribution.Points {
			deltas = append(deltas, s.removePoint(point)...)
		}
	}

	delete(s.contributors, contributorID)
	s.contributions = slices.DeleteFunc(s.contributions, func(c *extension.Contribution) bool {
		return c.Contributor.ID == contributorID
	})
	return deltas, true
}

// Reset discards every record
func (s *Store) Reset() {
	s.mu.Lock()
	s.reset()
	s.mu.Unlock()
}

// HasPersisted returns true when the contributor owns at least one persisted contribution
func (s *Store) HasPersisted(contributorID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, contribution := range s.contributors[contributorID] {
		if contribution.Persist {
			return true
		}
	}
	return false
}

// Contributions returns the admitted contributions in admission order.
// When persistOnly is true only the contributions marked for persistence are returned.
func (s *Store) Contributions(persistOnly bool) []*extension.Contribution {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*extension.Contribution, 0, len(s.contributions))
	for _, contribution := range s.contributions {
		if persistOnly && !contribution.Persist {
			continue
		}
		out = append(out, contribution)
	}
	return out
}

// Contributors returns the ids of the contributors currently owning records
func (s *Store) Contributors() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.contributors)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

func (s *Store) reset() {
	s.points = make(map[string]*pointEntry)
	s.extensions = make(map[string]*extension.Extension)
	s.orphans = make(map[string][]*extension.Extension)
	s.namespaces = make(map[string]*bucket)
	s.live = make(map[*extension.Extension]struct{})
	s.contributions = nil
	s.contributors = make(map[string][]*extension.Contribution)
}

// checkConflicts verifies every unique id of the contribution against the store and
// against the contribution itself. The first registrant always wins.
func (s *Store) checkConflicts(contribution *extension.Contribution) error {
	offending := contribution.Contributor.ID

	seen := goset.NewThreadUnsafeSet[string]()
	for _, point := range contribution.Points {
		id := point.UniqueID()
		if existing, ok := s.points[id]; ok {
			return gerrors.NewConflictError(kindPoint, id, existing.point.Contributor, offending)
		}
		if !seen.Add(id) {
			return gerrors.NewConflictError(kindPoint, id, offending, offending)
		}
	}

	seen.Clear()
	for _, ext := range contribution.Extensions {
		if ext.IsAnonymous() {
			continue
		}
		id := ext.UniqueID()
		if existing, ok := s.extensions[id]; ok {
			return gerrors.NewConflictError(kindExtension, id, existing.Contributor, offending)
		}
		if !seen.Add(id) {
			return gerrors.NewConflictError(kindExtension, id, offending, offending)
		}
	}
	return nil
}

// addPoint registers the point and adopts the orphans targeting it
func (s *Store) addPoint(point *extension.Point) []*extension.Delta {
	id := point.UniqueID()
	entry := &pointEntry{point: point}
	s.points[id] = entry
	s.bucket(point.Namespace).points = append(s.bucket(point.Namespace).points, point)

	orphans := s.orphans[id]
	delete(s.orphans, id)

	deltas := make([]*extension.Delta, 0, len(orphans))
	for _, orphan := range orphans {
		s.link(entry, orphan)
		deltas = append(deltas, extension.NewDelta(extension.Added, point, orphan))
	}
	return deltas
}

// addExtension links the extension to its point, or parks it in the orphan set
func (s *Store) addExtension(ext *extension.Extension) *extension.Delta {
	s.live[ext] = struct{}{}
	if !ext.IsAnonymous() {
		s.extensions[ext.UniqueID()] = ext
	}

	entry, ok := s.points[ext.PointID]
	if !ok {
		s.orphans[ext.PointID] = append(s.orphans[ext.PointID], ext)
		return nil
	}

	s.link(entry, ext)
	return extension.NewDelta(extension.Added, entry.point, ext)
}

// removeExtension forgets the extension. A delta is returned only when it was linked.
func (s *Store) removeExtension(ext *extension.Extension) *extension.Delta {
	delete(s.live, ext)
	if !ext.IsAnonymous() {
		delete(s.extensions, ext.UniqueID())
	}

	if entry, ok := s.points[ext.PointID]; ok && slices.Contains(entry.extensions, ext) {
		s.unlink(entry, ext)
		return extension.NewDelta(extension.Removed, entry.point, ext)
	}

	orphans := slices.DeleteFunc(slices.Clone(s.orphans[ext.PointID]), func(o *extension.Extension) bool {
		return o == ext
	})
	if len(orphans) == 0 {
		delete(s.orphans, ext.PointID)
	} else {
		s.orphans[ext.PointID] = orphans
	}
	return nil
}

// removePoint forgets the point. Extensions of other contributors still linked to it
// are reported as removed and go back to the orphan set.
func (s *Store) removePoint(point *extension.Point) []*extension.Delta {
	id := point.UniqueID()
	entry, ok := s.points[id]
	if !ok {
		return nil
	}

	deltas := make([]*extension.Delta, 0, len(entry.extensions))
	for _, ext := range slices.Clone(entry.extensions) {
		s.unlink(entry, ext)
		s.orphans[id] = append(s.orphans[id], ext)
		deltas = append(deltas, extension.NewDelta(extension.Removed, point, ext))
	}

	delete(s.points, id)
	b := s.bucket(point.Namespace)
	b.points = slices.DeleteFunc(slices.Clone(b.points), func(p *extension.Point) bool { return p == point })
	s.pruneBucket(point.Namespace)
	return deltas
}

// link and unlink use copy-on-write so that slices captured before the mutation stay intact
func (s *Store) link(entry *pointEntry, ext *extension.Extension) {
	entry.extensions = append(slices.Clip(entry.extensions), ext)
	b := s.bucket(ext.Namespace)
	b.extensions = append(slices.Clip(b.extensions), ext)
}

func (s *Store) unlink(entry *pointEntry, ext *extension.Extension) {
	entry.extensions = slices.DeleteFunc(slices.Clone(entry.extensions), func(e *extension.Extension) bool { return e == ext })
	b := s.bucket(ext.Namespace)
	b.extensions = slices.DeleteFunc(slices.Clone(b.extensions), func(e *extension.Extension) bool { return e == ext })
	s.pruneBucket(ext.Namespace)
}

func (s *Store) bucket(namespace string) *bucket {
	b, ok := s.namespaces[namespace]
	if !ok {
		b = new(bucket)
		s.namespaces[namespace] = b
	}
	return b
}

func (s *Store) pruneBucket(namespace string) {
	if b, ok := s.namespaces[namespace]; ok && b.empty() {
		delete(s.namespaces, namespace)
	}
}
