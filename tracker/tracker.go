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

// Package tracker associates caller objects with the lifetime of registry
// extensions. When an extension leaves the registry the objects registered
// against it are released and handed to the interested handlers.
package tracker

import (
	"slices"
	"sync"

	gerrors "github.com/tochemey/extreg/errors"
	"github.com/tochemey/extreg/extension"
	"github.com/tochemey/extreg/log"
	"github.com/tochemey/extreg/registry"
)

type handlerEntry[T any] struct {
	handler Handler[T]
	filter  Filter
}

// Tracker keeps, per extension, the objects callers registered against it.
//
// The tracker listens to its registry. On removal of an extension it collects
// the associated objects under its lock, releases the lock, then calls
// RemoveExtension on every matching handler. After Close every method is a
// silent no-op.
type Tracker[T any] struct {
	registry *registry.Registry
	logger   log.Logger

	mu         sync.Mutex
	handlers   []*handlerEntry[T]
	references map[*extension.Extension]*ReferenceSet[T]
	closed     bool
}

// enforce compilation error
var _ registry.Listener = (*Tracker[any])(nil)

// New creates a Tracker subscribed to reg
func New[T any](reg *registry.Registry, opts ...Option) *Tracker[T] {
	cfg := &config{logger: log.DiscardLogger}
	for _, opt := range opts {
		opt.Apply(cfg)
	}

	t := &Tracker[T]{
		registry:   reg,
		logger:     cfg.logger.With("component", "tracker"),
		references: make(map[*extension.Extension]*ReferenceSet[T]),
	}
	reg.AddListener(t, cfg.namespace)
	return t
}

// RegisterHandler adds a handler called for the extension points matching filter.
// A nil filter matches every extension point. Registering a handler again
// replaces its filter.
func (t *Tracker[T]) RegisterHandler(handler Handler[T], filter Filter) {
	if handler == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	entry := &handlerEntry[T]{handler: handler, filter: filter}
	if i := t.indexOfHandler(handler); i >= 0 {
		t.handlers = slices.Clone(t.handlers)
		t.handlers[i] = entry
		return
	}
	t.handlers = append(slices.Clip(t.handlers), entry)
}

// UnregisterHandler removes a handler
func (t *Tracker[T]) UnregisterHandler(handler Handler[T]) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if i := t.indexOfHandler(handler); i >= 0 {
		t.handlers = slices.Delete(slices.Clone(t.handlers), i, i+1)
	}
}

// RegisterObject associates obj with ext. It returns false when obj is nil, when
// the tracker is closed or when ext is not linked to its extension point.
// Orphan extensions are refused: their removal is never announced.
func (t *Tracker[T]) RegisterObject(ext *extension.Extension, obj *T, strength Strength) bool {
	if ext == nil || obj == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	// checked under the tracker lock so that a removal delivered concurrently
	// either precedes the check or finds the object
	if t.closed || !t.registry.IsLinked(ext) {
		return false
	}
	set, ok := t.references[ext]
	if !ok {
		set = NewReferenceSet[T]()
		t.references[ext] = set
	}
	set.Add(obj, strength)
	return true
}

// UnregisterObject removes the association between obj and ext
func (t *Tracker[T]) UnregisterObject(ext *extension.Extension, obj *T) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return false
	}
	set, ok := t.references[ext]
	if !ok {
		return false
	}
	removed := set.Remove(obj)
	if set.Len() == 0 {
		delete(t.references, ext)
	}
	return removed
}

// UnregisterObjects removes every object associated with ext and returns them
func (t *Tracker[T]) UnregisterObjects(ext *extension.Extension) []*T {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.evict(ext)
}

// Objects returns the live objects associated with ext
func (t *Tracker[T]) Objects(ext *extension.Extension) []*T {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return []*T{}
	}
	set, ok := t.references[ext]
	if !ok {
		return []*T{}
	}
	values := set.Values()
	if len(values) == 0 {
		delete(t.references, ext)
	}
	return values
}

// Trim releases every soft object to the garbage collector and forgets the
// extensions left without live objects. It returns the number of released objects.
func (t *Tracker[T]) Trim() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return 0
	}
	var released int
	for ext, set := range t.references {
		released += set.Trim()
		if set.Len() == 0 {
			delete(t.references, ext)
		}
	}
	return released
}

// Close unsubscribes the tracker from the registry and forgets every handler
// and object. Close is idempotent.
func (t *Tracker[T]) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	t.handlers = nil
	t.references = make(map[*extension.Extension]*ReferenceSet[T])
	t.mu.Unlock()

	t.registry.RemoveListener(t)
}

// RegistryChanged implements registry.Listener
func (t *Tracker[T]) RegistryChanged(event *registry.ChangeEvent) {
	for _, delta := range event.Deltas() {
		switch delta.Kind {
		case extension.Added:
			t.added(delta)
		case extension.Removed:
			t.removed(delta)
		}
	}
}

func (t *Tracker[T]) added(delta *extension.Delta) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	handlers := t.handlers
	t.mu.Unlock()

	for _, entry := range handlers {
		if !matches(entry.filter, delta.Point) {
			continue
		}
		t.invoke(func() { entry.handler.AddExtension(t, delta.Extension) })
	}
}

func (t *Tracker[T]) removed(delta *extension.Delta) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	objects := t.evict(delta.Extension)
	handlers := t.handlers
	t.mu.Unlock()

	for _, entry := range handlers {
		if !matches(entry.filter, delta.Point) {
			continue
		}
		t.invoke(func() { entry.handler.RemoveExtension(delta.Extension, slices.Clone(objects)) })
	}
}

// evict must be called with the lock held
func (t *Tracker[T]) evict(ext *extension.Extension) []*T {
	if t.closed {
		return []*T{}
	}
	set, ok := t.references[ext]
	if !ok {
		return []*T{}
	}
	delete(t.references, ext)
	return set.Clear()
}

// invoke runs a handler callback and recovers its panic
func (t *Tracker[T]) invoke(callback func()) {
	defer func() {
		if r := recover(); r != nil {
			t.logger.Errorf("tracker handler failed: %v", gerrors.Recovered(r))
		}
	}()
	callback()
}

func (t *Tracker[T]) indexOfHandler(handler Handler[T]) int {
	return slices.IndexFunc(t.handlers, func(entry *handlerEntry[T]) bool {
		return entry.handler == handler
	})
}
