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
	"slices"

	goset "github.com/deckarep/golang-set/v2"

	"github.com/tochemey/extreg/extension"
)

// Listener is notified of registry changes.
//
// Listeners are called on the registry dispatch loop, one batch at a time and in
// mutation order. A listener must be comparable since it identifies its own
// registration, so pointer receivers are the usual choice. A listener must not
// call Stop.
type Listener interface {
	RegistryChanged(event *ChangeEvent)
}

// ChangeEvent carries the deltas of one mutation that match the listener's namespace
type ChangeEvent struct {
	deltas []*extension.Delta
}

func newChangeEvent(deltas []*extension.Delta) *ChangeEvent {
	return &ChangeEvent{deltas: deltas}
}

// Deltas returns every delta of the event in the order they were produced
func (e *ChangeEvent) Deltas() []*extension.Delta {
	return slices.Clone(e.deltas)
}

// DeltasFor returns the deltas touching the given extension point
func (e *ChangeEvent) DeltasFor(pointID string) []*extension.Delta {
	out := make([]*extension.Delta, 0, len(e.deltas))
	for _, delta := range e.deltas {
		if delta.Point.UniqueID() == pointID {
			out = append(out, delta)
		}
	}
	return out
}

// Delta returns the delta of the given extension on the given extension point
func (e *ChangeEvent) Delta(pointID, extID string) (*extension.Delta, bool) {
	for _, delta := range e.deltas {
		if delta.Point.UniqueID() == pointID && delta.Extension.UniqueID() == extID {
			return delta, true
		}
	}
	return nil, false
}

// Namespaces returns the sorted namespaces of the extension points touched by the event
func (e *ChangeEvent) Namespaces() []string {
	set := goset.NewThreadUnsafeSet[string]()
	for _, delta := range e.deltas {
		set.Add(delta.Namespace())
	}
	namespaces := set.ToSlice()
	slices.Sort(namespaces)
	return namespaces
}
