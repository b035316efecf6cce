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
	"github.com/tochemey/extreg/extension"
)

// ExtensionPoint returns the extension point with the given unique id
func (r *Registry) ExtensionPoint(id string) (*extension.Point, bool) {
	if !r.running.Load() {
		return nil, false
	}
	return r.store.Point(id)
}

// ExtensionPoints returns every extension point ordered by unique id
func (r *Registry) ExtensionPoints() []*extension.Point {
	if !r.running.Load() {
		return []*extension.Point{}
	}
	return r.store.Points()
}

// ExtensionPointsIn returns the extension points declared in a namespace
func (r *Registry) ExtensionPointsIn(namespace string) []*extension.Point {
	if !r.running.Load() {
		return []*extension.Point{}
	}
	return r.store.PointsIn(namespace)
}

// Extension returns the extension extID linked to the extension point pointID
func (r *Registry) Extension(pointID, extID string) (*extension.Extension, bool) {
	if !r.running.Load() {
		return nil, false
	}
	return r.store.ExtensionOf(pointID, extID)
}

// ExtensionByID returns a named extension, linked or still waiting for its extension point
func (r *Registry) ExtensionByID(id string) (*extension.Extension, bool) {
	if !r.running.Load() {
		return nil, false
	}
	return r.store.Extension(id)
}

// Extensions returns the linked extensions declared in a namespace
func (r *Registry) Extensions(namespace string) []*extension.Extension {
	if !r.running.Load() {
		return []*extension.Extension{}
	}
	return r.store.ExtensionsIn(namespace)
}

// ExtensionsFor returns the extensions linked to an extension point
func (r *Registry) ExtensionsFor(pointID string) []*extension.Extension {
	if !r.running.Load() {
		return []*extension.Extension{}
	}
	return r.store.ExtensionsFor(pointID)
}

// ConfigurationElementsFor returns the configuration elements of every extension
// linked to an extension point
func (r *Registry) ConfigurationElementsFor(pointID string) []*extension.Element {
	if !r.running.Load() {
		return []*extension.Element{}
	}
	return r.store.ElementsFor(pointID)
}

// ConfigurationElementsForExtension returns the configuration elements of one extension
func (r *Registry) ConfigurationElementsForExtension(pointID, extID string) []*extension.Element {
	if !r.running.Load() {
		return []*extension.Element{}
	}
	return r.store.ElementsForExtension(pointID, extID)
}

// Namespaces returns the sorted namespaces holding extension points or linked extensions
func (r *Registry) Namespaces() []string {
	if !r.running.Load() {
		return []string{}
	}
	return r.store.Namespaces()
}

// Contributors returns the sorted ids of the contributors owning records
func (r *Registry) Contributors() []string {
	if !r.running.Load() {
		return []string{}
	}
	return r.store.Contributors()
}

// HasContributor returns true when the contributor owns records
func (r *Registry) HasContributor(contributorID string) bool {
	for _, id := range r.Contributors() {
		if id == contributorID {
			return true
		}
	}
	return false
}

// IsLinked returns true when the extension is registered and attached to its
// extension point
func (r *Registry) IsLinked(ext *extension.Extension) bool {
	if ext == nil || !r.running.Load() {
		return false
	}
	return r.store.IsLinked(ext)
}

// Contains returns true when the extension is still registered, linked or not
func (r *Registry) Contains(ext *extension.Extension) bool {
	if ext == nil || !r.running.Load() {
		return false
	}
	return r.store.Contains(ext)
}
