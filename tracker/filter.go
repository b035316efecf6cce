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

package tracker

import (
	goset "github.com/deckarep/golang-set/v2"

	"github.com/tochemey/extreg/extension"
)

// Filter selects the extension points a handler is interested in
type Filter interface {
	Matches(point *extension.Point) bool
}

// FilterFunc adapts a function to a Filter
type FilterFunc func(point *extension.Point) bool

// Matches calls f
func (f FilterFunc) Matches(point *extension.Point) bool {
	return f(point)
}

// ForPoint matches exactly one extension point
func ForPoint(pointID string) Filter {
	return FilterFunc(func(point *extension.Point) bool {
		return point.UniqueID() == pointID
	})
}

// ForPoints matches any of the given extension points
func ForPoints(pointIDs ...string) Filter {
	ids := goset.NewSet(pointIDs...)
	return FilterFunc(func(point *extension.Point) bool {
		return ids.Contains(point.UniqueID())
	})
}

// ForNamespace matches every extension point declared in namespace
func ForNamespace(namespace string) Filter {
	return FilterFunc(func(point *extension.Point) bool {
		return point.Namespace == namespace
	})
}

func matches(filter Filter, point *extension.Point) bool {
	return filter == nil || filter.Matches(point)
}
