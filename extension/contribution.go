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

package extension

import (
	"maps"
	"time"
)

// Contribution is the unit of admission: a set of extension points and
// extensions submitted together by one contributor.
// It is admitted or rejected as a whole.
type Contribution struct {
	Contributor Contributor
	Points      []*Point
	Extensions  []*Extension
	// Translations is the optional translation table of the contributor.
	// Substitution happens outside of the registry.
	Translations map[string]string
	// Persist marks the contribution as cacheable. Dynamic contributions leave it false
	// and are forgotten across restarts.
	Persist bool
	// Timestamp is the freshness stamp of the declaration source
	Timestamp time.Time
}

// Clone returns a deep copy of the contribution
func (c *Contribution) Clone() *Contribution {
	if c == nil {
		return nil
	}
	clone := &Contribution{
		Contributor:  c.Contributor,
		Translations: maps.Clone(c.Translations),
		Persist:      c.Persist,
		Timestamp:    c.Timestamp,
	}
	if c.Points != nil {
		clone.Points = make([]*Point, len(c.Points))
		for i, point := range c.Points {
			clone.Points[i] = point.Clone()
		}
	}
	if c.Extensions != nil {
		clone.Extensions = make([]*Extension, len(c.Extensions))
		for i, ext := range c.Extensions {
			clone.Extensions[i] = ext.Clone()
		}
	}
	return clone
}

// Normalize fills the namespace and contributor of every record
// from the contribution's contributor.
func (c *Contribution) Normalize() {
	for _, point := range c.Points {
		if point == nil {
			continue
		}
		if point.Namespace == "" {
			point.Namespace = c.Contributor.ID
		}
		point.Contributor = c.Contributor.ID
	}
	for _, ext := range c.Extensions {
		if ext == nil {
			continue
		}
		if ext.Namespace == "" {
			ext.Namespace = c.Contributor.ID
		}
		ext.Contributor = c.Contributor.ID
	}
}
