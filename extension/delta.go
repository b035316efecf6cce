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

// DeltaKind tells whether an extension joined or left the registry
type DeltaKind int

const (
	// Added is reported when an extension becomes reachable from its point
	Added DeltaKind = iota
	// Removed is reported when an extension stops being reachable from its point
	Removed
)

// String returns the name of the kind
func (k DeltaKind) String() string {
	switch k {
	case Added:
		return "ADDED"
	case Removed:
		return "REMOVED"
	default:
		return "UNKNOWN"
	}
}

// Delta describes one registry change. It always carries both the extension
// point and the extension so listeners can correlate without a second lookup.
type Delta struct {
	Kind      DeltaKind
	Point     *Point
	Extension *Extension
}

// NewDelta creates a Delta
func NewDelta(kind DeltaKind, point *Point, ext *Extension) *Delta {
	return &Delta{
		Kind:      kind,
		Point:     point,
		Extension: ext,
	}
}

// Namespace returns the namespace of the delta's extension point
func (d *Delta) Namespace() string {
	return d.Point.Namespace
}
