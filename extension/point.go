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

// Point is a named slot that extensions can fill.
type Point struct {
	// Namespace is the owning namespace. The contributor id is used when empty.
	Namespace string
	// Name is the simple id of the point within its namespace
	Name string
	// Label is a human readable label
	Label string
	// Schema is an optional reference to the schema describing the point
	Schema string
	// Contributor is the id of the declaring contributor. It is set at admission.
	Contributor string
}

// UniqueID returns the globally unique id of the point
func (p *Point) UniqueID() string {
	return qualify(p.Namespace, p.Name)
}

// Clone returns a copy of the point
func (p *Point) Clone() *Point {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func qualify(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "." + name
}
