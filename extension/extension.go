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

// Extension fills the extension point identified by PointID.
type Extension struct {
	// Namespace is the owning namespace. The contributor id is used when empty.
	Namespace string
	// Name is the simple id of the extension. Anonymous extensions leave it empty.
	Name string
	// Label is a human readable label
	Label string
	// PointID is the unique id of the targeted extension point
	PointID string
	// Elements is the ordered list of configuration element trees
	Elements []*Element
	// Contributor is the id of the declaring contributor. It is set at admission.
	Contributor string
}

// UniqueID returns the globally unique id of the extension,
// or an empty string for an anonymous extension.
func (e *Extension) UniqueID() string {
	if e.Name == "" {
		return ""
	}
	return qualify(e.Namespace, e.Name)
}

// IsAnonymous returns true when the extension has no simple id
func (e *Extension) IsAnonymous() bool {
	return e.Name == ""
}

// Clone returns a deep copy of the extension
func (e *Extension) Clone() *Extension {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Elements = cloneElements(e.Elements)
	return &clone
}
