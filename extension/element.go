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
	"slices"
)

// Element is a configuration element: a tag with attributes, an optional
// text value and ordered children.
type Element struct {
	Name       string
	Attributes map[string]string
	Value      string
	Children   []*Element
}

// Attribute returns the value of the named attribute
func (e *Element) Attribute(key string) (string, bool) {
	value, ok := e.Attributes[key]
	return value, ok
}

// AttributeNames returns the sorted attribute names
func (e *Element) AttributeNames() []string {
	return slices.Sorted(maps.Keys(e.Attributes))
}

// ChildrenNamed returns the direct children with the given tag name
func (e *Element) ChildrenNamed(name string) []*Element {
	var out []*Element
	for _, child := range e.Children {
		if child.Name == name {
			out = append(out, child)
		}
	}
	return out
}

// Clone returns a deep copy of the element tree
func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}
	return &Element{
		Name:       e.Name,
		Attributes: maps.Clone(e.Attributes),
		Value:      e.Value,
		Children:   cloneElements(e.Children),
	}
}

// Walk visits the element tree depth first and stops when fn returns false
func (e *Element) Walk(fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, child := range e.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

func cloneElements(elements []*Element) []*Element {
	if elements == nil {
		return nil
	}
	out := make([]*Element, len(elements))
	for i, element := range elements {
		out[i] = element.Clone()
	}
	return out
}
