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
	"slices"
	"weak"
)

type reference[T any] struct {
	key      weak.Pointer[T]
	strong   *T
	strength Strength
}

// value returns the referenced object, or nil once a weak object has been collected
func (r *reference[T]) value() *T {
	if r.strong != nil {
		return r.strong
	}
	return r.key.Value()
}

// ReferenceSet is a set of objects compared by pointer identity, each held
// with its own Strength. It is not safe for concurrent use.
type ReferenceSet[T any] struct {
	refs []*reference[T]
}

// NewReferenceSet creates an empty ReferenceSet
func NewReferenceSet[T any]() *ReferenceSet[T] {
	return &ReferenceSet[T]{}
}

// Add inserts obj with the given strength. Adding an object already in the set
// only updates its strength and returns false.
func (s *ReferenceSet[T]) Add(obj *T, strength Strength) bool {
	if obj == nil {
		return false
	}
	key := weak.Make(obj)
	if i := s.indexOf(key); i >= 0 {
		s.refs[i].strength = strength
		s.refs[i].strong = holdOf(obj, strength)
		return false
	}
	s.refs = append(s.refs, &reference[T]{
		key:      key,
		strong:   holdOf(obj, strength),
		strength: strength,
	})
	return true
}

// Remove deletes obj from the set
func (s *ReferenceSet[T]) Remove(obj *T) bool {
	if obj == nil {
		return false
	}
	i := s.indexOf(weak.Make(obj))
	if i < 0 {
		return false
	}
	s.refs = slices.Delete(s.refs, i, i+1)
	return true
}

// Contains returns true when obj is in the set
func (s *ReferenceSet[T]) Contains(obj *T) bool {
	return obj != nil && s.indexOf(weak.Make(obj)) >= 0
}

// Values returns the live objects in insertion order and forgets the collected ones
func (s *ReferenceSet[T]) Values() []*T {
	values := make([]*T, 0, len(s.refs))
	s.refs = slices.DeleteFunc(s.refs, func(ref *reference[T]) bool {
		obj := ref.value()
		if obj == nil {
			return true
		}
		values = append(values, obj)
		return false
	})
	return values
}

// Len returns the number of live objects
func (s *ReferenceSet[T]) Len() int {
	return len(s.Values())
}

// Trim releases the soft objects to the garbage collector. They stay in the set
// until collected. It returns the number of released objects.
func (s *ReferenceSet[T]) Trim() int {
	var released int
	for _, ref := range s.refs {
		if ref.strength == Soft && ref.strong != nil {
			ref.strong = nil
			released++
		}
	}
	return released
}

// Clear empties the set and returns the objects that were still alive
func (s *ReferenceSet[T]) Clear() []*T {
	values := s.Values()
	s.refs = nil
	return values
}

func (s *ReferenceSet[T]) indexOf(key weak.Pointer[T]) int {
	return slices.IndexFunc(s.refs, func(ref *reference[T]) bool {
		return ref.key == key
	})
}

func holdOf[T any](obj *T, strength Strength) *T {
	if strength == Weak {
		return nil
	}
	return obj
}
