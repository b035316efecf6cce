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
	"github.com/tochemey/extreg/extension"
)

// Handler reacts to the extensions a Tracker follows.
//
// Handlers are called without any tracker lock held, so they may call back into
// the tracker. A handler identifies its own registration and must be comparable.
type Handler[T any] interface {
	// AddExtension is called when an extension is linked to a matching extension point.
	// The tracker associates nothing by itself: the handler may call RegisterObject.
	AddExtension(tracker *Tracker[T], ext *extension.Extension)
	// RemoveExtension is called when an extension leaves a matching extension point
	// with the objects that were still associated with it.
	RemoveExtension(ext *extension.Extension, objects []*T)
}
