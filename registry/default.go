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
	"sync"
)

var (
	defaultMu       sync.RWMutex
	defaultRegistry *Registry
)

// SetDefault installs r as the process-wide registry returned by Default.
// Replacing a running default requires its master token. A nil r clears the default.
//
// The default must be installed before collaborators call Default and cleared
// after the registry is stopped.
func SetDefault(r *Registry, token *Token) error {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if current := defaultRegistry; current != nil && current != r && current.IsRunning() {
		if err := current.access.CheckStop(token); err != nil {
			return err
		}
	}
	defaultRegistry = r
	return nil
}

// Default returns the process-wide registry, or nil before SetDefault
func Default() *Registry {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultRegistry
}
