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

package validation

import (
	"fmt"
	"regexp"
)

// identifiers are dot separated segments of word characters and hyphens
var identifierPattern = regexp.MustCompile(`^[\w-]+(\.[\w-]+)*$`)

type identifierValidator struct {
	field string
	value string
}

var _ Validator = (*identifierValidator)(nil)

// NewIdentifierValidator checks that value is a non-empty registry identifier
// such as a namespace, a simple id or a unique id.
func NewIdentifierValidator(field, value string) Validator {
	return &identifierValidator{field: field, value: value}
}

// Validate executes the validation
func (x *identifierValidator) Validate() error {
	if x.value == "" {
		return fmt.Errorf("the [%s] is required", x.field)
	}
	if !identifierPattern.MatchString(x.value) {
		return fmt.Errorf("the [%s] value=(%s) is not a valid identifier", x.field, x.value)
	}
	return nil
}

// NewOptionalIdentifierValidator behaves like NewIdentifierValidator but accepts an empty value
func NewOptionalIdentifierValidator(field, value string) Validator {
	return ValidatorFunc(func() error {
		if value == "" {
			return nil
		}
		return NewIdentifierValidator(field, value).Validate()
	})
}
