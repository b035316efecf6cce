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

	"github.com/tochemey/extreg/extension"
)

// NewContributionValidator checks the shape of a normalized contribution:
// identifiers, extension targets and configuration element names.
// It does not check unique id collisions, which depend on the registry state.
func NewContributionValidator(contribution *extension.Contribution) Validator {
	return ValidatorFunc(func() error {
		if contribution == nil {
			return fmt.Errorf("the contribution is required")
		}

		chain := New(AllErrors()).
			AddValidator(NewIdentifierValidator("contributor id", contribution.Contributor.ID))

		for i, point := range contribution.Points {
			if point == nil {
				chain.AddAssertion(false, fmt.Sprintf("extension point #%d is nil", i))
				continue
			}
			chain.
				AddValidator(NewIdentifierValidator("extension point namespace", point.Namespace)).
				AddValidator(NewIdentifierValidator("extension point name", point.Name))
		}

		for i, ext := range contribution.Extensions {
			if ext == nil {
				chain.AddAssertion(false, fmt.Sprintf("extension #%d is nil", i))
				continue
			}
			chain.
				AddValidator(NewIdentifierValidator("extension namespace", ext.Namespace)).
				AddValidator(NewOptionalIdentifierValidator("extension name", ext.Name)).
				AddValidator(NewIdentifierValidator("extension point id", ext.PointID))
			for _, element := range ext.Elements {
				chain.AddValidator(newElementValidator(ext, element))
			}
		}

		return chain.Validate()
	})
}

func newElementValidator(ext *extension.Extension, root *extension.Element) Validator {
	return ValidatorFunc(func() error {
		if root == nil {
			return fmt.Errorf("extension=(%s) carries a nil configuration element", ext.UniqueID())
		}
		var err error
		root.Walk(func(element *extension.Element) bool {
			if element == nil || element.Name == "" {
				err = fmt.Errorf("extension=(%s) carries a configuration element without name", ext.UniqueID())
				return false
			}
			for _, child := range element.Children {
				if child == nil {
					err = fmt.Errorf("extension=(%s) element=(%s) has a nil child", ext.UniqueID(), element.Name)
					return false
				}
			}
			return true
		})
		return err
	})
}
