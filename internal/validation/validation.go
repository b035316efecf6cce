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

// Package validation checks contributions and settings before they reach
// the registry.
package validation

import (
	"errors"

	"go.uber.org/multierr"
)

// Validator reports the first reason a value is unacceptable.
type Validator interface {
	Validate() error
}

// ValidatorFunc adapts a function into a Validator
type ValidatorFunc func() error

// Validate calls f
func (f ValidatorFunc) Validate() error {
	return f()
}

// Chain runs validators in insertion order.
// By default every violation is collected into one multierr error.
type Chain struct {
	stopAtFirst bool
	steps       []Validator
}

// ChainOption configures a Chain
type ChainOption func(*Chain)

// New creates an empty Chain
func New(opts ...ChainOption) *Chain {
	chain := new(Chain)
	for _, opt := range opts {
		opt(chain)
	}
	return chain
}

// FailFast makes the chain return the first violation only.
func FailFast() ChainOption {
	return func(c *Chain) { c.stopAtFirst = true }
}

// AllErrors makes the chain collect every violation.
func AllErrors() ChainOption {
	return func(c *Chain) { c.stopAtFirst = false }
}

// AddValidator appends v to the chain
func (c *Chain) AddValidator(v Validator) *Chain {
	c.steps = append(c.steps, v)
	return c
}

// AddAssertion appends a step that fails with message when ok is false.
func (c *Chain) AddAssertion(ok bool, message string) *Chain {
	return c.AddValidator(ValidatorFunc(func() error {
		if ok {
			return nil
		}
		return errors.New(message)
	}))
}

// Validate runs the chain.
func (c *Chain) Validate() (violations error) {
	for _, step := range c.steps {
		err := step.Validate()
		if err == nil {
			continue
		}
		if c.stopAtFirst {
			return err
		}
		violations = multierr.Append(violations, err)
	}
	return violations
}
