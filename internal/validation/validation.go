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

// Package validation runs ordered checks over configuration values and
// reports the violations as one error.
package validation

import (
	"fmt"

	"go.uber.org/multierr"
)

// Validator is implemented by values that check themselves
type Validator interface {
	Validate() error
}

// Func adapts a function to Validator
type Func func() error

// Validate calls f
func (f Func) Validate() error {
	return f()
}

// Mode selects how a Chain reports violations
type Mode int

const (
	// AllErrors runs every check and combines the violations
	AllErrors Mode = iota
	// FailFast stops at the first violation
	FailFast
)

// Chain is an ordered list of checks. A Chain holds no result, so
// Validate may run any number of times.
type Chain struct {
	mode       Mode
	validators []Validator
}

var _ Validator = (*Chain)(nil)

// New creates a Chain
func New(mode Mode) *Chain {
	return &Chain{mode: mode}
}

// Add appends validators. Nil validators are skipped.
func (c *Chain) Add(validators ...Validator) *Chain {
	for _, v := range validators {
		if v != nil {
			c.validators = append(c.validators, v)
		}
	}
	return c
}

// When appends v only when cond holds
func (c *Chain) When(cond bool, v Validator) *Chain {
	if cond {
		c.Add(v)
	}
	return c
}

// Assert appends a check failing with the formatted message when cond is false
func (c *Chain) Assert(cond bool, format string, args ...any) *Chain {
	return c.Add(Func(func() error {
		if cond {
			return nil
		}
		return fmt.Errorf(format, args...)
	}))
}

// Validate runs the checks in order
func (c *Chain) Validate() error {
	var violations error
	for _, v := range c.validators {
		err := v.Validate()
		if err == nil {
			continue
		}
		if c.mode == FailFast {
			return err
		}
		violations = multierr.Append(violations, err)
	}
	return violations
}
