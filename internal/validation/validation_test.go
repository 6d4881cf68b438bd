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
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

var errInvalidName = errors.New("invalid name")

var namePattern = regexp.MustCompile(`^[a-z]+$`)

func TestChain(t *testing.T) {
	t.Run("With all errors", func(t *testing.T) {
		chain := New(AllErrors).
			Add(Required("name", "")).
			Assert(false, "the [%s] is wrong", "size")

		err := chain.Validate()
		require.Error(t, err)
		errs := multierr.Errors(err)
		require.Len(t, errs, 2)
		assert.EqualError(t, errs[0], "the [name] is required")
		assert.EqualError(t, errs[1], "the [size] is wrong")

		// a chain keeps no state between runs
		assert.Len(t, multierr.Errors(chain.Validate()), 2)
	})
	t.Run("With fail fast", func(t *testing.T) {
		err := New(FailFast).
			Add(Required("name", " ")).
			Assert(false, "never reported").
			Validate()
		assert.EqualError(t, err, "the [name] is required")
	})
	t.Run("With conditional validator", func(t *testing.T) {
		assert.NoError(t, New(AllErrors).When(false, Required("name", "")).Validate())
		assert.Error(t, New(AllErrors).When(true, Required("name", "")).Validate())
	})
	t.Run("With nil validator", func(t *testing.T) {
		assert.NoError(t, New(AllErrors).Add(nil).Validate())
	})
	t.Run("With nested chain", func(t *testing.T) {
		inner := New(FailFast).Add(Required("inner", ""))
		err := New(AllErrors).Add(inner, Required("outer", "set")).Validate()
		assert.EqualError(t, err, "the [inner] is required")
	})
}

func TestRules(t *testing.T) {
	t.Run("Required", func(t *testing.T) {
		assert.NoError(t, Required("name", "node").Validate())
		assert.Error(t, Required("name", "\t").Validate())
	})
	t.Run("Matches", func(t *testing.T) {
		assert.NoError(t, Matches(namePattern, "node", errInvalidName).Validate())
		assert.NoError(t, Matches(namePattern, "", errInvalidName).Validate())
		assert.ErrorIs(t, Matches(namePattern, "Node-1", errInvalidName).Validate(), errInvalidName)
		assert.EqualError(t, Matches(namePattern, "Node-1", nil).Validate(), "invalid expression")
	})
	t.Run("Positive", func(t *testing.T) {
		assert.NoError(t, Positive("count", 1).Validate())
		assert.EqualError(t, Positive("count", 0).Validate(), "the [count] must be greater than zero")
		assert.Error(t, Positive("timeout", time.Duration(-1)).Validate())
	})
}
