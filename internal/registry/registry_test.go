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
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	X int
	Y int
}

func TestRegistry(t *testing.T) {
	t.Run("With builtins", func(t *testing.T) {
		r := New()
		assert.True(t, r.Exists(42))
		assert.True(t, r.Exists("hello"))
		assert.True(t, r.Exists(3.14))

		rtype, ok := r.TypeOf("int")
		require.True(t, ok)
		assert.Equal(t, reflect.TypeOf(0), rtype)
	})
	t.Run("With custom type", func(t *testing.T) {
		r := New()
		assert.False(t, r.Exists(point{}))

		r.Register(point{})
		assert.True(t, r.Exists(point{}))

		rtype, ok := r.TypeOf(Name(point{}))
		require.True(t, ok)
		assert.Equal(t, reflect.TypeOf(point{}), rtype)
		assert.Contains(t, r.TypesMap(), "registry.point")

		r.Deregister(point{})
		assert.False(t, r.Exists(point{}))
	})
	t.Run("With reflect type", func(t *testing.T) {
		r := New()
		r.Register(reflect.TypeOf(&point{}))
		assert.True(t, r.Exists(&point{}))
		assert.False(t, r.Exists(point{}))
	})
	t.Run("With nil value", func(t *testing.T) {
		assert.Empty(t, Name(nil))
		r := New()
		before := len(r.TypesMap())
		r.Register(nil)
		assert.Len(t, r.TypesMap(), before)
	})
}
