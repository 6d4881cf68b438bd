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

package component

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/applier/errors"
)

type counter struct{}
type printer struct{}
type receiver struct{}
type future struct{}
type channel struct{}

func TestType(t *testing.T) {
	t.Run("With base type", func(t *testing.T) {
		base := Type(3)
		assert.True(t, base.IsValid())
		assert.False(t, base.IsDerived())
		assert.Equal(t, base, base.Base())
		assert.Equal(t, "3", base.String())
	})
	t.Run("With derived type", func(t *testing.T) {
		derived := NewDerived(3, 2)
		assert.True(t, derived.IsValid())
		assert.True(t, derived.IsDerived())
		assert.Equal(t, Type(3), derived.Base())
		assert.Equal(t, "3/2", derived.String())
	})
	t.Run("With invalid type", func(t *testing.T) {
		assert.False(t, TypeInvalid.IsValid())
		assert.Equal(t, "invalid", TypeInvalid.String())
	})
}

func TestCompatible(t *testing.T) {
	base := Type(5)
	first := NewDerived(base, 1)
	second := NewDerived(base, 2)

	assert.True(t, Compatible(base, base))
	assert.True(t, Compatible(first, base))
	assert.True(t, Compatible(base, first))
	assert.False(t, Compatible(first, second))
	assert.False(t, Compatible(base, Type(6)))
	assert.False(t, Compatible(TypeInvalid, TypeInvalid))
	assert.False(t, Compatible(base, TypeInvalid))
}

func TestTypes(t *testing.T) {
	t.Run("With base registration", func(t *testing.T) {
		types := NewTypes()
		counterType, err := Register[*counter](types)
		require.NoError(t, err)
		printerType, err := Register[*printer](types)
		require.NoError(t, err)

		assert.NotEqual(t, counterType, printerType)
		assert.Equal(t, counterType, TypeFor[*counter](types))
		assert.Equal(t, TypeInvalid, TypeFor[counter](types))
		assert.Equal(t, TypeInvalid, types.TypeOf(nil))
		assert.Equal(t, "*component.counter", types.Name(counterType))
		assert.Equal(t, "9", types.Name(Type(9)))
		assert.False(t, types.Compatible(counterType, printerType))
		assert.Equal(t, 2, types.Len())
	})
	t.Run("With derived registration", func(t *testing.T) {
		types := NewTypes()
		receiverType, err := Register[*receiver](types)
		require.NoError(t, err)
		futureType, err := RegisterDerived[*future](types, receiverType)
		require.NoError(t, err)
		channelType, err := RegisterDerived[*channel](types, futureType)
		require.NoError(t, err)

		assert.Equal(t, receiverType, futureType.Base())
		assert.Equal(t, receiverType, channelType.Base())
		assert.True(t, types.Compatible(futureType, receiverType))
		assert.True(t, types.Compatible(receiverType, channelType))
		assert.False(t, types.Compatible(futureType, channelType))
	})
	t.Run("With duplicate registration", func(t *testing.T) {
		types := NewTypes()
		_, err := Register[*counter](types)
		require.NoError(t, err)
		_, err = Register[*counter](types)
		assert.ErrorIs(t, err, errors.ErrTypeAlreadyRegistered)
		_, err = types.Register(nil)
		assert.ErrorIs(t, err, errors.ErrTypeNotRegistered)
	})
	t.Run("With unknown base", func(t *testing.T) {
		types := NewTypes()
		_, err := RegisterDerived[*future](types, Type(42))
		assert.ErrorIs(t, err, errors.ErrTypeNotRegistered)
	})
	t.Run("With concurrent lookups", func(t *testing.T) {
		types := NewTypes()
		counterType, err := Register[*counter](types)
		require.NoError(t, err)

		var wg sync.WaitGroup
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.Equal(t, counterType, types.TypeOf(reflect.TypeFor[*counter]()))
			}()
		}
		wg.Wait()
	})
}
