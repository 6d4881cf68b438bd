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

package action

import (
	"context"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/applier/address"
	"github.com/tochemey/applier/errors"
)

type echoer struct{}

type adder struct {
	total int
}

var echo = Define("echo", func(_ context.Context, _ *echoer, args Arguments) (any, error) {
	return Arg[int](args, 0)
})

var add = Define("add", func(_ context.Context, target *adder, args Arguments) (any, error) {
	for i := range args.Len() {
		n, err := Arg[int](args, i)
		if err != nil {
			return nil, err
		}
		target.total += n
	}
	return target.total, nil
})

func TestDefinition(t *testing.T) {
	assert.Equal(t, "echo", echo.Name())
	assert.Equal(t, reflect.TypeFor[*echoer](), echo.ComponentType())

	result, err := echo.Invoke(context.Background(), &echoer{}, NewArguments(42))
	require.NoError(t, err)
	assert.Equal(t, 42, result)

	_, err = echo.Invoke(context.Background(), &adder{}, NewArguments(42))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrTypeMismatch)
}

func TestBind(t *testing.T) {
	t.Run("With arguments", func(t *testing.T) {
		act, err := Bind(add, DefaultMaxArity, 1, 2, 3)
		require.NoError(t, err)
		assert.Equal(t, "add", act.Name())
		assert.Equal(t, 3, act.Arguments().Len())

		target := &adder{}
		result, err := act.Invoke(context.Background(), target)
		require.NoError(t, err)
		assert.Equal(t, 6, result)
		assert.Equal(t, 6, target.total)
	})
	t.Run("With zero arguments", func(t *testing.T) {
		act, err := Bind(add, DefaultMaxArity)
		require.NoError(t, err)
		assert.Zero(t, act.Arguments().Len())
		result, err := act.Invoke(context.Background(), &adder{})
		require.NoError(t, err)
		assert.Equal(t, 0, result)
	})
	t.Run("With arguments copied once", func(t *testing.T) {
		values := []any{1, 2}
		act, err := Bind(add, 0, values...)
		require.NoError(t, err)
		values[0] = 100
		assert.Equal(t, 1, act.Arguments().At(0))

		copied := act.Arguments().Values()
		copied[1] = 200
		assert.Equal(t, 2, act.Arguments().At(1))
	})
	t.Run("With maximum arity", func(t *testing.T) {
		args := make([]any, DefaultMaxArity)
		for i := range args {
			args[i] = i
		}
		_, err := Bind(add, 0, args...)
		require.NoError(t, err)

		_, err = Bind(add, 0, append(args, 1)...)
		assert.ErrorIs(t, err, errors.ErrArityExceeded)

		_, err = Bind(add, 2, 1, 2, 3)
		assert.ErrorIs(t, err, errors.ErrArityExceeded)
	})
	t.Run("With undefined definition", func(t *testing.T) {
		_, err := Bind(nil, 0)
		assert.ErrorIs(t, err, errors.ErrUndefinedAction)
	})
}

func TestArg(t *testing.T) {
	args := NewArguments(1, "two", []byte("3"))

	n, err := Arg[int](args, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	s := MustArg[string](args, 1)
	assert.Equal(t, "two", s)

	_, err = Arg[string](args, 0)
	assert.ErrorIs(t, err, errors.ErrInvalidArgument)

	_, err = Arg[int](args, 5)
	assert.ErrorIs(t, err, errors.ErrInvalidArgument)
	assert.Nil(t, args.At(-1))

	assert.Panics(t, func() { MustArg[float64](args, 2) })
}

func TestContinuation(t *testing.T) {
	t.Run("With GID target", func(t *testing.T) {
		gid := address.NewGID()
		cont := NewContinuation(gid)
		assert.Equal(t, gid, cont.GID())
		assert.Nil(t, cont.FullAddress())
		assert.Equal(t, gid.String(), cont.String())
	})
	t.Run("With FullAddress target", func(t *testing.T) {
		fa := address.NewFullAddress(address.NewGID(), address.New("node-1", nil, 1))
		cont := NewContinuationFor(fa)
		assert.Equal(t, fa.GID(), cont.GID())
		assert.NotSame(t, fa, cont.FullAddress())
		assert.Equal(t, fa.Address(), cont.FullAddress().Address())

		moved, err := cont.Transfer()
		require.NoError(t, err)
		assert.NotSame(t, cont.FullAddress(), moved.FullAddress())
	})
	t.Run("With unresolved FullAddress target", func(t *testing.T) {
		fa := address.FullAddressOf(address.NewGID())
		cont := NewContinuationFor(fa)
		cont.FullAddress().SetAddress(address.New("node-2", nil, 1))
		assert.True(t, cont.FullAddress().IsResolved())
		assert.False(t, fa.IsResolved())
	})
	t.Run("With reclaim", func(t *testing.T) {
		cont := NewContinuation(address.NewGID())
		moved, err := cont.Transfer()
		require.NoError(t, err)

		cont.Reclaim(moved)
		assert.False(t, cont.IsSpent())
		assert.True(t, moved.IsSpent())

		_, err = moved.Transfer()
		assert.ErrorIs(t, err, errors.ErrContinuationSpent)
		_, err = cont.Transfer()
		assert.NoError(t, err)
	})
	t.Run("With transfer", func(t *testing.T) {
		cont := NewContinuation(address.NewGID())
		moved, err := cont.Transfer()
		require.NoError(t, err)
		assert.True(t, cont.IsSpent())
		assert.False(t, moved.IsSpent())
		assert.Equal(t, cont.GID(), moved.GID())

		_, err = cont.Transfer()
		assert.ErrorIs(t, err, errors.ErrContinuationSpent)

		var undefined *Continuation
		_, err = undefined.Transfer()
		assert.ErrorIs(t, err, errors.ErrUndefinedContinuation)
	})
	t.Run("With concurrent transfers", func(t *testing.T) {
		cont := NewContinuation(address.NewGID())
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			success int
		)
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := cont.Transfer(); err == nil {
					mu.Lock()
					success++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, success)
	})
}

func TestCatalog(t *testing.T) {
	catalog := NewCatalog(echo)
	require.NoError(t, catalog.Register(add))
	assert.Equal(t, 2, catalog.Len())

	def, err := catalog.Lookup("add")
	require.NoError(t, err)
	assert.Same(t, add, def)

	_, err = catalog.Lookup("missing")
	assert.ErrorIs(t, err, errors.ErrActionNotFound)

	assert.ErrorIs(t, catalog.Register(echo), errors.ErrActionAlreadyRegistered)
	assert.ErrorIs(t, catalog.Register(nil), errors.ErrUndefinedAction)
	assert.Panics(t, func() { NewCatalog(echo, echo) })
}

func TestTriggerFunc(t *testing.T) {
	var got any
	trigger := TriggerFunc(func(_ context.Context, _ *Continuation, result any, _ error) error {
		got = result
		return nil
	})
	require.NoError(t, trigger.Trigger(context.Background(), NewContinuation(address.NewGID()), 7, nil))
	assert.Equal(t, 7, got)
}
