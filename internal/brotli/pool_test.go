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

package brotli

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompress(t *testing.T) {
	payload := bytes.Repeat([]byte("apply an action to a remote object "), 64)

	var out bytes.Buffer
	require.NoError(t, Compress(&out, payload))
	assert.Less(t, out.Len(), len(payload))

	decoded, err := Decompress(out.Bytes())
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestCompressConcurrently(t *testing.T) {
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Go(func() {
			payload := bytes.Repeat([]byte{byte(i)}, 512)
			var out bytes.Buffer
			if !assert.NoError(t, Compress(&out, payload)) {
				return
			}
			decoded, err := Decompress(out.Bytes())
			assert.NoError(t, err)
			assert.Equal(t, payload, decoded)
		})
	}
	wg.Wait()
}

func TestDecompressGarbage(t *testing.T) {
	_, err := Decompress([]byte{0xff, 0x00, 0x13, 0x37})
	assert.Error(t, err)
}
