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

// Package brotli keeps pooled brotli readers and writers for parcel frames.
package brotli

import (
	"bytes"
	"io"
	"sync"

	"github.com/andybalholm/brotli"
)

var readerPool = sync.Pool{
	New: func() any {
		return brotli.NewReader(nil)
	},
}

// writers at brotli.BestSpeed; frames are small and latency bound
var writerPool = sync.Pool{
	New: func() any {
		return brotli.NewWriterLevel(nil, brotli.BestSpeed)
	},
}

// Compress appends the brotli encoding of payload to dst.
func Compress(dst *bytes.Buffer, payload []byte) error {
	writer := writerPool.Get().(*brotli.Writer)
	writer.Reset(dst)
	defer func() {
		writer.Reset(nil)
		writerPool.Put(writer)
	}()

	if _, err := writer.Write(payload); err != nil {
		return err
	}
	return writer.Close()
}

// Decompress returns the decoded content of payload.
func Decompress(payload []byte) ([]byte, error) {
	reader := readerPool.Get().(*brotli.Reader)
	defer func() {
		_ = reader.Reset(nil)
		readerPool.Put(reader)
	}()

	if err := reader.Reset(bytes.NewReader(payload)); err != nil {
		return nil, err
	}
	return io.ReadAll(reader)
}
