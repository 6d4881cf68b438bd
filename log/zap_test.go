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

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buffer *bytes.Buffer) map[string]any {
	t.Helper()
	line := strings.TrimSpace(buffer.String())
	require.NotEmpty(t, line)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	return entry
}

func TestZap(t *testing.T) {
	t.Run("With Info log level", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)

		logger.Debug("hidden")
		assert.Zero(t, buffer.Len())

		logger.Infof("dispatched %s", "echo")
		entry := decodeLine(t, buffer)
		assert.Equal(t, "dispatched echo", entry["msg"])
		assert.Equal(t, "info", entry["level"])
		assert.Contains(t, entry["caller"], "zap_test.go")
		assert.Equal(t, InfoLevel, logger.LogLevel())
		assert.True(t, logger.Enabled(ErrorLevel))
		assert.False(t, logger.Enabled(DebugLevel))
		assert.False(t, logger.Enabled(InvalidLevel))
	})
	t.Run("With Debug log level", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(DebugLevel, buffer)
		logger.Debugf("parcel=%d", 1)
		entry := decodeLine(t, buffer)
		assert.Equal(t, "parcel=1", entry["msg"])
		assert.Equal(t, "debug", entry["level"])
	})
	t.Run("With Warn and Error log levels", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(WarningLevel, buffer)
		logger.Info("hidden")
		assert.Zero(t, buffer.Len())
		logger.Warn("careful ", 2)
		entry := decodeLine(t, buffer)
		assert.Equal(t, "warn", entry["level"])
		assert.Equal(t, "careful 2", entry["msg"])

		buffer.Reset()
		logger = NewZap(ErrorLevel, buffer)
		logger.Warnf("hidden %d", 1)
		assert.Zero(t, buffer.Len())
		logger.Errorf("failed: %v", errors.New("boom"))
		entry = decodeLine(t, buffer)
		assert.Equal(t, "failed: boom", entry["msg"])
		assert.Contains(t, entry, "stacktrace")
	})
	t.Run("With format without arguments", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		NewZap(InfoLevel, buffer).Infof("ready")
		assert.Equal(t, "ready", decodeLine(t, buffer)["msg"])
	})
	t.Run("With fields", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer).With("locality", "node-1", "hops", 2, "err", errors.New("x"), "dangling")
		logger.Info("forwarded")
		entry := decodeLine(t, buffer)
		assert.Equal(t, "node-1", entry["locality"])
		assert.EqualValues(t, 2, entry["hops"])
		assert.Equal(t, "x", entry["err"])
		assert.Equal(t, "dangling", entry["_"])
		assert.Equal(t, InfoLevel, logger.LogLevel())
	})
	t.Run("With no fields", func(t *testing.T) {
		logger := NewZap(InfoLevel, io.Discard)
		assert.Same(t, logger, logger.With())
		assert.Same(t, logger, logger.With(1, 2))
	})
	t.Run("With file output", func(t *testing.T) {
		file, err := os.CreateTemp(t.TempDir(), "applier-*.log")
		require.NoError(t, err)
		t.Cleanup(func() { _ = file.Close() })

		logger := NewZap(InfoLevel, file, io.Discard)
		logger.Info("to file")
		require.NoError(t, logger.Flush())

		content, err := os.ReadFile(file.Name())
		require.NoError(t, err)
		assert.Contains(t, string(content), "to file")
	})
	t.Run("With stdout", func(t *testing.T) {
		assert.NoError(t, NewZap(InfoLevel).Flush())
	})
}

func TestDiscardLogger(t *testing.T) {
	logger := DiscardLogger
	assert.NotPanics(t, func() {
		logger.Debug("x")
		logger.Debugf("%s", "x")
		logger.Info("x")
		logger.Infof("%s", "x")
		logger.Warn("x")
		logger.Warnf("%s", "x")
		logger.Error("x")
		logger.Errorf("%s", "x")
	})
	assert.Equal(t, InvalidLevel, logger.LogLevel())
	assert.False(t, logger.Enabled(ErrorLevel))
	assert.Equal(t, DiscardLogger, logger.With("a", 1))
	assert.NoError(t, logger.Flush())
}

func TestLevel(t *testing.T) {
	for _, level := range []Level{DebugLevel, InfoLevel, WarningLevel, ErrorLevel} {
		assert.Equal(t, level, ParseLevel(level.String()))
	}
	assert.Equal(t, InfoLevel, ParseLevel(""))
	assert.Equal(t, WarningLevel, ParseLevel("warning"))
	assert.Equal(t, InvalidLevel, ParseLevel("verbose"))
	assert.Equal(t, "invalid", InvalidLevel.String())
	assert.Less(t, DebugLevel, ErrorLevel)
}
