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
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// DefaultLogger writes info entries and above to stdout
	DefaultLogger Logger = NewZap(InfoLevel, os.Stdout)
	// DebugLogger writes every entry to stdout
	DebugLogger Logger = NewZap(DebugLevel, os.Stdout)
	// DiscardLogger drops every entry
	DiscardLogger Logger = discardLogger{}
)

// Zap is a Logger encoding JSON entries with zap. Messages are only
// formatted when their level is enabled.
type Zap struct {
	logger  *zap.Logger
	level   Level
	outputs []io.Writer
}

var _ Logger = (*Zap)(nil)

// NewZap creates a Zap writing entries at level and above to writers,
// or to stdout when none is given.
func NewZap(level Level, writers ...io.Writer) *Zap {
	if len(writers) == 0 {
		writers = []io.Writer{os.Stdout}
	}

	syncers := make([]zapcore.WriteSyncer, len(writers))
	for i, writer := range writers {
		syncers[i] = zapcore.AddSync(writer)
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig()),
		zap.CombineWriteSyncers(syncers...),
		level.zap())

	// skip write and the level method
	return &Zap{
		logger:  zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2), zap.AddStacktrace(zapcore.ErrorLevel)),
		level:   level,
		outputs: writers,
	}
}

func (z *Zap) Debug(v ...any)                 { z.write(DebugLevel, "", v) }
func (z *Zap) Debugf(format string, v ...any) { z.write(DebugLevel, format, v) }
func (z *Zap) Info(v ...any)                  { z.write(InfoLevel, "", v) }
func (z *Zap) Infof(format string, v ...any)  { z.write(InfoLevel, format, v) }
func (z *Zap) Warn(v ...any)                  { z.write(WarningLevel, "", v) }
func (z *Zap) Warnf(format string, v ...any)  { z.write(WarningLevel, format, v) }
func (z *Zap) Error(v ...any)                 { z.write(ErrorLevel, "", v) }
func (z *Zap) Errorf(format string, v ...any) { z.write(ErrorLevel, format, v) }

func (z *Zap) write(level Level, format string, args []any) {
	if !z.Enabled(level) {
		return
	}

	message := format
	switch {
	case format == "":
		message = fmt.Sprint(args...)
	case len(args) > 0:
		message = fmt.Sprintf(format, args...)
	}

	if entry := z.logger.Check(level.zap(), message); entry != nil {
		entry.Write()
	}
}

// Enabled implements Logger
func (z *Zap) Enabled(level Level) bool {
	return level != InvalidLevel && z.logger.Core().Enabled(level.zap())
}

// With implements Logger. Pairs whose key is not a string are skipped and a
// trailing key without a value is recorded under "_".
func (z *Zap) With(keyValues ...any) Logger {
	var fields []zap.Field
	for i := 0; i < len(keyValues); i += 2 {
		if i+1 == len(keyValues) {
			fields = append(fields, field("_", keyValues[i]))
			break
		}
		if key, ok := keyValues[i].(string); ok {
			fields = append(fields, field(key, keyValues[i+1]))
		}
	}

	if len(fields) == 0 {
		return z
	}

	return &Zap{
		logger:  z.logger.With(fields...),
		level:   z.level,
		outputs: z.outputs,
	}
}

// LogLevel implements Logger
func (z *Zap) LogLevel() Level {
	return z.level
}

// Flush syncs the file outputs. Standard streams are skipped because
// syncing a terminal fails on most platforms.
func (z *Zap) Flush() error {
	var err error
	for _, output := range z.outputs {
		if file, ok := output.(*os.File); ok && file != os.Stdout && file != os.Stderr {
			err = multierr.Append(err, file.Sync())
		}
	}
	return err
}

func field(key string, value any) zap.Field {
	switch v := value.(type) {
	case string:
		return zap.String(key, v)
	case int:
		return zap.Int(key, v)
	case uint32:
		return zap.Uint32(key, v)
	case bool:
		return zap.Bool(key, v)
	case error:
		return zap.NamedError(key, v)
	case time.Duration:
		return zap.Duration(key, v)
	case fmt.Stringer:
		return zap.Stringer(key, v)
	default:
		return zap.Any(key, v)
	}
}

func encoderConfig() zapcore.EncoderConfig {
	config := zap.NewProductionEncoderConfig()
	config.TimeKey = "ts"
	config.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	config.EncodeDuration = zapcore.StringDurationEncoder
	return config
}
