package logs

import (
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger writes JSON lines with a timestamp and event fields.
// A nil or disabled Logger discards everything.
type Logger struct {
	z *zap.Logger
	f *os.File
}

// NewFromEnv returns a logger if QUILL_LOG is set to a truthy value or if
// QUILL_LOG_FILE is provided. Otherwise it returns a disabled logger.
// When enabled and no file is specified, it writes to ./quill.log.
func NewFromEnv() *Logger {
	lf := os.Getenv("QUILL_LOG_FILE")
	enabled := lf != ""
	if v := os.Getenv("QUILL_LOG"); v != "" && v != "0" && v != "false" {
		enabled = true
	}
	if !enabled {
		return &Logger{}
	}
	if lf == "" {
		lf = filepath.Join(".", "quill.log")
	}
	f, err := os.OpenFile(lf, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		// The terminal belongs to the UI; there is nowhere to report this.
		return &Logger{}
	}
	return &Logger{z: zap.New(newCore(f)), f: f}
}

// New wraps an existing zap logger, for callers that already have one.
func New(z *zap.Logger) *Logger {
	return &Logger{z: z}
}

func newCore(f *os.File) zapcore.Core {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "time"
	enc.MessageKey = "event"
	enc.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	enc.CallerKey = zapcore.OmitKey
	enc.StacktraceKey = zapcore.OmitKey
	return zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.Lock(f), zapcore.DebugLevel)
}

// Enabled reports whether events are recorded.
func (l *Logger) Enabled() bool { return l != nil && l.z != nil }

// Close flushes and closes the underlying file if enabled.
func (l *Logger) Close() {
	if !l.Enabled() {
		return
	}
	_ = l.z.Sync()
	if l.f != nil {
		_ = l.f.Close()
	}
}

// Event writes a JSON line with the event name and fields.
// Common fields: action, cursor, buffer_len, file, error.
func (l *Logger) Event(event string, fields map[string]any) {
	if !l.Enabled() {
		return
	}
	// Map order is random; sorted keys keep log lines comparable.
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	zf := make([]zap.Field, 0, len(fields))
	for _, k := range keys {
		if err, ok := fields[k].(error); ok {
			zf = append(zf, zap.String(k, err.Error()))
			continue
		}
		zf = append(zf, zap.Any(k, fields[k]))
	}
	l.z.Info(event, zf...)
}

// Error records an error event.
func (l *Logger) Error(event string, err error, fields map[string]any) {
	if !l.Enabled() {
		return
	}
	merged := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged["error"] = err.Error()
	l.Event(event, merged)
}
