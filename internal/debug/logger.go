package debug

import (
	"io"
	"os"

	clog "github.com/charmbracelet/log"
)

// Logger provides leveled logging hooks. A nil *Logger discards everything.
type Logger struct {
	enabled bool
	base    *clog.Logger
}

// New returns a logger writing to stderr. Debug output is only emitted when enabled.
func New(enabled bool) *Logger {
	return NewWithWriter(os.Stderr, enabled)
}

// NewWithWriter returns a logger writing to out.
func NewWithWriter(out io.Writer, enabled bool) *Logger {
	level := clog.WarnLevel
	if enabled {
		level = clog.DebugLevel
	}
	base := clog.NewWithOptions(out, clog.Options{
		ReportTimestamp: true,
		Prefix:          "rxterm",
		Level:           level,
	})
	return &Logger{enabled: enabled, base: base}
}

// Enabled reports whether debug output is on.
func (l *Logger) Enabled() bool {
	return l != nil && l.enabled
}

// With returns a child logger carrying the given key/value pairs.
func (l *Logger) With(keyvals ...any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{enabled: l.enabled, base: l.base.With(keyvals...)}
}

// Debugf writes a formatted debug line when enabled.
func (l *Logger) Debugf(format string, args ...any) {
	if l == nil || !l.enabled {
		return
	}
	l.base.Debugf(format, args...)
}

// Infof writes a formatted info line when enabled.
func (l *Logger) Infof(format string, args ...any) {
	if l == nil || !l.enabled {
		return
	}
	l.base.Infof(format, args...)
}

// Warnf always writes, unless the logger is nil.
func (l *Logger) Warnf(format string, args ...any) {
	if l == nil {
		return
	}
	l.base.Warnf(format, args...)
}
