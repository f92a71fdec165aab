// Package logger provides structured logging for the graha CLI.
// A Logger is created once by the root command from the --verbose flag and
// handed to every service that logs. When verbose mode is enabled, debug
// messages are printed to stderr to help users follow the analysis pipeline.
package logger

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a zap logger with printf-style helpers.
// A nil *Logger is valid and discards everything.
type Logger struct {
	z       *zap.Logger
	sugar   *zap.SugaredLogger
	verbose bool
}

// New creates a logger writing to w (os.Stderr when nil).
// Verbose enables debug and info output; otherwise only warnings are written.
func New(verbose bool, w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), zap.NewAtomicLevelAt(level))
	return FromZap(zap.New(core), verbose)
}

// FromZap wraps an existing zap logger.
func FromZap(z *zap.Logger, verbose bool) *Logger {
	if z == nil {
		z = zap.NewNop()
	}
	return &Logger{z: z, sugar: z.Sugar(), verbose: verbose}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return FromZap(zap.NewNop(), false)
}

// IsVerbose returns true if verbose mode is enabled.
func (l *Logger) IsVerbose() bool {
	return l != nil && l.verbose
}

// Zap returns the underlying zap logger.
func (l *Logger) Zap() *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l.z
}

// With returns a child logger carrying the given fields.
func (l *Logger) With(fields ...zap.Field) *Logger {
	if l == nil {
		return nil
	}
	z := l.z.With(fields...)
	return &Logger{z: z, sugar: z.Sugar(), verbose: l.verbose}
}

// Debug logs a formatted debug message.
func (l *Logger) Debug(format string, args ...any) {
	if l == nil {
		return
	}
	l.sugar.Debugf(format, args...)
}

// Info logs a formatted informational message.
func (l *Logger) Info(format string, args ...any) {
	if l == nil {
		return
	}
	l.sugar.Infof(format, args...)
}

// Warn logs a formatted warning.
func (l *Logger) Warn(format string, args ...any) {
	if l == nil {
		return
	}
	l.sugar.Warnf(format, args...)
}

// Section logs a section header at debug level.
func (l *Logger) Section(name string) {
	if l == nil {
		return
	}
	l.z.Debug(fmt.Sprintf("=== %s ===", name))
}

// Sync flushes buffered output.
func (l *Logger) Sync() error {
	if l == nil {
		return nil
	}
	return l.z.Sync()
}
