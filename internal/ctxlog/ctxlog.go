// Package ctxlog provides a context-carried logrus logger.
//
// Commands log through the entry stored in their context so that fields
// attached higher up (alias, backend, command) follow every message. Logs
// are written to stderr, never to stdout, which belongs to the child
// processes sacr runs.
package ctxlog

import (
	"context"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type loggerKey struct{}

// LevelEnv is the environment variable read for the default log level.
const LevelEnv = "SACR_LOG_LEVEL"

// DefaultLogger is used when no logger has been stored in the context.
var DefaultLogger = newDefaultLogger()

func newDefaultLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	logger.SetLevel(ParseLevel(os.Getenv(LevelEnv)))
	return logger
}

// New returns a copy of ctx carrying entry. A nil entry stores the default logger.
func New(ctx context.Context, entry *logrus.Entry) context.Context {
	if entry == nil {
		entry = logrus.NewEntry(DefaultLogger)
	}
	return context.WithValue(ctx, loggerKey{}, entry)
}

// Logger returns the entry from the context, or one backed by DefaultLogger.
func Logger(ctx context.Context) *logrus.Entry {
	entry, ok := ctx.Value(loggerKey{}).(*logrus.Entry)
	if !ok || entry == nil {
		return logrus.NewEntry(DefaultLogger)
	}
	return entry
}

// With returns a copy of ctx whose logger carries the extra fields.
func With(ctx context.Context, fields logrus.Fields) context.Context {
	return New(ctx, Logger(ctx).WithFields(fields))
}

// Debug logs a debug message with the given context.
func Debug(ctx context.Context, msg string, fields ...logrus.Fields) {
	withFields(ctx, fields).Debug(msg)
}

// Info logs an info message with the given context.
func Info(ctx context.Context, msg string, fields ...logrus.Fields) {
	withFields(ctx, fields).Info(msg)
}

// Warn logs a warning message with the given context.
func Warn(ctx context.Context, msg string, fields ...logrus.Fields) {
	withFields(ctx, fields).Warn(msg)
}

// Error logs an error message with the given context.
func Error(ctx context.Context, msg string, fields ...logrus.Fields) {
	withFields(ctx, fields).Error(msg)
}

func withFields(ctx context.Context, fields []logrus.Fields) *logrus.Entry {
	entry := Logger(ctx)
	for _, f := range fields {
		entry = entry.WithFields(f)
	}
	return entry
}

// ParseLevel maps a level name to a logrus level. Unknown or empty names give WarnLevel.
func ParseLevel(s string) logrus.Level {
	level, err := logrus.ParseLevel(strings.TrimSpace(s))
	if err != nil {
		return logrus.WarnLevel
	}
	return level
}
