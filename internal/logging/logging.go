// Package logging builds the charmbracelet loggers shared by the CLI, the
// stager and the live bridge, and carries them through context.Context.
package logging

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

// New creates a logger with "HH:MM:SS.ms" timestamps that filters messages
// below level.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// Discard returns a logger that drops everything. Library packages fall back
// to it when the caller does not supply one.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// WithPrefix returns l scoped with prefix, or a discarding logger when l is nil.
func WithPrefix(l *log.Logger, prefix string) *log.Logger {
	if l == nil {
		return Discard()
	}
	return l.WithPrefix(prefix)
}

type ctxKey int

const loggerKey ctxKey = 0

// WithLogger returns a copy of ctx carrying l.
func WithLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the logger stored in ctx, or log.Default().
func FromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
