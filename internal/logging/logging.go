// Package logging builds the stderr logger shared by all git-cc commands.
package logging

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to w at the named level. Unknown level names
// fall back to warn.
func New(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.WarnLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "git-cc",
		Level:  lvl,
	})
}

// WithContext stores logger in ctx.
func WithContext(ctx context.Context, logger *log.Logger) context.Context {
	return log.WithContext(ctx, logger)
}

// FromContext returns the logger stored in ctx, or a discard logger.
func FromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return Discard()
	}
	if logger, ok := ctx.Value(log.ContextKey).(*log.Logger); ok && logger != nil {
		return logger
	}
	return Discard()
}

// Discard returns a logger that writes nothing.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
