// Package ctxlog carries a slog.Logger through context.Context so that
// deeply nested compilation code can log without threading a logger
// argument through every call.
package ctxlog

import (
	"context"
	"log/slog"
)

// key is an unexported type so no other package can collide with our
// context key.
type key struct{}

var loggerKey = key{}

// WithLogger returns a child context carrying the provided logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from ctx. When no logger was attached
// it falls back to slog.Default: compilation code must keep working (and
// keep quiet-by-default) when invoked as a plain library.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
