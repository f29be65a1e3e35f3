// Package ctxlog provides a context key for safely passing a zap.Logger
// instance through context.Context.
package ctxlog

import (
	"context"

	"go.uber.org/zap"
)

// key is an unexported type to prevent collisions with context keys from other packages.
type key struct{}

// loggerKey is the key for the zap.Logger in a context.Context.
var loggerKey = key{}

// WithLogger returns a new context with the provided logger embedded.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the zap.Logger from a context. If no logger is
// found, it returns the global logger, which is a no-op unless replaced.
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok && logger != nil {
		return logger
	}
	return zap.L()
}
