//go:build notrace

package xmlwrap

// No-op implementations when built with -tags notrace

import (
	"context"
	"log/slog"
)

var nullLogger = slog.New(slog.DiscardHandler)

// WithTraceLogger is a no-op in notrace builds.
func WithTraceLogger(ctx context.Context, _ *slog.Logger) context.Context {
	return ctx
}

func getTraceLogFromContext(_ context.Context) *slog.Logger {
	return nullLogger
}
