package logger

import (
	"context"
	"log/slog"
)

type contextKey struct{}

// Into stores a logger on the context for downstream handlers.
func Into(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// With derives a context whose logger carries the given attrs, so
// request-scoped fields like the trace id follow the request down.
func With(ctx context.Context, args ...any) context.Context {
	return Into(ctx, From(ctx).With(args...))
}

// From returns the context's logger, falling back to the process-wide
// one when the context carries none.
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return l
	}
	return LoggerWrapper()
}
