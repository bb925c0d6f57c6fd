package logger

import (
	"context"
	"log/slog"
)

type contextKey struct{}

// WithLogger returns a copy of ctx carrying l.
// Panics if l is nil, since a nil logger in context is always a wiring bug.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	if l == nil {
		// ALLOW-PANIC: programming error
		panic("logger: nil logger passed to WithLogger")
	}
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext returns the logger stored in ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	return FromContextOrDefault(ctx, slog.Default())
}

// FromContextOrDefault returns the logger stored in ctx, or def when the
// context is nil or carries no logger.
func FromContextOrDefault(ctx context.Context, def *slog.Logger) *slog.Logger {
	if l, ok := fromContext(ctx); ok {
		return l
	}
	return def
}

// FromContextWithComponent is FromContextOrDefault for a component that
// keeps its own logger: a logger found in ctx is tagged with the component
// attribute, while def is returned as is and should already carry it.
func FromContextWithComponent(ctx context.Context, def *slog.Logger, component string) *slog.Logger {
	if l, ok := fromContext(ctx); ok {
		return l.With(slog.String("component", component))
	}
	return def
}

func fromContext(ctx context.Context) (*slog.Logger, bool) {
	if ctx == nil {
		return nil, false
	}
	l, ok := ctx.Value(contextKey{}).(*slog.Logger)
	return l, ok && l != nil
}
