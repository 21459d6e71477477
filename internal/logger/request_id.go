package logger

import (
	"context"
	"log/slog"
)

type requestIDKey struct{}

// WithRequestID returns a copy of ctx carrying the given request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request ID stored in ctx, if any.
func RequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

// RequestIDExtractor adds a request_id attribute when ctx carries one.
func RequestIDExtractor(ctx context.Context) (slog.Attr, bool) {
	if id, ok := RequestID(ctx); ok {
		return slog.String("request_id", id), true
	}
	return slog.Attr{}, false
}
