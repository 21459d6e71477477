package logger

import (
	"io"
	"log/slog"
)

// New creates a JSON-formatted logger writing to w at the given level.
func New(w io.Writer, level slog.Leveler, extractors ...ContextExtractor) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewLogHandlerDecorator(h, extractors...))
}

// NewText creates a human-readable logger, used by the command-line tool.
func NewText(w io.Writer, level slog.Leveler, extractors ...ContextExtractor) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewLogHandlerDecorator(h, extractors...))
}

// NewNope creates a no-op logger that discards all output.
// Use this as a default when logging is not configured.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
