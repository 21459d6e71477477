package logger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/smithy-go/logging"
)

// SmithyLogger forwards AWS SDK log output to a slog logger.
// Warnings are logged at warn level, everything else at debug.
type SmithyLogger struct {
	log *slog.Logger
	ctx context.Context
}

// NewSmithyLogger wraps log as a smithy-go logging.Logger.
func NewSmithyLogger(log *slog.Logger) *SmithyLogger {
	return &SmithyLogger{log: log, ctx: context.Background()}
}

// Logf implements logging.Logger.
func (l *SmithyLogger) Logf(classification logging.Classification, format string, v ...interface{}) {
	level := slog.LevelDebug
	if classification == logging.Warn {
		level = slog.LevelWarn
	}
	l.log.Log(l.ctx, level, fmt.Sprintf(format, v...), slog.String("source", "aws-sdk"))
}

// WithContext implements logging.ContextLogger so SDK log lines keep the
// request-scoped attributes of the calling operation.
func (l *SmithyLogger) WithContext(ctx context.Context) logging.Logger {
	return &SmithyLogger{log: l.log, ctx: ctx}
}

var (
	_ logging.Logger        = (*SmithyLogger)(nil)
	_ logging.ContextLogger = (*SmithyLogger)(nil)
)
