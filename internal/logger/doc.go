// Package logger builds the slog loggers used by the S3 client and the dws3
// command.
//
// Loggers are JSON (or text) slog loggers wrapped in a LogHandlerDecorator
// that injects request-scoped attributes, such as the request ID of an
// in-flight S3 call, from the context passed to each log call:
//
//	log := logger.New(os.Stderr, slog.LevelDebug, logger.RequestIDExtractor)
//	ctx := logger.WithRequestID(context.Background(), "2f0c...")
//	log.DebugContext(ctx, "s3 request", slog.String("bucket", "photos"))
//	// {"level":"DEBUG","msg":"s3 request","bucket":"photos","request_id":"2f0c..."}
//
// NewSmithyLogger adapts a slog logger to the smithy-go logging interface so
// the AWS SDK clients used for presigning log through the same handler.
package logger
