package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/aws/smithy-go/logging"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	t.Run("adds request id from context", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := New(&buf, slog.LevelDebug, RequestIDExtractor)

		ctx := WithRequestID(context.Background(), "req-1")
		log.DebugContext(ctx, "s3 request")

		line := decodeLine(t, &buf)
		require.Equal(t, "req-1", line["request_id"])
		require.Equal(t, "s3 request", line["msg"])
	})

	t.Run("skips attribute without request id", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := New(&buf, slog.LevelInfo, RequestIDExtractor)

		log.InfoContext(context.Background(), "no id")

		line := decodeLine(t, &buf)
		require.NotContains(t, line, "request_id")
	})

	t.Run("empty id is ignored", func(t *testing.T) {
		t.Parallel()
		_, ok := RequestID(WithRequestID(context.Background(), ""))
		require.False(t, ok)
	})
}

func TestLogHandlerDecorator(t *testing.T) {
	t.Parallel()

	t.Run("nil extractors are dropped", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		h := NewLogHandlerDecorator(slog.NewJSONHandler(&buf, nil), nil, RequestIDExtractor, nil)
		require.Len(t, h.(*LogHandlerDecorator).extractors, 1)
	})

	t.Run("attrs and groups keep extractors", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := New(&buf, slog.LevelInfo, RequestIDExtractor).With(slog.String("component", "s3client"))

		log.InfoContext(WithRequestID(context.Background(), "req-2"), "done")

		line := decodeLine(t, &buf)
		require.Equal(t, "s3client", line["component"])
		require.Equal(t, "req-2", line["request_id"])
	})

	t.Run("without extractors passes records through", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := New(&buf, slog.LevelInfo)

		log.InfoContext(WithRequestID(context.Background(), "req-3"), "plain")

		line := decodeLine(t, &buf)
		require.Equal(t, "plain", line["msg"])
		require.NotContains(t, line, "request_id")
	})

	t.Run("respects level", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := New(&buf, slog.LevelWarn)
		log.Info("dropped")
		require.Zero(t, buf.Len())
	})
}

func TestNewNope(t *testing.T) {
	t.Parallel()
	log := NewNope()
	require.NotNil(t, log)
	log.Error("discarded")
}

func TestSmithyLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := New(&buf, slog.LevelDebug, RequestIDExtractor)
	sl := NewSmithyLogger(base).WithContext(WithRequestID(context.Background(), "req-3"))

	sl.Logf(logging.Warn, "retrying %s", "PutObject")

	line := decodeLine(t, &buf)
	require.Equal(t, "WARN", line["level"])
	require.Equal(t, "retrying PutObject", line["msg"])
	require.Equal(t, "aws-sdk", line["source"])
	require.Equal(t, "req-3", line["request_id"])
}
