package observability_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/depotstat/pkg/observability"
)

func TestRunHandler_InjectsTraceContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := observability.NewLogger(&buf, observability.Config{
		ServiceName: "depotstat",
		Command:     "scenes",
		LogLevel:    slog.LevelDebug,
		LogJSON:     true,
	})

	traceID, err := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	require.NoError(t, err)

	spanID, err := trace.SpanIDFromHex("0102030405060708")
	require.NoError(t, err)

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	logger.InfoContext(ctx, "scan started")

	var record map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))

	assert.Equal(t, "0102030405060708090a0b0c0d0e0f10", record["trace_id"])
	assert.Equal(t, "0102030405060708", record["span_id"])
	assert.Equal(t, "depotstat", record["service"])
	assert.Equal(t, "scenes", record["command"])
}

func TestRunHandler_NoTraceContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := observability.NewLogger(&buf, observability.Config{LogJSON: true})
	logger.Info("no span")

	var record map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))

	_, hasTraceID := record["trace_id"]
	assert.False(t, hasTraceID)
	assert.Equal(t, "depotstat", record["service"])

	_, hasCommand := record["command"]
	assert.False(t, hasCommand)
}

func TestRunHandler_WithGroup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := observability.NewLogger(&buf, observability.Config{LogJSON: true}).WithGroup("walk")
	logger.Info("skipped", "path", "a/b")

	var record map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))

	assert.Equal(t, "depotstat", record["service"])

	group, ok := record["walk"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "a/b", group["path"])
}

func TestNewLogger_LevelFilter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := observability.NewLogger(&buf, observability.Config{LogLevel: slog.LevelWarn})
	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "", want: slog.LevelInfo},
		{in: "INFO", want: slog.LevelInfo},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := observability.ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := observability.ParseLevel("loud")
	require.ErrorIs(t, err, observability.ErrUnknownLevel)
}
