package observability

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

const (
	attrTraceID = "trace_id"
	attrSpanID  = "span_id"
	attrService = "service"
	attrCommand = "command"
)

// RunHandler is an [slog.Handler] that stamps every record with the trace and
// span of the current run so that all lines from one invocation can be
// correlated. Service and command attributes are pre-attached at construction.
type RunHandler struct {
	inner slog.Handler
}

// NewRunHandler wraps inner with run correlation attributes.
func NewRunHandler(inner slog.Handler, service, command string) *RunHandler {
	attrs := []slog.Attr{slog.String(attrService, service)}

	if command != "" {
		attrs = append(attrs, slog.String(attrCommand, command))
	}

	return &RunHandler{inner: inner.WithAttrs(attrs)}
}

// Enabled delegates to the inner handler.
func (h *RunHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle adds the span context, then delegates.
func (h *RunHandler) Handle(ctx context.Context, record slog.Record) error {
	sc := trace.SpanContextFromContext(ctx)
	if sc.IsValid() {
		record.AddAttrs(
			slog.String(attrTraceID, sc.TraceID().String()),
			slog.String(attrSpanID, sc.SpanID().String()),
		)
	}

	err := h.inner.Handle(ctx, record)
	if err != nil {
		return fmt.Errorf("run handler: %w", err)
	}

	return nil
}

// WithAttrs returns a RunHandler with additional attributes.
func (h *RunHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &RunHandler{inner: h.inner.WithAttrs(attrs)}
}

// WithGroup returns a RunHandler with a group prefix.
func (h *RunHandler) WithGroup(name string) slog.Handler {
	return &RunHandler{inner: h.inner.WithGroup(name)}
}

// NewLogger builds a text or JSON logger writing to w.
func NewLogger(w io.Writer, cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}

	var inner slog.Handler
	if cfg.LogJSON {
		inner = slog.NewJSONHandler(w, opts)
	} else {
		inner = slog.NewTextHandler(w, opts)
	}

	service := cfg.ServiceName
	if service == "" {
		service = defaultServiceName
	}

	return slog.New(NewRunHandler(inner, service, cfg.Command))
}
