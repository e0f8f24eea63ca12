//go:build gcloud

package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/trace"
)

// NewGCloudHandler returns a slog handler emitting Cloud Logging compatible
// JSON: severity instead of level, and trace correlation attrs when a span
// is active.
func NewGCloudHandler(projectID string, level slog.Level) slog.Handler {
	base := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				a.Key = "severity"
			}

			if a.Key == slog.MessageKey {
				a.Key = "message"
			}

			return a
		},
	})

	return &gcloudHandler{base: base, projectID: projectID}
}

type gcloudHandler struct {
	base      slog.Handler
	projectID string
}

func (h *gcloudHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

func (h *gcloudHandler) Handle(ctx context.Context, record slog.Record) error {
	record.AddAttrs(gcpTraceAttrs(ctx, h.projectID)...)

	if requestID := RequestIDFromContext(ctx); requestID != "" {
		record.AddAttrs(slog.String("request_id", requestID))
	}

	if module := ModuleFromContext(ctx); module != "" {
		record.AddAttrs(slog.String("module", string(module)))
	}

	return h.base.Handle(ctx, record)
}

func (h *gcloudHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &gcloudHandler{base: h.base.WithAttrs(attrs), projectID: h.projectID}
}

func (h *gcloudHandler) WithGroup(name string) slog.Handler {
	return &gcloudHandler{base: h.base.WithGroup(name), projectID: h.projectID}
}

func gcpTraceAttrs(ctx context.Context, projectID string) []slog.Attr {
	if projectID == "" {
		return nil
	}

	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return nil
	}

	sc := span.SpanContext()

	return []slog.Attr{
		slog.String("logging.googleapis.com/trace",
			fmt.Sprintf("projects/%s/traces/%s", projectID, sc.TraceID().String())),
		slog.String("logging.googleapis.com/spanId", sc.SpanID().String()),
		slog.Bool("logging.googleapis.com/trace_sampled", sc.IsSampled()),
	}
}
