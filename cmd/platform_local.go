//go:build !gcloud

package main

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/remember-me/notification-engine/internal/config"
	"github.com/remember-me/notification-engine/internal/infra/pubsub"
)

func initPublisher(ctx context.Context, cfg *config.Config) (pubsub.Publisher, error) {
	if cfg.PubSub.NatsURL == "" {
		slog.Warn("NATS_URL not set, event publishing disabled")
		return nil, nil
	}

	publisher, err := pubsub.NewNATSPublisherWithStream(ctx, pubsub.NATSPublisherConfig{
		URL: cfg.PubSub.NatsURL,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("NATS publisher initialized", "url", cfg.PubSub.NatsURL)
	return publisher, nil
}

func initTelemetry(ctx context.Context) (func(), error) {
	// Local builds run without exporters; the otel globals stay no-op.
	return func() {}, nil
}

func setupLogger(cfg *config.Config) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(cfg.Log)})
	slog.SetDefault(slog.New(handler))
}

func logLevel(cfg config.LogConfig) slog.Level {
	switch strings.ToLower(cfg.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
