//go:build gcloud

package main

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/remember-me/notification-engine/internal/config"
	"github.com/remember-me/notification-engine/internal/infra/pubsub"
	"github.com/remember-me/notification-engine/internal/observability/logging"
	"github.com/remember-me/notification-engine/internal/observability/metrics"
	"github.com/remember-me/notification-engine/internal/observability/tracing"
)

func initPublisher(ctx context.Context, cfg *config.Config) (pubsub.Publisher, error) {
	if err := cfg.PubSub.Validate(); err != nil {
		return nil, err
	}

	publisher, err := pubsub.NewGCloudPublisher(ctx, pubsub.GCloudPublisherConfig{
		ProjectID: cfg.PubSub.GCloudProjectID,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Google Cloud Pub/Sub publisher initialized",
		"project_id", cfg.PubSub.GCloudProjectID,
	)

	return publisher, nil
}

func initTelemetry(ctx context.Context) (func(), error) {
	serviceName := os.Getenv("K_SERVICE")
	if serviceName == "" {
		serviceName = "notification-engine"
	}

	env := os.Getenv("ENV")
	if env == "" {
		env = "prod"
	}

	tracerProvider, err := tracing.NewProvider(ctx, tracing.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
	})
	if err != nil {
		return nil, err
	}

	tracerProvider.SetGlobal()

	meterProvider, err := metrics.NewProvider(ctx, metrics.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
	})
	if err != nil {
		return nil, err
	}

	meterProvider.SetGlobal()

	return func() {
		shutdownCtx := context.Background()

		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			slog.Warn("failed to shutdown tracer provider", "error", err)
		}

		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			slog.Warn("failed to shutdown meter provider", "error", err)
		}
	}, nil
}

func setupLogger(cfg *config.Config) {
	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		projectID = os.Getenv("GCLOUD_PROJECT_ID")
	}

	slog.SetDefault(slog.New(logging.NewGCloudHandler(projectID, logLevel(cfg.Log))))
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
