package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/remember-me/notification-engine/internal/app"
	"github.com/remember-me/notification-engine/internal/config"
	"github.com/remember-me/notification-engine/internal/domain"
	"github.com/remember-me/notification-engine/internal/infra/handler"
	"github.com/remember-me/notification-engine/internal/infra/notes"
	"github.com/remember-me/notification-engine/internal/infra/repository"
	"github.com/remember-me/notification-engine/internal/observability/logging"
	"github.com/remember-me/notification-engine/internal/observability/metrics"
	"github.com/remember-me/notification-engine/internal/observability/middleware"
	"github.com/remember-me/notification-engine/internal/scheduler"
)

// Version is stamped at build time.
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTelemetry, err := initTelemetry(ctx)
	if err != nil {
		slog.Error("failed to initialize telemetry", "error", err)
		return 1
	}
	defer shutdownTelemetry()

	db, err := initDatabase(cfg.Database)
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		return 1
	}

	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("failed to get underlying sql.DB", "error", err)
		return 1
	}

	publisher, err := initPublisher(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize publisher", "error", err)
		return 1
	}

	if publisher != nil {
		defer func() {
			if err := publisher.Close(); err != nil {
				slog.Warn("failed to close publisher", "error", err)
			}
		}()
	}

	clock := domain.NewSystemClock()
	distributor := domain.NewIntervalDistributor()
	calc := domain.NewNextFireCalculator(clock)

	scheduleRepo := repository.NewScheduleRepository(db)
	scheduleUseCase := app.NewScheduleUseCase(scheduleRepo, distributor, calc)
	scheduleHandler := handler.NewScheduleHandler(scheduleUseCase)

	notesClient := notes.NewClient(notes.ClientConfig{
		BaseURL: cfg.Notes.BaseURL,
		Timeout: cfg.Notes.Timeout,
	})

	sweep := scheduler.New(scheduleRepo, distributor, calc, notesClient, publisher, clock, scheduler.Config{
		SweepInterval: cfg.Scheduler.SweepInterval,
		BatchSize:     cfg.Scheduler.BatchSize,
		MaxInFlight:   cfg.Scheduler.MaxInFlight,
	})

	go sweep.Run(ctx)

	router := setupRouter(scheduleHandler)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "address", cfg.Server.Address())
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig.String())

		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", "error", err)
			return 1
		}

		if err := sqlDB.Close(); err != nil {
			slog.Error("failed to close database connection", "error", err)
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", "error", err)
		return 1
	}
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger:         logging.NewGormLogger(200*time.Millisecond, gormlogger.Info),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

func setupRouter(scheduleHandler *handler.ScheduleHandler) *gin.Engine {
	httpMetrics, err := metrics.NewHTTPMetrics("notification-engine")
	if err != nil {
		slog.Warn("failed to create HTTP metrics, continuing without", "error", err)
	}

	router := gin.New()
	router.Use(middleware.PanicRecoveryGin())
	router.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/ping"},
		Module:      logging.ModuleSchedule,
		TracerName:  "notification-engine",
		HTTPMetrics: httpMetrics,
	}))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	v1 := router.Group("/api/v1")
	scheduleHandler.RegisterRoutes(v1)

	return router
}
