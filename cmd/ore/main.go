package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"ore/internal/auth"
	"ore/internal/backend"
	"ore/internal/cli"
	apphttp "ore/internal/http"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	logger.Info("Starting ore server", "port", cfg.Port, "backend", cfg.DataBackend)

	factory := backend.NewFactory(logger)
	result, err := factory.CreateBackend(context.Background(), backend.Config{
		Type:         backend.BackendType(cfg.DataBackend),
		SQLiteDBPath: cfg.SQLiteDBPath,
		AMQPURL:      cfg.AMQPURL,
		AMQPExchange: cfg.AMQPExchange,
		AMQPQueue:    cfg.AMQPQueue,
	})
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}

	sessions := auth.NewSessions(cfg.AdminUser, cfg.AdminPasswordHash, cfg.SessionTTL)
	if !sessions.Enabled() {
		logger.Warn("No ADMIN_PASSWORD_HASH configured, mutating routes are open")
	}

	srv := apphttp.NewServer(":"+cfg.Port, result.Backend, sessions, apphttp.ReportConfig{
		HoursPerDay: cfg.HoursPerDay,
		Granularity: cfg.DayGranularity,
	})

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		if result.Cleanup != nil {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup error", "error", err)
			}
		}
	})

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
