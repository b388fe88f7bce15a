package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/NachoSamo/SamoScore/internal/app"
	"github.com/NachoSamo/SamoScore/internal/config"
	"github.com/NachoSamo/SamoScore/internal/observability"
	"github.com/NachoSamo/SamoScore/internal/platform/logging"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	baseLogger := logging.New(cfg.LogLevel, os.Stdout, cfg.LogFile)
	logger, shutdownBetterStack, err := observability.InitBetterStackLogger(cfg, baseLogger)
	if err != nil {
		baseLogger.Error("init better stack logger", "error", err)
		os.Exit(1)
	}
	logger = logger.With("service", cfg.ServiceName, "env", cfg.AppEnv)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	telemetry, err := observability.StartTelemetry(cfg, logger)
	if err != nil {
		logger.Error("start telemetry", "error", err)
		os.Exit(1)
	}

	srv, err := app.NewHTTPServer(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}

	exitCode := 0
	if err := srv.Run(ctx); err != nil {
		logger.Error("http server stopped with error", "error", err)
		exitCode = 1
	}
	srv.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown telemetry", "error", err)
	}
	if err := shutdownBetterStack(shutdownCtx); err != nil {
		logger.Warn("shutdown better stack", "error", err)
	}

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
