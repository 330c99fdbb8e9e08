package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/riskibarqy/league-stats/internal/app"
	"github.com/riskibarqy/league-stats/internal/config"
	"github.com/riskibarqy/league-stats/internal/observability"
	"github.com/riskibarqy/league-stats/internal/platform/logging"
	"github.com/robfig/cron/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel).With("service", cfg.ServiceName+"-worker", "env", cfg.AppEnv)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	telemetry, err := observability.Start(cfg, observability.RoleWorker, logger)
	if err != nil {
		logger.Error("start telemetry", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}

	scheduler := cron.New(
		cron.WithLogger(cronLogger{logger: logger.Component("cron")}),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger: logger.Component("cron")})),
	)
	spec := "@every " + cfg.JobBatchInterval.String()
	if _, err := scheduler.AddFunc(spec, func() {
		if _, err := application.Jobs.RunBatch(ctx); err != nil {
			logger.Error("scheduled reconcile batch failed", "error", err)
		}
	}); err != nil {
		logger.Error("schedule reconcile batch", "spec", spec, "error", err)
		os.Exit(1)
	}
	scheduler.Start()
	logger.Info("reconcile batch scheduled", "spec", spec)

	var consumers sync.WaitGroup
	consumers.Add(1)
	go func() {
		defer consumers.Done()
		if err := application.Consumer().Consume(ctx, application.Jobs.HandleJob); err != nil {
			logger.Error("job consumer stopped", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("worker shutting down")

	<-scheduler.Stop().Done()
	consumers.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := application.Close(); err != nil {
		logger.Warn("close app resources", "error", err)
	}
	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown telemetry", "error", err)
	}

	logger.Info("worker stopped")
}

// cronLogger adapts the service logger to cron.Logger.
type cronLogger struct {
	logger *logging.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
