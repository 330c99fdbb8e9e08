// Command scrape runs one reconcile cycle for a source and prints the counts.
//
//	scrape <platform> <url>
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/league-stats/internal/app"
	"github.com/riskibarqy/league-stats/internal/config"
	"github.com/riskibarqy/league-stats/internal/platform/logging"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s <platform> <url>\n", filepath.Base(os.Args[0]))
		os.Exit(2)
	}
	platform, locator := os.Args[1], os.Args[2]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSONWriter(os.Stderr, cfg.LogLevel).With("service", cfg.ServiceName+"-scrape")
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}
	defer func() { _ = application.Close() }()

	result, err := application.Reconciler.ReconcileLeague(ctx, platform, locator)
	if err != nil {
		logger.Error("reconcile failed", "platform", platform, "url", locator, "registered_platforms", application.Registry.Platforms(), "error", err)
		os.Exit(1)
	}

	if err := sonic.ConfigDefault.NewEncoder(os.Stdout).Encode(result); err != nil {
		logger.Error("write result", "error", err)
		os.Exit(1)
	}
}
