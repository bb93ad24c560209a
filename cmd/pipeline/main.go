package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mfortier/tsx-data/internal/config"
	"github.com/mfortier/tsx-data/internal/database"
	"github.com/mfortier/tsx-data/internal/marketdata"
	"github.com/mfortier/tsx-data/internal/metrics"
	"github.com/mfortier/tsx-data/internal/pipeline"
	"github.com/mfortier/tsx-data/internal/pricestore"
	"github.com/mfortier/tsx-data/internal/registry"
	"github.com/mfortier/tsx-data/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/pipeline.yaml", "path to config file")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("starting price pipeline",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Connect to database
	logger.Info("connecting to database",
		"host", cfg.Database.Host,
		"port", cfg.Database.Port,
		"database", cfg.Database.Name,
	)

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Wire up the run
	client := marketdata.NewClient(
		cfg.Provider.BaseURL,
		marketdata.WithLogger(logger),
		marketdata.WithTimeout(cfg.Provider.Timeout.Std()),
		marketdata.WithRetries(cfg.Provider.MaxRetries, time.Second),
	)

	reg := registry.New(pool, logger)
	prices := pricestore.New(pool, cfg.Pipeline.BatchSize, logger)
	calc := metrics.NewCalculator(prices, cfg.YearStartDate())

	p := pipeline.New(pipeline.Config{
		YearStart:  cfg.YearStartDate(),
		FetchDelay: cfg.Pipeline.FetchDelay.Std(),
	}, reg, client, prices, calc, reg, logger)

	stats, err := p.Run(ctx)
	if err != nil {
		// Only an unreadable registry or external termination lands
		// here; per-instrument failures are inside stats.
		logger.Error("pipeline run failed", "error", err)
		os.Exit(1)
	}

	fmt.Print(stats.Summary())
}
