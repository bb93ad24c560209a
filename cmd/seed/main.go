// Command seed populates the stocks table with the tracked TSX 60
// ticker universe. Rerunning it is safe: known tickers are counted as
// updates, not errors.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/mfortier/tsx-data/internal/config"
	"github.com/mfortier/tsx-data/internal/database"
	"github.com/mfortier/tsx-data/internal/registry"
	"github.com/mfortier/tsx-data/internal/version"
)

// tsx60 is the default universe, in registry ticker form (class
// shares use dots, no exchange suffix).
var tsx60 = []string{
	"AEM", "AQN", "ATD", "BMO", "BNS", "ABX", "BCE", "BAM",
	"BN", "BIP.UN", "CAE", "CCO", "CAR.UN", "CM", "CNR", "CNQ",
	"CP", "CTC.A", "CCL.B", "CVE", "GIB.A", "CSU", "DOL", "EMA",
	"ENB", "FM", "FSV", "FTS", "FNV", "WN", "GIL", "H", "IMO",
	"IFC", "K", "L", "MG", "MFC", "MRU", "NA", "NTR", "OTEX",
	"PPL", "POW", "QSR", "RCI.B", "RY", "SAP", "SHOP", "SLF",
	"SU", "TRP", "TECK.B", "T", "TRI", "TD", "TOU", "WCN",
	"WPM", "WSP",
}

func main() {
	configPath := flag.String("config", "configs/pipeline.yaml", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("seeding instrument registry",
		"version", version.Version,
		"config", *configPath,
	)

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	tickers := cfg.Seed.Tickers
	if len(tickers) == 0 {
		tickers = tsx60
	}

	ctx := context.Background()

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	reg := registry.New(pool, logger)

	res, err := reg.SeedInstruments(ctx, tickers)
	if err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}

	logger.Info("seed complete",
		"tickers", len(tickers),
		"inserted", res.Inserted,
		"updated", res.Updated,
	)
}
