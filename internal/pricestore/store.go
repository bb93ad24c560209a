package pricestore

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"
)

// DB is the subset of pgxpool.Pool the store needs. Narrowed to an
// interface so tests can run without a live database.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Store reads and writes the stock_prices table. It is the only
// component that mutates the price series.
type Store struct {
	db        DB
	batchSize int
	logger    *slog.Logger
}

// New creates a Store. batchSize bounds each upsert chunk; values
// below 1 fall back to 100.
func New(db DB, batchSize int, logger *slog.Logger) *Store {
	if batchSize < 1 {
		batchSize = 100
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		db:        db,
		batchSize: batchSize,
		logger:    logger,
	}
}
