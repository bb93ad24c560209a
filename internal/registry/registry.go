package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mfortier/tsx-data/internal/model"
)

// DB is the subset of pgxpool.Pool the registry store needs.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Store reads the instrument registry (stocks table) and writes the
// derived metrics fields back onto it. Instrument identity rows are
// owned by the seeding process; only the snapshot columns are mutated
// here.
type Store struct {
	db     DB
	logger *slog.Logger
}

// New creates a registry Store.
func New(db DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}
}

// ListInstruments returns every tracked instrument in id order, so
// sweeps over the universe are deterministic run to run. An error here
// means the registry is unreadable, which is fatal to a pipeline run.
func (s *Store) ListInstruments(ctx context.Context) ([]model.Instrument, error) {
	rows, err := s.db.Query(ctx, `SELECT id, ticker FROM stocks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list instruments: %w", err)
	}
	defer rows.Close()

	var instruments []model.Instrument
	for rows.Next() {
		var inst model.Instrument
		if err := rows.Scan(&inst.ID, &inst.Ticker); err != nil {
			return nil, fmt.Errorf("scan instrument: %w", err)
		}
		instruments = append(instruments, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list instruments: %w", err)
	}

	return instruments, nil
}

// UpdateMetrics persists a snapshot onto the instrument row, keyed by
// id. Decimal prices are sent as text so the numeric columns receive
// exact values.
func (s *Store) UpdateMetrics(ctx context.Context, instrumentID int64, snap model.MetricsSnapshot) error {
	ct, err := s.db.Exec(ctx, `
		UPDATE stocks
		SET ytd_return = $2,
		    current_price = $3,
		    first_price_2025 = $4,
		    price_updated_at = $5
		WHERE id = $1
	`, instrumentID, snap.YTDReturn, snap.Current.String(), snap.FirstOfYear.String(), snap.ComputedAt)
	if err != nil {
		return fmt.Errorf("update metrics for instrument %d: %w", instrumentID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("update metrics: instrument %d not found", instrumentID)
	}
	return nil
}
