package pricestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/mfortier/tsx-data/internal/model"
)

// Boundary row queries for the metrics calculator. close_price comes
// back as text so the numeric survives the round trip exactly.

// FirstCloseOnOrAfter returns the earliest price point for the
// instrument with date >= from. found is false when the instrument has
// no rows in range; that is not an error.
func (s *Store) FirstCloseOnOrAfter(ctx context.Context, instrumentID int64, from time.Time) (model.PricePoint, bool, error) {
	return s.boundaryRow(ctx, `
		SELECT date, close_price::text
		FROM stock_prices
		WHERE company_id = $1 AND date >= $2
		ORDER BY date ASC
		LIMIT 1
	`, instrumentID, from)
}

// LatestClose returns the most recent price point for the instrument.
func (s *Store) LatestClose(ctx context.Context, instrumentID int64) (model.PricePoint, bool, error) {
	return s.boundaryRow(ctx, `
		SELECT date, close_price::text
		FROM stock_prices
		WHERE company_id = $1
		ORDER BY date DESC
		LIMIT 1
	`, instrumentID)
}

func (s *Store) boundaryRow(ctx context.Context, sql string, instrumentID int64, args ...any) (model.PricePoint, bool, error) {
	queryArgs := append([]any{instrumentID}, args...)

	var (
		date      time.Time
		closeText string
	)
	err := s.db.QueryRow(ctx, sql, queryArgs...).Scan(&date, &closeText)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.PricePoint{}, false, nil
	}
	if err != nil {
		return model.PricePoint{}, false, fmt.Errorf("boundary query for instrument %d: %w", instrumentID, err)
	}

	price, err := decimal.NewFromString(closeText)
	if err != nil {
		return model.PricePoint{}, false, fmt.Errorf("parse close_price %q: %w", closeText, err)
	}

	return model.PricePoint{
		InstrumentID: instrumentID,
		Date:         model.Day(date),
		Close:        price,
	}, true, nil
}
