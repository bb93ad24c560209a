package registry

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// SeedResult reports per-row outcomes of a seeding pass. The store
// layer decides inserted-vs-existing itself; callers never inspect
// error text for constraint names.
type SeedResult struct {
	Inserted int
	Updated  int
}

// seedSQL re-asserts the ticker so existing rows are touched (and
// report as updates) instead of erroring on the uniqueness constraint.
const seedSQL = `
	INSERT INTO stocks (ticker)
	VALUES ($1)
	ON CONFLICT (ticker)
	DO UPDATE SET ticker = EXCLUDED.ticker
	RETURNING (xmax = 0) AS inserted
`

// SeedInstruments upserts the ticker universe in one batch round trip.
// Re-running the seed is harmless: already-known tickers count as
// updates and no duplicates appear.
func (s *Store) SeedInstruments(ctx context.Context, tickers []string) (SeedResult, error) {
	var res SeedResult
	if len(tickers) == 0 {
		return res, nil
	}

	batch := &pgx.Batch{}
	for _, ticker := range tickers {
		batch.Queue(seedSQL, ticker)
	}

	results := s.db.SendBatch(ctx, batch)
	defer results.Close()

	for range tickers {
		var fresh bool
		if err := results.QueryRow().Scan(&fresh); err != nil {
			return res, err
		}
		if fresh {
			res.Inserted++
		} else {
			res.Updated++
		}
	}

	return res, nil
}
