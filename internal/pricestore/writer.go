package pricestore

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mfortier/tsx-data/internal/model"
)

// upsertSQL resolves the (company_id, date) uniqueness constraint in a
// single atomic statement, last writer wins. RETURNING (xmax = 0)
// distinguishes a fresh insert from an overwrite without parsing error
// text.
const upsertSQL = `
	INSERT INTO stock_prices (company_id, date, close_price)
	VALUES ($1, $2, $3)
	ON CONFLICT (company_id, date)
	DO UPDATE SET close_price = EXCLUDED.close_price
	RETURNING (xmax = 0) AS inserted
`

// WriteStats summarizes one UpsertBatch call.
type WriteStats struct {
	Points       int   // input rows
	Chunks       int   // chunks attempted
	FailedChunks int   // chunks that errored (rows in them not written)
	Inserted     int64 // rows newly inserted
	Updated      int64 // rows that overwrote an existing (company_id, date)
}

// UpsertBatch writes the points in bounded chunks. A chunk failure is
// logged and counted, and the remaining chunks still run: the guarantee
// is at-least-one-successful-chunk delivery, not all-or-nothing.
// Committed chunks are never rolled back.
func (s *Store) UpsertBatch(ctx context.Context, points []model.PricePoint) WriteStats {
	stats := WriteStats{Points: len(points)}
	if len(points) == 0 {
		return stats
	}

	for _, chunk := range chunkPoints(points, s.batchSize) {
		stats.Chunks++

		start := time.Now()
		inserted, updated, err := s.upsertChunk(ctx, chunk)
		if err != nil {
			s.logger.Error("upsert chunk failed",
				"chunk", stats.Chunks,
				"rows", len(chunk),
				"error", err,
			)
			stats.FailedChunks++
			continue
		}

		stats.Inserted += inserted
		stats.Updated += updated

		s.logger.Debug("upserted chunk",
			"chunk", stats.Chunks,
			"rows", len(chunk),
			"inserted", inserted,
			"updated", updated,
			"duration", time.Since(start),
		)
	}

	return stats
}

// upsertChunk writes one chunk as a single pgx batch round trip.
func (s *Store) upsertChunk(ctx context.Context, chunk []model.PricePoint) (inserted, updated int64, err error) {
	batch := &pgx.Batch{}
	for _, p := range chunk {
		batch.Queue(upsertSQL, p.InstrumentID, p.Date, p.Close.String())
	}

	results := s.db.SendBatch(ctx, batch)
	defer results.Close()

	for range chunk {
		var fresh bool
		if err := results.QueryRow().Scan(&fresh); err != nil {
			return 0, 0, err
		}
		if fresh {
			inserted++
		} else {
			updated++
		}
	}

	return inserted, updated, nil
}

// chunkPoints splits points into ceil(len/size) slices of at most size.
func chunkPoints(points []model.PricePoint, size int) [][]model.PricePoint {
	chunks := make([][]model.PricePoint, 0, (len(points)+size-1)/size)
	for start := 0; start < len(points); start += size {
		end := start + size
		if end > len(points) {
			end = len(points)
		}
		chunks = append(chunks, points[start:end])
	}
	return chunks
}
