package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mfortier/tsx-data/internal/marketdata"
	"github.com/mfortier/tsx-data/internal/model"
	"github.com/mfortier/tsx-data/internal/pricestore"
)

// InstrumentSource lists the tracked universe. *registry.Store
// satisfies it.
type InstrumentSource interface {
	ListInstruments(ctx context.Context) ([]model.Instrument, error)
}

// HistoryFetcher fetches one ticker's daily closes. *marketdata.Client
// satisfies it.
type HistoryFetcher interface {
	FetchDailyHistory(ctx context.Context, ticker string, start, end time.Time) ([]marketdata.Bar, error)
}

// PriceWriter persists accumulated price points. *pricestore.Store
// satisfies it.
type PriceWriter interface {
	UpsertBatch(ctx context.Context, points []model.PricePoint) pricestore.WriteStats
}

// SnapshotComputer derives one instrument's metrics. *metrics.Calculator
// satisfies it.
type SnapshotComputer interface {
	Compute(ctx context.Context, instrumentID int64) (model.MetricsSnapshot, bool, error)
}

// MetricsSink persists a snapshot onto the instrument record.
// *registry.Store satisfies it.
type MetricsSink interface {
	UpdateMetrics(ctx context.Context, instrumentID int64, snap model.MetricsSnapshot) error
}

// Config holds the orchestration knobs for one run.
type Config struct {
	// YearStart anchors both the fetch range and the YTD boundary.
	YearStart time.Time

	// FetchDelay is the pause between per-instrument provider calls,
	// sized to the provider's request-rate budget. It applies between
	// instruments only, never within one instrument's rows.
	FetchDelay time.Duration

	// Now supplies the end of the fetch range; defaults to time.Now.
	Now func() time.Time
}

// Pipeline drives one fetch-all, write-all, recompute-metrics sweep
// over the instrument universe. Everything is synchronous on one
// logical thread: the provider's rate budget makes fan-out pointless
// at this universe size.
type Pipeline struct {
	cfg      Config
	registry InstrumentSource
	fetcher  HistoryFetcher
	writer   PriceWriter
	calc     SnapshotComputer
	sink     MetricsSink
	logger   *slog.Logger
}

// New creates a Pipeline.
func New(cfg Config, registry InstrumentSource, fetcher HistoryFetcher, writer PriceWriter, calc SnapshotComputer, sink MetricsSink, logger *slog.Logger) *Pipeline {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		cfg:      cfg,
		registry: registry,
		fetcher:  fetcher,
		writer:   writer,
		calc:     calc,
		sink:     sink,
		logger:   logger,
	}
}

// Run executes one full sweep and returns its statistics. Per-item
// failures are folded into the stats and never abort the run; the
// returned error is non-nil only when the registry cannot be read or
// the context is cancelled.
func (p *Pipeline) Run(ctx context.Context) (Stats, error) {
	stats := Stats{RunID: uuid.New()}

	instruments, err := p.registry.ListInstruments(ctx)
	if err != nil {
		return stats, fmt.Errorf("read registry: %w", err)
	}
	stats.Instruments = len(instruments)

	p.logger.Info("pipeline run starting",
		"run_id", stats.RunID,
		"instruments", stats.Instruments,
		"year_start", p.cfg.YearStart.Format("2006-01-02"),
	)

	pending, err := p.fetchAll(ctx, instruments, &stats)
	if err != nil {
		return stats, err
	}

	p.logger.Info("writing price points",
		"run_id", stats.RunID,
		"points", len(pending),
	)
	stats.Write = p.writer.UpsertBatch(ctx, pending)

	p.computeAll(ctx, instruments, &stats)

	p.logger.Info("pipeline run done",
		"run_id", stats.RunID,
		"fetch_ok", stats.FetchOK,
		"fetch_no_data", stats.FetchNoData,
		"fetch_errors", stats.FetchErrors,
		"points", stats.PointsCollected,
		"metrics_computed", stats.MetricsComputed,
		"metrics_skipped", stats.MetricsSkipped,
	)

	return stats, nil
}

// fetchAll is phase one: every instrument in registry order, one
// provider call each, all successes accumulated into a single pending
// list. Nothing is written yet, so a late fetch failure cannot leave
// partially written data for other instruments.
func (p *Pipeline) fetchAll(ctx context.Context, instruments []model.Instrument, stats *Stats) ([]model.PricePoint, error) {
	var pending []model.PricePoint
	end := p.cfg.Now()

	for i, inst := range instruments {
		if i > 0 {
			if err := p.pause(ctx); err != nil {
				return nil, err
			}
		}

		bars, err := p.fetcher.FetchDailyHistory(ctx, inst.Ticker, p.cfg.YearStart, end)
		switch {
		case errors.Is(err, marketdata.ErrNoData):
			stats.FetchNoData++
			p.logger.Info("no data for ticker",
				"ticker", inst.Ticker,
				"progress", fmt.Sprintf("%d/%d", i+1, len(instruments)),
			)
		case err != nil:
			stats.FetchErrors++
			p.logger.Warn("fetch failed",
				"ticker", inst.Ticker,
				"progress", fmt.Sprintf("%d/%d", i+1, len(instruments)),
				"error", err,
			)
		default:
			for _, b := range bars {
				pending = append(pending, model.PricePoint{
					InstrumentID: inst.ID,
					Date:         b.Date,
					Close:        b.Close,
				})
			}
			stats.FetchOK++
			stats.PointsCollected += len(bars)
			p.logger.Info("fetched ticker",
				"ticker", inst.Ticker,
				"progress", fmt.Sprintf("%d/%d", i+1, len(instruments)),
				"points", len(bars),
			)
		}
	}

	return pending, nil
}

// computeAll is phase three: recompute and persist metrics per
// instrument from whatever is now durably stored.
func (p *Pipeline) computeAll(ctx context.Context, instruments []model.Instrument, stats *Stats) {
	for _, inst := range instruments {
		snap, ok, err := p.calc.Compute(ctx, inst.ID)
		if err != nil {
			stats.MetricsErrors++
			p.logger.Warn("metrics computation failed", "ticker", inst.Ticker, "error", err)
			continue
		}
		if !ok {
			stats.MetricsSkipped++
			p.logger.Info("no usable series, metrics skipped", "ticker", inst.Ticker)
			continue
		}

		if err := p.sink.UpdateMetrics(ctx, inst.ID, snap); err != nil {
			stats.MetricsErrors++
			p.logger.Warn("metrics update failed", "ticker", inst.Ticker, "error", err)
			continue
		}

		stats.MetricsComputed++
		stats.Performers = append(stats.Performers, Performance{
			Ticker:    inst.Ticker,
			YTDReturn: snap.YTDReturn,
			Current:   snap.Current,
		})
		p.logger.Info("metrics updated",
			"ticker", inst.Ticker,
			"ytd_return_pct", fmt.Sprintf("%+.2f", snap.YTDReturn),
			"current_price", snap.Current,
		)
	}
}

// pause waits the configured inter-call delay, or returns early when
// the run is externally terminated.
func (p *Pipeline) pause(ctx context.Context) error {
	if p.cfg.FetchDelay <= 0 {
		return nil
	}
	t := time.NewTimer(p.cfg.FetchDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
