package metrics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mfortier/tsx-data/internal/model"
)

// BoundarySource serves the two boundary rows of a stored price
// series. *pricestore.Store satisfies it.
type BoundarySource interface {
	FirstCloseOnOrAfter(ctx context.Context, instrumentID int64, from time.Time) (model.PricePoint, bool, error)
	LatestClose(ctx context.Context, instrumentID int64) (model.PricePoint, bool, error)
}

// Calculator derives YTD performance snapshots from stored closes.
// It is the single owner of the return formula; every consumer goes
// through Compute so boundary strategies cannot diverge.
type Calculator struct {
	source    BoundarySource
	yearStart time.Time
}

// NewCalculator creates a Calculator anchored at yearStart.
func NewCalculator(source BoundarySource, yearStart time.Time) *Calculator {
	return &Calculator{
		source:    source,
		yearStart: model.Day(yearStart),
	}
}

// Compute derives the snapshot for one instrument. ok is false when
// either boundary row is missing, meaning the instrument has no usable
// series yet; that is a skip, not an error. With unchanged stored data
// the result is identical on every call except ComputedAt.
func (c *Calculator) Compute(ctx context.Context, instrumentID int64) (model.MetricsSnapshot, bool, error) {
	first, found, err := c.source.FirstCloseOnOrAfter(ctx, instrumentID, c.yearStart)
	if err != nil {
		return model.MetricsSnapshot{}, false, err
	}
	if !found {
		return model.MetricsSnapshot{}, false, nil
	}

	latest, found, err := c.source.LatestClose(ctx, instrumentID)
	if err != nil {
		return model.MetricsSnapshot{}, false, err
	}
	if !found {
		return model.MetricsSnapshot{}, false, nil
	}

	return model.MetricsSnapshot{
		Current:     latest.Close,
		FirstOfYear: first.Close,
		YTDReturn:   YTDReturn(first.Close, latest.Close).InexactFloat64(),
		ComputedAt:  time.Now().UTC(),
	}, true, nil
}

var hundred = decimal.NewFromInt(100)

// YTDReturn computes ((current - first) / first) * 100 in decimal.
// A zero first price yields zero rather than a division panic; it
// cannot happen with real quotes but must not take the run down.
func YTDReturn(first, current decimal.Decimal) decimal.Decimal {
	if first.IsZero() {
		return decimal.Zero
	}
	return current.Sub(first).Div(first).Mul(hundred)
}
