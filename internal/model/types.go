package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Instrument is one tracked equity from the registry.
// ID is the internal key used for all joins; Ticker is the
// external-facing symbol (e.g., "SHOP", "BIP.UN").
type Instrument struct {
	ID     int64
	Ticker string
}

// PricePoint is a single daily close for an instrument.
// Exactly one row exists per (InstrumentID, Date); re-ingesting the
// same date replaces Close rather than duplicating the row.
type PricePoint struct {
	InstrumentID int64
	Date         time.Time // calendar date, midnight UTC
	Close        decimal.Decimal
}

// MetricsSnapshot holds the derived YTD performance fields for an
// instrument. It is always reproducible from the stored PricePoint
// series and never independently authoritative.
type MetricsSnapshot struct {
	Current     decimal.Decimal // latest stored close
	FirstOfYear decimal.Decimal // earliest close on/after the year start
	YTDReturn   float64         // percent, ((current-first)/first)*100
	ComputedAt  time.Time
}

// Day truncates t to midnight UTC. All PricePoint dates go through
// this so (instrument, date) uniqueness is not defeated by time-of-day
// noise from the provider.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
