// Package model defines the shared domain types for the price pipeline.
//
// Types:
//   - Instrument: registry row (internal id + ticker symbol)
//   - PricePoint: one daily close, unique per (instrument, date)
//   - MetricsSnapshot: derived YTD performance fields
//
// Close prices are carried as shopspring decimals end to end so repeated
// metric recomputation never compounds float rounding error.
package model
