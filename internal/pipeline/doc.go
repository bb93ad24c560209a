// Package pipeline orchestrates one ingestion sweep: fetch every
// instrument's daily closes, write them all in one batched pass, then
// recompute and persist YTD metrics per instrument.
//
// The phases run in registry order on a single logical thread, with a
// fixed delay between provider calls. Per-instrument and per-chunk
// failures become counters in Stats; only an unreadable registry (or
// external cancellation) aborts a run.
package pipeline
