// Package marketdata wraps the external price-history provider.
//
// The client fetches per-symbol daily close series over a date range.
// Zero rows for a range is the ErrNoData sentinel, not a failure;
// transport and provider errors surface as *FetchError so the caller
// can isolate them per ticker. Requests retry with jittered exponential
// backoff on 5xx and 429 responses only.
package marketdata
