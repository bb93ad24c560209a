// Package database provides pgx connection pool management.
//
// One PostgreSQL database holds both the instrument registry (stocks)
// and the price series (stock_prices). The pool is constructed once at
// startup, injected into the stores, and closed on shutdown; nothing
// reads it as ambient global state.
package database
