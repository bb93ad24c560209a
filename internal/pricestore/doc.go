// Package pricestore persists daily closes in the stock_prices table.
//
// Writes are chunked upserts keyed on (company_id, date): insert if
// absent, overwrite close_price if present, resolved atomically by the
// database so concurrent runs degrade to last-writer-wins instead of
// duplicate rows. A failed chunk never blocks the chunks after it.
//
// Reads are the two boundary queries the metrics calculator needs:
// earliest row on/after the year start and latest row overall.
package pricestore
