// Package metrics derives YTD performance snapshots from stored
// price series. All arithmetic is decimal so recomputation over the
// same data is exact; only the final percentage is exposed as float64
// for storage and display.
package metrics
