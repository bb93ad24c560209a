// Package registry is the store for the tracked-instrument universe.
//
// The stocks table is read in id order (deterministic sweeps), the
// derived metrics columns are written back per instrument, and the
// one-time seed upserts the ticker list with typed inserted/updated
// outcomes from the database itself.
package registry
