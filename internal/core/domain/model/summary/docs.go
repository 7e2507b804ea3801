// Package summary provides the per-department daily order rollup and the pure
// function that derives it from a snapshot of orders.
//
// A Summary is never a source of truth: it is recomputed from orders and
// overwritten on every aggregation run, so running the same day twice yields
// the same rows.
package summary
