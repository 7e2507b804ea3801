// Package services provides domain services for rules that span more than one
// aggregate of the procurement system.
//
// The package includes:
//   - StockChecker: checks the lines of an order against current product stock
package services
