// Package product provides the Product entity and the stock rule shared by the
// in-memory and SQL implementations of ProductStock: a decrement either fits
// within the available stock or is refused outright, never clamped.
package product
