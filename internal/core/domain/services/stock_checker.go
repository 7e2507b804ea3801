package services

import (
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/model/product"
	"procurement/internal/pkg/errs"
)

// StockChecker decides whether the current stock covers a set of order items.
//
// Business rules:
//   - Every item must reference a known product
//   - Quantities of items sharing a product are summed before comparison
//   - The first uncovered product, in item order, is reported
//
// The result is a snapshot: nothing is reserved. Approval deducts stock with a
// conditional update and is the authoritative check.
//
// Example usage:
//
//	checker := services.NewStockChecker()
//	if err := checker.Check(items, products); err != nil {
//	    var stockErr *product.InsufficientStockError
//	    if errors.As(err, &stockErr) {
//	        // stockErr.ProductID cannot cover stockErr.Requested
//	    }
//	}
type StockChecker struct{}

func NewStockChecker() StockChecker {
	return StockChecker{}
}

// Check returns errs.ObjectNotFoundError for an item whose product is missing
// from products and product.InsufficientStockError for a product whose stock
// is below the summed requested quantity.
func (s StockChecker) Check(items []order.Item, products map[kernel.UUID]*product.Product) error {
	requested := Demand(items)

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}

		p, ok := products[item.ProductID()]
		if !ok || p == nil {
			return errs.NewObjectNotFoundError("product", item.ProductID().String())
		}

		if qty := requested[item.ProductID()]; !p.CanCover(qty) {
			return product.NewInsufficientStockError(p.ID(), qty, p.Stock())
		}
	}

	return nil
}

// Demand sums item quantities per product.
func Demand(items []order.Item) map[kernel.UUID]int {
	requested := make(map[kernel.UUID]int, len(items))
	for _, item := range items {
		requested[item.ProductID()] += item.Quantity()
	}
	return requested
}
