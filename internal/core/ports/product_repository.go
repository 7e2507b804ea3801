package ports

import (
	"context"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for products and is the
// only way stock changes (ProductStock).
type ProductRepository interface {
	// GetMany retrieves the listed products keyed by id. Missing ids are absent from the map.
	GetMany(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]*product.Product, error)

	// DecrementStock atomically subtracts qty if the stock covers it.
	// Returns product.InsufficientStockError when it does not and
	// errs.ObjectNotFoundError when the product does not exist. Concurrent
	// decrements of the same product are linearizable and stock is never
	// observable below zero.
	DecrementStock(ctx context.Context, id kernel.UUID, qty int) error
}
