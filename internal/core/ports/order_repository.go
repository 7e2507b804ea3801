// Package ports defines the contracts between the procurement core and its
// infrastructure: repositories, the unit of work and outbound transports.
package ports

import (
	"context"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates,
// including their owned items.
type OrderRepository interface {
	// Add persists a new order with its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status, approver, comment and timestamps of an existing order.
	// Items are immutable after creation and are not rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// GetForUpdate retrieves an order with its items and holds a row lock until
	// the surrounding transaction ends. Two concurrent decisions on the same
	// order serialize on this lock.
	// Returns errs.ObjectNotFoundError when the order does not exist.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetCreatedBetween returns every order created in [from, to), without locking.
	// Used by the summary aggregation as an eventually consistent snapshot.
	GetCreatedBetween(ctx context.Context, from, to time.Time) ([]*order.Order, error)
}
