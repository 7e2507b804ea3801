// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// persistence and, after commit, best-effort notification.
package commands

import (
	"context"
	"errors"
	"time"

	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/ports"
)

// ErrOrderNotFound is returned by every operation addressing a missing order.
var ErrOrderNotFound = errors.New("order not found")

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ProductRepoFactory provides access to product repository within a transaction.
	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// SummaryRepoFactory provides access to summary repository.
	SummaryRepoFactory interface {
		SummaryRepository() ports.SummaryRepository
	}

	// OrderUoW manages transactions for order-only operations (export, submit, reject).
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OrderProductUoW spans orders and product stock. Used by create and approve.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, id)
	//   err = uow.ProductRepository().DecrementStock(ctx, productID, qty)
	//   // ...
	//
	//   err = uow.Commit(ctx)
	OrderProductUoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
	}

	// OrderProductUoWFactory creates new order+product unit of work instances.
	OrderProductUoWFactory interface {
		Create() OrderProductUoW
	}

	// SummaryUoW reads orders and writes rollups. Aggregation never calls
	// Begin on it: each upsert commits on its own.
	SummaryUoW interface {
		OrderRepoFactory
		SummaryRepoFactory
	}

	// SummaryUoWFactory creates new summary unit of work instances.
	SummaryUoWFactory interface {
		Create() SummaryUoW
	}
)

// Notification hooks invoked after a successful commit. Implementations must
// not fail the caller.
type (
	// OrderNotifier tells admins and departments about lifecycle events.
	OrderNotifier interface {
		// OrderCreated tells administrators that a new order awaits review.
		OrderCreated(ctx context.Context, o *order.Order)

		// OrderDecided tells the global dashboard and the order's department
		// that an admin approved or rejected the order.
		OrderDecided(ctx context.Context, o *order.Order)
	}

	// WindowNotifier broadcasts ordering-window state changes.
	WindowNotifier interface {
		PublishWindowState(ctx context.Context, open bool)
	}
)

// Clock supplies the current time to handlers.
type Clock func() time.Time
