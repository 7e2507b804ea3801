package commands

import (
	"context"
	"errors"
	"log/slog"

	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/model/product"
	"procurement/internal/pkg/metrics"
)

// ApproveOrderCommandHandler approves a submitted order and deducts stock for
// every item in one transaction.
//
// The order row is locked first, so two admins deciding the same order
// serialize and the loser sees InvalidStateTransition. Items are decremented in
// order; the first uncovered item aborts the whole approval and nothing is
// deducted.
//
// Example:
//
//	handler := NewApproveOrderCommandHandler(uowFactory, notifier, m, time.Now, logger)
//	cmd, _ := NewApproveOrderCommand(orderID, adminID)
//
//	approved, err := handler.Handle(ctx, cmd)
//	var short *product.InsufficientStockError
//	if errors.As(err, &short) {
//	    log.Printf("%s has %d left, %d requested", short.ProductID, short.Available, short.Requested)
//	}
type ApproveOrderCommandHandler struct {
	uowFactory OrderProductUoWFactory
	notifier   OrderNotifier
	metrics    *metrics.Metrics
	clock      Clock
	logger     *slog.Logger
}

// NewApproveOrderCommandHandler creates a handler for order approval.
// Requires an OrderProductUoWFactory so the order and its products share one transaction.
func NewApproveOrderCommandHandler(
	uowFactory OrderProductUoWFactory,
	notifier OrderNotifier,
	m *metrics.Metrics,
	clock Clock,
	logger *slog.Logger,
) ApproveOrderCommandHandler {
	return ApproveOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		metrics:    m,
		clock:      clock,
		logger:     logger.With("component", "approve-order"),
	}
}

// Handle returns the approved order. Errors:
//   - ErrOrderNotFound when the order does not exist
//   - order.InvalidStateTransitionError when it is not submitted
//   - product.InsufficientStockError naming the first product that could not be covered
func (h ApproveOrderCommandHandler) Handle(ctx context.Context, cmd ApproveOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := lockOrder(ctx, uow, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.Approve(cmd.ApproverID(), cmd.Comment(), h.clock()); err != nil {
		return nil, err
	}

	productRepo := uow.ProductRepository()
	for _, item := range o.Items() {
		if err = productRepo.DecrementStock(ctx, item.ProductID(), item.Quantity()); err != nil {
			if errors.Is(err, product.ErrInsufficientStock) {
				h.metrics.StockRejected()
				h.logger.InfoContext(ctx, "Approval refused",
					"order_id", o.ID().String(),
					"product_id", item.ProductID().String(),
					"quantity", item.Quantity(),
				)
			}
			return nil, err
		}
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.metrics.OrderTransitioned(o.Status().String())
	h.logger.InfoContext(ctx, "Order approved",
		"order_id", o.ID().String(),
		"approver_id", cmd.ApproverID().String(),
	)
	h.notifier.OrderDecided(ctx, o)

	return o, nil
}
