package commands

import (
	"context"
	"log/slog"

	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/metrics"
)

// RejectOrderCommandHandler rejects a submitted order. Stock is untouched.
//
// Example:
//
//	handler := NewRejectOrderCommandHandler(uowFactory, notifier, m, time.Now, logger)
//	cmd, _ := NewRejectOrderCommand(orderID, adminID, "over budget this month")
//
//	if _, err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("rejection failed: %w", err)
//	}
type RejectOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   OrderNotifier
	metrics    *metrics.Metrics
	clock      Clock
	logger     *slog.Logger
}

// NewRejectOrderCommandHandler creates a handler for order rejection.
func NewRejectOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier OrderNotifier,
	m *metrics.Metrics,
	clock Clock,
	logger *slog.Logger,
) RejectOrderCommandHandler {
	return RejectOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		metrics:    m,
		clock:      clock,
		logger:     logger.With("component", "reject-order"),
	}
}

// Handle returns the rejected order with the reason stored as its comment.
// The department is notified after the commit.
func (h RejectOrderCommandHandler) Handle(ctx context.Context, cmd RejectOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := moveOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.Reject(cmd.ApproverID(), cmd.Reason(), h.clock())
	})
	if err != nil {
		return nil, err
	}

	h.metrics.OrderTransitioned(o.Status().String())
	h.logger.InfoContext(ctx, "Order rejected",
		"order_id", o.ID().String(),
		"approver_id", cmd.ApproverID().String(),
	)
	h.notifier.OrderDecided(ctx, o)

	return o, nil
}
