package commands

import (
	"context"
	"log/slog"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/metrics"
)

// moveOrder runs a status change that has no side effects beyond the order row.
func moveOrder(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	id kernel.UUID,
	move func(o *order.Order) error,
) (*order.Order, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := lockOrder(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	if err = move(o); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

// ExportOrderCommandHandler moves an order from pending to exported.
// Departments are not notified of this step.
type ExportOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	metrics    *metrics.Metrics
	clock      Clock
	logger     *slog.Logger
}

// NewExportOrderCommandHandler creates a handler for the export step. m may be nil.
func NewExportOrderCommandHandler(
	uowFactory OrderUoWFactory,
	m *metrics.Metrics,
	clock Clock,
	logger *slog.Logger,
) ExportOrderCommandHandler {
	return ExportOrderCommandHandler{
		uowFactory: uowFactory,
		metrics:    m,
		clock:      clock,
		logger:     logger.With("component", "export-order"),
	}
}

// Handle returns the exported order. A missing order fails with ErrOrderNotFound,
// an order not in pending with order.InvalidStateTransitionError.
func (h ExportOrderCommandHandler) Handle(ctx context.Context, cmd ExportOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := moveOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.Export(h.clock())
	})
	if err != nil {
		return nil, err
	}

	h.metrics.OrderTransitioned(o.Status().String())
	h.logger.InfoContext(ctx, "Order exported", "order_id", o.ID().String())
	return o, nil
}

// SubmitOrderCommandHandler moves an order from exported to submitted.
type SubmitOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	metrics    *metrics.Metrics
	clock      Clock
	logger     *slog.Logger
}

// NewSubmitOrderCommandHandler creates a handler for the submit step. m may be nil.
func NewSubmitOrderCommandHandler(
	uowFactory OrderUoWFactory,
	m *metrics.Metrics,
	clock Clock,
	logger *slog.Logger,
) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{
		uowFactory: uowFactory,
		metrics:    m,
		clock:      clock,
		logger:     logger.With("component", "submit-order"),
	}
}

// Handle returns the submitted order. Only exported orders can be submitted.
func (h SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := moveOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.Submit(h.clock())
	})
	if err != nil {
		return nil, err
	}

	h.metrics.OrderTransitioned(o.Status().String())
	h.logger.InfoContext(ctx, "Order submitted", "order_id", o.ID().String())
	return o, nil
}
