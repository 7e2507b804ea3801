package commands

import (
	"context"
	"log/slog"
	"slices"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/services"
	"procurement/internal/pkg/metrics"
)

// CreateOrderCommandHandler persists a new order in pending status and tells
// administrators about it.
//
// The stock check done here is advisory: nothing is reserved, so two orders may
// both pass it and only one of them be approvable later. The authoritative
// check is the conditional decrement on approval.
type CreateOrderCommandHandler struct {
	uowFactory OrderProductUoWFactory
	stock      services.StockChecker
	notifier   OrderNotifier
	metrics    *metrics.Metrics
	clock      Clock
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order creation.
// m may be nil.
func NewCreateOrderCommandHandler(
	uowFactory OrderProductUoWFactory,
	notifier OrderNotifier,
	m *metrics.Metrics,
	clock Clock,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		stock:      services.NewStockChecker(),
		notifier:   notifier,
		metrics:    m,
		clock:      clock,
		logger:     logger.With("component", "create-order"),
	}
}

// Handle resolves every product, checks the requested quantities against current
// stock and stores the order. Unknown products fail with errs.ObjectNotFoundError,
// uncovered quantities with product.InsufficientStockError.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (OrderView, error) {
	if err := cmd.Validate(); err != nil {
		return OrderView{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return OrderView{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	lines := cmd.Lines()
	items := make([]order.Item, 0, len(lines))
	for _, line := range lines {
		item, err := order.NewItem(line.ProductID, line.Quantity)
		if err != nil {
			return OrderView{}, err
		}
		items = append(items, item)
	}

	ids := make([]kernel.UUID, 0, len(items))
	for _, item := range items {
		if !slices.Contains(ids, item.ProductID()) {
			ids = append(ids, item.ProductID())
		}
	}

	products, err := uow.ProductRepository().GetMany(ctx, ids)
	if err != nil {
		return OrderView{}, err
	}

	if err = h.stock.Check(items, products); err != nil {
		return OrderView{}, err
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.DepartmentID(), cmd.CreatorID(), items, h.clock())
	if err != nil {
		return OrderView{}, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return OrderView{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return OrderView{}, err
	}

	h.metrics.OrderTransitioned(o.Status().String())
	h.logger.InfoContext(ctx, "Order created",
		"order_id", o.ID().String(),
		"department_id", o.DepartmentID().String(),
		"items", len(items),
	)
	h.notifier.OrderCreated(ctx, o)

	return newOrderView(o, products), nil
}
