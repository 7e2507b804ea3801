package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/model/product"
	"procurement/internal/pkg/errs"
)

// OrderItemView is an order line with the product resolved.
type OrderItemView struct {
	ProductID   kernel.UUID
	ProductCode string
	ProductName string
	Unit        string
	Quantity    int
}

// OrderView is the response of order creation.
type OrderView struct {
	ID           kernel.UUID
	DepartmentID kernel.UUID
	CreatorID    kernel.UUID
	Status       order.Status
	CreatedAt    time.Time
	Items        []OrderItemView
}

func newOrderView(o *order.Order, products map[kernel.UUID]*product.Product) OrderView {
	items := make([]OrderItemView, 0, len(o.Items()))
	for _, item := range o.Items() {
		view := OrderItemView{
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
		}
		if p, ok := products[item.ProductID()]; ok {
			view.ProductCode = p.Code()
			view.ProductName = p.Name()
			view.Unit = p.Unit()
		}
		items = append(items, view)
	}

	return OrderView{
		ID:           o.ID(),
		DepartmentID: o.DepartmentID(),
		CreatorID:    o.CreatorID(),
		Status:       o.Status(),
		CreatedAt:    o.CreatedAt(),
		Items:        items,
	}
}

// lockOrder loads the order with a row lock and maps a missing row to ErrOrderNotFound.
func lockOrder(ctx context.Context, uow OrderRepoFactory, id kernel.UUID) (*order.Order, error) {
	o, err := uow.OrderRepository().GetForUpdate(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}
