package commands

import (
	"errors"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/guard"
)

var ErrExportOrderCommandIsNotConstructed = errors.New(
	"ExportOrderCommand must be created via NewExportOrderCommand constructor",
)

// ExportOrderCommand marks a pending order as exported to a paper document.
type ExportOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewExportOrderCommand requires a non-nil order id.
func NewExportOrderCommand(orderID kernel.UUID) (ExportOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ExportOrderCommand{}, err
	}
	return ExportOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c ExportOrderCommand) Validate() error {
	return c.guard.Validate(ErrExportOrderCommandIsNotConstructed)
}

func (c ExportOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
