package commands

import (
	"errors"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/guard"
)

var ErrSubmitOrderCommandIsNotConstructed = errors.New(
	"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
)

// SubmitOrderCommand records that the signed document of an exported order was
// uploaded back. The order then awaits an admin decision.
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand requires a non-nil order id.
func NewSubmitOrderCommand(orderID kernel.UUID) (SubmitOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return SubmitOrderCommand{}, err
	}
	return SubmitOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

func (c SubmitOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
