package commands

import (
	"errors"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired = errors.New("order must contain at least one item")
)

// OrderLine is a requested product and quantity.
type OrderLine struct {
	ProductID kernel.UUID
	Quantity  int
}

// CreateOrderCommand represents a department's request for office supplies.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), departmentID, userID, []OrderLine{
//	    {ProductID: paperID, Quantity: 3},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	view, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	departmentID kernel.UUID
	creatorID    kernel.UUID
	lines        []OrderLine

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates identifiers and that every quantity is positive.
// Product existence and stock are checked by the handler.
func NewCreateOrderCommand(
	orderID, departmentID, creatorID kernel.UUID,
	lines []OrderLine,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDepartmentID(departmentID),
		cmd.setCreatorID(creatorID),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID      { return c.orderID }
func (c CreateOrderCommand) DepartmentID() kernel.UUID { return c.departmentID }
func (c CreateOrderCommand) CreatorID() kernel.UUID    { return c.creatorID }

// Lines returns a copy of the requested lines.
func (c CreateOrderCommand) Lines() []OrderLine {
	lines := make([]OrderLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

func (c *CreateOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CreateOrderCommand) setDepartmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("department", err)
	}
	c.departmentID = id
	return nil
}

func (c *CreateOrderCommand) setCreatorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("creator", err)
	}
	c.creatorID = id
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return ErrItemsAreRequired
	}
	for _, line := range lines {
		if err := line.ProductID.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause("product", err)
		}
		if line.Quantity <= 0 {
			return errs.NewValueIsOutOfRangeError("quantity", line.Quantity, 1, "unbounded")
		}
	}
	c.lines = make([]OrderLine, len(lines))
	copy(c.lines, lines)
	return nil
}
