package commands

import (
	"errors"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

var ErrApproveOrderCommandIsNotConstructed = errors.New(
	"ApproveOrderCommand must be created via NewApproveOrderCommand constructor",
)

// ApproveOrderCommand is an admin's approval of a submitted order.
//
// Example:
//
//	comment := "deliver to room 204"
//	cmd, err := NewApproveOrderCommand(orderID, adminID, &comment)
//	if err != nil {
//	    return err
//	}
//
//	o, err := handler.Handle(ctx, cmd)
//	var stockErr *product.InsufficientStockError
//	if errors.As(err, &stockErr) {
//	    // nothing was deducted
//	}
type ApproveOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	approverID kernel.UUID
	comment    *string

	guard guard.ConstructorGuard
}

// NewApproveOrderCommand creates the command. comment may be nil.
func NewApproveOrderCommand(orderID, approverID kernel.UUID, comment *string) (ApproveOrderCommand, error) {
	cmd := ApproveOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		orderID.Validate(),
		validateApprover(approverID),
	); err != nil {
		return ApproveOrderCommand{}, err
	}

	cmd.orderID = orderID
	cmd.approverID = approverID
	if comment != nil {
		c := *comment
		cmd.comment = &c
	}
	return cmd, nil
}

func (c ApproveOrderCommand) Validate() error {
	return c.guard.Validate(ErrApproveOrderCommandIsNotConstructed)
}

func (c ApproveOrderCommand) OrderID() kernel.UUID    { return c.orderID }
func (c ApproveOrderCommand) ApproverID() kernel.UUID { return c.approverID }

// Comment returns the optional admin comment.
func (c ApproveOrderCommand) Comment() *string {
	if c.comment == nil {
		return nil
	}
	s := *c.comment
	return &s
}

func validateApprover(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("approver", err)
	}
	return nil
}
