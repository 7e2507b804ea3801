package commands

import (
	"errors"
	"strings"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

var ErrRejectOrderCommandIsNotConstructed = errors.New(
	"RejectOrderCommand must be created via NewRejectOrderCommand constructor",
)

// RejectOrderCommand is an admin's rejection of a submitted order. The reason
// is required and is stored as the admin comment.
type RejectOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	approverID kernel.UUID
	reason     string

	guard guard.ConstructorGuard
}

// NewRejectOrderCommand requires both ids and a non-blank reason.
func NewRejectOrderCommand(orderID, approverID kernel.UUID, reason string) (RejectOrderCommand, error) {
	cmd := RejectOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		orderID.Validate(),
		validateApprover(approverID),
		cmd.setReason(reason),
	); err != nil {
		return RejectOrderCommand{}, err
	}

	cmd.orderID = orderID
	cmd.approverID = approverID
	return cmd, nil
}

func (c RejectOrderCommand) Validate() error {
	return c.guard.Validate(ErrRejectOrderCommandIsNotConstructed)
}

func (c RejectOrderCommand) OrderID() kernel.UUID    { return c.orderID }
func (c RejectOrderCommand) ApproverID() kernel.UUID { return c.approverID }
func (c RejectOrderCommand) Reason() string          { return c.reason }

func (c *RejectOrderCommand) setReason(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	c.reason = reason
	return nil
}
