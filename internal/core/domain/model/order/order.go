package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
)

// Order is a department's request for office supplies. It is the aggregate root
// that owns its items and enforces the lifecycle.
//
// Order follows these invariants:
//   - Must have valid order, department and creator identifiers
//   - Must have at least one item
//   - Status is one of the five defined values and only moves along the transition table
//   - Approver is set if and only if the status is Approved or Rejected
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	id           kernel.UUID
	departmentID kernel.UUID
	creatorID    kernel.UUID

	// approverID is nil until an admin decides
	approverID *kernel.UUID

	// adminComment holds the approval comment or the rejection reason
	adminComment *string

	status    Status
	createdAt time.Time
	updatedAt time.Time
	items     []Item

	isConstructed bool
}

// NewOrder creates a Pending order stamped with now.
//
// Example:
//
//	item, _ := order.NewItem(paperID, 3)
//	o, err := order.NewOrder(kernel.NewUUID(), departmentID, userID, []order.Item{item}, time.Now())
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(id, departmentID, creatorID kernel.UUID, items []Item, now time.Time) (*Order, error) {
	o := &Order{
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setDepartmentID(departmentID),
		o.setCreatorID(creatorID),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from persistence. It re-checks every
// invariant, including the approver/status pairing.
func RestoreOrder(
	id, departmentID, creatorID kernel.UUID,
	approverID *kernel.UUID,
	adminComment *string,
	status Status,
	createdAt, updatedAt time.Time,
	items []Item,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		adminComment:  adminComment,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setDepartmentID(departmentID),
		o.setCreatorID(creatorID),
		o.setItems(items),
		o.setStatus(status, approverID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order was created through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID           { return o.id }
func (o *Order) DepartmentID() kernel.UUID { return o.departmentID }
func (o *Order) CreatorID() kernel.UUID    { return o.creatorID }
func (o *Order) Status() Status            { return o.status }
func (o *Order) CreatedAt() time.Time      { return o.createdAt }
func (o *Order) UpdatedAt() time.Time      { return o.updatedAt }

// ApproverID returns the deciding admin, nil while undecided.
func (o *Order) ApproverID() *kernel.UUID {
	if o.approverID == nil {
		return nil
	}
	id := *o.approverID
	return &id
}

// AdminComment returns the approval comment or rejection reason, nil if none.
func (o *Order) AdminComment() *string {
	if o.adminComment == nil {
		return nil
	}
	c := *o.adminComment
	return &c
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Export moves a Pending order to Exported (export-to-document action).
func (o *Order) Export(now time.Time) error {
	return o.moveTo(Exported, now)
}

// Submit moves an Exported order to Submitted (signed-document re-upload).
func (o *Order) Submit(now time.Time) error {
	return o.moveTo(Submitted, now)
}

// Approve records the admin decision on a Submitted order. The comment is optional.
// The caller is responsible for deducting stock in the same transaction.
func (o *Order) Approve(approverID kernel.UUID, comment *string, now time.Time) error {
	if !o.status.CanTransitionTo(Approved) {
		return NewInvalidStateTransitionError(o.status, Approved)
	}
	if err := approverID.Validate(); err != nil {
		return err
	}

	o.status = Approved
	o.approverID = &approverID
	o.adminComment = normalizeComment(comment)
	o.updatedAt = now
	return nil
}

// Reject records the admin decision on a Submitted order. The reason is required
// and stored as the admin comment.
func (o *Order) Reject(approverID kernel.UUID, reason string, now time.Time) error {
	if !o.status.CanTransitionTo(Rejected) {
		return NewInvalidStateTransitionError(o.status, Rejected)
	}
	if err := approverID.Validate(); err != nil {
		return err
	}
	comment := normalizeComment(&reason)
	if comment == nil {
		return errs.NewValueIsRequiredError("reason")
	}

	o.status = Rejected
	o.approverID = &approverID
	o.adminComment = comment
	o.updatedAt = now
	return nil
}

func (o *Order) moveTo(to Status, now time.Time) error {
	next, err := o.status.TransitionTo(to)
	if err != nil {
		return err
	}
	o.status = next
	o.updatedAt = now
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setDepartmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("department", err)
	}
	o.departmentID = id
	return nil
}

func (o *Order) setCreatorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("creator", err)
	}
	o.creatorID = id
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setStatus(status Status, approverID *kernel.UUID) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if status.IsDecided() && approverID == nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"approver is invalid",
			fmt.Errorf("%s order must have an approver", status),
		)
	}
	if !status.IsDecided() && approverID != nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"approver is invalid",
			fmt.Errorf("%s order must not have an approver", status),
		)
	}
	if approverID != nil {
		if err := approverID.Validate(); err != nil {
			return err
		}
		id := *approverID
		o.approverID = &id
	}
	o.status = status
	return nil
}

func normalizeComment(comment *string) *string {
	if comment == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*comment)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
