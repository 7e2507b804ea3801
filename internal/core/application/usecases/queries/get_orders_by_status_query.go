package queries

import (
	"errors"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

var ErrGetOrdersByStatusQueryIsNotConstructed = errors.New(
	"GetOrdersByStatusQuery must be created via NewGetOrdersByStatusQuery constructor",
)

// GetOrdersByStatusQuery lists orders in any of the given statuses, optionally
// limited to one department.
//
// Example:
//
//	query, err := NewGetOrdersByStatusQuery(nil, order.Submitted)
//	if err != nil {
//	    return err
//	}
//
//	awaitingDecision, err := handler.Handle(ctx, query)
type GetOrdersByStatusQuery struct {
	statuses     []order.Status
	departmentID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrdersByStatusQuery requires at least one valid status. departmentID may be nil.
func NewGetOrdersByStatusQuery(departmentID *kernel.UUID, statuses ...order.Status) (GetOrdersByStatusQuery, error) {
	if len(statuses) == 0 {
		return GetOrdersByStatusQuery{}, errs.NewValueIsRequiredError("status")
	}
	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return GetOrdersByStatusQuery{}, err
		}
	}

	query := GetOrdersByStatusQuery{
		statuses: append([]order.Status(nil), statuses...),
		guard:    guard.NewConstructorGuard(),
	}
	if departmentID != nil {
		if err := departmentID.Validate(); err != nil {
			return GetOrdersByStatusQuery{}, err
		}
		id := *departmentID
		query.departmentID = &id
	}
	return query, nil
}

// NewGetPendingOrdersQuery lists every order still in pending status.
func NewGetPendingOrdersQuery() GetOrdersByStatusQuery {
	return GetOrdersByStatusQuery{
		statuses: []order.Status{order.Pending},
		guard:    guard.NewConstructorGuard(),
	}
}

func (q GetOrdersByStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByStatusQueryIsNotConstructed)
}

func (q GetOrdersByStatusQuery) Statuses() []order.Status {
	return append([]order.Status(nil), q.statuses...)
}

func (q GetOrdersByStatusQuery) DepartmentID() *kernel.UUID {
	if q.departmentID == nil {
		return nil
	}
	id := *q.departmentID
	return &id
}
