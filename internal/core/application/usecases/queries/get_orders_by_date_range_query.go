package queries

import (
	"errors"
	"fmt"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

var ErrGetOrdersByDateRangeQueryIsNotConstructed = errors.New(
	"GetOrdersByDateRangeQuery must be created via NewGetOrdersByDateRangeQuery constructor",
)

// GetOrdersByDateRangeQuery lists orders created on any day in [from, to].
type GetOrdersByDateRangeQuery struct {
	from kernel.Day
	to   kernel.Day

	guard guard.ConstructorGuard
}

func NewGetOrdersByDateRangeQuery(from, to kernel.Day) (GetOrdersByDateRangeQuery, error) {
	if err := validateRange(from, to); err != nil {
		return GetOrdersByDateRangeQuery{}, err
	}
	return GetOrdersByDateRangeQuery{from: from, to: to, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrdersByDateRangeQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByDateRangeQueryIsNotConstructed)
}

func (q GetOrdersByDateRangeQuery) From() kernel.Day { return q.from }
func (q GetOrdersByDateRangeQuery) To() kernel.Day   { return q.to }

func validateRange(from, to kernel.Day) error {
	if from.IsZero() {
		return errs.NewValueIsRequiredError("from")
	}
	if to.IsZero() {
		return errs.NewValueIsRequiredError("to")
	}
	if from.After(to) {
		return errs.NewValueIsInvalidErrorWithCause("range", fmt.Errorf("from %s is after to %s", from, to))
	}
	return nil
}
