package commands

import (
	"errors"
	"fmt"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

var ErrAggregateSummariesCommandIsNotConstructed = errors.New(
	"AggregateSummariesCommand must be created via NewAggregateSummariesCommand constructor",
)

// MaxAggregationDays bounds a single aggregation request.
const MaxAggregationDays = 366

// AggregateSummariesCommand recomputes the rollups of every day in [from, to].
type AggregateSummariesCommand struct { //nolint:recvcheck //using for validation
	from kernel.Day
	to   kernel.Day

	guard guard.ConstructorGuard
}

// NewAggregateSummariesCommand creates a command for the inclusive range [from, to].
//
// Parameters:
//   - from: first day to recompute
//   - to: last day to recompute, not before from
//
// Returns:
//   - AggregateSummariesCommand: a valid command
//   - error: ValueIsRequired for a missing bound, ValueIsInvalid when from is
//     after to, ValueIsOutOfRange when the range covers more than
//     MaxAggregationDays days
func NewAggregateSummariesCommand(from, to kernel.Day) (AggregateSummariesCommand, error) {
	if from.IsZero() {
		return AggregateSummariesCommand{}, errs.NewValueIsRequiredError("from")
	}
	if to.IsZero() {
		return AggregateSummariesCommand{}, errs.NewValueIsRequiredError("to")
	}
	if from.After(to) {
		return AggregateSummariesCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"range",
			fmt.Errorf("from %s is after to %s", from, to),
		)
	}
	if span := kernel.DaysBetween(from, to) + 1; span > MaxAggregationDays {
		return AggregateSummariesCommand{}, errs.NewValueIsOutOfRangeError("days", span, 1, MaxAggregationDays)
	}

	return AggregateSummariesCommand{
		from:  from,
		to:    to,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// NewAggregateDayCommand covers a single day.
func NewAggregateDayCommand(day kernel.Day) (AggregateSummariesCommand, error) {
	return NewAggregateSummariesCommand(day, day)
}

// Validate reports whether c was built by a constructor.
func (c AggregateSummariesCommand) Validate() error {
	return c.guard.Validate(ErrAggregateSummariesCommandIsNotConstructed)
}

func (c AggregateSummariesCommand) From() kernel.Day { return c.from }
func (c AggregateSummariesCommand) To() kernel.Day   { return c.to }
