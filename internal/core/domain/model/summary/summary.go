package summary

import (
	"fmt"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
)

// Key identifies a rollup row: one department on one calendar day.
type Key struct {
	DepartmentID kernel.UUID
	Day          kernel.Day
}

// String renders "department@2006-01-02"; a zero department renders as "*".
func (k Key) String() string {
	dept := "*"
	if k.DepartmentID.Validate() == nil {
		dept = k.DepartmentID.String()
	}
	return fmt.Sprintf("%s@%s", dept, k.Day)
}

// Summary holds the order counts of a Key. PendingCount is derived as
// total - approved - rejected and is never negative.
type Summary struct {
	key           Key
	totalOrders   int
	approvedCount int
	rejectedCount int
}

// NewSummary validates the counts so that the derived pending count stays >= 0.
func NewSummary(key Key, total, approved, rejected int) (Summary, error) {
	if err := key.DepartmentID.Validate(); err != nil {
		return Summary{}, errs.NewValueIsRequiredErrorWithCause("department", err)
	}
	if key.Day.IsZero() {
		return Summary{}, errs.NewValueIsRequiredError("day")
	}
	if approved < 0 || rejected < 0 || total < approved+rejected {
		return Summary{}, errs.NewValueIsInvalidErrorWithCause(
			"counts are invalid",
			fmt.Errorf("total %d, approved %d, rejected %d", total, approved, rejected),
		)
	}
	return Summary{
		key:           key,
		totalOrders:   total,
		approvedCount: approved,
		rejectedCount: rejected,
	}, nil
}

func (s Summary) Key() Key           { return s.key }
func (s Summary) TotalOrders() int   { return s.totalOrders }
func (s Summary) ApprovedCount() int { return s.approvedCount }
func (s Summary) RejectedCount() int { return s.rejectedCount }

// PendingCount counts every order that is not decided yet (pending, exported or submitted).
func (s Summary) PendingCount() int {
	return s.totalOrders - s.approvedCount - s.rejectedCount
}
