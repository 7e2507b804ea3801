package queries

import (
	"errors"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/guard"
)

var ErrGetSummariesQueryIsNotConstructed = errors.New(
	"GetSummariesQuery must be created via NewGetSummariesQuery constructor",
)

// GetSummariesQuery reads the stored daily rollups of [from, to] for the
// dashboard, optionally for one department. It never recomputes anything.
type GetSummariesQuery struct {
	from         kernel.Day
	to           kernel.Day
	departmentID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetSummariesQuery(from, to kernel.Day, departmentID *kernel.UUID) (GetSummariesQuery, error) {
	if err := validateRange(from, to); err != nil {
		return GetSummariesQuery{}, err
	}
	query := GetSummariesQuery{from: from, to: to, guard: guard.NewConstructorGuard()}
	if departmentID != nil {
		if err := departmentID.Validate(); err != nil {
			return GetSummariesQuery{}, err
		}
		id := *departmentID
		query.departmentID = &id
	}
	return query, nil
}

func (q GetSummariesQuery) Validate() error {
	return q.guard.Validate(ErrGetSummariesQueryIsNotConstructed)
}

func (q GetSummariesQuery) From() kernel.Day { return q.from }
func (q GetSummariesQuery) To() kernel.Day   { return q.to }

func (q GetSummariesQuery) DepartmentID() *kernel.UUID {
	if q.departmentID == nil {
		return nil
	}
	id := *q.departmentID
	return &id
}

// SummaryResponse is one (department, day) rollup row.
type SummaryResponse struct {
	DepartmentID  kernel.UUID
	Day           kernel.Day
	TotalOrders   int
	ApprovedCount int
	RejectedCount int
	PendingCount  int
}
