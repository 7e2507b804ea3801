package summary

import (
	"sort"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
)

// OrderSnapshot is the part of an order the rollup needs.
type OrderSnapshot struct {
	DepartmentID kernel.UUID
	Status       order.Status
	CreatedAt    time.Time
}

// SnapshotOf projects an order onto an OrderSnapshot.
func SnapshotOf(o *order.Order) OrderSnapshot {
	return OrderSnapshot{
		DepartmentID: o.DepartmentID(),
		Status:       o.Status(),
		CreatedAt:    o.CreatedAt(),
	}
}

type counts struct {
	total, approved, rejected int
}

// Compute derives the rollups of day from orders. Only orders created in
// [day 00:00, day+1 00:00) in loc are counted; departments without such orders
// produce no row. Rows are sorted by department id so the output is deterministic.
// Compute has no side effects.
func Compute(day kernel.Day, loc *time.Location, orders []OrderSnapshot) []Summary {
	start, end := day.Start(loc), day.Next().Start(loc)

	byDepartment := make(map[kernel.UUID]*counts)
	for _, o := range orders {
		if o.CreatedAt.Before(start) || !o.CreatedAt.Before(end) {
			continue
		}
		c, ok := byDepartment[o.DepartmentID]
		if !ok {
			c = &counts{}
			byDepartment[o.DepartmentID] = c
		}
		c.total++
		switch o.Status {
		case order.Approved:
			c.approved++
		case order.Rejected:
			c.rejected++
		default:
		}
	}

	summaries := make([]Summary, 0, len(byDepartment))
	for dept, c := range byDepartment {
		summaries = append(summaries, Summary{
			key:           Key{DepartmentID: dept, Day: day},
			totalOrders:   c.total,
			approvedCount: c.approved,
			rejectedCount: c.rejected,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].key.DepartmentID.String() < summaries[j].key.DepartmentID.String()
	})

	return summaries
}
