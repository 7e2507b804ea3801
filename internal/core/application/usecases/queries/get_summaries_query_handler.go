package queries

import (
	"context"
	"time"

	"procurement/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetSummariesQueryHandler reads stored daily rollups. It never recomputes them;
// a day that was not aggregated yet is simply absent from the result.
//
// Example:
//
//	handler := NewGetSummariesQueryHandler(db)
//	query, _ := NewGetSummariesQuery(kernel.NewDay(2025, time.March, 1), kernel.NewDay(2025, time.March, 31), nil)
//
//	rows, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	for _, r := range rows {
//	    fmt.Printf("%s %s: %d/%d approved\n", r.Day, r.DepartmentID, r.ApprovedCount, r.TotalOrders)
//	}
type GetSummariesQueryHandler struct {
	db *gorm.DB
}

// NewGetSummariesQueryHandler creates the handler over a plain read connection.
func NewGetSummariesQueryHandler(db *gorm.DB) GetSummariesQueryHandler {
	return GetSummariesQueryHandler{db: db}
}

// Handle returns rows sorted by day, then department.
func (h GetSummariesQueryHandler) Handle(ctx context.Context, query GetSummariesQuery) ([]SummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			department_id,
			summary_date,
			total_orders,
			approved_count,
			rejected_count,
			pending_count
		FROM order_summaries
		WHERE summary_date BETWEEN ? AND ?`
	args := []any{query.From().String(), query.To().String()}
	if dept := query.DepartmentID(); dept != nil {
		sql += " AND department_id = ?"
		args = append(args, dept.String())
	}
	sql += " ORDER BY summary_date, department_id"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]SummaryResponse, 0)
	for rows.Next() {
		var (
			departmentID uuid.UUID
			day          time.Time
			resp         SummaryResponse
		)

		if err = rows.Scan(
			&departmentID,
			&day,
			&resp.TotalOrders,
			&resp.ApprovedCount,
			&resp.RejectedCount,
			&resp.PendingCount,
		); err != nil {
			return nil, err
		}

		if resp.DepartmentID, err = kernel.UUIDOf(departmentID); err != nil {
			return nil, err
		}
		resp.Day = kernel.DayOf(day, time.UTC)
		summaries = append(summaries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
