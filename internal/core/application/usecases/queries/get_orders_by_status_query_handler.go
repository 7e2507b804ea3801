package queries

import (
	"context"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetOrdersByStatusQueryHandler serves order lists filtered by status.
type GetOrdersByStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersByStatusQueryHandler creates the handler over a plain read connection.
func NewGetOrdersByStatusQueryHandler(db *gorm.DB) GetOrdersByStatusQueryHandler {
	return GetOrdersByStatusQueryHandler{db: db}
}

// Handle returns the matching orders sorted by creation time, oldest first.
func (h GetOrdersByStatusQueryHandler) Handle(ctx context.Context, query GetOrdersByStatusQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statuses := make([]int64, 0, len(query.Statuses()))
	for _, s := range query.Statuses() {
		statuses = append(statuses, int64(s))
	}

	var filter orderFilter
	filter.where("status = ANY(?)", pq.Array(statuses))
	if dept := query.DepartmentID(); dept != nil {
		filter.where("department_id = ?", dept.String())
	}

	return loadOrders(ctx, h.db, filter)
}
