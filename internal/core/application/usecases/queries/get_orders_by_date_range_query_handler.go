package queries

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// GetOrdersByDateRangeQueryHandler serves orders by creation day. Day
// boundaries are midnights in the configured location.
type GetOrdersByDateRangeQueryHandler struct {
	db       *gorm.DB
	location *time.Location
}

// NewGetOrdersByDateRangeQueryHandler creates the handler. A nil loc means UTC.
func NewGetOrdersByDateRangeQueryHandler(db *gorm.DB, loc *time.Location) GetOrdersByDateRangeQueryHandler {
	if loc == nil {
		loc = time.UTC
	}
	return GetOrdersByDateRangeQueryHandler{db: db, location: loc}
}

// Handle returns orders created from the start of From up to the end of To,
// oldest first.
func (h GetOrdersByDateRangeQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersByDateRangeQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var filter orderFilter
	filter.where("created_at >= ?", query.From().Start(h.location))
	filter.where("created_at < ?", query.To().Next().Start(h.location))

	return loadOrders(ctx, h.db, filter)
}
