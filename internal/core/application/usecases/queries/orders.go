// Package queries contains read-only operations. Handlers read straight from
// the database with raw SQL and return flat response structs; they never load
// aggregates and never lock.
package queries

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// OrderItemResponse is an order line with its product resolved.
type OrderItemResponse struct {
	ProductID   kernel.UUID
	ProductCode string
	ProductName string
	Unit        string
	Quantity    int
}

// OrderResponse is the read model of an order.
type OrderResponse struct {
	ID           kernel.UUID
	DepartmentID kernel.UUID
	CreatorID    kernel.UUID
	ApproverID   *kernel.UUID
	AdminComment *string
	Status       order.Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Items        []OrderItemResponse
}

// orderFilter is a conjunction of SQL conditions on the orders table.
type orderFilter struct {
	conditions []string
	args       []any
}

func (f *orderFilter) where(condition string, args ...any) {
	f.conditions = append(f.conditions, condition)
	f.args = append(f.args, args...)
}

// loadOrders selects the matching orders sorted by creation time, then fills in
// their items with a second query.
func loadOrders(ctx context.Context, db *gorm.DB, filter orderFilter) ([]OrderResponse, error) {
	query := `
		SELECT
			id,
			department_id,
			creator_id,
			approver_id,
			admin_comment,
			status,
			created_at,
			updated_at
		FROM orders`
	if len(filter.conditions) > 0 {
		query += "\n\t\tWHERE " + strings.Join(filter.conditions, " AND ")
	}
	query += "\n\t\tORDER BY created_at, id"

	rows, err := db.WithContext(ctx).Raw(query, filter.args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderResponse, 0)
	index := make(map[kernel.UUID]int)
	ids := make([]string, 0)

	for rows.Next() {
		var (
			id, departmentID, creatorID uuid.UUID
			approverID                  uuid.NullUUID
			adminComment                sql.NullString
			status                      int
			resp                        OrderResponse
		)

		if err = rows.Scan(
			&id,
			&departmentID,
			&creatorID,
			&approverID,
			&adminComment,
			&status,
			&resp.CreatedAt,
			&resp.UpdatedAt,
		); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDOf(id); err != nil {
			return nil, err
		}
		if resp.DepartmentID, err = kernel.UUIDOf(departmentID); err != nil {
			return nil, err
		}
		if resp.CreatorID, err = kernel.UUIDOf(creatorID); err != nil {
			return nil, err
		}
		if approverID.Valid {
			approver, approverErr := kernel.UUIDOf(approverID.UUID)
			if approverErr != nil {
				return nil, approverErr
			}
			resp.ApproverID = &approver
		}
		if adminComment.Valid {
			comment := adminComment.String
			resp.AdminComment = &comment
		}
		resp.Status = order.Status(status)
		if err = resp.Status.Validate(); err != nil {
			return nil, fmt.Errorf("order %s: %w", resp.ID, err)
		}
		resp.Items = make([]OrderItemResponse, 0)

		index[resp.ID] = len(orders)
		ids = append(ids, resp.ID.String())
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return orders, nil
	}

	if err = attachItems(ctx, db, ids, orders, index); err != nil {
		return nil, err
	}

	return orders, nil
}

func attachItems(ctx context.Context, db *gorm.DB, ids []string, orders []OrderResponse, index map[kernel.UUID]int) error {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			oi.order_id,
			oi.product_id,
			p.code,
			p.name,
			p.unit,
			oi.quantity
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY(?)
		ORDER BY oi.order_id, oi.position
	`, pq.Array(ids)).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID, productID uuid.UUID
			item               OrderItemResponse
		)

		if err = rows.Scan(
			&orderID,
			&productID,
			&item.ProductCode,
			&item.ProductName,
			&item.Unit,
			&item.Quantity,
		); err != nil {
			return err
		}

		oid, idErr := kernel.UUIDOf(orderID)
		if idErr != nil {
			return idErr
		}
		if item.ProductID, err = kernel.UUIDOf(productID); err != nil {
			return err
		}

		i, ok := index[oid]
		if !ok {
			continue
		}
		orders[i].Items = append(orders[i].Items, item)
	}

	return rows.Err()
}
