// Package orderrepo persists order aggregates in the orders and order_items
// tables and maps them to and from the domain model.
package orderrepo

import (
	"sort"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is a row of the orders table. Items are owned rows deleted with the order.
type OrderDTO struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	DepartmentID uuid.UUID      `gorm:"type:uuid;not null;index"`
	CreatorID    uuid.UUID      `gorm:"type:uuid;not null"`
	ApproverID   *uuid.UUID     `gorm:"type:uuid"`
	AdminComment *string        `gorm:"type:text"`
	Status       int            `gorm:"not null;index"`
	CreatedAt    time.Time      `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt    time.Time      `gorm:"not null;autoUpdateTime:false"`
	Items        []OrderItemDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is a row of order_items. Position keeps the order of lines,
// which is the order stock is decremented in on approval.
type OrderItemDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position  int       `gorm:"primaryKey;autoIncrement:false"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity  int       `gorm:"not null;check:quantity_positive,quantity > 0"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	var approverID *uuid.UUID
	if id := o.ApproverID(); id != nil {
		raw := id.Bytes()
		approverID = &raw
	}

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, OrderItemDTO{
			OrderID:   o.ID().Bytes(),
			Position:  i + 1,
			ProductID: item.ProductID().Bytes(),
			Quantity:  item.Quantity(),
		})
	}

	return OrderDTO{
		ID:           o.ID().Bytes(),
		DepartmentID: o.DepartmentID().Bytes(),
		CreatorID:    o.CreatorID().Bytes(),
		ApproverID:   approverID,
		AdminComment: o.AdminComment(),
		Status:       int(o.Status()),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
		Items:        items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDOf(dto.ID)
	if err != nil {
		return nil, err
	}
	departmentID, err := kernel.UUIDOf(dto.DepartmentID)
	if err != nil {
		return nil, err
	}
	creatorID, err := kernel.UUIDOf(dto.CreatorID)
	if err != nil {
		return nil, err
	}

	var approverID *kernel.UUID
	if dto.ApproverID != nil {
		aID, approverErr := kernel.UUIDOf(*dto.ApproverID)
		if approverErr != nil {
			return nil, approverErr
		}
		approverID = &aID
	}

	rows := append([]OrderItemDTO(nil), dto.Items...)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Position < rows[j].Position })

	items := make([]order.Item, 0, len(rows))
	for _, row := range rows {
		productID, productErr := kernel.UUIDOf(row.ProductID)
		if productErr != nil {
			return nil, productErr
		}
		item, itemErr := order.NewItem(productID, row.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		departmentID,
		creatorID,
		approverID,
		dto.AdminComment,
		order.Status(dto.Status),
		dto.CreatedAt,
		dto.UpdatedAt,
		items,
	)
}
