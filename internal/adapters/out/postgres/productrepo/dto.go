// Package productrepo persists catalog products and owns the only code path
// that changes stock.
package productrepo

import (
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// ProductDTO is a row of the products table. The check constraint keeps stock
// non-negative even for writes that bypass DecrementStock.
type ProductDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code  string    `gorm:"not null;uniqueIndex"`
	Name  string    `gorm:"not null"`
	Unit  string    `gorm:"not null"`
	Stock int       `gorm:"not null;check:stock_non_negative,stock >= 0"`
}

func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(p *product.Product) ProductDTO {
	return ProductDTO{
		ID:    p.ID().Bytes(),
		Code:  p.Code(),
		Name:  p.Name(),
		Unit:  p.Unit(),
		Stock: p.Stock(),
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDOf(dto.ID)
	if err != nil {
		return nil, err
	}
	return product.NewProduct(id, dto.Code, dto.Name, dto.Unit, dto.Stock)
}
