package productrepo

import (
	"context"
	"errors"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/product"
	"procurement/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormProductRepository implements ports.ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a product repository on db, which is either
// the pool or an open transaction.
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Add saves a new product. The catalog is maintained outside this service, so
// only seeding and tests create products.
func (r *GormProductRepository) Add(ctx context.Context, p *product.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a product by ID.
func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetMany retrieves the listed products. Unknown ids are left out of the map.
func (r *GormProductRepository) GetMany(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]*product.Product, error) {
	products := make(map[kernel.UUID]*product.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.String())
	}

	var dtos []ProductDTO
	if err := r.db.WithContext(ctx).Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, err
	}

	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		products[p.ID()] = p
	}

	return products, nil
}

// DecrementStock subtracts qty with a single conditional UPDATE. The row lock
// the UPDATE takes serializes concurrent decrements of the same product, and
// the condition makes an uncovered request a no-op.
//
// When no row was updated, a follow-up read tells a missing product
// (errs.ObjectNotFoundError) from insufficient stock (product.InsufficientStockError
// carrying the stock seen at that moment).
func (r *GormProductRepository) DecrementStock(ctx context.Context, id kernel.UUID, qty int) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if qty <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", qty, 1, "unbounded")
	}

	db := r.db.WithContext(ctx)
	result := db.Exec(
		`UPDATE products SET stock = stock - ? WHERE id = ? AND stock >= ?`,
		qty, id.String(), qty,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var available []int
	if err := db.Raw(`SELECT stock FROM products WHERE id = ?`, id.String()).Scan(&available).Error; err != nil {
		return err
	}
	if len(available) == 0 {
		return errs.NewObjectNotFoundError("product", id.String())
	}

	return product.NewInsufficientStockError(id, qty, available[0])
}
