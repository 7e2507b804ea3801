package product

import (
	"errors"
	"fmt"

	"procurement/internal/core/domain/model/kernel"
)

var (
	// ErrInsufficientStock is the sentinel behind InsufficientStockError.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrProductIsNotConstructed is returned when a Product was not created via NewProduct.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")
)

// InsufficientStockError names the product whose stock cannot cover a request.
// Available is -1 when the value was not observed (conditional SQL update).
type InsufficientStockError struct {
	ProductID kernel.UUID
	Requested int
	Available int
}

func NewInsufficientStockError(productID kernel.UUID, requested, available int) *InsufficientStockError {
	return &InsufficientStockError{ProductID: productID, Requested: requested, Available: available}
}

func (e *InsufficientStockError) Error() string {
	if e.Available < 0 {
		return fmt.Sprintf("%s: product %s cannot cover %d", ErrInsufficientStock, e.ProductID, e.Requested)
	}
	return fmt.Sprintf("%s: product %s has %d, requested %d", ErrInsufficientStock, e.ProductID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
