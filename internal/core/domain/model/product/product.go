package product

import (
	"errors"
	"fmt"
	"strings"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
)

// Product is a catalog entry with its shared stock.
//
// Invariants:
//   - Code and name are non-empty
//   - Stock is never negative
//   - Stock only decreases through Decrement (approval), never on order creation
type Product struct {
	id    kernel.UUID
	code  string
	name  string
	unit  string
	stock int

	isConstructed bool
}

// NewProduct validates and creates a product.
func NewProduct(id kernel.UUID, code, name, unit string, stock int) (*Product, error) {
	p := &Product{isConstructed: true}

	if err := errors.Join(
		p.setID(id),
		p.setCode(code),
		p.setName(name),
		p.setStock(stock),
	); err != nil {
		return nil, err
	}
	p.unit = strings.TrimSpace(unit)

	return p, nil
}

// Validate ensures the product was created through NewProduct.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

func (p *Product) ID() kernel.UUID { return p.id }
func (p *Product) Code() string    { return p.code }
func (p *Product) Name() string    { return p.name }
func (p *Product) Unit() string    { return p.unit }
func (p *Product) Stock() int      { return p.stock }

// CanCover is the advisory check used at order creation. It does not reserve anything.
func (p *Product) CanCover(qty int) bool {
	return qty <= p.stock
}

// Decrement removes qty from stock or fails with InsufficientStockError,
// leaving stock unchanged.
func (p *Product) Decrement(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", qty))
	}
	if qty > p.stock {
		return NewInsufficientStockError(p.id, qty, p.stock)
	}
	p.stock -= qty
	return nil
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	p.code = code
	return nil
}

func (p *Product) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Product) setStock(stock int) error {
	if stock < 0 {
		return errs.NewValueIsOutOfRangeError("stock", stock, 0, "unbounded")
	}
	p.stock = stock
	return nil
}
