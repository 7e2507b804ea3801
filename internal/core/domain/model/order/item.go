package order

import (
	"errors"
	"fmt"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

// Item is a line of an order: a product and the requested quantity.
// Items are owned by their order and are removed together with it.
type Item struct {
	productID kernel.UUID
	quantity  int

	guard guard.ConstructorGuard
}

// NewItem validates that the product is identified and the quantity is positive.
func NewItem(productID kernel.UUID, quantity int) (Item, error) {
	item := Item{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		item.setProductID(productID),
		item.setQuantity(quantity),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate ensures the item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ProductID returns the ordered product.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Quantity returns the requested quantity, always > 0.
func (i Item) Quantity() int {
	return i.quantity
}

func (i *Item) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}
