package product_test

import (
	"testing"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/product"
	"procurement/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("should create valid product", func(t *testing.T) {
		id := kernel.NewUUID()

		p, err := product.NewProduct(id, " A4-500 ", "Copy paper A4", "pack", 5)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.True(t, p.ID().IsEqual(id))
		assert.Equal(t, "A4-500", p.Code())
		assert.Equal(t, "Copy paper A4", p.Name())
		assert.Equal(t, "pack", p.Unit())
		assert.Equal(t, 5, p.Stock())
	})

	t.Run("should reject negative stock", func(t *testing.T) {
		_, err := product.NewProduct(kernel.NewUUID(), "PEN", "Pen", "pcs", -1)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should require code and name", func(t *testing.T) {
		_, err := product.NewProduct(kernel.NewUUID(), "", " ", "pcs", 1)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "code")
		assert.Contains(t, err.Error(), "name")
	})
}

func TestProduct_Decrement(t *testing.T) {
	newProduct := func(stock int) *product.Product {
		p, err := product.NewProduct(kernel.NewUUID(), "STAPLER", "Stapler", "pcs", stock)
		require.NoError(t, err)
		return p
	}

	t.Run("exact stock can be taken", func(t *testing.T) {
		p := newProduct(5)

		require.NoError(t, p.Decrement(5))
		assert.Equal(t, 0, p.Stock())
	})

	t.Run("over-request is refused, not clamped", func(t *testing.T) {
		p := newProduct(2)

		err := p.Decrement(3)

		var stockErr *product.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.True(t, stockErr.ProductID.IsEqual(p.ID()))
		assert.Equal(t, 3, stockErr.Requested)
		assert.Equal(t, 2, stockErr.Available)
		assert.Equal(t, 2, p.Stock())
		assert.ErrorIs(t, err, product.ErrInsufficientStock)
	})

	t.Run("non-positive quantity is invalid", func(t *testing.T) {
		p := newProduct(2)

		require.ErrorIs(t, p.Decrement(0), errs.ErrValueIsInvalid)
		assert.Equal(t, 2, p.Stock())
	})

	t.Run("advisory check", func(t *testing.T) {
		p := newProduct(1)

		assert.True(t, p.CanCover(1))
		assert.False(t, p.CanCover(2))
		assert.Equal(t, 1, p.Stock())
	})
}

func TestInsufficientStockError_Message(t *testing.T) {
	id := kernel.NewUUID()

	assert.Equal(t,
		"insufficient stock: product "+id.String()+" has 0, requested 1",
		product.NewInsufficientStockError(id, 1, 0).Error())
	assert.Equal(t,
		"insufficient stock: product "+id.String()+" cannot cover 4",
		product.NewInsufficientStockError(id, 4, -1).Error())
}
