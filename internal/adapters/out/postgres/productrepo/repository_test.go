package productrepo_test

import (
	"errors"
	"regexp"
	"testing"

	"procurement/internal/adapters/out/postgres/productrepo"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/product"
	"procurement/internal/pkg/errs"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	decrementSQL = regexp.QuoteMeta(`UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $3`)
	stockSQL     = regexp.QuoteMeta(`SELECT stock FROM products WHERE id = $1`)
)

func newMockedRepository(t *testing.T) (*productrepo.GormProductRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	return productrepo.NewGormProductRepository(db), mock
}

func TestGormProductRepository_DecrementStock(t *testing.T) {
	ctx := t.Context()

	t.Run("covered request updates one row", func(t *testing.T) {
		repo, mock := newMockedRepository(t)
		id := kernel.NewUUID()
		mock.ExpectExec(decrementSQL).
			WithArgs(3, id.String(), 3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.DecrementStock(ctx, id, 3))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("uncovered request reports available stock", func(t *testing.T) {
		repo, mock := newMockedRepository(t)
		id := kernel.NewUUID()
		mock.ExpectExec(decrementSQL).
			WithArgs(5, id.String(), 5).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(stockSQL).
			WithArgs(id.String()).
			WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(2))

		err := repo.DecrementStock(ctx, id, 5)

		var stockErr *product.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, id, stockErr.ProductID)
		assert.Equal(t, 5, stockErr.Requested)
		assert.Equal(t, 2, stockErr.Available)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing product", func(t *testing.T) {
		repo, mock := newMockedRepository(t)
		id := kernel.NewUUID()
		mock.ExpectExec(decrementSQL).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(stockSQL).WillReturnRows(sqlmock.NewRows([]string{"stock"}))

		err := repo.DecrementStock(ctx, id, 1)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.NotErrorIs(t, err, product.ErrInsufficientStock)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error is returned", func(t *testing.T) {
		repo, mock := newMockedRepository(t)
		mock.ExpectExec(decrementSQL).WillReturnError(errors.New("deadlock detected"))

		err := repo.DecrementStock(ctx, kernel.NewUUID(), 1)

		require.EqualError(t, err, "deadlock detected")
	})

	t.Run("non-positive quantity never reaches the database", func(t *testing.T) {
		repo, mock := newMockedRepository(t)

		err := repo.DecrementStock(ctx, kernel.NewUUID(), 0)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
