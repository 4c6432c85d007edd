package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktrail/backend/internal/domain/inventory"
	"github.com/stocktrail/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockItemRepository creates a GormItemRepository with a mocked SQL connection
func newMockItemRepository(t *testing.T) (*GormItemRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormItemRepository(gormDB), mock, mockDB
}

func TestNewGormItemRepository(t *testing.T) {
	t.Run("creates repository with valid DB", func(t *testing.T) {
		repo, _, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		assert.NotNil(t, repo)
		assert.NotNil(t, repo.db)
	})
}

func TestGormItemRepository_FindByID(t *testing.T) {
	t.Run("finds existing item", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "sku", "name", "quantity", "cost", "price", "low_stock_threshold", "version"}).
			AddRow(itemID, "WDG-001", "Widget", decimal.NewFromInt(10), decimal.NewFromInt(8), decimal.NewFromInt(12), decimal.Zero, 1)

		mock.ExpectQuery(`SELECT \* FROM "inventory_items" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(itemID, 1).
			WillReturnRows(rows)

		item, err := repo.FindByID(context.Background(), itemID)

		assert.NoError(t, err)
		assert.NotNil(t, item)
		assert.Equal(t, itemID, item.ID)
		assert.Equal(t, "WDG-001", item.SKU)
		assert.True(t, item.Quantity.Equal(decimal.NewFromInt(10)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent item", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "inventory_items" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(itemID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		item, err := repo.FindByID(context.Background(), itemID)

		assert.Error(t, err)
		assert.Nil(t, item)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormItemRepository_FindBySKU(t *testing.T) {
	t.Run("normalizes the SKU before lookup", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "sku", "name"}).
			AddRow(itemID, "WDG-001", "Widget")

		mock.ExpectQuery(`SELECT \* FROM "inventory_items" WHERE sku = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("WDG-001", 1).
			WillReturnRows(rows)

		item, err := repo.FindBySKU(context.Background(), "  wdg-001 ")

		assert.NoError(t, err)
		assert.Equal(t, itemID, item.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormItemRepository_SaveWithLock(t *testing.T) {
	t.Run("updates the row when the version matches", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		item, err := inventory.NewItem("WDG-001", "Widget", decimal.NewFromInt(8), decimal.NewFromInt(12))
		require.NoError(t, err)
		require.NoError(t, item.ApplyDelta(decimal.NewFromInt(5)))

		mock.ExpectExec(`UPDATE "inventory_items" SET .* WHERE id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.SaveWithLock(context.Background(), item)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fails when another transaction already bumped the version", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		item, err := inventory.NewItem("WDG-001", "Widget", decimal.NewFromInt(8), decimal.NewFromInt(12))
		require.NoError(t, err)
		require.NoError(t, item.ApplyDelta(decimal.NewFromInt(5)))

		mock.ExpectExec(`UPDATE "inventory_items" SET .* WHERE id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.SaveWithLock(context.Background(), item)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "OPTIMISTIC_LOCK_FAILED", domainErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormItemRepository_Delete(t *testing.T) {
	t.Run("deletes existing item", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()

		mock.ExpectExec(`DELETE FROM "inventory_items" WHERE id = \$1`).
			WithArgs(itemID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), itemID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when nothing was deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()

		mock.ExpectExec(`DELETE FROM "inventory_items" WHERE id = \$1`).
			WithArgs(itemID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.Equal(t, shared.ErrNotFound, repo.Delete(context.Background(), itemID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormItemRepository_ExistsBySKU(t *testing.T) {
	t.Run("reports an existing SKU", func(t *testing.T) {
		repo, mock, mockDB := newMockItemRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "inventory_items" WHERE sku = \$1`).
			WithArgs("WDG-001").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsBySKU(context.Background(), "wdg-001")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
