package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktrail/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockStockLevelRepository creates a GormStockLevelRepository with a mocked SQL connection
func newMockStockLevelRepository(t *testing.T) (*GormStockLevelRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormStockLevelRepository(gormDB), mock, mockDB
}

func TestGormStockLevelRepository_FindByItemAndLocation(t *testing.T) {
	t.Run("finds existing ledger row", func(t *testing.T) {
		repo, mock, mockDB := newMockStockLevelRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()
		locationID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "item_id", "location_id", "quantity"}).
			AddRow(uuid.New(), itemID, locationID, decimal.NewFromInt(7))

		mock.ExpectQuery(`SELECT \* FROM "stock_levels" WHERE item_id = \$1 AND location_id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(itemID, locationID, 1).
			WillReturnRows(rows)

		level, err := repo.FindByItemAndLocation(context.Background(), itemID, locationID)

		assert.NoError(t, err)
		assert.NotNil(t, level)
		assert.True(t, level.Quantity.Equal(decimal.NewFromInt(7)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for a missing pair", func(t *testing.T) {
		repo, mock, mockDB := newMockStockLevelRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()
		locationID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "stock_levels" WHERE item_id = \$1 AND location_id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(itemID, locationID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		level, err := repo.FindByItemAndLocation(context.Background(), itemID, locationID)

		assert.Nil(t, level)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStockLevelRepository_ApplyDelta(t *testing.T) {
	t.Run("applies the delta when the guard passes", func(t *testing.T) {
		repo, mock, mockDB := newMockStockLevelRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()
		locationID := uuid.New()

		mock.ExpectExec(`UPDATE "stock_levels" SET .* WHERE item_id = \$\d+ AND location_id = \$\d+ AND quantity \+ \$\d+ >= 0`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.ApplyDelta(context.Background(), itemID, locationID, decimal.NewFromInt(-3))

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when no row exists", func(t *testing.T) {
		repo, mock, mockDB := newMockStockLevelRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()
		locationID := uuid.New()

		mock.ExpectExec(`UPDATE "stock_levels" SET .* WHERE item_id = \$\d+ AND location_id = \$\d+ AND quantity \+ \$\d+ >= 0`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "stock_levels" WHERE item_id = \$1 AND location_id = \$2`).
			WithArgs(itemID, locationID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		err := repo.ApplyDelta(context.Background(), itemID, locationID, decimal.NewFromInt(5))

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("refuses a delta that would drive the row negative", func(t *testing.T) {
		repo, mock, mockDB := newMockStockLevelRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()
		locationID := uuid.New()

		mock.ExpectExec(`UPDATE "stock_levels" SET .* WHERE item_id = \$\d+ AND location_id = \$\d+ AND quantity \+ \$\d+ >= 0`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "stock_levels" WHERE item_id = \$1 AND location_id = \$2`).
			WithArgs(itemID, locationID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		err := repo.ApplyDelta(context.Background(), itemID, locationID, decimal.NewFromInt(-10))

		assert.Equal(t, shared.ErrInsufficientStock, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStockLevelRepository_SumByItem(t *testing.T) {
	t.Run("sums quantities across locations", func(t *testing.T) {
		repo, mock, mockDB := newMockStockLevelRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(quantity\), 0\) as total FROM "stock_levels" WHERE item_id = \$1`).
			WithArgs(itemID).
			WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(decimal.NewFromInt(42)))

		total, err := repo.SumByItem(context.Background(), itemID)

		assert.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(42)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
