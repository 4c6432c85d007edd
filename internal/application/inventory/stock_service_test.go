package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktrail/backend/internal/domain/inventory"
	"github.com/stocktrail/backend/internal/domain/partner"
	"github.com/stocktrail/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockItemRepository is a mock implementation of inventory.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

func (m *MockItemRepository) FindBySKU(ctx context.Context, sku string) (*inventory.Item, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

func (m *MockItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Item, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.Item), args.Error(1)
}

func (m *MockItemRepository) FindBelowThreshold(ctx context.Context, filter shared.Filter) ([]inventory.Item, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.Item), args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, item *inventory.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) SaveWithLock(ctx context.Context, item *inventory.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

// MockStockLevelRepository is a mock implementation of inventory.StockLevelRepository
type MockStockLevelRepository struct {
	mock.Mock
}

func (m *MockStockLevelRepository) FindByItemAndLocation(ctx context.Context, itemID, locationID uuid.UUID) (*inventory.StockLevel, error) {
	args := m.Called(ctx, itemID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockLevel), args.Error(1)
}

func (m *MockStockLevelRepository) FindByItem(ctx context.Context, itemID uuid.UUID) ([]inventory.StockLevel, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).([]inventory.StockLevel), args.Error(1)
}

func (m *MockStockLevelRepository) FindByLocation(ctx context.Context, locationID uuid.UUID, filter shared.Filter) ([]inventory.StockLevel, error) {
	args := m.Called(ctx, locationID, filter)
	return args.Get(0).([]inventory.StockLevel), args.Error(1)
}

func (m *MockStockLevelRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockLevel, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.StockLevel), args.Error(1)
}

func (m *MockStockLevelRepository) Create(ctx context.Context, level *inventory.StockLevel) error {
	args := m.Called(ctx, level)
	return args.Error(0)
}

func (m *MockStockLevelRepository) ApplyDelta(ctx context.Context, itemID, locationID uuid.UUID, delta decimal.Decimal) error {
	args := m.Called(ctx, itemID, locationID, delta)
	return args.Error(0)
}

func (m *MockStockLevelRepository) SumByItem(ctx context.Context, itemID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockStockLevelRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockStockTransactionRepository is a mock implementation of inventory.StockTransactionRepository
type MockStockTransactionRepository struct {
	mock.Mock
}

func (m *MockStockTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockTransaction), args.Error(1)
}

func (m *MockStockTransactionRepository) FindByItem(ctx context.Context, itemID uuid.UUID, filter shared.Filter) ([]inventory.StockTransaction, error) {
	args := m.Called(ctx, itemID, filter)
	return args.Get(0).([]inventory.StockTransaction), args.Error(1)
}

func (m *MockStockTransactionRepository) FindByType(ctx context.Context, txType inventory.TransactionType, filter shared.Filter) ([]inventory.StockTransaction, error) {
	args := m.Called(ctx, txType, filter)
	return args.Get(0).([]inventory.StockTransaction), args.Error(1)
}

func (m *MockStockTransactionRepository) FindByDateRange(ctx context.Context, start, end time.Time, filter shared.Filter) ([]inventory.StockTransaction, error) {
	args := m.Called(ctx, start, end, filter)
	return args.Get(0).([]inventory.StockTransaction), args.Error(1)
}

func (m *MockStockTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockTransaction, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.StockTransaction), args.Error(1)
}

func (m *MockStockTransactionRepository) Create(ctx context.Context, tx *inventory.StockTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockStockTransactionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockLocationRepository is a mock implementation of partner.LocationRepository
type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Location), args.Error(1)
}

func (m *MockLocationRepository) FindByCode(ctx context.Context, code string) (*partner.Location, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Location), args.Error(1)
}

func (m *MockLocationRepository) FindDefault(ctx context.Context) (*partner.Location, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Location), args.Error(1)
}

func (m *MockLocationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Location, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Location), args.Error(1)
}

func (m *MockLocationRepository) Save(ctx context.Context, location *partner.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockLocationRepository) SetDefault(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLocationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type stockServiceMocks struct {
	itemRepo     *MockItemRepository
	levelRepo    *MockStockLevelRepository
	txRepo       *MockStockTransactionRepository
	locationRepo *MockLocationRepository
}

func newTestStockService() (*StockService, *stockServiceMocks) {
	m := &stockServiceMocks{
		itemRepo:     new(MockItemRepository),
		levelRepo:    new(MockStockLevelRepository),
		txRepo:       new(MockStockTransactionRepository),
		locationRepo: new(MockLocationRepository),
	}
	scope := NewNoOpTransactionScope(m.itemRepo, m.levelRepo, m.txRepo)
	service := NewStockService(scope, m.itemRepo, m.levelRepo, m.txRepo, m.locationRepo)
	return service, m
}

func testItem(t *testing.T, quantity int64) *inventory.Item {
	t.Helper()
	item, err := inventory.NewItem("WDG-001", "Widget", decimal.NewFromInt(5), decimal.NewFromInt(9))
	require.NoError(t, err)
	if quantity > 0 {
		require.NoError(t, item.ApplyDelta(decimal.NewFromInt(quantity)))
	}
	item.ClearDomainEvents()
	return item
}

func testLocation(t *testing.T) *partner.Location {
	t.Helper()
	loc, err := partner.NewLocation("MAIN", "Main Warehouse")
	require.NoError(t, err)
	return loc
}

func TestStockService_ApplyAdjustment(t *testing.T) {
	ctx := context.Background()
	loc := testLocation(t)
	locationID := loc.ID

	t.Run("receive creates the ledger row on first receipt", func(t *testing.T) {
		service, m := newTestStockService()
		item := testItem(t, 0)

		m.locationRepo.On("FindByID", ctx, locationID).Return(loc, nil)
		m.itemRepo.On("FindByID", ctx, item.ID).Return(item, nil)
		m.itemRepo.On("SaveWithLock", ctx, item).Return(nil)
		m.levelRepo.On("ApplyDelta", ctx, item.ID, locationID, decimal.NewFromInt(5)).Return(shared.ErrNotFound)
		m.levelRepo.On("Create", ctx, mock.AnythingOfType("*inventory.StockLevel")).Return(nil)
		m.txRepo.On("Create", ctx, mock.AnythingOfType("*inventory.StockTransaction")).Return(nil)

		result, err := service.ApplyAdjustment(ctx, AdjustmentRequest{
			ItemID:     item.ID,
			LocationID: &locationID,
			Type:       inventory.TransactionTypeReceive,
			Quantity:   decimal.NewFromInt(5),
			Reason:     "opening stock",
		})
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.True(t, result.Item.Quantity.Equal(decimal.NewFromInt(5)))
		assert.True(t, result.Transaction.QuantityChange.Equal(decimal.NewFromInt(5)))
		m.levelRepo.AssertExpectations(t)
		m.txRepo.AssertExpectations(t)
	})

	t.Run("issue rejects an overdraw before any write", func(t *testing.T) {
		service, m := newTestStockService()
		item := testItem(t, 10)

		m.locationRepo.On("FindByID", ctx, locationID).Return(loc, nil)
		m.itemRepo.On("FindByID", ctx, item.ID).Return(item, nil)

		_, err := service.ApplyAdjustment(ctx, AdjustmentRequest{
			ItemID:     item.ID,
			LocationID: &locationID,
			Type:       inventory.TransactionTypeIssue,
			Quantity:   decimal.NewFromInt(15),
		})
		require.Error(t, err)
		assert.Equal(t, shared.ErrInsufficientStock, err)
		m.itemRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
		m.txRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("issue against a missing ledger row fails", func(t *testing.T) {
		service, m := newTestStockService()
		item := testItem(t, 10)

		m.locationRepo.On("FindByID", ctx, locationID).Return(loc, nil)
		m.itemRepo.On("FindByID", ctx, item.ID).Return(item, nil)
		m.itemRepo.On("SaveWithLock", ctx, item).Return(nil)
		m.levelRepo.On("ApplyDelta", ctx, item.ID, locationID, decimal.NewFromInt(-5)).Return(shared.ErrNotFound)

		_, err := service.ApplyAdjustment(ctx, AdjustmentRequest{
			ItemID:     item.ID,
			LocationID: &locationID,
			Type:       inventory.TransactionTypeIssue,
			Quantity:   decimal.NewFromInt(5),
		})
		require.Error(t, err)
		assert.Equal(t, shared.ErrInsufficientStock, err)
		m.levelRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("zero adjust is rejected", func(t *testing.T) {
		service, m := newTestStockService()
		m.locationRepo.On("FindByID", ctx, locationID).Return(loc, nil)

		_, err := service.ApplyAdjustment(ctx, AdjustmentRequest{
			ItemID:     uuid.New(),
			LocationID: &locationID,
			Type:       inventory.TransactionTypeAdjust,
			Quantity:   decimal.Zero,
		})
		require.Error(t, err)
	})

	t.Run("unknown movement type is rejected", func(t *testing.T) {
		service, m := newTestStockService()
		m.locationRepo.On("FindByID", ctx, locationID).Return(loc, nil)

		_, err := service.ApplyAdjustment(ctx, AdjustmentRequest{
			ItemID:     uuid.New(),
			LocationID: &locationID,
			Type:       inventory.TransactionType("transfer"),
			Quantity:   decimal.NewFromInt(1),
		})
		require.Error(t, err)
	})
}

func TestStockService_ResolveLocation(t *testing.T) {
	ctx := context.Background()

	t.Run("falls back to the default location", func(t *testing.T) {
		service, m := newTestStockService()
		loc, err := partner.NewLocation("MAIN", "Main Warehouse")
		require.NoError(t, err)

		m.locationRepo.On("FindDefault", ctx).Return(loc, nil)

		resolved, err := service.ResolveLocation(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, loc.ID, resolved)
	})

	t.Run("missing default is a configuration error", func(t *testing.T) {
		service, m := newTestStockService()
		m.locationRepo.On("FindDefault", ctx).Return(nil, shared.ErrNotFound)

		_, err := service.ResolveLocation(ctx, nil)
		require.Error(t, err)

		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "CONFIGURATION_ERROR", domainErr.Code)
	})

	t.Run("explicit location must exist", func(t *testing.T) {
		service, m := newTestStockService()
		unknown := uuid.New()
		m.locationRepo.On("FindByID", ctx, unknown).Return(nil, shared.ErrNotFound)

		_, err := service.ResolveLocation(ctx, &unknown)
		assert.Equal(t, shared.ErrNotFound, err)
	})
}
