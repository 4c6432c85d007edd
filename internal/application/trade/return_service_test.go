package trade

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stocktrail/backend/internal/domain/inventory"
	"github.com/stocktrail/backend/internal/domain/shared"
	"github.com/stocktrail/backend/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestReturnService(supplierReturnRestocks bool) (*ReturnService, *tradeServiceMocks) {
	m, scope, stock := newTradeServiceMocks()
	service := NewReturnService(scope, m.retRepo, m.itemRepo, stock, supplierReturnRestocks)
	return service, m
}

func returnInStatus(t *testing.T, item *inventory.Item, returnType trade.ReturnType, target trade.ReturnStatus) *trade.ReturnEntry {
	t.Helper()
	entry, err := trade.NewReturnEntry("RET-2026-00007", returnType)
	require.NoError(t, err)
	require.NoError(t, entry.ReplaceItems([]trade.ReturnLineInput{{
		ItemID:   item.ID,
		Quantity: decimal.NewFromInt(2),
		Reason:   "damaged in transit",
	}}))
	if target != trade.ReturnStatusRequested {
		require.NoError(t, entry.TransitionTo(target, time.Now()))
	}
	entry.ClearDomainEvents()
	return entry
}

func TestReturnService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a customer return in requested", func(t *testing.T) {
		service, m := newTestReturnService(false)
		item := stockedItem(t, 10)

		m.retRepo.On("GenerateReturnNumber", ctx).Return("RET-2026-00001", nil)
		m.itemRepo.On("FindByID", ctx, item.ID).Return(item, nil)
		m.retRepo.On("Save", ctx, mock.AnythingOfType("*trade.ReturnEntry")).Return(nil)

		resp, err := service.Create(ctx, CreateReturnRequest{
			Type: "customer",
			Items: []ReturnLineRequest{
				{ItemID: item.ID, Quantity: decimal.NewFromInt(2), Reason: "damaged"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "requested", resp.Status)
		assert.Equal(t, "RET-2026-00001", resp.ReturnNumber)
		m.txRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown return type is rejected", func(t *testing.T) {
		service, m := newTestReturnService(false)

		m.retRepo.On("GenerateReturnNumber", ctx).Return("RET-2026-00002", nil)

		_, err := service.Create(ctx, CreateReturnRequest{Type: "warranty"})
		require.Error(t, err)
	})
}

func TestReturnService_Receive(t *testing.T) {
	ctx := context.Background()

	t.Run("receiving a customer return restocks every line", func(t *testing.T) {
		service, m := newTestReturnService(false)
		item := stockedItem(t, 10)
		entry := returnInStatus(t, item, trade.ReturnTypeCustomer, trade.ReturnStatusRequested)
		loc := defaultLocation(t)
		status := "received"

		m.retRepo.On("FindByID", ctx, entry.ID).Return(entry, nil)
		m.locationRepo.On("FindDefault", ctx).Return(loc, nil)
		m.retRepo.On("Save", ctx, entry).Return(nil)
		m.itemRepo.On("FindByID", ctx, item.ID).Return(item, nil)
		m.itemRepo.On("SaveWithLock", ctx, item).Return(nil)
		m.levelRepo.On("ApplyDelta", ctx, item.ID, loc.ID, decimal.NewFromInt(2)).Return(nil)
		m.txRepo.On("Create", ctx, mock.MatchedBy(func(tx *inventory.StockTransaction) bool {
			return tx.Type == inventory.TransactionTypeReceive &&
				tx.Reason == "Return received" &&
				tx.Reference == "RET-2026-00007"
		})).Return(nil)

		resp, err := service.Update(ctx, entry.ID, UpdateReturnRequest{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, "received", resp.Status)
		assert.NotNil(t, resp.ReceivedDate)
		assert.True(t, item.Quantity.Equal(decimal.NewFromInt(12)))
		m.txRepo.AssertExpectations(t)
	})

	t.Run("supplier return does not restock by default", func(t *testing.T) {
		service, m := newTestReturnService(false)
		item := stockedItem(t, 10)
		entry := returnInStatus(t, item, trade.ReturnTypeSupplier, trade.ReturnStatusRequested)
		status := "received"

		m.retRepo.On("FindByID", ctx, entry.ID).Return(entry, nil)
		m.retRepo.On("Save", ctx, entry).Return(nil)

		resp, err := service.Update(ctx, entry.ID, UpdateReturnRequest{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, "received", resp.Status)
		assert.True(t, item.Quantity.Equal(decimal.NewFromInt(10)))
		m.txRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("supplier return restocks when configured to", func(t *testing.T) {
		service, m := newTestReturnService(true)
		item := stockedItem(t, 10)
		entry := returnInStatus(t, item, trade.ReturnTypeSupplier, trade.ReturnStatusRequested)
		loc := defaultLocation(t)
		status := "received"

		m.retRepo.On("FindByID", ctx, entry.ID).Return(entry, nil)
		m.locationRepo.On("FindDefault", ctx).Return(loc, nil)
		m.retRepo.On("Save", ctx, entry).Return(nil)
		m.itemRepo.On("FindByID", ctx, item.ID).Return(item, nil)
		m.itemRepo.On("SaveWithLock", ctx, item).Return(nil)
		m.levelRepo.On("ApplyDelta", ctx, item.ID, loc.ID, decimal.NewFromInt(2)).Return(nil)
		m.txRepo.On("Create", ctx, mock.AnythingOfType("*inventory.StockTransaction")).Return(nil)

		_, err := service.Update(ctx, entry.ID, UpdateReturnRequest{Status: &status})
		require.NoError(t, err)
		assert.True(t, item.Quantity.Equal(decimal.NewFromInt(12)))
	})

	t.Run("closing without receiving moves no stock", func(t *testing.T) {
		service, m := newTestReturnService(false)
		item := stockedItem(t, 10)
		entry := returnInStatus(t, item, trade.ReturnTypeCustomer, trade.ReturnStatusRequested)
		status := "closed"

		m.retRepo.On("FindByID", ctx, entry.ID).Return(entry, nil)
		m.retRepo.On("Save", ctx, entry).Return(nil)

		resp, err := service.Update(ctx, entry.ID, UpdateReturnRequest{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, "closed", resp.Status)
		assert.Nil(t, resp.ReceivedDate)
		m.txRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("receiving twice does not restock twice", func(t *testing.T) {
		service, m := newTestReturnService(false)
		item := stockedItem(t, 10)
		entry := returnInStatus(t, item, trade.ReturnTypeCustomer, trade.ReturnStatusReceived)
		status := "received"

		m.retRepo.On("FindByID", ctx, entry.ID).Return(entry, nil)
		m.retRepo.On("Save", ctx, entry).Return(nil)

		resp, err := service.Update(ctx, entry.ID, UpdateReturnRequest{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, "received", resp.Status)
		m.txRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestReturnService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("requested return can be deleted", func(t *testing.T) {
		service, m := newTestReturnService(false)
		item := stockedItem(t, 10)
		entry := returnInStatus(t, item, trade.ReturnTypeCustomer, trade.ReturnStatusRequested)

		m.retRepo.On("FindByID", ctx, entry.ID).Return(entry, nil)
		m.retRepo.On("Delete", ctx, entry.ID).Return(nil)

		require.NoError(t, service.Delete(ctx, entry.ID))
	})

	t.Run("received return cannot be deleted", func(t *testing.T) {
		service, m := newTestReturnService(false)
		item := stockedItem(t, 10)
		entry := returnInStatus(t, item, trade.ReturnTypeCustomer, trade.ReturnStatusReceived)

		m.retRepo.On("FindByID", ctx, entry.ID).Return(entry, nil)

		err := service.Delete(ctx, entry.ID)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		m.retRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
