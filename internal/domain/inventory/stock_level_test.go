package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktrail/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStockLevel(t *testing.T) {
	itemID := uuid.New()
	locationID := uuid.New()

	t.Run("creates ledger row with opening quantity", func(t *testing.T) {
		level, err := NewStockLevel(itemID, locationID, decimal.NewFromInt(5))
		require.NoError(t, err)
		assert.Equal(t, itemID, level.ItemID)
		assert.Equal(t, locationID, level.LocationID)
		assert.True(t, level.Quantity.Equal(decimal.NewFromInt(5)))
	})

	t.Run("allows zero opening quantity", func(t *testing.T) {
		_, err := NewStockLevel(itemID, locationID, decimal.Zero)
		require.NoError(t, err)
	})

	t.Run("rejects negative opening quantity", func(t *testing.T) {
		_, err := NewStockLevel(itemID, locationID, decimal.NewFromInt(-1))
		require.Error(t, err)
		assert.Equal(t, shared.ErrInsufficientStock, err)
	})

	t.Run("rejects nil item or location", func(t *testing.T) {
		_, err := NewStockLevel(uuid.Nil, locationID, decimal.Zero)
		require.Error(t, err)
		_, err = NewStockLevel(itemID, uuid.Nil, decimal.Zero)
		require.Error(t, err)
	})
}

func TestStockLevel_Apply(t *testing.T) {
	level, err := NewStockLevel(uuid.New(), uuid.New(), decimal.NewFromInt(10))
	require.NoError(t, err)

	require.NoError(t, level.Apply(decimal.NewFromInt(-10)))
	assert.True(t, level.Quantity.IsZero())

	err = level.Apply(decimal.NewFromInt(-1))
	require.Error(t, err)
	assert.Equal(t, shared.ErrInsufficientStock, err)
	assert.True(t, level.Quantity.IsZero(), "row unchanged on rejection")
}

func TestTransactionType_SignedDelta(t *testing.T) {
	qty := decimal.NewFromInt(5)

	t.Run("receive is always positive", func(t *testing.T) {
		delta, err := TransactionTypeReceive.SignedDelta(qty)
		require.NoError(t, err)
		assert.True(t, delta.Equal(decimal.NewFromInt(5)))

		delta, err = TransactionTypeReceive.SignedDelta(qty.Neg())
		require.NoError(t, err)
		assert.True(t, delta.Equal(decimal.NewFromInt(5)))
	})

	t.Run("issue is always negative", func(t *testing.T) {
		delta, err := TransactionTypeIssue.SignedDelta(qty)
		require.NoError(t, err)
		assert.True(t, delta.Equal(decimal.NewFromInt(-5)))

		delta, err = TransactionTypeIssue.SignedDelta(qty.Neg())
		require.NoError(t, err)
		assert.True(t, delta.Equal(decimal.NewFromInt(-5)))
	})

	t.Run("adjust carries the sign through", func(t *testing.T) {
		delta, err := TransactionTypeAdjust.SignedDelta(qty.Neg())
		require.NoError(t, err)
		assert.True(t, delta.Equal(decimal.NewFromInt(-5)))
	})

	t.Run("unknown type fails", func(t *testing.T) {
		_, err := TransactionType("transfer").SignedDelta(qty)
		require.Error(t, err)
	})
}

func TestNewStockTransaction(t *testing.T) {
	itemID := uuid.New()
	locationID := uuid.New()

	t.Run("creates movement record", func(t *testing.T) {
		tx, err := NewStockTransaction(itemID, locationID, TransactionTypeReceive, decimal.NewFromInt(5), "PO received", "PO-2026-00001")
		require.NoError(t, err)
		assert.Equal(t, TransactionTypeReceive, tx.Type)
		assert.True(t, tx.IsInbound())
	})

	t.Run("rejects zero quantity change", func(t *testing.T) {
		_, err := NewStockTransaction(itemID, locationID, TransactionTypeAdjust, decimal.Zero, "", "")
		require.Error(t, err)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewStockTransaction(itemID, locationID, TransactionType("transfer"), decimal.NewFromInt(1), "", "")
		require.Error(t, err)
	})
}
