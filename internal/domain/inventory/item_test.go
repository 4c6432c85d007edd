package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stocktrail/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	t.Run("creates item with valid inputs", func(t *testing.T) {
		item, err := NewItem("wdg-001", "Widget", decimal.NewFromInt(5), decimal.NewFromInt(9))
		require.NoError(t, err)
		require.NotNil(t, item)

		assert.Equal(t, "WDG-001", item.SKU)
		assert.Equal(t, "Widget", item.Name)
		assert.True(t, item.Quantity.IsZero())
		assert.True(t, item.LowStockThreshold.IsZero())
		assert.NotEmpty(t, item.ID)
		assert.Equal(t, 1, item.GetVersion())
	})

	t.Run("fails with empty SKU", func(t *testing.T) {
		_, err := NewItem("  ", "Widget", decimal.Zero, decimal.Zero)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SKU cannot be empty")
	})

	t.Run("fails with negative cost", func(t *testing.T) {
		_, err := NewItem("WDG-001", "Widget", decimal.NewFromInt(-1), decimal.Zero)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Cost cannot be negative")
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewItem("WDG-001", " ", decimal.Zero, decimal.Zero)
		require.Error(t, err)
	})
}

func TestItem_ApplyDelta(t *testing.T) {
	newItem := func(t *testing.T) *Item {
		item, err := NewItem("WDG-001", "Widget", decimal.NewFromInt(5), decimal.NewFromInt(9))
		require.NoError(t, err)
		return item
	}

	t.Run("adds positive delta", func(t *testing.T) {
		item := newItem(t)
		require.NoError(t, item.ApplyDelta(decimal.NewFromInt(10)))
		assert.True(t, item.Quantity.Equal(decimal.NewFromInt(10)))
	})

	t.Run("subtracts down to zero", func(t *testing.T) {
		item := newItem(t)
		require.NoError(t, item.ApplyDelta(decimal.NewFromInt(10)))
		require.NoError(t, item.ApplyDelta(decimal.NewFromInt(-10)))
		assert.True(t, item.Quantity.IsZero())
	})

	t.Run("rejects delta that would go negative", func(t *testing.T) {
		item := newItem(t)
		require.NoError(t, item.ApplyDelta(decimal.NewFromInt(10)))

		err := item.ApplyDelta(decimal.NewFromInt(-15))
		require.Error(t, err)
		assert.Equal(t, shared.ErrInsufficientStock, err)
		assert.True(t, item.Quantity.Equal(decimal.NewFromInt(10)), "quantity must be unchanged on rejection")
	})

	t.Run("increments version on success", func(t *testing.T) {
		item := newItem(t)
		before := item.GetVersion()
		require.NoError(t, item.ApplyDelta(decimal.NewFromInt(1)))
		assert.Equal(t, before+1, item.GetVersion())
	})

	t.Run("raises threshold event when a decrement crosses the threshold", func(t *testing.T) {
		item := newItem(t)
		require.NoError(t, item.SetLowStockThreshold(decimal.NewFromInt(5)))
		require.NoError(t, item.ApplyDelta(decimal.NewFromInt(10)))
		item.ClearDomainEvents()

		require.NoError(t, item.ApplyDelta(decimal.NewFromInt(-7)))

		events := item.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeStockBelowThreshold, events[0].EventType())
	})

	t.Run("no threshold event on increments", func(t *testing.T) {
		item := newItem(t)
		require.NoError(t, item.SetLowStockThreshold(decimal.NewFromInt(5)))
		item.ClearDomainEvents()

		require.NoError(t, item.ApplyDelta(decimal.NewFromInt(2)))
		assert.Empty(t, item.GetDomainEvents())
	})

	t.Run("no threshold event when threshold is zero", func(t *testing.T) {
		item := newItem(t)
		require.NoError(t, item.ApplyDelta(decimal.NewFromInt(3)))
		item.ClearDomainEvents()

		require.NoError(t, item.ApplyDelta(decimal.NewFromInt(-3)))
		assert.Empty(t, item.GetDomainEvents())
	})
}

func TestItem_CanFulfill(t *testing.T) {
	item, err := NewItem("WDG-001", "Widget", decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, item.ApplyDelta(decimal.NewFromInt(10)))

	assert.True(t, item.CanFulfill(decimal.NewFromInt(10)))
	assert.True(t, item.CanFulfill(decimal.NewFromInt(3)))
	assert.False(t, item.CanFulfill(decimal.NewFromInt(11)))
}

func TestItem_IsBelowThreshold(t *testing.T) {
	item, err := NewItem("WDG-001", "Widget", decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	assert.False(t, item.IsBelowThreshold(), "zero threshold disables the alert")

	require.NoError(t, item.SetLowStockThreshold(decimal.NewFromInt(5)))
	assert.True(t, item.IsBelowThreshold())

	require.NoError(t, item.ApplyDelta(decimal.NewFromInt(5)))
	assert.False(t, item.IsBelowThreshold(), "at threshold is not below it")
}

func TestItem_SetLowStockThreshold(t *testing.T) {
	item, err := NewItem("WDG-001", "Widget", decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	err = item.SetLowStockThreshold(decimal.NewFromInt(-1))
	require.Error(t, err)
}

func TestItem_UpdatePricing(t *testing.T) {
	item, err := NewItem("WDG-001", "Widget", decimal.NewFromInt(5), decimal.NewFromInt(9))
	require.NoError(t, err)

	require.NoError(t, item.UpdatePricing(decimal.NewFromInt(6), decimal.NewFromInt(11)))
	assert.True(t, item.Cost.Equal(decimal.NewFromInt(6)))
	assert.True(t, item.Price.Equal(decimal.NewFromInt(11)))

	err = item.UpdatePricing(decimal.NewFromInt(-1), decimal.NewFromInt(11))
	require.Error(t, err)
}
