package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktrail/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReturn(t *testing.T, returnType ReturnType) *ReturnEntry {
	t.Helper()
	entry, err := NewReturnEntry("RET-2026-00001", returnType)
	require.NoError(t, err)
	return entry
}

func TestNewReturnEntry(t *testing.T) {
	t.Run("starts in requested", func(t *testing.T) {
		entry := newTestReturn(t, ReturnTypeCustomer)
		assert.Equal(t, ReturnStatusRequested, entry.Status)
		assert.Equal(t, ReturnTypeCustomer, entry.Type)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewReturnEntry("RET-2026-00001", ReturnType("warranty"))
		require.Error(t, err)
	})

	t.Run("requires a return number", func(t *testing.T) {
		_, err := NewReturnEntry("", ReturnTypeSupplier)
		require.Error(t, err)
	})
}

func TestReturnStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from    ReturnStatus
		to      ReturnStatus
		allowed bool
	}{
		{ReturnStatusRequested, ReturnStatusReceived, true},
		{ReturnStatusRequested, ReturnStatusClosed, true},
		{ReturnStatusReceived, ReturnStatusClosed, true},
		{ReturnStatusReceived, ReturnStatusRequested, false},
		{ReturnStatusClosed, ReturnStatusRequested, false},
		{ReturnStatusClosed, ReturnStatusReceived, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestReturnEntry_TransitionTo(t *testing.T) {
	now := time.Now()

	t.Run("receiving stamps the date and raises the event", func(t *testing.T) {
		entry := newTestReturn(t, ReturnTypeCustomer)
		require.NoError(t, entry.TransitionTo(ReturnStatusReceived, now))

		require.NotNil(t, entry.ReceivedDate)
		assert.Equal(t, now, *entry.ReceivedDate)

		events := entry.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeReturnReceived, events[0].EventType())
	})

	t.Run("same-status request is a no-op", func(t *testing.T) {
		entry := newTestReturn(t, ReturnTypeCustomer)
		require.NoError(t, entry.TransitionTo(ReturnStatusReceived, now))
		entry.ClearDomainEvents()
		before := entry.GetVersion()

		require.NoError(t, entry.TransitionTo(ReturnStatusReceived, now))
		assert.Equal(t, before, entry.GetVersion())
		assert.Empty(t, entry.GetDomainEvents(), "receipt side effects must not double-fire")
	})

	t.Run("closing without receiving leaves no receipt date", func(t *testing.T) {
		entry := newTestReturn(t, ReturnTypeSupplier)
		require.NoError(t, entry.TransitionTo(ReturnStatusClosed, now))
		assert.Nil(t, entry.ReceivedDate)
		assert.Empty(t, entry.GetDomainEvents())
	})

	t.Run("closed is terminal", func(t *testing.T) {
		entry := newTestReturn(t, ReturnTypeCustomer)
		require.NoError(t, entry.TransitionTo(ReturnStatusClosed, now))
		require.Error(t, entry.TransitionTo(ReturnStatusReceived, now))
	})

	t.Run("unknown status fails", func(t *testing.T) {
		entry := newTestReturn(t, ReturnTypeCustomer)
		require.Error(t, entry.TransitionTo(ReturnStatus("rejected"), now))
	})
}

func TestReturnEntry_ReplaceItems(t *testing.T) {
	line := ReturnLineInput{
		ItemID:   uuid.New(),
		Quantity: decimal.NewFromInt(2),
		Reason:   "damaged in transit",
	}

	t.Run("replaces lines while requested", func(t *testing.T) {
		entry := newTestReturn(t, ReturnTypeCustomer)
		require.NoError(t, entry.ReplaceItems([]ReturnLineInput{line}))
		require.Len(t, entry.Items, 1)
		assert.Equal(t, "damaged in transit", entry.Items[0].Reason)
	})

	t.Run("rejects edits after receipt", func(t *testing.T) {
		entry := newTestReturn(t, ReturnTypeCustomer)
		require.NoError(t, entry.TransitionTo(ReturnStatusReceived, time.Now()))

		err := entry.ReplaceItems([]ReturnLineInput{line})
		assert.Equal(t, shared.ErrInvalidState, err)
	})

	t.Run("rejects a non-positive quantity", func(t *testing.T) {
		entry := newTestReturn(t, ReturnTypeCustomer)
		err := entry.ReplaceItems([]ReturnLineInput{{ItemID: uuid.New(), Quantity: decimal.Zero}})
		require.Error(t, err)
	})
}
