package identity

import (
	"testing"
	"time"

	"github.com/stocktrail/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates user with hashed password", func(t *testing.T) {
		user, err := NewUser("alice", "Alice@Example.com", "s3cret-pass", shared.RoleSeller)
		require.NoError(t, err)

		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, shared.RoleSeller, user.Role)
		assert.True(t, user.Active)
		assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
		assert.True(t, user.CheckPassword("s3cret-pass"))
		assert.False(t, user.CheckPassword("wrong"))
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser("alice", "alice@example.com", "short", shared.RoleBuyer)
		require.Error(t, err)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := NewUser("alice", "alice@example.com", "s3cret-pass", shared.Role("manager"))
		require.Error(t, err)
	})

	t.Run("rejects empty username", func(t *testing.T) {
		_, err := NewUser("  ", "alice@example.com", "s3cret-pass", shared.RoleBuyer)
		require.Error(t, err)
	})
}

func TestUser_RecordLogin(t *testing.T) {
	user, err := NewUser("alice", "alice@example.com", "s3cret-pass", shared.RoleAdmin)
	require.NoError(t, err)
	require.Nil(t, user.LastLoginAt)

	now := time.Now()
	user.RecordLogin(now)
	require.NotNil(t, user.LastLoginAt)
	assert.Equal(t, now, *user.LastLoginAt)
}

func TestRole_Checks(t *testing.T) {
	assert.True(t, shared.RoleAdmin.IsAdmin())
	assert.True(t, shared.RoleSuperAdmin.IsAdmin())
	assert.False(t, shared.RoleSeller.IsAdmin())
	assert.True(t, shared.RoleSeller.IsSeller())
	assert.True(t, shared.RoleBuyer.IsBuyer())
	assert.False(t, shared.RoleBuyer.IsSeller())
}
