package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stocktrail/backend/internal/domain/shared"
	"github.com/stocktrail/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:          "test-secret-key-for-unit-tests",
		TokenExpiration: expiration,
		Issuer:          "stocktrail-test",
	}, nil)
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip preserves identity and role", func(t *testing.T) {
		service := newTestJWTService(time.Hour)
		userID := uuid.New()

		token, expiresAt, err := service.IssueToken(userID, "alice", shared.RoleAdmin)
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

		claims, err := service.ValidateToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "alice", claims.Username)
		assert.Equal(t, "admin", claims.Role)
		assert.Equal(t, "stocktrail-test", claims.Issuer)
	})

	t.Run("rejects a token signed with a different secret", func(t *testing.T) {
		issuer := newTestJWTService(time.Hour)
		validator := NewJWTService(config.JWTConfig{
			Secret:          "another-secret-entirely",
			TokenExpiration: time.Hour,
			Issuer:          "stocktrail-test",
		}, nil)

		token, _, err := issuer.IssueToken(uuid.New(), "alice", shared.RoleBuyer)
		require.NoError(t, err)

		_, err = validator.ValidateToken(ctx, token)
		assert.Equal(t, ErrInvalidToken, err)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		service := newTestJWTService(-time.Minute)

		token, _, err := service.IssueToken(uuid.New(), "alice", shared.RoleSeller)
		require.NoError(t, err)

		_, err = service.ValidateToken(ctx, token)
		assert.Equal(t, ErrExpiredToken, err)
	})

	t.Run("rejects garbage input", func(t *testing.T) {
		service := newTestJWTService(time.Hour)

		_, err := service.ValidateToken(ctx, "not.a.token")
		assert.Equal(t, ErrInvalidToken, err)
	})

	t.Run("rejects a token carrying an unknown role", func(t *testing.T) {
		service := newTestJWTService(time.Hour)

		claims := &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        uuid.New().String(),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				IssuedAt:  jwt.NewNumericDate(time.Now()),
			},
			UserID:   uuid.New().String(),
			Username: "alice",
			Role:     "superuser",
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte("test-secret-key-for-unit-tests"))
		require.NoError(t, err)

		_, err = service.ValidateToken(ctx, signed)
		assert.Equal(t, ErrInvalidClaims, err)
	})

	t.Run("rejects a token without a user ID", func(t *testing.T) {
		service := newTestJWTService(time.Hour)

		claims := &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        uuid.New().String(),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				IssuedAt:  jwt.NewNumericDate(time.Now()),
			},
			Username: "alice",
			Role:     "buyer",
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte("test-secret-key-for-unit-tests"))
		require.NoError(t, err)

		_, err = service.ValidateToken(ctx, signed)
		assert.Equal(t, ErrInvalidClaims, err)
	})
}

func TestJWTService_RevokeToken(t *testing.T) {
	ctx := context.Background()

	t.Run("revocation without a blacklist is a no-op", func(t *testing.T) {
		service := newTestJWTService(time.Hour)

		token, _, err := service.IssueToken(uuid.New(), "alice", shared.RoleAdmin)
		require.NoError(t, err)

		require.NoError(t, service.RevokeToken(ctx, token))

		// Without a blacklist the token stays valid until expiry.
		_, err = service.ValidateToken(ctx, token)
		assert.NoError(t, err)
	})
}
