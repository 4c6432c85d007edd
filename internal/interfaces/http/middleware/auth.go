package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stocktrail/backend/internal/domain/shared"
	"github.com/stocktrail/backend/internal/infrastructure/auth"
	"github.com/stocktrail/backend/internal/infrastructure/logger"
	"github.com/stocktrail/backend/internal/interfaces/http/dto"
)

// Auth context keys
const (
	UserIDKey   = "auth_user_id"
	UsernameKey = "auth_username"
	RoleKey     = "auth_role"

	authHeaderKey = "Authorization"
	bearerPrefix  = "Bearer "
)

// JWTAuth validates the bearer token on every request and stores the
// caller's identity in the gin context.
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(authHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, bearerPrefix)
		claims, err := jwtService.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				abortUnauthorized(c, "Token has expired")
			case errors.Is(err, auth.ErrTokenBlacklisted):
				abortUnauthorized(c, "Token has been revoked")
			default:
				abortUnauthorized(c, "Invalid token")
			}
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UsernameKey, claims.Username)
		c.Set(RoleKey, shared.Role(claims.Role))

		ctx, _ := logger.WithUserID(c.Request.Context(), logger.FromContext(c.Request.Context()), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetUserID returns the authenticated user's ID from the gin context
func GetUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

// GetUsername returns the authenticated username from the gin context
func GetUsername(c *gin.Context) string {
	return c.GetString(UsernameKey)
}

// GetRole returns the authenticated user's role from the gin context
func GetRole(c *gin.Context) shared.Role {
	if v, ok := c.Get(RoleKey); ok {
		if role, ok := v.(shared.Role); ok {
			return role
		}
	}
	return ""
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, message, GetRequestID(c)))
}
