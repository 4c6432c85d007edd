package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stocktrail/backend/internal/domain/shared"
	"github.com/stocktrail/backend/internal/interfaces/http/dto"
)

// RequireRole rejects requests from callers whose role is not in the
// allowed set. Admin roles always pass.
func RequireRole(allowed ...shared.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		if role.IsAdmin() {
			c.Next()
			return
		}
		for _, r := range allowed {
			if role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden,
			dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden,
				"Insufficient permissions for this operation", GetRequestID(c)))
	}
}

// RequireAdmin rejects requests from non-admin callers
func RequireAdmin() gin.HandlerFunc {
	return RequireRole()
}
