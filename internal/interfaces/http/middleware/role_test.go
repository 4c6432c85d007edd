package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stocktrail/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func performWithRole(role shared.Role, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()

	router := gin.New()
	router.GET("/protected",
		func(c *gin.Context) {
			if role != "" {
				c.Set(RoleKey, role)
			}
		},
		handler,
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestRequireRole(t *testing.T) {
	t.Run("allows a listed role", func(t *testing.T) {
		w := performWithRole(shared.RoleSeller, RequireRole(shared.RoleSeller))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects an unlisted role", func(t *testing.T) {
		w := performWithRole(shared.RoleBuyer, RequireRole(shared.RoleSeller))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin passes every gate", func(t *testing.T) {
		w := performWithRole(shared.RoleAdmin, RequireRole(shared.RoleSeller))
		assert.Equal(t, http.StatusOK, w.Code)

		w = performWithRole(shared.RoleSuperAdmin, RequireRole(shared.RoleBuyer))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing role is rejected", func(t *testing.T) {
		w := performWithRole("", RequireRole(shared.RoleSeller))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Run("allows admins only", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, performWithRole(shared.RoleAdmin, RequireAdmin()).Code)
		assert.Equal(t, http.StatusForbidden, performWithRole(shared.RoleSeller, RequireAdmin()).Code)
		assert.Equal(t, http.StatusForbidden, performWithRole(shared.RoleBuyer, RequireAdmin()).Code)
	})
}
