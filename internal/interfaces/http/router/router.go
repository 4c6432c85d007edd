package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stocktrail/backend/internal/domain/shared"
	"github.com/stocktrail/backend/internal/infrastructure/auth"
	"github.com/stocktrail/backend/internal/infrastructure/config"
	"github.com/stocktrail/backend/internal/infrastructure/logger"
	"github.com/stocktrail/backend/internal/interfaces/http/handler"
	"github.com/stocktrail/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers bundles the handlers the router wires up
type Handlers struct {
	Auth          *handler.AuthHandler
	Inventory     *handler.InventoryHandler
	PurchaseOrder *handler.PurchaseOrderHandler
	SalesOrder    *handler.SalesOrderHandler
	Return        *handler.ReturnHandler
	Supplier      *handler.SupplierHandler
	Customer      *handler.CustomerHandler
	Location      *handler.LocationHandler
	Audit         *handler.AuditHandler
	Report        *handler.ReportHandler
}

// New builds the gin engine with all routes and middleware wired
func New(cfg *config.Config, log *zap.Logger, jwtService *auth.JWTService, h Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.CORS(cfg.HTTP))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := engine.Group("/api/v1")

	// Public routes
	v1.POST("/auth/login", h.Auth.Login)

	// Everything else requires a valid token
	authed := v1.Group("")
	authed.Use(middleware.JWTAuth(jwtService))

	authed.POST("/auth/logout", h.Auth.Logout)
	authed.GET("/auth/me", h.Auth.Me)
	authed.POST("/auth/register", middleware.RequireAdmin(), h.Auth.Register)

	// Inventory: everyone reads, admins mutate
	authed.GET("/items", h.Inventory.ListItems)
	authed.GET("/items/:id", h.Inventory.GetItem)
	authed.GET("/items/:id/stock-levels", h.Inventory.GetItemStockLevels)
	authed.POST("/items", middleware.RequireAdmin(), h.Inventory.CreateItem)
	authed.PUT("/items/:id", middleware.RequireAdmin(), h.Inventory.UpdateItem)
	authed.DELETE("/items/:id", middleware.RequireAdmin(), h.Inventory.DeleteItem)

	authed.POST("/stock/adjustments", middleware.RequireAdmin(), h.Inventory.AdjustStock)
	authed.GET("/stock/transactions", h.Inventory.ListTransactions)

	// Purchase orders: sellers work their own pipeline, admins everything.
	// Fine-grained status rules live in the application layer.
	authed.GET("/purchase-orders", h.PurchaseOrder.List)
	authed.GET("/purchase-orders/:id", h.PurchaseOrder.Get)
	authed.POST("/purchase-orders", middleware.RequireRole(shared.RoleSeller), h.PurchaseOrder.Create)
	authed.PUT("/purchase-orders/:id", middleware.RequireRole(shared.RoleSeller), h.PurchaseOrder.Update)
	authed.DELETE("/purchase-orders/:id", middleware.RequireAdmin(), h.PurchaseOrder.Delete)

	// Sales orders: buyers work their own pipeline, admins everything
	authed.GET("/sales-orders", h.SalesOrder.List)
	authed.GET("/sales-orders/:id", h.SalesOrder.Get)
	authed.POST("/sales-orders", middleware.RequireRole(shared.RoleBuyer), h.SalesOrder.Create)
	authed.PUT("/sales-orders/:id", middleware.RequireRole(shared.RoleBuyer), h.SalesOrder.Update)
	authed.DELETE("/sales-orders/:id", middleware.RequireAdmin(), h.SalesOrder.Delete)

	// Returns
	authed.GET("/returns", h.Return.List)
	authed.GET("/returns/:id", h.Return.Get)
	authed.POST("/returns", middleware.RequireAdmin(), h.Return.Create)
	authed.PUT("/returns/:id", middleware.RequireAdmin(), h.Return.Update)
	authed.DELETE("/returns/:id", middleware.RequireAdmin(), h.Return.Delete)

	// Partners and locations
	authed.GET("/suppliers", h.Supplier.List)
	authed.GET("/suppliers/:id", h.Supplier.Get)
	authed.POST("/suppliers", middleware.RequireAdmin(), h.Supplier.Create)
	authed.PUT("/suppliers/:id", middleware.RequireAdmin(), h.Supplier.Update)
	authed.DELETE("/suppliers/:id", middleware.RequireAdmin(), h.Supplier.Delete)

	authed.GET("/customers", h.Customer.List)
	authed.GET("/customers/:id", h.Customer.Get)
	authed.POST("/customers", middleware.RequireAdmin(), h.Customer.Create)
	authed.PUT("/customers/:id", middleware.RequireAdmin(), h.Customer.Update)
	authed.DELETE("/customers/:id", middleware.RequireAdmin(), h.Customer.Delete)

	authed.GET("/locations", h.Location.List)
	authed.GET("/locations/:id", h.Location.Get)
	authed.POST("/locations", middleware.RequireAdmin(), h.Location.Create)
	authed.PUT("/locations/:id", middleware.RequireAdmin(), h.Location.Update)
	authed.POST("/locations/:id/default", middleware.RequireAdmin(), h.Location.SetDefault)
	authed.DELETE("/locations/:id", middleware.RequireAdmin(), h.Location.Delete)

	// Audit and reporting
	authed.GET("/audit-logs", middleware.RequireAdmin(), h.Audit.List)
	authed.GET("/reports/dashboard", h.Report.Dashboard)

	return engine
}
