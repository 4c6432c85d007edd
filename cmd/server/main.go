package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	auditapp "github.com/stocktrail/backend/internal/application/audit"
	identityapp "github.com/stocktrail/backend/internal/application/identity"
	inventoryapp "github.com/stocktrail/backend/internal/application/inventory"
	partnerapp "github.com/stocktrail/backend/internal/application/partner"
	reportapp "github.com/stocktrail/backend/internal/application/report"
	tradeapp "github.com/stocktrail/backend/internal/application/trade"
	"github.com/stocktrail/backend/internal/infrastructure/auth"
	"github.com/stocktrail/backend/internal/infrastructure/config"
	"github.com/stocktrail/backend/internal/infrastructure/event"
	"github.com/stocktrail/backend/internal/infrastructure/logger"
	"github.com/stocktrail/backend/internal/infrastructure/persistence"
	"github.com/stocktrail/backend/internal/interfaces/http/handler"
	"github.com/stocktrail/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
	)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	blacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	jwtService := auth.NewJWTService(cfg.JWT, blacklist)

	// Repositories
	itemRepo := persistence.NewGormItemRepository(db.DB)
	levelRepo := persistence.NewGormStockLevelRepository(db.DB)
	stockTxRepo := persistence.NewGormStockTransactionRepository(db.DB)
	purchaseOrderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	salesOrderRepo := persistence.NewGormSalesOrderRepository(db.DB)
	returnRepo := persistence.NewGormReturnRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	locationRepo := persistence.NewGormLocationRepository(db.DB)
	auditRepo := persistence.NewGormAuditRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	inventoryScope := persistence.NewGormTransactionScope(db.DB)
	tradeScope := persistence.NewGormTradeTransactionScope(db.DB)

	// Events
	eventBus := event.NewInMemoryEventBus(log)
	recorder := auditapp.NewRecorder(auditRepo, log)
	eventBus.Subscribe(recorder)
	thresholdHandler := inventoryapp.NewStockBelowThresholdHandler(log)
	eventBus.Subscribe(thresholdHandler)

	// Application services
	stockService := inventoryapp.NewStockService(inventoryScope, itemRepo, levelRepo, stockTxRepo, locationRepo)
	stockService.SetEventPublisher(eventBus)
	itemService := inventoryapp.NewItemService(itemRepo, stockService)
	itemService.SetEventPublisher(eventBus)

	purchaseOrderService := tradeapp.NewPurchaseOrderService(tradeScope, purchaseOrderRepo, itemRepo, supplierRepo, stockService)
	purchaseOrderService.SetEventPublisher(eventBus)
	salesOrderService := tradeapp.NewSalesOrderService(tradeScope, salesOrderRepo, itemRepo, customerRepo, stockService)
	salesOrderService.SetEventPublisher(eventBus)
	returnService := tradeapp.NewReturnService(tradeScope, returnRepo, itemRepo, stockService, cfg.Inventory.SupplierReturnRestocks)
	returnService.SetEventPublisher(eventBus)

	supplierService := partnerapp.NewSupplierService(supplierRepo)
	customerService := partnerapp.NewCustomerService(customerRepo)
	locationService := partnerapp.NewLocationService(locationRepo)
	authService := identityapp.NewAuthService(userRepo, jwtService)
	auditQueryService := auditapp.NewQueryService(auditRepo)
	dashboardService := reportapp.NewDashboardService(itemRepo, purchaseOrderRepo, salesOrderRepo)

	engine := router.New(cfg, log, jwtService, router.Handlers{
		Auth:          handler.NewAuthHandler(authService),
		Inventory:     handler.NewInventoryHandler(itemService, stockService),
		PurchaseOrder: handler.NewPurchaseOrderHandler(purchaseOrderService),
		SalesOrder:    handler.NewSalesOrderHandler(salesOrderService),
		Return:        handler.NewReturnHandler(returnService),
		Supplier:      handler.NewSupplierHandler(supplierService),
		Customer:      handler.NewCustomerHandler(customerService),
		Location:      handler.NewLocationHandler(locationService),
		Audit:         handler.NewAuditHandler(auditQueryService),
		Report:        handler.NewReportHandler(dashboardService),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
