package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/stocktrail/backend/internal/domain/audit"
	"github.com/stocktrail/backend/internal/domain/identity"
	"github.com/stocktrail/backend/internal/domain/inventory"
	"github.com/stocktrail/backend/internal/domain/partner"
	"github.com/stocktrail/backend/internal/domain/shared"
	"github.com/stocktrail/backend/internal/domain/trade"
	"github.com/stocktrail/backend/internal/infrastructure/config"
	"github.com/stocktrail/backend/internal/infrastructure/logger"
	"github.com/stocktrail/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	var (
		logLevel      string
		seedAdmin     bool
		adminUsername string
		adminEmail    string
		adminPassword string
	)

	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&seedAdmin, "seed-admin", false, "Create an initial admin user if none exists")
	flag.StringVar(&adminUsername, "admin-username", "admin", "Username for the seeded admin user")
	flag.StringVar(&adminEmail, "admin-email", "admin@localhost", "Email for the seeded admin user")
	flag.StringVar(&adminPassword, "admin-password", "", "Password for the seeded admin user (required with -seed-admin)")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	log.Info("Running schema migration", zap.String("database", cfg.Database.DBName))

	if err := migrate(db.DB); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}
	log.Info("Schema migration completed")

	if seedAdmin {
		if adminPassword == "" {
			log.Fatal("Admin password required. Usage: migrate -seed-admin -admin-password <password>")
		}
		created, err := ensureAdmin(db.DB, adminUsername, adminEmail, adminPassword)
		if err != nil {
			log.Fatal("Failed to seed admin user", zap.Error(err))
		}
		if created {
			log.Info("Admin user created", zap.String("username", adminUsername))
		} else {
			log.Info("Admin user already exists, skipping", zap.String("username", adminUsername))
		}
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&identity.User{},
		&partner.Supplier{},
		&partner.Customer{},
		&partner.Location{},
		&inventory.Item{},
		&inventory.StockLevel{},
		&inventory.StockTransaction{},
		&trade.PurchaseOrder{},
		&trade.PurchaseOrderItem{},
		&trade.SalesOrder{},
		&trade.SalesOrderItem{},
		&trade.ReturnEntry{},
		&trade.ReturnItem{},
		&audit.AuditLog{},
	)
}

func ensureAdmin(db *gorm.DB, username, email, password string) (bool, error) {
	var count int64
	if err := db.Model(&identity.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	user, err := identity.NewUser(username, email, password, shared.RoleAdmin)
	if err != nil {
		return false, err
	}
	if err := db.Create(user).Error; err != nil {
		return false, err
	}
	return true, nil
}
