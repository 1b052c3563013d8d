package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shopmate/shopmate-api/internal/config"
	"github.com/shopmate/shopmate-api/internal/domain/entity"
	"github.com/shopmate/shopmate-api/internal/domain/enum"
	"github.com/shopmate/shopmate-api/pkg/utils"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Warn

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	logrus.Info("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	logrus.Info("Running database migrations...")

	err := db.AutoMigrate(
		// Account entities
		&entity.User{},
		&entity.Profile{},
		&entity.PasswordResetToken{},

		// Shop entities
		&entity.Shop{},
		&entity.ShopMembership{},
		&entity.Branch{},

		// Catalog entities
		&entity.Category{},
		&entity.Product{},

		// Trading entities
		&entity.Customer{},
		&entity.Sale{},
		&entity.SaleItem{},
		&entity.Invoice{},
		&entity.Expense{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logrus.Info("Database migrations completed successfully")
	return nil
}

// SeedDefaultData creates the demo owner account and shop when configured
// via DEMO_OWNER_EMAIL / DEMO_OWNER_PASSWORD
func SeedDefaultData(db *gorm.DB) error {
	ownerEmail := viper.GetString("DEMO_OWNER_EMAIL")
	ownerPassword := viper.GetString("DEMO_OWNER_PASSWORD")
	shopName := viper.GetString("DEMO_SHOP_NAME")

	if ownerEmail == "" || ownerPassword == "" {
		return nil
	}

	var existing entity.User
	if err := db.Where("email = ?", ownerEmail).First(&existing).Error; err == nil {
		logrus.WithField("email", ownerEmail).Info("Demo owner already exists")
		return nil
	}

	hashed, err := utils.HashPassword(ownerPassword)
	if err != nil {
		return fmt.Errorf("failed to hash demo owner password: %w", err)
	}

	if shopName == "" {
		shopName = "Demo Shop"
	}

	owner := entity.User{
		Username: "owner",
		Email:    ownerEmail,
		Password: hashed,
		Profile:  &entity.Profile{FullName: "Shop Owner"},
	}
	if err := db.Create(&owner).Error; err != nil {
		return fmt.Errorf("failed to create demo owner: %w", err)
	}

	shop := entity.Shop{
		Name:    shopName,
		OwnerID: owner.ID,
	}
	if err := db.Create(&shop).Error; err != nil {
		return fmt.Errorf("failed to create demo shop: %w", err)
	}

	membership := entity.ShopMembership{
		ShopID: shop.ID,
		UserID: owner.ID,
		Role:   enum.MembershipRoleOwner,
		Status: enum.MembershipStatusApproved,
	}
	if err := db.Create(&membership).Error; err != nil {
		return fmt.Errorf("failed to create demo owner membership: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"email": ownerEmail,
		"shop":  shopName,
	}).Info("Demo owner and shop created")
	return nil
}
