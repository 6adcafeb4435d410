package database

import (
	"github.com/google/uuid"
	"github.com/sandboxpay/gateway/internal/domain/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Migrate runs database migrations.
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("running database migrations")

	err := db.AutoMigrate(
		&model.Merchant{},
		&model.Order{},
		&model.Payment{},
	)
	if err != nil {
		logger.Error("failed to run migrations", zap.Error(err))
		return err
	}

	if err := createCustomIndexes(db); err != nil {
		logger.Error("failed to create custom indexes", zap.Error(err))
		return err
	}

	logger.Info("database migrations completed")
	return nil
}

func createCustomIndexes(db *gorm.DB) error {
	// Merchant dashboards list and aggregate newest-first by merchant.
	return db.Exec(`CREATE INDEX IF NOT EXISTS idx_payments_merchant_created_at ON payments (merchant_id, created_at DESC)`).Error
}

// demoMerchantID anchors the seeded merchant so repeated startups stay
// idempotent and local tokens keep working across restarts.
var demoMerchantID = uuid.MustParse("4b2f0e0a-8f52-4a7e-9c6d-1d2f3a4b5c6d")

// SeedDemoData inserts a merchant for local development. The dashboard can
// mint tokens with sub set to this id.
func SeedDemoData(db *gorm.DB, logger *zap.Logger) error {
	merchant := &model.Merchant{
		ID:    demoMerchantID,
		Name:  "Demo Merchant",
		Email: "demo@merchant.test",
	}

	err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(merchant).Error
	if err != nil {
		logger.Error("failed to seed demo merchant", zap.Error(err))
		return err
	}

	logger.Info("demo merchant available", zap.String("merchant_id", demoMerchantID.String()))
	return nil
}
