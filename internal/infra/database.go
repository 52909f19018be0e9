package infra

import (
	"fmt"

	"saaspdv/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and migrates the
// schema. gen_random_uuid() requires PostgreSQL 13+.
func NewDatabase(dsn string, maxOpenConns int) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if maxOpenConns <= 0 {
		maxOpenConns = 25
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// RunMigrations creates or updates all tables. Also used by the e2e suite
// against a disposable container.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Plan{},
		&model.Tenant{},
		&model.User{},
		&model.Product{},
		&model.Customer{},
		&model.Sale{},
		&model.SaleItem{},
	)
}
