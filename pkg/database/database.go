package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jpbarro/multi-t-inventory/internal/model"
	"github.com/jpbarro/multi-t-inventory/pkg/config"
)

var DB *gorm.DB

// InitDB initializes the database connection with the provided configuration
func InitDB(cfg *config.Config) error {
	// Connect with PreferSimpleProtocol to prevent "prepared statement
	// already exists" errors behind connection poolers
	pgConfig := postgres.Config{
		DSN:                  cfg.DB.GetDSN(),
		PreferSimpleProtocol: true,
	}

	db, err := gorm.Open(postgres.New(pgConfig), &gorm.Config{
		Logger: logger.Default.LogMode(cfg.DB.LogLevel),
		// Surface unique-constraint violations as gorm.ErrDuplicatedKey so
		// repositories can report conflicts even when their pre-check raced
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	if cfg.DB.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	}
	if cfg.DB.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	}
	if cfg.DB.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)
	}

	if err := Migrate(db); err != nil {
		return err
	}

	DB = db
	return nil
}

// Migrate creates or updates the table structure for all models
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(&model.Tenant{}, &model.User{}, &model.Product{}, &model.Inventory{})
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Composite uniqueness: at most one inventory row per (tenant, product)
	err = db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS uq_tenant_product_stock ON inventories (tenant_id, product_id)").Error
	if err != nil {
		return fmt.Errorf("failed to create inventory unique index: %w", err)
	}
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
