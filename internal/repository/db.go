package repository

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/remi/mealtrack/internal/config"
	"github.com/remi/mealtrack/internal/domain"
	"github.com/remi/mealtrack/internal/logger"
)

// InitDB opens the embedded SQLite store and ensures the schema exists.
// It is safe to call on every process start: migration is create-if-absent.
// Any failure here is fatal for the store and the caller must not proceed.
// Parameters:
//   - cfg: database configuration including path and pool settings.
// Returns:
//   - *gorm.DB: initialized database handle.
//   - error: a domain.StorageFatalError if open or migration fails.
func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}

	log := logger.GetDefault().WithField(logger.FieldComponent, "repository")
	log.Infof("Initializing SQLite store at %q", cfg.Path)

	// Ensure the directory exists
	if cfg.Path != "" && cfg.Path != ":memory:" {
		dir := filepath.Dir(cfg.Path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, domain.NewStorageFatalError("open", fmt.Errorf("failed to create database directory: %w", err))
		}
	}

	db, err := gorm.Open(sqlite.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, domain.NewStorageFatalError("open", fmt.Errorf("failed to connect to SQLite: %w", err))
	}

	// WAL keeps readers from blocking the single writer; the foreign_keys
	// pragma makes the meal_items -> meals reference enforced by SQLite.
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA foreign_keys=ON")

	sqlDB, err := db.DB()
	if err != nil {
		return nil, domain.NewStorageFatalError("open", fmt.Errorf("failed to get sql.DB instance: %w", err))
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if cfg.AutoMigrate {
		if err := ensureSchema(db); err != nil {
			return nil, err
		}
	} else {
		log.Infof("AutoMigrate disabled")
	}

	return db, nil
}

// ensureSchema creates the meals and meal_items relations if absent,
// including the foreign key from meal_items.meal_id to meals.id.
// Idempotent; repeated calls are no-ops.
func ensureSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.Meal{},
		&domain.MealItem{},
	); err != nil {
		return domain.NewStorageFatalError("migrate", err)
	}
	return nil
}
