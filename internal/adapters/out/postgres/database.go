// Package postgres opens the GORM connection used by the persistent
// adapters and keeps their schema migrated.
package postgres

import (
	"fmt"
	"time"

	"dispatch/internal/adapters/out/postgres/historyrepo"
	"dispatch/internal/pkg/errs"

	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PoolConfig bounds the underlying database/sql pool.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultPoolConfig suits a single dispatcher instance.
var DefaultPoolConfig = PoolConfig{
	MaxOpenConns:    10,
	MaxIdleConns:    5,
	ConnMaxLifetime: 30 * time.Minute,
}

// Open connects to PostgreSQL and applies the pool limits.
//
// Example:
//
//	db, err := postgres.Open(cfg.DatabaseURL, postgres.DefaultPoolConfig)
//	if err != nil {
//	    return err
//	}
//	defer postgres.Close(db)
func Open(dsn string, pool PoolConfig) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errs.NewValueIsRequiredError("dsn")
	}

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}

	return db, nil
}

// Migrate creates or updates every table owned by the adapters.
func Migrate(db *gorm.DB) error {
	if db == nil {
		return errs.NewValueIsRequiredError("db")
	}
	return db.AutoMigrate(&historyrepo.StatusEventDTO{})
}

func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
