// Package database provides the core functionality for creating and managing
// database connections in a clean, isolated manner.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/AtRiskMedia/storefront-builder/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/storefront-builder/pkg/config"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Supported driver names.
const (
	DriverSQLite = "sqlite3"
	DriverLibSQL = "libsql"
)

// DB represents a wrapper around the standard SQL database connection.
type DB struct {
	*sql.DB
	Driver string
	logger *logging.ChanneledLogger
}

// PoolConfig bounds the connection pool.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultPoolConfig reads the pool limits from the environment configuration.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxOpenConns:    config.DBMaxOpenConns,
		MaxIdleConns:    config.DBMaxIdleConns,
		ConnMaxLifetime: time.Duration(config.DBConnMaxLifetimeMinutes) * time.Minute,
	}
}

// NewConnection establishes a new database connection for the specified driver.
func NewConnection(driverName, dataSourceName string) (*DB, error) {
	return NewConnectionWithLogger(driverName, dataSourceName, DefaultPoolConfig(), nil)
}

// NewConnectionWithLogger establishes a new database connection for the specified driver with logging.
func NewConnectionWithLogger(driverName, dataSourceName string, pool PoolConfig, logger *logging.ChanneledLogger) (*DB, error) {
	if driverName != DriverSQLite && driverName != DriverLibSQL {
		return nil, fmt.Errorf("unsupported database driver %q", driverName)
	}

	start := time.Now()
	if logger != nil {
		logger.Database().Debug("Creating new database connection", "driverName", driverName)
	}

	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		if logger != nil {
			logger.Database().Error("Failed to open database connection", "error", err.Error(), "driverName", driverName)
		}
		return nil, fmt.Errorf("failed to open %s database: %w", driverName, err)
	}

	if pool.MaxOpenConns > 0 {
		db.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		db.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		if logger != nil {
			logger.Database().Error("Database ping failed", "error", err.Error(), "driverName", driverName)
		}
		return nil, fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	duration := time.Since(start)
	if logger != nil {
		logger.Database().Info("Database connection established", "driverName", driverName, "duration", duration)
		CheckAndLogSlowQuery(logger, "DATABASE_CONNECTION", duration)
	}

	return &DB{DB: db, Driver: driverName, logger: logger}, nil
}

// TimedExec runs a statement and reports it on the slow-query log when it exceeds the threshold.
func (db *DB) TimedExec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	res, err := db.ExecContext(ctx, query, args...)
	CheckAndLogSlowQuery(db.logger, query, time.Since(start))
	return res, err
}

// TimedQueryRow runs a single-row query with slow-query reporting.
func (db *DB) TimedQueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	row := db.QueryRowContext(ctx, query, args...)
	CheckAndLogSlowQuery(db.logger, query, time.Since(start))
	return row
}
