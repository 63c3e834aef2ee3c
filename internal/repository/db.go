package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
}

// Open creates a pgx pool and wraps it as *sql.DB so the repository can run
// against Postgres and SQLite through the same interface.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*sql.DB, *pgxpool.Pool, error) {
	logger.Info("connecting to database", "dsn", cfg.DSN)
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		logger.Error("failed to parse database config", "error", err)
		return nil, nil, err
	}

	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	pc.ConnConfig.RuntimeParams["application_name"] = "cnic-ocr"

	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return nil, nil, err
	}

	db := stdlib.OpenDBFromPool(pool)
	logger.Info("successfully connected to database")
	return db, pool, nil
}

// OpenSQLite opens a local SQLite history store, creating the file if needed.
func OpenSQLite(path string, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("opening sqlite database", "path", path)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		logger.Error("failed to open sqlite database", "error", err)
		return nil, err
	}
	// SQLite handles one writer at a time.
	db.SetMaxOpenConns(1)
	return db, nil
}

// Close closes the database connections gracefully
func Close(db *sql.DB, pool *pgxpool.Pool, logger *slog.Logger) {
	logger.Info("closing database connections")
	if db != nil {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}
	if pool != nil {
		pool.Close()
	}
	logger.Info("database connections closed")
}

// HealthCheck pings the store to catch DSN issues early.
func HealthCheck(ctx context.Context, db *sql.DB, timeout time.Duration, logger *slog.Logger) error {
	logger.Debug("pinging database")
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := db.PingContext(ctx); err != nil {
		return err
	}
	logger.Debug("database ping successful")
	return nil
}
