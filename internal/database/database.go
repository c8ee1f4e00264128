package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/jengzang/tours-backend-go/internal/logging"
	"github.com/jengzang/tours-backend-go/internal/metrics"
)

// Dialect identifies the SQL backend
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Config holds database configuration
type Config struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	MaxTxRetries int
}

// DB wraps the connection pool with dialect-specific helpers
type DB struct {
	*sqlx.DB
	dialect    Dialect
	maxRetries int
}

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Open connects to the configured backend and verifies the connection
func Open(ctx context.Context, cfg Config) (*DB, error) {
	dialect := Dialect(cfg.Driver)
	dsn := cfg.DSN

	switch dialect {
	case DialectSQLite:
		dsn = sqliteDSN(dsn)
	case DialectPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	conn, err := sqlx.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logging.Info().Str("driver", cfg.Driver).Msg("Database initialized successfully")

	return &DB{DB: conn, dialect: dialect, maxRetries: cfg.MaxTxRetries}, nil
}

// sqliteDSN applies per-connection pragmas. Every transaction starts with
// BEGIN IMMEDIATE so the write lock is taken before the first read.
func sqliteDSN(dsn string) string {
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	params := []struct{ key, value string }{
		{"busy_timeout", "_pragma=busy_timeout(10000)"},
		{"journal_mode", "_pragma=journal_mode(WAL)"},
		{"foreign_keys", "_pragma=foreign_keys(1)"},
		{"_txlock", "_txlock=immediate"},
	}
	var missing []string
	for _, p := range params {
		if !strings.Contains(dsn, p.key) {
			missing = append(missing, p.value)
		}
	}
	if len(missing) == 0 {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(missing, "&")
}

// Dialect returns the backend dialect
func (d *DB) Dialect() Dialect {
	return d.dialect
}

// LockClause is appended to a SELECT that must hold a row lock until commit.
// SQLite has no row locks; its IMMEDIATE transactions already hold the
// database write lock.
func (d *DB) LockClause() string {
	if d.dialect == DialectPostgres {
		return " FOR UPDATE"
	}
	return ""
}

// Transaction executes fn within a database transaction. Deadlocks and busy
// errors reported by the backend roll the attempt back and rerun fn.
func (d *DB) Transaction(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = d.transaction(ctx, fn)
		if err == nil || !IsRetryable(err) || attempt >= d.maxRetries {
			return err
		}

		metrics.TxRetries.Inc()
		logging.Ctx(ctx).Warn().Err(err).Int("attempt", attempt+1).Msg("retrying transaction")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt+1) * 25 * time.Millisecond):
		}
	}
}

func (d *DB) transaction(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := d.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// IsRetryable reports whether err is a transient lock conflict
func IsRetryable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40P01", "40001", "55P03": // deadlock, serialization failure, lock not available
			return true
		}
		return false
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return true
		}
	}
	return false
}
