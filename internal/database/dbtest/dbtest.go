// Package dbtest opens migrated SQLite databases for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jengzang/tours-backend-go/internal/database"
)

// Open returns a fresh database file under t.TempDir with all migrations applied
func Open(t testing.TB) *database.DB {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, database.Config{
		Driver:       string(database.DialectSQLite),
		DSN:          filepath.Join(t.TempDir(), "tours.db"),
		MaxOpenConns: 16,
		MaxIdleConns: 4,
		MaxTxRetries: 3,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.NewMigrationManager(db).RunMigrations(ctx))
	return db
}
