package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/tours-backend-go/internal/database"
	"github.com/jengzang/tours-backend-go/internal/database/dbtest"
)

func TestMigrationsCreateSchema(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	for _, table := range []string{"user_groups", "user_group_members", "projects", "tours", "pois"} {
		var n int
		err := db.GetContext(ctx, &n, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table)
		require.NoError(t, err)
		assert.Equal(t, 1, n, table)
	}

	// running again is a no-op
	require.NoError(t, database.NewMigrationManager(db).RunMigrations(ctx))

	applied, err := database.NewMigrationManager(db).GetAppliedMigrations(ctx)
	require.NoError(t, err)
	assert.True(t, applied[1])
}

func TestLockClause(t *testing.T) {
	db := dbtest.Open(t)
	assert.Equal(t, database.DialectSQLite, db.Dialect())
	assert.Empty(t, db.LockClause())
}

func TestTransactionRollsBackOnError(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := db.Transaction(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "INSERT INTO user_groups (name) VALUES ('editors')"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, db.GetContext(ctx, &n, "SELECT COUNT(*) FROM user_groups"))
	assert.Zero(t, n)
}

func TestTransactionRollsBackOnPanic(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = db.Transaction(ctx, func(tx *sqlx.Tx) error {
			_, _ = tx.ExecContext(ctx, "INSERT INTO user_groups (name) VALUES ('editors')")
			panic("boom")
		})
	})

	var n int
	require.NoError(t, db.GetContext(ctx, &n, "SELECT COUNT(*) FROM user_groups"))
	assert.Zero(t, n)
}

func TestTransactionRetriesTransientErrors(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	calls := 0
	err := db.Transaction(ctx, func(tx *sqlx.Tx) error {
		calls++
		if calls < 3 {
			return &pq.Error{Code: "40P01"}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	calls = 0
	err = db.Transaction(ctx, func(tx *sqlx.Tx) error {
		calls++
		return &pq.Error{Code: "40001"}
	})
	assert.Error(t, err)
	assert.Equal(t, 4, calls, "first attempt plus three retries")
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, database.IsRetryable(&pq.Error{Code: "40P01"}))
	assert.True(t, database.IsRetryable(&pq.Error{Code: "55P03"}))
	assert.False(t, database.IsRetryable(&pq.Error{Code: "23505"}))
	assert.False(t, database.IsRetryable(errors.New("plain")))
	assert.False(t, database.IsRetryable(nil))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := database.Open(context.Background(), database.Config{Driver: "mysql", DSN: "x"})
	assert.Error(t, err)
}
