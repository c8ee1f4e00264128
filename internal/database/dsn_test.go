package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSQLiteDSN(t *testing.T) {
	dsn := sqliteDSN("./data/tours.db")
	assert.Equal(t, "file:./data/tours.db?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_txlock=immediate", dsn)

	// explicit settings are kept
	dsn = sqliteDSN("file:x.db?_pragma=busy_timeout(500)&_txlock=exclusive")
	assert.Equal(t, "file:x.db?_pragma=busy_timeout(500)&_txlock=exclusive&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", dsn)
}
