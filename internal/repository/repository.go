package repository

import (
	"strings"

	"github.com/jmoiron/sqlx"
)

// columns joins column names, qualifying each with alias when given
func columns(alias string, cols []string) string {
	if alias == "" {
		return strings.Join(cols, ", ")
	}
	qualified := make([]string, len(cols))
	for i, c := range cols {
		qualified[i] = alias + "." + c
	}
	return strings.Join(qualified, ", ")
}

// Queryer is satisfied by both *sqlx.DB and *sqlx.Tx
type Queryer = sqlx.ExtContext
