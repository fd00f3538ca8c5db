package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// newMockDB builds a PostgresDB over sqlmock. The returned cleanup closes
// the underlying connection.
func newMockDB(t *testing.T) (*PostgresDB, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return &PostgresDB{DB: sqlxDB}, mock, func() { sqlxDB.Close() }
}
