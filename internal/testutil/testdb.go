package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/casewalk/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens an in-memory casewalk database with save_records and
// save_history already migrated. It is closed at test cleanup.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err, "open in-memory save database")
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// NewTestUoW is the UnitOfWork a SQLiteSaveRepo under test persists through.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
