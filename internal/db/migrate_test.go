package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func columnNames(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()
	rows, err := db.Query(`PRAGMA table_info(` + table + `)`)
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var cid, notNull, pk int
		var name, typ string
		var dflt sql.NullString
		require.NoError(t, rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	return names
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesTablesAndIndex(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"save_records", "save_history"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}

	var idx string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name='idx_save_history_key'`).Scan(&idx)
	require.NoError(t, err)
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestMigrate_AddsSchemaVersionToLegacyTable(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE save_records (
		key        TEXT PRIMARY KEY,
		payload    TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO save_records (key, payload, updated_at)
		VALUES ('casewalk.save', '{"players":[]}', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	assert.Contains(t, columnNames(t, db, "save_records"), "schema_version")

	var payload string
	var version int
	err = db.QueryRow(`SELECT payload, schema_version FROM save_records WHERE key = 'casewalk.save'`).Scan(&payload, &version)
	require.NoError(t, err)
	assert.Equal(t, `{"players":[]}`, payload)
	assert.Equal(t, 0, version, "legacy rows are tagged as untagged")
}

func TestMigrate_HistoryCascadesWithRecord(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO save_records (key, payload, updated_at) VALUES ('k', '{}', 'now')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO save_history (record_key, payload, saved_at) VALUES ('k', '{}', 'now')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM save_records WHERE key = 'k'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM save_history`).Scan(&n))
	assert.Equal(t, 0, n)
}
