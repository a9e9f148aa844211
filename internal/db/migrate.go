package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every schema statement. Statements are idempotent and
// the whole list re-runs on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS save_records (
		key        TEXT PRIMARY KEY,
		payload    TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	// Explicit schema tag of the stored payload; 0 means written before
	// the tag existed.
	`ALTER TABLE save_records ADD COLUMN schema_version INTEGER NOT NULL DEFAULT 0`,

	`CREATE TABLE IF NOT EXISTS save_history (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		record_key     TEXT NOT NULL REFERENCES save_records(key) ON DELETE CASCADE,
		payload        TEXT NOT NULL,
		schema_version INTEGER NOT NULL DEFAULT 0,
		saved_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_save_history_key ON save_history(record_key, id)`,
}
