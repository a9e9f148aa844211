package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/casewalk/internal/db"
)

// DefaultRecordKey names the save row when none is configured.
const DefaultRecordKey = "casewalk.save"

// sqliteSaveRecords runs save statements against one DBTX.
type sqliteSaveRecords struct {
	db  db.DBTX
	key string
}

func (r sqliteSaveRecords) load(ctx context.Context) (SaveRecord, error) {
	query := `SELECT payload, schema_version, updated_at FROM save_records WHERE key = ?`
	var payload, updatedAt string
	var rec SaveRecord
	err := r.db.QueryRowContext(ctx, query, r.key).Scan(&payload, &rec.SchemaVersion, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SaveRecord{}, fmt.Errorf("save record %q: %w", r.key, ErrNotFound)
		}
		return SaveRecord{}, fmt.Errorf("scanning save record: %w", err)
	}
	rec.Payload = []byte(payload)
	rec.SavedAt = parseTime(updatedAt)
	return rec, nil
}

func (r sqliteSaveRecords) upsert(ctx context.Context, rec SaveRecord) error {
	query := `INSERT INTO save_records (key, payload, schema_version, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			payload = excluded.payload,
			schema_version = excluded.schema_version,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query, r.key, string(rec.Payload), rec.SchemaVersion, formatTime(rec.SavedAt))
	if err != nil {
		return fmt.Errorf("upserting save record: %w", err)
	}
	return nil
}

func (r sqliteSaveRecords) appendHistory(ctx context.Context, rec SaveRecord) error {
	query := `INSERT INTO save_history (record_key, payload, schema_version, saved_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, r.key, string(rec.Payload), rec.SchemaVersion, formatTime(rec.SavedAt))
	if err != nil {
		return fmt.Errorf("appending save history: %w", err)
	}
	return nil
}

// trimHistory keeps only the newest keep snapshots.
func (r sqliteSaveRecords) trimHistory(ctx context.Context, keep int) error {
	query := `DELETE FROM save_history
		WHERE record_key = ?
		  AND id NOT IN (
			SELECT id FROM save_history WHERE record_key = ? ORDER BY id DESC LIMIT ?
		  )`
	if _, err := r.db.ExecContext(ctx, query, r.key, r.key, keep); err != nil {
		return fmt.Errorf("trimming save history: %w", err)
	}
	return nil
}

func (r sqliteSaveRecords) history(ctx context.Context, limit int) ([]SaveRecord, error) {
	query := `SELECT payload, schema_version, saved_at FROM save_history
		WHERE record_key = ? ORDER BY id DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, r.key, limit)
	if err != nil {
		return nil, fmt.Errorf("listing save history: %w", err)
	}
	defer rows.Close()

	var out []SaveRecord
	for rows.Next() {
		var payload, savedAt string
		var rec SaveRecord
		if err := rows.Scan(&payload, &rec.SchemaVersion, &savedAt); err != nil {
			return nil, fmt.Errorf("scanning save history: %w", err)
		}
		rec.Payload = []byte(payload)
		rec.SavedAt = parseTime(savedAt)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating save history: %w", err)
	}
	return out, nil
}

// SQLiteSaveRepo implements SaveRepo and SaveHistoryRepo on SQLite. Each
// Persist upserts the record and appends a history snapshot in one
// transaction.
type SQLiteSaveRepo struct {
	uow          db.UnitOfWork
	key          string
	historyLimit int
}

// NewSQLiteSaveRepo creates a SQLiteSaveRepo for the named record. A
// historyLimit of zero or less disables snapshots.
func NewSQLiteSaveRepo(uow db.UnitOfWork, key string, historyLimit int) *SQLiteSaveRepo {
	if key == "" {
		key = DefaultRecordKey
	}
	return &SQLiteSaveRepo{uow: uow, key: key, historyLimit: historyLimit}
}

func (r *SQLiteSaveRepo) Load(ctx context.Context) (SaveRecord, error) {
	var rec SaveRecord
	err := r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		rec, err = sqliteSaveRecords{db: tx, key: r.key}.load(ctx)
		return err
	})
	return rec, err
}

func (r *SQLiteSaveRepo) Persist(ctx context.Context, rec SaveRecord) error {
	return r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		records := sqliteSaveRecords{db: tx, key: r.key}
		if err := records.upsert(ctx, rec); err != nil {
			return err
		}
		if r.historyLimit <= 0 {
			return nil
		}
		if err := records.appendHistory(ctx, rec); err != nil {
			return err
		}
		return records.trimHistory(ctx, r.historyLimit)
	})
}

func (r *SQLiteSaveRepo) History(ctx context.Context, limit int) ([]SaveRecord, error) {
	var out []SaveRecord
	err := r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		out, err = sqliteSaveRecords{db: tx, key: r.key}.history(ctx, limit)
		return err
	})
	return out, err
}
