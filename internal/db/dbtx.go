package db

import (
	"context"
	"database/sql"
)

// DBTX is what the save_records and save_history queries run against.
// SQLiteSaveRepo only ever sees the *sql.Tx handed out by WithinTx; tests
// seed tables through the bare *sql.DB.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
