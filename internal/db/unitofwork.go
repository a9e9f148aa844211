package db

import (
	"context"
	"database/sql"
	"fmt"
)

// UnitOfWork scopes one save operation. A Persist upserts the live record,
// appends its history snapshot and trims old snapshots inside a single
// WithinTx, so history never holds a save the record itself lost.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// SQLiteUnitOfWork opens one database/sql transaction per WithinTx call.
type SQLiteUnitOfWork struct {
	db *sql.DB
}

func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db}
}

// WithinTx commits when fn returns nil. An error or panic from fn rolls the
// save back; a panic is re-raised after the rollback.
func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save transaction: %w", err)
	}

	// finished is set once Commit has been attempted; a failed Commit has
	// already released the transaction.
	finished := false
	defer func() {
		if finished {
			return
		}
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			err = fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	finished = true
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save transaction: %w", err)
	}
	return nil
}
