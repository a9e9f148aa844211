package testutil

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/casewalk/internal/db"
)

// Statement positions inside one SQLiteSaveRepo.Persist transaction when
// history is enabled.
const (
	PersistUpsertExec  = 1
	PersistHistoryExec = 2
	PersistTrimExec    = 3
)

// FailOnNthExecUoW makes the FailOn-th write of a save transaction return
// Err. Reads pass through uncounted. After WithinTx returns, Execs holds
// the number of writes attempted and RolledBack whether the save was undone.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int
	Err    error

	Execs      int
	RolledBack bool
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save transaction: %w", err)
	}

	wrapped := &failingSaveTx{DBTX: tx, uow: u}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		u.RolledBack = tx.Rollback() == nil
		return fnErr
	}
	return tx.Commit()
}

type failingSaveTx struct {
	db.DBTX
	uow *FailOnNthExecUoW
}

func (f *failingSaveTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.uow.Execs++
	if f.uow.Execs == f.uow.FailOn {
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
