package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/casewalk/internal/repository"
	"github.com/alexanderramin/casewalk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteSaveRepo_LoadMissingIsNotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteSaveRepo(testutil.NewTestUoW(database), "", 5)

	_, err := repo.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSQLiteSaveRepo_PersistThenLoad(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteSaveRepo(testutil.NewTestUoW(database), "", 5)
	ctx := context.Background()
	savedAt := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	require.NoError(t, repo.Persist(ctx, repository.SaveRecord{Payload: []byte(`{"players":[]}`), SchemaVersion: 3, SavedAt: savedAt}))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"players":[]}`, string(got.Payload))
	assert.Equal(t, 3, got.SchemaVersion)
	assert.Equal(t, savedAt, got.SavedAt)
}

func TestSQLiteSaveRepo_PersistReplacesWholeBlob(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteSaveRepo(testutil.NewTestUoW(database), "", 5)
	ctx := context.Background()

	require.NoError(t, repo.Persist(ctx, repository.SaveRecord{Payload: []byte("first"), SchemaVersion: 2}))
	require.NoError(t, repo.Persist(ctx, repository.SaveRecord{Payload: []byte("second"), SchemaVersion: 3}))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got.Payload))

	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM save_records`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestSQLiteSaveRepo_KeysAreIndependent(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	ctx := context.Background()

	a := repository.NewSQLiteSaveRepo(uow, "a", 0)
	b := repository.NewSQLiteSaveRepo(uow, "b", 0)
	require.NoError(t, a.Persist(ctx, repository.SaveRecord{Payload: []byte("A")}))

	_, err := b.Load(ctx)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSQLiteSaveRepo_HistoryIsBoundedNewestFirst(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteSaveRepo(testutil.NewTestUoW(database), "", 3)
	ctx := context.Background()

	for _, p := range []string{"1", "2", "3", "4", "5"} {
		require.NoError(t, repo.Persist(ctx, repository.SaveRecord{Payload: []byte(p), SchemaVersion: 3}))
	}

	hist, err := repo.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, hist, 3)
	assert.Equal(t, "5", string(hist[0].Payload))
	assert.Equal(t, "3", string(hist[2].Payload))
}

func TestSQLiteSaveRepo_HistoryDisabled(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteSaveRepo(testutil.NewTestUoW(database), "", 0)
	ctx := context.Background()

	require.NoError(t, repo.Persist(ctx, repository.SaveRecord{Payload: []byte("x")}))

	hist, err := repo.History(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, hist)
}

func TestSQLiteSaveRepo_FailedHistoryRollsBackRecord(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	good := repository.NewSQLiteSaveRepo(testutil.NewTestUoW(database), "", 5)
	require.NoError(t, good.Persist(ctx, repository.SaveRecord{Payload: []byte("before")}))

	boom := errors.New("disk full")
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: testutil.PersistHistoryExec, Err: boom}
	failing := repository.NewSQLiteSaveRepo(uow, "", 5)
	err := failing.Persist(ctx, repository.SaveRecord{Payload: []byte("after")})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, testutil.PersistHistoryExec, uow.Execs, "trim must not run after a failed insert")
	assert.True(t, uow.RolledBack)

	got, err := good.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "before", string(got.Payload), "upsert should roll back with the history insert")
}

func TestSQLiteSaveRepo_FailedTrimRollsBackSnapshot(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	good := repository.NewSQLiteSaveRepo(testutil.NewTestUoW(database), "", 5)
	require.NoError(t, good.Persist(ctx, repository.SaveRecord{Payload: []byte("before")}))

	boom := errors.New("locked")
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: testutil.PersistTrimExec, Err: boom}
	err := repository.NewSQLiteSaveRepo(uow, "", 5).Persist(ctx, repository.SaveRecord{Payload: []byte("after")})
	require.ErrorIs(t, err, boom)
	assert.True(t, uow.RolledBack)

	hist, err := good.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, "before", string(hist[0].Payload))
}
