package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/casewalk/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSaveRepo_LoadMissingIsNotFound(t *testing.T) {
	repo := repository.NewFileSaveRepo(filepath.Join(t.TempDir(), "nested", "save.json"))

	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFileSaveRepo_PersistThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	repo := repository.NewFileSaveRepo(path)
	ctx := context.Background()

	require.NoError(t, repo.Persist(ctx, repository.SaveRecord{Payload: []byte(`{"players":[]}`)}))
	require.NoError(t, repo.Persist(ctx, repository.SaveRecord{Payload: []byte(`{"players":[],"version":3}`)}))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"players":[],"version":3}`, string(got.Payload))
	assert.False(t, got.SavedAt.IsZero())

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestFileSaveRepo_SecondHandleSeesWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	ctx := context.Background()

	require.NoError(t, repository.NewFileSaveRepo(path).Persist(ctx, repository.SaveRecord{Payload: []byte("shared")}))

	got, err := repository.NewFileSaveRepo(path).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "shared", string(got.Payload))
}
