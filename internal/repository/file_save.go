package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// FileSaveRepo implements SaveRepo on a single JSON file. Writes go to a
// temp file that is renamed into place; an advisory lock on "<path>.lock"
// keeps a second process from reading a half-written file.
type FileSaveRepo struct {
	path string
	lock *flock.Flock
}

func NewFileSaveRepo(path string) *FileSaveRepo {
	return &FileSaveRepo{path: path, lock: flock.New(path + ".lock")}
}

func (r *FileSaveRepo) Load(ctx context.Context) (SaveRecord, error) {
	if err := r.ensureDir(); err != nil {
		return SaveRecord{}, err
	}
	if err := r.lock.RLock(); err != nil {
		return SaveRecord{}, fmt.Errorf("acquiring read lock: %w", err)
	}
	defer r.lock.Unlock()

	info, err := os.Stat(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return SaveRecord{}, fmt.Errorf("save file %s: %w", r.path, ErrNotFound)
		}
		return SaveRecord{}, fmt.Errorf("stat save file: %w", err)
	}
	data, err := os.ReadFile(r.path)
	if err != nil {
		return SaveRecord{}, fmt.Errorf("read save file: %w", err)
	}
	return SaveRecord{Payload: data, SavedAt: info.ModTime().UTC()}, nil
}

// Persist replaces the file contents. rec.SchemaVersion is not stored
// separately; the payload carries its own version tag.
func (r *FileSaveRepo) Persist(ctx context.Context, rec SaveRecord) error {
	if err := r.ensureDir(); err != nil {
		return err
	}
	if err := r.lock.Lock(); err != nil {
		return fmt.Errorf("acquiring write lock: %w", err)
	}
	defer r.lock.Unlock()

	tmpPath := r.path + ".tmp"
	if err := os.WriteFile(tmpPath, rec.Payload, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, r.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func (r *FileSaveRepo) ensureDir() error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create save directory: %w", err)
	}
	return nil
}
