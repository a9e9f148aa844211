package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/alexanderramin/casewalk/internal/repository"
)

// MemorySaveRepo is an in-memory repository.SaveRepo. It records every
// persisted payload so tests can count writes.
type MemorySaveRepo struct {
	mu      sync.Mutex
	current *repository.SaveRecord
	Writes  []repository.SaveRecord
}

// NewMemorySaveRepo returns an empty repo, or one pre-seeded with payload
// when it is non-nil.
func NewMemorySaveRepo(payload []byte) *MemorySaveRepo {
	r := &MemorySaveRepo{}
	if payload != nil {
		r.current = &repository.SaveRecord{Payload: append([]byte(nil), payload...)}
	}
	return r
}

func (r *MemorySaveRepo) Load(ctx context.Context) (repository.SaveRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return repository.SaveRecord{}, fmt.Errorf("memory save: %w", repository.ErrNotFound)
	}
	rec := *r.current
	rec.Payload = append([]byte(nil), r.current.Payload...)
	return rec, nil
}

func (r *MemorySaveRepo) Persist(ctx context.Context, rec repository.SaveRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.Payload = append([]byte(nil), rec.Payload...)
	r.current = &rec
	r.Writes = append(r.Writes, rec)
	return nil
}

// Payload returns the currently stored payload, or nil.
func (r *MemorySaveRepo) Payload() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return nil
	}
	return append([]byte(nil), r.current.Payload...)
}

// WriteCount returns the number of Persist calls so far.
func (r *MemorySaveRepo) WriteCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Writes)
}

// FailingSaveRepo returns LoadErr and PersistErr from every call.
type FailingSaveRepo struct {
	LoadErr    error
	PersistErr error
}

func (r FailingSaveRepo) Load(context.Context) (repository.SaveRecord, error) {
	if r.LoadErr != nil {
		return repository.SaveRecord{}, r.LoadErr
	}
	return repository.SaveRecord{}, repository.ErrNotFound
}

func (r FailingSaveRepo) Persist(context.Context, repository.SaveRecord) error {
	return r.PersistErr
}
