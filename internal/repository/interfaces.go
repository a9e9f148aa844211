package repository

import (
	"context"
	"time"
)

// SaveRecord is one persisted save blob.
type SaveRecord struct {
	Payload       []byte
	SchemaVersion int
	SavedAt       time.Time
}

// SaveRepo loads and persists the single named save record. Persist always
// replaces the whole blob.
type SaveRepo interface {
	// Load returns ErrNotFound when nothing has been persisted yet.
	Load(ctx context.Context) (SaveRecord, error)
	Persist(ctx context.Context, rec SaveRecord) error
}

// SaveHistoryRepo exposes earlier snapshots of the save record, newest
// first.
type SaveHistoryRepo interface {
	History(ctx context.Context, limit int) ([]SaveRecord, error)
}
