package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/haitham-dev/hudur-api/pkg/storage"
)

// SnapshotRepository is the persistence boundary for the record store: one
// opaque blob, loaded once at startup and rewritten after every mutation.
type SnapshotRepository interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// FileSnapshotRepository keeps snapshot blobs as files under the configured
// storage directory.
type FileSnapshotRepository struct {
	storage *storage.LocalStorage
}

// NewFileSnapshotRepository constructs the repository over local storage.
func NewFileSnapshotRepository(store *storage.LocalStorage) *FileSnapshotRepository {
	return &FileSnapshotRepository{storage: store}
}

// Load reads the blob for key. A missing file yields an empty blob, which
// the store treats as a fresh state.
func (r *FileSnapshotRepository) Load(_ context.Context, key string) ([]byte, error) {
	data, err := r.storage.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("load snapshot %s: %w", key, err)
	}
	return data, nil
}

// Save rewrites the blob for key.
func (r *FileSnapshotRepository) Save(_ context.Context, key string, data []byte) error {
	if _, err := r.storage.Save(key, data); err != nil {
		return fmt.Errorf("save snapshot %s: %w", key, err)
	}
	return nil
}
