package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// PostgresSnapshotRepository stores snapshot blobs in a single keyed table,
// for deployments that want the state in the database instead of on disk.
type PostgresSnapshotRepository struct {
	db *sqlx.DB
}

// NewPostgresSnapshotRepository constructs the repository.
func NewPostgresSnapshotRepository(db *sqlx.DB) *PostgresSnapshotRepository {
	return &PostgresSnapshotRepository{db: db}
}

// EnsureSchema creates the snapshots table when it does not exist yet. The
// deployment has no separate migration step.
func (r *PostgresSnapshotRepository) EnsureSchema(ctx context.Context) error {
	const query = `CREATE TABLE IF NOT EXISTS snapshots (
	key        TEXT PRIMARY KEY,
	payload    BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ensure snapshots table: %w", err)
	}
	return nil
}

// Load fetches the blob for key. A missing row yields an empty blob.
func (r *PostgresSnapshotRepository) Load(ctx context.Context, key string) ([]byte, error) {
	const query = `SELECT payload FROM snapshots WHERE key = $1`
	var payload []byte
	if err := r.db.GetContext(ctx, &payload, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load snapshot %s: %w", key, err)
	}
	return payload, nil
}

// Save upserts the blob for key.
func (r *PostgresSnapshotRepository) Save(ctx context.Context, key string, data []byte) error {
	const query = `INSERT INTO snapshots (key, payload, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (key)
DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.ExecContext(ctx, query, key, data, time.Now().UTC()); err != nil {
		return fmt.Errorf("save snapshot %s: %w", key, err)
	}
	return nil
}
