package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/haitham-dev/hudur-api/internal/models"
	"github.com/haitham-dev/hudur-api/internal/repository"
	"github.com/haitham-dev/hudur-api/internal/store"
	"github.com/haitham-dev/hudur-api/pkg/jobs"
)

// snapshotKey is the single blob key under which store state persists.
const snapshotKey = "hudur_state"

// SnapshotService bridges the in-memory record store and the opaque blob
// persistence boundary: load once at startup, rewrite after each mutation.
// Saves run through a single-worker queue so writes keep mutation order
// without blocking request handling, with retries on transient failures.
type SnapshotService struct {
	repo   repository.SnapshotRepository
	store  *store.RecordStore
	queue  *jobs.Queue
	logger *zap.Logger
}

// NewSnapshotService constructs the service and its writer queue.
func NewSnapshotService(repo repository.SnapshotRepository, recordStore *store.RecordStore, logger *zap.Logger, queueCfg jobs.QueueConfig) *SnapshotService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &SnapshotService{repo: repo, store: recordStore, logger: logger}

	// One worker: persisted blobs must apply in mutation order.
	queueCfg.Workers = 1
	queueCfg.Logger = logger
	s.queue = jobs.NewQueue("snapshot-writer", s.handleSave, queueCfg)
	return s
}

// Start launches the writer queue.
func (s *SnapshotService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the writer queue.
func (s *SnapshotService) Stop() {
	s.queue.Stop()
}

// Load restores persisted state into the record store. Legacy flat-array
// blobs are migrated into the nested shape transparently.
func (s *SnapshotService) Load(ctx context.Context) error {
	data, err := s.repo.Load(ctx, snapshotKey)
	if err != nil {
		return fmt.Errorf("load persisted state: %w", err)
	}

	records, roster, err := store.UnmarshalSnapshot(data)
	if err != nil {
		return fmt.Errorf("decode persisted state: %w", err)
	}

	s.store.Restore(records, roster)
	s.logger.Info("persisted state restored",
		zap.Int("students", len(records)),
		zap.Int("roster_entries", len(roster)))
	return nil
}

// Persist schedules a save of the given snapshots.
func (s *SnapshotService) Persist(records models.RecordSnapshot, roster models.RosterSnapshot) {
	data, err := store.MarshalSnapshot(records, roster)
	if err != nil {
		s.logger.Error("snapshot encode failed", zap.Error(err))
		return
	}
	if err := s.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    "snapshot.save",
		Payload: data,
	}); err != nil {
		s.logger.Error("snapshot enqueue failed", zap.Error(err))
	}
}

// PersistCurrent snapshots the store as it stands and schedules a save.
func (s *SnapshotService) PersistCurrent() {
	s.Persist(s.store.Snapshot(), s.store.RosterSnapshot())
}

func (s *SnapshotService) handleSave(ctx context.Context, job jobs.Job) error {
	data, ok := job.Payload.([]byte)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", job.Payload)
	}
	return s.repo.Save(ctx, snapshotKey, data)
}
