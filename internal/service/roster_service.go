package service

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/haitham-dev/hudur-api/internal/dto"
	"github.com/haitham-dev/hudur-api/internal/models"
	"github.com/haitham-dev/hudur-api/internal/parser"
	"github.com/haitham-dev/hudur-api/internal/store"
	appErrors "github.com/haitham-dev/hudur-api/pkg/errors"
)

// RosterService owns roster workbook ingestion and student management.
type RosterService struct {
	store     *store.RecordStore
	parser    *parser.RosterWorkbookParser
	persister snapshotPersister
	cache     *CacheService
	logger    *zap.Logger
}

// NewRosterService constructs the service.
func NewRosterService(recordStore *store.RecordStore, workbookParser *parser.RosterWorkbookParser, persister snapshotPersister, cache *CacheService, logger *zap.Logger) *RosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{
		store:     recordStore,
		parser:    workbookParser,
		persister: persister,
		cache:     cache,
		logger:    logger,
	}
}

// IngestWorkbooks processes uploaded roster spreadsheets in order, merging
// recognised entries into the roster. A workbook that opens but yields no
// entries is reported as "no data recognized"; a corrupt file is an error.
// Either way the remaining files still run.
func (s *RosterService) IngestWorkbooks(ctx context.Context, files []UploadFile) dto.RosterUploadResponse {
	resp := dto.RosterUploadResponse{
		Batch: models.UploadBatch{
			BatchID: uuid.NewString(),
			Files:   make([]models.FileResult, len(files)),
		},
	}
	for i, f := range files {
		resp.Batch.Files[i] = models.FileResult{Name: f.Name, Status: models.FileStatusWaiting}
	}

	mutated := false
	for i, f := range files {
		resp.Batch.Files[i].Status = models.FileStatusProcessing

		entries, err := s.parser.Parse(f.Data)
		if err != nil {
			resp.Batch.Files[i].Status = models.FileStatusError
			resp.Batch.Files[i].Message = err.Error()
			s.logger.Warn("roster workbook rejected", zap.String("file", f.Name), zap.Error(err))
			continue
		}
		if len(entries) == 0 {
			resp.Batch.Files[i].Status = models.FileStatusError
			resp.Batch.Files[i].Message = appErrors.ErrNoDataRecognized.Message
			continue
		}

		s.store.UpsertRoster(entries)
		mutated = true

		synthetic := 0
		for _, entry := range entries {
			if entry.Synthetic() {
				synthetic++
			}
		}

		resp.Batch.Files[i].Status = models.FileStatusSuccess
		resp.Batch.Files[i].Records = len(entries)
		resp.Batch.TotalRecords += len(entries)
		resp.TotalEntries += len(entries)
		resp.SyntheticIDs += synthetic
		s.logger.Info("roster workbook ingested",
			zap.String("file", f.Name),
			zap.Int("entries", len(entries)),
			zap.Int("synthetic_ids", synthetic))
	}

	if mutated {
		s.afterMutation(ctx)
	}

	return resp
}

// ListStudents returns the roster ordered by class, section, then name.
func (s *RosterService) ListStudents() []models.StudentMetadata {
	snapshot := s.store.RosterSnapshot()
	students := make([]models.StudentMetadata, 0, len(snapshot))
	for _, entry := range snapshot {
		students = append(students, entry)
	}
	sort.Slice(students, func(i, j int) bool {
		if students[i].ClassName != students[j].ClassName {
			return students[i].ClassName < students[j].ClassName
		}
		if students[i].Section != students[j].Section {
			return students[i].Section < students[j].Section
		}
		return students[i].Name < students[j].Name
	})
	return students
}

// DeleteStudent removes one roster entry.
func (s *RosterService) DeleteStudent(ctx context.Context, id string) error {
	if _, ok := s.store.RosterSnapshot()[id]; !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	s.store.DeleteStudent(id)
	s.afterMutation(ctx)
	return nil
}

// ClearRoster drops every roster entry; attendance records stay.
func (s *RosterService) ClearRoster(ctx context.Context) {
	s.store.ClearRoster()
	s.afterMutation(ctx)
}

func (s *RosterService) afterMutation(ctx context.Context) {
	if s.persister != nil {
		s.persister.Persist(s.store.Snapshot(), s.store.RosterSnapshot())
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, statsCachePattern); err != nil {
			s.logger.Warn("stats cache invalidation failed", zap.Error(err))
		}
	}
}
