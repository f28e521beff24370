package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/haitham-dev/hudur-api/internal/dto"
	"github.com/haitham-dev/hudur-api/internal/models"
	"github.com/haitham-dev/hudur-api/internal/parser"
	"github.com/haitham-dev/hudur-api/internal/store"
	"github.com/haitham-dev/hudur-api/pkg/arabic"
	appErrors "github.com/haitham-dev/hudur-api/pkg/errors"
)

// UploadFile is one raw file inside an ingest batch.
type UploadFile struct {
	Name string
	Data []byte
}

type snapshotPersister interface {
	Persist(records models.RecordSnapshot, roster models.RosterSnapshot)
}

// AttendanceService owns attendance ingestion and record operations.
type AttendanceService struct {
	store     *store.RecordStore
	parser    *parser.AttendanceLogParser
	persister snapshotPersister
	metrics   *MetricsService
	cache     *CacheService
	logger    *zap.Logger
	now       func() time.Time
}

// NewAttendanceService constructs the service.
func NewAttendanceService(recordStore *store.RecordStore, logParser *parser.AttendanceLogParser, persister snapshotPersister, metrics *MetricsService, cache *CacheService, logger *zap.Logger) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{
		store:     recordStore,
		parser:    logParser,
		persister: persister,
		metrics:   metrics,
		cache:     cache,
		logger:    logger,
		now:       time.Now,
	}
}

// IngestBatch processes uploaded attendance text files strictly in order.
// Each file moves waiting -> processing -> success/error; a file that yields
// zero records is reported as an error ("no data recognized") without
// aborting the files after it. A non-empty startTime replaces the configured
// school-day start for every file in the batch.
func (s *AttendanceService) IngestBatch(ctx context.Context, files []UploadFile, defaultDate, startTime string) models.UploadBatch {
	if defaultDate == "" {
		defaultDate = s.now().Format("2006-01-02")
	}

	batch := models.UploadBatch{
		BatchID: uuid.NewString(),
		Files:   make([]models.FileResult, len(files)),
	}
	for i, f := range files {
		batch.Files[i] = models.FileResult{Name: f.Name, Status: models.FileStatusWaiting}
	}

	mutated := false
	for i, f := range files {
		batch.Files[i].Status = models.FileStatusProcessing

		result := s.parser.Parse(string(f.Data), defaultDate, startTime)
		batch.Files[i].SkippedLines = result.SkippedLines
		if s.metrics != nil {
			s.metrics.ObserveIngest(len(result.Records), result.SkippedLines)
		}

		if len(result.Records) == 0 {
			batch.Files[i].Status = models.FileStatusError
			batch.Files[i].Message = appErrors.ErrNoDataRecognized.Message
			s.logger.Warn("attendance file yielded no records",
				zap.String("file", f.Name),
				zap.Int("skipped_lines", result.SkippedLines))
			continue
		}

		s.store.UpsertBatch(result.Records)
		mutated = true

		batch.Files[i].Status = models.FileStatusSuccess
		batch.Files[i].Records = len(result.Records)
		batch.TotalRecords += len(result.Records)
		s.logger.Info("attendance file ingested",
			zap.String("file", f.Name),
			zap.String("date", result.Date),
			zap.Int("records", len(result.Records)),
			zap.Int("skipped_lines", result.SkippedLines))
	}

	if mutated {
		s.afterMutation(ctx)
	}

	return batch
}

// ListRecords returns one page of history, newest date first reversed to the
// stable date/student order, optionally filtered by a normalised name or id
// search and exact date.
func (s *AttendanceService) ListRecords(req dto.RecordListRequest) ([]models.AttendanceRecord, *models.Pagination) {
	all := s.store.Flatten()

	filtered := all[:0:0]
	for _, rec := range all {
		if req.Date != "" && rec.Date != req.Date {
			continue
		}
		if req.Student != "" && rec.StudentID != req.Student {
			continue
		}
		if req.Query != "" && !arabic.Contains(rec.StudentName, req.Query) && rec.StudentID != req.Query {
			continue
		}
		filtered = append(filtered, rec)
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	size := req.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}

	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: len(filtered)}
	start := (page - 1) * size
	if start >= len(filtered) {
		return []models.AttendanceRecord{}, pagination
	}
	end := start + size
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], pagination
}

// DeleteRecord removes one (student, date) entry.
func (s *AttendanceService) DeleteRecord(ctx context.Context, studentID, date string) error {
	if _, ok := s.store.Lookup(studentID, date); !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "record not found")
	}
	s.store.DeleteRecord(studentID, date)
	s.afterMutation(ctx)
	return nil
}

// ClearRecords drops the entire record history.
func (s *AttendanceService) ClearRecords(ctx context.Context) {
	s.store.ClearRecords()
	s.afterMutation(ctx)
}

// StudentReport assembles one student's roster entry, history and totals.
func (s *AttendanceService) StudentReport(studentID string) (*dto.StudentReportResponse, error) {
	roster := s.store.RosterSnapshot()
	snapshot := s.store.Snapshot()

	days, hasRecords := snapshot[studentID]
	meta, hasRoster := roster[studentID]
	if !hasRecords && !hasRoster {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	report := &dto.StudentReportResponse{Student: meta}
	report.Totals.StudentID = studentID

	for _, rec := range store.Flatten(models.RecordSnapshot{studentID: days}) {
		report.Records = append(report.Records, rec)
		report.Totals.StudentName = rec.StudentName
		if rec.Delayed() {
			report.Totals.DelayedDays++
			report.Totals.TotalMinutes += rec.DelayMinutes
		}
	}
	if report.Totals.StudentName == "" {
		report.Totals.StudentName = meta.Name
	}

	return report, nil
}

func (s *AttendanceService) afterMutation(ctx context.Context) {
	if s.persister != nil {
		s.persister.Persist(s.store.Snapshot(), s.store.RosterSnapshot())
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, statsCachePattern); err != nil {
			s.logger.Warn("stats cache invalidation failed", zap.Error(err))
		}
	}
}
