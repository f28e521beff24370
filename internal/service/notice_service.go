package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/haitham-dev/hudur-api/internal/models"
	"github.com/haitham-dev/hudur-api/internal/store"
	appErrors "github.com/haitham-dev/hudur-api/pkg/errors"
)

// NoticeService surfaces students who accumulated enough un-notified delays
// to warrant contacting a parent, and records acknowledgements.
type NoticeService struct {
	store            *store.RecordStore
	persister        snapshotPersister
	logger           *zap.Logger
	defaultThreshold int
}

// NewNoticeService constructs the service.
func NewNoticeService(recordStore *store.RecordStore, persister snapshotPersister, logger *zap.Logger, defaultThreshold int) *NoticeService {
	if defaultThreshold <= 0 {
		defaultThreshold = 3
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoticeService{
		store:            recordStore,
		persister:        persister,
		logger:           logger,
		defaultThreshold: defaultThreshold,
	}
}

// Candidates lists students whose count of delayed, un-notified records
// reached the threshold, along with the threshold actually applied. A zero
// threshold falls back to the configured default. Already notified records
// never count, so a student drops off the list once acknowledged even if
// the records remain.
func (s *NoticeService) Candidates(threshold int) ([]models.NoticeCandidate, int) {
	if threshold <= 0 {
		threshold = s.defaultThreshold
	}

	byStudent := map[string]*models.NoticeCandidate{}
	for _, rec := range s.store.Flatten() {
		if !rec.Delayed() || rec.Notified {
			continue
		}
		candidate, ok := byStudent[rec.StudentID]
		if !ok {
			candidate = &models.NoticeCandidate{StudentID: rec.StudentID}
			byStudent[rec.StudentID] = candidate
		}
		candidate.StudentName = rec.StudentName
		candidate.PendingDates = append(candidate.PendingDates, rec.Date)
		candidate.PendingCount++
		candidate.TotalMinutes += rec.DelayMinutes
		candidate.PendingDelays = append(candidate.PendingDelays, rec)
	}

	out := make([]models.NoticeCandidate, 0, len(byStudent))
	for _, candidate := range byStudent {
		if candidate.PendingCount < threshold {
			continue
		}
		out = append(out, *candidate)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PendingCount != out[j].PendingCount {
			return out[i].PendingCount > out[j].PendingCount
		}
		return out[i].StudentID < out[j].StudentID
	})
	return out, threshold
}

// Ack marks the student's records for the given dates as notified and
// persists the change. It returns the number of records actually flipped;
// dates with no record, or already notified, do not count.
func (s *NoticeService) Ack(ctx context.Context, studentID string, dates []string) (int, error) {
	updated := 0
	for _, date := range dates {
		if rec, ok := s.store.Lookup(studentID, date); ok && !rec.Notified {
			updated++
		}
	}
	if updated == 0 {
		return 0, appErrors.Clone(appErrors.ErrNotFound, "no pending records for the given dates")
	}

	s.store.MarkNotified(studentID, dates)
	if s.persister != nil {
		s.persister.Persist(s.store.Snapshot(), s.store.RosterSnapshot())
	}

	s.logger.Info("notice acknowledged",
		zap.String("student_id", studentID),
		zap.Int("records", updated))
	return updated, nil
}
