package store

import (
	"sort"
	"sync"

	"github.com/haitham-dev/hudur-api/internal/models"
)

// RecordStore owns the canonical attendance record collection and the
// roster. Mutations operate on the nested studentID -> date -> record map
// and hand out deep-copied snapshots, so aggregation never observes a
// half-applied update. A single mutex serialises callers; the ingestion
// pipeline itself is strictly sequential.
type RecordStore struct {
	mu      sync.Mutex
	records models.RecordSnapshot
	roster  models.RosterSnapshot
}

// New returns an empty store.
func New() *RecordStore {
	return &RecordStore{
		records: models.RecordSnapshot{},
		roster:  models.RosterSnapshot{},
	}
}

// Restore replaces the in-memory state with previously persisted snapshots.
func (s *RecordStore) Restore(records models.RecordSnapshot, roster models.RosterSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if records == nil {
		records = models.RecordSnapshot{}
	}
	if roster == nil {
		roster = models.RosterSnapshot{}
	}
	s.records = records
	s.roster = roster
}

// UpsertBatch merges parsed records into the store. An existing entry at the
// same (student, date) is replaced wholesale except for its notified flag,
// which is carried forward: uploads never downgrade a notification.
func (s *RecordStore) UpsertBatch(records []models.AttendanceRecord) models.RecordSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range records {
		days, ok := s.records[rec.StudentID]
		if !ok {
			days = map[string]models.AttendanceRecord{}
			s.records[rec.StudentID] = days
		}
		if existing, ok := days[rec.Date]; ok {
			rec.Notified = existing.Notified || rec.Notified
		} else {
			rec.Notified = false
		}
		days[rec.Date] = rec
	}

	return s.snapshotLocked()
}

// MarkNotified flips notified to true on the student's records for the given
// dates. Dates without an existing record are ignored; marking never creates
// phantom records.
func (s *RecordStore) MarkNotified(studentID string, dates []string) models.RecordSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	days, ok := s.records[studentID]
	if !ok {
		return s.snapshotLocked()
	}
	for _, date := range dates {
		if rec, ok := days[date]; ok {
			rec.Notified = true
			days[date] = rec
		}
	}

	return s.snapshotLocked()
}

// DeleteRecord removes one (student, date) entry, pruning the student bucket
// when it empties. The store never holds empty inner maps.
func (s *RecordStore) DeleteRecord(studentID, date string) models.RecordSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if days, ok := s.records[studentID]; ok {
		delete(days, date)
		if len(days) == 0 {
			delete(s.records, studentID)
		}
	}

	return s.snapshotLocked()
}

// ClearRecords drops every attendance record, leaving the roster intact.
func (s *RecordStore) ClearRecords() models.RecordSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = models.RecordSnapshot{}
	return s.snapshotLocked()
}

// UpsertRoster merges roster entries keyed by id, last write wins per id.
// Ids absent from the call are left untouched.
func (s *RecordStore) UpsertRoster(entries []models.StudentMetadata) models.RosterSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range entries {
		s.roster[entry.ID] = entry
	}

	return s.rosterSnapshotLocked()
}

// DeleteStudent removes one roster entry by id.
func (s *RecordStore) DeleteStudent(id string) models.RosterSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.roster, id)
	return s.rosterSnapshotLocked()
}

// ClearRoster performs the full-replace with nothing.
func (s *RecordStore) ClearRoster() models.RosterSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roster = models.RosterSnapshot{}
	return s.rosterSnapshotLocked()
}

// Snapshot returns a deep copy of the record collection.
func (s *RecordStore) Snapshot() models.RecordSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// RosterSnapshot returns a copy of the roster.
func (s *RecordStore) RosterSnapshot() models.RosterSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rosterSnapshotLocked()
}

// Lookup returns the record at (studentID, date) when present.
func (s *RecordStore) Lookup(studentID, date string) (models.AttendanceRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[studentID][date]
	return rec, ok
}

// Flatten returns every record ordered by date then student id, the stable
// iteration order used by listings and exports.
func (s *RecordStore) Flatten() []models.AttendanceRecord {
	return Flatten(s.Snapshot())
}

func (s *RecordStore) snapshotLocked() models.RecordSnapshot {
	out := make(models.RecordSnapshot, len(s.records))
	for id, days := range s.records {
		copied := make(map[string]models.AttendanceRecord, len(days))
		for date, rec := range days {
			copied[date] = rec
		}
		out[id] = copied
	}
	return out
}

func (s *RecordStore) rosterSnapshotLocked() models.RosterSnapshot {
	out := make(models.RosterSnapshot, len(s.roster))
	for id, entry := range s.roster {
		out[id] = entry
	}
	return out
}

// Flatten orders a snapshot's records by date then student id.
func Flatten(snapshot models.RecordSnapshot) []models.AttendanceRecord {
	var out []models.AttendanceRecord
	for _, days := range snapshot {
		for _, rec := range days {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StudentID < out[j].StudentID
	})
	return out
}
