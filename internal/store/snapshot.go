package store

import (
	"encoding/json"
	"fmt"

	"github.com/haitham-dev/hudur-api/internal/models"
)

// persistedState is the on-disk/on-database shape of the store: the nested
// record map plus the roster, versioned so future layout changes can migrate.
type persistedState struct {
	Version int                   `json:"version"`
	Records models.RecordSnapshot `json:"records"`
	Roster  models.RosterSnapshot `json:"roster"`
}

const snapshotVersion = 2

// legacyRecord mirrors the flat-array entries written by the first release,
// where departure was a free-text marker instead of a boolean.
type legacyRecord struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ArrivalTime   string `json:"arrivalTime"`
	DepartureTime string `json:"departureTime"`
	Date          string `json:"date"`
	DelayMinutes  int    `json:"delayMinutes"`
	Notified      bool   `json:"notified"`
}

const legacyNoDeparture = "لم يسجل"

// MarshalSnapshot encodes the store state for the persistence boundary.
func MarshalSnapshot(records models.RecordSnapshot, roster models.RosterSnapshot) ([]byte, error) {
	state := persistedState{Version: snapshotVersion, Records: records, Roster: roster}
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// UnmarshalSnapshot decodes persisted state. Blobs written by the legacy
// release hold a flat record array; those are migrated into the nested
// (id -> date -> record) shape on load, last entry winning on duplicate
// (id, date) pairs, matching the old replace-in-place behaviour.
func UnmarshalSnapshot(data []byte) (models.RecordSnapshot, models.RosterSnapshot, error) {
	if len(data) == 0 {
		return models.RecordSnapshot{}, models.RosterSnapshot{}, nil
	}

	var state persistedState
	if err := json.Unmarshal(data, &state); err == nil && state.Records != nil {
		if state.Roster == nil {
			state.Roster = models.RosterSnapshot{}
		}
		return state.Records, state.Roster, nil
	}

	var legacy []legacyRecord
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, nil, fmt.Errorf("unmarshal snapshot: unrecognised layout: %w", err)
	}

	records := models.RecordSnapshot{}
	for _, lr := range legacy {
		days, ok := records[lr.ID]
		if !ok {
			days = map[string]models.AttendanceRecord{}
			records[lr.ID] = days
		}
		days[lr.Date] = models.AttendanceRecord{
			StudentID:         lr.ID,
			StudentName:       lr.Name,
			ArrivalTime:       lr.ArrivalTime,
			DepartureRecorded: lr.DepartureTime != legacyNoDeparture,
			Date:              lr.Date,
			DelayMinutes:      lr.DelayMinutes,
			Notified:          lr.Notified,
		}
	}

	return records, models.RosterSnapshot{}, nil
}
