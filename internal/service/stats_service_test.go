package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haitham-dev/hudur-api/internal/models"
	"github.com/haitham-dev/hudur-api/internal/store"
	appErrors "github.com/haitham-dev/hudur-api/pkg/errors"
)

type stubCacheRepo struct {
	entries map[string][]byte
	deleted []string
}

func newStubCacheRepo() *stubCacheRepo {
	return &stubCacheRepo{entries: map[string][]byte{}}
}

func (s *stubCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := s.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (s *stubCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.entries[key] = raw
	return nil
}

func (s *stubCacheRepo) DeleteByPattern(_ context.Context, pattern string) error {
	s.deleted = append(s.deleted, pattern)
	s.entries = map[string][]byte{}
	return nil
}

func rec(id, name, date string, minutes int) models.AttendanceRecord {
	return models.AttendanceRecord{
		StudentID:    id,
		StudentName:  name,
		ArrivalTime:  "07:30:00",
		Date:         date,
		DelayMinutes: minutes,
	}
}

func statsFixture() models.RecordSnapshot {
	return models.RecordSnapshot{
		"1000000001": {
			"2025-03-02": rec("1000000001", "سالم", "2025-03-02", 15),
			"2025-03-03": rec("1000000001", "سالم", "2025-03-03", 25),
		},
		"1000000002": {
			"2025-03-02": rec("1000000002", "فهد", "2025-03-02", 40),
			"2025-04-06": rec("1000000002", "فهد", "2025-04-06", 0),
		},
		"1000000003": {
			"2025-03-02": rec("1000000003", "ناصر", "2025-03-02", 40),
		},
	}
}

func TestPerStudentTotalsOrdersByMinutesThenID(t *testing.T) {
	totals := PerStudentTotals(statsFixture())
	require.Len(t, totals, 3)

	assert.Equal(t, "1000000001", totals[0].StudentID)
	assert.Equal(t, 40, totals[0].TotalMinutes)
	assert.Equal(t, 2, totals[0].DelayedDays)

	// 40 minutes each: the smaller id wins the tie.
	assert.Equal(t, "1000000002", totals[1].StudentID)
	assert.Equal(t, "1000000003", totals[2].StudentID)
	assert.Equal(t, 1, totals[1].DelayedDays)
}

func TestTopOffendersTruncates(t *testing.T) {
	totals := TopOffenders(statsFixture(), 2)
	require.Len(t, totals, 2)
	assert.Equal(t, "1000000001", totals[0].StudentID)
}

func TestBusiestDayPrefersSmallestDateOnTie(t *testing.T) {
	snapshot := models.RecordSnapshot{
		"1000000001": {
			"2025-03-10": rec("1000000001", "سالم", "2025-03-10", 5),
			"2025-03-04": rec("1000000001", "سالم", "2025-03-04", 5),
		},
		"1000000002": {
			"2025-03-10": rec("1000000002", "فهد", "2025-03-10", 5),
			"2025-03-04": rec("1000000002", "فهد", "2025-03-04", 5),
		},
	}
	assert.Equal(t, "2025-03-04", BusiestDay(snapshot))
}

func TestBusiestDayEmptySnapshot(t *testing.T) {
	assert.Equal(t, "", BusiestDay(models.RecordSnapshot{}))
}

func TestOverviewCountsOnTimeRecords(t *testing.T) {
	overview := Overview(statsFixture(), 5)
	assert.Equal(t, 5, overview.TotalRecords)
	assert.Equal(t, 4, overview.DelayedRecords)
	assert.Equal(t, 40, overview.MaxDelayOverall)
	assert.Equal(t, "2025-03-02", overview.BusiestDay)
	assert.Len(t, overview.TopOffenders, 3)
}

func TestMonthlyScopesByPrefix(t *testing.T) {
	monthly := Monthly(statsFixture(), "2025-03")
	assert.Equal(t, "2025-03", monthly.Month)
	require.Len(t, monthly.Days, 2)
	assert.Equal(t, "2025-03-02", monthly.Days[0].Date)
	assert.Equal(t, 3, monthly.Days[0].DelayedCount)

	empty := Monthly(statsFixture(), "2024-12")
	assert.Empty(t, empty.Students)
	assert.Empty(t, empty.Days)
}

func TestWeekdaysSkipsUnparseableDates(t *testing.T) {
	snapshot := models.RecordSnapshot{
		"1000000001": {
			// 2025-03-02 is a Sunday.
			"2025-03-02": rec("1000000001", "سالم", "2025-03-02", 10),
			"not-a-date": rec("1000000001", "سالم", "not-a-date", 10),
		},
	}
	days := Weekdays(snapshot)
	require.Len(t, days, 1)
	assert.Equal(t, "الأحد", days[0].Weekday)
	assert.Equal(t, 1, days[0].DelayedCount)
}

func TestClassesJoinsRosterWithUnspecifiedFallback(t *testing.T) {
	roster := models.RosterSnapshot{
		"1000000001": {ID: "1000000001", Name: "سالم", ClassName: "الأول", Section: "أ"},
		"1000000002": {ID: "1000000002", Name: "فهد", ClassName: "الأول", Section: "ب"},
	}
	classes := Classes(statsFixture(), roster)
	require.Len(t, classes, 3)

	assert.Equal(t, "الأول", classes[0].ClassName)
	assert.Equal(t, "أ", classes[0].Section)
	assert.Equal(t, 2, classes[0].DelayedCount)
	assert.Equal(t, "ب", classes[1].Section)
	assert.Equal(t, models.UnspecifiedLabel, classes[2].ClassName)
	assert.Equal(t, models.UnspecifiedLabel, classes[2].Section)
}

func restoredStore(records models.RecordSnapshot) *store.RecordStore {
	s := store.New()
	s.Restore(records, nil)
	return s
}

func TestStatsServiceCachesOverview(t *testing.T) {
	recordStore := restoredStore(statsFixture())
	repo := newStubCacheRepo()
	cache := NewCacheService(repo, nil, time.Minute, nil, true)
	svc := NewStatsService(recordStore, cache, nil, StatsServiceConfig{TopOffendersLimit: 5})

	first, hit := svc.Overview(context.Background())
	require.NotNil(t, first)
	assert.False(t, hit)

	second, hit := svc.Overview(context.Background())
	assert.True(t, hit)
	assert.Equal(t, first.TotalRecords, second.TotalRecords)
	assert.Equal(t, first.BusiestDay, second.BusiestDay)
}

func TestStatsServiceWithoutCache(t *testing.T) {
	recordStore := restoredStore(statsFixture())
	svc := NewStatsService(recordStore, nil, nil, StatsServiceConfig{})

	overview, hit := svc.Overview(context.Background())
	require.NotNil(t, overview)
	assert.False(t, hit)
	assert.Len(t, overview.TopOffenders, 3)
}
