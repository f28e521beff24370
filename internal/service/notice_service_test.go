package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haitham-dev/hudur-api/internal/models"
)

type stubPersister struct {
	calls   int
	records models.RecordSnapshot
	roster  models.RosterSnapshot
}

func (p *stubPersister) Persist(records models.RecordSnapshot, roster models.RosterSnapshot) {
	p.calls++
	p.records = records
	p.roster = roster
}

func noticeFixture() models.RecordSnapshot {
	notified := rec("1000000001", "سالم", "2025-03-05", 10)
	notified.Notified = true
	return models.RecordSnapshot{
		"1000000001": {
			"2025-03-02": rec("1000000001", "سالم", "2025-03-02", 15),
			"2025-03-03": rec("1000000001", "سالم", "2025-03-03", 25),
			"2025-03-04": rec("1000000001", "سالم", "2025-03-04", 5),
			"2025-03-05": notified,
		},
		"1000000002": {
			"2025-03-02": rec("1000000002", "فهد", "2025-03-02", 40),
			"2025-03-03": rec("1000000002", "فهد", "2025-03-03", 0),
		},
	}
}

func TestCandidatesAppliesThreshold(t *testing.T) {
	svc := NewNoticeService(restoredStore(noticeFixture()), nil, nil, 3)

	candidates, threshold := svc.Candidates(0)
	assert.Equal(t, 3, threshold)
	require.Len(t, candidates, 1)
	assert.Equal(t, "1000000001", candidates[0].StudentID)
	assert.Equal(t, 3, candidates[0].PendingCount)
	assert.Equal(t, 45, candidates[0].TotalMinutes)
	assert.Equal(t, []string{"2025-03-02", "2025-03-03", "2025-03-04"}, candidates[0].PendingDates)
}

func TestCandidatesExcludesNotifiedAndOnTime(t *testing.T) {
	svc := NewNoticeService(restoredStore(noticeFixture()), nil, nil, 3)

	candidates, threshold := svc.Candidates(1)
	assert.Equal(t, 1, threshold)
	require.Len(t, candidates, 2)
	// The notified 2025-03-05 record must not appear in pending dates.
	assert.NotContains(t, candidates[0].PendingDates, "2025-03-05")
	// The on-time 2025-03-03 record of the second student does not count.
	assert.Equal(t, 1, candidates[1].PendingCount)
}

func TestAckMarksAndPersists(t *testing.T) {
	recordStore := restoredStore(noticeFixture())
	persister := &stubPersister{}
	svc := NewNoticeService(recordStore, persister, nil, 3)

	updated, err := svc.Ack(context.Background(), "1000000001", []string{"2025-03-02", "2025-03-03"})
	require.NoError(t, err)
	assert.Equal(t, 2, updated)
	assert.Equal(t, 1, persister.calls)

	recAfter, ok := recordStore.Lookup("1000000001", "2025-03-02")
	require.True(t, ok)
	assert.True(t, recAfter.Notified)

	// Acknowledged records no longer reach the threshold.
	remaining, _ := svc.Candidates(3)
	assert.Empty(t, remaining)
}

func TestAckNothingPendingFails(t *testing.T) {
	recordStore := restoredStore(noticeFixture())
	persister := &stubPersister{}
	svc := NewNoticeService(recordStore, persister, nil, 3)

	updated, err := svc.Ack(context.Background(), "1000000001", []string{"2025-03-05", "2099-01-01"})
	assert.Error(t, err)
	assert.Zero(t, updated)
	assert.Zero(t, persister.calls)
}
