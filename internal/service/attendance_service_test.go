package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haitham-dev/hudur-api/internal/dto"
	"github.com/haitham-dev/hudur-api/internal/models"
	"github.com/haitham-dev/hudur-api/internal/parser"
	"github.com/haitham-dev/hudur-api/internal/store"
)

const sampleLog = `سجل المتأخرين
2025-03-02
الاسم رقم الهوية
1000000001 سالم العتيبي 07:30:00
1000000002 فهد الدوسري 07:10:00
not a record line
`

func newAttendanceServiceForTest(persister snapshotPersister) (*AttendanceService, *store.RecordStore) {
	recordStore := store.New()
	logParser := parser.NewAttendanceLogParser("07:15:00")
	svc := NewAttendanceService(recordStore, logParser, persister, nil, nil, nil)
	return svc, recordStore
}

func TestIngestBatchProcessesFilesInOrder(t *testing.T) {
	persister := &stubPersister{}
	svc, recordStore := newAttendanceServiceForTest(persister)

	batch := svc.IngestBatch(context.Background(), []UploadFile{
		{Name: "day1.txt", Data: []byte(sampleLog)},
		{Name: "empty.txt", Data: []byte("لم يسجل خروج\nوقت الانصراف\n")},
	}, "", "")

	require.Len(t, batch.Files, 2)
	assert.Equal(t, models.FileStatusSuccess, batch.Files[0].Status)
	assert.Equal(t, 2, batch.Files[0].Records)
	assert.Equal(t, models.FileStatusError, batch.Files[1].Status)
	assert.NotEmpty(t, batch.Files[1].Message)
	assert.Equal(t, 2, batch.TotalRecords)
	assert.Equal(t, 1, persister.calls)

	late, ok := recordStore.Lookup("1000000001", "2025-03-02")
	require.True(t, ok)
	assert.Equal(t, 15, late.DelayMinutes)

	early, ok := recordStore.Lookup("1000000002", "2025-03-02")
	require.True(t, ok)
	assert.Equal(t, 0, early.DelayMinutes)
}

func TestIngestBatchHonorsBatchStartTime(t *testing.T) {
	svc, recordStore := newAttendanceServiceForTest(nil)

	svc.IngestBatch(context.Background(), []UploadFile{{Name: "ramadan.txt", Data: []byte(sampleLog)}}, "", "07:00:00")

	late, ok := recordStore.Lookup("1000000001", "2025-03-02")
	require.True(t, ok)
	assert.Equal(t, 30, late.DelayMinutes)

	early, ok := recordStore.Lookup("1000000002", "2025-03-02")
	require.True(t, ok)
	assert.Equal(t, 10, early.DelayMinutes)
}

func TestIngestBatchPreservesNotifiedOnReupload(t *testing.T) {
	svc, recordStore := newAttendanceServiceForTest(nil)

	svc.IngestBatch(context.Background(), []UploadFile{{Name: "day1.txt", Data: []byte(sampleLog)}}, "", "")
	recordStore.MarkNotified("1000000001", []string{"2025-03-02"})

	svc.IngestBatch(context.Background(), []UploadFile{{Name: "day1-again.txt", Data: []byte(sampleLog)}}, "", "")

	rec, ok := recordStore.Lookup("1000000001", "2025-03-02")
	require.True(t, ok)
	assert.True(t, rec.Notified)
}

func TestListRecordsFiltersAndPaginates(t *testing.T) {
	svc, recordStore := newAttendanceServiceForTest(nil)
	recordStore.Restore(statsFixture(), nil)

	records, pagination := svc.ListRecords(dto.RecordListRequest{})
	assert.Len(t, records, 5)
	assert.Equal(t, 5, pagination.TotalCount)
	assert.Equal(t, 50, pagination.PageSize)

	records, _ = svc.ListRecords(dto.RecordListRequest{Date: "2025-03-02"})
	assert.Len(t, records, 3)

	records, _ = svc.ListRecords(dto.RecordListRequest{Query: "سالم"})
	assert.Len(t, records, 2)

	records, pagination = svc.ListRecords(dto.RecordListRequest{Page: 2, PageSize: 3})
	assert.Len(t, records, 2)
	assert.Equal(t, 5, pagination.TotalCount)

	records, _ = svc.ListRecords(dto.RecordListRequest{Page: 9})
	assert.Empty(t, records)
}

func TestDeleteRecord(t *testing.T) {
	persister := &stubPersister{}
	svc, recordStore := newAttendanceServiceForTest(persister)
	recordStore.Restore(statsFixture(), nil)

	require.NoError(t, svc.DeleteRecord(context.Background(), "1000000003", "2025-03-02"))
	_, ok := recordStore.Lookup("1000000003", "2025-03-02")
	assert.False(t, ok)
	assert.Equal(t, 1, persister.calls)

	assert.Error(t, svc.DeleteRecord(context.Background(), "1000000003", "2025-03-02"))
	assert.Equal(t, 1, persister.calls)
}

func TestStudentReport(t *testing.T) {
	svc, recordStore := newAttendanceServiceForTest(nil)
	recordStore.Restore(statsFixture(), models.RosterSnapshot{
		"1000000001": {ID: "1000000001", Name: "سالم", ClassName: "الأول", Section: "أ"},
	})

	report, err := svc.StudentReport("1000000001")
	require.NoError(t, err)
	assert.Equal(t, "الأول", report.Student.ClassName)
	assert.Len(t, report.Records, 2)
	assert.Equal(t, 2, report.Totals.DelayedDays)
	assert.Equal(t, 40, report.Totals.TotalMinutes)

	_, err = svc.StudentReport("9999999999")
	assert.Error(t, err)
}
