package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/haitham-dev/hudur-api/internal/models"
	"github.com/haitham-dev/hudur-api/internal/parser"
	"github.com/haitham-dev/hudur-api/internal/store"
)

func rosterWorkbookBytes(t *testing.T) []byte {
	t.Helper()
	file := excelize.NewFile()
	defer file.Close() //nolint:errcheck

	require.NoError(t, file.SetSheetRow("Sheet1", "A1", &[]interface{}{"الصف: الرابع"}))
	require.NoError(t, file.SetSheetRow("Sheet1", "A2", &[]interface{}{"الفصل", "2"}))
	require.NoError(t, file.SetSheetRow("Sheet1", "A3", &[]interface{}{"م", "اسم الطالب", "رقم الهوية"}))
	require.NoError(t, file.SetSheetRow("Sheet1", "A4", &[]interface{}{"1", "محمد أحمد العتيبي", "1234567890"}))
	require.NoError(t, file.SetSheetRow("Sheet1", "A5", &[]interface{}{"2", "خالد سعد القحطاني", ""}))

	buf, err := file.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func newRosterServiceForTest(persister snapshotPersister) (*RosterService, *store.RecordStore) {
	recordStore := store.New()
	svc := NewRosterService(recordStore, parser.NewRosterWorkbookParser(), persister, nil, nil)
	return svc, recordStore
}

func TestIngestWorkbooksMergesRosterAndCountsSynthetic(t *testing.T) {
	persister := &stubPersister{}
	svc, recordStore := newRosterServiceForTest(persister)

	resp := svc.IngestWorkbooks(context.Background(), []UploadFile{
		{Name: "roster.xlsx", Data: rosterWorkbookBytes(t)},
		{Name: "broken.xlsx", Data: []byte("not a workbook")},
	})

	require.Len(t, resp.Batch.Files, 2)
	assert.Equal(t, models.FileStatusSuccess, resp.Batch.Files[0].Status)
	assert.Equal(t, models.FileStatusError, resp.Batch.Files[1].Status)
	assert.Equal(t, 2, resp.TotalEntries)
	assert.Equal(t, 1, resp.SyntheticIDs)
	assert.Equal(t, 1, persister.calls)

	roster := recordStore.RosterSnapshot()
	entry, ok := roster["1234567890"]
	require.True(t, ok)
	assert.Equal(t, "الرابع", entry.ClassName)
	assert.Equal(t, "2", entry.Section)
}

func TestIngestWorkbooksEmptyWorkbookReportsNoData(t *testing.T) {
	svc, _ := newRosterServiceForTest(nil)

	file := excelize.NewFile()
	defer file.Close() //nolint:errcheck
	buf, err := file.WriteToBuffer()
	require.NoError(t, err)

	resp := svc.IngestWorkbooks(context.Background(), []UploadFile{{Name: "blank.xlsx", Data: buf.Bytes()}})
	require.Len(t, resp.Batch.Files, 1)
	assert.Equal(t, models.FileStatusError, resp.Batch.Files[0].Status)
	assert.Zero(t, resp.TotalEntries)
}

func TestListStudentsOrdersByClassSectionName(t *testing.T) {
	svc, recordStore := newRosterServiceForTest(nil)
	recordStore.UpsertRoster([]models.StudentMetadata{
		{ID: "2000000001", Name: "يوسف", ClassName: "الثاني", Section: "أ"},
		{ID: "2000000002", Name: "أحمد", ClassName: "الأول", Section: "ب"},
		{ID: "2000000003", Name: "بدر", ClassName: "الأول", Section: "أ"},
	})

	students := svc.ListStudents()
	require.Len(t, students, 3)
	assert.Equal(t, "بدر", students[0].Name)
	assert.Equal(t, "أحمد", students[1].Name)
	assert.Equal(t, "يوسف", students[2].Name)
}

func TestDeleteStudent(t *testing.T) {
	persister := &stubPersister{}
	svc, recordStore := newRosterServiceForTest(persister)
	recordStore.UpsertRoster([]models.StudentMetadata{{ID: "2000000001", Name: "يوسف"}})

	require.NoError(t, svc.DeleteStudent(context.Background(), "2000000001"))
	assert.Empty(t, recordStore.RosterSnapshot())
	assert.Equal(t, 1, persister.calls)

	assert.Error(t, svc.DeleteStudent(context.Background(), "2000000001"))
}

func TestClearRosterKeepsRecords(t *testing.T) {
	svc, recordStore := newRosterServiceForTest(nil)
	recordStore.Restore(statsFixture(), models.RosterSnapshot{
		"1000000001": {ID: "1000000001", Name: "سالم"},
	})

	svc.ClearRoster(context.Background())
	assert.Empty(t, recordStore.RosterSnapshot())
	assert.NotEmpty(t, recordStore.Snapshot())
}
