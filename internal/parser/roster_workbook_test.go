package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/haitham-dev/hudur-api/internal/models"
)

func sheetGrid() [][]string {
	return [][]string{
		{"", "مدرسة الأمل الابتدائية", ""},
		{"", "الصف: الثالث الابتدائي", ""},
		{"الفصل", "2", ""},
		{"م", "اسم الطالب", "رقم الهوية"},
		{"1", "محمد أحمد العتيبي", "1022334455"},
		{"2", "خالد سعد الشمري", "2055667788"},
		{"", "", ""},
		{"3", "فهد ناصر القحطاني", ""},
	}
}

func TestParseSheetDiscoversLayoutAndExtractsRows(t *testing.T) {
	p := NewRosterWorkbookParser()

	entries := p.ParseSheet(sheetGrid(), 0)
	require.Len(t, entries, 3)

	assert.Equal(t, "1022334455", entries[0].ID)
	assert.Equal(t, "محمد أحمد العتيبي", entries[0].Name)
	assert.Equal(t, "الثالث الابتدائي", entries[0].ClassName)
	assert.Equal(t, "2", entries[0].Section)

	assert.Equal(t, "2055667788", entries[1].ID)
}

func TestParseSheetAssignsDetectableSyntheticID(t *testing.T) {
	p := NewRosterWorkbookParser()

	entries := p.ParseSheet(sheetGrid(), 4)
	require.Len(t, entries, 3)

	last := entries[2]
	assert.True(t, last.Synthetic())
	assert.Equal(t, models.SyntheticIDPrefix+"4-7", last.ID)

	// Same grid position, same placeholder on re-upload.
	again := p.ParseSheet(sheetGrid(), 4)
	assert.Equal(t, last.ID, again[2].ID)
}

func TestParseSheetSkipsStrayRepeatedHeaders(t *testing.T) {
	grid := sheetGrid()
	grid = append(grid, []string{"م", "اسم الطالب", "رقم الهوية"})
	grid = append(grid, []string{"4", "سلمان علي الدوسري", "1099887766"})

	p := NewRosterWorkbookParser()
	entries := p.ParseSheet(grid, 0)

	require.Len(t, entries, 4)
	assert.Equal(t, "1099887766", entries[3].ID)
}

func TestParseSheetWithoutMarkersFallsBackToUnspecified(t *testing.T) {
	grid := [][]string{
		{"م", "اسم الطالب", "رقم الهوية"},
		{"1", "محمد أحمد العتيبي", "1022334455"},
		{"2", "خالد سعد الشمري", "2055667788"},
	}

	p := NewRosterWorkbookParser()
	entries := p.ParseSheet(grid, 0)

	require.Len(t, entries, 2)
	assert.Equal(t, models.UnspecifiedLabel, entries[0].ClassName)
	assert.Equal(t, models.UnspecifiedLabel, entries[0].Section)
}

func TestParseSheetRejectsShortOrHeaderlessSheets(t *testing.T) {
	p := NewRosterWorkbookParser()

	assert.Empty(t, p.ParseSheet([][]string{{"x"}, {"y"}}, 0))
	assert.Empty(t, p.ParseSheet([][]string{
		{"عنوان"},
		{"بدون رأس"},
		{"ولا بيانات"},
		{"إطلاقاً"},
	}, 0))
}

func TestParseSheetIdentifierFoundAnywhereInRow(t *testing.T) {
	grid := [][]string{
		{"الصف الأول", "", ""},
		{"م", "اسم الطالب", "ملاحظات"},
		{"1022334455", "محمد أحمد العتيبي", "منقول"},
	}

	p := NewRosterWorkbookParser()
	entries := p.ParseSheet(grid, 0)

	require.Len(t, entries, 1)
	assert.Equal(t, "1022334455", entries[0].ID)
}

func TestParseDeduplicatesAcrossSheets(t *testing.T) {
	file := excelize.NewFile()
	defer file.Close() //nolint:errcheck

	writeSheet := func(sheet string) {
		_ = file.SetSheetRow(sheet, "A1", &[]interface{}{"الصف: الرابع"})
		_ = file.SetSheetRow(sheet, "A2", &[]interface{}{"م", "اسم الطالب", "رقم الهوية"})
		_ = file.SetSheetRow(sheet, "A3", &[]interface{}{"1", "محمد أحمد العتيبي", "1234567890"})
	}

	writeSheet("Sheet1")
	_, err := file.NewSheet("Sheet2")
	require.NoError(t, err)
	writeSheet("Sheet2")

	buf, err := file.WriteToBuffer()
	require.NoError(t, err)

	p := NewRosterWorkbookParser()
	entries, err := p.Parse(buf.Bytes())
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, "1234567890", entries[0].ID)
	assert.Equal(t, "محمد أحمد العتيبي", entries[0].Name)
}

func TestParseRejectsNonWorkbookBytes(t *testing.T) {
	p := NewRosterWorkbookParser()
	_, err := p.Parse([]byte("not a workbook"))
	assert.Error(t, err)
}
