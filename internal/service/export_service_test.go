package service

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/haitham-dev/hudur-api/pkg/export"
	"github.com/haitham-dev/hudur-api/pkg/storage"
)

func newExportServiceForTest(t *testing.T) (*ExportService, *storage.LocalStorage) {
	t.Helper()
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("secret", time.Hour)
	cfg := ExportConfig{APIPrefix: "/api/v1", ResultTTL: time.Hour}
	svc := NewExportService(restoredStore(statsFixture()), files, signer, cfg, zap.NewNop(), export.NewCSVExporter(), export.NewPDFExporter())
	return svc, files
}

func TestExportRecordsCSV(t *testing.T) {
	svc, files := newExportServiceForTest(t)

	result, err := svc.RecordsCSV()
	require.NoError(t, err)
	require.NotEmpty(t, result.RelativePath)
	assert.Contains(t, result.URL, "/api/v1/exports/download/")

	raw, err := files.Read(result.RelativePath)
	require.NoError(t, err)
	content := string(raw)
	assert.Contains(t, content, "Date,Student ID,Name")
	assert.Contains(t, content, "1000000001")
	// The on-time record renders the Arabic on-time label.
	assert.Contains(t, content, "منضبط")
	assert.Contains(t, content, "40 دقيقة")
}

func TestExportMonthlyPDF(t *testing.T) {
	svc, files := newExportServiceForTest(t)

	result, err := svc.MonthlyPDF("2025-03")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(result.RelativePath, ".pdf"))

	info, err := os.Stat(files.Path(result.RelativePath))
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestExportTokenRoundTrip(t *testing.T) {
	svc, _ := newExportServiceForTest(t)

	result, err := svc.RecordsCSV()
	require.NoError(t, err)

	_, relPath, expiresAt, err := svc.ParseToken(result.Token, false)
	require.NoError(t, err)
	assert.Equal(t, result.RelativePath, relPath)
	assert.WithinDuration(t, result.ExpiresAt, expiresAt, time.Second)

	_, _, _, err = svc.ParseToken(result.Token+"x", false)
	assert.Error(t, err)
}
