package service

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/haitham-dev/hudur-api/internal/store"
	"github.com/haitham-dev/hudur-api/pkg/arabic"
	"github.com/haitham-dev/hudur-api/pkg/export"
	"github.com/haitham-dev/hudur-api/pkg/storage"
)

type exportFileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	RelativePath string
	Token        string
	URL          string
	ExpiresAt    time.Time
}

// ExportService renders record history and monthly rollups into downloadable
// files behind signed URLs.
type ExportService struct {
	store   *store.RecordStore
	storage exportFileStorage
	csv     csvRenderer
	pdf     pdfRenderer
	signer  *storage.SignedURLSigner
	logger  *zap.Logger
	cfg     ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(recordStore *store.RecordStore, fileStorage exportFileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		store:   recordStore,
		storage: fileStorage,
		csv:     csv,
		pdf:     pdf,
		signer:  signer,
		logger:  logger,
		cfg:     cfg,
	}
}

// RecordsCSV renders the full record history, stable date/student order, and
// stores it behind a signed URL.
func (s *ExportService) RecordsCSV() (*ExportResult, error) {
	records := s.store.Flatten()

	rows := make([]map[string]string, 0, len(records))
	for _, rec := range records {
		departure := "-"
		if rec.DepartureRecorded {
			departure = "recorded"
		}
		rows = append(rows, map[string]string{
			"Date":       rec.Date,
			"Student ID": rec.StudentID,
			"Name":       rec.StudentName,
			"Arrival":    rec.ArrivalTime,
			"Departure":  departure,
			"Delay":      arabic.FormatDelay(rec.DelayMinutes),
			"Notified":   fmt.Sprintf("%t", rec.Notified),
		})
	}
	dataset := export.Dataset{
		Headers: []string{"Date", "Student ID", "Name", "Arrival", "Departure", "Delay", "Notified"},
		Rows:    rows,
	}

	payload, err := s.csv.Render(dataset)
	if err != nil {
		return nil, err
	}
	return s.publish(payload, "records", "csv")
}

// MonthlyPDF renders the per-student rollup of one YYYY-MM month.
func (s *ExportService) MonthlyPDF(month string) (*ExportResult, error) {
	monthly := Monthly(s.store.Snapshot(), month)

	rows := make([]map[string]string, 0, len(monthly.Students))
	for _, total := range monthly.Students {
		rows = append(rows, map[string]string{
			"Student ID":    total.StudentID,
			"Delayed Days":  fmt.Sprintf("%d", total.DelayedDays),
			"Total Minutes": fmt.Sprintf("%d", total.TotalMinutes),
		})
	}
	// Core PDF fonts cannot shape Arabic, so names stay out of this report;
	// the CSV export carries them.
	dataset := export.Dataset{
		Headers: []string{"Student ID", "Delayed Days", "Total Minutes"},
		Rows:    rows,
	}

	payload, err := s.pdf.Render(dataset, fmt.Sprintf("Delay Report %s", month))
	if err != nil {
		return nil, err
	}
	return s.publish(payload, "monthly_"+month, "pdf")
}

// ParseToken validates download token metadata.
func (s *ExportService) ParseToken(token string, allowExpired bool) (jobID, relPath string, expiresAt time.Time, err error) {
	return s.signer.Parse(token, allowExpired)
}

// Open returns a handle to the stored file.
func (s *ExportService) Open(relPath string) (*os.File, error) {
	return s.storage.Open(relPath)
}

// Cleanup removes files older than ttl, defaulting to the configured
// ResultTTL when ttl <= 0.
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.CleanupOlderThan(ttl)
}

func (s *ExportService) publish(payload []byte, kind, format string) (*ExportResult, error) {
	jobID := uuid.NewString()
	timestamp := time.Now().UTC().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", kind, timestamp, format)

	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.signer.Generate(jobID, relPath)
	if err != nil {
		return nil, err
	}
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}

	s.logger.Info("export generated",
		zap.String("file", relPath),
		zap.Int("bytes", len(payload)))

	return &ExportResult{
		RelativePath: relPath,
		Token:        token,
		URL:          fmt.Sprintf("%s/exports/download/%s", prefix, token),
		ExpiresAt:    expiresAt,
	}, nil
}
