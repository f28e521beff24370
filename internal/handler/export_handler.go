package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/haitham-dev/hudur-api/internal/dto"
	"github.com/haitham-dev/hudur-api/internal/service"
	appErrors "github.com/haitham-dev/hudur-api/pkg/errors"
	"github.com/haitham-dev/hudur-api/pkg/response"
)

// ExportHandler wires HTTP endpoints to report generation and download.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler creates a new handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// RecordsCSV godoc
// @Summary Export the record history as CSV
// @Tags Exports
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /exports/records.csv [post]
func (h *ExportHandler) RecordsCSV(c *gin.Context) {
	result, err := h.service.RecordsCSV()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, exportResponse(result), nil)
}

// MonthlyPDF godoc
// @Summary Export one month's rollup as PDF
// @Tags Exports
// @Produce json
// @Param month query string true "Month (YYYY-MM)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /exports/monthly.pdf [post]
func (h *ExportHandler) MonthlyPDF(c *gin.Context) {
	var req dto.MonthlyExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "month must be YYYY-MM"))
		return
	}

	result, err := h.service.MonthlyPDF(req.Month)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, exportResponse(result), nil)
}

// Download godoc
// @Summary Download a generated export via signed token
// @Tags Exports
// @Produce octet-stream
// @Param token path string true "Signed token"
// @Success 200 {file} binary
// @Failure 401 {object} response.Envelope
// @Router /exports/download/{token} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}

	_, relPath, _, err := h.service.ParseToken(token, false)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired download token"))
		return
	}

	file, err := h.service.Open(relPath)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "export file no longer available"))
		return
	}
	defer file.Close() //nolint:errcheck

	info, err := file.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to stat export file"))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(relPath)))
	c.Header("Cache-Control", "no-store")
	c.DataFromReader(http.StatusOK, info.Size(), contentTypeFor(relPath), file, nil)
}

func exportResponse(result *service.ExportResult) dto.ExportResponse {
	return dto.ExportResponse{
		File:        result.RelativePath,
		DownloadURL: result.URL,
		ExpiresAt:   result.ExpiresAt,
	}
}

func contentTypeFor(relPath string) string {
	switch filepath.Ext(relPath) {
	case ".csv":
		return "text/csv; charset=utf-8"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
