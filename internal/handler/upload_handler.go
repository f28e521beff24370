package handler

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haitham-dev/hudur-api/internal/dto"
	"github.com/haitham-dev/hudur-api/internal/service"
	appErrors "github.com/haitham-dev/hudur-api/pkg/errors"
	"github.com/haitham-dev/hudur-api/pkg/response"
)

// UploadHandler wires HTTP endpoints to the ingestion services.
type UploadHandler struct {
	attendance *service.AttendanceService
	roster     *service.RosterService
}

// NewUploadHandler creates a new handler.
func NewUploadHandler(attendance *service.AttendanceService, roster *service.RosterService) *UploadHandler {
	return &UploadHandler{attendance: attendance, roster: roster}
}

// Attendance godoc
// @Summary Upload attendance log files
// @Description Parse delay log text files and merge the recognised records
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param default_date formData string false "Fallback date (YYYY-MM-DD)"
// @Param start_time formData string false "School-day start for this batch (HH:MM:SS)"
// @Param files formData file true "Attendance log files"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /uploads/attendance [post]
func (h *UploadHandler) Attendance(c *gin.Context) {
	var req dto.AttendanceUploadRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid upload payload"))
		return
	}

	files, err := formFiles(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	batch := h.attendance.IngestBatch(c.Request.Context(), files, req.DefaultDate, req.StartTime)
	response.JSON(c, http.StatusOK, dto.AttendanceUploadResponse{Batch: batch}, nil)
}

// Roster godoc
// @Summary Upload roster workbooks
// @Description Parse student roster spreadsheets and merge them into the roster
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Roster xlsx workbooks"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /uploads/roster [post]
func (h *UploadHandler) Roster(c *gin.Context) {
	files, err := formFiles(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := h.roster.IngestWorkbooks(c.Request.Context(), files)
	response.JSON(c, http.StatusOK, resp, nil)
}

func formFiles(c *gin.Context) ([]service.UploadFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "multipart form required")
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "at least one file is required")
	}

	files := make([]service.UploadFile, 0, len(headers))
	for _, header := range headers {
		data, err := readFormFile(header)
		if err != nil {
			return nil, err
		}
		files = append(files, service.UploadFile{Name: header.Filename, Data: data})
	}
	return files, nil
}

func readFormFile(header *multipart.FileHeader) ([]byte, error) {
	src, err := header.Open()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open file")
	}
	defer src.Close() //nolint:errcheck

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to buffer file")
	}
	return data, nil
}
