package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/haitham-dev/hudur-api/internal/dto"
	"github.com/haitham-dev/hudur-api/internal/service"
	appErrors "github.com/haitham-dev/hudur-api/pkg/errors"
	"github.com/haitham-dev/hudur-api/pkg/response"
)

// RecordHandler wires HTTP endpoints to attendance record operations.
type RecordHandler struct {
	service *service.AttendanceService
	logger  *zap.Logger
}

// NewRecordHandler creates a new handler.
func NewRecordHandler(svc *service.AttendanceService, logger *zap.Logger) *RecordHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordHandler{service: svc, logger: logger}
}

// List godoc
// @Summary List attendance records
// @Tags Records
// @Produce json
// @Param query query string false "Name or id search"
// @Param date query string false "Exact date (YYYY-MM-DD)"
// @Param student_id query string false "Exact student id"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /records [get]
func (h *RecordHandler) List(c *gin.Context) {
	var req dto.RecordListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid record filter"))
		return
	}

	records, pagination := h.service.ListRecords(req)
	response.JSON(c, http.StatusOK, dto.RecordListResponse{Records: records}, pagination)
}

// Delete godoc
// @Summary Delete one attendance record
// @Tags Records
// @Produce json
// @Param studentId path string true "Student id"
// @Param date path string true "Record date (YYYY-MM-DD)"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /records/{studentId}/{date} [delete]
func (h *RecordHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteRecord(c.Request.Context(), c.Param("studentId"), c.Param("date")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Clear godoc
// @Summary Delete the entire record history
// @Tags Records
// @Produce json
// @Success 204 {object} response.Envelope
// @Router /records [delete]
func (h *RecordHandler) Clear(c *gin.Context) {
	h.service.ClearRecords(c.Request.Context())
	if claims := claimsFromContext(c); claims != nil {
		h.logger.Info("record history cleared", zap.String("username", claims.Username))
	}
	response.NoContent(c)
}
