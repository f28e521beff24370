package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haitham-dev/hudur-api/internal/dto"
	"github.com/haitham-dev/hudur-api/internal/service"
	"github.com/haitham-dev/hudur-api/pkg/response"
)

// StudentHandler wires HTTP endpoints to roster operations.
type StudentHandler struct {
	roster     *service.RosterService
	attendance *service.AttendanceService
}

// NewStudentHandler creates a new handler.
func NewStudentHandler(roster *service.RosterService, attendance *service.AttendanceService) *StudentHandler {
	return &StudentHandler{roster: roster, attendance: attendance}
}

// List godoc
// @Summary List roster students
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	students := h.roster.ListStudents()
	response.JSON(c, http.StatusOK, dto.StudentListResponse{Students: students}, nil)
}

// Report godoc
// @Summary Per-student delay report
// @Description Join one student's roster entry with their history and totals
// @Tags Students
// @Produce json
// @Param id path string true "Student id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id}/report [get]
func (h *StudentHandler) Report(c *gin.Context) {
	report, err := h.attendance.StudentReport(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// Delete godoc
// @Summary Delete one roster entry
// @Tags Students
// @Produce json
// @Param id path string true "Student id"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	if err := h.roster.DeleteStudent(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Clear godoc
// @Summary Delete the entire roster
// @Tags Students
// @Produce json
// @Success 204 {object} response.Envelope
// @Router /students [delete]
func (h *StudentHandler) Clear(c *gin.Context) {
	h.roster.ClearRoster(c.Request.Context())
	response.NoContent(c)
}
