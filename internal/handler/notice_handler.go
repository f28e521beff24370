package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haitham-dev/hudur-api/internal/dto"
	"github.com/haitham-dev/hudur-api/internal/service"
	appErrors "github.com/haitham-dev/hudur-api/pkg/errors"
	"github.com/haitham-dev/hudur-api/pkg/response"
)

// NoticeHandler wires HTTP endpoints to parent notice operations.
type NoticeHandler struct {
	service *service.NoticeService
}

// NewNoticeHandler creates a new handler.
func NewNoticeHandler(svc *service.NoticeService) *NoticeHandler {
	return &NoticeHandler{service: svc}
}

// Candidates godoc
// @Summary List students due a parent notice
// @Description Students whose un-notified delayed records reached the threshold
// @Tags Notices
// @Produce json
// @Param threshold query int false "Override the configured threshold"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /notices/candidates [get]
func (h *NoticeHandler) Candidates(c *gin.Context) {
	var req dto.NoticeCandidatesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "threshold must be a positive integer"))
		return
	}

	candidates, threshold := h.service.Candidates(req.Threshold)
	response.JSON(c, http.StatusOK, dto.NoticeCandidatesResponse{
		Threshold:  threshold,
		Candidates: candidates,
	}, nil)
}

// Ack godoc
// @Summary Acknowledge a parent notice
// @Description Mark the given dates of one student as notified
// @Tags Notices
// @Accept json
// @Produce json
// @Param payload body dto.NoticeAckRequest true "Acknowledgement payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /notices/ack [post]
func (h *NoticeHandler) Ack(c *gin.Context) {
	var req dto.NoticeAckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid acknowledgement payload"))
		return
	}

	updated, err := h.service.Ack(c.Request.Context(), req.StudentID, req.Dates)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.NoticeAckResponse{Updated: updated}, nil)
}
