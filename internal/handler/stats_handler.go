package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haitham-dev/hudur-api/internal/dto"
	"github.com/haitham-dev/hudur-api/internal/service"
	appErrors "github.com/haitham-dev/hudur-api/pkg/errors"
	"github.com/haitham-dev/hudur-api/pkg/response"
)

// StatsHandler wires HTTP endpoints to the aggregation service.
type StatsHandler struct {
	service *service.StatsService
}

// NewStatsHandler creates a new handler.
func NewStatsHandler(svc *service.StatsService) *StatsHandler {
	return &StatsHandler{service: svc}
}

func cacheMeta(hit bool) map[string]interface{} {
	return map[string]interface{}{"cache_hit": hit}
}

// Overview godoc
// @Summary Dashboard summary
// @Description Totals, top offenders and the busiest day across the history
// @Tags Statistics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /stats/overview [get]
func (h *StatsHandler) Overview(c *gin.Context) {
	overview, hit := h.service.Overview(c.Request.Context())
	response.JSON(c, http.StatusOK, overview, nil, cacheMeta(hit))
}

// Monthly godoc
// @Summary Monthly rollup
// @Tags Statistics
// @Produce json
// @Param month query string true "Month (YYYY-MM)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /stats/monthly [get]
func (h *StatsHandler) Monthly(c *gin.Context) {
	var req dto.MonthlyStatsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "month must be YYYY-MM"))
		return
	}

	monthly, hit := h.service.Monthly(c.Request.Context(), req.Month)
	response.JSON(c, http.StatusOK, monthly, nil, cacheMeta(hit))
}

// Weekdays godoc
// @Summary Weekday rollup
// @Tags Statistics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /stats/weekdays [get]
func (h *StatsHandler) Weekdays(c *gin.Context) {
	days, hit := h.service.Weekdays(c.Request.Context())
	response.JSON(c, http.StatusOK, dto.WeekdayStatsResponse{Weekdays: days}, nil, cacheMeta(hit))
}

// Classes godoc
// @Summary Per-class rollup
// @Tags Statistics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /stats/classes [get]
func (h *StatsHandler) Classes(c *gin.Context) {
	classes, hit := h.service.Classes(c.Request.Context())
	response.JSON(c, http.StatusOK, dto.ClassStatsResponse{Classes: classes}, nil, cacheMeta(hit))
}

// Daily godoc
// @Summary Per-day rollup
// @Tags Statistics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /stats/daily [get]
func (h *StatsHandler) Daily(c *gin.Context) {
	days, hit := h.service.Daily(c.Request.Context())
	response.JSON(c, http.StatusOK, dto.DailyStatsResponse{Days: days}, nil, cacheMeta(hit))
}
