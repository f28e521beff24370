package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haitham-dev/hudur-api/internal/service"
	"github.com/haitham-dev/hudur-api/internal/store"
	"github.com/haitham-dev/hudur-api/pkg/response"
)

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
	store   *store.RecordStore
}

// NewMetricsHandler constructs a metrics handler.
func NewMetricsHandler(metrics *service.MetricsService, recordStore *store.RecordStore) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, store: recordStore}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health responds with a generic OK payload for liveness usage.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports readiness once the persisted state has been restored into
// the store. The store is non-nil only after a successful load.
func (h *MetricsHandler) Ready(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "loading"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// System godoc
// @Summary In-process counters
// @Tags Metrics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /metrics/system [get]
func (h *MetricsHandler) System(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	response.JSON(c, http.StatusOK, h.metrics.Snapshot(), nil)
}
