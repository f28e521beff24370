package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haitham-dev/hudur-api/internal/models"
	appErrors "github.com/haitham-dev/hudur-api/pkg/errors"
)

// Envelope is the uniform response body: exactly one of Data or Error is
// set, with optional pagination and meta blocks alongside Data.
type Envelope struct {
	Data       interface{}            `json:"data,omitempty"`
	Error      *appErrors.Error       `json:"error,omitempty"`
	Pagination *models.Pagination     `json:"pagination,omitempty"`
	Meta       map[string]interface{} `json:"meta,omitempty"`
}

// JSON sends a success envelope. The optional meta map carries endpoint
// specific flags such as cache hit markers.
func JSON(c *gin.Context, status int, data interface{}, pagination *models.Pagination, meta ...map[string]interface{}) {
	noStore(c)
	envelope := Envelope{Data: data, Pagination: pagination}
	if len(meta) > 0 && meta[0] != nil {
		envelope.Meta = meta[0]
	}
	c.JSON(status, envelope)
}

// Created responds with HTTP 201.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data, nil)
}

// Error maps any error onto the envelope, defaulting unknown errors to 500.
func Error(c *gin.Context, err error) {
	noStore(c)
	appErr := appErrors.FromError(err)
	c.JSON(appErr.Status, Envelope{Error: appErr})
}

// NoContent sends an empty 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}
