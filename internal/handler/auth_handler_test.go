package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/haitham-dev/hudur-api/internal/service"
)

func authHandlerForTest(t *testing.T) *AuthHandler {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	svc := service.NewAuthService(nil, service.AuthServiceConfig{
		AdminUsername:     "admin",
		AdminPasswordHash: string(hash),
		TokenSecret:       "token-secret",
		TokenExpiry:       time.Minute,
	})
	return NewAuthHandler(svc)
}

func TestAuthHandlerLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := authHandlerForTest(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"admin","password":"secret"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Login(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "access_token")
}

func TestAuthHandlerLoginRejectsWrongPassword(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := authHandlerForTest(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"admin","password":"nope"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandlerLoginRejectsMissingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := authHandlerForTest(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"admin"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Login(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
