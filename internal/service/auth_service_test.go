package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/haitham-dev/hudur-api/internal/models"
)

func newAuthServiceForTest(t *testing.T) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService(nil, AuthServiceConfig{
		AdminUsername:     "admin",
		AdminPasswordHash: string(hash),
		TokenSecret:       "test-secret",
		TokenExpiry:       time.Minute,
		Issuer:            "hudur-api",
	})
}

func TestLoginAndValidateToken(t *testing.T) {
	svc := newAuthServiceForTest(t)

	resp, err := svc.Login(models.LoginRequest{Username: "admin", Password: "correct-horse"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(60), resp.ExpiresIn)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "hudur-api", claims.Issuer)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthServiceForTest(t)

	_, err := svc.Login(models.LoginRequest{Username: "admin", Password: "wrong"})
	assert.Error(t, err)

	_, err = svc.Login(models.LoginRequest{Username: "root", Password: "correct-horse"})
	assert.Error(t, err)
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	svc := newAuthServiceForTest(t)
	other := NewAuthService(nil, AuthServiceConfig{
		AdminUsername:     "admin",
		AdminPasswordHash: "x",
		TokenSecret:       "other-secret",
		TokenExpiry:       time.Minute,
	})

	token, err := other.generateAccessToken("admin")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}
