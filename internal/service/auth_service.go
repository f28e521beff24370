package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/haitham-dev/hudur-api/internal/models"
	appErrors "github.com/haitham-dev/hudur-api/pkg/errors"
)

// AuthServiceConfig defines configuration for the single-admin login flow.
type AuthServiceConfig struct {
	AdminUsername     string
	AdminPasswordHash string
	TokenSecret       string
	TokenExpiry       time.Duration
	Issuer            string
}

// AuthService authenticates the configured admin account and issues access
// tokens. There is no user table; credentials come from configuration.
type AuthService struct {
	logger *zap.Logger
	config AuthServiceConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(logger *zap.Logger, config AuthServiceConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.TokenExpiry <= 0 {
		config.TokenExpiry = 12 * time.Hour
	}
	return &AuthService{logger: logger, config: config}
}

// Login verifies admin credentials and returns a signed token.
func (s *AuthService) Login(req models.LoginRequest) (*models.LoginResponse, error) {
	if req.Username != s.config.AdminUsername {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.config.AdminPasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid username or password")
	}

	token, err := s.generateAccessToken(req.Username)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}

	s.logger.Info("admin logged in", zap.String("username", req.Username))
	return &models.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.config.TokenExpiry.Seconds()),
	}, nil
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.TokenSecret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}

func (s *AuthService) generateAccessToken(username string) (string, error) {
	issuedAt := time.Now().UTC()
	claims := &models.JWTClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.config.TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.TokenSecret))
}
