package models

import "github.com/golang-jwt/jwt/v5"

// User is the single administrative account configured for the service.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// JWTClaims are the claims embedded in issued access tokens.
type JWTClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// LoginRequest holds credentials for authenticating the admin account.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the issued token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
