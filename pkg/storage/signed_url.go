package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SignedURLSigner mints and verifies HMAC download tokens so export files
// can be fetched without an Authorization header.
type SignedURLSigner struct {
	secret []byte
	ttl    time.Duration
}

// NewSignedURLSigner builds a signer. A non-positive TTL falls back to 24h.
func NewSignedURLSigner(secret string, ttl time.Duration) *SignedURLSigner {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SignedURLSigner{secret: []byte(secret), ttl: ttl}
}

// Generate returns a token binding the job ID and relative file path,
// plus the expiry baked into it.
func (s *SignedURLSigner) Generate(jobID, relPath string) (string, time.Time, error) {
	if jobID == "" || relPath == "" {
		return "", time.Time{}, fmt.Errorf("jobID and relPath required")
	}
	if len(s.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("signing secret missing")
	}

	expiresAt := time.Now().Add(s.ttl)
	exp := strconv.FormatInt(expiresAt.Unix(), 10)
	encodedPath := base64.RawURLEncoding.EncodeToString([]byte(relPath))
	sig := s.sign(jobID, exp, encodedPath)

	token := strings.Join([]string{jobID, exp, encodedPath, sig}, ".")
	return token, expiresAt, nil
}

// Parse verifies a token and returns the embedded job ID, file path and
// expiry. With allowExpired set the timestamp check is skipped, which the
// cleanup routine uses to resolve paths of stale files.
func (s *SignedURLSigner) Parse(token string, allowExpired bool) (jobID, relPath string, expiresAt time.Time, err error) {
	parts := strings.Split(token, ".")
	if len(parts) != 4 {
		return "", "", time.Time{}, fmt.Errorf("invalid token format")
	}
	jobID, exp, encodedPath, sig := parts[0], parts[1], parts[2], parts[3]

	if !hmac.Equal([]byte(s.sign(jobID, exp, encodedPath)), []byte(sig)) {
		return "", "", time.Time{}, fmt.Errorf("invalid token signature")
	}

	expUnix, err := strconv.ParseInt(exp, 10, 64)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("invalid timestamp")
	}
	expiresAt = time.Unix(expUnix, 0)
	if !allowExpired && time.Now().After(expiresAt) {
		return "", "", time.Time{}, fmt.Errorf("token expired")
	}

	rawPath, err := base64.RawURLEncoding.DecodeString(encodedPath)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("decode path: %w", err)
	}
	return jobID, string(rawPath), expiresAt, nil
}

func (s *SignedURLSigner) sign(jobID, exp, encodedPath string) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s|%s|%s", jobID, exp, encodedPath)
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
