package auth

import (
	"errors"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers bad signatures, expired tokens, and missing subjects.
var ErrInvalidToken = errors.New("invalid token")

const (
	// DefaultAccessTTL bounds a login session.
	DefaultAccessTTL = 60 * time.Minute
	// ResetTTL bounds a password-reset token.
	ResetTTL = 15 * time.Minute
)

// TokenManager issues and verifies HS256 bearer tokens carrying the user's
// email as subject.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a TokenManager around a shared secret.
// ttl <= 0 falls back to DefaultAccessTTL.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultAccessTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue signs an access token for the given subject.
func (m *TokenManager) Issue(subject string) (string, error) {
	return m.IssueWithTTL(subject, m.ttl)
}

// IssueWithTTL signs a token for the given subject with an explicit lifetime.
func (m *TokenManager) IssueWithTTL(subject string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify validates signature and expiry and returns the subject claim.
func (m *TokenManager) Verify(token string) (string, error) {
	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return "", ErrInvalidToken
	}
	return subject, nil
}
