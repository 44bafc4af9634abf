package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/fekuna/storefront-service/internal/model"
)

const DefaultTokenTTL = 7 * 24 * time.Hour

// TokenManager issues and verifies HS256 session tokens. The secret is fixed
// for the lifetime of the process.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

type Option func(*TokenManager)

func WithClock(now func() time.Time) Option {
	return func(m *TokenManager) { m.now = now }
}

func WithIssuer(issuer string) Option {
	return func(m *TokenManager) { m.issuer = issuer }
}

func NewTokenManager(secret string, ttl time.Duration, opts ...Option) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	m := &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *TokenManager) Issue(adminID string) (string, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   adminID,
		Issuer:    m.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify returns the administrator id carried by a valid token. Any defect
// (malformed, wrong signature or algorithm, expired, no subject) is reported
// as model.ErrUnauthenticated.
func (m *TokenManager) Verify(token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("%w: empty token", model.ErrUnauthenticated)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrUnauthenticated, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: token has no subject", model.ErrUnauthenticated)
	}
	return claims.Subject, nil
}
