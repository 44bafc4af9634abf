package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/storefront-service/internal/model"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func TestTokenManager(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	tm := NewTokenManager(testSecret, DefaultTokenTTL, WithClock(clock.Now), WithIssuer("storefront"))

	token, err := tm.Issue("admin-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	t.Run("valid immediately", func(t *testing.T) {
		id, err := tm.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "admin-1", id)
	})

	t.Run("valid just before expiry", func(t *testing.T) {
		clock.t = time.Date(2024, 3, 8, 11, 59, 59, 0, time.UTC)
		id, err := tm.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "admin-1", id)
	})

	t.Run("expired after seven days", func(t *testing.T) {
		clock.t = time.Date(2024, 3, 8, 12, 0, 1, 0, time.UTC)
		_, err := tm.Verify(token)
		assert.ErrorIs(t, err, model.ErrUnauthenticated)
	})
}

func TestTokenManagerRejects(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)
	other := NewTokenManager("another-secret-of-enough-length", time.Hour)

	foreign, err := other.Issue("admin-1")
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "admin-1",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	wrongAlg, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "admin-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	cases := map[string]string{
		"empty":           "",
		"malformed":       "not.a.token",
		"bad signature":   foreign,
		"no subject":      noSubject,
		"no expiry":       noExpiry,
		"wrong algorithm": wrongAlg,
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := tm.Verify(token)
			assert.ErrorIs(t, err, model.ErrUnauthenticated)
		})
	}
}
