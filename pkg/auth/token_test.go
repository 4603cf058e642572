package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-careers-backend/internal/domain"
)

func TestTokenService(t *testing.T) {
	user := &domain.AdminUser{ID: "user-1", Email: "admin@example.com", Name: "Admin", Role: domain.RoleAdmin}

	t.Run("issue and parse", func(t *testing.T) {
		s := NewTokenService("s3cret", time.Hour, nil)

		token, expiresAt, err := s.Issue(user)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

		claims, err := s.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.Subject)
		assert.Equal(t, "admin@example.com", claims.Email)
		assert.Equal(t, domain.RoleAdmin, claims.Role)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		s := NewTokenService("s3cret", time.Minute, nil)
		s.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, _, err := s.Issue(user)
		require.NoError(t, err)

		s.now = time.Now
		_, err = s.Parse(token)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		token, _, err := NewTokenService("one", time.Hour, nil).Issue(user)
		require.NoError(t, err)

		_, err = NewTokenService("two", time.Hour, nil).Parse(token)
		assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})

	t.Run("missing secret", func(t *testing.T) {
		_, _, err := NewTokenService("", time.Hour, nil).Issue(user)
		assert.ErrorIs(t, err, ErrSigningKeyMissing)
	})
}
