package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecretKey = "test-secret-key-with-enough-length-0123456789"

func newTokenServiceForTest(t *testing.T, ttl time.Duration) TokenService {
	t.Helper()
	svc, err := NewTokenService(ttl, "affilink", "affilink-api", testSecretKey)
	require.NoError(t, err)
	return svc
}

func TestNewTokenService(t *testing.T) {
	t.Run("RequiresSecretKey", func(t *testing.T) {
		_, err := NewTokenService(time.Hour, "affilink", "affilink-api", "")
		assert.Error(t, err)
	})
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTokenServiceForTest(t, time.Hour)

	token, expiresIn, err := svc.GenerateAccessToken("operator")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, int64(3600), expiresIn)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "operator", claims.Username)
	assert.NotEmpty(t, claims.TokenID)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt))
}

func TestValidateTokenFailures(t *testing.T) {
	svc := newTokenServiceForTest(t, time.Hour)

	t.Run("Garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-jwt")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("WrongKey", func(t *testing.T) {
		other, err := NewTokenService(time.Hour, "affilink", "affilink-api",
			"another-secret-key-with-enough-length-987654321")
		require.NoError(t, err)

		token, _, err := other.GenerateAccessToken("operator")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("Expired", func(t *testing.T) {
		expired := newTokenServiceForTest(t, -time.Minute)

		token, _, err := expired.GenerateAccessToken("operator")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})
}

func TestTokenIDsUnique(t *testing.T) {
	svc := newTokenServiceForTest(t, time.Hour)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		token, _, err := svc.GenerateAccessToken("operator")
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.False(t, seen[claims.TokenID])
		seen[claims.TokenID] = true
	}
}
