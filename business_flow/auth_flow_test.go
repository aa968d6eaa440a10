package businessflow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/prasit9/affilink/app/dto"
	"github.com/prasit9/affilink/app/services"
	"github.com/prasit9/affilink/config"
)

func newAuthFlowForTest(t *testing.T) AuthFlow {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("CorrectHorse9!"), bcrypt.MinCost)
	require.NoError(t, err)

	tokenService, err := services.NewTokenService(time.Hour, "affilink", "affilink-api",
		"test-secret-key-with-enough-length-0123456789")
	require.NoError(t, err)

	return NewAuthFlow(config.AdminConfig{
		Username:     "operator",
		PasswordHash: string(hash),
	}, tokenService)
}

func TestAuthFlowLogin(t *testing.T) {
	ctx := context.Background()
	flow := newAuthFlowForTest(t)

	t.Run("ValidCredentials", func(t *testing.T) {
		resp, err := flow.Login(ctx, &dto.LoginRequest{Username: "operator", Password: "CorrectHorse9!"})
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, int64(3600), resp.ExpiresIn)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := flow.Login(ctx, &dto.LoginRequest{Username: "operator", Password: "WrongHorse9!"})
		require.Error(t, err)
		assert.True(t, IsInvalidCredentials(err))
	})

	t.Run("WrongUsername", func(t *testing.T) {
		_, err := flow.Login(ctx, &dto.LoginRequest{Username: "intruder", Password: "CorrectHorse9!"})
		require.Error(t, err)
		assert.True(t, IsInvalidCredentials(err))
	})

	t.Run("EmptyRequest", func(t *testing.T) {
		_, err := flow.Login(ctx, &dto.LoginRequest{})
		require.Error(t, err)
		assert.True(t, IsInvalidCredentials(err))

		_, err = flow.Login(ctx, nil)
		require.Error(t, err)
		assert.True(t, IsInvalidCredentials(err))
	})

	t.Run("IssuedTokenValidates", func(t *testing.T) {
		resp, err := flow.Login(ctx, &dto.LoginRequest{Username: "operator", Password: "CorrectHorse9!"})
		require.NoError(t, err)

		tokenService, err := services.NewTokenService(time.Hour, "affilink", "affilink-api",
			"test-secret-key-with-enough-length-0123456789")
		require.NoError(t, err)

		claims, err := tokenService.ValidateToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "operator", claims.Username)
		assert.NotEmpty(t, claims.TokenID)
	})
}
