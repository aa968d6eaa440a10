package businessflow

import (
	"context"
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/prasit9/affilink/app/dto"
	"github.com/prasit9/affilink/app/services"
	"github.com/prasit9/affilink/config"
)

// AuthFlow represents the operator authentication flow used by handlers
type AuthFlow interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

// AuthFlowImpl verifies operator credentials against the configured account
type AuthFlowImpl struct {
	admin        config.AdminConfig
	tokenService services.TokenService
}

func NewAuthFlow(admin config.AdminConfig, tokenService services.TokenService) AuthFlow {
	return &AuthFlowImpl{
		admin:        admin,
		tokenService: tokenService,
	}
}

func (af *AuthFlowImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if req == nil || len(req.Username) == 0 || len(req.Password) == 0 {
		return nil, NewBusinessError("INVALID_CREDENTIALS", "Invalid username or password", ErrInvalidCredentials)
	}

	// Compare both factors even when the username mismatches so timing does
	// not reveal which one was wrong.
	usernameMatch := subtle.ConstantTimeCompare([]byte(req.Username), []byte(af.admin.Username)) == 1
	passwordErr := bcrypt.CompareHashAndPassword([]byte(af.admin.PasswordHash), []byte(req.Password))
	if !usernameMatch || passwordErr != nil {
		return nil, NewBusinessError("INVALID_CREDENTIALS", "Invalid username or password", ErrInvalidCredentials)
	}

	accessToken, expiresIn, err := af.tokenService.GenerateAccessToken(af.admin.Username)
	if err != nil {
		return nil, NewBusinessError("TOKEN_GENERATION_FAILED", "Failed to generate access token", err)
	}

	return &dto.LoginResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	}, nil
}
