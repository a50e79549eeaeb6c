package services

import (
	"context"
	"fmt"

	"github.com/taskboard/api/internal/core/domain"
	"github.com/taskboard/api/internal/core/ports"
)

type authService struct {
	userRepo ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenManager
}

func NewAuthService(userRepo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenManager) ports.AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// Login verifies the credentials and issues an access token. An unknown
// email and a wrong password produce the identical ErrInvalidCredentials so
// a caller cannot probe which addresses are registered.
func (s *authService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	var errs domain.FieldErrors
	if email == "" {
		errs = errs.Add("email", "must not be empty")
	}
	if password == "" {
		errs = errs.Add("password", "must not be empty")
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	accessToken, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &ports.LoginResult{
		AccessToken: accessToken,
		User:        user.Public(),
	}, nil
}
