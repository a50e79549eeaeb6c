package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/taskboard/api/internal/core/domain"
	"github.com/taskboard/api/internal/core/ports"
)

type userService struct {
	repo     ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenManager
	notifier ports.UserNotifier
}

// NewUserService wires the registration and lookup flows. The notifier may
// be nil, in which case user_created events are not emitted.
func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenManager, notifier ports.UserNotifier) ports.UserService {
	return &userService{
		repo:     repo,
		hasher:   hasher,
		tokens:   tokens,
		notifier: notifier,
	}
}

func (s *userService) Register(ctx context.Context, input ports.RegisterInput) (*domain.PublicUser, error) {
	if err := validateRegisterInput(input); err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashed,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	public := user.Public()
	if s.notifier != nil {
		// Fire-and-forget: delivery is unordered relative to the response.
		go s.notifier.UserCreated(public)
	}
	return &public, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*domain.PublicUser, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	public := user.Public()
	return &public, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*domain.PublicUser, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	public := user.Public()
	return &public, nil
}

func (s *userService) List(ctx context.Context) ([]domain.PublicUser, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	public := make([]domain.PublicUser, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}
	return public, nil
}

// WhoAmI resolves a raw token back to its user. Verification failures and a
// user deleted after issuance both surface as ErrUnauthenticated.
func (s *userService) WhoAmI(ctx context.Context, token string) (*domain.PublicUser, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}

	public := user.Public()
	return &public, nil
}

func validateRegisterInput(input ports.RegisterInput) error {
	var errs domain.FieldErrors
	if strings.TrimSpace(input.Username) == "" {
		errs = errs.Add("username", "must not be empty")
	}
	if input.Email == "" {
		errs = errs.Add("email", "must not be empty")
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errs = errs.Add("email", "must be a valid email address")
	}
	if len(input.Password) < 8 {
		errs = errs.Add("password", "must be at least 8 characters")
	}
	return errs.Err()
}
