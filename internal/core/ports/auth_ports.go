package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskboard/api/internal/core/domain"
)

// PasswordHasher is a one-way salted hash with verification. Verify reports
// a mismatch as false, never as an error.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hashed string) bool
}

// TokenManager issues and verifies the stateless identity tokens. Verify
// returns domain.ErrInvalidToken for a missing, forged, malformed or expired
// token without distinguishing the cause.
type TokenManager interface {
	Issue(userID uuid.UUID) (string, error)
	Verify(token string) (uuid.UUID, error)
}

type LoginResult struct {
	AccessToken string
	User        domain.PublicUser
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}
