package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskboard/api/internal/core/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.PublicUser, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PublicUser, error)
	GetByEmail(ctx context.Context, email string) (*domain.PublicUser, error)
	List(ctx context.Context) ([]domain.PublicUser, error)
	WhoAmI(ctx context.Context, token string) (*domain.PublicUser, error)
}
