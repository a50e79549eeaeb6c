package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskboard/api/internal/core/domain"
)

type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	ListByOwner(ctx context.Context, owner uuid.UUID) ([]*domain.Task, error)
	// UpdateOwned applies the patch to the task matching both id and owner in
	// a single statement and returns the updated row. Zero rows matched maps
	// to domain.ErrTaskNotFound.
	UpdateOwned(ctx context.Context, id, owner uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)
	// DeleteOwned removes the task matching both id and owner and returns the
	// deleted row, with the same zero-rows contract as UpdateOwned.
	DeleteOwned(ctx context.Context, id, owner uuid.UUID) (*domain.Task, error)
}

type CreateTaskInput struct {
	Title       string
	Description string
}

type TaskService interface {
	ListForOwner(ctx context.Context, owner uuid.UUID) ([]domain.Task, error)
	Create(ctx context.Context, owner uuid.UUID, input CreateTaskInput) (*domain.Task, error)
	Update(ctx context.Context, taskID string, requester uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, taskID string, requester uuid.UUID) (*domain.Task, error)
}
