package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/taskboard/api/internal/core/domain"
	"github.com/taskboard/api/internal/core/ports"
)

type taskService struct {
	taskRepo ports.TaskRepository
	userRepo ports.UserRepository
}

func NewTaskService(taskRepo ports.TaskRepository, userRepo ports.UserRepository) ports.TaskService {
	return &taskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// ListForOwner is permissive: an owner with no tasks, even an owner id that
// never existed, gets an empty list rather than an error.
func (s *taskService) ListForOwner(ctx context.Context, owner uuid.UUID) ([]domain.Task, error) {
	tasks, err := s.taskRepo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, *t)
	}
	return out, nil
}

func (s *taskService) Create(ctx context.Context, owner uuid.UUID, input ports.CreateTaskInput) (*domain.Task, error) {
	if err := validateTaskInput(input); err != nil {
		return nil, err
	}

	// The owner reference is checked, not enforced by the store: a token can
	// outlive its user.
	user, err := s.userRepo.GetByID(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve owner: %w", err)
	}
	if user == nil {
		return nil, domain.ErrOwnerNotFound
	}

	task := &domain.Task{
		Title:       input.Title,
		Description: input.Description,
		Completed:   false,
		Owner:       owner,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Update patches a task in a single find-and-update matching id and owner
// together. A missing task, a task owned by someone else and a malformed id
// are indistinguishable to the caller: all report ErrTaskNotFound.
func (s *taskService) Update(ctx context.Context, taskID string, requester uuid.UUID, patch domain.TaskPatch) (*domain.Task, error) {
	id, err := uuid.Parse(taskID)
	if err != nil {
		return nil, domain.ErrTaskNotFound
	}

	if err := validateTaskPatch(patch); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.UpdateOwned(ctx, id, requester, patch)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

// Delete has the same atomic owner-matching and collapsed not-found
// contract as Update, and returns the removed task.
func (s *taskService) Delete(ctx context.Context, taskID string, requester uuid.UUID) (*domain.Task, error) {
	id, err := uuid.Parse(taskID)
	if err != nil {
		return nil, domain.ErrTaskNotFound
	}

	return s.taskRepo.DeleteOwned(ctx, id, requester)
}

func validateTaskInput(input ports.CreateTaskInput) error {
	var errs domain.FieldErrors
	if strings.TrimSpace(input.Title) == "" {
		errs = errs.Add("title", "must not be empty")
	} else if len(input.Title) > domain.TitleMaxLength {
		errs = errs.Add("title", fmt.Sprintf("must be shorter than or equal to %d characters", domain.TitleMaxLength))
	}
	if strings.TrimSpace(input.Description) == "" {
		errs = errs.Add("description", "must not be empty")
	}
	return errs.Err()
}

func validateTaskPatch(patch domain.TaskPatch) error {
	var errs domain.FieldErrors
	if patch.Empty() {
		return errs.Add("body", "must contain at least one field")
	}
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			errs = errs.Add("title", "must not be empty")
		} else if len(*patch.Title) > domain.TitleMaxLength {
			errs = errs.Add("title", fmt.Sprintf("must be shorter than or equal to %d characters", domain.TitleMaxLength))
		}
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) == "" {
		errs = errs.Add("description", "must not be empty")
	}
	return errs.Err()
}
