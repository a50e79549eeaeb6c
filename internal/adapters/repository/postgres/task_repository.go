package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/taskboard/api/internal/core/domain"
	"github.com/taskboard/api/internal/core/ports"
)

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) ports.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (title, description, completed, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, task.Title, task.Description, task.Completed, task.Owner).
		Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (r *taskRepository) ListByOwner(ctx context.Context, owner uuid.UUID) ([]*domain.Task, error) {
	query := `
		SELECT id, title, description, completed, owner_id, created_at, updated_at
		FROM tasks
		WHERE owner_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.Owner, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}
	return tasks, nil
}

// UpdateOwned is the single atomic statement the ownership check rides on:
// the WHERE clause matches id and owner together, so a foreign task and an
// absent task both come back as zero rows.
func (r *taskRepository) UpdateOwned(ctx context.Context, id, owner uuid.UUID, patch domain.TaskPatch) (*domain.Task, error) {
	query := `
		UPDATE tasks
		SET title = COALESCE($3, title),
		    description = COALESCE($4, description),
		    completed = COALESCE($5, completed),
		    updated_at = NOW()
		WHERE id = $1 AND owner_id = $2
		RETURNING id, title, description, completed, owner_id, created_at, updated_at
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id, owner, patch.Title, patch.Description, patch.Completed))
}

func (r *taskRepository) DeleteOwned(ctx context.Context, id, owner uuid.UUID) (*domain.Task, error) {
	query := `
		DELETE FROM tasks
		WHERE id = $1 AND owner_id = $2
		RETURNING id, title, description, completed, owner_id, created_at, updated_at
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id, owner))
}

func (r *taskRepository) scanOne(row *sql.Row) (*domain.Task, error) {
	task := &domain.Task{}
	err := row.Scan(&task.ID, &task.Title, &task.Description, &task.Completed, &task.Owner, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}
