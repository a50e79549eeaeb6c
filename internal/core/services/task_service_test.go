package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/api/internal/core/domain"
	"github.com/taskboard/api/internal/core/ports"
)

func setupTaskService(t *testing.T) (ports.TaskService, *fakeTaskRepo, uuid.UUID) {
	t.Helper()
	userRepo := newFakeUserRepo()
	owner := registerTestUser(t, userRepo)
	taskRepo := newFakeTaskRepo()
	return NewTaskService(taskRepo, userRepo), taskRepo, owner.ID
}

func TestCreateTask(t *testing.T) {
	svc, _, owner := setupTaskService(t)

	task, err := svc.Create(context.Background(), owner, ports.CreateTaskInput{
		Title:       "t",
		Description: "d",
	})
	require.NoError(t, err)

	assert.False(t, task.Completed)
	assert.Equal(t, owner, task.Owner)
	assert.NotEqual(t, uuid.Nil, task.ID)
}

func TestCreateTask_OwnerNotFound(t *testing.T) {
	svc, repo, _ := setupTaskService(t)

	_, err := svc.Create(context.Background(), uuid.New(), ports.CreateTaskInput{
		Title:       "t",
		Description: "d",
	})
	assert.ErrorIs(t, err, domain.ErrOwnerNotFound)
	assert.Empty(t, repo.tasks, "nothing may be persisted for a vanished owner")
}

func TestCreateTask_Validation(t *testing.T) {
	svc, _, owner := setupTaskService(t)

	_, err := svc.Create(context.Background(), owner, ports.CreateTaskInput{
		Title:       strings.Repeat("x", domain.TitleMaxLength+1),
		Description: "d",
	})
	var fields domain.FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, "title", fields[0].Field)

	_, err = svc.Create(context.Background(), owner, ports.CreateTaskInput{})
	require.ErrorAs(t, err, &fields)
	assert.Len(t, fields, 2)
}

func TestListForOwner_EmptyIsNotAnError(t *testing.T) {
	svc, _, _ := setupTaskService(t)

	// An owner id that never existed still gets an empty list.
	tasks, err := svc.ListForOwner(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, tasks)
	assert.NotNil(t, tasks)
}

func TestUpdateTask_PartialPatch(t *testing.T) {
	svc, _, owner := setupTaskService(t)

	task, err := svc.Create(context.Background(), owner, ports.CreateTaskInput{Title: "t", Description: "d"})
	require.NoError(t, err)

	completed := true
	updated, err := svc.Update(context.Background(), task.ID.String(), owner, domain.TaskPatch{Completed: &completed})
	require.NoError(t, err)

	assert.True(t, updated.Completed)
	assert.Equal(t, "t", updated.Title, "unspecified fields stay unchanged")
	assert.Equal(t, "d", updated.Description)
	assert.False(t, updated.UpdatedAt.Before(task.UpdatedAt))
}

func TestUpdateTask_EmptyPatchIsRejected(t *testing.T) {
	svc, _, owner := setupTaskService(t)

	task, err := svc.Create(context.Background(), owner, ports.CreateTaskInput{Title: "t", Description: "d"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), task.ID.String(), owner, domain.TaskPatch{})

	var fields domain.FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, "body", fields[0].Field)
}

func TestUpdateTask_CollapsedNotFound(t *testing.T) {
	svc, _, owner := setupTaskService(t)

	task, err := svc.Create(context.Background(), owner, ports.CreateTaskInput{Title: "t", Description: "d"})
	require.NoError(t, err)

	stranger := uuid.New()
	title := "x"

	// Someone else's task, a nonexistent id and a malformed id must be
	// indistinguishable.
	_, notOwned := svc.Update(context.Background(), task.ID.String(), stranger, domain.TaskPatch{Title: &title})
	_, absent := svc.Update(context.Background(), uuid.New().String(), owner, domain.TaskPatch{Title: &title})
	_, malformed := svc.Update(context.Background(), "not-a-uuid", owner, domain.TaskPatch{Title: &title})

	assert.ErrorIs(t, notOwned, domain.ErrTaskNotFound)
	assert.ErrorIs(t, absent, domain.ErrTaskNotFound)
	assert.ErrorIs(t, malformed, domain.ErrTaskNotFound)

	// The original task is untouched.
	tasks, err := svc.ListForOwner(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "t", tasks[0].Title)
}

func TestDeleteTask(t *testing.T) {
	svc, repo, owner := setupTaskService(t)

	task, err := svc.Create(context.Background(), owner, ports.CreateTaskInput{Title: "t", Description: "d"})
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), task.ID.String(), owner)
	require.NoError(t, err)
	assert.Equal(t, task.ID, deleted.ID)
	assert.Empty(t, repo.tasks)
}

func TestDeleteTask_CollapsedNotFound(t *testing.T) {
	svc, _, owner := setupTaskService(t)

	task, err := svc.Create(context.Background(), owner, ports.CreateTaskInput{Title: "t", Description: "d"})
	require.NoError(t, err)

	_, notOwned := svc.Delete(context.Background(), task.ID.String(), uuid.New())
	_, absent := svc.Delete(context.Background(), uuid.New().String(), owner)
	_, malformed := svc.Delete(context.Background(), "not-a-uuid", owner)

	assert.ErrorIs(t, notOwned, domain.ErrTaskNotFound)
	assert.ErrorIs(t, absent, domain.ErrTaskNotFound)
	assert.ErrorIs(t, malformed, domain.ErrTaskNotFound)
}
