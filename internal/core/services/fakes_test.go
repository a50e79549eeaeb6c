package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/taskboard/api/internal/core/domain"
)

type fakeUserRepo struct {
	users     map[uuid.UUID]*domain.User
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return domain.ErrDuplicateIdentity
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

type fakeTaskRepo struct {
	tasks map[uuid.UUID]*domain.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[uuid.UUID]*domain.Task)}
}

func (r *fakeTaskRepo) Create(_ context.Context, task *domain.Task) error {
	task.ID = uuid.New()
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	cp := *task
	r.tasks[task.ID] = &cp
	return nil
}

func (r *fakeTaskRepo) ListByOwner(_ context.Context, owner uuid.UUID) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range r.tasks {
		if t.Owner == owner {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) UpdateOwned(_ context.Context, id, owner uuid.UUID, patch domain.TaskPatch) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok || t.Owner != owner {
		return nil, domain.ErrTaskNotFound
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	t.UpdatedAt = time.Now()
	cp := *t
	return &cp, nil
}

func (r *fakeTaskRepo) DeleteOwned(_ context.Context, id, owner uuid.UUID) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok || t.Owner != owner {
		return nil, domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return t, nil
}

type fakeHasher struct{}

func (fakeHasher) Hash(plaintext string) (string, error) { return "hashed:" + plaintext, nil }

func (fakeHasher) Verify(plaintext, hashed string) bool { return hashed == "hashed:"+plaintext }

type fakeTokens struct{}

func (fakeTokens) Issue(userID uuid.UUID) (string, error) { return "token:" + userID.String(), nil }

func (fakeTokens) Verify(token string) (uuid.UUID, error) {
	if len(token) <= len("token:") || token[:len("token:")] != "token:" {
		return uuid.Nil, domain.ErrInvalidToken
	}
	id, err := uuid.Parse(token[len("token:"):])
	if err != nil {
		return uuid.Nil, domain.ErrInvalidToken
	}
	return id, nil
}

type fakeNotifier struct {
	created chan domain.PublicUser
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{created: make(chan domain.PublicUser, 1)}
}

func (n *fakeNotifier) UserCreated(user domain.PublicUser) {
	n.created <- user
}

var errBoom = errors.New("boom")
