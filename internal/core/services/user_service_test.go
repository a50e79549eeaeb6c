package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/api/internal/core/domain"
	"github.com/taskboard/api/internal/core/ports"
)

func TestRegister(t *testing.T) {
	repo := newFakeUserRepo()
	notifier := newFakeNotifier()
	svc := NewUserService(repo, fakeHasher{}, fakeTokens{}, notifier)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "a",
		Email:    "a@x.com",
		Password: "abcdefgh",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "a", user.Username)
	assert.Equal(t, "a@x.com", user.Email)

	stored, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "hashed:abcdefgh", stored.PasswordHash)

	select {
	case created := <-notifier.created:
		assert.Equal(t, user.ID, created.ID)
	case <-time.After(time.Second):
		t.Fatal("expected a user created notification")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, fakeHasher{}, fakeTokens{}, nil)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "a", Email: "a@x.com", Password: "abcdefgh",
	})
	require.NoError(t, err)

	// Same email, different username: still a duplicate.
	_, err = svc.Register(context.Background(), ports.RegisterInput{
		Username: "b", Email: "a@x.com", Password: "abcdefgh",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateIdentity)
}

func TestRegister_StoreError(t *testing.T) {
	repo := newFakeUserRepo()
	repo.createErr = errBoom
	svc := NewUserService(repo, fakeHasher{}, fakeTokens{}, nil)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "a", Email: "a@x.com", Password: "abcdefgh",
	})
	assert.ErrorIs(t, err, errBoom)
}

func TestRegister_Validation(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), fakeHasher{}, fakeTokens{}, nil)

	tests := []struct {
		name  string
		input ports.RegisterInput
		field string
	}{
		{"empty username", ports.RegisterInput{Email: "a@x.com", Password: "abcdefgh"}, "username"},
		{"empty email", ports.RegisterInput{Username: "a", Password: "abcdefgh"}, "email"},
		{"bad email", ports.RegisterInput{Username: "a", Email: "not-an-email", Password: "abcdefgh"}, "email"},
		{"short password", ports.RegisterInput{Username: "a", Email: "a@x.com", Password: "short"}, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.input)

			var fields domain.FieldErrors
			require.ErrorAs(t, err, &fields)
			require.Len(t, fields, 1)
			assert.Equal(t, tt.field, fields[0].Field)
		})
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), fakeHasher{}, fakeTokens{}, nil)

	_, err := svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetByEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, fakeHasher{}, fakeTokens{}, nil)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "a", Email: "a@x.com", Password: "abcdefgh",
	})
	require.NoError(t, err)

	found, err := svc.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, "a", found.Username)
}

func TestGetByEmail_NotFound(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), fakeHasher{}, fakeTokens{}, nil)

	_, err := svc.GetByEmail(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestList_NeverExposesHash(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, fakeHasher{}, fakeTokens{}, nil)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "a", Email: "a@x.com", Password: "abcdefgh",
	})
	require.NoError(t, err)

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "a", users[0].Username)
}

func TestWhoAmI(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, fakeHasher{}, fakeTokens{}, nil)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "a", Email: "a@x.com", Password: "abcdefgh",
	})
	require.NoError(t, err)

	resolved, err := svc.WhoAmI(context.Background(), "token:"+user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestWhoAmI_Unauthenticated(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, fakeHasher{}, fakeTokens{}, nil)

	// Garbage token.
	_, err := svc.WhoAmI(context.Background(), "nonsense")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	// Valid token for a user that no longer exists.
	_, err = svc.WhoAmI(context.Background(), "token:"+uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
