package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"go-blog-api/internal/auth"
	"go-blog-api/internal/model"
)

func TestUserRegister(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates a user with a hashed password", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewUserService(repo)

		profile, err := svc.Register(ctx, model.CreateUserRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "wonderland",
		})
		require.NoError(t, err)
		require.Equal(t, "alice", profile.Username)

		stored, err := repo.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		require.NotEqual(t, "wonderland", stored.PasswordHash)
		require.True(t, auth.CheckPassword("wonderland", stored.PasswordHash))
	})

	t.Run("rejects duplicate usernames", func(t *testing.T) {
		repo := newFakeUserRepo()
		repo.addUser(t, "alice", "wonderland")
		svc := NewUserService(repo)

		_, err := svc.Register(ctx, model.CreateUserRequest{
			Username: "alice",
			Email:    "other@example.com",
			Password: "password",
		})
		require.ErrorIs(t, err, model.ErrUsernameTaken)
	})

	t.Run("rejects short usernames and passwords", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewUserService(repo)

		_, err := svc.Register(ctx, model.CreateUserRequest{Username: "al", Password: "password"})
		require.Error(t, err)

		_, err = svc.Register(ctx, model.CreateUserRequest{Username: "alice", Password: "pw"})
		require.Error(t, err)
	})
}

func TestUserUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("only the user themselves may update", func(t *testing.T) {
		repo := newFakeUserRepo()
		alice := repo.addUser(t, "alice", "wonderland")
		bob := repo.addUser(t, "bob", "builder")
		svc := NewUserService(repo)

		_, err := svc.Update(ctx, bob.ID, alice.ID, model.UpdateUserRequest{Email: "new@example.com"})
		require.ErrorIs(t, err, model.ErrForbidden)
	})

	t.Run("password change re-hashes", func(t *testing.T) {
		repo := newFakeUserRepo()
		alice := repo.addUser(t, "alice", "wonderland")
		svc := NewUserService(repo)

		_, err := svc.Update(ctx, alice.ID, alice.ID, model.UpdateUserRequest{Password: "new-secret"})
		require.NoError(t, err)

		stored, err := repo.FindByID(ctx, alice.ID)
		require.NoError(t, err)
		require.True(t, auth.CheckPassword("new-secret", stored.PasswordHash))
		require.False(t, auth.CheckPassword("wonderland", stored.PasswordHash))
	})

	t.Run("renaming to a taken username fails", func(t *testing.T) {
		repo := newFakeUserRepo()
		alice := repo.addUser(t, "alice", "wonderland")
		repo.addUser(t, "bob", "builder")
		svc := NewUserService(repo)

		_, err := svc.Update(ctx, alice.ID, alice.ID, model.UpdateUserRequest{Username: "bob"})
		require.ErrorIs(t, err, model.ErrUsernameTaken)
	})
}

func TestUserDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := newFakeUserRepo()
	alice := repo.addUser(t, "alice", "wonderland")
	bob := repo.addUser(t, "bob", "builder")
	svc := NewUserService(repo)

	require.ErrorIs(t, svc.Delete(ctx, bob.ID, alice.ID), model.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, alice.ID, alice.ID))

	_, err := svc.Get(ctx, alice.ID)
	require.ErrorIs(t, err, model.ErrUserNotFound)
}
