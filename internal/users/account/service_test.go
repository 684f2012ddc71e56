// Copyright (c) 2026 ScoreHub. All rights reserved.

package account_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scorehub/scorehub/internal/platform/dberr"
	"github.com/scorehub/scorehub/internal/platform/sec"
	"github.com/scorehub/scorehub/internal/users/account"
)

type fakeRepository struct {
	accounts map[int64]*account.Account
	nextID   int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{accounts: map[int64]*account.Account{}, nextID: 1}
}

func (f *fakeRepository) ListAccounts(_ context.Context, search string, _, _ int) ([]*account.Account, int, error) {
	var out []*account.Account
	for _, a := range f.accounts {
		out = append(out, a)
	}
	return out, len(out), nil
}

func (f *fakeRepository) GetByUsername(_ context.Context, username string) (*account.Account, error) {
	for _, a := range f.accounts {
		if a.Username == username {
			copied := *a
			return &copied, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) GetByID(_ context.Context, id int64) (*account.Account, error) {
	a, ok := f.accounts[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeRepository) Create(_ context.Context, a *account.Account) error {
	a.ID = f.nextID
	f.nextID++
	copied := *a
	f.accounts[a.ID] = &copied
	return nil
}

func (f *fakeRepository) Update(_ context.Context, a *account.Account) error {
	if _, ok := f.accounts[a.ID]; !ok {
		return dberr.ErrNotFound
	}
	copied := *a
	f.accounts[a.ID] = &copied
	return nil
}

func (f *fakeRepository) DeleteByUsername(_ context.Context, username string) error {
	for id, a := range f.accounts {
		if a.Username == username {
			delete(f.accounts, id)
			return nil
		}
	}
	return dberr.ErrNotFound
}

func newTestService(repo *fakeRepository) *account.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return account.NewService(repo, logger)
}

func strPtr(s string) *string { return &s }

/*
TestService_UpdateMe verifies the role-pinning rule for self edits.
*/
func TestService_UpdateMe(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, role sec.Role) (*fakeRepository, *account.Service, *sec.Actor) {
		t.Helper()
		repo := newFakeRepository()
		service := newTestService(repo)

		created, err := service.CreateAccount(ctx, account.Input{
			Username: strPtr("sam"),
			Email:    strPtr("sam@example.com"),
			Role:     strPtr(string(role)),
		})
		require.NoError(t, err)

		actor := &sec.Actor{ID: created.ID, Username: created.Username, Role: created.Role}
		return repo, service, actor
	}

	t.Run("user_cannot_escalate_role", func(t *testing.T) {
		_, service, actor := seed(t, sec.RoleUser)

		updated, err := service.UpdateMe(ctx, actor, account.Input{
			Bio:  strPtr("Avid reader"),
			Role: strPtr(string(sec.RoleAdmin)),
		})
		require.NoError(t, err)

		assert.Equal(t, sec.RoleUser, updated.Role)
		assert.Equal(t, "Avid reader", updated.Bio)
	})

	t.Run("moderator_cannot_escalate_role", func(t *testing.T) {
		_, service, actor := seed(t, sec.RoleModerator)

		updated, err := service.UpdateMe(ctx, actor, account.Input{Role: strPtr(string(sec.RoleAdmin))})
		require.NoError(t, err)
		assert.Equal(t, sec.RoleModerator, updated.Role)
	})

	t.Run("admin_may_change_own_role", func(t *testing.T) {
		_, service, actor := seed(t, sec.RoleAdmin)

		updated, err := service.UpdateMe(ctx, actor, account.Input{Role: strPtr(string(sec.RoleModerator))})
		require.NoError(t, err)
		assert.Equal(t, sec.RoleModerator, updated.Role)
	})
}

/*
TestService_CreateAccount covers role defaulting and validation.
*/
func TestService_CreateAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults_to_user_role", func(t *testing.T) {
		service := newTestService(newFakeRepository())

		created, err := service.CreateAccount(ctx, account.Input{
			Username: strPtr("plain"),
			Email:    strPtr("plain@example.com"),
		})
		require.NoError(t, err)
		assert.Equal(t, sec.RoleUser, created.Role)
	})

	t.Run("superuser_role_accepted", func(t *testing.T) {
		service := newTestService(newFakeRepository())

		created, err := service.CreateAccount(ctx, account.Input{
			Username: strPtr("root"),
			Email:    strPtr("root@example.com"),
			Role:     strPtr(string(sec.RoleSuperuser)),
		})
		require.NoError(t, err)
		assert.Equal(t, sec.RoleSuperuser, created.Role)
	})

	t.Run("unknown_role_rejected", func(t *testing.T) {
		service := newTestService(newFakeRepository())

		_, err := service.CreateAccount(ctx, account.Input{
			Username: strPtr("odd"),
			Email:    strPtr("odd@example.com"),
			Role:     strPtr("overlord"),
		})
		assert.Error(t, err)
	})

	t.Run("reserved_username_rejected", func(t *testing.T) {
		service := newTestService(newFakeRepository())

		_, err := service.CreateAccount(ctx, account.Input{
			Username: strPtr("me"),
			Email:    strPtr("me@example.com"),
		})
		assert.Error(t, err)
	})
}
