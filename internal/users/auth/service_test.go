// Copyright (c) 2026 ScoreHub. All rights reserved.

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scorehub/scorehub/internal/platform/apperr"
	"github.com/scorehub/scorehub/internal/platform/dberr"
	"github.com/scorehub/scorehub/internal/platform/sec"
	"github.com/scorehub/scorehub/internal/users/auth"
)

// # Fakes

type fakeUserRepository struct {
	mu     sync.Mutex
	users  map[int64]*auth.User
	nextID int64
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[int64]*auth.User{}, nextID: 1}
}

func (f *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeUserRepository) FindByID(_ context.Context, id int64) (*auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepository) FindByPair(_ context.Context, username, email string) (*auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username && u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		// Only the username carries a uniqueness constraint.
		if u.Username == user.Username {
			return dberr.ErrConflict
		}
	}
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	f.nextID++
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepository) StampLastLogin(_ context.Context, id int64) (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return time.Time{}, dberr.ErrNotFound
	}
	now := time.Now()
	u.LastLoginAt = &now
	return now, nil
}

type fakeSessionRepository struct {
	mu       sync.Mutex
	sessions map[string]int64
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: map[string]int64{}}
}

func (f *fakeSessionRepository) Set(_ context.Context, tokenHash string, userID int64, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[tokenHash] = userID
	return nil
}

func (f *fakeSessionRepository) Get(_ context.Context, tokenHash string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	userID, ok := f.sessions[tokenHash]
	if !ok {
		return 0, apperr.Unauthorized("Invalid or expired refresh token")
	}
	return userID, nil
}

func (f *fakeSessionRepository) Delete(_ context.Context, tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, tokenHash)
	return nil
}

type fakeThrottle struct{ allow bool }

func (f *fakeThrottle) Allow(_ context.Context, _ string, _ time.Duration) (bool, error) {
	return f.allow, nil
}

type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(actor *sec.Actor, _ time.Duration) (string, error) {
	return "access-for-" + actor.Username, nil
}

type fakeMailer struct{}

func (fakeMailer) Send(_ context.Context, _, _, _ string) error { return nil }

func newTestService(users *fakeUserRepository, sessions *fakeSessionRepository) (*auth.Service, *sec.CodeGenerator) {
	codes := sec.NewCodeGenerator("test-secret")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := auth.NewService(users, sessions, &fakeThrottle{allow: true}, codes, fakeTokenProvider{}, fakeMailer{}, logger)
	return service, codes
}

// # Tests

/*
TestService_Signup covers the three signup outcomes: fresh account, exact-pair
resend, and the reserved/conflicting username failures.
*/
func TestService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("creates_new_account", func(t *testing.T) {
		users := newFakeUserRepository()
		service, _ := newTestService(users, newFakeSessionRepository())

		created, err := service.Signup(ctx, auth.SignupInput{Username: "reader", Email: "reader@example.com"})
		require.NoError(t, err)
		assert.True(t, created)

		stored, err := users.FindByUsername(ctx, "reader")
		require.NoError(t, err)
		assert.Equal(t, sec.RoleUser, stored.Role)
	})

	t.Run("exact_pair_resends", func(t *testing.T) {
		users := newFakeUserRepository()
		service, _ := newTestService(users, newFakeSessionRepository())

		_, err := service.Signup(ctx, auth.SignupInput{Username: "reader", Email: "reader@example.com"})
		require.NoError(t, err)

		created, err := service.Signup(ctx, auth.SignupInput{Username: "reader", Email: "reader@example.com"})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Len(t, users.users, 1)
	})

	t.Run("reserved_username_rejected", func(t *testing.T) {
		service, _ := newTestService(newFakeUserRepository(), newFakeSessionRepository())

		_, err := service.Signup(ctx, auth.SignupInput{Username: "me", Email: "me@example.com"})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})

	t.Run("taken_username_different_email_rejected", func(t *testing.T) {
		users := newFakeUserRepository()
		service, _ := newTestService(users, newFakeSessionRepository())

		_, err := service.Signup(ctx, auth.SignupInput{Username: "reader", Email: "reader@example.com"})
		require.NoError(t, err)

		_, err = service.Signup(ctx, auth.SignupInput{Username: "reader", Email: "other@example.com"})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})

	t.Run("reused_email_fresh_username_creates_account", func(t *testing.T) {
		users := newFakeUserRepository()
		service, _ := newTestService(users, newFakeSessionRepository())

		_, err := service.Signup(ctx, auth.SignupInput{Username: "reader", Email: "shared@example.com"})
		require.NoError(t, err)

		created, err := service.Signup(ctx, auth.SignupInput{Username: "other_reader", Email: "shared@example.com"})
		require.NoError(t, err)
		assert.True(t, created)
		assert.Len(t, users.users, 2)
	})

	t.Run("missing_fields_rejected", func(t *testing.T) {
		service, _ := newTestService(newFakeUserRepository(), newFakeSessionRepository())

		_, err := service.Signup(ctx, auth.SignupInput{})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

/*
TestService_IssueTokens covers the exchange outcomes, including the rule that
a successful exchange retires previously issued codes.
*/
func TestService_IssueTokens(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (*auth.Service, *fakeUserRepository, *fakeSessionRepository, string) {
		t.Helper()
		users := newFakeUserRepository()
		sessions := newFakeSessionRepository()
		service, codes := newTestService(users, sessions)

		_, err := service.Signup(ctx, auth.SignupInput{Username: "reader", Email: "reader@example.com"})
		require.NoError(t, err)

		stored, err := users.FindByUsername(ctx, "reader")
		require.NoError(t, err)
		code, err := codes.Make(stored.State())
		require.NoError(t, err)

		return service, users, sessions, code
	}

	t.Run("unknown_username_is_not_found", func(t *testing.T) {
		service, _, _, _ := seed(t)

		_, err := service.IssueTokens(ctx, auth.TokenInput{Username: "ghost", ConfirmationCode: "whatever"})
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("wrong_code_is_bad_request", func(t *testing.T) {
		service, _, _, _ := seed(t)

		_, err := service.IssueTokens(ctx, auth.TokenInput{Username: "reader", ConfirmationCode: "00000000000000000000"})
		require.Error(t, err)
		assert.Equal(t, "BAD_REQUEST", apperr.As(err).Code)
	})

	t.Run("valid_code_issues_pair", func(t *testing.T) {
		service, _, sessions, code := seed(t)

		pair, err := service.IssueTokens(ctx, auth.TokenInput{Username: "reader", ConfirmationCode: code})
		require.NoError(t, err)
		assert.NotEmpty(t, pair.Refresh)
		assert.Equal(t, "access-for-reader", pair.Access)
		assert.Len(t, sessions.sessions, 1)
	})

	t.Run("exchange_retires_old_codes", func(t *testing.T) {
		service, _, _, code := seed(t)

		_, err := service.IssueTokens(ctx, auth.TokenInput{Username: "reader", ConfirmationCode: code})
		require.NoError(t, err)

		// The stamp changed the user-state fingerprint.
		_, err = service.IssueTokens(ctx, auth.TokenInput{Username: "reader", ConfirmationCode: code})
		require.Error(t, err)
		assert.Equal(t, "BAD_REQUEST", apperr.As(err).Code)
	})
}

/*
TestService_RefreshTokens verifies rotation: the old token dies, the new one works.
*/
func TestService_RefreshTokens(t *testing.T) {
	ctx := context.Background()

	users := newFakeUserRepository()
	sessions := newFakeSessionRepository()
	service, codes := newTestService(users, sessions)

	_, err := service.Signup(ctx, auth.SignupInput{Username: "reader", Email: "reader@example.com"})
	require.NoError(t, err)
	stored, err := users.FindByUsername(ctx, "reader")
	require.NoError(t, err)
	code, err := codes.Make(stored.State())
	require.NoError(t, err)

	pair, err := service.IssueTokens(ctx, auth.TokenInput{Username: "reader", ConfirmationCode: code})
	require.NoError(t, err)

	rotated, err := service.RefreshTokens(ctx, pair.Refresh)
	require.NoError(t, err)
	assert.NotEqual(t, pair.Refresh, rotated.Refresh)

	// The original token was revoked by the rotation.
	_, err = service.RefreshTokens(ctx, pair.Refresh)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	// Garbage is a generic 401 as well.
	_, err = service.RefreshTokens(ctx, "not-a-token")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}
