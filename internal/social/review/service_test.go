// Copyright (c) 2026 ScoreHub. All rights reserved.

package review_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scorehub/scorehub/internal/platform/apperr"
	"github.com/scorehub/scorehub/internal/platform/dberr"
	"github.com/scorehub/scorehub/internal/platform/sec"
	"github.com/scorehub/scorehub/internal/social/review"
)

// fakeRepository is an in-memory Repository for service tests.
type fakeRepository struct {
	titles  map[int64]bool
	reviews map[int64]*review.Review
	nextID  int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		titles:  map[int64]bool{},
		reviews: map[int64]*review.Review{},
		nextID:  1,
	}
}

func (f *fakeRepository) TitleExists(_ context.Context, titleID int64) (bool, error) {
	return f.titles[titleID], nil
}

func (f *fakeRepository) ListReviews(_ context.Context, titleID int64, _, _ int) ([]*review.Review, int, error) {
	var out []*review.Review
	for _, r := range f.reviews {
		if r.TitleID == titleID {
			out = append(out, r)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepository) GetReview(_ context.Context, titleID, reviewID int64) (*review.Review, error) {
	r, ok := f.reviews[reviewID]
	if !ok || r.TitleID != titleID {
		return nil, dberr.ErrNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRepository) CreateReview(_ context.Context, r *review.Review) error {
	for _, existing := range f.reviews {
		if existing.TitleID == r.TitleID && existing.AuthorID == r.AuthorID {
			return review.ErrAlreadyReviewed
		}
	}
	r.ID = f.nextID
	f.nextID++
	f.reviews[r.ID] = r
	return nil
}

func (f *fakeRepository) UpdateReview(_ context.Context, r *review.Review) error {
	if _, ok := f.reviews[r.ID]; !ok {
		return dberr.ErrNotFound
	}
	f.reviews[r.ID] = r
	return nil
}

func (f *fakeRepository) DeleteReview(_ context.Context, titleID, reviewID int64) error {
	r, ok := f.reviews[reviewID]
	if !ok || r.TitleID != titleID {
		return dberr.ErrNotFound
	}
	delete(f.reviews, reviewID)
	return nil
}

func newTestService(repo review.Repository) *review.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return review.NewService(repo, logger)
}

func actorWithRole(id int64, role sec.Role) *sec.Actor {
	return &sec.Actor{ID: id, Username: "tester", Role: role}
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

/*
TestService_CreateReview covers score bounds, the missing-title 404, and the
one-review-per-title conflict.
*/
func TestService_CreateReview(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := newFakeRepository()
		repo.titles[1] = true
		service := newTestService(repo)

		created, err := service.CreateReview(ctx, actorWithRole(10, sec.RoleUser), 1, review.Input{Text: strPtr("Solid"), Score: intPtr(7)})
		require.NoError(t, err)
		assert.Equal(t, int64(10), created.AuthorID)
		assert.Equal(t, 7, created.Score)
	})

	t.Run("score_out_of_range", func(t *testing.T) {
		repo := newFakeRepository()
		repo.titles[1] = true
		service := newTestService(repo)

		_, err := service.CreateReview(ctx, actorWithRole(10, sec.RoleUser), 1, review.Input{Text: strPtr("Over the top"), Score: intPtr(11)})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})

	t.Run("title_not_found", func(t *testing.T) {
		repo := newFakeRepository()
		service := newTestService(repo)

		_, err := service.CreateReview(ctx, actorWithRole(10, sec.RoleUser), 99, review.Input{Text: strPtr("Ghost"), Score: intPtr(5)})
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("second_review_conflicts", func(t *testing.T) {
		repo := newFakeRepository()
		repo.titles[1] = true
		service := newTestService(repo)

		_, err := service.CreateReview(ctx, actorWithRole(10, sec.RoleUser), 1, review.Input{Text: strPtr("First"), Score: intPtr(8)})
		require.NoError(t, err)

		_, err = service.CreateReview(ctx, actorWithRole(10, sec.RoleUser), 1, review.Input{Text: strPtr("Second"), Score: intPtr(3)})
		assert.True(t, apperr.IsConflict(err))
	})
}

/*
TestService_UpdateReview verifies owner-or-staff enforcement and the
partial-overlay semantics of PATCH.
*/
func TestService_UpdateReview(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (*fakeRepository, *review.Service) {
		t.Helper()
		repo := newFakeRepository()
		repo.titles[1] = true
		service := newTestService(repo)

		_, err := service.CreateReview(ctx, actorWithRole(10, sec.RoleUser), 1, review.Input{Text: strPtr("Original"), Score: intPtr(6)})
		require.NoError(t, err)
		return repo, service
	}

	t.Run("owner_may_edit", func(t *testing.T) {
		_, service := seed(t)

		updated, err := service.UpdateReview(ctx, actorWithRole(10, sec.RoleUser), 1, 1, review.Input{Text: strPtr("Edited"), Score: intPtr(9)})
		require.NoError(t, err)
		assert.Equal(t, 9, updated.Score)
	})

	t.Run("text_only_patch_keeps_score", func(t *testing.T) {
		_, service := seed(t)

		updated, err := service.UpdateReview(ctx, actorWithRole(10, sec.RoleUser), 1, 1, review.Input{Text: strPtr("Reconsidered")})
		require.NoError(t, err)
		assert.Equal(t, "Reconsidered", updated.Text)
		assert.Equal(t, 6, updated.Score)
	})

	t.Run("score_only_patch_keeps_text", func(t *testing.T) {
		_, service := seed(t)

		updated, err := service.UpdateReview(ctx, actorWithRole(10, sec.RoleUser), 1, 1, review.Input{Score: intPtr(9)})
		require.NoError(t, err)
		assert.Equal(t, "Original", updated.Text)
		assert.Equal(t, 9, updated.Score)
	})

	t.Run("patched_score_still_bounded", func(t *testing.T) {
		_, service := seed(t)

		_, err := service.UpdateReview(ctx, actorWithRole(10, sec.RoleUser), 1, 1, review.Input{Score: intPtr(11)})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})

	t.Run("stranger_is_forbidden", func(t *testing.T) {
		_, service := seed(t)

		_, err := service.UpdateReview(ctx, actorWithRole(20, sec.RoleUser), 1, 1, review.Input{Text: strPtr("Hijack"), Score: intPtr(1)})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "FORBIDDEN", ae.Code)
	})

	t.Run("moderator_may_edit", func(t *testing.T) {
		_, service := seed(t)

		_, err := service.UpdateReview(ctx, actorWithRole(20, sec.RoleModerator), 1, 1, review.Input{Text: strPtr("Cleaned up"), Score: intPtr(6)})
		assert.NoError(t, err)
	})

	t.Run("moderator_may_delete", func(t *testing.T) {
		repo, service := seed(t)

		err := service.DeleteReview(ctx, actorWithRole(20, sec.RoleModerator), 1, 1)
		require.NoError(t, err)
		assert.Empty(t, repo.reviews)
	})
}
